package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dkarlsen/notedoc/internal/parser"
)

type parseRequest struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
}

// handleParse runs the classifier synchronously and returns the paragraph
// records without rendering anything.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var req parseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Format == "" {
		req.Format = "notes"
	}

	p, err := parser.ForFormat(req.Format, "notes.txt")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	paras, err := p.Parse(bytes.NewReader([]byte(req.Text)), "notes.txt")
	if err != nil {
		jsonError(w, "parse: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"paragraphs": paras})
}
