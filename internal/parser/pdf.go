package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dkarlsen/notedoc/internal/notes"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF exports of notes. It extracts plain text with the Go
// library first, falls back to pdftotext if available, and runs the result
// through the outline classifier.
type PDFParser struct {
	FallbackPdftotext bool
}

var pdftotextFallback = true

// SetPdftotextFallback controls whether parsers returned by ForFile and
// ForFormat shell out to pdftotext when library extraction fails.
func SetPdftotextFallback(enabled bool) {
	pdftotextFallback = enabled
}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]notes.Paragraph, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "notedoc-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	// Page breaks carry no outline meaning; treat them as blank lines.
	text = strings.ReplaceAll(text, "\f", "\n")
	return ParseNotes(text), nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
