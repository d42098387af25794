package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dkarlsen/notedoc/internal/notes"
)

// Parser converts raw note bytes into a paragraph record list.
type Parser interface {
	Parse(r io.Reader, filename string) ([]notes.Paragraph, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
}

// ForFile returns the appropriate parser for a filename. Plain text and
// markdown files go through the strict outline classifier; use ForFormat
// with "commonmark" to accept arbitrary Markdown instead.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown":
		return &NotesParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: pdftotextFallback}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// ForFormat returns a parser by explicit format name, overriding filename
// dispatch. An empty format falls back to ForFile.
func ForFormat(format, filename string) (Parser, error) {
	switch format {
	case "":
		return ForFile(filename)
	case "notes":
		return &NotesParser{}, nil
	case "commonmark":
		return &CommonMarkParser{}, nil
	case "html":
		return &HTMLParser{}, nil
	case "pdf":
		return &PDFParser{FallbackPdftotext: pdftotextFallback}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
