package render

import (
	"context"
	"fmt"

	"github.com/dkarlsen/notedoc/internal/docsapi"
	"github.com/dkarlsen/notedoc/internal/notes"
)

// Result is the output of one render. Remote backends set URL; local
// backends set Data and ContentType.
type Result struct {
	URL         string
	Data        []byte
	ContentType string
}

// Renderer turns a paragraph record list into a formatted document. It is a
// pure consumer of the records: implementations need no access to the
// original note text.
type Renderer interface {
	Render(ctx context.Context, title string, paras []notes.Paragraph) (*Result, error)
}

// ForFormat returns the renderer for a format name. The remote backend
// requires a configured docsapi client.
func ForFormat(format string, client *docsapi.Client) (Renderer, error) {
	switch format {
	case "docx":
		return &DOCXRenderer{}, nil
	case "remote":
		if client == nil {
			return nil, fmt.Errorf("remote renderer requires a docs backend client")
		}
		return &RemoteRenderer{Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown render format: %s", format)
	}
}
