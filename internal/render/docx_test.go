package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/dkarlsen/notedoc/internal/notes"
)

func TestDOCXRenderer_ProducesZipArchive(t *testing.T) {
	d := &DOCXRenderer{}
	res, err := d.Render(context.Background(), "Team Sync", []notes.Paragraph{
		{Kind: notes.KindH1, Text: "Team Sync"},
		{Kind: notes.KindText, Text: "Weekly"},
		{Kind: notes.KindCheckbox, Text: "@alice sends report", Mentions: []notes.Span{{Start: 0, End: 6}}},
		{Kind: notes.KindBullet, Text: "nested", Level: 1},
		{Kind: notes.KindHR},
		{Kind: notes.KindFooter, Text: "Next meeting Friday"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ContentType != DOCXContentType {
		t.Errorf("unexpected content type %q", res.ContentType)
	}
	// A .docx file is a zip archive: PK magic.
	if len(res.Data) < 4 || !bytes.HasPrefix(res.Data, []byte("PK")) {
		t.Errorf("expected zip archive output, got %d bytes", len(res.Data))
	}
}

func TestDOCXRenderer_EmptyInput(t *testing.T) {
	d := &DOCXRenderer{}
	res, err := d.Render(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Data) == 0 {
		t.Error("expected non-empty document even for empty input")
	}
}

func TestListPrefix(t *testing.T) {
	if got := listPrefix(0, bulletGlyph); got != bulletGlyph {
		t.Errorf("level 0: got %q", got)
	}
	if got := listPrefix(2, checkboxGlyph); got != "        "+checkboxGlyph {
		t.Errorf("level 2: got %q", got)
	}
}
