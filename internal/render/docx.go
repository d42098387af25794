package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dkarlsen/notedoc/internal/notes"
	"github.com/fumiama/go-docx"
)

// DOCXContentType is the MIME type of the generated file.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Run sizes are half-points.
const (
	h1Size     = "40"
	h2Size     = "32"
	h3Size     = "28"
	footerSize = "18"

	footerColor  = "737373"
	mentionColor = "1A59D9"
	ruleColor    = "B0B0B0"

	bulletGlyph   = "• "
	checkboxGlyph = "☐ "
)

// DOCXRenderer produces a .docx file locally with go-docx. Headings become
// sized bold runs, list records get a glyph prefix and space indentation,
// footer text is small italic gray, mention spans are bold blue.
type DOCXRenderer struct{}

func (d *DOCXRenderer) Render(ctx context.Context, title string, paras []notes.Paragraph) (*Result, error) {
	w := docx.New().WithDefaultTheme()

	if title != "" {
		w.AddParagraph().AddText(title).Size(h1Size).Bold()
		w.AddParagraph()
	}

	for _, p := range paras {
		para := w.AddParagraph()
		switch p.Kind {
		case notes.KindH1:
			para.AddText(p.Text).Size(h1Size).Bold()
		case notes.KindH2:
			para.AddText(p.Text).Size(h2Size).Bold()
		case notes.KindH3:
			para.AddText(p.Text).Size(h3Size).Bold()
		case notes.KindHR:
			para.AddText(strings.Repeat("─", 30)).Color(ruleColor)
		case notes.KindBullet:
			para.AddText(listPrefix(p.Level, bulletGlyph))
			addMentionRuns(para, p, nil)
		case notes.KindCheckbox:
			para.AddText(listPrefix(p.Level, checkboxGlyph))
			addMentionRuns(para, p, nil)
		case notes.KindFooter:
			addMentionRuns(para, p, footerRun)
		default:
			addMentionRuns(para, p, nil)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return &Result{Data: buf.Bytes(), ContentType: DOCXContentType}, nil
}

func listPrefix(level int, glyph string) string {
	return strings.Repeat("    ", level) + glyph
}

// footerRun applies the de-emphasized footer style to a run.
func footerRun(r *docx.Run) {
	r.Size(footerSize).Color(footerColor).Italic()
}

// addMentionRuns writes p.Text as one or more runs, splitting at mention
// span boundaries so mentions get their own bold colored run. The base
// styler, if any, is applied to every run.
func addMentionRuns(para *docx.Paragraph, p notes.Paragraph, base func(*docx.Run)) {
	pos := 0
	emit := func(s string, mention bool) {
		if s == "" {
			return
		}
		run := para.AddText(s)
		if base != nil {
			base(run)
		}
		if mention {
			run.Bold().Color(mentionColor)
		}
	}

	for _, m := range p.Mentions {
		if m.Start < pos || m.End > len(p.Text) {
			continue
		}
		emit(p.Text[pos:m.Start], false)
		emit(p.Text[m.Start:m.End], true)
		pos = m.End
	}
	emit(p.Text[pos:], false)
}
