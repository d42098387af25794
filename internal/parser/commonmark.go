package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dkarlsen/notedoc/internal/notes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// CommonMarkParser accepts arbitrary Markdown using goldmark and lowers its
// AST to the outline paragraph records. Constructs the outline grammar has no
// kind for (deep headings, ordered lists, code blocks) degrade to the nearest
// record: headings past level 3 become h3, every list item becomes a bullet
// or checkbox, anything else becomes text.
type CommonMarkParser struct{}

func (p *CommonMarkParser) Parse(r io.Reader, filename string) ([]notes.Paragraph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var out []notes.Paragraph
	inFooter := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		// Source blank lines separate blocks; keep that spacing in the
		// record stream.
		if len(out) > 0 {
			out = append(out, notes.Paragraph{Kind: notes.KindText})
		}

		switch node := n.(type) {
		case *ast.Heading:
			out = appendHeading(out, node.Level, string(node.Text(src)))

		case *ast.ThematicBreak:
			out = append(out, notes.Paragraph{Kind: notes.KindHR})
			inFooter = true

		case *ast.List:
			out = lowerList(out, node, src, 0, inFooter)

		default:
			t := extractText(n, src)
			if t == "" {
				// Drop the separator we just added for an empty block.
				out = out[:len(out)-1]
				continue
			}
			for _, line := range strings.Split(t, "\n") {
				line = strings.TrimSpace(line)
				kind := notes.KindText
				if inFooter && line != "" {
					kind = notes.KindFooter
				}
				out = append(out, notes.Paragraph{Kind: kind, Text: line, Mentions: MentionSpans(line)})
			}
		}
	}

	if out == nil {
		out = []notes.Paragraph{}
	}
	return out, nil
}

// appendHeading emits a heading record, splitting an h1 title on " - " into
// title plus subtitle the same way the strict classifier does.
func appendHeading(out []notes.Paragraph, level int, title string) []notes.Paragraph {
	title = strings.TrimSpace(title)
	switch {
	case level <= 1:
		main, rest, _ := strings.Cut(title, " - ")
		out = append(out, notes.Paragraph{Kind: notes.KindH1, Text: strings.TrimSpace(main)})
		if rest = strings.TrimSpace(rest); rest != "" {
			out = append(out, notes.Paragraph{Kind: notes.KindText, Text: rest})
		}
	case level == 2:
		out = append(out, notes.Paragraph{Kind: notes.KindH2, Text: title})
	default:
		out = append(out, notes.Paragraph{Kind: notes.KindH3, Text: title})
	}
	return out
}

// lowerList walks a list node, emitting one record per item at the given
// nesting level and recursing into nested lists one level deeper.
func lowerList(out []notes.Paragraph, list *ast.List, src []byte, level int, inFooter bool) []notes.Paragraph {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		task := false
		var itemText strings.Builder
		var nested []*ast.List

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			if hasTaskCheckBox(c) {
				task = true
			}
			if t := extractText(c, src); t != "" {
				if itemText.Len() > 0 {
					itemText.WriteString(" ")
				}
				itemText.WriteString(t)
			}
		}

		txt := strings.TrimSpace(itemText.String())
		if txt != "" {
			kind := notes.KindBullet
			if task {
				kind = notes.KindCheckbox
			} else if inFooter {
				kind = notes.KindFooter
			}
			out = append(out, notes.Paragraph{
				Kind:     kind,
				Text:     txt,
				Level:    level,
				Mentions: MentionSpans(txt),
			})
		}

		for _, sub := range nested {
			out = lowerList(out, sub, src, level+1, inFooter)
		}
	}
	return out
}

func hasTaskCheckBox(n ast.Node) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.TaskCheckBox); ok {
			return true
		}
	}
	return false
}

// extractText gets the text content of a goldmark AST node. Inline children
// win over raw block lines: for task items the raw lines still carry the
// "[ ]" marker that the TaskList transformer moved into a TaskCheckBox node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	if buf.Len() == 0 && n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	return strings.TrimSpace(buf.String())
}
