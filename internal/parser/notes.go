package parser

import (
	"io"
	"regexp"
	"strings"

	"github.com/dkarlsen/notedoc/internal/notes"
)

// NotesParser handles the constrained outline format: # headings with
// optional " - " subtitles, -/* bullets, - [ ] checkboxes, --- separators,
// and a trailing footer section after the first separator.
type NotesParser struct{}

func (p *NotesParser) Parse(r io.Reader, filename string) ([]notes.Paragraph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseNotes(string(src)), nil
}

var (
	mentionRe  = regexp.MustCompile(`@\w+`)
	checkboxRe = regexp.MustCompile(`^(\s*)-\s*\[ \]\s+(.*)$`)
	bulletRe   = regexp.MustCompile(`^(\s*)([-*])\s+(.*)$`)
)

// ParseNotes classifies each line of src into a paragraph record. It is a
// pure function, total over all inputs: any line that matches no richer
// pattern degrades to a plain text record.
//
// A "---" line latches footer mode for the rest of the input. Once latched,
// plain lines and bullets are tagged footer; blank lines, headings, and
// checkboxes keep their own kind. A heading's " - " subtitle is emitted as a
// plain text record regardless of the latch, and headings never reset it.
//
// Nesting level is the leading-whitespace length divided by two. Tabs are not
// expanded; each leading whitespace character counts as one.
func ParseNotes(src string) []notes.Paragraph {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	lines := strings.Split(src, "\n")

	out := make([]notes.Paragraph, 0, len(lines))
	inFooter := false

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")

		if strings.TrimSpace(line) == "" {
			out = append(out, notes.Paragraph{Kind: notes.KindText})
			continue
		}

		if strings.TrimSpace(line) == "---" {
			out = append(out, notes.Paragraph{Kind: notes.KindHR})
			inFooter = true
			continue
		}

		if strings.HasPrefix(line, "# ") {
			title := strings.TrimSpace(line[2:])
			main, rest, _ := strings.Cut(title, " - ")
			out = append(out, notes.Paragraph{Kind: notes.KindH1, Text: strings.TrimSpace(main)})
			if rest = strings.TrimSpace(rest); rest != "" {
				out = append(out, notes.Paragraph{Kind: notes.KindText, Text: rest})
			}
			continue
		}

		if strings.HasPrefix(line, "## ") {
			out = append(out, notes.Paragraph{Kind: notes.KindH2, Text: strings.TrimSpace(line[3:])})
			continue
		}

		if strings.HasPrefix(line, "### ") {
			out = append(out, notes.Paragraph{Kind: notes.KindH3, Text: strings.TrimSpace(line[4:])})
			continue
		}

		if m := checkboxRe.FindStringSubmatch(line); m != nil {
			txt := strings.TrimSpace(m[2])
			out = append(out, notes.Paragraph{
				Kind:     notes.KindCheckbox,
				Text:     txt,
				Level:    len(m[1]) / 2,
				Mentions: MentionSpans(txt),
			})
			continue
		}

		if m := bulletRe.FindStringSubmatch(line); m != nil {
			txt := strings.TrimSpace(m[3])
			kind := notes.KindBullet
			if inFooter {
				kind = notes.KindFooter
			}
			out = append(out, notes.Paragraph{
				Kind:     kind,
				Text:     txt,
				Level:    len(m[1]) / 2,
				Mentions: MentionSpans(txt),
			})
			continue
		}

		txt := strings.TrimSpace(line)
		kind := notes.KindText
		if inFooter {
			kind = notes.KindFooter
		}
		out = append(out, notes.Paragraph{Kind: kind, Text: txt, Mentions: MentionSpans(txt)})
	}

	return out
}

// MentionSpans finds @word tokens in s and returns their byte-offset ranges,
// non-overlapping, in scan order.
func MentionSpans(s string) []notes.Span {
	idx := mentionRe.FindAllStringIndex(s, -1)
	if len(idx) == 0 {
		return nil
	}
	spans := make([]notes.Span, len(idx))
	for i, m := range idx {
		spans[i] = notes.Span{Start: m[0], End: m[1]}
	}
	return spans
}
