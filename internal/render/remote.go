package render

import (
	"context"

	"github.com/dkarlsen/notedoc/internal/docsapi"
	"github.com/dkarlsen/notedoc/internal/notes"
)

// Style constants for the remote backend, in the backend's units: indent in
// points per nesting level, footer text at 9pt.
const (
	indentPerLevelPT = 36
	footerFontSizePT = 9
)

// RemoteRenderer renders through the document backend API: one document
// create, then a single batch of insert and style requests.
type RemoteRenderer struct {
	Client *docsapi.Client
}

func (r *RemoteRenderer) Render(ctx context.Context, title string, paras []notes.Paragraph) (*Result, error) {
	doc, err := r.Client.CreateDocument(ctx, title)
	if err != nil {
		return nil, err
	}

	reqs := BuildRequests(paras)
	if err := r.Client.BatchUpdate(ctx, doc.ID, reqs); err != nil {
		return nil, err
	}

	return &Result{URL: doc.URL}, nil
}

// paraRange tracks where a paragraph landed in the document body.
type paraRange struct {
	kind  notes.Kind
	level int
	start int
	end   int
}

// BuildRequests converts a paragraph record list into the backend's edit
// batch: first all text insertions in document order, then the styling
// requests over the inserted ranges. Ranges use byte offsets, matching the
// mention span convention.
func BuildRequests(paras []notes.Paragraph) []docsapi.Request {
	idx := 1
	var reqs []docsapi.Request
	var ranges []paraRange
	var mentionRanges []docsapi.Range
	var footerRanges []docsapi.Range

	addText := func(text string) (int, int) {
		reqs = append(reqs, docsapi.Request{InsertText: &docsapi.InsertText{
			Location: docsapi.Location{Index: idx},
			Text:     text + "\n",
		}})
		start := idx
		end := idx + len(text) + 1
		idx = end
		return start, end
	}

	for _, p := range paras {
		if p.Kind == notes.KindHR {
			addText("")
			reqs = append(reqs, docsapi.Request{InsertHorizontalRule: &docsapi.InsertHorizontalRule{
				Location: docsapi.Location{Index: idx},
			}})
			idx++
			addText("")
			continue
		}

		start, end := addText(p.Text)
		ranges = append(ranges, paraRange{kind: p.Kind, level: p.Level, start: start, end: end})
		for _, m := range p.Mentions {
			mentionRanges = append(mentionRanges, docsapi.Range{StartIndex: start + m.Start, EndIndex: start + m.End})
		}
		if p.Kind == notes.KindFooter {
			footerRanges = append(footerRanges, docsapi.Range{StartIndex: start, EndIndex: end - 1})
		}
	}

	namedStyle := func(pr paraRange, style string) docsapi.Request {
		return docsapi.Request{UpdateParagraphStyle: &docsapi.UpdateParagraphStyle{
			Range:          docsapi.Range{StartIndex: pr.start, EndIndex: pr.end},
			ParagraphStyle: docsapi.ParagraphStyle{NamedStyleType: style},
			Fields:         "namedStyleType",
		}}
	}
	indent := func(pr paraRange) docsapi.Request {
		return docsapi.Request{UpdateParagraphStyle: &docsapi.UpdateParagraphStyle{
			Range: docsapi.Range{StartIndex: pr.start, EndIndex: pr.end},
			ParagraphStyle: docsapi.ParagraphStyle{
				IndentStart: &docsapi.Dimension{Magnitude: float64(indentPerLevelPT * pr.level), Unit: "PT"},
			},
			Fields: "indentStart",
		}}
	}
	bullets := func(pr paraRange, preset string) docsapi.Request {
		return docsapi.Request{CreateParagraphBullets: &docsapi.CreateParagraphBullets{
			Range:        docsapi.Range{StartIndex: pr.start, EndIndex: pr.end},
			BulletPreset: preset,
		}}
	}

	for _, pr := range ranges {
		switch pr.kind {
		case notes.KindH1:
			reqs = append(reqs, namedStyle(pr, "HEADING_1"))
		case notes.KindH2:
			reqs = append(reqs, namedStyle(pr, "HEADING_2"))
		case notes.KindH3:
			reqs = append(reqs, namedStyle(pr, "HEADING_3"))
		}
	}

	for _, pr := range ranges {
		switch pr.kind {
		case notes.KindBullet:
			reqs = append(reqs, indent(pr), bullets(pr, "BULLET_DISC_CIRCLE_SQUARE"))
		case notes.KindCheckbox:
			reqs = append(reqs, indent(pr), bullets(pr, "BULLET_CHECKBOX"))
		}
	}

	for _, mr := range mentionRanges {
		reqs = append(reqs, docsapi.Request{UpdateTextStyle: &docsapi.UpdateTextStyle{
			Range: mr,
			TextStyle: docsapi.TextStyle{
				Bold:            true,
				ForegroundColor: docsapi.NewOptionalColor(0.10, 0.35, 0.85),
			},
			Fields: "bold,foregroundColor",
		}})
	}

	for _, fr := range footerRanges {
		reqs = append(reqs, docsapi.Request{UpdateTextStyle: &docsapi.UpdateTextStyle{
			Range: fr,
			TextStyle: docsapi.TextStyle{
				Italic:          true,
				ForegroundColor: docsapi.NewOptionalColor(0.45, 0.45, 0.45),
				FontSize:        &docsapi.Dimension{Magnitude: footerFontSizePT, Unit: "PT"},
			},
			Fields: "italic,foregroundColor,fontSize",
		}})
	}

	return reqs
}
