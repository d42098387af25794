package notes

import "strings"

// Kind classifies a paragraph record. The set is closed: renderers switch
// over these values exhaustively.
type Kind string

const (
	KindText     Kind = "text"
	KindH1       Kind = "h1"
	KindH2       Kind = "h2"
	KindH3       Kind = "h3"
	KindBullet   Kind = "bullet"
	KindCheckbox Kind = "checkbox"
	KindFooter   Kind = "footer"
	KindHR       Kind = "hr"
)

// Span is a half-open [Start, End) byte-offset range into a paragraph's Text.
// Offsets are byte positions in the UTF-8 string, which coincide with
// codepoint positions for the ASCII @word tokens the mention grammar emits.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Paragraph is one typed record of a parsed note. Level is meaningful only
// for bullet and checkbox records. Mentions are non-overlapping and ordered
// left to right.
type Paragraph struct {
	Kind     Kind   `json:"kind"`
	Text     string `json:"text"`
	Level    int    `json:"level,omitempty"`
	Mentions []Span `json:"mentions,omitempty"`
}

// FlattenText joins all record text into a single string, one record per
// line. Used for content hashing and duplicate detection.
func FlattenText(paras []Paragraph) string {
	var sb strings.Builder
	for i, p := range paras {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
