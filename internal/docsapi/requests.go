package docsapi

// Request is one edit operation in a batch update. Exactly one field is set.
type Request struct {
	InsertText             *InsertText             `json:"insertText,omitempty"`
	InsertHorizontalRule   *InsertHorizontalRule   `json:"insertHorizontalRule,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyle   `json:"updateParagraphStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBullets `json:"createParagraphBullets,omitempty"`
	UpdateTextStyle        *UpdateTextStyle        `json:"updateTextStyle,omitempty"`
}

// Location is a single character index in the document body.
type Location struct {
	Index int `json:"index"`
}

// Range is a half-open [StartIndex, EndIndex) byte-offset range into the
// document body, matching the mention span convention.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

type InsertText struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

type InsertHorizontalRule struct {
	Location Location `json:"location"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

type ParagraphStyle struct {
	NamedStyleType string     `json:"namedStyleType,omitempty"`
	IndentStart    *Dimension `json:"indentStart,omitempty"`
}

type UpdateParagraphStyle struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	Fields         string         `json:"fields"`
}

type CreateParagraphBullets struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

type RGBColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type OptionalColor struct {
	Color struct {
		RGBColor RGBColor `json:"rgbColor"`
	} `json:"color"`
}

// NewOptionalColor builds the nested color wrapper the wire format expects.
func NewOptionalColor(r, g, b float64) *OptionalColor {
	var c OptionalColor
	c.Color.RGBColor = RGBColor{Red: r, Green: g, Blue: b}
	return &c
}

type TextStyle struct {
	Bold            bool           `json:"bold,omitempty"`
	Italic          bool           `json:"italic,omitempty"`
	ForegroundColor *OptionalColor `json:"foregroundColor,omitempty"`
	FontSize        *Dimension     `json:"fontSize,omitempty"`
}

type UpdateTextStyle struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}
