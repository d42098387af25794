package parser

import (
	"strings"
	"testing"

	"github.com/dkarlsen/notedoc/internal/notes"
)

func TestParseNotes_EndToEnd(t *testing.T) {
	input := strings.Join([]string{
		"# Team Sync - Weekly",
		"## Action Items",
		"- [ ] @alice sends report",
		"  - [ ] follow up",
		"---",
		"- Next meeting Friday",
	}, "\n")

	got := ParseNotes(input)

	want := []notes.Paragraph{
		{Kind: notes.KindH1, Text: "Team Sync"},
		{Kind: notes.KindText, Text: "Weekly"},
		{Kind: notes.KindH2, Text: "Action Items"},
		{Kind: notes.KindCheckbox, Text: "@alice sends report", Level: 0, Mentions: []notes.Span{{Start: 0, End: 6}}},
		{Kind: notes.KindCheckbox, Text: "follow up", Level: 1},
		{Kind: notes.KindHR, Text: ""},
		{Kind: notes.KindFooter, Text: "Next meeting Friday", Level: 0},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.Kind || g.Text != w.Text || g.Level != w.Level {
			t.Errorf("record[%d]: expected %+v, got %+v", i, w, g)
		}
		if len(g.Mentions) != len(w.Mentions) {
			t.Errorf("record[%d]: expected %d mentions, got %d", i, len(w.Mentions), len(g.Mentions))
			continue
		}
		for j, span := range w.Mentions {
			if g.Mentions[j] != span {
				t.Errorf("record[%d] mention[%d]: expected %+v, got %+v", i, j, span, g.Mentions[j])
			}
		}
	}
}

func TestParseNotes_HeadingSplit(t *testing.T) {
	got := ParseNotes("# Sync - Weekly")
	if len(got) != 2 {
		t.Fatalf("expected 2 records for split heading, got %d", len(got))
	}
	if got[0].Kind != notes.KindH1 || got[0].Text != "Sync" {
		t.Errorf("expected h1 %q, got %s %q", "Sync", got[0].Kind, got[0].Text)
	}
	if got[1].Kind != notes.KindText || got[1].Text != "Weekly" {
		t.Errorf("expected text %q, got %s %q", "Weekly", got[1].Kind, got[1].Text)
	}

	got = ParseNotes("# Sync")
	if len(got) != 1 {
		t.Fatalf("expected 1 record for plain heading, got %d", len(got))
	}
	if got[0].Kind != notes.KindH1 || got[0].Text != "Sync" {
		t.Errorf("expected h1 %q, got %s %q", "Sync", got[0].Kind, got[0].Text)
	}
}

func TestParseNotes_HeadingSplitOnlyFirstSeparator(t *testing.T) {
	// Only the first " - " splits; the rest stays in the subtitle.
	got := ParseNotes("# A - B - C")
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Text != "A" {
		t.Errorf("expected title %q, got %q", "A", got[0].Text)
	}
	if got[1].Text != "B - C" {
		t.Errorf("expected subtitle %q, got %q", "B - C", got[1].Text)
	}
}

func TestParseNotes_HeadingDanglingDash(t *testing.T) {
	// Trailing whitespace is stripped before the split, so a dangling " - "
	// never matches; the dash stays in the title and no subtitle is emitted.
	got := ParseNotes("# Sync - ")
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Kind != notes.KindH1 || got[0].Text != "Sync -" {
		t.Errorf("expected h1 %q, got %s %q", "Sync -", got[0].Kind, got[0].Text)
	}
}

func TestParseNotes_HeadingLevels(t *testing.T) {
	got := ParseNotes("## Section\n### Subsection")
	if got[0].Kind != notes.KindH2 || got[0].Text != "Section" {
		t.Errorf("expected h2 %q, got %s %q", "Section", got[0].Kind, got[0].Text)
	}
	if got[1].Kind != notes.KindH3 || got[1].Text != "Subsection" {
		t.Errorf("expected h3 %q, got %s %q", "Subsection", got[1].Kind, got[1].Text)
	}
}

func TestParseNotes_CheckboxVsBullet(t *testing.T) {
	tests := []struct {
		line     string
		wantKind notes.Kind
		wantText string
	}{
		{"- [ ] buy milk", notes.KindCheckbox, "buy milk"},
		{"- buy milk", notes.KindBullet, "buy milk"},
		{"* starred item", notes.KindBullet, "starred item"},
		// No whitespace after the box: matches neither checkbox nor bullet.
		{"-[ ]buy milk", notes.KindText, "-[ ]buy milk"},
		// Space between dash and box is optional, space after the box is not.
		{"-[ ] buy milk", notes.KindCheckbox, "buy milk"},
		{"- [ ]x", notes.KindBullet, "[ ]x"},
	}
	for _, tt := range tests {
		got := ParseNotes(tt.line)
		if len(got) != 1 {
			t.Fatalf("%q: expected 1 record, got %d", tt.line, len(got))
		}
		if got[0].Kind != tt.wantKind {
			t.Errorf("%q: expected kind %s, got %s", tt.line, tt.wantKind, got[0].Kind)
		}
		if got[0].Text != tt.wantText {
			t.Errorf("%q: expected text %q, got %q", tt.line, tt.wantText, got[0].Text)
		}
	}
}

func TestParseNotes_IndentationLevels(t *testing.T) {
	tests := []struct {
		line      string
		wantLevel int
	}{
		{"- top", 0},
		{"  - nested", 1},
		{"    - deeper", 2},
		{"   - odd indent rounds down", 1},
		{"  - [ ] nested box", 1},
	}
	for _, tt := range tests {
		got := ParseNotes(tt.line)
		if len(got) != 1 {
			t.Fatalf("%q: expected 1 record, got %d", tt.line, len(got))
		}
		if got[0].Level != tt.wantLevel {
			t.Errorf("%q: expected level %d, got %d", tt.line, tt.wantLevel, got[0].Level)
		}
	}
}

func TestParseNotes_TabIndentCountsAsOneCharacter(t *testing.T) {
	// Tabs are not expanded; two leading tabs make one level.
	got := ParseNotes("\t\t- item")
	if got[0].Kind != notes.KindBullet {
		t.Fatalf("expected bullet, got %s", got[0].Kind)
	}
	if got[0].Level != 1 {
		t.Errorf("expected level 1 for two-tab indent, got %d", got[0].Level)
	}
}

func TestParseNotes_FooterLatch(t *testing.T) {
	input := strings.Join([]string{
		"intro text",
		"- a bullet",
		"---",
		"plain line",
		"- footer bullet",
		"",
		"## Heading Inside Footer",
		"- [ ] checkbox inside footer",
		"---",
		"still footer",
	}, "\n")

	got := ParseNotes(input)

	wantKinds := []notes.Kind{
		notes.KindText,
		notes.KindBullet,
		notes.KindHR,
		notes.KindFooter,
		notes.KindFooter,
		notes.KindText, // blank lines are never footer
		notes.KindH2,   // headings keep their kind
		notes.KindCheckbox,
		notes.KindHR, // repeated hr still emits hr
		notes.KindFooter,
	}
	if len(got) != len(wantKinds) {
		t.Fatalf("expected %d records, got %d", len(wantKinds), len(got))
	}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Errorf("record[%d] (%q): expected kind %s, got %s", i, got[i].Text, k, got[i].Kind)
		}
	}
}

func TestParseNotes_NoFooterBeforeSeparator(t *testing.T) {
	got := ParseNotes("line one\nline two\n---")
	for i := 0; i < 2; i++ {
		if got[i].Kind == notes.KindFooter {
			t.Errorf("record[%d]: footer kind before any separator", i)
		}
	}
}

func TestParseNotes_HeadingSubtitleExemptFromFooter(t *testing.T) {
	// A heading subtitle is authored from the heading line, so it stays
	// plain text even when the footer latch is set.
	got := ParseNotes("---\n# Recap - Q3")
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[1].Kind != notes.KindH1 {
		t.Errorf("expected h1, got %s", got[1].Kind)
	}
	if got[2].Kind != notes.KindText || got[2].Text != "Q3" {
		t.Errorf("expected text %q, got %s %q", "Q3", got[2].Kind, got[2].Text)
	}
	// The latch stays set for following ordinary lines.
	got = ParseNotes("---\n# Recap - Q3\nafter")
	if got[3].Kind != notes.KindFooter {
		t.Errorf("expected footer after heading, got %s", got[3].Kind)
	}
}

func TestParseNotes_HRRequiresExactDashes(t *testing.T) {
	tests := []struct {
		line     string
		wantKind notes.Kind
	}{
		{"---", notes.KindHR},
		{"   ---   ", notes.KindHR}, // surrounding whitespace is trimmed
		{"----", notes.KindText},
		{"-- -", notes.KindText},
		{"--", notes.KindText},
	}
	for _, tt := range tests {
		got := ParseNotes(tt.line)
		if got[0].Kind != tt.wantKind {
			t.Errorf("%q: expected kind %s, got %s", tt.line, tt.wantKind, got[0].Kind)
		}
	}
}

func TestParseNotes_MentionSpans(t *testing.T) {
	got := ParseNotes("ping @alice and @bob_2")
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	spans := got[0].Mentions
	want := []notes.Span{{Start: 5, End: 11}, {Start: 16, End: 22}}
	if len(spans) != len(want) {
		t.Fatalf("expected %d mentions, got %d", len(want), len(spans))
	}
	for i, w := range want {
		if spans[i] != w {
			t.Errorf("mention[%d]: expected %+v, got %+v", i, w, spans[i])
		}
	}
	if got[0].Text[spans[0].Start:spans[0].End] != "@alice" {
		t.Errorf("span 0 does not select @alice: %q", got[0].Text[spans[0].Start:spans[0].End])
	}
	if got[0].Text[spans[1].Start:spans[1].End] != "@bob_2" {
		t.Errorf("span 1 does not select @bob_2: %q", got[0].Text[spans[1].Start:spans[1].End])
	}
}

func TestParseNotes_MentionSpansRelativeToTrimmedText(t *testing.T) {
	// Leading whitespace is trimmed before spans are computed.
	got := ParseNotes("   @carol review")
	if got[0].Text != "@carol review" {
		t.Fatalf("expected trimmed text, got %q", got[0].Text)
	}
	if len(got[0].Mentions) != 1 || got[0].Mentions[0].Start != 0 || got[0].Mentions[0].End != 6 {
		t.Errorf("expected mention (0,6), got %+v", got[0].Mentions)
	}
}

func TestParseNotes_NoMentionsInHeadings(t *testing.T) {
	got := ParseNotes("# Standup with @dave\n## @eve's items")
	for i, p := range got {
		if len(p.Mentions) != 0 {
			t.Errorf("record[%d] (%s): headings must not carry mention spans", i, p.Kind)
		}
	}
}

func TestParseNotes_LineCountInvariant(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 1}, // a single empty line
		{"a\nb\nc", 3},
		{"a\n\nb", 3},
		{"# Title - Sub\nbody", 3}, // heading split adds one
		{"# Title -\nbody", 2},     // no separator match, no extra record
		{"a\r\nb\rc", 3},           // any line-ending convention
	}
	for _, tt := range tests {
		got := ParseNotes(tt.input)
		if len(got) != tt.want {
			t.Errorf("%q: expected %d records, got %d", tt.input, tt.want, len(got))
		}
	}
}

func TestParseNotes_Totality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t\n  ",
		"\x00\x01\x02",
		"normal\x00mixed",
		strings.Repeat("-", 1000),
		"# \n## \n### ",
		"- \n* ",
		"\r\r\n\r",
	}
	for _, in := range inputs {
		got := ParseNotes(in)
		if got == nil {
			t.Errorf("%q: expected non-nil record list", in)
		}
		for i, p := range got {
			for _, m := range p.Mentions {
				if m.Start < 0 || m.End > len(p.Text) || m.Start >= m.End {
					t.Errorf("%q: record[%d] has invalid span %+v for text %q", in, i, m, p.Text)
				}
			}
		}
	}
}

func TestParseNotes_BlankLinesEmitEmptyTextRecords(t *testing.T) {
	got := ParseNotes("a\n\n  \nb")
	if len(got) != 4 {
		t.Fatalf("expected 4 records, got %d", len(got))
	}
	for _, i := range []int{1, 2} {
		if got[i].Kind != notes.KindText || got[i].Text != "" {
			t.Errorf("record[%d]: expected empty text record, got %s %q", i, got[i].Kind, got[i].Text)
		}
	}
}

func TestParseNotes_TrailingWhitespaceStripped(t *testing.T) {
	got := ParseNotes("- item   \n## Section\t")
	if got[0].Text != "item" {
		t.Errorf("expected %q, got %q", "item", got[0].Text)
	}
	if got[1].Kind != notes.KindH2 || got[1].Text != "Section" {
		t.Errorf("expected h2 %q, got %s %q", "Section", got[1].Kind, got[1].Text)
	}
}

func TestNotesParser_ReaderInterface(t *testing.T) {
	p := &NotesParser{}
	paras, err := p.Parse(strings.NewReader("# Hi\n- there"), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 2 {
		t.Fatalf("expected 2 records, got %d", len(paras))
	}
	if paras[0].Kind != notes.KindH1 || paras[1].Kind != notes.KindBullet {
		t.Errorf("unexpected kinds: %s, %s", paras[0].Kind, paras[1].Kind)
	}
}
