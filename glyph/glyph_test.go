package glyph

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildFont assembles a height-2 flf2a font. cells maps runes from the
// required set to their two rows; every other required character is empty.
// tagged entries are appended as code-tagged characters.
func buildFont(cells map[rune][2]string, tagged map[string][2]string) string {
	var b strings.Builder
	b.WriteString("flf2a$ 2 1 10 -1 1 0 0 0\n")
	b.WriteString("test font\n")
	for _, code := range requiredCodes {
		rows := cells[code]
		fmt.Fprintf(&b, "%s@\n%s@@\n", rows[0], rows[1])
	}
	for tag, rows := range tagged {
		fmt.Fprintf(&b, "%s\n%s@\n%s@@\n", tag, rows[0], rows[1])
	}
	return b.String()
}

func testFont(t *testing.T) *Font {
	t.Helper()
	src := buildFont(map[rune][2]string{
		' ': {"$$", "$$"},
		'1': {"#", "#"},
		'2': {"##", " #"},
		':': {".", "."},
		'E': {"EE", "E"},
		'R': {"RR", "R "},
	}, map[string][2]string{
		"0x263A  WHITE SMILING FACE": {"()", "--"},
		"-1  translation entry":      {"x", "x"},
	})
	f, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestParse_Header(t *testing.T) {
	f := testFont(t)
	h := f.Header()
	if h.Hardblank != '$' || h.Height != 2 || h.Baseline != 1 || h.OldLayout != -1 || h.CommentLines != 1 {
		t.Errorf("header mismatch: %+v", h)
	}
	if f.Comment() != "test font" {
		t.Errorf("comment: %q", f.Comment())
	}
	if f.Height() != 2 {
		t.Errorf("height: %d", f.Height())
	}
}

func TestParse_Cells(t *testing.T) {
	f := testFont(t)

	for _, r := range " 12:ER☺" {
		if !f.Has(r) {
			t.Errorf("expected cell for %q", r)
		}
	}
	// Empty characters stay undefined
	for _, r := range "3Aa!" {
		if f.Has(r) {
			t.Errorf("unexpected cell for %q", r)
		}
	}

	space := f.cells[' ']
	if space.Rows[0] != "  " || space.Width != 2 {
		t.Errorf("hardblanks not replaced: %+v", space)
	}
	// Short rows are padded to the cell width
	e := f.cells['E']
	if e.Rows[1] != "E " || e.Width != 2 {
		t.Errorf("padding: %+v", e)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrBadHeader},
		{"no signature", "flf1a$ 2 1 10 -1 0\n", ErrBadHeader},
		{"few params", "flf2a$ 2 1\n", ErrBadHeader},
		{"zero height", "flf2a$ 0 1 10 -1 0\n", ErrBadHeader},
		{"bad number", "flf2a$ x 1 10 -1 0\n", ErrBadHeader},
		{"short comments", "flf2a$ 2 1 10 -1 3\nonly one\n", ErrTruncated},
		{"truncated glyph", "flf2a$ 2 1 10 -1 0\n$$@\n", ErrTruncated},
		{"no characters", "flf2a$ 2 1 10 -1 0\n", ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	f := testFont(t)
	if err := f.Require("12:ER"); err != nil {
		t.Errorf("Require: %v", err)
	}
	err := f.Require("123")
	if !errors.Is(err, ErrMissingGlyph) {
		t.Fatalf("expected ErrMissingGlyph, got %v", err)
	}
	if !strings.Contains(err.Error(), "'3'") {
		t.Errorf("missing rune not named: %v", err)
	}
}

func TestConvert(t *testing.T) {
	f := testFont(t)

	b, err := f.Convert("12:1")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := []string{"###.#", "# #.#"}
	if !b.Equal(Block{Rows: want}) {
		t.Errorf("got %q, want %q", b.Rows, want)
	}
	if b.Width() != 5 || b.Height() != 2 {
		t.Errorf("size %dx%d", b.Width(), b.Height())
	}
	if b.String() != "###.#\n# #.#" {
		t.Errorf("String: %q", b.String())
	}
}

func TestConvert_Errors(t *testing.T) {
	f := testFont(t)
	if _, err := f.Convert(""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty text: %v", err)
	}
	if _, err := f.Convert("13"); !errors.Is(err, ErrMissingGlyph) {
		t.Errorf("missing glyph: %v", err)
	}
}

func TestRender_Fallback(t *testing.T) {
	f := testFont(t)
	errBlock, _ := f.Convert(Fallback)

	for _, text := range []string{"", "3", "1\n2", "12:X"} {
		if got := Render(f, text); !got.Equal(errBlock) {
			t.Errorf("Render(%q) = %q, want fallback", text, got.Rows)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	f := testFont(t)
	a := Render(f, "21:12")
	b := Render(f, "21:12")
	if a.String() != b.String() {
		t.Errorf("renders differ:\n%s\n%s", a, b)
	}
}

func TestRender_CorruptFontPanics(t *testing.T) {
	f, err := Parse([]byte(buildFont(map[rune][2]string{'1': {"#", "#"}}, nil)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for font without fallback glyphs")
		}
	}()
	Render(f, "2")
}

func TestBlock_Empty(t *testing.T) {
	if !(Block{}).Empty() {
		t.Error("zero block should be empty")
	}
	if (Block{Rows: []string{"", "x"}}).Empty() {
		t.Error("block with content reported empty")
	}
}

func TestBlock_Trim(t *testing.T) {
	tests := []struct {
		rows []string
		want []string
	}{
		{[]string{"  ", "##", " #", "  "}, []string{"##", " #"}},
		{[]string{"##", "  ", "##"}, []string{"##", "  ", "##"}},
		{[]string{"   ", "", " "}, []string{}},
		{nil, []string{}},
	}
	for _, tt := range tests {
		got := Block{Rows: tt.rows}.Trim()
		if !got.Equal(Block{Rows: tt.want}) {
			t.Errorf("Trim(%q) = %q, want %q", tt.rows, got.Rows, tt.want)
		}
	}
}
