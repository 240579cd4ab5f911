// Package glyph parses FIGlet bitmap fonts and renders text into
// multi-line glyph blocks.
package glyph

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const signature = "flf2a"

// Characters every FIGlet font defines in order after the comment block:
// ASCII 32..126 followed by seven Deutsch characters
var requiredCodes = func() []rune {
	codes := make([]rune, 0, 102)
	for r := rune(32); r <= 126; r++ {
		codes = append(codes, r)
	}
	return append(codes, 196, 214, 220, 228, 246, 252, 223)
}()

var (
	ErrBadHeader    = errors.New("invalid font header")
	ErrTruncated    = errors.New("truncated character data")
	ErrMissingGlyph = errors.New("missing glyph")
)

// Header carries the fields of the flf2a header line
type Header struct {
	Hardblank      rune
	Height         int
	Baseline       int
	MaxLength      int
	OldLayout      int
	CommentLines   int
	PrintDirection int
	FullLayout     int
	CodetagCount   int
}

// glyphCell is one character's rows, right-padded to a common width
type glyphCell struct {
	Rows  []string
	Width int
}

// Font maps runes to cells of a fixed height
type Font struct {
	header  Header
	comment string
	cells   map[rune]glyphCell
}

// Parse reads a FIGlet font. Characters whose rows are all empty are left
// undefined.
func Parse(data []byte) (*Font, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: empty input", ErrBadHeader)
	}
	h, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	f := &Font{header: h, cells: make(map[rune]glyphCell)}

	var comment []string
	for i := 0; i < h.CommentLines; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: comment block", ErrTruncated)
		}
		comment = append(comment, sc.Text())
	}
	f.comment = strings.Join(comment, "\n")

	for _, code := range requiredCodes {
		rows, ok, err := readRows(sc, h.Height)
		if err != nil {
			return nil, fmt.Errorf("character %d: %w", code, err)
		}
		if !ok {
			// Fonts may stop short of the full required set
			break
		}
		f.define(code, rows)
	}

	// Code-tagged characters: "<code> [description]" then the rows
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		code, err := parseCode(fields[0])
		if err != nil {
			return nil, fmt.Errorf("code tag %q: %w", fields[0], err)
		}
		rows, ok, err := readRows(sc, h.Height)
		if err != nil || !ok {
			return nil, fmt.Errorf("character %d: %w", code, ErrTruncated)
		}
		// Negative codes are reserved for translation tables
		if code >= 0 {
			f.define(rune(code), rows)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("font read: %w", err)
	}

	if len(f.cells) == 0 {
		return nil, fmt.Errorf("%w: font defines no characters", ErrTruncated)
	}
	return f, nil
}

func parseHeader(line string) (Header, error) {
	if !strings.HasPrefix(line, signature) || len(line) <= len(signature) {
		return Header{}, fmt.Errorf("%w: missing %s signature", ErrBadHeader, signature)
	}
	hardblank, _ := utf8.DecodeRuneInString(line[len(signature):])
	fields := strings.Fields(line[len(signature)+utf8.RuneLen(hardblank):])
	if len(fields) < 5 {
		return Header{}, fmt.Errorf("%w: expected at least 5 parameters, got %d", ErrBadHeader, len(fields))
	}

	// Optional trailing fields default to zero
	nums := make([]int, 8)
	for i, s := range fields {
		if i >= len(nums) {
			break
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Header{}, fmt.Errorf("%w: parameter %d: %v", ErrBadHeader, i+1, err)
		}
		nums[i] = n
	}

	h := Header{
		Hardblank:      hardblank,
		Height:         nums[0],
		Baseline:       nums[1],
		MaxLength:      nums[2],
		OldLayout:      nums[3],
		CommentLines:   nums[4],
		PrintDirection: nums[5],
		FullLayout:     nums[6],
		CodetagCount:   nums[7],
	}
	if h.Height < 1 {
		return Header{}, fmt.Errorf("%w: height %d", ErrBadHeader, h.Height)
	}
	if h.CommentLines < 0 {
		return Header{}, fmt.Errorf("%w: comment lines %d", ErrBadHeader, h.CommentLines)
	}
	return h, nil
}

// parseCode reads a code tag in decimal, 0x hex or leading-zero octal
func parseCode(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 32)
}

// readRows reads one character; ok is false at a clean end of input
func readRows(sc *bufio.Scanner, height int) ([]string, bool, error) {
	rows := make([]string, 0, height)
	for len(rows) < height {
		if !sc.Scan() {
			if len(rows) == 0 {
				return nil, false, nil
			}
			return nil, false, ErrTruncated
		}
		rows = append(rows, stripEndmark(sc.Text()))
	}
	return rows, true, nil
}

// stripEndmark removes the trailing run of the line's last character
func stripEndmark(line string) string {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return line
	}
	mark, _ := utf8.DecodeLastRuneInString(line)
	return strings.TrimRight(line, string(mark))
}

func (f *Font) define(code rune, rows []string) {
	width := 0
	for i, row := range rows {
		row = strings.ReplaceAll(row, string(f.header.Hardblank), " ")
		rows[i] = row
		if w := runewidth.StringWidth(row); w > width {
			width = w
		}
	}
	if width == 0 {
		return
	}
	for i, row := range rows {
		if pad := width - runewidth.StringWidth(row); pad > 0 {
			rows[i] = row + strings.Repeat(" ", pad)
		}
	}
	f.cells[code] = glyphCell{Rows: rows, Width: width}
}

// Header returns the parsed header
func (f *Font) Header() Header {
	return f.header
}

// Comment returns the font's comment block
func (f *Font) Comment() string {
	return f.comment
}

// Height is the row count shared by every cell
func (f *Font) Height() int {
	return f.header.Height
}

// Has reports whether r has a cell
func (f *Font) Has(r rune) bool {
	_, ok := f.cells[r]
	return ok
}

// Runes returns every defined rune in ascending order
func (f *Font) Runes() []rune {
	runes := make([]rune, 0, len(f.cells))
	for r := range f.cells {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// Require fails unless every rune in chars has a cell
func (f *Font) Require(chars string) error {
	var missing []string
	for _, r := range chars {
		if !f.Has(r) {
			missing = append(missing, strconv.QuoteRune(r))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingGlyph, strings.Join(missing, ", "))
	}
	return nil
}
