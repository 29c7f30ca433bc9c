package workbook

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Cell holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "empty"
	}
}

// Cell is a single spreadsheet value: empty, a number, or text.
// The zero value is an empty cell.
type Cell struct {
	kind Kind
	num  float64
	text string
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{kind: KindNumber, num: v} }

// Text returns a text cell. Whitespace-only text collapses to an empty cell.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{kind: KindText, text: s}
}

// Kind reports the variant held by the cell.
func (c Cell) Kind() Kind { return c.kind }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// Float returns the numeric value and true for number cells.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell as text. Numbers use the shortest exact decimal
// form, so a date serial such as 45123 renders as "45123".
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindText:
		return c.text
	default:
		return ""
	}
}

// Lower returns the trimmed, lowercased text form used by label matching.
func (c Cell) Lower() string {
	return strings.ToLower(strings.TrimSpace(c.String()))
}

// parseRaw types a raw value read from a container that does not say
// whether the value is numeric.
func parseRaw(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return Text(raw)
}
