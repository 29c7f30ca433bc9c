package an01

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"procura/internal/workbook"
)

var (
	leadingFloat   = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)`)
	leadingInt     = regexp.MustCompile(`^[-+]?\d+`)
	percentPattern = regexp.MustCompile(`^[-+]?\d+(?:[.,]\d+)?\s*%$`)
)

const currencySymbols = "€$£"

// ParseCurrency reads an amount such as "1 036 593,62 €" or 1036593.62.
// Unparseable values read as 0.
func ParseCurrency(c workbook.Cell) float64 {
	if v, ok := c.Float(); ok {
		return v
	}
	if c.Kind() != workbook.KindText {
		return 0
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(currencySymbols, r) {
			return -1
		}
		return r
	}, c.String())
	s = strings.TrimSuffix(strings.ToUpper(s), "EUR")
	return parseLeadingFloat(normalizeSeparators(s))
}

// ParseScore reads a score such as "85,5" or 85.5. Unparseable values read as 0.
func ParseScore(c workbook.Cell) float64 {
	if v, ok := c.Float(); ok {
		return v
	}
	if c.Kind() != workbook.KindText {
		return 0
	}
	s := strings.ReplaceAll(stripSpaces(c.String()), ",", ".")
	return parseLeadingFloat(s)
}

// ParsePercent reads a rate as a whole percentage. Values below 1 are
// fractions (0.2 -> 20); values of 1 or more are already percentages.
// Strings may carry a trailing "%" and a decimal comma. Unparseable
// values read as 0.
func ParsePercent(c workbook.Cell) int {
	if v, ok := c.Float(); ok {
		return percentOf(v)
	}
	if c.Kind() != workbook.KindText {
		return 0
	}
	s := strings.TrimSuffix(stripSpaces(c.String()), "%")
	return percentOf(parseLeadingFloat(strings.ReplaceAll(s, ",", ".")))
}

// ParseRank reads the integer prefix of a rank cell ("1", "2e", 3.0).
// Unparseable values read as 0.
func ParseRank(c workbook.Cell) int {
	if v, ok := c.Float(); ok {
		return int(math.Trunc(v))
	}
	if c.Kind() != workbook.KindText {
		return 0
	}
	m := leadingInt.FindString(strings.TrimSpace(c.String()))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// looksLikeRate reports whether a cell can carry a VAT rate: any number, or
// text shaped like "20%" / "5,5 %".
func looksLikeRate(c workbook.Cell) bool {
	switch c.Kind() {
	case workbook.KindNumber:
		return true
	case workbook.KindText:
		return percentPattern.MatchString(strings.TrimSpace(c.String()))
	default:
		return false
	}
}

func percentOf(v float64) int {
	if v < 1 {
		v *= 100
	}
	return int(math.Round(v))
}

// normalizeSeparators turns a localized number into Go float syntax. When
// both separators occur, the last one is the decimal mark and the other is
// a thousands separator.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}
	return strings.ReplaceAll(s, ",", ".")
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func parseLeadingFloat(s string) float64 {
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
