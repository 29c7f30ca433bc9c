// Package workbook turns spreadsheet container bytes into a typed Grid for
// a single worksheet.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the container family of a workbook.
type Format string

const (
	FormatUnknown Format = ""
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
)

// TargetSheetTag is the sheet-name fragment that marks the evaluation report.
const TargetSheetTag = "AN01"

var (
	// ErrUnsupportedFormat indicates the bytes are neither an OOXML nor a
	// legacy binary workbook.
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
	// ErrNoSheets indicates the workbook contains no worksheet.
	ErrNoSheets = errors.New("no sheets found in workbook")
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat inspects the leading magic bytes of data.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	default:
		return FormatUnknown
	}
}

// Load decodes a workbook and materializes the selected sheet as a Grid.
func Load(data []byte) (*Grid, error) {
	switch DetectFormat(data) {
	case FormatXLSX:
		return loadXLSX(data)
	case FormatXLS:
		return loadXLS(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// SelectSheet returns the index of the first sheet whose name contains
// TargetSheetTag (case-insensitive), else 0. ok is false when names is empty.
func SelectSheet(names []string) (idx int, ok bool) {
	if len(names) == 0 {
		return 0, false
	}
	tag := strings.ToLower(TargetSheetTag)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), tag) {
			return i, true
		}
	}
	return 0, true
}

func loadXLSX(data []byte) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening xlsx workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	idx, ok := SelectSheet(sheets)
	if !ok {
		return nil, ErrNoSheets
	}
	sheet := sheets[idx]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	rows := make([][]Cell, len(raw))
	for r, values := range raw {
		cells := make([]Cell, len(values))
		for c, v := range values {
			cells[c] = xlsxCell(f, sheet, r, c, v)
		}
		rows[r] = cells
	}
	return &Grid{sheet: sheet, rows: rows}, nil
}

// xlsxCell keeps string-typed cells as text even when they look numeric,
// and types everything else from its raw value.
func xlsxCell(f *excelize.File, sheet string, r, c int, raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return Empty()
	}
	name, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return parseRaw(raw)
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return parseRaw(raw)
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return Text(raw)
	default:
		return parseRaw(raw)
	}
}
