package workbook

import "strings"

// Grid is the materialized content of one worksheet. Rows may have
// different lengths; missing cells read as empty. A Grid is never mutated
// after construction.
type Grid struct {
	sheet string
	rows  [][]Cell
}

// NewGrid builds a Grid from rows of cells. The rows are copied.
func NewGrid(sheet string, rows [][]Cell) *Grid {
	cp := make([][]Cell, len(rows))
	for i, r := range rows {
		cp[i] = append([]Cell(nil), r...)
	}
	return &Grid{sheet: sheet, rows: cp}
}

// SheetName returns the name of the worksheet the grid was read from.
func (g *Grid) SheetName() string { return g.sheet }

// Len returns the number of rows.
func (g *Grid) Len() int { return len(g.rows) }

// Row returns a copy of row i, or nil when i is out of range.
func (g *Grid) Row(i int) []Cell {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	return append([]Cell(nil), g.rows[i]...)
}

// Cell returns the cell at row r, column c, or an empty cell when either
// index is out of range.
func (g *Grid) Cell(r, c int) Cell {
	if r < 0 || r >= len(g.rows) || c < 0 || c >= len(g.rows[r]) {
		return Empty()
	}
	return g.rows[r][c]
}

// RowWidth returns the number of cells stored for row i.
func (g *Grid) RowWidth(i int) int {
	if i < 0 || i >= len(g.rows) {
		return 0
	}
	return len(g.rows[i])
}

// RowText joins the text of every cell in row i with single spaces and
// lowercases the result.
func (g *Grid) RowText(i int) string {
	if i < 0 || i >= len(g.rows) {
		return ""
	}
	parts := make([]string, 0, len(g.rows[i]))
	for _, c := range g.rows[i] {
		parts = append(parts, c.String())
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// RowIsBlank reports whether row i is absent or holds no non-empty cell.
func (g *Grid) RowIsBlank(i int) bool {
	if i < 0 || i >= len(g.rows) {
		return true
	}
	for _, c := range g.rows[i] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
