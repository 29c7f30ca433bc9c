package an01_test

import (
	"fmt"

	"procura/internal/workbook"
)

// cell converts a literal into a workbook cell: strings become text,
// numbers become numeric cells, nil is empty.
func cell(v any) workbook.Cell {
	switch x := v.(type) {
	case nil:
		return workbook.Empty()
	case string:
		return workbook.Text(x)
	case int:
		return workbook.Number(float64(x))
	case float64:
		return workbook.Number(x)
	default:
		panic(fmt.Sprintf("unsupported cell literal %T", v))
	}
}

func row(vals ...any) []workbook.Cell {
	cells := make([]workbook.Cell, len(vals))
	for i, v := range vals {
		cells[i] = cell(v)
	}
	return cells
}

func grid(rows ...[]workbook.Cell) *workbook.Grid {
	return workbook.NewGrid("AN01", rows)
}

// headerRows returns the label row and the sub-header row of the offer table.
func headerRows() [][]workbook.Cell {
	return [][]workbook.Cell{
		row("Raison sociale", "Rang final", "Note finale", "Rang financier", "Note financière", "Rang technique", "Note technique", "Montant TTC"),
		row("", "", "/100", "", "/60", "", "/40", "€"),
	}
}

// scenarioGrid is a small report with metadata above a two-offer table.
func scenarioGrid() *workbook.Grid {
	rows := [][]workbook.Cell{
		row("Rapport d'analyse des offres"),
		row("N° de consultation", "", "AOO-2024-017"),
		row("Description", "Fourniture de matériel informatique"),
		row("Acheteur", "Ministère X"),
		row("Demandeur", "Direction des systèmes"),
		row("Valideur technique", "J. Martin"),
		row("Délai de décision", 45321),
		row(),
		row("", "", "", "", "", "", "TVA", 0.2),
		row(),
	}
	rows = append(rows, headerRows()...)
	rows = append(rows,
		row("Acme", "1", "85,5", "1", "50", "1", "35,5", "120 000,00 €"),
		row("Beta", "2", "72", "2", "40", "2", "32", "110 000,00 €"),
		row(),
		row("Calcul des gains"),
	)
	return grid(rows...)
}
