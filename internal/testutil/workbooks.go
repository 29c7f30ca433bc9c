// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// AN01Rows is a small evaluation report: header labels, a VAT rate at I9,
// and a two-offer table ending with the savings section.
func AN01Rows() [][]any {
	return [][]any{
		{"Consultation", "AOO-2024-017"},
		{"Acheteur", "Ministère X"},
		{},
		{},
		{},
		{},
		{},
		{},
		{nil, nil, nil, nil, nil, nil, "TVA", 0.2},
		{},
		{"Raison sociale", "Rang final", "Note finale", "Rang financier", "Note financière", "Rang technique", "Note technique", "Montant TTC"},
		{"", "", "/100", "", "/60", "", "/40", "€"},
		{"Acme", "1", "85,5", "1", "50", "1", "35,5", "120 000,00 €"},
		{"Beta", "2", "72", "2", "40", "2", "32", "110 000,00 €"},
		{},
		{"Calcul des gains"},
	}
}

// XLSX writes rows into a sheet named sheet, preceded by an empty cover
// sheet, and returns the encoded workbook.
func XLSX(t testing.TB, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "Couverture"))
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		vals := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &vals))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// AN01Workbook returns AN01Rows encoded in a sheet named "Rapport AN01".
func AN01Workbook(t testing.TB) []byte {
	t.Helper()
	return XLSX(t, "Rapport AN01", AN01Rows())
}
