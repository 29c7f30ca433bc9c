package an01_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"procura/internal/an01"
	"procura/internal/workbook"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   workbook.Cell
		want float64
	}{
		{"number passes through", workbook.Number(1036593.62), 1036593.62},
		{"integer number", workbook.Number(120000), 120000},
		{"french format with euro", workbook.Text("1 036 593,62 €"), 1036593.62},
		{"non-breaking spaces", workbook.Text("1 036 593,62 €"), 1036593.62},
		{"narrow no-break spaces", workbook.Text("120 000,00 €"), 120000},
		{"dot thousands comma decimal", workbook.Text("1.234,56"), 1234.56},
		{"comma thousands dot decimal", workbook.Text("1,234.56"), 1234.56},
		{"eur code suffix", workbook.Text("2500,5 EUR"), 2500.5},
		{"dollar prefix", workbook.Text("$99.90"), 99.9},
		{"plain decimal point", workbook.Text("42.5"), 42.5},
		{"negative", workbook.Text("-150,25 €"), -150.25},
		{"garbage", workbook.Text("n/a"), 0},
		{"empty", workbook.Empty(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, an01.ParseCurrency(tt.in), 1e-9)
		})
	}
}

func TestParseCurrency_IdempotentOnNumbers(t *testing.T) {
	for _, v := range []float64{0, 1, 0.5, 99999.99, 1036593.62, -12.5} {
		assert.Equal(t, v, an01.ParseCurrency(workbook.Number(v)))
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		in   workbook.Cell
		want float64
	}{
		{"number", workbook.Number(85.5), 85.5},
		{"decimal comma", workbook.Text("85,5"), 85.5},
		{"integer text", workbook.Text("72"), 72},
		{"trailing unit", workbook.Text("35,5 pts"), 35.5},
		{"garbage", workbook.Text("abs"), 0},
		{"empty", workbook.Empty(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, an01.ParseScore(tt.in), 1e-9)
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name string
		in   workbook.Cell
		want int
	}{
		{"fraction", workbook.Number(0.2), 20},
		{"already percent", workbook.Number(20), 20},
		{"percent string", workbook.Text("20%"), 20},
		{"fraction with decimal comma", workbook.Text("0,2"), 20},
		{"spaced percent", workbook.Text("5,5 %"), 6},
		{"one is a percentage", workbook.Number(1), 1},
		{"garbage", workbook.Text("TVA"), 0},
		{"empty", workbook.Empty(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, an01.ParsePercent(tt.in))
		})
	}
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		name string
		in   workbook.Cell
		want int
	}{
		{"number", workbook.Number(3), 3},
		{"fractional number truncates", workbook.Number(2.9), 2},
		{"text", workbook.Text("1"), 1},
		{"ordinal suffix", workbook.Text("2e"), 2},
		{"padded", workbook.Text(" 4 "), 4},
		{"garbage", workbook.Text("-"), 0},
		{"empty", workbook.Empty(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, an01.ParseRank(tt.in))
		})
	}
}
