package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"procura/internal/an01"
)

const (
	summarySheet = "Synthèse"
	offersSheet  = "Offres"

	// built-in excelize number formats
	numFmtMoney   = 4  // #,##0.00
	numFmtPercent = 10 // 0.00%
)

// ReportInput is the content of an XLSX analysis report.
type ReportInput struct {
	Title  string
	Result *an01.AnalysisResult
}

// WriteReport renders a two-sheet workbook: a summary of the tender
// metadata and statistics, and the offer table sorted as extracted.
func WriteReport(w io.Writer, in ReportInput) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(offersSheet); err != nil {
		return fmt.Errorf("creating offers sheet: %w", err)
	}

	st, err := newReportStyles(f)
	if err != nil {
		return err
	}
	if err := writeSummary(f, st, in); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := writeOffers(f, st, in.Result); err != nil {
		return fmt.Errorf("writing offers: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

type reportStyles struct {
	bold, money, percent, selected int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var st reportStyles
	var err error
	if st.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, fmt.Errorf("creating bold style: %w", err)
	}
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return st, fmt.Errorf("creating money style: %w", err)
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent}); err != nil {
		return st, fmt.Errorf("creating percent style: %w", err)
	}
	if st.selected, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2EFDA"}},
	}); err != nil {
		return st, fmt.Errorf("creating selected style: %w", err)
	}
	return st, nil
}

func writeSummary(f *excelize.File, st reportStyles, in ReportInput) error {
	m := in.Result.Metadata
	s := in.Result.Stats

	var vat any
	if m.VATRate != 0 {
		vat = float64(m.VATRate) / 100
	}
	var savingPct any
	if s.SavingPercent != nil {
		savingPct = *s.SavingPercent / 100
	}

	rows := []struct {
		label string
		value any
		style int
	}{
		{"Analyse", in.Title, 0},
		{"N° de consultation", m.ConsultationNumber, 0},
		{"Description", m.Description, 0},
		{"Acheteur", m.Buyer, 0},
		{"Demandeur", m.Requester, 0},
		{"Valideur technique", m.Technician, 0},
		{"Délai de décision", m.DecisionDate, 0},
		{"TVA", vat, st.percent},
		{"", nil, 0},
		{"Nombre d'offres", s.OfferCount, 0},
		{"Offre moyenne TTC", s.AverageOffer, st.money},
		{"Offre médiane TTC", s.MedianOffer, st.money},
		{"Offre minimale TTC", s.MinOffer, st.money},
		{"Offre maximale TTC", s.MaxOffer, st.money},
		{"Attributaire", s.SelectedSupplierName, 0},
		{"Offre retenue TTC", s.SelectedOffer, st.money},
		{"Gain vs moyenne", s.SavingVsAverage, st.money},
		{"Gain vs moyenne (%)", savingPct, st.percent},
	}

	for i, r := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, label, r.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, label, label, st.bold); err != nil {
			return err
		}
		if r.value == nil {
			continue
		}
		if err := f.SetCellValue(summarySheet, value, r.value); err != nil {
			return err
		}
		if r.style != 0 {
			if err := f.SetCellStyle(summarySheet, value, value, r.style); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 28)
}

func writeOffers(f *excelize.File, st reportStyles, res *an01.AnalysisResult) error {
	header := []any{
		"Raison sociale", "Rang final", "Note finale", "Rang financier",
		"Note financière", "Rang technique", "Note technique", "Montant TTC",
	}
	if err := f.SetSheetRow(offersSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(offersSheet, 1, 1, st.bold); err != nil {
		return err
	}

	for i, o := range res.Offers {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		values := []any{
			o.Name, o.RankFinal, o.ScoreFinal, o.RankFinancial,
			o.ScoreFinancial, o.RankTechnical, o.ScoreTechnical, o.AmountTTC,
		}
		if err := f.SetSheetRow(offersSheet, cell, &values); err != nil {
			return err
		}
		amount, _ := excelize.CoordinatesToCellName(8, rowNum)
		if err := f.SetCellStyle(offersSheet, amount, amount, st.money); err != nil {
			return err
		}
		if o.ID == res.Stats.SelectedOfferID {
			if err := f.SetCellStyle(offersSheet, cell, cell, st.selected); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(offersSheet, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(offersSheet, "B", "H", 16); err != nil {
		return err
	}
	return f.SetPanes(offersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
