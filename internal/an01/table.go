package an01

import (
	"strings"

	"procura/internal/workbook"
)

const (
	headerLabel   = "raison sociale"
	summaryMarker = "calcul des gains"

	// headerSkip covers the label row and the units/weights sub-header.
	headerSkip = 2
)

// Offer table columns.
const (
	colName = iota
	colRankFinal
	colScoreFinal
	colRankFinancial
	colScoreFinancial
	colRankTechnical
	colScoreTechnical
	colAmountTTC
)

// FindHeaderRow returns the index of the first row holding a
// "raison sociale" cell, or -1.
func FindHeaderRow(g *workbook.Grid) int {
	for i := 0; i < g.Len(); i++ {
		for j := 0; j < g.RowWidth(i); j++ {
			if strings.Contains(g.Cell(i, j).Lower(), headerLabel) {
				return i
			}
		}
	}
	return -1
}

// ExtractOffers reads the offer table. It fails with *StructureError when no
// header row exists and with *EmptyResultError when no offer row follows it.
func ExtractOffers(g *workbook.Grid) ([]SupplierOffer, error) {
	header := FindHeaderRow(g)
	if header < 0 {
		return nil, newTableNotRecognizedError()
	}

	var offers []SupplierOffer
	for i := header + headerSkip; i < g.Len(); i++ {
		if g.RowIsBlank(i) || strings.Contains(g.Cell(i, colName).Lower(), summaryMarker) {
			break
		}
		if g.Cell(i, colRankFinal).IsEmpty() || g.Cell(i, colName).IsEmpty() {
			continue
		}
		offers = append(offers, offerFromRow(g, i))
	}

	if len(offers) == 0 {
		return nil, newNoOffersError()
	}
	return offers, nil
}

func offerFromRow(g *workbook.Grid, i int) SupplierOffer {
	return SupplierOffer{
		ID:             i,
		Name:           strings.TrimSpace(g.Cell(i, colName).String()),
		RankFinal:      ParseRank(g.Cell(i, colRankFinal)),
		ScoreFinal:     ParseScore(g.Cell(i, colScoreFinal)),
		RankFinancial:  ParseRank(g.Cell(i, colRankFinancial)),
		ScoreFinancial: ParseScore(g.Cell(i, colScoreFinancial)),
		RankTechnical:  ParseRank(g.Cell(i, colRankTechnical)),
		ScoreTechnical: ParseScore(g.Cell(i, colScoreTechnical)),
		AmountTTC:      ParseCurrency(g.Cell(i, colAmountTTC)),
	}
}
