package an01

import (
	"strings"

	"procura/internal/workbook"
)

const (
	// metadataScanRows bounds the label search; report headers sit above
	// the offer table.
	metadataScanRows = 20

	// vatRow and vatCol locate the VAT rate cell of the standard layout (I9).
	vatRow = 8
	vatCol = 7

	tenderRefMarker = "AOO"
)

// metadataRule fills one TenderMetadata field from a row whose joined text
// contains one of its keywords. apply returns m unchanged when the field is
// already set, so the first matching row wins.
type metadataRule struct {
	keywords []string
	apply    func(m TenderMetadata, row []workbook.Cell, keyword string) TenderMetadata
}

var metadataRules = []metadataRule{
	textRule([]string{"consultation"}, func(m *TenderMetadata) *string { return &m.ConsultationNumber }, consultationValue),
	textRule([]string{"description"}, func(m *TenderMetadata) *string { return &m.Description }, neighbourValue),
	textRule([]string{"acheteur"}, func(m *TenderMetadata) *string { return &m.Buyer }, neighbourValue),
	textRule([]string{"demandeur"}, func(m *TenderMetadata) *string { return &m.Requester }, neighbourValue),
	textRule([]string{"valideur", "technicien"}, func(m *TenderMetadata) *string { return &m.Technician }, neighbourValue),
	textRule([]string{"délai", "delai"}, func(m *TenderMetadata) *string { return &m.DecisionDate }, neighbourValue),
	{keywords: []string{"tva"}, apply: applyVATRate},
}

// ExtractMetadata reads the report header fields. It never fails: each
// field independently keeps its zero value when nothing matches.
func ExtractMetadata(g *workbook.Grid) TenderMetadata {
	m := TenderMetadata{VATRate: ParsePercent(g.Cell(vatRow, vatCol))}

	limit := min(g.Len(), metadataScanRows)
	for i := 0; i < limit; i++ {
		m = applyRules(m, g.Row(i), g.RowText(i))
	}
	return m
}

func applyRules(m TenderMetadata, row []workbook.Cell, joined string) TenderMetadata {
	for _, rule := range metadataRules {
		if kw, ok := matchKeyword(joined, rule.keywords); ok {
			m = rule.apply(m, row, kw)
		}
	}
	return m
}

func matchKeyword(joined string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(joined, kw) {
			return kw, true
		}
	}
	return "", false
}

func textRule(
	keywords []string,
	field func(*TenderMetadata) *string,
	read func(row []workbook.Cell, keyword string) string,
) metadataRule {
	return metadataRule{
		keywords: keywords,
		apply: func(m TenderMetadata, row []workbook.Cell, keyword string) TenderMetadata {
			if *field(&m) != "" {
				return m
			}
			*field(&m) = read(row, keyword)
			return m
		},
	}
}

// neighbourValue returns the text right of the cell holding keyword. When
// the keyword only matched across the joined row, column 1 is read.
func neighbourValue(row []workbook.Cell, keyword string) string {
	idx := 0
	for i, c := range row {
		if strings.Contains(c.Lower(), keyword) {
			idx = i
			break
		}
	}
	return cellText(row, idx+1)
}

// consultationValue prefers any cell carrying a tender reference over the
// positional neighbour.
func consultationValue(row []workbook.Cell, keyword string) string {
	for _, c := range row {
		if strings.Contains(c.String(), tenderRefMarker) {
			return strings.TrimSpace(c.String())
		}
	}
	return neighbourValue(row, keyword)
}

func applyVATRate(m TenderMetadata, row []workbook.Cell, _ string) TenderMetadata {
	if m.VATRate != 0 {
		return m
	}
	for _, c := range row {
		if looksLikeRate(c) {
			m.VATRate = ParsePercent(c)
			return m
		}
	}
	return m
}

func cellText(row []workbook.Cell, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i].String())
}
