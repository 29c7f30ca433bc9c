// Package an01 extracts tender metadata, supplier offers and comparison
// statistics from AN01 procurement-evaluation worksheets.
package an01

// TenderMetadata holds the labelled header fields of a report. Every field
// is optional; VATRate is a whole percentage and 0 means not detected.
type TenderMetadata struct {
	ConsultationNumber string `json:"consultationNumber"`
	Description        string `json:"description"`
	Buyer              string `json:"buyer"`
	Requester          string `json:"requester"`
	Technician         string `json:"technician"`
	DecisionDate       string `json:"decisionDate"`
	VATRate            int    `json:"vatRate"`
}

// SupplierOffer is one row of the offer table. ID is the zero-based row
// index in the worksheet. Ranks are 0 when the source value is unparseable.
type SupplierOffer struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	RankFinal      int     `json:"rankFinal"`
	ScoreFinal     float64 `json:"scoreFinal"`
	RankFinancial  int     `json:"rankFinancial"`
	ScoreFinancial float64 `json:"scoreFinancial"`
	RankTechnical  int     `json:"rankTechnical"`
	ScoreTechnical float64 `json:"scoreTechnical"`
	AmountTTC      float64 `json:"amountTTC"`
}

// FinancialStats compares the selected offer with the whole field.
// SelectedOfferID is the ID of the winning SupplierOffer. SavingPercent is
// nil when the average offer is zero.
type FinancialStats struct {
	OfferCount           int      `json:"offerCount"`
	AverageOffer         float64  `json:"averageOffer"`
	MedianOffer          float64  `json:"medianOffer"`
	MinOffer             float64  `json:"minOffer"`
	MaxOffer             float64  `json:"maxOffer"`
	SelectedOffer        float64  `json:"selectedOffer"`
	SelectedOfferID      int      `json:"selectedOfferId"`
	SelectedSupplierName string   `json:"selectedSupplierName"`
	SavingVsAverage      float64  `json:"savingVsAverage"`
	SavingPercent        *float64 `json:"savingPercent"`
}

// AnalysisResult is the complete outcome of analysing one workbook.
type AnalysisResult struct {
	Metadata TenderMetadata  `json:"metadata"`
	Offers   []SupplierOffer `json:"offers"`
	Stats    FinancialStats  `json:"stats"`
}
