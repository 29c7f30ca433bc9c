// Package export renders analysis results as downloadable CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"procura/internal/an01"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// offerColumns defines the offers CSV header row.
var offerColumns = []string{
	"Row",
	"Supplier",
	"Final Rank",
	"Final Score",
	"Financial Rank",
	"Financial Score",
	"Technical Rank",
	"Technical Score",
	"Amount TTC",
	"Selected",
}

// OfferWriter wraps csv.Writer for exporting supplier offers. Fields are
// separated by semicolons, the list separator of French-locale spreadsheets.
type OfferWriter struct {
	csv *csv.Writer
}

// NewOfferWriter creates an OfferWriter that writes CSV to w.
func NewOfferWriter(w io.Writer) *OfferWriter {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &OfferWriter{csv: cw}
}

// WriteHeader writes the header row.
func (w *OfferWriter) WriteHeader() error {
	return w.csv.Write(offerColumns)
}

// WriteOffers writes one row per offer, in the given order. The offer whose
// ID is selectedID is flagged.
func (w *OfferWriter) WriteOffers(offers []an01.SupplierOffer, selectedID int) error {
	for i := range offers {
		if err := w.csv.Write(offerToRow(&offers[i], selectedID)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *OfferWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *OfferWriter) Error() error {
	return w.csv.Error()
}

// WriteOffersCSV writes a complete offers file (BOM, header, rows) to w.
func WriteOffersCSV(w io.Writer, result *an01.AnalysisResult) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	ow := NewOfferWriter(w)
	if err := ow.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := ow.WriteOffers(result.Offers, result.Stats.SelectedOfferID); err != nil {
		return fmt.Errorf("writing offers: %w", err)
	}
	ow.Flush()
	return ow.Error()
}

func offerToRow(o *an01.SupplierOffer, selectedID int) []string {
	return []string{
		strconv.Itoa(o.ID + 1),
		o.Name,
		strconv.Itoa(o.RankFinal),
		formatScore(o.ScoreFinal),
		strconv.Itoa(o.RankFinancial),
		formatScore(o.ScoreFinancial),
		strconv.Itoa(o.RankTechnical),
		formatScore(o.ScoreTechnical),
		formatMoney(o.AmountTTC),
		formatBool(o.ID == selectedID),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition: runs of
// other characters become a single underscore and the result is capped at
// 100 bytes.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "analysis"
	}
	return s
}

// BuildFilename returns {sanitized_base}_{YYYY-MM-DD}.{ext}. base is
// usually the consultation number, or the uploaded file name without its
// extension.
func BuildFilename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), now.Format("2006-01-02"), ext)
}
