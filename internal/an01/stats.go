package an01

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// ComputeStats derives the comparison figures for a set of offers. The
// selected offer is the one with the lowest final rank; ties keep input
// order. Amount aggregates span every offer.
func ComputeStats(offers []SupplierOffer) (FinancialStats, error) {
	if len(offers) == 0 {
		return FinancialStats{}, newNoOffersError()
	}

	ranked := make([]SupplierOffer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankFinal < ranked[j].RankFinal
	})
	winner := ranked[0]

	amounts := make(stats.Float64Data, len(offers))
	for i, o := range offers {
		amounts[i] = o.AmountTTC
	}

	mean, err := amounts.Mean()
	if err != nil {
		return FinancialStats{}, fmt.Errorf("computing average offer: %w", err)
	}
	median, err := amounts.Median()
	if err != nil {
		return FinancialStats{}, fmt.Errorf("computing median offer: %w", err)
	}
	lo, err := amounts.Min()
	if err != nil {
		return FinancialStats{}, fmt.Errorf("computing min offer: %w", err)
	}
	hi, err := amounts.Max()
	if err != nil {
		return FinancialStats{}, fmt.Errorf("computing max offer: %w", err)
	}

	saving := mean - winner.AmountTTC
	var savingPct *float64
	if mean != 0 {
		p := saving / mean * 100
		savingPct = &p
	}

	return FinancialStats{
		OfferCount:           len(offers),
		AverageOffer:         mean,
		MedianOffer:          median,
		MinOffer:             lo,
		MaxOffer:             hi,
		SelectedOffer:        winner.AmountTTC,
		SelectedOfferID:      winner.ID,
		SelectedSupplierName: winner.Name,
		SavingVsAverage:      saving,
		SavingPercent:        savingPct,
	}, nil
}
