package an01

import (
	"errors"

	"procura/internal/workbook"
)

// Analyze loads a workbook and runs the full extraction pipeline on its
// selected sheet. A workbook without sheets fails with *StructureError;
// other load failures are returned unchanged.
func Analyze(data []byte) (*AnalysisResult, error) {
	g, err := LoadGrid(data)
	if err != nil {
		return nil, err
	}
	return AnalyzeGrid(g)
}

// LoadGrid is workbook.Load with a sheetless workbook reported as
// *StructureError.
func LoadGrid(data []byte) (*workbook.Grid, error) {
	g, err := workbook.Load(data)
	if errors.Is(err, workbook.ErrNoSheets) {
		return nil, newNoSheetsError()
	}
	return g, err
}

// AnalyzeGrid runs metadata extraction, offer extraction and statistics on
// an already loaded grid. No partial result is returned on failure.
func AnalyzeGrid(g *workbook.Grid) (*AnalysisResult, error) {
	offers, err := ExtractOffers(g)
	if err != nil {
		return nil, err
	}
	stats, err := ComputeStats(offers)
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{
		Metadata: ExtractMetadata(g),
		Offers:   offers,
		Stats:    stats,
	}, nil
}

// IsStructureError reports whether err is or wraps a *StructureError.
func IsStructureError(err error) bool {
	var se *StructureError
	return errors.As(err, &se)
}

// IsEmptyResultError reports whether err is or wraps an *EmptyResultError.
func IsEmptyResultError(err error) bool {
	var ee *EmptyResultError
	return errors.As(err, &ee)
}
