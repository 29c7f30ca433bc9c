package an01

// StructureError reports a workbook whose layout cannot hold an AN01
// offer table: no sheets at all, or no "raison sociale" header row.
// Retrying the same bytes cannot succeed.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return e.Reason
}

// EmptyResultError reports an offer table that was located but yielded no
// offer rows.
type EmptyResultError struct {
	Reason string
}

func (e *EmptyResultError) Error() string {
	return e.Reason
}

const (
	msgNoSheets           = "no sheets found in workbook"
	msgTableNotRecognized = "table structure not recognized"
	msgNoOffers           = "no offers found"
)

func newNoSheetsError() *StructureError { return &StructureError{Reason: msgNoSheets} }

func newTableNotRecognizedError() *StructureError {
	return &StructureError{Reason: msgTableNotRecognized}
}

func newNoOffersError() *EmptyResultError { return &EmptyResultError{Reason: msgNoOffers} }
