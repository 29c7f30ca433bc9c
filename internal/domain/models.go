package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Analysis is the persisted record of one uploaded AN01 workbook and the
// outcome of running the extraction engine on it. Result holds the
// serialized analysis and is empty unless Status is completed; Error holds
// the engine message when Status is failed.
type Analysis struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	TenantID           uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	UploadedBy         uuid.UUID       `db:"uploaded_by" json:"uploaded_by"`
	OriginalName       string          `db:"original_name" json:"original_name"`
	FileFormat         FileFormat      `db:"file_format" json:"file_format"`
	FileSize           int64           `db:"file_size" json:"file_size"`
	S3Bucket           string          `db:"s3_bucket" json:"-"`
	S3Key              string          `db:"s3_key" json:"-"`
	SheetName          string          `db:"sheet_name" json:"sheet_name"`
	Status             AnalysisStatus  `db:"status" json:"status"`
	Error              string          `db:"error" json:"error,omitempty"`
	Result             json.RawMessage `db:"result" json:"result"`
	ConsultationNumber string          `db:"consultation_number" json:"consultation_number"`
	OfferCount         int             `db:"offer_count" json:"offer_count"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// AnalysisSummary is the list projection of an Analysis without its result.
type AnalysisSummary struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	OriginalName       string         `db:"original_name" json:"original_name"`
	FileFormat         FileFormat     `db:"file_format" json:"file_format"`
	Status             AnalysisStatus `db:"status" json:"status"`
	Error              string         `db:"error" json:"error,omitempty"`
	ConsultationNumber string         `db:"consultation_number" json:"consultation_number"`
	OfferCount         int            `db:"offer_count" json:"offer_count"`
	UploadedBy         uuid.UUID      `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}
