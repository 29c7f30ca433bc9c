package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"procura/internal/domain"
	"procura/internal/port"
)

var nullResult = json.RawMessage("null")

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if len(a.Result) == 0 {
		a.Result = nullResult
	}

	query := `INSERT INTO analyses
		(id, tenant_id, uploaded_by, original_name, file_format, file_size,
		 s3_bucket, s3_key, sheet_name, status, error, result,
		 consultation_number, offer_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.TenantID, a.UploadedBy, a.OriginalName, a.FileFormat, a.FileSize,
		a.S3Bucket, a.S3Key, a.SheetName, a.Status, a.Error, a.Result,
		a.ConsultationNumber, a.OfferCount, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error) {
	var a domain.Analysis
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM analyses WHERE id = $1 AND tenant_id = $2 AND status != $3",
		id, tenantID, domain.AnalysisStatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *analysisRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AnalysisSummary, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM analyses WHERE tenant_id = $1 AND status != $2",
		tenantID, domain.AnalysisStatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByTenant count: %w", err)
	}

	var items []domain.AnalysisSummary
	err = r.db.SelectContext(ctx, &items,
		`SELECT id, original_name, file_format, status, error,
		        consultation_number, offer_count, uploaded_by, created_at
		 FROM analyses
		 WHERE tenant_id = $1 AND status != $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, domain.AnalysisStatusDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByTenant: %w", err)
	}
	return items, total, nil
}

func (r *analysisRepo) Complete(ctx context.Context, a *domain.Analysis) error {
	a.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE analyses
		 SET status = $1, error = '', result = $2, sheet_name = $3,
		     consultation_number = $4, offer_count = $5, updated_at = $6
		 WHERE id = $7 AND tenant_id = $8`,
		domain.AnalysisStatusCompleted, a.Result, a.SheetName,
		a.ConsultationNumber, a.OfferCount, a.UpdatedAt, a.ID, a.TenantID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Complete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	a.Status = domain.AnalysisStatusCompleted
	a.Error = ""
	return nil
}

func (r *analysisRepo) Fail(ctx context.Context, tenantID, id uuid.UUID, message string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE analyses SET status = $1, error = $2, result = 'null', offer_count = 0, updated_at = $3
		 WHERE id = $4 AND tenant_id = $5`,
		domain.AnalysisStatusFailed, message, time.Now().UTC(), id, tenantID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Fail: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *analysisRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE analyses SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4 AND status != $1",
		domain.AnalysisStatusDeleted, time.Now().UTC(), id, tenantID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
