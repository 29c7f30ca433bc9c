package port

import (
	"context"

	"github.com/google/uuid"

	"procura/internal/domain"
)

// AnalysisRepository defines the contract for analysis persistence.
// All query methods include tenantID for tenant isolation.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AnalysisSummary, int, error)
	// Complete stores a successful result and marks the analysis completed.
	Complete(ctx context.Context, a *domain.Analysis) error
	// Fail records the engine message and marks the analysis failed.
	Fail(ctx context.Context, tenantID, id uuid.UUID, message string) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
