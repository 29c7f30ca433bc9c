package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/an01"
	"procura/internal/domain"
	"procura/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Upload(ctx context.Context, input service.AnalysisUploadInput) (*domain.Analysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AnalysisSummary, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AnalysisSummary), args.Int(1), args.Error(2)
}

func (m *MockAnalysisService) GetResult(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, *an01.AnalysisResult, error) {
	args := m.Called(ctx, tenantID, id)
	var a *domain.Analysis
	if v := args.Get(0); v != nil {
		a = v.(*domain.Analysis)
	}
	var r *an01.AnalysisResult
	if v := args.Get(1); v != nil {
		r = v.(*an01.AnalysisResult)
	}
	return a, r, args.Error(2)
}

func (m *MockAnalysisService) Reanalyze(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) GetDownloadURL(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, id)
	return args.String(0), args.Error(1)
}

func (m *MockAnalysisService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
