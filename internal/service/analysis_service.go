package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"procura/internal/an01"
	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/workbook"
)

// AnalysisUploadInput is the DTO for workbook upload requests.
type AnalysisUploadInput struct {
	TenantID   uuid.UUID
	UploadedBy uuid.UUID
	FileName   string
	Size       int64
	File       io.Reader
}

// AnalysisService defines the workbook analysis contract.
type AnalysisService interface {
	// Upload archives the workbook, runs the extraction engine and persists
	// the outcome. Engine failures are returned unchanged after the record
	// has been marked failed.
	Upload(ctx context.Context, input AnalysisUploadInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AnalysisSummary, int, error)
	// GetResult decodes the stored result of a completed analysis.
	GetResult(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, *an01.AnalysisResult, error)
	// Reanalyze runs the engine again on the archived workbook.
	Reanalyze(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error)
	GetDownloadURL(ctx context.Context, tenantID, id uuid.UUID) (string, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type analysisService struct {
	repo    port.AnalysisRepository
	storage port.ObjectStorage
	s3Cfg   *config.S3Config
	upCfg   *config.UploadConfig
	keyFunc func(tenantID, analysisID uuid.UUID, filename string) string
}

// NewAnalysisService creates a new AnalysisService implementation. keyFunc
// builds the archive object key for an upload.
func NewAnalysisService(
	repo port.AnalysisRepository,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
	upCfg *config.UploadConfig,
	keyFunc func(tenantID, analysisID uuid.UUID, filename string) string,
) AnalysisService {
	return &analysisService{
		repo:    repo,
		storage: storage,
		s3Cfg:   s3Cfg,
		upCfg:   upCfg,
		keyFunc: keyFunc,
	}
}

func (s *analysisService) Upload(ctx context.Context, input AnalysisUploadInput) (*domain.Analysis, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	declared, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.upCfg.MaxBytes()
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// The container is identified from its bytes; the extension only has to
	// name a spreadsheet.
	format := fileFormatOf(workbook.DetectFormat(data))
	if format == "" {
		log.Printf("analysisService.Upload: %s declared as %s but content is not a workbook", input.FileName, declared)
		return nil, domain.ErrUnsupportedFileType
	}

	id := uuid.New()
	a := &domain.Analysis{
		ID:           id,
		TenantID:     input.TenantID,
		UploadedBy:   input.UploadedBy,
		OriginalName: input.FileName,
		FileFormat:   format,
		FileSize:     int64(len(data)),
		S3Bucket:     s.s3Cfg.Bucket,
		S3Key:        s.keyFunc(input.TenantID, id, input.FileName),
		Status:       domain.AnalysisStatusPending,
	}

	log.Printf("analysisService.Upload: archiving %s (%s, %d bytes) for tenant %s by user %s",
		input.FileName, format, len(data), input.TenantID, input.UploadedBy)

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating analysis: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      a.S3Bucket,
		Key:         a.S3Key,
		Body:        bytes.NewReader(data),
		ContentType: domain.AllowedFileFormats[format],
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("analysisService.Upload: S3 upload failed for analysis %s: %v", a.ID, err)
		_ = s.repo.Fail(ctx, a.TenantID, a.ID, domain.ErrUploadFailed.Error())
		return nil, domain.ErrUploadFailed
	}

	if err := s.run(ctx, a, data); err != nil {
		return nil, err
	}
	return a, nil
}

// run executes the engine on data and records the outcome on a.
func (s *analysisService) run(ctx context.Context, a *domain.Analysis, data []byte) error {
	g, err := an01.LoadGrid(data)
	if err != nil {
		return s.fail(ctx, a, err)
	}
	result, err := an01.AnalyzeGrid(g)
	if err != nil {
		return s.fail(ctx, a, err)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding analysis result: %w", err)
	}
	a.Result = raw
	a.SheetName = g.SheetName()
	a.ConsultationNumber = result.Metadata.ConsultationNumber
	a.OfferCount = len(result.Offers)

	if err := s.repo.Complete(ctx, a); err != nil {
		return fmt.Errorf("completing analysis: %w", err)
	}
	log.Printf("analysisService.run: analysis %s completed with %d offers from sheet %q",
		a.ID, a.OfferCount, a.SheetName)
	return nil
}

// fail marks a as failed. Engine errors are returned as is so callers can
// show their message; decode errors become ErrUnreadableWorkbook.
func (s *analysisService) fail(ctx context.Context, a *domain.Analysis, cause error) error {
	engineErr := an01.IsStructureError(cause) || an01.IsEmptyResultError(cause)

	msg := cause.Error()
	if !engineErr {
		msg = domain.ErrUnreadableWorkbook.Error()
	}
	log.Printf("analysisService.run: analysis %s failed: %v", a.ID, cause)

	if err := s.repo.Fail(ctx, a.TenantID, a.ID, msg); err != nil {
		return fmt.Errorf("marking analysis failed: %w", err)
	}
	a.Status = domain.AnalysisStatusFailed
	a.Error = msg
	a.Result = nil

	if engineErr {
		return cause
	}
	return fmt.Errorf("%w: %v", domain.ErrUnreadableWorkbook, cause)
}

func (s *analysisService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *analysisService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AnalysisSummary, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *analysisService) GetResult(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, *an01.AnalysisResult, error) {
	a, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	if a.Status != domain.AnalysisStatusCompleted {
		return nil, nil, domain.ErrAnalysisNotCompleted
	}

	var result an01.AnalysisResult
	if err := json.Unmarshal(a.Result, &result); err != nil {
		return nil, nil, fmt.Errorf("decoding analysis %s result: %w", a.ID, err)
	}
	return a, &result, nil
}

func (s *analysisService) Reanalyze(ctx context.Context, tenantID, id uuid.UUID) (*domain.Analysis, error) {
	a, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	data, err := s.storage.Download(ctx, a.S3Bucket, a.S3Key)
	if err != nil {
		log.Printf("analysisService.Reanalyze: download failed for analysis %s: %v", a.ID, err)
		return nil, fmt.Errorf("downloading archived workbook: %w", err)
	}

	if err := s.run(ctx, a, data); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *analysisService) GetDownloadURL(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	a, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, a.S3Bucket, a.S3Key, s.s3Cfg.PresignExpiry)
}

func (s *analysisService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	log.Printf("analysisService.Delete: deleting analysis %s for tenant %s", id, tenantID)

	a, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, a.S3Bucket, a.S3Key); err != nil {
		log.Printf("analysisService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.repo.Delete(ctx, tenantID, id)
}

func fileFormatOf(f workbook.Format) domain.FileFormat {
	switch f {
	case workbook.FormatXLSX:
		return domain.FileFormatXLSX
	case workbook.FormatXLS:
		return domain.FileFormatXLS
	default:
		return ""
	}
}

// IsEngineError reports whether err came from the extraction engine rather
// than from storage or persistence.
func IsEngineError(err error) bool {
	return an01.IsStructureError(err) || an01.IsEmptyResultError(err) || errors.Is(err, domain.ErrUnreadableWorkbook)
}
