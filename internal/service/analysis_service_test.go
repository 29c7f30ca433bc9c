package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procura/internal/an01"
	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
	"procura/internal/testutil"
	"procura/mocks"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{Region: "eu-west-3", Bucket: "test-bucket", PresignExpiry: 3600}
}

func testUploadConfig() *config.UploadConfig {
	return &config.UploadConfig{MaxFileSizeMB: 1}
}

func testKey(tenantID, analysisID uuid.UUID, filename string) string {
	return fmt.Sprintf("t/%s/a/%s/%s", tenantID, analysisID, filename)
}

func newAnalysisService(repo *mocks.MockAnalysisRepo, storage *mocks.MockObjectStorage) service.AnalysisService {
	return service.NewAnalysisService(repo, storage, testS3Config(), testUploadConfig(), testKey)
}

func uploadInput(tenantID, userID uuid.UUID, name string, data []byte) service.AnalysisUploadInput {
	return service.AnalysisUploadInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		FileName:   name,
		Size:       int64(len(data)),
		File:       bytes.NewReader(data),
	}
}

func TestAnalysisService_Upload_Success(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, userID := uuid.New(), uuid.New()
	data := testutil.AN01Workbook(t)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" &&
			in.ContentType == domain.AllowedFileFormats[domain.FileFormatXLSX] &&
			in.Size == int64(len(data))
	})).Return(&port.UploadOutput{Location: "s3://test-bucket/x", ETag: "abc"}, nil)
	repo.On("Complete", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	a, err := svc.Upload(context.Background(), uploadInput(tenantID, userID, "Rapport AN01.xlsx", data))
	require.NoError(t, err)

	assert.Equal(t, tenantID, a.TenantID)
	assert.Equal(t, userID, a.UploadedBy)
	assert.Equal(t, domain.FileFormatXLSX, a.FileFormat)
	assert.Equal(t, "Rapport AN01", a.SheetName)
	assert.Equal(t, "AOO-2024-017", a.ConsultationNumber)
	assert.Equal(t, 2, a.OfferCount)
	assert.Equal(t, testKey(tenantID, a.ID, "Rapport AN01.xlsx"), a.S3Key)

	var result an01.AnalysisResult
	require.NoError(t, json.Unmarshal(a.Result, &result))
	assert.Equal(t, "Acme", result.Stats.SelectedSupplierName)
	assert.InDelta(t, 115000, result.Stats.AverageOffer, 1e-9)

	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestAnalysisService_Upload_UnsupportedExtension(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), uuid.New(), "offers.csv", []byte("a,b")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Upload_ContentNotAWorkbook(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), uuid.New(), "renamed.xlsx", []byte("%PDF-1.4 not a workbook")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Upload_TooLarge(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	t.Run("declared_size", func(t *testing.T) {
		in := uploadInput(uuid.New(), uuid.New(), "big.xlsx", []byte("PK"))
		in.Size = 2 * 1024 * 1024
		_, err := svc.Upload(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})

	t.Run("actual_size", func(t *testing.T) {
		in := uploadInput(uuid.New(), uuid.New(), "big.xlsx", bytes.Repeat([]byte{'x'}, 1024*1024+1))
		in.Size = 0
		_, err := svc.Upload(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Upload_StorageFailure(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("connection reset"))
	repo.On("Fail", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.ErrUploadFailed.Error()).Return(nil)

	_, err := svc.Upload(context.Background(), uploadInput(tenantID, uuid.New(), "AN01.xlsx", testutil.AN01Workbook(t)))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAnalysisService_Upload_TableNotRecognized(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID := uuid.New()
	data := testutil.XLSX(t, "Notes", [][]any{{"Acheteur", "Ministère X"}})

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	repo.On("Fail", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), "table structure not recognized").Return(nil)

	_, err := svc.Upload(context.Background(), uploadInput(tenantID, uuid.New(), "notes.xlsx", data))
	require.Error(t, err)

	var se *an01.StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "table structure not recognized", err.Error())
	assert.True(t, service.IsEngineError(err))
	repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAnalysisService_Upload_NoOffers(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	rows := testutil.AN01Rows()[:12]
	rows = append(rows, []any{"Calcul des gains"})
	data := testutil.XLSX(t, "AN01", rows)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	repo.On("Fail", mock.Anything, mock.Anything, mock.Anything, "no offers found").Return(nil)

	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), uuid.New(), "empty.xlsx", data))
	assert.True(t, an01.IsEmptyResultError(err))
	repo.AssertExpectations(t)
}

func TestAnalysisService_Upload_CorruptWorkbook(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, bytes.Repeat([]byte{0x00}, 64)...)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	repo.On("Fail", mock.Anything, mock.Anything, mock.Anything, domain.ErrUnreadableWorkbook.Error()).Return(nil)

	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), uuid.New(), "broken.xlsx", data))
	assert.ErrorIs(t, err, domain.ErrUnreadableWorkbook)
	assert.True(t, service.IsEngineError(err))
	repo.AssertExpectations(t)
}

func TestAnalysisService_GetResult(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	raw, err := json.Marshal(an01.AnalysisResult{
		Offers: []an01.SupplierOffer{{ID: 12, Name: "Acme", RankFinal: 1, AmountTTC: 100}},
		Stats:  an01.FinancialStats{SelectedSupplierName: "Acme"},
	})
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, tenantID, id).Return(&domain.Analysis{
		ID: id, TenantID: tenantID, Status: domain.AnalysisStatusCompleted, Result: raw,
	}, nil)

	a, result, err := svc.GetResult(context.Background(), tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)
	require.Len(t, result.Offers, 1)
	assert.Equal(t, "Acme", result.Stats.SelectedSupplierName)
}

func TestAnalysisService_GetResult_NotCompleted(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, id).Return(&domain.Analysis{
		ID: id, TenantID: tenantID, Status: domain.AnalysisStatusFailed, Error: "no offers found",
	}, nil)

	_, _, err := svc.GetResult(context.Background(), tenantID, id)
	assert.ErrorIs(t, err, domain.ErrAnalysisNotCompleted)
}

func TestAnalysisService_Reanalyze(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	existing := &domain.Analysis{
		ID: id, TenantID: tenantID, S3Bucket: "test-bucket", S3Key: "k",
		Status: domain.AnalysisStatusFailed, Error: "table structure not recognized",
	}

	repo.On("GetByID", mock.Anything, tenantID, id).Return(existing, nil)
	storage.On("Download", mock.Anything, "test-bucket", "k").Return(testutil.AN01Workbook(t), nil)
	repo.On("Complete", mock.Anything, existing).Return(nil)

	a, err := svc.Reanalyze(context.Background(), tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, 2, a.OfferCount)
	assert.Equal(t, "AOO-2024-017", a.ConsultationNumber)
	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAnalysisService_Reanalyze_DownloadFailure(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, id).Return(&domain.Analysis{ID: id, TenantID: tenantID, S3Bucket: "b", S3Key: "k"}, nil)
	storage.On("Download", mock.Anything, "b", "k").Return(nil, errors.New("no such key"))

	_, err := svc.Reanalyze(context.Background(), tenantID, id)
	assert.Error(t, err)
	assert.False(t, service.IsEngineError(err))
	repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalysisService_GetDownloadURL(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, id).Return(&domain.Analysis{ID: id, S3Bucket: "b", S3Key: "k"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "b", "k", int64(3600)).Return("https://signed", nil)

	url, err := svc.GetDownloadURL(context.Background(), tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)
}

func TestAnalysisService_Delete(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, id).Return(&domain.Analysis{ID: id, S3Bucket: "b", S3Key: "k"}, nil)
	storage.On("Delete", mock.Anything, "b", "k").Return(nil)
	repo.On("Delete", mock.Anything, tenantID, id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), tenantID, id))
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestAnalysisService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID, id := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, id).Return(nil, domain.ErrNotFound)

	err := svc.Delete(context.Background(), tenantID, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisService_List(t *testing.T) {
	repo := new(mocks.MockAnalysisRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAnalysisService(repo, storage)

	tenantID := uuid.New()
	items := []domain.AnalysisSummary{{ID: uuid.New(), OriginalName: "a.xlsx"}}
	repo.On("ListByTenant", mock.Anything, tenantID, 0, 20).Return(items, 1, nil)

	got, total, err := svc.List(context.Background(), tenantID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, items, got)
}
