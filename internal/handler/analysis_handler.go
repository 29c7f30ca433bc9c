package handler

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"procura/internal/an01"
	"procura/internal/domain"
	"procura/internal/export"
	"procura/internal/service"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AnalysisHandler handles workbook upload, analysis retrieval and export endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	now             func() time.Time
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, now: time.Now}
}

// Upload handles POST /api/v1/analyses
// @Summary Upload and analyse an AN01 workbook
// @Description Archive an evaluation report (xlsx or xls), extract tender metadata, supplier offers and savings statistics
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "AN01 workbook (.xlsx or .xls)"
// @Success 201 {object} Response{data=domain.Analysis} "Analysis completed"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Offer table missing or empty"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /analyses [post]
func (h *AnalysisHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	a, err := h.analysisService.Upload(c.Request.Context(), service.AnalysisUploadInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		FileName:   header.Filename,
		Size:       header.Size,
		File:       file,
	})
	if err != nil {
		if service.IsEngineError(err) {
			log.Printf("AnalysisHandler.Upload: %s rejected for tenant %s: %v", header.Filename, tenantID, err)
		}
		HandleError(c, err)
		return
	}

	RespondCreated(c, a)
}

// List handles GET /api/v1/analyses
// @Summary List analyses
// @Description List the tenant's analyses, newest first
// @Tags analyses
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.AnalysisSummary,meta=PagMeta} "List of analyses"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /analyses [get]
func (h *AnalysisHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.analysisService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if items == nil {
		items = []domain.AnalysisSummary{}
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/analyses/:id
// @Summary Get analysis by ID
// @Description Get an analysis, its decoded result when completed, and a presigned download URL for the original workbook
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=AnalysisWithDownloadURL} "Analysis with download URL"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Security BearerAuth
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.analysisService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.analysisService.GetDownloadURL(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	resp := AnalysisWithDownloadURL{Analysis: *a, DownloadURL: downloadURL}
	if a.Status == domain.AnalysisStatusCompleted && len(a.Result) > 0 {
		var result an01.AnalysisResult
		if err := json.Unmarshal(a.Result, &result); err != nil {
			log.Printf("AnalysisHandler.GetByID: stored result of %s is not decodable: %v", a.ID, err)
		} else {
			resp.Result = &result
			resp.Analysis.Result = nil
		}
	}

	RespondOK(c, resp)
}

// Reanalyze handles POST /api/v1/analyses/:id/reanalyze
// @Summary Re-run the analysis
// @Description Run the extraction engine again on the archived workbook
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=domain.Analysis} "Analysis completed"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Failure 422 {object} ErrorResponseBody "Offer table missing or empty"
// @Security BearerAuth
// @Router /analyses/{id}/reanalyze [post]
func (h *AnalysisHandler) Reanalyze(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.analysisService.Reanalyze(c.Request.Context(), tenantID, id)
	if err != nil {
		if service.IsEngineError(err) {
			log.Printf("AnalysisHandler.Reanalyze: analysis %s rejected: %v", id, err)
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, a)
}

// ExportOffersCSV handles GET /api/v1/analyses/:id/offers.csv
// @Summary Export offers as CSV
// @Description Download the extracted offer table as semicolon-separated CSV with a UTF-8 BOM
// @Tags analyses
// @Produce text/csv
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Failure 409 {object} ErrorResponseBody "Analysis not completed"
// @Security BearerAuth
// @Router /analyses/{id}/offers.csv [get]
func (h *AnalysisHandler) ExportOffersCSV(c *gin.Context) {
	a, result, ok := h.loadResult(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOffersCSV(&buf, result); err != nil {
		HandleError(c, err)
		return
	}

	h.attach(c, exportBase(a, result), "csv")
	c.Data(http.StatusOK, contentTypeCSV, buf.Bytes())
}

// ExportReport handles GET /api/v1/analyses/:id/report.xlsx
// @Summary Export summary report
// @Description Download a workbook with the tender summary, statistics and offer table
// @Tags analyses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {file} file "XLSX file"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Failure 409 {object} ErrorResponseBody "Analysis not completed"
// @Security BearerAuth
// @Router /analyses/{id}/report.xlsx [get]
func (h *AnalysisHandler) ExportReport(c *gin.Context) {
	a, result, ok := h.loadResult(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, export.ReportInput{Title: a.OriginalName, Result: result}); err != nil {
		HandleError(c, err)
		return
	}

	h.attach(c, exportBase(a, result), "xlsx")
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// Delete handles DELETE /api/v1/analyses/:id
// @Summary Delete an analysis
// @Description Delete an analysis and its archived workbook (admin only)
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Analysis deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Security BearerAuth
// @Router /analyses/{id} [delete]
func (h *AnalysisHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "analysis deleted"})
}

func (h *AnalysisHandler) loadResult(c *gin.Context) (*domain.Analysis, *an01.AnalysisResult, bool) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return nil, nil, false
	}
	id, ok := parseID(c)
	if !ok {
		return nil, nil, false
	}

	a, result, err := h.analysisService.GetResult(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return nil, nil, false
	}
	return a, result, true
}

func (h *AnalysisHandler) attach(c *gin.Context, base, ext string) {
	filename := export.BuildFilename(base, ext, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// exportBase names export files after the consultation number, falling
// back to the uploaded file name.
func exportBase(a *domain.Analysis, result *an01.AnalysisResult) string {
	if result.Metadata.ConsultationNumber != "" {
		return result.Metadata.ConsultationNumber
	}
	return strings.TrimSuffix(a.OriginalName, filepath.Ext(a.OriginalName))
}
