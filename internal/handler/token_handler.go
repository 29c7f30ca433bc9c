package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/domain"
	"procura/internal/service"
)

// IssueTokenRequest represents the token issue request body.
type IssueTokenRequest struct {
	UserID uuid.UUID       `json:"user_id" binding:"required" example:"987fcdeb-51a2-3bc4-d567-890123456789"`
	Role   domain.UserRole `json:"role" binding:"required" example:"member"`
	TTL    string          `json:"ttl" example:"72h"`
}

// TokenHandler lets tenant admins issue access tokens for their tenant.
type TokenHandler struct {
	authService service.AuthService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(authService service.AuthService) *TokenHandler {
	return &TokenHandler{authService: authService}
}

// Issue handles POST /api/v1/tokens
// @Summary Issue an access token
// @Description Issue an access token for a user of the caller's tenant (admin only)
// @Tags tokens
// @Accept json
// @Produce json
// @Param request body IssueTokenRequest true "Token subject"
// @Success 201 {object} Response{data=TokenResponse} "Token issued"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /tokens [post]
func (h *TokenHandler) Issue(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !domain.ValidRoles[req.Role] {
		RespondError(c, http.StatusBadRequest, "INVALID_ROLE", "invalid role; allowed: admin, member")
		return
	}

	var ttl time.Duration
	if req.TTL != "" {
		d, err := time.ParseDuration(req.TTL)
		if err != nil || d <= 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_TTL", "ttl must be a positive duration such as 72h")
			return
		}
		ttl = d
	}

	tok, err := h.authService.IssueToken(service.TokenInput{
		TenantID: tenantID,
		UserID:   req.UserID,
		Role:     req.Role,
		TTL:      ttl,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tok)
}
