package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/handler"
	"procura/internal/service"
	"procura/mocks"
)

func TestTokenHandler_Issue(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewTokenHandler(mockAuth)
	tenantID, subject := uuid.New(), uuid.New()

	mockAuth.On("IssueToken", service.TokenInput{
		TenantID: tenantID,
		UserID:   subject,
		Role:     domain.RoleMember,
		TTL:      72 * time.Hour,
	}).Return(&service.IssuedToken{AccessToken: "tok", ExpiresAt: time.Now().Add(72 * time.Hour)}, nil)

	body := bytes.NewBufferString(`{"user_id":"` + subject.String() + `","role":"member","ttl":"72h"}`)
	c, w := newContext(http.MethodPost, "/api/v1/tokens", body)
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, tenantID, uuid.New(), "admin")

	h.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"tok"`)
	mockAuth.AssertExpectations(t)
}

func TestTokenHandler_Issue_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed", `{`, "INVALID_REQUEST"},
		{"missing_user", `{"role":"member"}`, "INVALID_REQUEST"},
		{"unknown_role", `{"user_id":"` + uuid.NewString() + `","role":"owner"}`, "INVALID_ROLE"},
		{"bad_ttl", `{"user_id":"` + uuid.NewString() + `","role":"member","ttl":"soon"}`, "INVALID_TTL"},
		{"negative_ttl", `{"user_id":"` + uuid.NewString() + `","role":"member","ttl":"-1h"}`, "INVALID_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(mocks.MockAuthService)
			h := handler.NewTokenHandler(mockAuth)

			c, w := newContext(http.MethodPost, "/api/v1/tokens", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")
			setAuthContext(c, uuid.New(), uuid.New(), "admin")

			h.Issue(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
			mockAuth.AssertNotCalled(t, "IssueToken", mock.Anything)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		h := handler.NewHealthHandler(fakePinger{})
		c, w := newContext(http.MethodGet, "/healthz", nil)
		h.Liveness(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ready", func(t *testing.T) {
		h := handler.NewHealthHandler(fakePinger{})
		c, w := newContext(http.MethodGet, "/readyz", nil)
		h.Readiness(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("db_down", func(t *testing.T) {
		h := handler.NewHealthHandler(fakePinger{err: assert.AnError})
		c, w := newContext(http.MethodGet, "/readyz", nil)
		h.Readiness(c)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "database not reachable")
	})
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
