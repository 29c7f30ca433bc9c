package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "procura-test",
	}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	tenantID, userID := uuid.New(), uuid.New()

	tok, err := svc.IssueToken(service.TokenInput{TenantID: tenantID, UserID: userID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "procura-test", claims.Issuer)
}

func TestAuthService_IssueToken_CustomTTL(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	tok, err := svc.IssueToken(service.TokenInput{
		TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleMember, TTL: 48 * time.Hour,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), tok.ExpiresAt, 5*time.Second)
}

func TestAuthService_IssueToken_Rejects(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	t.Run("unknown_role", func(t *testing.T) {
		_, err := svc.IssueToken(service.TokenInput{TenantID: uuid.New(), UserID: uuid.New(), Role: "owner"})
		assert.Error(t, err)
	})

	t.Run("missing_tenant", func(t *testing.T) {
		_, err := svc.IssueToken(service.TokenInput{UserID: uuid.New(), Role: domain.RoleMember})
		assert.Error(t, err)
	})
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := service.NewAuthService(testJWTConfig())
	tok, err := issuer.IssueToken(service.TokenInput{TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleMember})
	require.NoError(t, err)

	cfg := testJWTConfig()
	cfg.Secret = "other-secret"
	_, err = service.NewAuthService(cfg).ValidateToken(tok.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	tok, err := svc.IssueToken(service.TokenInput{
		TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleMember, TTL: time.Nanosecond,
	})
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = svc.ValidateToken(tok.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongAudience(t *testing.T) {
	cfg := testJWTConfig()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Role:     domain.RoleMember,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = service.NewAuthService(cfg).ValidateToken(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{"access"}},
		TenantID:         uuid.New(),
		UserID:           uuid.New(),
		Role:             domain.RoleAdmin,
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(unsigned)
	assert.Error(t, err)
}
