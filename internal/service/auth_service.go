package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"procura/internal/config"
	"procura/internal/domain"
)

const accessAudience = "access"

// Claims represents the JWT claims with tenant context.
type Claims struct {
	jwt.RegisteredClaims
	TenantID uuid.UUID       `json:"tenant_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Role     domain.UserRole `json:"role"`
}

// TokenInput describes the principal an access token is issued for.
// A zero TTL falls back to the configured access expiry.
type TokenInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     domain.UserRole
	TTL      time.Duration
}

// IssuedToken is a signed access token and its expiry.
type IssuedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService issues and validates API access tokens.
type AuthService interface {
	IssueToken(input TokenInput) (*IssuedToken, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg, now: time.Now}
}

func (s *authService) IssueToken(input TokenInput) (*IssuedToken, error) {
	if input.TenantID == uuid.Nil || input.UserID == uuid.Nil {
		return nil, fmt.Errorf("auth.IssueToken: tenant and user are required")
	}
	if !domain.ValidRoles[input.Role] {
		return nil, fmt.Errorf("auth.IssueToken: unknown role %q", input.Role)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = s.cfg.AccessTokenExpiry
	}
	now := s.now()
	expiry := now.Add(ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   input.UserID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{accessAudience},
		},
		TenantID: input.TenantID,
		UserID:   input.UserID,
		Role:     input.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	return &IssuedToken{AccessToken: signed, ExpiresAt: expiry}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(s.cfg.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	if !slices.Contains(aud, accessAudience) {
		return nil, domain.ErrUnauthorized
	}
	if claims.TenantID == uuid.Nil || claims.UserID == uuid.Nil || !domain.ValidRoles[claims.Role] {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
