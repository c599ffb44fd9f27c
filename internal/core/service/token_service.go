package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qcommerce/account-service/internal/core/domain"
)

const (
	minKeyBytes       = 32 // HS256 requires a key of at least 256 bits
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService issues and verifies HS256-signed access and refresh tokens.
// It holds no mutable state beyond the signing key loaded at construction,
// so all methods are safe for concurrent use.
type TokenService struct {
	key        []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// jwtClaims is the wire shape of both token kinds. Refresh tokens omit the
// email and roles claims.
type jwtClaims struct {
	UserID int64    `json:"userId"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// NewTokenService builds a TokenService from the configured secret. The
// secret is base64-decoded when it parses as base64, otherwise taken as raw
// bytes, and must yield at least 256 bits of key material; a shorter key is
// a fatal configuration error, not a retryable condition.
func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		key = []byte(secret)
	}
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("jwt secret must decode to at least %d bytes for HS256, got %d", minKeyBytes, len(key))
	}

	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	if refreshTTL <= accessTTL {
		return nil, fmt.Errorf("refresh token TTL (%s) must exceed access token TTL (%s)", refreshTTL, accessTTL)
	}

	return &TokenService{
		key:        key,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccessToken signs a short-lived token carrying the user's id, email,
// and role names. Subject is always the stored (normalized) email.
func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.RoleNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// IssueRefreshToken signs a longer-lived token identifying the user by id
// and subject only.
func (s *TokenService) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify parses the token and checks signature and expiry. Each call
// re-parses independently; nothing is cached between calls.
func (s *TokenService) Verify(token string) (*domain.TokenClaims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignatureInvalid
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	out := &domain.TokenClaims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Roles:   claims.Roles,
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// IsValid reports whether the token verifies and its subject matches
// expectedSubject exactly (case-sensitive on the stored email).
func (s *TokenService) IsValid(token, expectedSubject string) bool {
	claims, err := s.Verify(token)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// ExtractSubject returns the token's subject claim after full verification.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractExpiry returns the token's expiry after full verification.
func (s *TokenService) ExtractExpiry(token string) (time.Time, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt, nil
}
