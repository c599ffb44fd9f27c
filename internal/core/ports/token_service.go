package ports

import (
	"time"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// TokenService issues and verifies signed bearer tokens. Implementations are
// pure and stateless: every call re-parses its input, and the only shared
// state is the immutable signing key loaded at startup.
type TokenService interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken(user *domain.User) (string, error)

	// Verify parses and checks signature and expiry, returning the decoded
	// claims or one of domain.ErrTokenExpired, domain.ErrTokenMalformed,
	// domain.ErrTokenSignatureInvalid.
	Verify(token string) (*domain.TokenClaims, error)

	// IsValid reports whether the token verifies and its subject equals
	// expectedSubject exactly.
	IsValid(token, expectedSubject string) bool

	ExtractSubject(token string) (string, error)
	ExtractExpiry(token string) (time.Time, error)
}
