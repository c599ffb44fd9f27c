package domain

import "time"

// TokenClaims is the decoded, verified payload of a signed token. Refresh
// tokens carry no email claim and no roles; the subject identifies the
// account in both kinds.
type TokenClaims struct {
	UserID    int64
	Email     string
	Roles     []string
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal converts verified access-token claims into the request principal.
func (c *TokenClaims) Principal() *Principal {
	return &Principal{UserID: c.UserID, Email: c.Subject, Roles: c.Roles}
}
