package domain

import "time"

// AuthEventKind classifies entries in the auth audit trail.
type AuthEventKind string

const (
	EventRegistered     AuthEventKind = "registered"
	EventLoginSucceeded AuthEventKind = "login_succeeded"
	EventLoginFailed    AuthEventKind = "login_failed"
	EventLogout         AuthEventKind = "logout"
	EventTokenRefreshed AuthEventKind = "token_refreshed"
	EventPasswordReset  AuthEventKind = "password_reset"
)

// AuthEvent records a single authentication-related occurrence for the
// audit trail. Events are advisory; failures writing them never surface to
// the request path.
type AuthEvent struct {
	Email     string
	Kind      AuthEventKind
	Timestamp time.Time
	Source    string // remote address or caller-reported origin
	Detail    string // optional free-form context, never the password
}
