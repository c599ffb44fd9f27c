package domain

// Well-known role names, seeded at startup.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Role is immutable reference data resolved against the role store; role
// assignments reference roles by id, never by embedded name strings.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoleRef is an incoming reference to a role by id, as supplied at
// registration time. A nil ID is invalid input, not an empty assignment.
type RoleRef struct {
	ID *int64 `json:"id"`
}
