package domain

import (
	"strings"
	"time"
)

// User models a persisted account identity.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"is_active"`
	Locale       string    `json:"locale,omitempty"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleNames returns the names of the user's roles in assignment order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// UserView is the public-safe projection of a User returned to callers.
// It never carries the password hash.
type UserView struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"is_active"`
	Locale string `json:"locale,omitempty"`
	Roles  []Role `json:"roles"`
}

// View builds the public projection of the user.
func (u *User) View() *UserView {
	roles := u.Roles
	if roles == nil {
		roles = []Role{}
	}
	return &UserView{
		ID:     u.ID,
		Email:  u.Email,
		Phone:  u.Phone,
		Active: u.Active,
		Locale: u.Locale,
		Roles:  roles,
	}
}

// NormalizeEmail lowercases and trims an email address. Every comparison and
// every stored email goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthResponse combines freshly issued tokens with the public user view.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *UserView `json:"user"`
}

// Principal is the authenticated identity threaded through a request once the
// bearer token has been verified.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

// HasRole reports whether the principal carries the named role.
func (p *Principal) HasRole(name string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}
