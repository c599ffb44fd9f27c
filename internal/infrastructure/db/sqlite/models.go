package sqlite

import (
	"time"

	"github.com/qcommerce/account-service/internal/core/domain"
)

type userModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"uniqueIndex;not null"`
	Phone        *string `gorm:"uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	Active       bool    `gorm:"not null;default:true"`
	Locale       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Roles        []roleModel `gorm:"many2many:user_roles"`
}

func (userModel) TableName() string { return "users" }

type roleModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
}

func (roleModel) TableName() string { return "roles" }

func (m *userModel) toDomain() *domain.User {
	roles := make([]domain.Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, domain.Role{ID: r.ID, Name: r.Name})
	}
	u := &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Phone != nil {
		u.Phone = *m.Phone
	}
	if m.Locale != nil {
		u.Locale = *m.Locale
	}
	return u
}

func fromDomain(u *domain.User) *userModel {
	m := &userModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	// Optional uniques stay NULL rather than "", otherwise two users
	// without a phone would collide on the unique index.
	if u.Phone != "" {
		phone := u.Phone
		m.Phone = &phone
	}
	if u.Locale != "" {
		locale := u.Locale
		m.Locale = &locale
	}
	for _, r := range u.Roles {
		m.Roles = append(m.Roles, roleModel{ID: r.ID, Name: r.Name})
	}
	return m
}
