package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// RoleRepository implements ports.RoleRepository on GORM/SQLite.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role by id: %w", err)
	}
	return &domain.Role{ID: m.ID, Name: m.Name}, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role by name: %w", err)
	}
	return &domain.Role{ID: m.ID, Name: m.Name}, nil
}

// Seed creates the well-known roles when missing. Idempotent; called once at
// startup.
func (r *RoleRepository) Seed(ctx context.Context) error {
	for _, name := range []string{domain.RoleUser, domain.RoleAdmin} {
		var existing roleModel
		err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed roles: lookup %s: %w", name, err)
		}
		if err := r.db.WithContext(ctx).Create(&roleModel{Name: name}).Error; err != nil {
			return fmt.Errorf("seed roles: create %s: %w", name, err)
		}
	}
	return nil
}
