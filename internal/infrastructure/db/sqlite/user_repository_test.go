package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qcommerce/account-service/internal/core/domain"
)

func testRepos(t *testing.T) (*UserRepository, *RoleRepository) {
	t.Helper()
	db, err := Connect(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	roles := NewRoleRepository(db)
	if err := roles.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return NewUserRepository(db), roles
}

func newUser(email string, roles ...domain.Role) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Active:       true,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRoleRepository_SeedIdempotent(t *testing.T) {
	_, roles := testRepos(t)

	if err := roles.Seed(context.Background()); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	user, err := roles.FindByName(domainCtx(), domain.RoleUser)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	admin, err := roles.FindByName(domainCtx(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if user.ID == admin.ID {
		t.Fatalf("seeded roles share an id")
	}

	if _, err := roles.FindByID(domainCtx(), 999); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func domainCtx() context.Context { return context.Background() }

func TestUserRepository_CreateAndFind(t *testing.T) {
	users, roles := testRepos(t)

	role, err := roles.FindByName(domainCtx(), domain.RoleUser)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}

	created, err := users.Create(domainCtx(), newUser("alice@example.com", *role))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if len(created.Roles) != 1 || created.Roles[0].Name != domain.RoleUser {
		t.Fatalf("roles not persisted: %v", created.Roles)
	}

	found, err := users.FindByEmail(domainCtx(), "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != created.ID || found.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", found)
	}

	if _, err := users.FindByEmail(domainCtx(), "missing@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users, _ := testRepos(t)

	if _, err := users.Create(domainCtx(), newUser("bob@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := users.Create(domainCtx(), newUser("bob@example.com")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_DuplicatePhone(t *testing.T) {
	users, _ := testRepos(t)

	first := newUser("carol@example.com")
	first.Phone = "+5215512345678"
	if _, err := users.Create(domainCtx(), first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := newUser("dan@example.com")
	second.Phone = "+5215512345678"
	if _, err := users.Create(domainCtx(), second); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate phone, got %v", err)
	}

	// Absent phones must not collide with each other.
	if _, err := users.Create(domainCtx(), newUser("erin@example.com")); err != nil {
		t.Fatalf("Create without phone: %v", err)
	}
	if _, err := users.Create(domainCtx(), newUser("frank@example.com")); err != nil {
		t.Fatalf("second create without phone: %v", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	users, _ := testRepos(t)

	created, err := users.Create(domainCtx(), newUser("gina@example.com"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.PasswordHash = "$2a$10$replacedreplacedreplaced"
	created.Active = false
	if err := users.Update(domainCtx(), created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := users.FindByEmail(domainCtx(), "gina@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.Active || found.PasswordHash != "$2a$10$replacedreplacedreplaced" {
		t.Fatalf("update not applied: %+v", found)
	}
}

func TestUserRepository_List(t *testing.T) {
	users, _ := testRepos(t)

	for _, email := range []string{"one@example.com", "two@example.com", "three@example.com"} {
		if _, err := users.Create(domainCtx(), newUser(email)); err != nil {
			t.Fatalf("Create %s: %v", email, err)
		}
	}

	all, err := users.List(domainCtx())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
}
