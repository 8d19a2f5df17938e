package repository

import (
	"context"
	"errors"
	"testing"

	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"
)

func TestMemoryCreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &user.User{ID: "u1", Email: "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("expected id u1, got %s", got.ID)
	}

	if _, err := repo.GetUserByEmail(ctx, "b@x.com"); !errors.Is(err, account_errors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryCreateUniqueness(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, &user.User{ID: "u1", Email: "a@x.com"})

	tests := []struct {
		name string
		u    user.User
	}{
		{"duplicate id", user.User{ID: "u1", Email: "other@x.com"}},
		{"duplicate email", user.User{ID: "u2", Email: "a@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.u
			if err := repo.Create(ctx, &u); !errors.Is(err, account_errors.ErrAlreadyExists) {
				t.Fatalf("expected already exists, got %v", err)
			}
		})
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 user, got %d", repo.Len())
	}
}

func TestMemoryUpdateAndDelete(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, &user.User{ID: "u1", Email: "a@x.com"})

	u, _ := repo.GetUserByEmail(ctx, "a@x.com")
	u.Username = "neo"
	if err := repo.UpdateUser(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetUserByEmail(ctx, "a@x.com")
	if got.Username != "neo" {
		t.Fatalf("expected username neo, got %q", got.Username)
	}

	if err := repo.UpdateUser(ctx, user.User{ID: "missing"}); !errors.Is(err, account_errors.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := repo.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "a@x.com"); !errors.Is(err, account_errors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.DeleteUser(ctx, "u1"); !errors.Is(err, account_errors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, &user.User{ID: "u1", Email: "a@x.com", Settings: user.Settings{"k": "v"}})

	got, _ := repo.GetUserByEmail(ctx, "a@x.com")
	got.Settings["k"] = "mutated"

	again, _ := repo.GetUserByEmail(ctx, "a@x.com")
	if again.Settings["k"] != "v" {
		t.Fatalf("stored user was mutated through a returned copy: %v", again.Settings)
	}
}
