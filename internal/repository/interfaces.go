package repository

import (
	"context"

	"account-service/internal/domain/user"
)

// UserRepository is the persistent user collection. Lookups by email and id
// return account_errors.ErrNotFound when nothing matches; Create returns
// account_errors.ErrAlreadyExists when the id or email is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) error
	DeleteUser(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
