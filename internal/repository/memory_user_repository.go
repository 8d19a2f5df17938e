package repository

import (
	"context"
	"sync"

	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"
)

// MemoryUserRepository keeps users in process memory. It enforces the same
// id and email uniqueness as the persistent stores and is used for local
// development (STORE_DRIVER=memory) and tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; ok {
		return account_errors.ErrAlreadyExists
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return account_errors.ErrAlreadyExists
	}
	r.byID[u.ID] = u.Clone()
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *MemoryUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, account_errors.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryUserRepository) UpdateUser(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[u.ID]
	if !ok {
		return account_errors.ErrNotFound
	}
	if u.Email != existing.Email {
		if _, taken := r.byEmail[u.Email]; taken {
			return account_errors.ErrAlreadyExists
		}
		delete(r.byEmail, existing.Email)
		r.byEmail[u.Email] = u.ID
	}
	r.byID[u.ID] = u.Clone()
	return nil
}

func (r *MemoryUserRepository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return account_errors.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, existing.Email)
	return nil
}

func (r *MemoryUserRepository) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored users.
func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
