package repository

import (
	"context"
	"errors"

	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return account_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, account_errors.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// UpdateUser writes every column of u, including nulls, to the existing row.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u user.User) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{ID: u.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return account_errors.ErrAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return account_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&user.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return account_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
