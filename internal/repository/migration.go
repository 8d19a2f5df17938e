package repository

import (
	"fmt"

	"account-service/internal/domain/user"

	"gorm.io/gorm"
)

// InitSchema creates or updates the users table.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return fmt.Errorf("auto migrate users: %w", err)
	}
	return nil
}
