package database

import (
	"fmt"

	"github.com/yukikurage/design-tracker/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the SQL tables backing tasks and members,
// including the unique index on member names and the updatedAt index
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Task{}, &models.Member{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
