package database

import (
	"fmt"

	"gorm.io/gorm"

	"contact-backend/models"
)

// EnsureSchema applies the create-if-absent schema for the service.
// AutoMigrate only adds what is missing; existing columns are never altered
// or dropped, and calling it again is a no-op.
func EnsureSchema(handle *gorm.DB) error {
	return handle.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&models.ContactMessage{}); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}
		return nil
	})
}
