package db

import (
	"fmt"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Admin{},
		&models.Project{},
		&models.Client{},
		&models.ContactSubmission{},
		&models.Subscriber{},
		&models.Setting{},
	)
}
