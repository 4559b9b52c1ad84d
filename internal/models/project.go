package models

import "time"

// Project represents a portfolio entry with one embedded image.
type Project struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name        string `gorm:"type:text;not null"` // Project name.
	Description string `gorm:"type:text;not null"` // Free-text description.
	Location    string `gorm:"type:text;not null"` // Location label.
	Category    string `gorm:"type:text;not null"` // Category label.

	ImageData        []byte `gorm:"type:bytea"` // Raw image bytes, stored verbatim.
	ImageContentType string `gorm:"type:text"`  // Declared MIME type of the image.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
