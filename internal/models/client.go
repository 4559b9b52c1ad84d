package models

import "time"

// Client represents a client testimonial shown on the public site.
type Client struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name        string `gorm:"type:text;not null"` // Client name.
	Designation string `gorm:"type:text;not null"` // Role or title shown under the name.
	Description string `gorm:"type:text;not null"` // Testimonial text.

	ImageData        []byte `gorm:"type:bytea"` // Raw image bytes, stored verbatim.
	ImageContentType string `gorm:"type:text"`  // Declared MIME type of the image.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
