package models

import "time"

// ContactSubmission stores a message sent through the public contact form.
type ContactSubmission struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	FullName string `gorm:"type:text;not null"` // Visitor name.
	Email    string `gorm:"type:text;not null"` // Visitor email.
	Mobile   string `gorm:"type:text;not null"` // Visitor phone number.
	City     string `gorm:"type:text;not null"` // Visitor city.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}

// Subscriber stores a newsletter signup. Duplicate emails are allowed.
type Subscriber struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Email string `gorm:"type:text;not null"` // Subscriber email.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
