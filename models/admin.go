package models

import "time"

// Admin is one row of the access allow-list. Only e-mail addresses present
// here may hold a kitchen/admin session.
type Admin struct {
	Email        string    `gorm:"primaryKey;type:varchar(255)" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
