package models

import "time"

type Category struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Tagline   string    `gorm:"type:varchar(255)" json:"tagline,omitempty"`
	Icon      string    `gorm:"type:varchar(16)" json:"icon"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
