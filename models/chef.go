package models

import "time"

type Chef struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Color     string    `gorm:"type:varchar(16)" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// ChefCategory maps a menu category to the chef who cooks it. A category
// belongs to at most one chef at a time; assigning it to a new chef removes
// it from the previous one.
type ChefCategory struct {
	ChefID     string `gorm:"primaryKey;type:varchar(64)" json:"chef_id"`
	CategoryID string `gorm:"primaryKey;type:varchar(64)" json:"category_id"`
}
