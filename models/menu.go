package models

import (
	"errors"
	"time"
)

// AddOn modifies a specific menu item's unit price (e.g. extra cheese).
type AddOn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Extra is a standalone side sold alongside a menu item (e.g. a drink),
// purchasable on its own line in the cart.
type Extra struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Item tags understood by the menu UI.
const (
	TagBestSeller = "bestSeller"
	TagReadyFast  = "readyFast"
)

type MenuItem struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	CategoryID  string    `gorm:"type:varchar(64);index;not null" json:"category_id"`
	Tags        []string  `gorm:"serializer:json;type:text" json:"tags,omitempty"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	Image       string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	AddOns      []AddOn   `gorm:"serializer:json;type:text" json:"add_ons,omitempty"`
	Extras      []Extra   `gorm:"serializer:json;type:text" json:"extras,omitempty"`
	Version     int64     `gorm:"not null;default:0" json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrInvalidPrice = errors.New("price must be greater than zero")
	ErrEmptyName    = errors.New("name is required")
	ErrEmptyID      = errors.New("id is required")
)

// Validate checks the invariants a menu item must satisfy before it is
// written anywhere.
func (m *MenuItem) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.Name == "" {
		return ErrEmptyName
	}
	if m.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// FindAddOn looks up one of the item's add-ons by id.
func (m *MenuItem) FindAddOn(id string) (AddOn, bool) {
	for _, a := range m.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}
