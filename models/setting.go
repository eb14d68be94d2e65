package models

import "time"

// Well-known settings keys.
const (
	SettingRushHourMode  = "rush_hour_mode"
	SettingRushHourItems = "rush_hour_items"
)

// Setting is a key/value row; Value holds raw JSON so booleans and string
// lists share one table.
type Setting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
