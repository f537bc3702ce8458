package models

import (
	"time"

	"gorm.io/datatypes"
)

// HotelSetting is the singleton configuration row. The happy-hour window is
// a time-of-day interval [start, end) that may wrap midnight, applied to the
// categories listed in HappyHourCategories.
type HotelSetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`

	HappyHourStart string `gorm:"column:happy_hour_start;size:5" json:"happyHourStart"` // "16:00"
	HappyHourEnd   string `gorm:"column:happy_hour_end;size:5" json:"happyHourEnd"`     // "18:00"

	// JSON array of ItemCategory strings.
	HappyHourCategories datatypes.JSON `gorm:"column:happy_hour_categories" json:"happyHourCategories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
