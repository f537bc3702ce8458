package models

import (
	"gorm.io/gorm"

	"hotelops-backend/money"
)

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomSuperior RoomType = "superior"
	RoomDeluxe   RoomType = "deluxe"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomStandard, RoomSuperior, RoomDeluxe:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomOccupied    RoomStatus = "occupied"
	RoomVacant      RoomStatus = "vacant"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomOccupied, RoomVacant, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	gorm.Model

	RoomNumber string     `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50);not null"`
	Type       RoomType   `json:"type" gorm:"size:32;not null"`
	Status     RoomStatus `json:"status" gorm:"size:32;not null;default:vacant"`
	Capacity   int        `json:"capacity" gorm:"not null;default:2"`

	DailyRateUSD money.Amount `json:"dailyRateUSD" gorm:"column:daily_rate_usd;type:decimal(20,6);not null"`
}
