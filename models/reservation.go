package models

import (
	"time"

	"gorm.io/gorm"

	"hotelops-backend/money"
)

type ReservationStatus string

// Reservation lifecycle is strictly linear: no skipping, no going back.
const (
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationFinalBill  ReservationStatus = "FINAL_BILL"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationConfirmed, ReservationCheckedIn, ReservationFinalBill, ReservationCheckedOut:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

type Reservation struct {
	gorm.Model

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	GuestID *uint `gorm:"index;column:guest_id" json:"guestId,omitempty"`
	RoomID  *uint `gorm:"index;column:room_id" json:"roomId,omitempty"`

	// Snapshot of the room type at booking time; survives room reassignment.
	RoomType string `gorm:"column:room_type;size:32" json:"roomType,omitempty"`

	CheckIn  *time.Time `gorm:"column:check_in" json:"checkIn,omitempty"`
	CheckOut *time.Time `gorm:"column:check_out" json:"checkOut,omitempty"`

	Status        ReservationStatus `gorm:"size:32;not null;default:CONFIRMED" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"column:payment_status;size:16;not null;default:UNPAID" json:"paymentStatus"`

	SubTotalUSD *money.Amount `gorm:"column:sub_total_usd;type:decimal(20,6)" json:"subTotalUSD,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
