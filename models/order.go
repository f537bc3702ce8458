package models

import (
	"gorm.io/gorm"

	"hotelops-backend/money"
)

// Order is a food/beverage sale. The subtotal and the happy-hour flag are
// fixed at creation time and never recomputed from current catalog prices.
type Order struct {
	gorm.Model

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	GuestID       *uint `gorm:"index;column:guest_id" json:"guestId,omitempty"`
	ReservationID *uint `gorm:"index;column:reservation_id" json:"reservationId,omitempty"`

	SubTotalUSD money.Amount  `gorm:"column:sub_total_usd;type:decimal(20,6);not null" json:"subTotalUSD"`
	HappyHour   bool          `gorm:"column:happy_hour;not null;default:false" json:"happyHour"`
	Status      PaymentStatus `gorm:"size:16;not null;default:UNPAID" json:"status"`

	Lines []OrderLineItem `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// OrderLineItem is one (item, quantity) entry within an order. UnitPriceUSD
// is the effective price captured at creation, so the subtotal stays
// auditable without reconstructing past pricing windows.
type OrderLineItem struct {
	gorm.Model

	OrderID uint `gorm:"index;column:order_id" json:"orderId"`
	ItemID  uint `gorm:"index;column:item_id" json:"itemId"`

	Quantity     int          `gorm:"not null" json:"quantity"`
	UnitPriceUSD money.Amount `gorm:"column:unit_price_usd;type:decimal(20,6);not null" json:"unitPriceUSD"`

	Item Item `gorm:"foreignKey:ItemID;references:ID" json:"item,omitempty"`
}
