package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

// InvoiceService builds the read-time billing view for a guest. Nothing is
// persisted; calling it twice with no intervening writes yields identical
// output.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// Invoice is the derived aggregate: the guest's reservations and orders and
// the sum of their frozen subtotals.
type Invoice struct {
	Guest        models.Guest         `json:"guest"`
	Reservations []models.Reservation `json:"reservations"`
	Orders       []models.Order       `json:"orders"`
	TotalUSD     money.Amount         `json:"totalUSD"`
}

func (s *InvoiceService) BuildInvoice(guestID uint) (*Invoice, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "guest", ID: guestID}
		}
		return nil, fmt.Errorf("failed to load guest %d: %w", guestID, err)
	}

	var reservations []models.Reservation
	if err := s.DB.Preload("Room").
		Where("guest_id = ?", guestID).
		Order("created_at").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations for guest %d: %w", guestID, err)
	}

	reservationIDs := make([]uint, 0, len(reservations))
	for _, r := range reservations {
		reservationIDs = append(reservationIDs, r.ID)
	}

	// Orders billed to the guest directly plus orders folded into any of the
	// guest's stays.
	var orders []models.Order
	query := s.DB.Preload("Lines").Preload("Lines.Item").Order("created_at")
	if len(reservationIDs) > 0 {
		query = query.Where("guest_id = ? OR reservation_id IN ?", guestID, reservationIDs)
	} else {
		query = query.Where("guest_id = ?", guestID)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders for guest %d: %w", guestID, err)
	}

	total := money.Zero()
	for _, r := range reservations {
		if r.SubTotalUSD != nil {
			total = total.Add(*r.SubTotalUSD)
		}
	}
	for _, o := range orders {
		total = total.Add(o.SubTotalUSD)
	}

	return &Invoice{
		Guest:        guest,
		Reservations: reservations,
		Orders:       orders,
		TotalUSD:     total,
	}, nil
}
