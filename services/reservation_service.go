package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelops-backend/models"
	"hotelops-backend/money"
	"hotelops-backend/utils"
)

// ReservationService computes stay billing and enforces the reservation
// state machine.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// reservationFlow is the only allowed next status per current status.
var reservationFlow = map[models.ReservationStatus]models.ReservationStatus{
	models.ReservationConfirmed: models.ReservationCheckedIn,
	models.ReservationCheckedIn: models.ReservationFinalBill,
	models.ReservationFinalBill: models.ReservationCheckedOut,
}

// ValidTransition reports whether from -> to is a legal single step.
func ValidTransition(from, to models.ReservationStatus) bool {
	return reservationFlow[from] == to
}

// Nights is the number of whole nights billed between check-in and
// check-out: the day difference, with any fractional remainder rounded up.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, &ValidationError{Field: "checkOut", Reason: "must be after checkIn"}
	}
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	return nights, nil
}

// ComputeSubtotal = daily rate x nights. Exact integer multiply.
func ComputeSubtotal(dailyRate money.Amount, checkIn, checkOut time.Time) (money.Amount, error) {
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return money.Zero(), err
	}
	return dailyRate.MulInt(int64(nights)), nil
}

func parseStayDate(field, value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, &ValidationError{Field: field, Reason: fmt.Sprintf("invalid date %q", value)}
}

// CreateReservation books a stay: CONFIRMED status, room-type snapshot,
// subtotal from the room's current rate.
func (s *ReservationService) CreateReservation(guestID, roomID *uint, checkIn, checkOut string) (*models.Reservation, error) {
	ci, err := parseStayDate("checkIn", checkIn)
	if err != nil {
		return nil, err
	}
	co, err := parseStayDate("checkOut", checkOut)
	if err != nil {
		return nil, err
	}
	if !co.After(ci) {
		return nil, &ValidationError{Field: "checkOut", Reason: "must be after checkIn"}
	}

	reservation := models.Reservation{
		ReferenceCode: utils.NewReferenceCode("RSV"),
		GuestID:       guestID,
		RoomID:        roomID,
		CheckIn:       &ci,
		CheckOut:      &co,
		Status:        models.ReservationConfirmed,
		PaymentStatus: models.PaymentUnpaid,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if guestID != nil {
			var guest models.Guest
			if err := tx.First(&guest, *guestID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "guest", ID: *guestID}
				}
				return fmt.Errorf("failed to load guest %d: %w", *guestID, err)
			}
		}
		if roomID != nil {
			var room models.Room
			if err := tx.First(&room, *roomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "room", ID: *roomID}
				}
				return fmt.Errorf("failed to load room %d: %w", *roomID, err)
			}
			reservation.RoomType = string(room.Type)
			subtotal, err := ComputeSubtotal(room.DailyRateUSD, ci, co)
			if err != nil {
				return err
			}
			reservation.SubTotalUSD = &subtotal
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &reservation, nil
}

// Transition advances a reservation one step along the linear state
// machine. Entering FINAL_BILL recomputes the subtotal from the room's
// current rate and freezes it; a CHECKED_OUT reservation is immutable.
func (s *ReservationService) Transition(id uint, newStatus models.ReservationStatus) (*models.Reservation, error) {
	if !newStatus.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", newStatus)}
	}

	var reservation models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "reservation", ID: id}
			}
			return fmt.Errorf("failed to load reservation %d: %w", id, err)
		}

		if reservation.Status == models.ReservationCheckedOut {
			return &ValidationError{Field: "status", Reason: "reservation is checked out and immutable"}
		}
		if !ValidTransition(reservation.Status, newStatus) {
			return &ValidationError{
				Field:  "status",
				Reason: fmt.Sprintf("cannot transition %s -> %s", reservation.Status, newStatus),
			}
		}

		updates := map[string]interface{}{"status": newStatus}

		if newStatus == models.ReservationFinalBill {
			if reservation.RoomID == nil {
				return &InvariantViolation{Entity: "reservation", ID: id, Reason: "final bill requires a room"}
			}
			if reservation.CheckIn == nil || reservation.CheckOut == nil {
				return &InvariantViolation{Entity: "reservation", ID: id, Reason: "final bill requires stay dates"}
			}
			var room models.Room
			if err := tx.First(&room, *reservation.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "room", ID: *reservation.RoomID}
				}
				return fmt.Errorf("failed to load room %d: %w", *reservation.RoomID, err)
			}
			subtotal, err := ComputeSubtotal(room.DailyRateUSD, *reservation.CheckIn, *reservation.CheckOut)
			if err != nil {
				return err
			}
			reservation.SubTotalUSD = &subtotal
			updates["sub_total_usd"] = subtotal
		}

		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update reservation %d: %w", id, err)
		}
		reservation.Status = newStatus

		// Room occupancy follows check-in / check-out.
		if reservation.RoomID != nil {
			switch newStatus {
			case models.ReservationCheckedIn:
				if err := setRoomStatus(tx, *reservation.RoomID, models.RoomOccupied); err != nil {
					return err
				}
			case models.ReservationCheckedOut:
				if err := setRoomStatus(tx, *reservation.RoomID, models.RoomVacant); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &reservation, nil
}

func setRoomStatus(tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	if err := tx.Model(&models.Room{}).Where("id = ?", roomID).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update room %d status: %w", roomID, err)
	}
	return nil
}

// UpdateStay changes dates and/or room before the bill is frozen; the
// subtotal is recomputed from the new parameters.
func (s *ReservationService) UpdateStay(id uint, checkIn, checkOut string, roomID *uint) (*models.Reservation, error) {
	var reservation models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "reservation", ID: id}
			}
			return fmt.Errorf("failed to load reservation %d: %w", id, err)
		}
		if reservation.Status == models.ReservationFinalBill || reservation.Status == models.ReservationCheckedOut {
			return &ValidationError{Field: "status", Reason: "bill is frozen; stay can no longer change"}
		}

		ci := reservation.CheckIn
		co := reservation.CheckOut
		if checkIn != "" {
			t, err := parseStayDate("checkIn", checkIn)
			if err != nil {
				return err
			}
			ci = &t
		}
		if checkOut != "" {
			t, err := parseStayDate("checkOut", checkOut)
			if err != nil {
				return err
			}
			co = &t
		}
		if ci == nil || co == nil || !co.After(*ci) {
			return &ValidationError{Field: "checkOut", Reason: "must be after checkIn"}
		}

		if roomID != nil {
			reservation.RoomID = roomID
		}

		updates := map[string]interface{}{
			"check_in":  ci,
			"check_out": co,
		}
		if roomID != nil {
			updates["room_id"] = *roomID
		}

		if reservation.RoomID != nil {
			var room models.Room
			if err := tx.First(&room, *reservation.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "room", ID: *reservation.RoomID}
				}
				return fmt.Errorf("failed to load room %d: %w", *reservation.RoomID, err)
			}
			subtotal, err := ComputeSubtotal(room.DailyRateUSD, *ci, *co)
			if err != nil {
				return err
			}
			reservation.SubTotalUSD = &subtotal
			updates["sub_total_usd"] = subtotal
			updates["room_type"] = string(room.Type)
			reservation.RoomType = string(room.Type)
		}

		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update reservation %d: %w", id, err)
		}
		reservation.CheckIn = ci
		reservation.CheckOut = co
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &reservation, nil
}

func (s *ReservationService) GetReservation(id uint) (models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation, &NotFoundError{Entity: "reservation", ID: id}
		}
		return reservation, fmt.Errorf("failed to load reservation %d: %w", id, err)
	}
	return reservation, nil
}

func (s *ReservationService) ListReservations() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

// MarkPaid records an external payment against the reservation.
func (s *ReservationService) MarkPaid(id uint) (models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "reservation", ID: id}
			}
			return fmt.Errorf("failed to load reservation %d: %w", id, err)
		}
		if reservation.PaymentStatus == models.PaymentPaid {
			return nil
		}
		if err := tx.Model(&reservation).Update("payment_status", models.PaymentPaid).Error; err != nil {
			return fmt.Errorf("failed to mark reservation %d paid: %w", id, err)
		}
		reservation.PaymentStatus = models.PaymentPaid
		return nil
	})
	return reservation, err
}
