package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelops-backend/models"
	"hotelops-backend/money"
	"hotelops-backend/utils"
)

// maxCreateOrderAttempts bounds the retry loop on lock contention before the
// failure is surfaced as a ConcurrentModificationError.
const maxCreateOrderAttempts = 3

// OrderService is the order ledger: it turns a set of requested lines into
// an atomic, stock-safe order with an exact-decimal subtotal.
type OrderService struct {
	DB      *gorm.DB
	Pricing *PricingService
	Now     func() time.Time
}

func NewOrderService(db *gorm.DB, pricing *PricingService) *OrderService {
	return &OrderService{DB: db, Pricing: pricing, Now: time.Now}
}

// OrderLine is one requested (item, quantity) pair.
type OrderLine struct {
	ItemID   uint `json:"itemId"`
	Quantity int  `json:"quantity"`
}

// pricedLine carries the per-line figures captured in the pricing step; the
// subtotal is computed from these, never from catalog prices re-read later.
type pricedLine struct {
	ItemID    uint
	Quantity  int
	UnitPrice money.Amount
	HappyHour bool
}

// orderPlan is the outcome of pricing and recipe resolution over one
// catalog snapshot: everything needed to apply the order atomically.
type orderPlan struct {
	Lines     []pricedLine
	Required  map[uint]int // merged leaf item id -> units to decrement
	SubTotal  money.Amount
	HappyHour bool
}

// planOrder validates the lines against a snapshot, prices each line and
// expands recipes into merged leaf requirements. Pure over the snapshot.
func planOrder(snap *CatalogSnapshot, lines []OrderLine, at time.Time, window HappyHourWindow) (*orderPlan, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Field: "lines", Reason: "at least one line required"}
	}

	plan := &orderPlan{SubTotal: money.Zero()}
	perLine := make([]map[uint]int, 0, len(lines))

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
		}
		item, ok := snap.Items[line.ItemID]
		if !ok {
			return nil, &NotFoundError{Entity: "item", ID: line.ItemID}
		}

		unitPrice, happyHour, err := EffectiveUnitPrice(item, at, window)
		if err != nil {
			return nil, err
		}
		required, err := ResolveRequiredLeafStock(snap, line.ItemID, line.Quantity)
		if err != nil {
			return nil, err
		}

		perLine = append(perLine, required)
		plan.Lines = append(plan.Lines, pricedLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			HappyHour: happyHour,
		})
		plan.SubTotal = plan.SubTotal.Add(unitPrice.MulInt(int64(line.Quantity)))
		plan.HappyHour = plan.HappyHour || happyHour
	}

	plan.Required = MergeLeafRequirements(perLine)
	return plan, nil
}

// checkAvailability verifies every merged requirement against the stock
// actually read from the locked rows.
func checkAvailability(required map[uint]int, available map[uint]int) error {
	ids := sortedKeys(required)
	for _, id := range ids {
		have, ok := available[id]
		if !ok {
			return &NotFoundError{Entity: "item", ID: id}
		}
		if have < required[id] {
			return &InsufficientStockError{ItemID: id, Requested: required[id], Available: have}
		}
	}
	return nil
}

func sortedKeys(m map[uint]int) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CreateOrder prices the requested lines, expands recipes to leaf stock,
// and applies all decrements plus the order insert in one transaction.
// Either the full effect lands or none of it does. Leaf rows are locked in
// ascending id order so concurrent orders cannot deadlock; contention is
// retried a bounded number of times.
func (s *OrderService) CreateOrder(guestID, reservationID *uint, lines []OrderLine) (*models.Order, error) {
	window, err := s.Pricing.CurrentWindow()
	if err != nil {
		return nil, err
	}
	at := s.Now()

	for attempt := 1; attempt <= maxCreateOrderAttempts; attempt++ {
		order, err := s.tryCreateOrder(guestID, reservationID, lines, at, window)
		if err == nil {
			return order, nil
		}
		if !isLockConflict(err) {
			return nil, err
		}
	}
	return nil, &ConcurrentModificationError{Attempts: maxCreateOrderAttempts}
}

func (s *OrderService) tryCreateOrder(guestID, reservationID *uint, lines []OrderLine, at time.Time, window HappyHourWindow) (*models.Order, error) {
	var created models.Order

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
		if reservationID != nil {
			var reservation models.Reservation
			if err := tx.First(&reservation, *reservationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "reservation", ID: *reservationID}
				}
				return fmt.Errorf("failed to load reservation %d: %w", *reservationID, err)
			}
			if reservation.Status == models.ReservationCheckedOut {
				return &ValidationError{Field: "reservationId", Reason: "reservation already checked out"}
			}
		}

		snap, err := LoadCatalogSnapshot(tx)
		if err != nil {
			return err
		}
		plan, err := planOrder(snap, lines, at, window)
		if err != nil {
			return err
		}

		leafIDs := sortedKeys(plan.Required)

		// Lock the merged leaf rows in ascending id order, then re-check
		// stock from the locked rows: the snapshot read above is advisory,
		// this read is authoritative.
		var lockedRows []models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", leafIDs).
			Order("id").
			Find(&lockedRows).Error; err != nil {
			return fmt.Errorf("failed to lock leaf items: %w", err)
		}

		available := make(map[uint]int, len(lockedRows))
		for _, row := range lockedRows {
			available[row.ID] = row.QuantityInStock
		}
		if err := checkAvailability(plan.Required, available); err != nil {
			return err
		}

		for _, id := range leafIDs {
			if err := decrementStock(tx, id, plan.Required[id]); err != nil {
				return err
			}
		}

		order := models.Order{
			ReferenceCode: utils.NewReferenceCode("ORD"),
			GuestID:       guestID,
			ReservationID: reservationID,
			SubTotalUSD:   plan.SubTotal,
			HappyHour:     plan.HappyHour,
			Status:        models.PaymentUnpaid,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range plan.Lines {
			lineItem := models.OrderLineItem{
				OrderID:      order.ID,
				ItemID:       line.ItemID,
				Quantity:     line.Quantity,
				UnitPriceUSD: line.UnitPrice,
			}
			if err := tx.Create(&lineItem).Error; err != nil {
				return fmt.Errorf("failed to create order line: %w", err)
			}
		}

		created = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Lines").Preload("Lines.Item").First(&created, created.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order %d: %w", created.ID, err)
	}
	return &created, nil
}

// isLockConflict matches the MySQL deadlock (1213) and lock-wait-timeout
// (1205) errors that make a whole attempt worth retrying.
func isLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

func (s *OrderService) GetOrder(id uint) (models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Lines").Preload("Lines.Item").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, &NotFoundError{Entity: "order", ID: id}
		}
		return order, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return order, nil
}

func (s *OrderService) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("Lines").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// MarkPaid transitions an order UNPAID -> PAID. Payment capture itself is
// driven externally; the ledger only records the status change.
func (s *OrderService) MarkPaid(id uint) (models.Order, error) {
	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "order", ID: id}
			}
			return fmt.Errorf("failed to load order %d: %w", id, err)
		}
		if order.Status == models.PaymentPaid {
			return nil // idempotent
		}
		if err := tx.Model(&order).Update("status", models.PaymentPaid).Error; err != nil {
			return fmt.Errorf("failed to mark order %d paid: %w", id, err)
		}
		order.Status = models.PaymentPaid
		return nil
	})
	return order, err
}
