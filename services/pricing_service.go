package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

// HappyHourWindow is a [start, end) time-of-day interval, wrapping midnight
// when end <= start, applied to the listed item categories.
type HappyHourWindow struct {
	StartMinute int // minutes since midnight
	EndMinute   int
	Categories  map[models.ItemCategory]bool
}

// PricingService selects the effective unit price for an item at an instant.
// The clock is injected so the happy-hour window is testable.
type PricingService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db, Now: time.Now}
}

// CurrentWindow loads the configured happy-hour window. No settings row or
// no configured window means happy hour never applies.
func (p *PricingService) CurrentWindow() (HappyHourWindow, error) {
	var setting models.HotelSetting
	if err := p.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HappyHourWindow{}, nil
		}
		return HappyHourWindow{}, fmt.Errorf("failed to load hotel settings: %w", err)
	}
	return WindowFromSetting(setting)
}

// WindowFromSetting parses the persisted "HH:MM" bounds and category list.
func WindowFromSetting(setting models.HotelSetting) (HappyHourWindow, error) {
	if setting.HappyHourStart == "" || setting.HappyHourEnd == "" {
		return HappyHourWindow{}, nil
	}

	start, err := parseMinuteOfDay(setting.HappyHourStart)
	if err != nil {
		return HappyHourWindow{}, &ValidationError{Field: "happyHourStart", Reason: err.Error()}
	}
	end, err := parseMinuteOfDay(setting.HappyHourEnd)
	if err != nil {
		return HappyHourWindow{}, &ValidationError{Field: "happyHourEnd", Reason: err.Error()}
	}

	categories := make(map[models.ItemCategory]bool)
	if len(setting.HappyHourCategories) > 0 {
		var names []models.ItemCategory
		if err := json.Unmarshal(setting.HappyHourCategories, &names); err != nil {
			return HappyHourWindow{}, &ValidationError{Field: "happyHourCategories", Reason: err.Error()}
		}
		for _, c := range names {
			if !c.Valid() {
				return HappyHourWindow{}, &ValidationError{Field: "happyHourCategories", Reason: fmt.Sprintf("unknown category %q", c)}
			}
			categories[c] = true
		}
	}

	return HappyHourWindow{StartMinute: start, EndMinute: end, Categories: categories}, nil
}

func parseMinuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Active reports whether the time-of-day of at falls inside the window.
func (w HappyHourWindow) Active(at time.Time) bool {
	if w.StartMinute == w.EndMinute {
		return false // empty window, never active
	}
	minute := at.Hour()*60 + at.Minute()
	if w.StartMinute < w.EndMinute {
		return minute >= w.StartMinute && minute < w.EndMinute
	}
	// wraps midnight, e.g. 22:00-02:00
	return minute >= w.StartMinute || minute < w.EndMinute
}

// EffectiveUnitPrice returns the happy-hour price when the item carries one,
// its category is eligible and at falls inside the window; otherwise the
// standard price. The bool reports whether the discount applied. Pure.
func EffectiveUnitPrice(item models.Item, at time.Time, window HappyHourWindow) (money.Amount, bool, error) {
	if item.PriceUSD.IsNegative() {
		return money.Zero(), false, &InvariantViolation{Entity: "item", ID: item.ID, Reason: "negative priceUSD"}
	}
	if item.HappyHourPriceUSD != nil && window.Categories[item.Category] && window.Active(at) {
		return *item.HappyHourPriceUSD, true, nil
	}
	return item.PriceUSD, false, nil
}

// EffectiveUnitPrice on the service resolves the window and clock itself.
func (p *PricingService) EffectiveUnitPrice(item models.Item) (money.Amount, bool, error) {
	window, err := p.CurrentWindow()
	if err != nil {
		return money.Zero(), false, err
	}
	return EffectiveUnitPrice(item, p.Now(), window)
}
