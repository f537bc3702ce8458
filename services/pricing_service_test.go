package services

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

func barWindow() HappyHourWindow {
	return HappyHourWindow{
		StartMinute: 16 * 60,
		EndMinute:   18 * 60,
		Categories: map[models.ItemCategory]bool{
			models.CategoryBeer:      true,
			models.CategoryCocktails: true,
		},
	}
}

func discountedItem(category models.ItemCategory) models.Item {
	happy := money.MustParse("6")
	return models.Item{
		Category:          category,
		PriceUSD:          money.MustParse("10"),
		HappyHourPriceUSD: &happy,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestEffectiveUnitPrice(t *testing.T) {
	cases := []struct {
		name      string
		item      models.Item
		at        time.Time
		wantPrice string
		wantHappy bool
	}{
		{"inside window", discountedItem(models.CategoryBeer), at(17, 0), "6", true},
		{"outside window", discountedItem(models.CategoryBeer), at(19, 0), "10", false},
		{"start boundary is inside", discountedItem(models.CategoryBeer), at(16, 0), "6", true},
		{"end boundary is outside", discountedItem(models.CategoryBeer), at(18, 0), "10", false},
		{"category not eligible", discountedItem(models.CategoryFood), at(17, 0), "10", false},
		{
			"no happy-hour price configured",
			models.Item{Category: models.CategoryBeer, PriceUSD: money.MustParse("10")},
			at(17, 0), "10", false,
		},
	}

	window := barWindow()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, happy, err := EffectiveUnitPrice(tc.item, tc.at, window)
			if err != nil {
				t.Fatalf("EffectiveUnitPrice: %v", err)
			}
			if !price.Equal(money.MustParse(tc.wantPrice)) {
				t.Errorf("price = %s, want %s", price, tc.wantPrice)
			}
			if happy != tc.wantHappy {
				t.Errorf("happy = %v, want %v", happy, tc.wantHappy)
			}
		})
	}
}

func TestWindowWrapsMidnight(t *testing.T) {
	window := HappyHourWindow{
		StartMinute: 22 * 60,
		EndMinute:   2 * 60,
		Categories:  map[models.ItemCategory]bool{models.CategoryBeer: true},
	}

	cases := []struct {
		at     time.Time
		active bool
	}{
		{at(23, 30), true},
		{at(1, 59), true},
		{at(22, 0), true},
		{at(2, 0), false},
		{at(12, 0), false},
	}
	for _, tc := range cases {
		if got := window.Active(tc.at); got != tc.active {
			t.Errorf("Active(%s) = %v, want %v", tc.at.Format("15:04"), got, tc.active)
		}
	}
}

func TestEmptyWindowNeverActive(t *testing.T) {
	window := HappyHourWindow{StartMinute: 960, EndMinute: 960}
	if window.Active(at(16, 0)) {
		t.Fatal("zero-length window must never be active")
	}
}

func TestEffectiveUnitPriceRejectsNegativePrice(t *testing.T) {
	it := models.Item{Category: models.CategoryBeer, PriceUSD: money.MustParse("-1")}
	_, _, err := EffectiveUnitPrice(it, at(12, 0), barWindow())
	if _, ok := err.(*InvariantViolation); !ok {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestWindowFromSetting(t *testing.T) {
	setting := models.HotelSetting{
		HappyHourStart:      "16:00",
		HappyHourEnd:        "18:00",
		HappyHourCategories: datatypes.JSON(`["beer","cocktails"]`),
	}
	window, err := WindowFromSetting(setting)
	if err != nil {
		t.Fatalf("WindowFromSetting: %v", err)
	}
	if window.StartMinute != 960 || window.EndMinute != 1080 {
		t.Fatalf("window = %+v", window)
	}
	if !window.Categories[models.CategoryBeer] || !window.Categories[models.CategoryCocktails] {
		t.Fatalf("categories = %v", window.Categories)
	}

	setting.HappyHourStart = "25:99"
	if _, err := WindowFromSetting(setting); err == nil {
		t.Fatal("expected error for malformed start time")
	}

	setting.HappyHourStart = "16:00"
	setting.HappyHourCategories = datatypes.JSON(`["beer","margaritas"]`)
	if _, err := WindowFromSetting(setting); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestWindowFromSettingUnconfigured(t *testing.T) {
	window, err := WindowFromSetting(models.HotelSetting{})
	if err != nil {
		t.Fatalf("WindowFromSetting: %v", err)
	}
	if window.Active(at(17, 0)) {
		t.Fatal("unconfigured window must never be active")
	}
}
