package services

import (
	"errors"
	"testing"
	"time"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two nights", day(2024, 1, 1), day(2024, 1, 3), 2},
		{"one night", day(2024, 1, 1), day(2024, 1, 2), 1},
		{"fractional day rounds up", day(2024, 1, 1), time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC), 2},
		{"late checkout same boundary", time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Nights(tc.checkIn, tc.checkOut)
			if err != nil {
				t.Fatalf("Nights: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Nights = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNightsRejectsNonPositiveStay(t *testing.T) {
	var validation *ValidationError

	if _, err := Nights(day(2024, 1, 3), day(2024, 1, 1)); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for reversed dates, got %v", err)
	}
	if _, err := Nights(day(2024, 1, 1), day(2024, 1, 1)); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for zero-length stay, got %v", err)
	}
}

func TestComputeSubtotal(t *testing.T) {
	subtotal, err := ComputeSubtotal(money.MustParse("100"), day(2024, 1, 1), day(2024, 1, 3))
	if err != nil {
		t.Fatalf("ComputeSubtotal: %v", err)
	}
	if !subtotal.Equal(money.MustParse("200")) {
		t.Fatalf("subtotal = %s, want 200", subtotal)
	}
}

func TestComputeSubtotalExactDecimalRate(t *testing.T) {
	subtotal, err := ComputeSubtotal(money.MustParse("99.95"), day(2024, 3, 10), day(2024, 3, 17))
	if err != nil {
		t.Fatalf("ComputeSubtotal: %v", err)
	}
	if !subtotal.Equal(money.MustParse("699.65")) {
		t.Fatalf("subtotal = %s, want 699.65", subtotal)
	}
}

func TestValidTransition(t *testing.T) {
	allowed := []struct{ from, to models.ReservationStatus }{
		{models.ReservationConfirmed, models.ReservationCheckedIn},
		{models.ReservationCheckedIn, models.ReservationFinalBill},
		{models.ReservationFinalBill, models.ReservationCheckedOut},
	}
	for _, tc := range allowed {
		if !ValidTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	rejected := []struct{ from, to models.ReservationStatus }{
		// no skipping
		{models.ReservationConfirmed, models.ReservationCheckedOut},
		{models.ReservationConfirmed, models.ReservationFinalBill},
		{models.ReservationCheckedIn, models.ReservationCheckedOut},
		// no going backward
		{models.ReservationCheckedIn, models.ReservationConfirmed},
		{models.ReservationFinalBill, models.ReservationCheckedIn},
		{models.ReservationCheckedOut, models.ReservationFinalBill},
		// no self loop, nothing after checkout
		{models.ReservationConfirmed, models.ReservationConfirmed},
		{models.ReservationCheckedOut, models.ReservationCheckedOut},
	}
	for _, tc := range rejected {
		if ValidTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestParseStayDate(t *testing.T) {
	if _, err := parseStayDate("checkIn", "2024-01-01"); err != nil {
		t.Fatalf("date-only form rejected: %v", err)
	}
	if _, err := parseStayDate("checkIn", "2024-01-01T14:00:00Z"); err != nil {
		t.Fatalf("RFC3339 form rejected: %v", err)
	}

	var validation *ValidationError
	if _, err := parseStayDate("checkIn", "01/02/2024"); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
