package services

import (
	"errors"
	"testing"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

// barSnapshot: gin/campari/tonic leaves, negroni and g&t cocktails, plus a
// plain lager with a happy-hour price.
func barSnapshot() *CatalogSnapshot {
	lager := item(5, "7", 240)
	lager.Category = models.CategoryBeer
	happy := money.MustParse("5")
	lager.HappyHourPriceUSD = &happy

	negroni := item(10, "14", 0)
	negroni.Category = models.CategoryCocktails
	gt := item(11, "11", 0)
	gt.Category = models.CategoryCocktails

	return testSnapshot(map[uint]models.Item{
		1:  item(1, "6", 100),
		2:  item(2, "5.5", 50),
		3:  item(3, "3", 80),
		5:  lager,
		10: negroni,
		11: gt,
	}, []testEdge{
		{10, 1, "1"},
		{10, 2, "1"},
		{11, 1, "1.5"},
		{11, 3, "1"},
	})
}

func TestPlanOrderSubtotalAndMergedLeaves(t *testing.T) {
	snap := barSnapshot()

	// 2 negroni + 1 g&t outside happy hour.
	plan, err := planOrder(snap, []OrderLine{
		{ItemID: 10, Quantity: 2},
		{ItemID: 11, Quantity: 1},
	}, at(19, 0), barWindow())
	if err != nil {
		t.Fatalf("planOrder: %v", err)
	}

	if !plan.SubTotal.Equal(money.MustParse("39")) {
		t.Fatalf("subtotal = %s, want 39", plan.SubTotal)
	}
	if plan.HappyHour {
		t.Fatal("happy hour flag set outside the window")
	}

	// Gin shared across both cocktails: 2 shots from the negronis plus
	// ceil(1.5) = 2 from the g&t line.
	want := map[uint]int{1: 4, 2: 2, 3: 1}
	if len(plan.Required) != len(want) {
		t.Fatalf("required = %v, want %v", plan.Required, want)
	}
	for id, n := range want {
		if plan.Required[id] != n {
			t.Fatalf("required[%d] = %d, want %d", id, plan.Required[id], n)
		}
	}
}

func TestPlanOrderUsesHappyHourPrices(t *testing.T) {
	snap := barSnapshot()

	plan, err := planOrder(snap, []OrderLine{
		{ItemID: 5, Quantity: 2},  // lager 5 each during happy hour
		{ItemID: 10, Quantity: 1}, // negroni has no happy price, stays 14
	}, at(17, 0), barWindow())
	if err != nil {
		t.Fatalf("planOrder: %v", err)
	}

	if !plan.SubTotal.Equal(money.MustParse("24")) {
		t.Fatalf("subtotal = %s, want 24", plan.SubTotal)
	}
	if !plan.HappyHour {
		t.Fatal("happy hour flag not recorded")
	}
	if !plan.Lines[0].UnitPrice.Equal(money.MustParse("5")) {
		t.Fatalf("lager unit price = %s, want 5", plan.Lines[0].UnitPrice)
	}
	if !plan.Lines[1].UnitPrice.Equal(money.MustParse("14")) {
		t.Fatalf("negroni unit price = %s, want 14", plan.Lines[1].UnitPrice)
	}
}

func TestPlanOrderValidation(t *testing.T) {
	snap := barSnapshot()
	window := barWindow()

	var validation *ValidationError
	if _, err := planOrder(snap, nil, at(12, 0), window); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for empty lines, got %v", err)
	}
	if _, err := planOrder(snap, []OrderLine{{ItemID: 5, Quantity: 0}}, at(12, 0), window); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}

	var notFound *NotFoundError
	if _, err := planOrder(snap, []OrderLine{{ItemID: 999, Quantity: 1}}, at(12, 0), window); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown item, got %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	required := map[uint]int{1: 4, 3: 1}

	if err := checkAvailability(required, map[uint]int{1: 4, 3: 10}); err != nil {
		t.Fatalf("expected satisfiable requirements, got %v", err)
	}

	var stockErr *InsufficientStockError
	err := checkAvailability(required, map[uint]int{1: 3, 3: 10})
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ItemID != 1 || stockErr.Requested != 4 || stockErr.Available != 3 {
		t.Fatalf("error detail = %+v", stockErr)
	}

	var notFound *NotFoundError
	if err := checkAvailability(required, map[uint]int{1: 4}); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for missing row, got %v", err)
	}
}

func TestSortedKeys(t *testing.T) {
	ids := sortedKeys(map[uint]int{9: 1, 2: 1, 5: 1})
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 5 || ids[2] != 9 {
		t.Fatalf("sortedKeys = %v", ids)
	}
}
