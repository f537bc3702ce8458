package services

import (
	"errors"
	"testing"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

type testEdge struct {
	parent, child uint
	qty           string
}

// testSnapshot builds an in-memory catalog: items keyed by id plus recipe
// edges.
func testSnapshot(items map[uint]models.Item, edges []testEdge) *CatalogSnapshot {
	snap := &CatalogSnapshot{
		Items: items,
		Edges: make(map[uint][]models.ItemIngredient),
	}
	for _, e := range edges {
		snap.Edges[e.parent] = append(snap.Edges[e.parent], models.ItemIngredient{
			ParentItemID: e.parent,
			ChildItemID:  e.child,
			Quantity:     money.MustParse(e.qty),
		})
	}
	return snap
}

func item(id uint, price string, stock int) models.Item {
	it := models.Item{PriceUSD: money.MustParse(price), QuantityInStock: stock}
	it.ID = id
	return it
}

func TestResolveCostLeafEqualsPrice(t *testing.T) {
	snap := testSnapshot(map[uint]models.Item{
		1: item(1, "6.00", 10),
		2: item(2, "4.50", 3),
	}, nil)

	for id, want := range map[uint]string{1: "6.00", 2: "4.50"} {
		cost, err := ResolveCost(snap, id)
		if err != nil {
			t.Fatalf("ResolveCost(%d): %v", id, err)
		}
		if !cost.Equal(money.MustParse(want)) {
			t.Errorf("ResolveCost(%d) = %s, want %s", id, cost, want)
		}
	}
}

func TestResolveCostComposite(t *testing.T) {
	// Negroni (10) = 1 gin (6) + 1 campari (5.50) + 1 vermouth (4)
	snap := testSnapshot(map[uint]models.Item{
		1:  item(1, "6", 0),
		2:  item(2, "5.50", 0),
		3:  item(3, "4", 0),
		10: item(10, "14", 0),
	}, []testEdge{
		{10, 1, "1"},
		{10, 2, "1"},
		{10, 3, "1"},
	})

	cost, err := ResolveCost(snap, 10)
	if err != nil {
		t.Fatalf("ResolveCost: %v", err)
	}
	if !cost.Equal(money.MustParse("15.50")) {
		t.Fatalf("composite cost = %s, want 15.50", cost)
	}
}

func TestResolveCostNestedFractional(t *testing.T) {
	// 20 = 0.5 x (10), 10 = 2 x (1 @ 3.10)
	snap := testSnapshot(map[uint]models.Item{
		1:  item(1, "3.10", 0),
		10: item(10, "0", 0),
		20: item(20, "0", 0),
	}, []testEdge{
		{10, 1, "2"},
		{20, 10, "0.5"},
	})

	cost, err := ResolveCost(snap, 20)
	if err != nil {
		t.Fatalf("ResolveCost: %v", err)
	}
	if !cost.Equal(money.MustParse("3.10")) {
		t.Fatalf("nested cost = %s, want 3.10", cost)
	}
}

func TestResolveCostUnknownItem(t *testing.T) {
	snap := testSnapshot(map[uint]models.Item{}, nil)
	_, err := ResolveCost(snap, 99)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.ID != 99 {
		t.Fatalf("expected NotFoundError for 99, got %v", err)
	}
}

func TestResolveCostDetectsCycle(t *testing.T) {
	// Corrupted data: 1 -> 2 -> 1. The write-time check prevents this; the
	// resolver still refuses to loop.
	snap := testSnapshot(map[uint]models.Item{
		1: item(1, "1", 0),
		2: item(2, "1", 0),
	}, []testEdge{
		{1, 2, "1"},
		{2, 1, "1"},
	})

	_, err := ResolveCost(snap, 1)
	var circular *CircularRecipeError
	if !errors.As(err, &circular) {
		t.Fatalf("expected CircularRecipeError, got %v", err)
	}
}

func TestResolveRequiredLeafStockLeaf(t *testing.T) {
	snap := testSnapshot(map[uint]models.Item{1: item(1, "3", 5)}, nil)

	required, err := ResolveRequiredLeafStock(snap, 1, 4)
	if err != nil {
		t.Fatalf("ResolveRequiredLeafStock: %v", err)
	}
	if len(required) != 1 || required[1] != 4 {
		t.Fatalf("required = %v, want {1:4}", required)
	}
}

func TestResolveRequiredLeafStockExpandsRecipe(t *testing.T) {
	// Two cocktails sharing gin: negroni (10) needs 1 gin, g&t (11) needs
	// 1.5 gin + 1 tonic.
	snap := testSnapshot(map[uint]models.Item{
		1:  item(1, "6", 100),  // gin
		2:  item(2, "5.5", 50), // campari
		3:  item(3, "3", 80),   // tonic
		10: item(10, "14", 0),  // negroni
		11: item(11, "11", 0),  // g&t
	}, []testEdge{
		{10, 1, "1"},
		{10, 2, "1"},
		{11, 1, "1.5"},
		{11, 3, "1"},
	})

	required, err := ResolveRequiredLeafStock(snap, 11, 3)
	if err != nil {
		t.Fatalf("ResolveRequiredLeafStock: %v", err)
	}
	// 3 x 1.5 = 4.5 gin shots -> 5 whole units; 3 tonic.
	if required[1] != 5 || required[3] != 3 || len(required) != 2 {
		t.Fatalf("required = %v, want {1:5, 3:3}", required)
	}
}

func TestResolveRequiredLeafStockRejectsZeroQuantity(t *testing.T) {
	snap := testSnapshot(map[uint]models.Item{1: item(1, "3", 5)}, nil)
	_, err := ResolveRequiredLeafStock(snap, 1, 0)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestResolveRequiredLeafStockDetectsCycle(t *testing.T) {
	snap := testSnapshot(map[uint]models.Item{
		1: item(1, "1", 0),
		2: item(2, "1", 0),
	}, []testEdge{
		{1, 2, "1"},
		{2, 1, "1"},
	})

	_, err := ResolveRequiredLeafStock(snap, 1, 1)
	var circular *CircularRecipeError
	if !errors.As(err, &circular) {
		t.Fatalf("expected CircularRecipeError, got %v", err)
	}
}

func TestMergeLeafRequirements(t *testing.T) {
	merged := MergeLeafRequirements([]map[uint]int{
		{1: 2, 3: 1},
		{1: 3},
		{2: 4},
	})
	want := map[uint]int{1: 5, 2: 4, 3: 1}
	if len(merged) != len(want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
	for id, n := range want {
		if merged[id] != n {
			t.Fatalf("merged[%d] = %d, want %d", id, merged[id], n)
		}
	}
}
