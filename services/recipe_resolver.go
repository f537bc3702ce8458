package services

import (
	"fmt"

	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/money"
)

// CatalogSnapshot is one consistent read of the catalog: every item plus the
// ingredient adjacency keyed by parent item id. Resolution never touches the
// database after the snapshot is taken, so a createOrder call sees no torn
// reads. Snapshots are per call; stock mutates between calls, so they are
// never cached across them.
type CatalogSnapshot struct {
	Items map[uint]models.Item
	Edges map[uint][]models.ItemIngredient
}

// LoadCatalogSnapshot reads the whole catalog inside the caller's scope
// (plain DB or an open transaction).
func LoadCatalogSnapshot(tx *gorm.DB) (*CatalogSnapshot, error) {
	var items []models.Item
	if err := tx.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to snapshot items: %w", err)
	}
	var edges []models.ItemIngredient
	if err := tx.Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to snapshot ingredient edges: %w", err)
	}

	snap := &CatalogSnapshot{
		Items: make(map[uint]models.Item, len(items)),
		Edges: make(map[uint][]models.ItemIngredient, len(edges)),
	}
	for _, it := range items {
		snap.Items[it.ID] = it
	}
	for _, e := range edges {
		snap.Edges[e.ParentItemID] = append(snap.Edges[e.ParentItemID], e)
	}
	return snap, nil
}

// RecipeResolver resolves derived cost and leaf-stock figures over the
// ingredient graph.
type RecipeResolver struct {
	DB *gorm.DB
}

func NewRecipeResolver(db *gorm.DB) *RecipeResolver {
	return &RecipeResolver{DB: db}
}

func (r *RecipeResolver) Snapshot() (*CatalogSnapshot, error) {
	return LoadCatalogSnapshot(r.DB)
}

// ResolveCost returns an item's component-derived cost: its own price for a
// leaf, otherwise the sum of child cost x edge quantity. This is a reporting
// figure; the stored price stays authoritative for billing.
func ResolveCost(snap *CatalogSnapshot, itemID uint) (money.Amount, error) {
	memo := make(map[uint]money.Amount)
	visiting := make(map[uint]bool)
	return resolveCost(snap, itemID, memo, visiting)
}

func resolveCost(snap *CatalogSnapshot, itemID uint, memo map[uint]money.Amount, visiting map[uint]bool) (money.Amount, error) {
	if cached, ok := memo[itemID]; ok {
		return cached, nil
	}
	if visiting[itemID] {
		return money.Zero(), &CircularRecipeError{ParentItemID: itemID, ChildItemID: itemID}
	}

	item, ok := snap.Items[itemID]
	if !ok {
		return money.Zero(), &NotFoundError{Entity: "item", ID: itemID}
	}

	edges := snap.Edges[itemID]
	if len(edges) == 0 {
		memo[itemID] = item.PriceUSD
		return item.PriceUSD, nil
	}

	visiting[itemID] = true
	total := money.Zero()
	for _, edge := range edges {
		if visiting[edge.ChildItemID] {
			return money.Zero(), &CircularRecipeError{ParentItemID: itemID, ChildItemID: edge.ChildItemID}
		}
		childCost, err := resolveCost(snap, edge.ChildItemID, memo, visiting)
		if err != nil {
			return money.Zero(), err
		}
		total = total.Add(childCost.MulQuantity(edge.Quantity))
	}
	delete(visiting, itemID)

	memo[itemID] = total
	return total, nil
}

// ResolveRequiredLeafStock expands a requested quantity of a (possibly
// composite) item into the map of leaf item id -> whole stock units needed.
// Fractional requirements accumulated down the tree are summed exactly and
// rounded up once per leaf at the end, since stock is held in whole units.
func ResolveRequiredLeafStock(snap *CatalogSnapshot, itemID uint, quantity int) (map[uint]int, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	exact := make(map[uint]money.Amount)
	visiting := make(map[uint]bool)
	if err := expandLeaves(snap, itemID, money.MustParse(quantity), exact, visiting); err != nil {
		return nil, err
	}

	required := make(map[uint]int, len(exact))
	for leafID, amount := range exact {
		required[leafID] = int(amount.CeilInt64())
	}
	return required, nil
}

func expandLeaves(snap *CatalogSnapshot, itemID uint, factor money.Amount, out map[uint]money.Amount, visiting map[uint]bool) error {
	if visiting[itemID] {
		return &CircularRecipeError{ParentItemID: itemID, ChildItemID: itemID}
	}

	item, ok := snap.Items[itemID]
	if !ok {
		return &NotFoundError{Entity: "item", ID: itemID}
	}

	edges := snap.Edges[item.ID]
	if len(edges) == 0 {
		out[item.ID] = out[item.ID].Add(factor)
		return nil
	}

	visiting[item.ID] = true
	for _, edge := range edges {
		if err := expandLeaves(snap, edge.ChildItemID, factor.MulQuantity(edge.Quantity), out, visiting); err != nil {
			return err
		}
	}
	delete(visiting, item.ID)
	return nil
}

// MergeLeafRequirements folds per-line leaf requirements into one map so
// ingredients shared across order lines are checked and decremented exactly
// once.
func MergeLeafRequirements(perLine []map[uint]int) map[uint]int {
	merged := make(map[uint]int)
	for _, m := range perLine {
		for id, n := range m {
			merged[id] += n
		}
	}
	return merged
}
