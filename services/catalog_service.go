package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotelops-backend/models"
)

// CatalogService owns the sellable items and the ingredient-composition
// graph between them.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) GetItem(id uint) (models.Item, error) {
	var item models.Item
	if err := s.DB.Preload("Ingredients").Preload("Ingredients.ChildItem").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, &NotFoundError{Entity: "item", ID: id}
		}
		return item, fmt.Errorf("failed to load item %d: %w", id, err)
	}
	return item, nil
}

func (s *CatalogService) ListItems() ([]models.Item, error) {
	var items []models.Item
	if err := s.DB.Preload("Ingredients").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// UpsertItem creates or updates an item. Prices arrive already parsed into
// money amounts by the DTO layer; this validates the domain invariants.
func (s *CatalogService) UpsertItem(item *models.Item) error {
	if item.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if !item.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", item.Category)}
	}
	if item.PriceUSD.IsNegative() {
		return &ValidationError{Field: "priceUSD", Reason: "must not be negative"}
	}
	if item.HappyHourPriceUSD != nil && item.HappyHourPriceUSD.IsNegative() {
		return &ValidationError{Field: "happyHourPriceUSD", Reason: "must not be negative"}
	}
	if item.QuantityInStock < 0 {
		return &ValidationError{Field: "quantityInStock", Reason: "must not be negative"}
	}

	if item.ID != 0 {
		var existing models.Item
		if err := s.DB.First(&existing, item.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "item", ID: item.ID}
			}
			return fmt.Errorf("failed to load item %d: %w", item.ID, err)
		}
	}

	if err := s.DB.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

func (s *CatalogService) DeleteItem(id uint) error {
	res := s.DB.Delete(&models.Item{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "item", ID: id}
	}
	return nil
}

// AddIngredientEdge inserts a recipe edge parent -> child after verifying it
// would not close a cycle. Runs in a transaction so the edge either lands or
// the graph stays untouched.
func (s *CatalogService) AddIngredientEdge(parentID, childID uint, edge models.ItemIngredient) error {
	if parentID == childID {
		return &CircularRecipeError{ParentItemID: parentID, ChildItemID: childID}
	}
	if !edge.Quantity.IsPositive() {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint{parentID, childID} {
			var item models.Item
			if err := tx.First(&item, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "item", ID: id}
				}
				return fmt.Errorf("failed to load item %d: %w", id, err)
			}
		}

		adjacency, err := loadAdjacency(tx)
		if err != nil {
			return err
		}
		// A path child ~> parent means adding parent -> child closes a loop.
		if hasPath(adjacency, childID, parentID) {
			return &CircularRecipeError{ParentItemID: parentID, ChildItemID: childID}
		}

		var dup int64
		if err := tx.Model(&models.ItemIngredient{}).
			Where("parent_item_id = ? AND child_item_id = ?", parentID, childID).
			Count(&dup).Error; err != nil {
			return fmt.Errorf("failed to check existing edge: %w", err)
		}
		if dup > 0 {
			return &ValidationError{Field: "childItemId", Reason: "ingredient edge already exists"}
		}

		edge.ParentItemID = parentID
		edge.ChildItemID = childID
		if err := tx.Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to create ingredient edge: %w", err)
		}
		return nil
	})
}

func (s *CatalogService) RemoveIngredientEdge(parentID, childID uint) error {
	res := s.DB.Unscoped().
		Where("parent_item_id = ? AND child_item_id = ?", parentID, childID).
		Delete(&models.ItemIngredient{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove ingredient edge: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "ingredient edge", ID: parentID}
	}
	return nil
}

// DecrementStock atomically subtracts amount from an item's stock, failing
// if the result would go negative. The conditional UPDATE is the unit of
// atomicity the order ledger composes.
func (s *CatalogService) DecrementStock(id uint, amount int) error {
	return decrementStock(s.DB, id, amount)
}

func decrementStock(tx *gorm.DB, id uint, amount int) error {
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	res := tx.Model(&models.Item{}).
		Where("id = ? AND quantity_in_stock >= ?", id, amount).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Distinguish missing item from insufficient stock.
	var item models.Item
	if err := tx.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "item", ID: id}
		}
		return fmt.Errorf("failed to load item %d: %w", id, err)
	}
	return &InsufficientStockError{ItemID: id, Requested: amount, Available: item.QuantityInStock}
}

// AdjustStock applies a signed delta (restock or write-off). A negative
// delta that would drive stock below zero is rejected.
func (s *CatalogService) AdjustStock(id uint, delta int) (models.Item, error) {
	var item models.Item
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if delta < 0 {
			if err := decrementStock(tx, id, -delta); err != nil {
				return err
			}
		} else if delta > 0 {
			res := tx.Model(&models.Item{}).
				Where("id = ?", id).
				UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", delta))
			if res.Error != nil {
				return fmt.Errorf("failed to adjust stock for item %d: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return &NotFoundError{Entity: "item", ID: id}
			}
		}
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "item", ID: id}
			}
			return fmt.Errorf("failed to reload item %d: %w", id, err)
		}
		return nil
	})
	return item, err
}

func loadAdjacency(tx *gorm.DB) (map[uint][]uint, error) {
	var edges []models.ItemIngredient
	if err := tx.Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredient edges: %w", err)
	}
	adjacency := make(map[uint][]uint, len(edges))
	for _, e := range edges {
		adjacency[e.ParentItemID] = append(adjacency[e.ParentItemID], e.ChildItemID)
	}
	return adjacency, nil
}

// hasPath reports whether `to` is reachable from `from` over the directed
// ingredient adjacency, depth-first.
func hasPath(adjacency map[uint][]uint, from, to uint) bool {
	if from == to {
		return true
	}
	seen := map[uint]bool{from: true}
	stack := []uint{from}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adjacency[node] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
