package models

import (
	"gorm.io/gorm"

	"hotelops-backend/money"
)

// ItemIngredient is a directed "composed-of" edge from a parent item to a
// component item. Fractional quantities are allowed (e.g. 0.05 litre of gin
// per cocktail). The edge set must stay acyclic; the catalog service checks
// this before every insert.
type ItemIngredient struct {
	gorm.Model

	ParentItemID uint `gorm:"index;column:parent_item_id;uniqueIndex:idx_parent_child" json:"parent_item_id"`
	ChildItemID  uint `gorm:"index;column:child_item_id;uniqueIndex:idx_parent_child" json:"child_item_id"`

	Quantity money.Amount `json:"quantity" gorm:"type:decimal(20,6);not null"`
	Unit     string       `json:"unit,omitempty" gorm:"size:32"`

	ChildItem Item `gorm:"foreignKey:ChildItemID;references:ID" json:"childItem,omitempty"`
}
