package models

import (
	"gorm.io/gorm"

	"hotelops-backend/money"
)

// ItemCategory is the sellable-item category enum.
type ItemCategory string

const (
	CategorySoftDrinks     ItemCategory = "soft_drinks"
	CategoryBeer           ItemCategory = "beer"
	CategoryWine           ItemCategory = "wine"
	CategorySpirits        ItemCategory = "spirits"
	CategoryPremiumSpirits ItemCategory = "premium_spirits"
	CategoryCocktails      ItemCategory = "cocktails"
	CategorySnacks         ItemCategory = "snacks"
	CategoryFood           ItemCategory = "food"
	CategoryEntertainment  ItemCategory = "entertainment"
	CategoryIngredient     ItemCategory = "ingredient"
)

var itemCategories = map[ItemCategory]bool{
	CategorySoftDrinks:     true,
	CategoryBeer:           true,
	CategoryWine:           true,
	CategorySpirits:        true,
	CategoryPremiumSpirits: true,
	CategoryCocktails:      true,
	CategorySnacks:         true,
	CategoryFood:           true,
	CategoryEntertainment:  true,
	CategoryIngredient:     true,
}

func (c ItemCategory) Valid() bool { return itemCategories[c] }

// Item is a sellable or component good. Items with ingredient edges are
// composite (recipe) goods; items without are the leaf goods that actually
// hold stock.
type Item struct {
	gorm.Model

	Name     string       `json:"name" gorm:"size:255;not null"`
	Category ItemCategory `json:"category" gorm:"size:32;index;not null"`

	PriceUSD          money.Amount  `json:"priceUSD" gorm:"column:price_usd;type:decimal(20,6);not null"`
	HappyHourPriceUSD *money.Amount `json:"happyHourPriceUSD,omitempty" gorm:"column:happy_hour_price_usd;type:decimal(20,6)"`

	QuantityInStock int    `json:"quantityInStock" gorm:"column:quantity_in_stock;not null;default:0"`
	Unit            string `json:"unit,omitempty" gorm:"size:32"`

	Ingredients []ItemIngredient `json:"ingredients,omitempty" gorm:"foreignKey:ParentItemID"`
}
