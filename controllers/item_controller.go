package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/models"
	"hotelops-backend/money"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type ItemController struct {
	Catalog  *services.CatalogService
	Resolver *services.RecipeResolver
}

func NewItemController(catalog *services.CatalogService, resolver *services.RecipeResolver) *ItemController {
	return &ItemController{Catalog: catalog, Resolver: resolver}
}

type itemPayload struct {
	Name              string              `json:"name"`
	Category          models.ItemCategory `json:"category"`
	PriceUSD          money.Amount        `json:"priceUSD"`
	HappyHourPriceUSD *money.Amount       `json:"happyHourPriceUSD"`
	QuantityInStock   int                 `json:"quantityInStock"`
	Unit              string              `json:"unit"`
}

type ingredientPayload struct {
	ChildItemID uint         `json:"childItemId" binding:"required"`
	Quantity    money.Amount `json:"quantity"`
	Unit        string       `json:"unit"`
}

type stockAdjustPayload struct {
	Delta int `json:"delta" binding:"required"`
}

// GET /api/items
func (ic *ItemController) ListItems(c *gin.Context) {
	items, err := ic.Catalog.ListItems()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// GET /api/items/:id — includes the resolver's component-derived cost as a
// reporting figure next to the authoritative stored price.
func (ic *ItemController) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := ic.Catalog.GetItem(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{"item": item}
	snap, err := ic.Resolver.Snapshot()
	if err == nil {
		if cost, costErr := services.ResolveCost(snap, id); costErr == nil {
			response["costUSD"] = cost
		} else {
			log.Printf("warning: cost resolution for item %d: %v", id, costErr)
		}
	}
	utils.JSONSuccess(c, http.StatusOK, response)
}

// POST /api/items
func (ic *ItemController) CreateItem(c *gin.Context) {
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.Item{
		Name:              payload.Name,
		Category:          payload.Category,
		PriceUSD:          payload.PriceUSD,
		HappyHourPriceUSD: payload.HappyHourPriceUSD,
		QuantityInStock:   payload.QuantityInStock,
		Unit:              payload.Unit,
	}
	if err := ic.Catalog.UpsertItem(&item); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

// PUT /api/items/:id
func (ic *ItemController) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := ic.Catalog.GetItem(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	item.Name = payload.Name
	item.Category = payload.Category
	item.PriceUSD = payload.PriceUSD
	item.HappyHourPriceUSD = payload.HappyHourPriceUSD
	item.QuantityInStock = payload.QuantityInStock
	item.Unit = payload.Unit
	item.Ingredients = nil // edges are managed through their own endpoints

	if err := ic.Catalog.UpsertItem(&item); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// DELETE /api/items/:id
func (ic *ItemController) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Catalog.DeleteItem(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// POST /api/items/:id/ingredients
func (ic *ItemController) AddIngredient(c *gin.Context) {
	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ingredientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	edge := models.ItemIngredient{Quantity: payload.Quantity, Unit: payload.Unit}
	if err := ic.Catalog.AddIngredientEdge(parentID, payload.ChildItemID, edge); err != nil {
		respondServiceError(c, err)
		return
	}

	item, err := ic.Catalog.GetItem(parentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

// DELETE /api/items/:id/ingredients/:childId
func (ic *ItemController) RemoveIngredient(c *gin.Context) {
	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	childID, ok := parseIDParam(c, "childId")
	if !ok {
		return
	}
	if err := ic.Catalog.RemoveIngredientEdge(parentID, childID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"removed": childID})
}

// POST /api/items/:id/stock
func (ic *ItemController) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload stockAdjustPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	item, err := ic.Catalog.AdjustStock(id, payload.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}
