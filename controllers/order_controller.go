package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Orders: svc}
}

// createOrderPayload deliberately has no happy-hour field: the flag is
// server-computed from the pricing window, never client-asserted.
type createOrderPayload struct {
	GuestID       *uint                `json:"guestId"`
	ReservationID *uint                `json:"reservationId"`
	Lines         []services.OrderLine `json:"lines" binding:"required"`
}

// POST /api/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := oc.Orders.CreateOrder(payload.GuestID, payload.ReservationID, payload.Lines)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

// GET /api/orders
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.Orders.ListOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}

// GET /api/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.GetOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

// POST /api/orders/:id/pay
func (oc *OrderController) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.MarkPaid(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}
