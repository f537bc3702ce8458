package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type InvoiceController struct {
	Invoices *services.InvoiceService
}

func NewInvoiceController(svc *services.InvoiceService) *InvoiceController {
	return &InvoiceController{Invoices: svc}
}

// GET /api/invoices/:guestId
func (vc *InvoiceController) GetInvoice(c *gin.Context) {
	guestID, ok := parseIDParam(c, "guestId")
	if !ok {
		return
	}
	invoice, err := vc.Invoices.BuildInvoice(guestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}
