package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelops-backend/money"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// parseIDParam reads a numeric :id style route param.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		circularErr   *services.CircularRecipeError
		stockErr      *services.InsufficientStockError
		concurrentErr *services.ConcurrentModificationError
		invariantErr  *services.InvariantViolation
	)

	switch {
	case errors.As(err, &validationErr) || errors.Is(err, money.ErrInvalidDecimal):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &circularErr):
		utils.JSONErrorDetail(c, http.StatusConflict, "circular recipe", gin.H{
			"parentItemId": circularErr.ParentItemID,
			"childItemId":  circularErr.ChildItemID,
		})
	case errors.As(err, &stockErr):
		utils.JSONErrorDetail(c, http.StatusConflict, "insufficient stock", gin.H{
			"itemId":    stockErr.ItemID,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.As(err, &concurrentErr):
		c.Header("Retry-After", "1")
		utils.JSONError(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &invariantErr):
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}
