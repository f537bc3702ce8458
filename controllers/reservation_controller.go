package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/models"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: svc}
}

type createReservationPayload struct {
	GuestID  *uint  `json:"guestId"`
	RoomID   *uint  `json:"roomId"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
}

type updateStayPayload struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	RoomID   *uint  `json:"roomId"`
}

type transitionPayload struct {
	Status models.ReservationStatus `json:"status" binding:"required"`
}

// POST /api/reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var payload createReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	reservation, err := rc.Reservations.CreateReservation(payload.GuestID, payload.RoomID, payload.CheckIn, payload.CheckOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// GET /api/reservations
func (rc *ReservationController) ListReservations(c *gin.Context) {
	list, err := rc.Reservations.ListReservations()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/reservations/:id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Reservations.GetReservation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// PATCH /api/reservations/:id
func (rc *ReservationController) UpdateStay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload updateStayPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	reservation, err := rc.Reservations.UpdateStay(id, payload.CheckIn, payload.CheckOut, payload.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// POST /api/reservations/:id/transition
func (rc *ReservationController) Transition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload transitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	reservation, err := rc.Reservations.Transition(id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// POST /api/reservations/:id/pay
func (rc *ReservationController) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Reservations.MarkPaid(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
