package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/utils"
)

type GuestController struct {
	DB *gorm.DB
}

func NewGuestController(db *gorm.DB) *GuestController {
	return &GuestController{DB: db}
}

type guestPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// GET /api/guests
func (gc *GuestController) GetGuests(c *gin.Context) {
	var guests []models.Guest
	if err := gc.DB.Order("full_name").Find(&guests).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GET /api/guests/:id
func (gc *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var guest models.Guest
	if err := gc.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "guest not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// POST /api/guests
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var payload guestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	payload.FullName = strings.TrimSpace(payload.FullName)
	if payload.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "fullName is required")
		return
	}

	guest := models.Guest{FullName: payload.FullName, Email: payload.Email, Phone: payload.Phone}
	if err := gc.DB.Create(&guest).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

// PUT /api/guests/:id
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var guest models.Guest
	if err := gc.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "guest not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var payload guestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if name := strings.TrimSpace(payload.FullName); name != "" {
		guest.FullName = name
	}
	if payload.Email != "" {
		guest.Email = payload.Email
	}
	if payload.Phone != "" {
		guest.Phone = payload.Phone
	}

	if err := gc.DB.Save(&guest).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// DELETE /api/guests/:id
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	res := gc.DB.Delete(&models.Guest{}, id)
	if res.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "guest not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
