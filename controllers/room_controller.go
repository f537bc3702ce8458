package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/money"
	"hotelops-backend/utils"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

type roomPayload struct {
	RoomNumber   string            `json:"roomNumber"`
	Type         models.RoomType   `json:"type"`
	Status       models.RoomStatus `json:"status"`
	Capacity     int               `json:"capacity"`
	DailyRateUSD money.Amount      `json:"dailyRateUSD"`
}

// GET /api/rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := rc.DB.Order("room_number").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payload.RoomNumber = strings.TrimSpace(payload.RoomNumber)
	if payload.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}
	if !payload.Type.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type")
		return
	}
	if payload.Status == "" {
		payload.Status = models.RoomVacant
	}
	if !payload.Status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid room status")
		return
	}
	if payload.DailyRateUSD.IsNegative() {
		utils.JSONError(c, http.StatusBadRequest, "dailyRateUSD must not be negative")
		return
	}

	room := models.Room{
		RoomNumber:   payload.RoomNumber,
		Type:         payload.Type,
		Status:       payload.Status,
		Capacity:     payload.Capacity,
		DailyRateUSD: payload.DailyRateUSD,
	}
	if err := rc.DB.Create(&room).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict, "room number already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PUT /api/rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Type != "" && !payload.Type.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type")
		return
	}
	if payload.Status != "" && !payload.Status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid room status")
		return
	}

	if payload.RoomNumber != "" {
		room.RoomNumber = strings.TrimSpace(payload.RoomNumber)
	}
	if payload.Type != "" {
		room.Type = payload.Type
	}
	if payload.Status != "" {
		room.Status = payload.Status
	}
	if payload.Capacity > 0 {
		room.Capacity = payload.Capacity
	}
	if !payload.DailyRateUSD.IsZero() {
		if payload.DailyRateUSD.IsNegative() {
			utils.JSONError(c, http.StatusBadRequest, "dailyRateUSD must not be negative")
			return
		}
		room.DailyRateUSD = payload.DailyRateUSD
	}

	if err := rc.DB.Save(&room).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	res := rc.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
