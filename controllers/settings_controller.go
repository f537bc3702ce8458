package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

type happyHourPayload struct {
	Start      string                `json:"start"`
	End        string                `json:"end"`
	Categories []models.ItemCategory `json:"categories"`
}

// GET /api/settings/happy-hour
func (sc *SettingsController) GetHappyHour(c *gin.Context) {
	var setting models.HotelSetting
	if err := sc.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONSuccess(c, http.StatusOK, models.HotelSetting{})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

// PUT /api/settings/happy-hour
func (sc *SettingsController) UpdateHappyHour(c *gin.Context) {
	var payload happyHourPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	for _, cat := range payload.Categories {
		if !cat.Valid() {
			utils.JSONError(c, http.StatusBadRequest, "unknown category "+string(cat))
			return
		}
	}
	categoriesJSON, err := json.Marshal(payload.Categories)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var setting models.HotelSetting
	err = sc.DB.First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	setting.HappyHourStart = payload.Start
	setting.HappyHourEnd = payload.End
	setting.HappyHourCategories = datatypes.JSON(categoriesJSON)

	// Reject bounds the pricing engine could not parse.
	if _, werr := services.WindowFromSetting(setting); werr != nil {
		respondServiceError(c, werr)
		return
	}

	if err := sc.DB.Save(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
