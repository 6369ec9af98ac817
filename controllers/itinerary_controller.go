package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

type itineraryRequest struct {
	ExperienceID uint   `json:"experience_id" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Day          int    `json:"day"`
	Description  string `json:"description"`
}

func parseItineraryDates(req itineraryRequest) (*time.Time, *time.Time, string) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, nil, "start_date must be YYYY-MM-DD"
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, nil, "end_date must be YYYY-MM-DD"
	}
	if end.Before(start) {
		return nil, nil, "end_date must not be before start_date"
	}
	return &start, &end, ""
}

// StoreItinerary adds a day-plan entry for the visitor.
func StoreItinerary(c *gin.Context) {
	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "experience_id, start_date and end_date are required")
		return
	}

	start, end, msg := parseItineraryDates(req)
	if msg != "" {
		utils.JSONError(c, http.StatusBadRequest, msg)
		return
	}

	var experience models.Experience
	if err := config.DB.First(&experience, req.ExperienceID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "experience not found")
		return
	}

	itinerary := models.Itinerary{
		VisitorID:    middleware.VisitorID(c),
		ExperienceID: req.ExperienceID,
		StartDate:    start,
		EndDate:      end,
		Day:          req.Day,
		Description:  req.Description,
	}

	if err := config.DB.Create(&itinerary).Error; err != nil {
		utils.RespondServiceError(c, err, "itinerary create")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, itinerary)
}

// UpdateItinerary edits the visitor's own entry.
func UpdateItinerary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "experience_id, start_date and end_date are required")
		return
	}

	start, end, msg := parseItineraryDates(req)
	if msg != "" {
		utils.JSONError(c, http.StatusBadRequest, msg)
		return
	}

	var itinerary models.Itinerary
	if err := config.DB.
		Where("id = ? AND visitor_id = ?", uint(id), middleware.VisitorID(c)).
		First(&itinerary).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "itinerary not found")
		return
	}

	itinerary.ExperienceID = req.ExperienceID
	itinerary.StartDate = start
	itinerary.EndDate = end
	itinerary.Day = req.Day
	itinerary.Description = req.Description

	if err := config.DB.Save(&itinerary).Error; err != nil {
		utils.RespondServiceError(c, err, "itinerary update")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, itinerary)
}

// DeleteItinerary removes the visitor's own entry.
func DeleteItinerary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	result := config.DB.
		Where("id = ? AND visitor_id = ?", uint(id), middleware.VisitorID(c)).
		Delete(&models.Itinerary{})
	if result.Error != nil {
		utils.RespondServiceError(c, result.Error, "itinerary delete")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "itinerary not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "itinerary deleted"})
}

// MyItineraries lists the visitor's entries ordered by start date.
func MyItineraries(c *gin.Context) {
	var itineraries []models.Itinerary
	if err := config.DB.Preload("Experience").
		Where("visitor_id = ?", middleware.VisitorID(c)).
		Order("start_date, day").
		Find(&itineraries).Error; err != nil {
		utils.RespondServiceError(c, err, "itinerary list")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, itineraries)
}
