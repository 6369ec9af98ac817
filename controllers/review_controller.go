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

// ListReviews is the admin moderation table: filter by rating or experience,
// search comments, sort, and get the star breakdown alongside the page.
func ListReviews(c *gin.Context) {
	pagination := utils.GetPagination(c)

	query := config.DB.Model(&models.Review{}).
		Preload("Visitor").Preload("Visitor.User").
		Preload("Experience")

	if v := c.Query("rating"); v != "" {
		if rating, err := strconv.Atoi(v); err == nil {
			query = query.Where("rating = ?", rating)
		}
	}
	if v := c.Query("experience_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			query = query.Where("experience_id = ?", id)
		}
	}
	if v := c.Query("search"); v != "" {
		query = query.Where("comment LIKE ?", "%"+v+"%")
	}

	switch c.DefaultQuery("sort", "newest") {
	case "oldest":
		query = query.Order("added_at ASC")
	case "highest":
		query = query.Order("rating DESC, added_at DESC")
	case "lowest":
		query = query.Order("rating ASC, added_at DESC")
	default:
		query = query.Order("added_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondServiceError(c, err, "review count")
		return
	}

	var reviews []models.Review
	if err := query.Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&reviews).Error; err != nil {
		utils.RespondServiceError(c, err, "review list")
		return
	}

	// Star breakdown over the whole table, not just the page.
	var starRows []struct {
		Rating int
		Count  int64
	}
	if err := config.DB.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&starRows).Error; err != nil {
		utils.RespondServiceError(c, err, "review stars")
		return
	}
	stars := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum, count int64
	for _, r := range starRows {
		if r.Rating >= 1 && r.Rating <= 5 {
			stars[r.Rating] = r.Count
		}
		sum += int64(r.Rating) * r.Count
		count += r.Count
	}
	average := 0.0
	if count > 0 {
		average = float64(sum) / float64(count)
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"reviews":        reviews,
		"total":          total,
		"page":           pagination.Page,
		"limit":          pagination.Limit,
		"average_rating": average,
		"star_counts":    stars,
	})
}

// ReviewDetails returns one review with its visitor, experience and booking.
func ReviewDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid review id")
		return
	}

	var review models.Review
	if err := config.DB.
		Preload("Visitor").Preload("Visitor.User").
		Preload("Experience").
		Preload("Booking").
		First(&review, uint(id)).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "review not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, review)
}

// DeleteReview removes one review (admin moderation).
func DeleteReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid review id")
		return
	}

	result := config.DB.Delete(&models.Review{}, uint(id))
	if result.Error != nil {
		utils.RespondServiceError(c, result.Error, "review delete")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "review not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "review deleted"})
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BulkDeleteReviews removes a batch of reviews in one statement.
func BulkDeleteReviews(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "ids is required and must not be empty")
		return
	}

	result := config.DB.Where("id IN ?", req.IDs).Delete(&models.Review{})
	if result.Error != nil {
		utils.RespondServiceError(c, result.Error, "review bulk delete")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": result.RowsAffected})
}

// ReviewsByExperience lists an experience's reviews publicly, newest first.
func ReviewsByExperience(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}

	var reviews []models.Review
	if err := config.DB.
		Preload("Visitor").Preload("Visitor.User").
		Where("experience_id = ?", uint(id)).
		Order("added_at DESC").
		Find(&reviews).Error; err != nil {
		utils.RespondServiceError(c, err, "reviews by experience")
		return
	}

	var average float64
	if err := config.DB.Model(&models.Review{}).
		Where("experience_id = ?", uint(id)).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&average).Error; err != nil {
		utils.RespondServiceError(c, err, "reviews average")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": average,
	})
}

type createReviewRequest struct {
	ExperienceID uint   `json:"experience_id" binding:"required"`
	BookingID    *uint  `json:"booking_id"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=2000"`
}

// CreateReview lets a visitor rate an experience.
func CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "experience_id and rating (1-5) are required")
		return
	}

	visitorID := middleware.VisitorID(c)

	var experience models.Experience
	if err := config.DB.First(&experience, req.ExperienceID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "experience not found")
		return
	}

	if req.BookingID != nil {
		var booking models.Booking
		if err := config.DB.
			Where("id = ? AND visitor_id = ?", *req.BookingID, visitorID).
			First(&booking).Error; err != nil {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
	}

	now := time.Now()
	review := models.Review{
		VisitorID:    visitorID,
		ExperienceID: req.ExperienceID,
		BookingID:    req.BookingID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		ReviewTime:   &now,
	}

	if err := config.DB.Create(&review).Error; err != nil {
		utils.RespondServiceError(c, err, "review create")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, review)
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// UpdateReview edits the visitor's own review.
func UpdateReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid review id")
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "rating (1-5) is required")
		return
	}

	var review models.Review
	if err := config.DB.
		Where("id = ? AND visitor_id = ?", uint(id), middleware.VisitorID(c)).
		First(&review).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "review not found")
		return
	}

	now := time.Now()
	review.Rating = req.Rating
	review.Comment = req.Comment
	review.ReviewTime = &now

	if err := config.DB.Save(&review).Error; err != nil {
		utils.RespondServiceError(c, err, "review update")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, review)
}
