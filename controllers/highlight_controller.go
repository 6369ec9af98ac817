package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

// highlightView flattens the dual-author schema for the admin table.
type highlightView struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content,omitempty"`
	Image      string     `json:"image,omitempty"`
	AuthorKind string     `json:"author_kind"`
	AuthorName string     `json:"author_name"`
	PostedAt   *time.Time `json:"posted_at,omitempty"`
	AddedAt    time.Time  `json:"added_at"`
}

func toHighlightView(h *models.Highlight) highlightView {
	kind, name := h.AuthorDisplay()
	return highlightView{
		ID:         h.ID,
		Title:      h.Title,
		Content:    h.Content,
		Image:      h.Image,
		AuthorKind: kind,
		AuthorName: name,
		PostedAt:   h.HighlightTime,
		AddedAt:    h.AddedAt,
	}
}

// ListHighlights is the admin moderation table for highlights.
func ListHighlights(c *gin.Context) {
	pagination := utils.GetPagination(c)

	query := config.DB.Model(&models.Highlight{}).
		Preload("Admin").Preload("Admin.User").
		Preload("Visitor").Preload("Visitor.User")

	if v := c.Query("search"); v != "" {
		query = query.Where("title LIKE ? OR content LIKE ?", "%"+v+"%", "%"+v+"%")
	}
	switch c.Query("author") {
	case "admin":
		query = query.Where("admin_id IS NOT NULL")
	case "visitor":
		query = query.Where("visitor_id IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondServiceError(c, err, "highlight count")
		return
	}

	var highlights []models.Highlight
	if err := query.Order("added_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&highlights).Error; err != nil {
		utils.RespondServiceError(c, err, "highlight list")
		return
	}

	views := make([]highlightView, 0, len(highlights))
	for i := range highlights {
		views = append(views, toHighlightView(&highlights[i]))
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"highlights": views,
		"total":      total,
		"page":       pagination.Page,
		"limit":      pagination.Limit,
	})
}

// HighlightDetails returns one highlight with resolved author info.
func HighlightDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid highlight id")
		return
	}

	var highlight models.Highlight
	if err := config.DB.
		Preload("Admin").Preload("Admin.User").
		Preload("Visitor").Preload("Visitor.User").
		First(&highlight, uint(id)).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "highlight not found")
		return
	}

	view := toHighlightView(&highlight)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"highlight":    view,
		"description":  highlight.Description,
		"author_email": highlight.AuthorEmail(),
	})
}

// DeleteHighlight removes one highlight and its image file.
func DeleteHighlight(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid highlight id")
		return
	}

	var highlight models.Highlight
	if err := config.DB.First(&highlight, uint(id)).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "highlight not found")
		return
	}

	if err := config.DB.Delete(&highlight).Error; err != nil {
		utils.RespondServiceError(c, err, "highlight delete")
		return
	}
	if highlight.Image != "" {
		utils.DeleteUploadedFile(highlight.Image)
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "highlight deleted"})
}

// BulkDeleteHighlights removes a batch and cleans up their images.
func BulkDeleteHighlights(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "ids is required and must not be empty")
		return
	}

	var highlights []models.Highlight
	if err := config.DB.Where("id IN ?", req.IDs).Find(&highlights).Error; err != nil {
		utils.RespondServiceError(c, err, "highlight bulk lookup")
		return
	}

	result := config.DB.Where("id IN ?", req.IDs).Delete(&models.Highlight{})
	if result.Error != nil {
		utils.RespondServiceError(c, result.Error, "highlight bulk delete")
		return
	}

	for _, h := range highlights {
		if h.Image != "" {
			utils.DeleteUploadedFile(h.Image)
		}
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": result.RowsAffected})
}

// CreateHighlight posts a highlight as the authenticated visitor. Multipart
// so the image uploads in the same request.
func CreateHighlight(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	description := c.PostForm("description")

	if title == "" && content == "" {
		utils.JSONError(c, http.StatusBadRequest, "a title or content is required")
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err = utils.SaveUploadedImage(file, "highlights")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	visitorID := middleware.VisitorID(c)
	now := time.Now()
	highlight := models.Highlight{
		Title:         title,
		Content:       content,
		Description:   description,
		Image:         imagePath,
		HighlightTime: &now,
		VisitorID:     &visitorID,
	}

	if err := config.DB.Create(&highlight).Error; err != nil {
		if imagePath != "" {
			utils.DeleteUploadedFile(imagePath)
		}
		utils.RespondServiceError(c, err, "highlight create")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, highlight)
}
