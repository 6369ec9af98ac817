package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

// FriendProfile shows another visitor's public profile: name, bio, avatar,
// highlights, bookings and itineraries, plus the caller's own upcoming
// confirmed experiences for the "invite them along" panel.
func FriendProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid visitor id")
		return
	}

	var visitor models.Visitor
	if err := config.DB.Preload("User").
		Preload("Highlights", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at DESC").Limit(20)
		}).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Where("status <> ?", models.BookingCancelled).
				Order("booking_date DESC").Limit(20)
		}).
		Preload("Bookings.Experience").
		Preload("Itineraries", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date").Limit(20)
		}).
		Preload("Itineraries.Experience").
		First(&visitor, uint(id)).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "visitor not found")
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	var callerUpcoming []models.Booking
	if err := config.DB.Preload("Experience").
		Where("visitor_id = ? AND status = ? AND booking_date >= ?",
			middleware.VisitorID(c), models.BookingConfirmed, today).
		Order("booking_date").
		Find(&callerUpcoming).Error; err != nil {
		utils.RespondServiceError(c, err, "friend profile caller bookings")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"visitor_id":    visitor.ID,
		"full_name":     visitor.FullName(),
		"bio":           visitor.Bio,
		"image":         visitor.User.Image,
		"highlights":    visitor.Highlights,
		"bookings":      visitor.Bookings,
		"itineraries":   visitor.Itineraries,
		"your_upcoming": callerUpcoming,
	})
}

type inviteFriendRequest struct {
	ReceiverEmail      string `json:"receiver_email" binding:"required,email"`
	ExperienceDetailID uint   `json:"experience_detail_id" binding:"required"`
	Message            string `json:"message" binding:"max=500"`
}

// InviteFriend creates a friend invitation for a specific experience slot and
// emails the recipient best-effort. Unregistered recipients get the email but
// no receiver link until they sign up.
func InviteFriend(c *gin.Context) {
	var req inviteFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "receiver_email and experience_detail_id are required")
		return
	}

	visitorID := middleware.VisitorID(c)
	email := strings.ToLower(strings.TrimSpace(req.ReceiverEmail))

	var inviter models.Visitor
	if err := config.DB.Preload("User").First(&inviter, visitorID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "inviter profile not found")
		return
	}
	if email == strings.ToLower(inviter.User.Email) {
		utils.JSONError(c, http.StatusBadRequest, "you cannot invite yourself")
		return
	}

	var detail models.ExperienceDetail
	if err := config.DB.Preload("Experience").
		First(&detail, req.ExperienceDetailID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "experience slot not found")
		return
	}

	var receiverID *uint
	var receiver models.Visitor
	err := config.DB.Joins("JOIN users ON users.id = visitors.user_id").
		Where("users.email = ?", email).
		First(&receiver).Error
	if err == nil {
		receiverID = &receiver.ID
	} else if err != gorm.ErrRecordNotFound {
		utils.RespondServiceError(c, err, "invite receiver lookup")
		return
	}

	now := time.Now()
	detailID := detail.ID
	invite := models.FriendInvitation{
		VisitorID:          visitorID,
		ReceiverID:         receiverID,
		ExperienceDetailID: &detailID,
		ReceiverEmail:      email,
		Message:            strings.TrimSpace(req.Message),
		Status:             models.InvitationPending,
		Token:              uuid.NewString(),
		SentAt:             &now,
	}

	if err := config.DB.Create(&invite).Error; err != nil {
		utils.RespondServiceError(c, err, "invite create")
		return
	}

	slotDate := utils.FormatDate(detail.Date)
	// Delivery failures do not fail the request; the invite still shows up on
	// the receiver's calendar.
	_ = utils.SendFriendInviteEmail(email, inviter.FullName(),
		detail.Experience.Title, slotDate, invite.Message)

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"id":     invite.ID,
		"token":  invite.Token,
		"status": invite.Status,
	})
}

// GetExperienceDetails lists the upcoming active slots of an experience, the
// ones a friend can be invited to.
func GetExperienceDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}

	today := time.Now().Truncate(24 * time.Hour)

	var details []models.ExperienceDetail
	if err := config.DB.
		Where("experience_id = ? AND status = ? AND (date IS NULL OR date >= ?)",
			uint(id), models.DetailActive, today).
		Order("date, start_time").
		Find(&details).Error; err != nil {
		utils.RespondServiceError(c, err, "experience slots")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, details)
}

// MySentInvites lists the invitations the visitor has sent.
func MySentInvites(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	var invites []models.FriendInvitation
	if err := config.DB.
		Preload("ExperienceDetail").Preload("ExperienceDetail.Experience").
		Preload("Receiver").Preload("Receiver.User").
		Where("visitor_id = ?", visitorID).
		Order("added_at DESC").
		Find(&invites).Error; err != nil {
		utils.RespondServiceError(c, err, "sent invites")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, invites)
}
