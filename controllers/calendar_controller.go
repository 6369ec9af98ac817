package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

// calendarEntry is one renderable item on the visitor's calendar.
type calendarEntry struct {
	Kind       string     `json:"kind"` // booking | invitation | itinerary
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Date       *time.Time `json:"date,omitempty"`
	StartTime  string     `json:"start_time,omitempty"`
	Status     string     `json:"status,omitempty"`
	Experience uint       `json:"experience_id,omitempty"`
	Tickets    int        `json:"tickets,omitempty"`
	Reviewed   bool       `json:"reviewed,omitempty"`
}

// GetCalendarData assembles the visitor's calendar: confirmed bookings,
// accepted friend invitations and itinerary entries, plus the pending
// invitations awaiting a response.
func GetCalendarData(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	var bookings []models.Booking
	if err := config.DB.Preload("Experience").Preload("Tickets").Preload("Reviews").
		Where("visitor_id = ? AND status = ?", visitorID, models.BookingConfirmed).
		Find(&bookings).Error; err != nil {
		utils.RespondServiceError(c, err, "calendar bookings")
		return
	}

	var invites []models.FriendInvitation
	if err := config.DB.
		Preload("ExperienceDetail").Preload("ExperienceDetail.Experience").
		Preload("Visitor").Preload("Visitor.User").
		Where("receiver_id = ?", visitorID).
		Order("added_at DESC").
		Find(&invites).Error; err != nil {
		utils.RespondServiceError(c, err, "calendar invitations")
		return
	}

	var itineraries []models.Itinerary
	if err := config.DB.Preload("Experience").
		Where("visitor_id = ?", visitorID).
		Find(&itineraries).Error; err != nil {
		utils.RespondServiceError(c, err, "calendar itineraries")
		return
	}

	entries := make([]calendarEntry, 0, len(bookings)+len(invites)+len(itineraries))
	for _, b := range bookings {
		date := b.BookingDate
		entries = append(entries, calendarEntry{
			Kind:       "booking",
			ID:         b.ID,
			Title:      b.Experience.Title,
			Date:       &date,
			Status:     b.Status,
			Experience: b.ExperienceID,
			Tickets:    len(b.Tickets),
			Reviewed:   len(b.Reviews) > 0,
		})
	}

	pending := make([]gin.H, 0)
	for _, inv := range invites {
		title := "Invitation"
		var date *time.Time
		startTime := ""
		var experienceID uint
		if inv.ExperienceDetail != nil {
			title = inv.ExperienceDetail.Experience.Title
			date = inv.ExperienceDetail.Date
			startTime = inv.ExperienceDetail.StartTime
			experienceID = inv.ExperienceDetail.ExperienceID
		}

		if inv.Status == models.InvitationAccepted {
			entries = append(entries, calendarEntry{
				Kind:       "invitation",
				ID:         inv.ID,
				Title:      title,
				Date:       date,
				StartTime:  startTime,
				Status:     inv.Status,
				Experience: experienceID,
			})
		}
		if inv.Status == models.InvitationPending {
			pending = append(pending, gin.H{
				"id":         inv.ID,
				"token":      inv.Token,
				"title":      title,
				"date":       date,
				"start_time": startTime,
				"message":    inv.Message,
				"from":       inv.Visitor.FullName(),
			})
		}
	}

	for _, it := range itineraries {
		entries = append(entries, calendarEntry{
			Kind:       "itinerary",
			ID:         it.ID,
			Title:      it.Experience.Title,
			Date:       it.StartDate,
			Experience: it.ExperienceID,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"entries":             entries,
		"pending_invitations": pending,
	})
}

type handleInviteRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

// HandleInvite accepts or declines a friend invitation by token. Only the
// invited visitor may respond, and only while the invitation is pending.
func HandleInvite(c *gin.Context) {
	var req handleInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "token and action (accept|decline) are required")
		return
	}

	visitorID := middleware.VisitorID(c)

	var invite models.FriendInvitation
	if err := config.DB.Where("token = ?", req.Token).First(&invite).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "invitation not found")
		return
	}

	if invite.ReceiverID == nil || *invite.ReceiverID != visitorID {
		utils.JSONError(c, http.StatusForbidden, "this invitation was not sent to you")
		return
	}
	if invite.Status != models.InvitationPending {
		utils.JSONError(c, http.StatusConflict, "this invitation was already handled")
		return
	}

	updates := map[string]interface{}{}
	if req.Action == "accept" {
		now := time.Now()
		updates["status"] = models.InvitationAccepted
		updates["accepted_at"] = &now
	} else {
		updates["status"] = models.InvitationRejected
	}

	if err := config.DB.Model(&invite).Updates(updates).Error; err != nil {
		utils.RespondServiceError(c, err, "invitation update")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":     invite.ID,
		"status": updates["status"],
	})
}
