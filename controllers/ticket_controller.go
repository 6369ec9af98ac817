package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"myplan-backend/middleware"
	"myplan-backend/services"
	"myplan-backend/utils"
)

// TicketController serves ticket downloads and the anonymous verification
// view gate staff scan against.
type TicketController struct {
	Service *services.BookingService
}

func NewTicketController(service *services.BookingService) *TicketController {
	return &TicketController{Service: service}
}

// Download returns the visitor's tickets for one booking, each with its QR
// code rendered as a base64 PNG.
func (tc *TicketController) Download(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := tc.Service.GetOwnedBooking(uint(bookingID), middleware.VisitorID(c))
	if err != nil {
		utils.RespondServiceError(c, err, "ticket download")
		return
	}

	type ticketView struct {
		ID         uint   `json:"id"`
		Code       string `json:"code"`
		Status     string `json:"status"`
		Type       string `json:"type"`
		HolderName string `json:"holder_name,omitempty"`
		QRCode     string `json:"qr_code"`
	}

	tickets := make([]ticketView, 0, len(booking.Tickets))
	for _, t := range booking.Tickets {
		qr, err := utils.TicketQRBase64(t.Code)
		if err != nil {
			utils.RespondServiceError(c, err, "ticket qr render")
			return
		}
		tickets = append(tickets, ticketView{
			ID:         t.ID,
			Code:       t.Code,
			Status:     t.Status,
			Type:       t.Type,
			HolderName: t.HolderName,
			QRCode:     qr,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking_id":   booking.ID,
		"experience":   booking.Experience.Title,
		"booking_date": booking.BookingDate,
		"status":       booking.Status,
		"tickets":      tickets,
	})
}

// View resolves a ticket by its public code. No auth: the QR code itself is
// the capability.
func (tc *TicketController) View(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "ticket code is required")
		return
	}

	ticket, err := tc.Service.GetTicketByCode(code)
	if err != nil {
		utils.RespondServiceError(c, err, "ticket view")
		return
	}

	holder := ticket.HolderName
	if holder == "" {
		holder = ticket.Booking.Visitor.FullName()
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"code":           ticket.Code,
		"status":         ticket.Status,
		"type":           ticket.Type,
		"holder":         holder,
		"experience":     ticket.Booking.Experience.Title,
		"location":       ticket.Booking.Experience.Location,
		"booking_date":   ticket.Booking.BookingDate,
		"booking_status": ticket.Booking.Status,
	})
}
