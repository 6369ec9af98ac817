package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/middleware"
	"myplan-backend/services"
	"myplan-backend/utils"
)

// BookingController exposes the booking lifecycle over HTTP, delegating the
// transactional work to BookingService.
type BookingController struct {
	Service *services.BookingService
}

func NewBookingController(service *services.BookingService) *BookingController {
	return &BookingController{Service: service}
}

type createBookingRequest struct {
	ExperienceDetailID uint     `json:"experience_detail_id" binding:"required"`
	NumberOfTickets    int      `json:"number_of_tickets" binding:"required,min=1,max=10"`
	BookingDate        string   `json:"booking_date"`
	PaymentMethod      string   `json:"payment_method" binding:"required,paymentmethod"`
	Description        string   `json:"description"`
	TicketHolders      []string `json:"ticket_holders" binding:"max=10"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,bookingstatus"`
}

// Create books an experience slot for the authenticated visitor.
func (bc *BookingController) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload: "+err.Error())
		return
	}

	input := services.CreateBookingInput{
		ExperienceDetailID: req.ExperienceDetailID,
		NumberOfTickets:    req.NumberOfTickets,
		PaymentMethod:      req.PaymentMethod,
		Description:        req.Description,
		TicketHolders:      req.TicketHolders,
	}
	if req.BookingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BookingDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "booking_date must be YYYY-MM-DD")
			return
		}
		input.BookingDate = &parsed
	}

	booking, err := bc.Service.CreateBooking(middleware.VisitorID(c), input)
	if err != nil {
		utils.RespondServiceError(c, err, "booking create")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// MyBookings lists the authenticated visitor's bookings.
func (bc *BookingController) MyBookings(c *gin.Context) {
	bookings, err := bc.Service.ListVisitorBookings(middleware.VisitorID(c))
	if err != nil {
		utils.RespondServiceError(c, err, "booking list (visitor)")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Cancel cancels a visitor's own booking while still inside the allowed
// window.
func (bc *BookingController) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := bc.Service.Cancel(uint(bookingID), middleware.VisitorID(c), time.Now())
	if err != nil {
		utils.RespondServiceError(c, err, "booking cancel")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// List pages through all bookings for the admin table. Accepts ?status= to
// filter and the usual ?page=&limit=.
func (bc *BookingController) List(c *gin.Context) {
	pagination := utils.GetPagination(c)
	status := c.Query("status")

	bookings, total, err := bc.Service.ListBookings(pagination, status)
	if err != nil {
		utils.RespondServiceError(c, err, "booking list (admin)")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     pagination.Page,
		"limit":    pagination.Limit,
	})
}

// UpdateStatus lets an admin move a booking between statuses.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status must be Pending, Confirmed or Cancelled")
		return
	}

	booking, err := bc.Service.UpdateStatus(uint(bookingID), req.Status)
	if err != nil {
		utils.RespondServiceError(c, err, "booking status update")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// Details returns one booking with visitor, tickets and payments.
func (bc *BookingController) Details(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := bc.Service.GetDetails(uint(bookingID))
	if err != nil {
		utils.RespondServiceError(c, err, "booking details")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// InvoiceDetails resolves the booking's invoice through its payment.
func (bc *BookingController) InvoiceDetails(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	details, err := bc.Service.GetInvoiceDetails(uint(bookingID))
	if err != nil {
		utils.RespondServiceError(c, err, "booking invoice")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, details)
}
