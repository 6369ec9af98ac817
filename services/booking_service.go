package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"myplan-backend/models"
	"myplan-backend/utils"
)

const mysqlDuplicateEntry = 1062

// BookingService owns the booking lifecycle: creation with ticket minting,
// admin status changes and visitor-initiated cancellation.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

const (
	MinTicketsPerBooking = 1
	MaxTicketsPerBooking = 10

	// Cancellations close this long before the experience starts.
	CancellationWindow = 24 * time.Hour
)

// CreateBookingInput carries the validated payload of a new booking.
type CreateBookingInput struct {
	ExperienceDetailID uint
	NumberOfTickets    int
	BookingDate        *time.Time
	PaymentMethod      string
	Description        string
	TicketHolders      []string
}

// CanCancel reports whether a booking against an experience starting at
// eventStart may still be cancelled at now. Experiences without a start date
// stay cancellable indefinitely.
func CanCancel(now time.Time, eventStart *time.Time) bool {
	if eventStart == nil {
		return true
	}
	return eventStart.Sub(now) >= CancellationWindow
}

// BookingTotal is the amount fixed on the booking at creation time.
func BookingTotal(pricePerTicket float64, tickets int) float64 {
	return pricePerTicket * float64(tickets)
}

// CreateBooking books a slot for a visitor: one transaction inserts the
// pending booking, mints one ticket per seat and opens a pending payment.
func (s *BookingService) CreateBooking(visitorID uint, input CreateBookingInput) (*models.Booking, error) {
	if input.NumberOfTickets < MinTicketsPerBooking || input.NumberOfTickets > MaxTicketsPerBooking {
		return nil, fmt.Errorf("%w: number of tickets must be between %d and %d",
			utils.ErrValidation, MinTicketsPerBooking, MaxTicketsPerBooking)
	}

	var detail models.ExperienceDetail
	if err := s.DB.Preload("Experience").First(&detail, input.ExperienceDetailID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: experience slot not found", utils.ErrNotFound)
		}
		return nil, err
	}

	unitPrice := detail.Price
	if unitPrice <= 0 {
		unitPrice = detail.Experience.MinPrice
	}

	bookingDate := time.Now()
	if input.BookingDate != nil {
		bookingDate = *input.BookingDate
	} else if detail.Date != nil {
		bookingDate = *detail.Date
	}

	booking := models.Booking{
		ExperienceID:    detail.ExperienceID,
		VisitorID:       visitorID,
		BookingDate:     bookingDate,
		NumberOfTickets: input.NumberOfTickets,
		PricePerTicket:  unitPrice,
		TotalAmount:     BookingTotal(unitPrice, input.NumberOfTickets),
		Status:          models.BookingPending,
		Description:     input.Description,
	}

	if len(input.TicketHolders) > 0 {
		raw, err := json.Marshal(input.TicketHolders)
		if err == nil {
			booking.TicketHolders = datatypes.JSON(raw)
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		now := time.Now()
		for i := 0; i < input.NumberOfTickets; i++ {
			holder := ""
			if i < len(input.TicketHolders) {
				holder = strings.TrimSpace(input.TicketHolders[i])
			}
			if err := s.mintTicket(tx, booking.ID, holder, now); err != nil {
				return err
			}
		}

		paymentDate := now
		payment := models.Payment{
			BookingID: booking.ID,
			Date:      &paymentDate,
			Amount:    booking.TotalAmount,
			Method:    input.PaymentMethod,
			Status:    models.PaymentPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	var created models.Booking
	if err := s.DB.Preload("Experience").Preload("Tickets").Preload("Payments").
		First(&created, booking.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// mintTicket creates one ticket, retrying on the (unlikely) unique-code
// collision.
func (s *BookingService) mintTicket(tx *gorm.DB, bookingID uint, holder string, issuedAt time.Time) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		code, err := utils.GenerateTicketCode()
		if err != nil {
			return err
		}
		ticket := models.Ticket{
			BookingID:  bookingID,
			Code:       code,
			Status:     models.TicketIssued,
			Type:       "Standard",
			HolderName: holder,
			IssuedAt:   &issuedAt,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			lastErr = err
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}

// UpdateStatus sets a booking's status to one of the known values.
func (s *BookingService) UpdateStatus(bookingID uint, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown booking status %q", utils.ErrValidation, status)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: booking not found", utils.ErrNotFound)
		}
		return nil, err
	}

	if err := s.DB.Model(&booking).Update("status", status).Error; err != nil {
		return nil, err
	}
	booking.Status = status
	return &booking, nil
}

// Cancel lets the owning visitor cancel a booking while the experience is
// still more than the cancellation window away. The booking and every ticket
// flip to Cancelled in one transaction; payment records are left as they are.
func (s *BookingService) Cancel(bookingID, visitorID uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Experience").
		Where("id = ? AND visitor_id = ?", bookingID, visitorID).
		First(&booking).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: booking not found", utils.ErrNotFound)
		}
		return nil, err
	}

	if booking.Status == models.BookingCancelled {
		return &booking, nil
	}

	var eventStart *time.Time
	if booking.Experience.StartDate != nil {
		eventStart = booking.Experience.StartDate
	}
	if !CanCancel(now, eventStart) {
		return nil, fmt.Errorf("%w: bookings close for cancellation 24 hours before the experience starts",
			utils.ErrPolicyViolation)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("status", models.BookingCancelled).Error; err != nil {
			return err
		}
		return tx.Model(&models.Ticket{}).Where("booking_id = ?", booking.ID).
			Update("status", models.TicketCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingCancelled
	return &booking, nil
}

// ListBookings returns a page of bookings for the admin table, newest first.
func (s *BookingService) ListBookings(p utils.Pagination, status string) ([]models.Booking, int64, error) {
	query := s.DB.Model(&models.Booking{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := query.
		Preload("Experience").
		Preload("Visitor").Preload("Visitor.User").
		Preload("Payments").
		Order("added_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&bookings).Error
	return bookings, total, err
}

// GetDetails loads one booking with everything the admin detail view shows.
func (s *BookingService) GetDetails(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Experience").
		Preload("Visitor").Preload("Visitor.User").
		Preload("Tickets").
		Preload("Payments").
		First(&booking, bookingID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: booking not found", utils.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

// GetOwnedBooking loads a booking only when it belongs to the visitor.
func (s *BookingService) GetOwnedBooking(bookingID, visitorID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Experience").
		Preload("Tickets").
		Preload("Visitor").Preload("Visitor.User").
		Where("id = ? AND visitor_id = ?", bookingID, visitorID).
		First(&booking).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: booking not found", utils.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

// ListVisitorBookings returns a visitor's own bookings, newest first.
func (s *BookingService) ListVisitorBookings(visitorID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Experience").
		Preload("Tickets").
		Preload("Payments").
		Where("visitor_id = ?", visitorID).
		Order("added_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// GetTicketByCode resolves a ticket by its public code for the anonymous
// verification view.
func (s *BookingService) GetTicketByCode(code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.DB.
		Preload("Booking").
		Preload("Booking.Experience").
		Preload("Booking.Visitor").Preload("Booking.Visitor.User").
		Where("code = ?", code).
		First(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: ticket not found", utils.ErrNotFound)
		}
		return nil, err
	}
	return &ticket, nil
}

// InvoiceDetails is the assembled invoice view for one booking. The invoice
// row points at a payment, so resolution runs through the payment list.
type InvoiceDetails struct {
	Booking *models.Booking `json:"booking"`
	Payment *models.Payment `json:"payment,omitempty"`
	Invoice *models.Invoice `json:"invoice,omitempty"`
}

// GetInvoiceDetails joins booking, payment and invoice by hand; invoices only
// reference their payment id.
func (s *BookingService) GetInvoiceDetails(bookingID uint) (*InvoiceDetails, error) {
	booking, err := s.GetDetails(bookingID)
	if err != nil {
		return nil, err
	}

	details := &InvoiceDetails{Booking: booking}
	if len(booking.Payments) == 0 {
		return details, nil
	}

	// Prefer the paid payment; fall back to the most recent one.
	payment := booking.Payments[len(booking.Payments)-1]
	for i := range booking.Payments {
		if booking.Payments[i].Status == models.PaymentPaid {
			payment = booking.Payments[i]
			break
		}
	}
	details.Payment = &payment

	var invoice models.Invoice
	err = s.DB.Where("payment_id = ?", payment.ID).First(&invoice).Error
	if err == nil {
		details.Invoice = &invoice
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return details, nil
}
