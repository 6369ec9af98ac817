package services

import (
	"errors"
	"testing"
	"time"

	"myplan-backend/models"
	"myplan-backend/utils"
)

func TestCanCancel(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		eventStart *time.Time
		want       bool
	}{
		{"no start date", nil, true},
		{"event in 25 hours", timePtr(now.Add(25 * time.Hour)), true},
		{"event in exactly 24 hours", timePtr(now.Add(24 * time.Hour)), true},
		{"event in 23 hours", timePtr(now.Add(23 * time.Hour)), false},
		{"event already started", timePtr(now.Add(-time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCancel(now, tt.eventStart); got != tt.want {
				t.Errorf("CanCancel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookingTotal(t *testing.T) {
	if got := BookingTotal(100, 3); got != 300 {
		t.Errorf("BookingTotal(100, 3) = %v, want 300", got)
	}
	if got := BookingTotal(49.5, 2); got != 99 {
		t.Errorf("BookingTotal(49.5, 2) = %v, want 99", got)
	}
	if got := BookingTotal(0, 5); got != 0 {
		t.Errorf("BookingTotal(0, 5) = %v, want 0", got)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func seedBookableExperience(t *testing.T, svc *BookingService, startIn time.Duration) models.ExperienceDetail {
	t.Helper()

	start := time.Now().Add(startIn)
	experience := models.Experience{Title: "Coastal Kayaking", Type: "Sports", StartDate: &start, MinPrice: 40}
	if err := svc.DB.Create(&experience).Error; err != nil {
		t.Fatalf("seed experience: %v", err)
	}
	detail := models.ExperienceDetail{ExperienceID: experience.ID, Price: 50, Status: models.DetailActive}
	if err := svc.DB.Create(&detail).Error; err != nil {
		t.Fatalf("seed detail: %v", err)
	}
	return detail
}

func TestCancelCascadesToEveryTicket(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	detail := seedBookableExperience(t, svc, 72*time.Hour)

	booking, err := svc.CreateBooking(1, CreateBookingInput{
		ExperienceDetailID: detail.ID,
		NumberOfTickets:    3,
		PaymentMethod:      "Card",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	if booking.TotalAmount != 150 {
		t.Fatalf("TotalAmount = %v, want 150", booking.TotalAmount)
	}
	if len(booking.Tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(booking.Tickets))
	}

	cancelled, err := svc.Cancel(booking.ID, 1, time.Now())
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Errorf("booking status = %q, want %q", cancelled.Status, models.BookingCancelled)
	}

	var tickets []models.Ticket
	if err := svc.DB.Where("booking_id = ?", booking.ID).Find(&tickets).Error; err != nil {
		t.Fatalf("load tickets: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets after cancel, got %d", len(tickets))
	}
	for _, ticket := range tickets {
		if ticket.Status != models.TicketCancelled {
			t.Errorf("ticket %s status = %q, want %q", ticket.Code, ticket.Status, models.TicketCancelled)
		}
	}

	// Payments keep their own state; cancelling never rewrites them.
	var payment models.Payment
	if err := svc.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Errorf("payment status = %q, want %q", payment.Status, models.PaymentPending)
	}
}

func TestCancelRejectedInsideWindow(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	detail := seedBookableExperience(t, svc, 2*time.Hour)

	booking, err := svc.CreateBooking(1, CreateBookingInput{
		ExperienceDetailID: detail.ID,
		NumberOfTickets:    1,
		PaymentMethod:      "Card",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	_, err = svc.Cancel(booking.ID, 1, time.Now())
	if !errors.Is(err, utils.ErrPolicyViolation) {
		t.Fatalf("Cancel() inside the window should return a policy violation, got %v", err)
	}

	var ticket models.Ticket
	if err := svc.DB.Where("booking_id = ?", booking.ID).First(&ticket).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Status != models.TicketIssued {
		t.Errorf("ticket status = %q, want %q", ticket.Status, models.TicketIssued)
	}
}
