package services

import (
	"testing"
	"time"

	"myplan-backend/models"
)

func TestGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"activity from nothing", 500, 0, 100},
		{"nothing either period", 0, 0, 0},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"flat", 100, 100, 0},
		{"dropped to zero", 0, 80, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Growth(tt.current, tt.previous); got != tt.want {
				t.Errorf("Growth(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestFillMonthlySeries(t *testing.T) {
	series := FillMonthlySeries(map[int]float64{3: 150, 11: 90})

	if len(series) != 12 {
		t.Fatalf("expected 12 months, got %d", len(series))
	}
	if series[0].Label != "Jan" || series[11].Label != "Dec" {
		t.Errorf("series should run Jan through Dec, got %s..%s", series[0].Label, series[11].Label)
	}
	if series[2].Revenue != 150 {
		t.Errorf("March revenue = %v, want 150", series[2].Revenue)
	}
	if series[10].Revenue != 90 {
		t.Errorf("November revenue = %v, want 90", series[10].Revenue)
	}
	if series[5].Revenue != 0 {
		t.Errorf("empty months must read 0, June = %v", series[5].Revenue)
	}
	for i, p := range series {
		if p.Month != i+1 {
			t.Errorf("series[%d].Month = %d, want %d", i, p.Month, i+1)
		}
	}
}

func TestExperiencesReportCountsEachBookingOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	experience := models.Experience{Title: "Desert Stargazing", Type: "Cultural"}
	if err := db.Create(&experience).Error; err != nil {
		t.Fatalf("seed experience: %v", err)
	}

	// Two bookings at 100 each, one Paid payment apiece.
	for i := 0; i < 2; i++ {
		booking := models.Booking{
			ExperienceID:    experience.ID,
			VisitorID:       1,
			BookingDate:     time.Now(),
			NumberOfTickets: 1,
			PricePerTicket:  100,
			TotalAmount:     100,
			Status:          models.BookingConfirmed,
		}
		if err := db.Create(&booking).Error; err != nil {
			t.Fatalf("seed booking: %v", err)
		}
		payment := models.Payment{BookingID: booking.ID, Amount: 100, Status: models.PaymentPaid}
		if err := db.Create(&payment).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	// Three reviews must not multiply the revenue sum.
	for _, rating := range []int{5, 4, 3} {
		review := models.Review{VisitorID: 1, ExperienceID: experience.ID, Rating: rating}
		if err := db.Create(&review).Error; err != nil {
			t.Fatalf("seed review: %v", err)
		}
	}

	rows, err := svc.ExperiencesReport(time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("ExperiencesReport() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.TotalRevenue != 200 {
		t.Errorf("TotalRevenue = %v, want 200", row.TotalRevenue)
	}
	if row.TotalBookings != 2 {
		t.Errorf("TotalBookings = %v, want 2", row.TotalBookings)
	}
	if row.ReviewCount != 3 {
		t.Errorf("ReviewCount = %v, want 3", row.ReviewCount)
	}
	if row.AverageRating != 4 {
		t.Errorf("AverageRating = %v, want 4", row.AverageRating)
	}
}

func TestTopExperiencesDedupesPaidPayments(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	experience := models.Experience{Title: "Jazz Night", Type: "Music"}
	if err := db.Create(&experience).Error; err != nil {
		t.Fatalf("seed experience: %v", err)
	}
	booking := models.Booking{
		ExperienceID:    experience.ID,
		VisitorID:       1,
		BookingDate:     time.Now(),
		NumberOfTickets: 2,
		PricePerTicket:  50,
		TotalAmount:     100,
		Status:          models.BookingConfirmed,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	// A retried settlement can leave two Paid rows on one booking.
	for i := 0; i < 2; i++ {
		payment := models.Payment{BookingID: booking.ID, Amount: 100, Status: models.PaymentPaid}
		if err := db.Create(&payment).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	rows, err := svc.TopExperiences(5)
	if err != nil {
		t.Fatalf("TopExperiences() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100", rows[0].TotalRevenue)
	}
	if rows[0].TotalBookings != 1 {
		t.Errorf("TotalBookings = %v, want 1", rows[0].TotalBookings)
	}
}
