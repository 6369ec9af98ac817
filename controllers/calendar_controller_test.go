package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
)

func useTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// Each sqlite :memory: connection is its own database; pin the pool to
	// one connection so every query sees the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Visitor{},
		&models.Experience{},
		&models.ExperienceDetail{},
		&models.Booking{},
		&models.Ticket{},
		&models.Payment{},
		&models.Review{},
		&models.Itinerary{},
		&models.FriendInvitation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	config.DB = db
}

func TestCalendarListsOnlyConfirmedBookings(t *testing.T) {
	useTestDB(t)

	const visitorID uint = 1

	experience := models.Experience{Title: "Food Festival", Type: "Food"}
	if err := config.DB.Create(&experience).Error; err != nil {
		t.Fatalf("seed experience: %v", err)
	}

	for _, status := range []string{models.BookingPending, models.BookingConfirmed, models.BookingCancelled} {
		booking := models.Booking{
			ExperienceID:    experience.ID,
			VisitorID:       visitorID,
			BookingDate:     time.Now(),
			NumberOfTickets: 1,
			PricePerTicket:  30,
			TotalAmount:     30,
			Status:          status,
		}
		if err := config.DB.Create(&booking).Error; err != nil {
			t.Fatalf("seed %s booking: %v", status, err)
		}
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/calendar", func(c *gin.Context) {
		c.Set(middleware.CtxVisitorID, visitorID)
		GetCalendarData(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/calendar", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Data struct {
			Entries []struct {
				Kind   string `json:"kind"`
				Status string `json:"status"`
			} `json:"entries"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	bookingEntries := 0
	for _, entry := range body.Data.Entries {
		if entry.Kind != "booking" {
			continue
		}
		bookingEntries++
		if entry.Status != models.BookingConfirmed {
			t.Errorf("calendar surfaced a %s booking", entry.Status)
		}
	}
	if bookingEntries != 1 {
		t.Errorf("booking entries = %d, want 1 (only the confirmed one)", bookingEntries)
	}
}
