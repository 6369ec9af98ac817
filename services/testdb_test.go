package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"myplan-backend/models"
)

// newTestDB opens a throwaway in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
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
		&models.Admin{},
		&models.Experience{},
		&models.ExperienceDetail{},
		&models.Image{},
		&models.Booking{},
		&models.Ticket{},
		&models.Payment{},
		&models.Invoice{},
		&models.Review{},
		&models.Highlight{},
		&models.Itinerary{},
		&models.FriendInvitation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
