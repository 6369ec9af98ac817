package services

import (
	"testing"

	"myplan-backend/models"
)

func TestUpdateNeverRemovesExistingDetails(t *testing.T) {
	svc := NewExperienceService(newTestDB(t))

	created, err := svc.Create(ExperienceInput{
		Title: "Calligraphy Workshop",
		Type:  "Art",
		Details: []DetailInput{
			{StartTime: "18:00", Price: 80},
			{StartTime: "21:00", Price: 90},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(created.Details) != 2 {
		t.Fatalf("expected 2 details after create, got %d", len(created.Details))
	}
	existing := created.Details[0]

	// A payload that tries to rewrite an existing slot and append a new one:
	// the id-carrying row must be ignored, only the id-0 row inserted.
	updated, err := svc.Update(created.ID, ExperienceInput{
		Title: "Calligraphy Workshop",
		Type:  "Art",
		Details: []DetailInput{
			{ID: existing.ID, StartTime: "06:00", Price: 5},
			{StartTime: "23:00", Price: 100},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(updated.Details) != 3 {
		t.Fatalf("expected 3 details after update, got %d", len(updated.Details))
	}

	var kept models.ExperienceDetail
	if err := svc.DB.First(&kept, existing.ID).Error; err != nil {
		t.Fatalf("existing detail row is gone: %v", err)
	}
	if kept.StartTime != "18:00" || kept.Price != 80 {
		t.Errorf("existing detail was rewritten: start_time=%q price=%v", kept.StartTime, kept.Price)
	}

	var count int64
	if err := svc.DB.Model(&models.ExperienceDetail{}).
		Where("experience_id = ?", created.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count details: %v", err)
	}
	if count != 3 {
		t.Errorf("detail count = %d, want 3", count)
	}
}
