package models

import (
	"time"
)

// Itinerary is a visitor's personal day-plan entry tied to one experience.
// End date must be >= start date; the handlers enforce it.
type Itinerary struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	VisitorID    uint       `gorm:"index;column:visitor_id" json:"visitor_id"`
	ExperienceID uint       `gorm:"index;column:experience_id" json:"experience_id"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Day          int        `json:"day"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	AddedAt      time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Visitor    Visitor    `gorm:"foreignKey:VisitorID;references:ID" json:"visitor,omitempty"`
	Experience Experience `gorm:"foreignKey:ExperienceID;references:ID" json:"experience,omitempty"`
}
