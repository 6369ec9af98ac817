package models

import (
	"time"
)

// Visitor is the person-facing profile wrapping a User account.
type Visitor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;column:user_id" json:"user_id"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	PhoneNumber string    `gorm:"size:32" json:"phone_number,omitempty"`
	Bio         string    `gorm:"type:text" json:"bio,omitempty"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`

	User            User               `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Bookings        []Booking          `gorm:"foreignKey:VisitorID" json:"bookings,omitempty"`
	Itineraries     []Itinerary        `gorm:"foreignKey:VisitorID" json:"itineraries,omitempty"`
	Highlights      []Highlight        `gorm:"foreignKey:VisitorID" json:"highlights,omitempty"`
	Reviews         []Review           `gorm:"foreignKey:VisitorID" json:"reviews,omitempty"`
	SentInvites     []FriendInvitation `gorm:"foreignKey:VisitorID" json:"sent_invites,omitempty"`
	ReceivedInvites []FriendInvitation `gorm:"foreignKey:ReceiverID" json:"received_invites,omitempty"`
}

// FullName joins the split name fields for display.
func (v *Visitor) FullName() string {
	if v.FirstName == "" {
		return v.LastName
	}
	if v.LastName == "" {
		return v.FirstName
	}
	return v.FirstName + " " + v.LastName
}
