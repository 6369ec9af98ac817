package models

import (
	"time"
)

// FriendInvitation invites another visitor to a specific experience slot.
// Token is unique across the table and assigned at creation.
type FriendInvitation struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	VisitorID          uint       `gorm:"index;column:visitor_id" json:"visitor_id"`
	ReceiverID         *uint      `gorm:"index;column:receiver_id" json:"receiver_id,omitempty"`
	ExperienceDetailID *uint      `gorm:"index;column:experience_detail_id" json:"experience_detail_id,omitempty"`
	ReceiverEmail      string     `gorm:"size:150" json:"receiver_email,omitempty"`
	Message            string     `gorm:"size:500" json:"message,omitempty"`
	Status             string     `gorm:"size:32;default:Pending" json:"status"`
	Token              string     `gorm:"uniqueIndex;size:64" json:"token"`
	SentAt             *time.Time `json:"sent_at,omitempty"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	AddedAt            time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Visitor          Visitor           `gorm:"foreignKey:VisitorID;references:ID" json:"visitor,omitempty"`
	Receiver         *Visitor          `gorm:"foreignKey:ReceiverID;references:ID" json:"receiver,omitempty"`
	ExperienceDetail *ExperienceDetail `gorm:"foreignKey:ExperienceDetailID;references:ID" json:"experience_detail,omitempty"`
}
