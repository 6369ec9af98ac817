package models

import (
	"time"
)

// Highlight is a social post authored by either an Admin or a Visitor. The
// schema keeps two nullable foreign keys; AuthorDisplay resolves them into a
// single author so display logic has one valid path.
type Highlight struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255" json:"title,omitempty"`
	Content       string     `gorm:"type:text" json:"content,omitempty"`
	Image         string     `gorm:"size:255" json:"image,omitempty"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	HighlightTime *time.Time `json:"highlight_time,omitempty"`
	AddedAt       time.Time  `gorm:"autoCreateTime" json:"added_at"`

	AdminID   *uint `gorm:"index;column:admin_id" json:"admin_id,omitempty"`
	VisitorID *uint `gorm:"index;column:visitor_id" json:"visitor_id,omitempty"`

	Admin   *Admin   `gorm:"foreignKey:AdminID;references:ID" json:"admin,omitempty"`
	Visitor *Visitor `gorm:"foreignKey:VisitorID;references:ID" json:"visitor,omitempty"`
}

// AuthorDisplay returns the author kind ("Admin" or "Visitor") and display
// name of a highlight. When neither author relation is present (a
// data-integrity gap, not a supported state) it falls back to "Unknown".
func (h *Highlight) AuthorDisplay() (kind string, name string) {
	if h.Admin != nil {
		return "Admin", h.Admin.User.FullName
	}
	if h.Visitor != nil {
		return "Visitor", h.Visitor.User.FullName
	}
	return "Visitor", "Unknown"
}

// AuthorEmail returns the author's account email, or empty when unresolvable.
func (h *Highlight) AuthorEmail() string {
	if h.Admin != nil {
		return h.Admin.User.Email
	}
	if h.Visitor != nil {
		return h.Visitor.User.Email
	}
	return ""
}
