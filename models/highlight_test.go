package models

import "testing"

func TestAuthorDisplay(t *testing.T) {
	adminAuthored := Highlight{
		Admin: &Admin{User: User{FullName: "Admin User"}},
	}
	if kind, name := adminAuthored.AuthorDisplay(); kind != "Admin" || name != "Admin User" {
		t.Errorf("admin-authored: got (%q, %q)", kind, name)
	}

	visitorAuthored := Highlight{
		Visitor: &Visitor{User: User{FullName: "Sara Noor"}},
	}
	if kind, name := visitorAuthored.AuthorDisplay(); kind != "Visitor" || name != "Sara Noor" {
		t.Errorf("visitor-authored: got (%q, %q)", kind, name)
	}

	orphan := Highlight{}
	if kind, name := orphan.AuthorDisplay(); kind != "Visitor" || name != "Unknown" {
		t.Errorf("orphan highlight must fall back to Unknown, got (%q, %q)", kind, name)
	}
}

func TestVisitorFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Sara", "Noor", "Sara Noor"},
		{"Sara", "", "Sara"},
		{"", "Noor", "Noor"},
		{"", "", ""},
	}
	for _, tt := range tests {
		v := Visitor{FirstName: tt.first, LastName: tt.last}
		if got := v.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{BookingPending, BookingConfirmed, BookingCancelled} {
		if !ValidBookingStatus(s) {
			t.Errorf("%q should be a valid booking status", s)
		}
	}
	for _, s := range []string{"", "pending", "Done", "CANCELLED"} {
		if ValidBookingStatus(s) {
			t.Errorf("%q should not be a valid booking status", s)
		}
	}
}
