package profile

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	// StatusPendingPayment is a soft reservation: the slug is held while the
	// signup payment completes.
	StatusPendingPayment Status = "pending_payment"
	StatusActive         Status = "active"
	StatusInactive       Status = "inactive"
	StatusCancelled      Status = "cancelled"
)

// Known reports whether s is one of the statuses this service writes.
func (s Status) Known() bool {
	switch s {
	case StatusPendingPayment, StatusActive, StatusInactive, StatusCancelled:
		return true
	default:
		return false
	}
}

type ButtonKind string

const (
	ButtonWhatsApp ButtonKind = "whatsapp"
	ButtonPhone    ButtonKind = "phone"
	ButtonEmail    ButtonKind = "email"
	ButtonBooking  ButtonKind = "booking"
	ButtonWebsite  ButtonKind = "website"
)

// Button is one contact or booking link rendered on the public page.
type Button struct {
	Kind  ButtonKind `json:"kind"`
	Label string     `json:"label"`
	Value string     `json:"value"`
}

// Record is a stored profile. Slug is unique among active records only;
// abandoned pending_payment rows are kept.
type Record struct {
	ID          uuid.UUID
	Slug        string
	FullName    string
	Specialty   string
	Bio         string
	PhotoURL    string
	Buttons     []Button
	Status      Status
	CreatedAt   time.Time
	ActivatedAt *time.Time
}
