package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileButton struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type SignupRequest struct {
	Slug      string          `json:"slug"`
	FullName  string          `json:"full_name"`
	Specialty string          `json:"specialty"`
	Bio       string          `json:"bio"`
	PhotoURL  string          `json:"photo_url"`
	Buttons   []ProfileButton `json:"buttons"`
}

type SignupResponse struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	// ReservedUntil is when the slug stops being held for this signup.
	ReservedUntil time.Time `json:"reserved_until"`
}

type SlugConflictResponse struct {
	Reason string `json:"reason"`
}

type ValidationErrorResponse struct {
	Fields map[string]string `json:"fields"`
}
