package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("profile not found")
	// ErrSlugConflict is returned when the store's active-slug uniqueness
	// constraint rejects a write.
	ErrSlugConflict = errors.New("slug already active")
	ErrNotPending   = errors.New("profile is not pending payment")
)

type Repository interface {
	// FindBySlug returns the most relevant record for slug, or nil when none
	// exists.
	FindBySlug(ctx context.Context, slug string) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (Record, error)
	Create(ctx context.Context, r Record) error
	Activate(ctx context.Context, id uuid.UUID, at time.Time) (Record, error)
	ListStaleReservations(ctx context.Context, createdBefore time.Time, limit int) ([]Record, error)
}
