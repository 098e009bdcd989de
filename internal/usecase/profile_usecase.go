package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "biolink/internal/domain/profile"
	ucprofile "biolink/internal/usecase/profile"
)

type ProfileUsecase interface {
	GetPublic(ctx context.Context, slug string) (ucprofile.Public, error)
	Signup(ctx context.Context, in ucprofile.SignupInput) (domain.Record, error)
}

// ProfileOperations is what operator tooling needs on top of the public API.
type ProfileOperations interface {
	ProfileUsecase
	Activate(ctx context.Context, id uuid.UUID) (domain.Record, error)
	StaleReservations(ctx context.Context, window time.Duration, limit int) ([]domain.Record, error)
}

var _ ProfileOperations = (*ucprofile.Service)(nil)
