package usecase

import (
	"context"

	"biolink/internal/usecase/slug"
)

type SlugAvailabilityUsecase interface {
	CheckAvailability(ctx context.Context, candidate string) (slug.Result, error)
}

var _ SlugAvailabilityUsecase = (*slug.Service)(nil)
