package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/middleware"
	"biolink/internal/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
}

// NewHealthHandler reports the database as required and the cache as
// optional: a cache outage is shown as "bypassed" and keeps the 200.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	}

	cacheState := "bypassed"
	if h.cache != nil && h.cache.Ping(ctx) == nil {
		cacheState = "up"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"database": "up", "cache": cacheState})
}
