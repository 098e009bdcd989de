package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"biolink/internal/delivery/http/dto"
	"biolink/internal/delivery/http/middleware"
	"biolink/internal/pkg/logger"
	"biolink/internal/pkg/response"
	"biolink/internal/usecase"
)

const (
	msgSlugRequired     = "El parámetro slug es requerido"
	msgAvailabilityDown = "No se pudo verificar la disponibilidad del slug, intenta de nuevo"
)

// SlugHandler answers the public availability check. Unlike the /api/v1
// endpoints it replies with bare JSON bodies consumed by the signup form.
type SlugHandler struct {
	uc     usecase.SlugAvailabilityUsecase
	logger *logrus.Logger
}

func NewSlugHandler(uc usecase.SlugAvailabilityUsecase, log *logrus.Logger) *SlugHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &SlugHandler{uc: uc, logger: log}
}

func (h *SlugHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/availability", h.CheckAvailability)
}

// CheckAvailability reports validation and lookup outcomes as 200 so the
// client can render them inline. Only a missing slug (400) and a store
// failure (500) leave the 200 path.
func (h *SlugHandler) CheckAvailability(c fiber.Ctx) error {
	candidate := c.Query("slug")
	if candidate == "" {
		return response.Bare(c, fiber.StatusBadRequest, msgSlugRequired)
	}

	res, err := h.uc.CheckAvailability(c.Context(), candidate)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"slug": candidate,
			"rid":  c.GetRespHeader(middleware.HeaderRequestID),
		}).Error("[Slug] availability check failed")
		return response.Bare(c, fiber.StatusInternalServerError, msgAvailabilityDown)
	}

	return c.Status(fiber.StatusOK).JSON(dto.SlugAvailabilityResponse{
		Available: res.Available,
		Message:   res.Message,
	})
}
