package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/dto"
	"biolink/internal/delivery/http/middleware"
	domain "biolink/internal/domain/profile"
	"biolink/internal/pkg/response"
	"biolink/internal/usecase"
	ucprofile "biolink/internal/usecase/profile"
	"biolink/internal/usecase/slug"
)

type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	window time.Duration
}

// NewProfileHandler takes the reservation window so signup responses can
// tell the client how long its slug is held.
func NewProfileHandler(uc usecase.ProfileUsecase, window time.Duration) *ProfileHandler {
	if window <= 0 {
		window = slug.DefaultReservationWindow
	}
	return &ProfileHandler{uc: uc, window: window}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:slug", h.GetPublic)
	r.Post("/", h.Signup)
}

func (h *ProfileHandler) GetPublic(c fiber.Ctx) error {
	pub, err := h.uc.GetPublic(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, pub)
}

func (h *ProfileHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	in := ucprofile.SignupInput{
		Slug:      req.Slug,
		FullName:  req.FullName,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
	}
	for _, b := range req.Buttons {
		in.Buttons = append(in.Buttons, ucprofile.ButtonInput{Kind: b.Kind, Label: b.Label, Value: b.Value})
	}

	rec, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return mapSignupError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.SignupResponse{
		ID:            rec.ID,
		Slug:          rec.Slug,
		Status:        string(rec.Status),
		CreatedAt:     rec.CreatedAt,
		ReservedUntil: rec.CreatedAt.Add(h.window),
	})
}

func mapSignupError(err error) error {
	var invalid *ucprofile.InvalidInputError
	if errors.As(err, &invalid) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", dto.ValidationErrorResponse{Fields: invalid.Fields}, err)
	}
	if errors.Is(err, ucprofile.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	var unavailable *ucprofile.UnavailableError
	if errors.As(err, &unavailable) {
		res := unavailable.Result
		return middleware.NewAppError(fiber.StatusConflict, res.Message, dto.SlugConflictResponse{Reason: string(res.Reason)}, err)
	}

	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
