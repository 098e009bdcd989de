package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "biolink/internal/domain/profile"
	"biolink/internal/infrastructure/cache"
	"biolink/internal/pkg/clock"
	"biolink/internal/pkg/logger"
	"biolink/internal/usecase/slug"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSlugUnavailable = errors.New("slug unavailable")
)

// InvalidInputError lists offending fields with the rule they broke.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %d field(s)", len(e.Fields))
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnavailableError carries the availability result that blocked a signup.
type UnavailableError struct {
	Result slug.Result
}

func (e *UnavailableError) Error() string {
	return "slug unavailable: " + string(e.Result.Reason)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrSlugUnavailable
}

type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, candidate string) (slug.Result, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Public is the part of a profile shown on its public page.
type Public struct {
	ID        uuid.UUID       `json:"id"`
	Slug      string          `json:"slug"`
	FullName  string          `json:"full_name"`
	Specialty string          `json:"specialty"`
	Bio       string          `json:"bio"`
	PhotoURL  string          `json:"photo_url"`
	Buttons   []domain.Button `json:"buttons"`
}

type ButtonInput struct {
	Kind  string `validate:"required,oneof=whatsapp phone email booking website"`
	Label string `validate:"max=40"`
	Value string `validate:"required,max=300"`
}

type SignupInput struct {
	Slug      string        `validate:"required,slug"`
	FullName  string        `validate:"required,max=120"`
	Specialty string        `validate:"max=120"`
	Bio       string        `validate:"max=600"`
	PhotoURL  string        `validate:"omitempty,url,max=500"`
	Buttons   []ButtonInput `validate:"max=12,dive"`
}

type Service struct {
	repo     domain.Repository
	slugs    AvailabilityChecker
	cache    Cache
	clock    clock.Clock
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewService(repo domain.Repository, slugs AvailabilityChecker, c Cache, clk clock.Clock, log *logrus.Logger) *Service {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:     repo,
		slugs:    slugs,
		cache:    c,
		clock:    clk,
		validate: newValidator(),
		logger:   log,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		_, ok := slug.Validate(fl.Field().String())
		return ok
	})
	return v
}

// GetPublic returns the active profile published under slug.
func (s *Service) GetPublic(ctx context.Context, slugValue string) (Public, error) {
	if _, ok := slug.Validate(slugValue); !ok {
		return Public{}, domain.ErrNotFound
	}

	key := cache.PublicProfileKey(slugValue)
	if s.cache != nil {
		var cached Public
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	rec, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return Public{}, err
	}
	if rec == nil || rec.Status != domain.StatusActive {
		return Public{}, domain.ErrNotFound
	}

	pub := toPublic(*rec)
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, pub, 0); err != nil {
			s.logger.WithError(err).WithField("slug", slugValue).Debug("[Profile] cache set failed")
		}
	}
	return pub, nil
}

// Signup opens a pending_payment reservation for in.Slug. The availability
// check is repeated here but stays advisory: a concurrent signup may pass it
// too, and activation is where the store settles the race.
func (s *Service) Signup(ctx context.Context, in SignupInput) (domain.Record, error) {
	in = normalizeSignup(in)
	if err := s.validate.Struct(in); err != nil {
		return domain.Record{}, invalidInput(err)
	}

	res, err := s.slugs.CheckAvailability(ctx, in.Slug)
	if err != nil {
		return domain.Record{}, err
	}
	if !res.Available {
		return domain.Record{}, &UnavailableError{Result: res}
	}

	rec := domain.Record{
		ID:        uuid.New(),
		Slug:      in.Slug,
		FullName:  in.FullName,
		Specialty: in.Specialty,
		Bio:       in.Bio,
		PhotoURL:  in.PhotoURL,
		Buttons:   toButtons(in.Buttons),
		Status:    domain.StatusPendingPayment,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrSlugConflict) {
			return domain.Record{}, &UnavailableError{Result: slug.ResultFor(slug.ReasonInUse)}
		}
		return domain.Record{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": rec.ID.String(),
		"slug":       rec.Slug,
	}).Info("[Profile] reservation created")
	return rec, nil
}

// Activate confirms payment for a pending reservation.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	rec, err := s.repo.Activate(ctx, id, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrSlugConflict) {
			s.logger.WithField("profile_id", id.String()).Warn("[Profile] activation lost slug race")
		}
		return domain.Record{}, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.PublicProfileKey(rec.Slug)); err != nil {
			s.logger.WithError(err).WithField("slug", rec.Slug).Warn("[Profile] cache invalidation failed")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": rec.ID.String(),
		"slug":       rec.Slug,
	}).Info("[Profile] profile activated")
	return rec, nil
}

// StaleReservations lists pending_payment records old enough that their slug
// is released.
func (s *Service) StaleReservations(ctx context.Context, window time.Duration, limit int) ([]domain.Record, error) {
	return s.repo.ListStaleReservations(ctx, s.clock.Now().Add(-window), limit)
}

func normalizeSignup(in SignupInput) SignupInput {
	in.Slug = strings.TrimSpace(in.Slug)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Bio = strings.TrimSpace(in.Bio)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	in.Buttons = append([]ButtonInput(nil), in.Buttons...)
	for i := range in.Buttons {
		in.Buttons[i].Kind = strings.ToLower(strings.TrimSpace(in.Buttons[i].Kind))
		in.Buttons[i].Label = strings.TrimSpace(in.Buttons[i].Label)
		in.Buttons[i].Value = strings.TrimSpace(in.Buttons[i].Value)
	}
	return in
}

func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.TrimPrefix(fe.Namespace(), "SignupInput.")] = fe.Tag()
	}
	return &InvalidInputError{Fields: fields}
}

func toButtons(in []ButtonInput) []domain.Button {
	out := make([]domain.Button, 0, len(in))
	for _, b := range in {
		out = append(out, domain.Button{
			Kind:  domain.ButtonKind(b.Kind),
			Label: b.Label,
			Value: b.Value,
		})
	}
	return out
}

func toPublic(r domain.Record) Public {
	buttons := r.Buttons
	if buttons == nil {
		buttons = []domain.Button{}
	}
	return Public{
		ID:        r.ID,
		Slug:      r.Slug,
		FullName:  r.FullName,
		Specialty: r.Specialty,
		Bio:       r.Bio,
		PhotoURL:  r.PhotoURL,
		Buttons:   buttons,
	}
}
