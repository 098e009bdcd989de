package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"biolink/internal/domain/profile"
	"biolink/internal/pkg/clock"
	"biolink/internal/pkg/logger"
)

const (
	MinLength = 3
	MaxLength = 50

	DefaultReservationWindow = 20 * time.Minute
	DefaultLookupTimeout     = 3 * time.Second
)

type Reason string

const (
	ReasonAvailable             Reason = "available"
	ReasonInvalidCharacters     Reason = "invalid_characters"
	ReasonInvalidLength         Reason = "invalid_length"
	ReasonInUse                 Reason = "slug_in_use"
	ReasonReservationInProgress Reason = "reservation_in_progress"
)

var messages = map[Reason]string{
	ReasonAvailable:             "Slug disponible",
	ReasonInvalidCharacters:     "El slug solo puede contener letras minúsculas, números y guiones",
	ReasonInvalidLength:         "El slug debe tener entre 3 y 50 caracteres",
	ReasonInUse:                 "Este slug ya está en uso",
	ReasonReservationInProgress: "Este slug está siendo usado en este momento, intenta de nuevo en unos minutos",
}

// ErrStoreUnavailable means availability could not be determined. Callers
// must not report it as "taken".
var ErrStoreUnavailable = errors.New("slug store unavailable")

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Result is advisory. It does not reserve anything: two callers can both
// see Available for the same slug, and the store's uniqueness constraint
// decides which signup wins.
type Result struct {
	Available bool
	Reason    Reason
	Message   string
}

func newResult(available bool, reason Reason) Result {
	return Result{Available: available, Reason: reason, Message: messages[reason]}
}

// ResultFor builds the result reported for reason.
func ResultFor(reason Reason) Result {
	return newResult(reason == ReasonAvailable, reason)
}

type Finder interface {
	FindBySlug(ctx context.Context, slug string) (*profile.Record, error)
}

type Service struct {
	repo          Finder
	clock         clock.Clock
	window        time.Duration
	lookupTimeout time.Duration
	logger        *logrus.Logger
}

type Option func(*Service)

// WithReservationWindow overrides how long a pending_payment record blocks
// its slug.
func WithReservationWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.window = d
		}
	}
}

func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(repo Finder, clk clock.Clock, opts ...Option) *Service {
	if clk == nil {
		clk = clock.NewSystem()
	}
	s := &Service{
		repo:          repo,
		clock:         clk,
		window:        DefaultReservationWindow,
		lookupTimeout: DefaultLookupTimeout,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate applies the format and length rules in order. It returns the
// negative result and false for the first rule that fails.
func Validate(candidate string) (Result, bool) {
	if !slugPattern.MatchString(candidate) {
		return newResult(false, ReasonInvalidCharacters), false
	}
	// Only ASCII passes the pattern, so byte length is character length.
	if n := len(candidate); n < MinLength || n > MaxLength {
		return newResult(false, ReasonInvalidLength), false
	}
	return Result{}, true
}

// Decide computes availability from the existing record for a slug, if any.
// A pending_payment record blocks the slug while it is younger than window;
// the boundary itself is already released.
func Decide(rec *profile.Record, now time.Time, window time.Duration) Result {
	if rec == nil {
		return newResult(true, ReasonAvailable)
	}

	switch rec.Status {
	case profile.StatusActive:
		return newResult(false, ReasonInUse)
	case profile.StatusPendingPayment:
		if now.Sub(rec.CreatedAt) < window {
			return newResult(false, ReasonReservationInProgress)
		}
		return newResult(true, ReasonAvailable)
	case profile.StatusInactive:
		// A deactivated page gives its slug back.
		return newResult(true, ReasonAvailable)
	case profile.StatusCancelled:
		// The signup never completed payment, or was refunded.
		return newResult(true, ReasonAvailable)
	default:
		// Unknown statuses are logged by CheckAvailability and released.
		return newResult(true, ReasonAvailable)
	}
}

func (s *Service) CheckAvailability(ctx context.Context, candidate string) (Result, error) {
	if res, ok := Validate(candidate); !ok {
		return res, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	rec, err := s.repo.FindBySlug(lookupCtx, candidate)
	if err != nil {
		return Result{}, fmt.Errorf("%w: find by slug: %w", ErrStoreUnavailable, err)
	}

	if rec != nil && !rec.Status.Known() {
		s.logger.WithFields(logrus.Fields{
			"slug":       candidate,
			"profile_id": rec.ID.String(),
			"status":     string(rec.Status),
		}).Warn("[Slug] unrecognised profile status treated as released")
	}

	return Decide(rec, s.clock.Now(), s.window), nil
}

// Window reports the configured reservation window.
func (s *Service) Window() time.Duration {
	return s.window
}
