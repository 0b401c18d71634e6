package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/insight"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
	"github.com/loyaltyhub/loyalty-points/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const DefaultStoreTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/loyaltyhub/loyalty-points/internal/usecase")

type LoyaltyService struct {
	store    repository.Store
	cache    PointsCache
	insights *insight.Engine
	metrics  *telemetry.Metrics
	policy   domain.Policy
	timeout  time.Duration
}

type Option func(*LoyaltyService)

func WithCache(c PointsCache) Option {
	return func(s *LoyaltyService) { s.cache = c }
}

func WithInsights(e *insight.Engine) Option {
	return func(s *LoyaltyService) { s.insights = e }
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *LoyaltyService) { s.metrics = m }
}

func WithPolicy(p domain.Policy) Option {
	return func(s *LoyaltyService) { s.policy = p }
}

// WithStoreTimeout bounds every operation's round trips to the store.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *LoyaltyService) { s.timeout = d }
}

func NewLoyaltyService(store repository.Store, opts ...Option) *LoyaltyService {
	s := &LoyaltyService{
		store:   store,
		cache:   NopCache{},
		policy:  domain.DefaultPolicy(),
		timeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.insights == nil {
		s.insights = insight.Default()
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewMetrics(prometheus.NewRegistry())
	}
	return s
}

func (s *LoyaltyService) Policy() domain.Policy {
	return s.policy
}

// begin starts a span and a store deadline for op. The returned func must be
// deferred with a pointer to the operation's named error.
func (s *LoyaltyService) begin(ctx context.Context, op string) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "loyalty."+op)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return ctx, func(errp *error) {
		cancel()
		if err := *errp; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.Observe(op, start)
	}
}

var businessErrors = []error{
	domain.ErrValidation,
	domain.ErrNotFound,
	domain.ErrDuplicateKey,
	domain.ErrCustomerNotFound,
	domain.ErrBusinessNotFound,
	domain.ErrRewardNotFound,
	domain.ErrRewardInactive,
	domain.ErrInsufficientPoints,
	domain.ErrPersistence,
}

// storeErr passes typed outcomes through and tags everything else as a
// persistence failure.
func storeErr(op string, err error) error {
	for _, known := range businessErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrRewardNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrRewardInactive), errors.Is(err, domain.ErrInsufficientPoints):
		return "rejected"
	default:
		return "error"
	}
}

func (s *LoyaltyService) invalidatePoints(ctx context.Context, phone string) {
	if err := s.cache.InvalidatePoints(ctx, phone); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("phone", phone).Msg("failed to invalidate cached points")
	}
}
