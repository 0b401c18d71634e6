package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
)

// LoyaltyGateway carries the write operations. It is satisfied by the
// service itself and by the Kafka request/reply gateway.
type LoyaltyGateway interface {
	RegisterCustomer(ctx context.Context, phone, name string) (*domain.Customer, error)
	RegisterBusiness(ctx context.Context, phone, name, category string, pointsPerVisit int) (*domain.Business, error)
	CheckIn(ctx context.Context, customerPhone string, businessID uuid.UUID, points int) (*domain.Visit, error)
}

// PointsCache holds points summaries keyed by phone. Every invalidation
// bumps the phone's generation; SetPoints stores a summary only while the
// generation observed by the matching GetPoints is still current, so a
// summary read before a write can never land after that write's
// invalidation.
type PointsCache interface {
	GetPoints(ctx context.Context, phone string) (*domain.PointsSummary, int64, error)
	SetPoints(ctx context.Context, summary domain.PointsSummary, generation int64) error
	InvalidatePoints(ctx context.Context, phone string) error
}

// NopCache is used when no cache is configured. Every lookup misses.
type NopCache struct{}

func (NopCache) GetPoints(context.Context, string) (*domain.PointsSummary, int64, error) {
	return nil, 0, nil
}
func (NopCache) SetPoints(context.Context, domain.PointsSummary, int64) error { return nil }
func (NopCache) InvalidatePoints(context.Context, string) error { return nil }
