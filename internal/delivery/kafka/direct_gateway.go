package kafka

import (
	"context"

	"github.com/google/uuid"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/usecase"
)

// DirectGateway calls the service in process when event-driven mode is off.
type DirectGateway struct {
	service usecase.LoyaltyGateway
}

func NewDirectGateway(service usecase.LoyaltyGateway) usecase.LoyaltyGateway {
	return &DirectGateway{service: service}
}

func (g *DirectGateway) RegisterCustomer(ctx context.Context, phone, name string) (*domain.Customer, error) {
	return g.service.RegisterCustomer(ctx, phone, name)
}

func (g *DirectGateway) RegisterBusiness(ctx context.Context, phone, name, category string, pointsPerVisit int) (*domain.Business, error) {
	return g.service.RegisterBusiness(ctx, phone, name, category, pointsPerVisit)
}

func (g *DirectGateway) CheckIn(ctx context.Context, customerPhone string, businessID uuid.UUID, points int) (*domain.Visit, error) {
	return g.service.CheckIn(ctx, customerPhone, businessID, points)
}
