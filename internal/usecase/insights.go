package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"golang.org/x/sync/errgroup"
)

func (s *LoyaltyService) CustomerInsights(ctx context.Context, phone string) ([]string, error) {
	summary, err := s.GetCustomerPoints(ctx, phone)
	if err != nil {
		return nil, err
	}
	return s.insights.ForCustomer(*summary), nil
}

func (s *LoyaltyService) BusinessInsights(ctx context.Context, businessID uuid.UUID) ([]string, error) {
	analytics, err := s.GetBusinessAnalytics(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return s.insights.ForBusiness(*analytics), nil
}

// CustomerDashboard loads the points summary and the reward catalogue
// concurrently and derives eligibility and insights from them.
func (s *LoyaltyService) CustomerDashboard(ctx context.Context, phone string) (*domain.CustomerDashboard, error) {
	var (
		summary *domain.PointsSummary
		rewards []domain.RewardWithBusiness
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.GetCustomerPoints(gctx, phone)
		return err
	})
	g.Go(func() error {
		var err error
		rewards, err = s.ListActiveRewards(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.CustomerDashboard{
		Points:   *summary,
		Rewards:  eligibility(rewards, summary.AvailablePoints),
		Insights: s.insights.ForCustomer(*summary),
	}, nil
}
