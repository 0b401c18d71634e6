package usecase

import (
	"context"

	"github.com/google/uuid"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
	"github.com/rs/zerolog/log"
)

// GetCustomerPoints returns the customer's totals. A phone with no
// registration or no activity yields a zero summary.
func (s *LoyaltyService) GetCustomerPoints(ctx context.Context, phone string) (_ *domain.PointsSummary, err error) {
	phone = domain.NormalizePhone(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "get_customer_points")
	defer done(&err)

	cached, gen, cerr := s.cache.GetPoints(ctx, phone)
	if cerr != nil {
		log.Ctx(ctx).Warn().Err(cerr).Msg("points cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	row, err := s.store.GetCustomerPoints(ctx, phone)
	if err != nil {
		if repository.IsNoRows(err) {
			return &domain.PointsSummary{PhoneNumber: phone}, nil
		}
		return nil, storeErr("get customer points", err)
	}

	summary := toPointsSummary(row)
	if cerr == nil {
		if err := s.cache.SetPoints(ctx, summary, gen); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("points cache store failed")
		}
	}
	return &summary, nil
}

// GetBusinessAnalytics returns zeroes for a business with no visits.
func (s *LoyaltyService) GetBusinessAnalytics(ctx context.Context, businessID uuid.UUID) (_ *domain.BusinessAnalytics, err error) {
	ctx, done := s.begin(ctx, "get_business_analytics")
	defer done(&err)

	row, err := s.store.GetBusinessAnalytics(ctx, businessID)
	if err != nil {
		if repository.IsNoRows(err) {
			return &domain.BusinessAnalytics{BusinessID: businessID}, nil
		}
		return nil, storeErr("get business analytics", err)
	}
	analytics := toAnalytics(row)
	return &analytics, nil
}

// GetRecentVisits lists up to limit visits at the business, newest first.
func (s *LoyaltyService) GetRecentVisits(ctx context.Context, businessID uuid.UUID, limit int) (_ []domain.VisitWithCustomer, err error) {
	ctx, done := s.begin(ctx, "get_recent_visits")
	defer done(&err)

	rows, err := s.store.ListRecentVisitsByBusiness(ctx, db.ListRecentVisitsByBusinessParams{
		BusinessID: businessID,
		Limit:      int32(domain.ClampVisitsLimit(limit)),
	})
	if err != nil {
		return nil, storeErr("list recent visits", err)
	}

	visits := make([]domain.VisitWithCustomer, 0, len(rows))
	for _, r := range rows {
		visits = append(visits, domain.VisitWithCustomer{
			Visit: domain.Visit{
				ID:           r.ID,
				CustomerID:   r.CustomerID,
				BusinessID:   r.BusinessID,
				PointsEarned: int(r.PointsEarned),
				VisitDate:    r.VisitDate.Time,
			},
			CustomerName:  r.CustomerName,
			CustomerPhone: r.CustomerPhone,
		})
	}
	return visits, nil
}

// GetCustomerVisits lists the customer's whole visit history, newest first.
func (s *LoyaltyService) GetCustomerVisits(ctx context.Context, phone string) (_ []domain.VisitWithBusiness, err error) {
	phone = domain.NormalizePhone(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "get_customer_visits")
	defer done(&err)

	rows, err := s.store.ListVisitsByCustomerPhone(ctx, phone)
	if err != nil {
		return nil, storeErr("list customer visits", err)
	}

	visits := make([]domain.VisitWithBusiness, 0, len(rows))
	for _, r := range rows {
		visits = append(visits, domain.VisitWithBusiness{
			Visit: domain.Visit{
				ID:           r.ID,
				CustomerID:   r.CustomerID,
				BusinessID:   r.BusinessID,
				PointsEarned: int(r.PointsEarned),
				VisitDate:    r.VisitDate.Time,
			},
			BusinessName:     r.BusinessName,
			BusinessCategory: domain.Category(r.BusinessType),
		})
	}
	return visits, nil
}
