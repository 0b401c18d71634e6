package usecase

import (
	"context"

	"github.com/google/uuid"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
	"github.com/rs/zerolog/log"
)

// CheckIn records a visit for the customer registered under customerPhone
// and credits points to the customer/business relation. The visit insert and
// the relation increment commit together or not at all. An unknown phone
// fails with domain.ErrCustomerNotFound before anything is written.
func (s *LoyaltyService) CheckIn(ctx context.Context, customerPhone string, businessID uuid.UUID, points int) (_ *domain.Visit, err error) {
	defer func() {
		s.metrics.CheckIns.WithLabelValues(outcome(err)).Inc()
	}()

	phone := domain.NormalizePhone(customerPhone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := s.policy.ValidatePoints(points); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "check_in")
	defer done(&err)

	var visit db.Visit
	var relation db.CustomerBusiness
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		customer, err := q.GetCustomerByPhone(ctx, phone)
		if err != nil {
			if repository.IsNoRows(err) {
				return domain.ErrCustomerNotFound
			}
			return err
		}

		if _, err := q.GetBusinessByID(ctx, businessID); err != nil {
			if repository.IsNoRows(err) {
				return domain.ErrBusinessNotFound
			}
			return err
		}

		visit, err = q.InsertVisit(ctx, db.InsertVisitParams{
			CustomerID:   customer.ID,
			BusinessID:   businessID,
			PointsEarned: int32(points),
		})
		if err != nil {
			return err
		}

		relation, err = q.UpsertCustomerBusiness(ctx, db.UpsertCustomerBusinessParams{
			CustomerID:        customer.ID,
			BusinessID:        businessID,
			TotalPointsEarned: int32(points),
		})
		return err
	})
	if err != nil {
		return nil, storeErr("check in", err)
	}

	s.invalidatePoints(ctx, phone)
	s.metrics.PointsAwarded.Add(float64(points))

	log.Ctx(ctx).Info().
		Str("visit_id", visit.ID.String()).
		Str("business_id", businessID.String()).
		Int("points", points).
		Int32("relation_visits", relation.TotalVisits).
		Int32("relation_points", relation.TotalPointsEarned).
		Msg("customer checked in")

	v := toVisit(visit)
	return &v, nil
}
