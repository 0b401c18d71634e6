package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
	"github.com/rs/zerolog/log"
)

func (s *LoyaltyService) CreateReward(ctx context.Context, businessID uuid.UUID, name, description string, pointsRequired int) (_ *domain.Reward, err error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePointsRequired(pointsRequired); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "create_reward")
	defer done(&err)

	r, err := s.store.CreateReward(ctx, db.CreateRewardParams{
		BusinessID:     businessID,
		Name:           strings.TrimSpace(name),
		Description:    strings.TrimSpace(description),
		PointsRequired: int32(pointsRequired),
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, storeErr("create reward", err)
	}
	reward := toReward(r)
	return &reward, nil
}

// ListBusinessRewards returns the business's active rewards, cheapest first.
func (s *LoyaltyService) ListBusinessRewards(ctx context.Context, businessID uuid.UUID) (_ []domain.Reward, err error) {
	ctx, done := s.begin(ctx, "list_business_rewards")
	defer done(&err)

	rows, err := s.store.ListActiveRewardsByBusiness(ctx, businessID)
	if err != nil {
		return nil, storeErr("list business rewards", err)
	}
	rewards := make([]domain.Reward, 0, len(rows))
	for _, r := range rows {
		rewards = append(rewards, toReward(r))
	}
	return rewards, nil
}

// ListActiveRewards returns every active reward across businesses, cheapest
// first.
func (s *LoyaltyService) ListActiveRewards(ctx context.Context) (_ []domain.RewardWithBusiness, err error) {
	ctx, done := s.begin(ctx, "list_active_rewards")
	defer done(&err)

	rows, err := s.store.ListActiveRewards(ctx)
	if err != nil {
		return nil, storeErr("list active rewards", err)
	}
	rewards := make([]domain.RewardWithBusiness, 0, len(rows))
	for _, r := range rows {
		rewards = append(rewards, domain.RewardWithBusiness{
			Reward: domain.Reward{
				ID:             r.ID,
				BusinessID:     r.BusinessID,
				Name:           r.Name,
				Description:    r.Description,
				PointsRequired: int(r.PointsRequired),
				Active:         r.IsActive,
				CreatedAt:      r.CreatedAt.Time,
			},
			BusinessName:     r.BusinessName,
			BusinessCategory: domain.Category(r.BusinessType),
		})
	}
	return rewards, nil
}

// ListCustomerRewards annotates every active reward with whether the
// customer can redeem it now.
func (s *LoyaltyService) ListCustomerRewards(ctx context.Context, phone string) ([]domain.RewardEligibility, error) {
	summary, err := s.GetCustomerPoints(ctx, phone)
	if err != nil {
		return nil, err
	}
	rewards, err := s.ListActiveRewards(ctx)
	if err != nil {
		return nil, err
	}
	return eligibility(rewards, summary.AvailablePoints), nil
}

func eligibility(rewards []domain.RewardWithBusiness, available int) []domain.RewardEligibility {
	out := make([]domain.RewardEligibility, 0, len(rewards))
	for _, r := range rewards {
		needed := r.PointsRequired - available
		if needed < 0 {
			needed = 0
		}
		out = append(out, domain.RewardEligibility{
			Reward:       r.Reward,
			Eligible:     r.RedeemableWith(available),
			PointsNeeded: needed,
		})
	}
	return out
}

// RedeemReward spends the customer's points on a reward. The customer row is
// locked for the duration so concurrent redemptions cannot overspend.
func (s *LoyaltyService) RedeemReward(ctx context.Context, phone string, rewardID uuid.UUID) (_ *domain.Redemption, err error) {
	defer func() {
		s.metrics.Redemptions.WithLabelValues(outcome(err)).Inc()
	}()

	phone = domain.NormalizePhone(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "redeem_reward")
	defer done(&err)

	var redemption db.Redemption
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		customer, err := q.LockCustomerByPhone(ctx, phone)
		if err != nil {
			if repository.IsNoRows(err) {
				return domain.ErrCustomerNotFound
			}
			return err
		}

		row, err := q.GetRewardByID(ctx, rewardID)
		if err != nil {
			if repository.IsNoRows(err) {
				return domain.ErrRewardNotFound
			}
			return err
		}
		reward := toReward(row)
		if !reward.Active {
			return domain.ErrRewardInactive
		}

		points, err := q.GetCustomerPoints(ctx, phone)
		if err != nil {
			return err
		}
		if !reward.RedeemableWith(int(points.AvailablePoints)) {
			return domain.ErrInsufficientPoints
		}

		redemption, err = q.InsertRedemption(ctx, db.InsertRedemptionParams{
			CustomerID:  customer.ID,
			RewardID:    reward.ID,
			BusinessID:  reward.BusinessID,
			PointsSpent: int32(reward.PointsRequired),
		})
		return err
	})
	if err != nil {
		return nil, storeErr("redeem reward", err)
	}

	s.invalidatePoints(ctx, phone)
	log.Ctx(ctx).Info().
		Str("redemption_id", redemption.ID.String()).
		Str("reward_id", rewardID.String()).
		Int32("points_spent", redemption.PointsSpent).
		Msg("reward redeemed")

	r := toRedemption(redemption)
	return &r, nil
}
