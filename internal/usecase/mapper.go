package usecase

import (
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
)

func toCustomer(c db.Customer) domain.Customer {
	return domain.Customer{
		ID:          c.ID,
		PhoneNumber: c.PhoneNumber,
		Name:        c.Name,
		CreatedAt:   c.CreatedAt.Time,
	}
}

func toBusiness(b db.Business) domain.Business {
	return domain.Business{
		ID:             b.ID,
		OwnerPhone:     b.OwnerPhone,
		Name:           b.Name,
		Category:       domain.Category(b.Type),
		PointsPerVisit: int(b.PointsPerVisit),
		CreatedAt:      b.CreatedAt.Time,
	}
}

func toVisit(v db.Visit) domain.Visit {
	return domain.Visit{
		ID:           v.ID,
		CustomerID:   v.CustomerID,
		BusinessID:   v.BusinessID,
		PointsEarned: int(v.PointsEarned),
		VisitDate:    v.VisitDate.Time,
	}
}

func toReward(r db.Reward) domain.Reward {
	return domain.Reward{
		ID:             r.ID,
		BusinessID:     r.BusinessID,
		Name:           r.Name,
		Description:    r.Description,
		PointsRequired: int(r.PointsRequired),
		Active:         r.IsActive,
		CreatedAt:      r.CreatedAt.Time,
	}
}

func toRedemption(r db.Redemption) domain.Redemption {
	return domain.Redemption{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		RewardID:    r.RewardID,
		BusinessID:  r.BusinessID,
		PointsSpent: int(r.PointsSpent),
		RedeemedAt:  r.RedeemedAt.Time,
	}
}

func toPointsSummary(p db.CustomerPoint) domain.PointsSummary {
	return domain.PointsSummary{
		PhoneNumber:         p.PhoneNumber,
		Name:                p.Name,
		AvailablePoints:     int(p.AvailablePoints),
		TotalPointsEarned:   int(p.TotalPointsEarned),
		TotalPointsRedeemed: int(p.TotalPointsRedeemed),
		TotalVisits:         int(p.TotalVisits),
	}
}

func toAnalytics(a db.BusinessAnalytic) domain.BusinessAnalytics {
	return domain.BusinessAnalytics{
		BusinessID:        a.BusinessID,
		TotalCustomers:    int(a.TotalCustomers),
		TotalVisits:       int(a.TotalVisits),
		AvgPointsPerVisit: a.AvgPointsPerVisit,
		TotalRedemptions:  int(a.TotalRedemptions),
	}
}
