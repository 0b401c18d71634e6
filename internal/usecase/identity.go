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

// ResolveIdentity looks up the customer or business keyed by phone. A miss
// returns domain.ErrNotFound, which callers route to registration.
func (s *LoyaltyService) ResolveIdentity(ctx context.Context, phone string, role domain.Role) (_ *domain.Identity, err error) {
	phone = domain.NormalizePhone(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := domain.ValidateRole(role); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "resolve_identity")
	defer done(&err)

	switch role {
	case domain.RoleCustomer:
		c, err := s.store.GetCustomerByPhone(ctx, phone)
		if err != nil {
			if repository.IsNoRows(err) {
				return nil, domain.ErrNotFound
			}
			return nil, storeErr("get customer", err)
		}
		customer := toCustomer(c)
		return &domain.Identity{Role: role, Customer: &customer}, nil
	default:
		b, err := s.store.GetBusinessByPhone(ctx, phone)
		if err != nil {
			if repository.IsNoRows(err) {
				return nil, domain.ErrNotFound
			}
			return nil, storeErr("get business", err)
		}
		business := toBusiness(b)
		return &domain.Identity{Role: role, Business: &business}, nil
	}
}

func (s *LoyaltyService) GetBusiness(ctx context.Context, id uuid.UUID) (_ *domain.Business, err error) {
	ctx, done := s.begin(ctx, "get_business")
	defer done(&err)

	b, err := s.store.GetBusinessByID(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, storeErr("get business", err)
	}
	business := toBusiness(b)
	return &business, nil
}

func (s *LoyaltyService) RegisterCustomer(ctx context.Context, phone, name string) (_ *domain.Customer, err error) {
	defer func() {
		s.metrics.Registrations.WithLabelValues(string(domain.RoleCustomer), outcome(err)).Inc()
	}()

	phone = domain.NormalizePhone(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "register_customer")
	defer done(&err)

	c, err := s.store.CreateCustomer(ctx, db.CreateCustomerParams{
		PhoneNumber: phone,
		Name:        strings.TrimSpace(name),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, storeErr("create customer", err)
	}

	customer := toCustomer(c)
	log.Ctx(ctx).Info().Str("customer_id", customer.ID.String()).Msg("customer registered")
	return &customer, nil
}

// RegisterBusiness creates a business. A pointsPerVisit of zero selects the
// configured default.
func (s *LoyaltyService) RegisterBusiness(ctx context.Context, phone, name, category string, pointsPerVisit int) (_ *domain.Business, err error) {
	defer func() {
		s.metrics.Registrations.WithLabelValues(string(domain.RoleBusiness), outcome(err)).Inc()
	}()

	phone = domain.NormalizePhone(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if pointsPerVisit == 0 {
		pointsPerVisit = s.policy.DefaultPointsPerVisit
	}
	if err := s.policy.ValidatePoints(pointsPerVisit); err != nil {
		return nil, err
	}

	ctx, done := s.begin(ctx, "register_business")
	defer done(&err)

	b, err := s.store.CreateBusiness(ctx, db.CreateBusinessParams{
		OwnerPhone:     phone,
		Name:           strings.TrimSpace(name),
		Type:           db.BusinessType(cat),
		PointsPerVisit: int32(pointsPerVisit),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, storeErr("create business", err)
	}

	business := toBusiness(b)
	log.Ctx(ctx).Info().
		Str("business_id", business.ID.String()).
		Str("type", string(business.Category)).
		Msg("business registered")
	return &business, nil
}
