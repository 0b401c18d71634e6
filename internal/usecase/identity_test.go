package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
)

func TestResolveIdentity_CustomerFound(t *testing.T) {
	id := uuid.New()
	store := &mockStore{
		getCustomerByPhoneFn: func(ctx context.Context, phone string) (db.Customer, error) {
			if phone != "9876543210" {
				t.Fatalf("expected trimmed phone, got %q", phone)
			}
			return db.Customer{ID: id, PhoneNumber: phone, Name: "Asha"}, nil
		},
	}

	svc := NewLoyaltyService(store)
	ident, err := svc.ResolveIdentity(context.Background(), " 9876543210 ", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ident.Role != domain.RoleCustomer || ident.Customer == nil || ident.Business != nil {
		t.Fatalf("expected customer identity, got %+v", ident)
	}
	if ident.Customer.ID != id {
		t.Fatalf("expected id %s, got %s", id, ident.Customer.ID)
	}
}

func TestResolveIdentity_NotFound(t *testing.T) {
	svc := NewLoyaltyService(&mockStore{})

	_, err := svc.ResolveIdentity(context.Background(), "9876543210", domain.RoleCustomer)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.ResolveIdentity(context.Background(), "9876543210", domain.RoleBusiness)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveIdentity_BusinessFound(t *testing.T) {
	store := &mockStore{
		getBusinessByPhoneFn: func(ctx context.Context, phone string) (db.Business, error) {
			return db.Business{ID: uuid.New(), OwnerPhone: phone, Name: "Glow Salon", Type: db.BusinessTypeSalon, PointsPerVisit: 10}, nil
		},
	}

	svc := NewLoyaltyService(store)
	ident, err := svc.ResolveIdentity(context.Background(), "9123456780", domain.RoleBusiness)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ident.Business == nil || ident.Business.Category != domain.CategorySalon {
		t.Fatalf("expected salon business, got %+v", ident.Business)
	}
}

func TestResolveIdentity_Invalid(t *testing.T) {
	svc := NewLoyaltyService(failingStore(t))

	if _, err := svc.ResolveIdentity(context.Background(), "12345", domain.RoleCustomer); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short phone, got %v", err)
	}
	if _, err := svc.ResolveIdentity(context.Background(), "9876543210", domain.Role("admin")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestResolveIdentity_StoreFailure(t *testing.T) {
	store := &mockStore{
		getCustomerByPhoneFn: func(ctx context.Context, phone string) (db.Customer, error) {
			return db.Customer{}, errors.New("connection refused")
		},
	}

	svc := NewLoyaltyService(store)
	_, err := svc.ResolveIdentity(context.Background(), "9876543210", domain.RoleCustomer)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestRegisterCustomer_Success(t *testing.T) {
	store := &mockStore{
		createCustomerFn: func(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
			if arg.Name != "Asha" {
				t.Fatalf("expected trimmed name, got %q", arg.Name)
			}
			return db.Customer{ID: uuid.New(), PhoneNumber: arg.PhoneNumber, Name: arg.Name}, nil
		},
	}

	svc := NewLoyaltyService(store)
	c, err := svc.RegisterCustomer(context.Background(), "9876543210", "  Asha ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.PhoneNumber != "9876543210" {
		t.Fatalf("expected phone 9876543210, got %s", c.PhoneNumber)
	}
}

func TestRegisterCustomer_Duplicate(t *testing.T) {
	store := &mockStore{
		createCustomerFn: func(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
			return db.Customer{}, errors.New("duplicate key value violates unique constraint")
		},
	}

	svc := NewLoyaltyService(store)
	_, err := svc.RegisterCustomer(context.Background(), "9876543210", "Asha")
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestRegisterCustomer_Invalid(t *testing.T) {
	svc := NewLoyaltyService(failingStore(t))

	if _, err := svc.RegisterCustomer(context.Background(), "98765", "Asha"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short phone, got %v", err)
	}
	if _, err := svc.RegisterCustomer(context.Background(), "9876543210", "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}
}

func TestRegisterBusiness_DefaultPoints(t *testing.T) {
	var got db.CreateBusinessParams
	store := &mockStore{
		createBusinessFn: func(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error) {
			got = arg
			return db.Business{ID: uuid.New(), OwnerPhone: arg.OwnerPhone, Name: arg.Name, Type: arg.Type, PointsPerVisit: arg.PointsPerVisit}, nil
		},
	}

	svc := NewLoyaltyService(store)
	b, err := svc.RegisterBusiness(context.Background(), "9123456780", "Glow Salon", "Salon", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Type != db.BusinessTypeSalon {
		t.Fatalf("expected type salon, got %s", got.Type)
	}
	if b.PointsPerVisit != domain.DefaultPointsPerVisit {
		t.Fatalf("expected default %d points, got %d", domain.DefaultPointsPerVisit, b.PointsPerVisit)
	}
}

func TestRegisterBusiness_Invalid(t *testing.T) {
	svc := NewLoyaltyService(failingStore(t))

	if _, err := svc.RegisterBusiness(context.Background(), "9123456780", "Glow", "gym", 10); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown category, got %v", err)
	}
	if _, err := svc.RegisterBusiness(context.Background(), "9123456780", "Glow", "salon", 101); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for points above policy, got %v", err)
	}
}

func TestRegisterBusiness_Duplicate(t *testing.T) {
	store := &mockStore{
		createBusinessFn: func(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error) {
			return db.Business{}, errors.New("duplicate key value violates unique constraint")
		},
	}

	svc := NewLoyaltyService(store)
	_, err := svc.RegisterBusiness(context.Background(), "9123456780", "Glow Salon", "salon", 10)
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestGetBusiness_NotFound(t *testing.T) {
	store := &mockStore{
		getBusinessByIDFn: func(ctx context.Context, id uuid.UUID) (db.Business, error) {
			return db.Business{}, pgx.ErrNoRows
		},
	}

	svc := NewLoyaltyService(store)
	_, err := svc.GetBusiness(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}
