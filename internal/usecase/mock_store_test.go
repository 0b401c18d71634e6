package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
)

type mockStore struct {
	execTxFn                 func(ctx context.Context, fn func(repository.Querier) error) error
	createCustomerFn         func(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error)
	createBusinessFn         func(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error)
	createRewardFn           func(ctx context.Context, arg db.CreateRewardParams) (db.Reward, error)
	getCustomerByPhoneFn     func(ctx context.Context, phone string) (db.Customer, error)
	lockCustomerByPhoneFn    func(ctx context.Context, phone string) (db.Customer, error)
	getBusinessByPhoneFn     func(ctx context.Context, phone string) (db.Business, error)
	getBusinessByIDFn        func(ctx context.Context, id uuid.UUID) (db.Business, error)
	getRewardByIDFn          func(ctx context.Context, id uuid.UUID) (db.Reward, error)
	getCustomerPointsFn      func(ctx context.Context, phone string) (db.CustomerPoint, error)
	getBusinessAnalyticsFn   func(ctx context.Context, id uuid.UUID) (db.BusinessAnalytic, error)
	insertVisitFn            func(ctx context.Context, arg db.InsertVisitParams) (db.Visit, error)
	upsertCustomerBusinessFn func(ctx context.Context, arg db.UpsertCustomerBusinessParams) (db.CustomerBusiness, error)
	insertRedemptionFn       func(ctx context.Context, arg db.InsertRedemptionParams) (db.Redemption, error)
	listRecentVisitsFn       func(ctx context.Context, arg db.ListRecentVisitsByBusinessParams) ([]db.ListRecentVisitsByBusinessRow, error)
	listCustomerVisitsFn     func(ctx context.Context, phone string) ([]db.ListVisitsByCustomerPhoneRow, error)
	listActiveRewardsFn      func(ctx context.Context) ([]db.ListActiveRewardsRow, error)
	listBusinessRewardsFn    func(ctx context.Context, id uuid.UUID) ([]db.Reward, error)
}

func (m *mockStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	if m.execTxFn != nil {
		return m.execTxFn(ctx, fn)
	}
	return fn(m)
}

func (m *mockStore) CreateCustomer(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
	if m.createCustomerFn != nil {
		return m.createCustomerFn(ctx, arg)
	}
	return db.Customer{ID: uuid.New(), PhoneNumber: arg.PhoneNumber, Name: arg.Name}, nil
}

func (m *mockStore) CreateBusiness(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error) {
	if m.createBusinessFn != nil {
		return m.createBusinessFn(ctx, arg)
	}
	return db.Business{ID: uuid.New(), OwnerPhone: arg.OwnerPhone, Name: arg.Name, Type: arg.Type, PointsPerVisit: arg.PointsPerVisit}, nil
}

func (m *mockStore) CreateReward(ctx context.Context, arg db.CreateRewardParams) (db.Reward, error) {
	if m.createRewardFn != nil {
		return m.createRewardFn(ctx, arg)
	}
	return db.Reward{ID: uuid.New(), BusinessID: arg.BusinessID, Name: arg.Name, PointsRequired: arg.PointsRequired, IsActive: true}, nil
}

func (m *mockStore) GetCustomerByPhone(ctx context.Context, phone string) (db.Customer, error) {
	if m.getCustomerByPhoneFn != nil {
		return m.getCustomerByPhoneFn(ctx, phone)
	}
	return db.Customer{}, pgx.ErrNoRows
}

func (m *mockStore) LockCustomerByPhone(ctx context.Context, phone string) (db.Customer, error) {
	if m.lockCustomerByPhoneFn != nil {
		return m.lockCustomerByPhoneFn(ctx, phone)
	}
	return m.GetCustomerByPhone(ctx, phone)
}

func (m *mockStore) GetBusinessByPhone(ctx context.Context, phone string) (db.Business, error) {
	if m.getBusinessByPhoneFn != nil {
		return m.getBusinessByPhoneFn(ctx, phone)
	}
	return db.Business{}, pgx.ErrNoRows
}

func (m *mockStore) GetBusinessByID(ctx context.Context, id uuid.UUID) (db.Business, error) {
	if m.getBusinessByIDFn != nil {
		return m.getBusinessByIDFn(ctx, id)
	}
	return db.Business{ID: id, Type: db.BusinessTypeSalon, PointsPerVisit: 10}, nil
}

func (m *mockStore) GetRewardByID(ctx context.Context, id uuid.UUID) (db.Reward, error) {
	if m.getRewardByIDFn != nil {
		return m.getRewardByIDFn(ctx, id)
	}
	return db.Reward{}, pgx.ErrNoRows
}

func (m *mockStore) GetCustomerPoints(ctx context.Context, phone string) (db.CustomerPoint, error) {
	if m.getCustomerPointsFn != nil {
		return m.getCustomerPointsFn(ctx, phone)
	}
	return db.CustomerPoint{}, pgx.ErrNoRows
}

func (m *mockStore) GetBusinessAnalytics(ctx context.Context, id uuid.UUID) (db.BusinessAnalytic, error) {
	if m.getBusinessAnalyticsFn != nil {
		return m.getBusinessAnalyticsFn(ctx, id)
	}
	return db.BusinessAnalytic{}, pgx.ErrNoRows
}

func (m *mockStore) InsertVisit(ctx context.Context, arg db.InsertVisitParams) (db.Visit, error) {
	if m.insertVisitFn != nil {
		return m.insertVisitFn(ctx, arg)
	}
	return db.Visit{ID: uuid.New(), CustomerID: arg.CustomerID, BusinessID: arg.BusinessID, PointsEarned: arg.PointsEarned}, nil
}

func (m *mockStore) UpsertCustomerBusiness(ctx context.Context, arg db.UpsertCustomerBusinessParams) (db.CustomerBusiness, error) {
	if m.upsertCustomerBusinessFn != nil {
		return m.upsertCustomerBusinessFn(ctx, arg)
	}
	return db.CustomerBusiness{CustomerID: arg.CustomerID, BusinessID: arg.BusinessID, TotalVisits: 1, TotalPointsEarned: arg.TotalPointsEarned}, nil
}

func (m *mockStore) InsertRedemption(ctx context.Context, arg db.InsertRedemptionParams) (db.Redemption, error) {
	if m.insertRedemptionFn != nil {
		return m.insertRedemptionFn(ctx, arg)
	}
	return db.Redemption{ID: uuid.New(), CustomerID: arg.CustomerID, RewardID: arg.RewardID, BusinessID: arg.BusinessID, PointsSpent: arg.PointsSpent}, nil
}

func (m *mockStore) ListRecentVisitsByBusiness(ctx context.Context, arg db.ListRecentVisitsByBusinessParams) ([]db.ListRecentVisitsByBusinessRow, error) {
	if m.listRecentVisitsFn != nil {
		return m.listRecentVisitsFn(ctx, arg)
	}
	return nil, nil
}

func (m *mockStore) ListVisitsByCustomerPhone(ctx context.Context, phone string) ([]db.ListVisitsByCustomerPhoneRow, error) {
	if m.listCustomerVisitsFn != nil {
		return m.listCustomerVisitsFn(ctx, phone)
	}
	return nil, nil
}

func (m *mockStore) ListActiveRewards(ctx context.Context) ([]db.ListActiveRewardsRow, error) {
	if m.listActiveRewardsFn != nil {
		return m.listActiveRewardsFn(ctx)
	}
	return nil, nil
}

func (m *mockStore) ListActiveRewardsByBusiness(ctx context.Context, id uuid.UUID) ([]db.Reward, error) {
	if m.listBusinessRewardsFn != nil {
		return m.listBusinessRewardsFn(ctx, id)
	}
	return nil, nil
}

// failingStore fails the test on any write or customer lookup.
func failingStore(t testing.TB) *mockStore {
	fail := func() { t.Errorf("store must not be called") }
	return &mockStore{
		execTxFn: func(ctx context.Context, fn func(repository.Querier) error) error {
			fail()
			return nil
		},
		createCustomerFn: func(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
			fail()
			return db.Customer{}, nil
		},
		createBusinessFn: func(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error) {
			fail()
			return db.Business{}, nil
		},
		getCustomerByPhoneFn: func(ctx context.Context, phone string) (db.Customer, error) {
			fail()
			return db.Customer{}, nil
		},
		getCustomerPointsFn: func(ctx context.Context, phone string) (db.CustomerPoint, error) {
			fail()
			return db.CustomerPoint{}, nil
		},
	}
}
