package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
)

type relationKey struct {
	customer uuid.UUID
	business uuid.UUID
}

// memState is the table data behind memStore. Its methods assume the caller
// holds memStore.mu.
type memState struct {
	clock       time.Time
	customers   map[string]db.Customer
	businesses  map[uuid.UUID]db.Business
	visits      []db.Visit
	relations   map[relationKey]db.CustomerBusiness
	rewards     map[uuid.UUID]db.Reward
	redemptions []db.Redemption

	failUpsert error
}

func (st *memState) clone() *memState {
	c := *st
	c.customers = make(map[string]db.Customer, len(st.customers))
	for k, v := range st.customers {
		c.customers[k] = v
	}
	c.businesses = make(map[uuid.UUID]db.Business, len(st.businesses))
	for k, v := range st.businesses {
		c.businesses[k] = v
	}
	c.relations = make(map[relationKey]db.CustomerBusiness, len(st.relations))
	for k, v := range st.relations {
		c.relations[k] = v
	}
	c.rewards = make(map[uuid.UUID]db.Reward, len(st.rewards))
	for k, v := range st.rewards {
		c.rewards[k] = v
	}
	c.visits = append([]db.Visit(nil), st.visits...)
	c.redemptions = append([]db.Redemption(nil), st.redemptions...)
	return &c
}

func (st *memState) tick() pgtype.Timestamptz {
	st.clock = st.clock.Add(time.Second)
	return pgtype.Timestamptz{Time: st.clock, Valid: true}
}

func (st *memState) GetCustomerByPhone(_ context.Context, phone string) (db.Customer, error) {
	c, ok := st.customers[phone]
	if !ok {
		return db.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (st *memState) LockCustomerByPhone(ctx context.Context, phone string) (db.Customer, error) {
	return st.GetCustomerByPhone(ctx, phone)
}

func (st *memState) GetBusinessByPhone(_ context.Context, phone string) (db.Business, error) {
	for _, b := range st.businesses {
		if b.OwnerPhone == phone {
			return b, nil
		}
	}
	return db.Business{}, pgx.ErrNoRows
}

func (st *memState) GetBusinessByID(_ context.Context, id uuid.UUID) (db.Business, error) {
	b, ok := st.businesses[id]
	if !ok {
		return db.Business{}, pgx.ErrNoRows
	}
	return b, nil
}

func (st *memState) GetRewardByID(_ context.Context, id uuid.UUID) (db.Reward, error) {
	r, ok := st.rewards[id]
	if !ok {
		return db.Reward{}, pgx.ErrNoRows
	}
	return r, nil
}

func (st *memState) GetCustomerPoints(_ context.Context, phone string) (db.CustomerPoint, error) {
	c, ok := st.customers[phone]
	if !ok {
		return db.CustomerPoint{}, pgx.ErrNoRows
	}
	p := db.CustomerPoint{CustomerID: c.ID, PhoneNumber: c.PhoneNumber, Name: c.Name}
	for _, rel := range st.relations {
		if rel.CustomerID == c.ID {
			p.TotalPointsEarned += rel.TotalPointsEarned
			p.TotalVisits += rel.TotalVisits
		}
	}
	for _, r := range st.redemptions {
		if r.CustomerID == c.ID {
			p.TotalPointsRedeemed += r.PointsSpent
		}
	}
	p.AvailablePoints = p.TotalPointsEarned - p.TotalPointsRedeemed
	return p, nil
}

func (st *memState) InsertVisit(_ context.Context, arg db.InsertVisitParams) (db.Visit, error) {
	v := db.Visit{
		ID:           uuid.New(),
		CustomerID:   arg.CustomerID,
		BusinessID:   arg.BusinessID,
		PointsEarned: arg.PointsEarned,
		VisitDate:    st.tick(),
	}
	st.visits = append(st.visits, v)
	return v, nil
}

func (st *memState) UpsertCustomerBusiness(_ context.Context, arg db.UpsertCustomerBusinessParams) (db.CustomerBusiness, error) {
	if st.failUpsert != nil {
		return db.CustomerBusiness{}, st.failUpsert
	}
	key := relationKey{arg.CustomerID, arg.BusinessID}
	now := st.tick()
	rel, ok := st.relations[key]
	if !ok {
		rel = db.CustomerBusiness{CustomerID: arg.CustomerID, BusinessID: arg.BusinessID, FirstVisitAt: now}
	}
	rel.TotalVisits++
	rel.TotalPointsEarned += arg.TotalPointsEarned
	rel.LastVisitAt = now
	st.relations[key] = rel
	return rel, nil
}

func (st *memState) InsertRedemption(_ context.Context, arg db.InsertRedemptionParams) (db.Redemption, error) {
	r := db.Redemption{
		ID:          uuid.New(),
		CustomerID:  arg.CustomerID,
		RewardID:    arg.RewardID,
		BusinessID:  arg.BusinessID,
		PointsSpent: arg.PointsSpent,
		RedeemedAt:  st.tick(),
	}
	st.redemptions = append(st.redemptions, r)
	return r, nil
}

// memStore is a serializable in-memory Store. ExecTx runs the callback on a
// copy of the tables and publishes the copy only when the callback succeeds.
type memStore struct {
	mu sync.Mutex
	st *memState
}

func newMemStore() *memStore {
	return &memStore{st: &memState{
		clock:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		customers:  map[string]db.Customer{},
		businesses: map[uuid.UUID]db.Business{},
		relations:  map[relationKey]db.CustomerBusiness{},
		rewards:    map[uuid.UUID]db.Reward{},
	}}
}

func (m *memStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := m.st.clone()
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.st = tx
	return nil
}

func (m *memStore) relation(customer, business uuid.UUID) (db.CustomerBusiness, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rel, ok := m.st.relations[relationKey{customer, business}]
	return rel, ok
}

func (m *memStore) visitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.visits)
}

func (m *memStore) setFailUpsert(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.failUpsert = err
}

func (m *memStore) CreateCustomer(_ context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.customers[arg.PhoneNumber]; ok {
		return db.Customer{}, errors.New(`duplicate key value violates unique constraint "customers_phone_number_key"`)
	}
	c := db.Customer{ID: uuid.New(), PhoneNumber: arg.PhoneNumber, Name: arg.Name, CreatedAt: m.st.tick()}
	m.st.customers[arg.PhoneNumber] = c
	return c, nil
}

func (m *memStore) CreateBusiness(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.st.GetBusinessByPhone(ctx, arg.OwnerPhone); err == nil {
		return db.Business{}, errors.New(`duplicate key value violates unique constraint "businesses_owner_phone_key"`)
	}
	b := db.Business{
		ID:             uuid.New(),
		OwnerPhone:     arg.OwnerPhone,
		Name:           arg.Name,
		Type:           arg.Type,
		PointsPerVisit: arg.PointsPerVisit,
		CreatedAt:      m.st.tick(),
	}
	m.st.businesses[b.ID] = b
	return b, nil
}

func (m *memStore) CreateReward(_ context.Context, arg db.CreateRewardParams) (db.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.businesses[arg.BusinessID]; !ok {
		return db.Reward{}, errors.New(`insert or update on table "rewards" violates foreign key constraint "rewards_business_id_fkey"`)
	}
	r := db.Reward{
		ID:             uuid.New(),
		BusinessID:     arg.BusinessID,
		Name:           arg.Name,
		Description:    arg.Description,
		PointsRequired: arg.PointsRequired,
		IsActive:       true,
		CreatedAt:      m.st.tick(),
	}
	m.st.rewards[r.ID] = r
	return r, nil
}

func (m *memStore) deactivateReward(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.st.rewards[id]
	r.IsActive = false
	m.st.rewards[id] = r
}

func (m *memStore) GetCustomerByPhone(ctx context.Context, phone string) (db.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetCustomerByPhone(ctx, phone)
}

func (m *memStore) GetBusinessByPhone(ctx context.Context, phone string) (db.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetBusinessByPhone(ctx, phone)
}

func (m *memStore) GetBusinessByID(ctx context.Context, id uuid.UUID) (db.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetBusinessByID(ctx, id)
}

func (m *memStore) GetRewardByID(ctx context.Context, id uuid.UUID) (db.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetRewardByID(ctx, id)
}

func (m *memStore) GetCustomerPoints(ctx context.Context, phone string) (db.CustomerPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetCustomerPoints(ctx, phone)
}

func (m *memStore) GetBusinessAnalytics(_ context.Context, id uuid.UUID) (db.BusinessAnalytic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.businesses[id]; !ok {
		return db.BusinessAnalytic{}, pgx.ErrNoRows
	}
	a := db.BusinessAnalytic{BusinessID: id}
	var points int32
	for _, rel := range m.st.relations {
		if rel.BusinessID == id {
			a.TotalCustomers++
		}
	}
	for _, v := range m.st.visits {
		if v.BusinessID == id {
			a.TotalVisits++
			points += v.PointsEarned
		}
	}
	for _, r := range m.st.redemptions {
		if r.BusinessID == id {
			a.TotalRedemptions++
		}
	}
	if a.TotalVisits > 0 {
		a.AvgPointsPerVisit = float64(points) / float64(a.TotalVisits)
	}
	return a, nil
}

func (m *memStore) customerByID(id uuid.UUID) db.Customer {
	for _, c := range m.st.customers {
		if c.ID == id {
			return c
		}
	}
	return db.Customer{}
}

func (m *memStore) ListRecentVisitsByBusiness(_ context.Context, arg db.ListRecentVisitsByBusinessParams) ([]db.ListRecentVisitsByBusinessRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []db.ListRecentVisitsByBusinessRow
	for i := len(m.st.visits) - 1; i >= 0 && len(rows) < int(arg.Limit); i-- {
		v := m.st.visits[i]
		if v.BusinessID != arg.BusinessID {
			continue
		}
		c := m.customerByID(v.CustomerID)
		rows = append(rows, db.ListRecentVisitsByBusinessRow{
			ID:            v.ID,
			CustomerID:    v.CustomerID,
			BusinessID:    v.BusinessID,
			PointsEarned:  v.PointsEarned,
			VisitDate:     v.VisitDate,
			CustomerName:  c.Name,
			CustomerPhone: c.PhoneNumber,
		})
	}
	return rows, nil
}

func (m *memStore) ListVisitsByCustomerPhone(_ context.Context, phone string) ([]db.ListVisitsByCustomerPhoneRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.st.customers[phone]
	if !ok {
		return nil, nil
	}
	var rows []db.ListVisitsByCustomerPhoneRow
	for i := len(m.st.visits) - 1; i >= 0; i-- {
		v := m.st.visits[i]
		if v.CustomerID != c.ID {
			continue
		}
		b := m.st.businesses[v.BusinessID]
		rows = append(rows, db.ListVisitsByCustomerPhoneRow{
			ID:           v.ID,
			CustomerID:   v.CustomerID,
			BusinessID:   v.BusinessID,
			PointsEarned: v.PointsEarned,
			VisitDate:    v.VisitDate,
			BusinessName: b.Name,
			BusinessType: b.Type,
		})
	}
	return rows, nil
}

func (m *memStore) activeRewards() []db.Reward {
	var out []db.Reward
	for _, r := range m.st.rewards {
		if r.IsActive {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PointsRequired < out[j].PointsRequired })
	return out
}

func (m *memStore) ListActiveRewards(context.Context) ([]db.ListActiveRewardsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []db.ListActiveRewardsRow
	for _, r := range m.activeRewards() {
		b := m.st.businesses[r.BusinessID]
		rows = append(rows, db.ListActiveRewardsRow{
			ID:             r.ID,
			BusinessID:     r.BusinessID,
			Name:           r.Name,
			Description:    r.Description,
			PointsRequired: r.PointsRequired,
			IsActive:       r.IsActive,
			CreatedAt:      r.CreatedAt,
			BusinessName:   b.Name,
			BusinessType:   b.Type,
		})
	}
	return rows, nil
}

func (m *memStore) ListActiveRewardsByBusiness(_ context.Context, id uuid.UUID) ([]db.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Reward
	for _, r := range m.activeRewards() {
		if r.BusinessID == id {
			out = append(out, r)
		}
	}
	return out, nil
}
