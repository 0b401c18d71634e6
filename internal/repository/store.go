package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	db "github.com/loyaltyhub/loyalty-points/db/gen"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store interface {
	ExecTx(ctx context.Context, fn func(Querier) error) error
	Reader
	CreateCustomer(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error)
	CreateBusiness(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error)
	CreateReward(ctx context.Context, arg db.CreateRewardParams) (db.Reward, error)
	ListRecentVisitsByBusiness(ctx context.Context, arg db.ListRecentVisitsByBusinessParams) ([]db.ListRecentVisitsByBusinessRow, error)
	ListVisitsByCustomerPhone(ctx context.Context, phoneNumber string) ([]db.ListVisitsByCustomerPhoneRow, error)
	GetBusinessAnalytics(ctx context.Context, businessID uuid.UUID) (db.BusinessAnalytic, error)
	ListActiveRewards(ctx context.Context) ([]db.ListActiveRewardsRow, error)
	ListActiveRewardsByBusiness(ctx context.Context, businessID uuid.UUID) ([]db.Reward, error)
}

// Reader holds the lookups available both on the pool and inside a
// transaction.
type Reader interface {
	GetCustomerByPhone(ctx context.Context, phoneNumber string) (db.Customer, error)
	GetBusinessByPhone(ctx context.Context, ownerPhone string) (db.Business, error)
	GetBusinessByID(ctx context.Context, id uuid.UUID) (db.Business, error)
	GetRewardByID(ctx context.Context, id uuid.UUID) (db.Reward, error)
	GetCustomerPoints(ctx context.Context, phoneNumber string) (db.CustomerPoint, error)
}

type Querier interface {
	Reader
	LockCustomerByPhone(ctx context.Context, phoneNumber string) (db.Customer, error)
	InsertVisit(ctx context.Context, arg db.InsertVisitParams) (db.Visit, error)
	UpsertCustomerBusiness(ctx context.Context, arg db.UpsertCustomerBusinessParams) (db.CustomerBusiness, error)
	InsertRedemption(ctx context.Context, arg db.InsertRedemptionParams) (db.Redemption, error)
}

type store struct {
	pool    *pgxpool.Pool
	queries *db.Queries
}

func New(pool *pgxpool.Pool) Store {
	return &store{
		pool:    pool,
		queries: db.New(pool),
	}
}

func (s *store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	q := s.queries.WithTx(tx)
	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("tx err: %w, rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *store) CreateCustomer(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
	return s.queries.CreateCustomer(ctx, arg)
}

func (s *store) CreateBusiness(ctx context.Context, arg db.CreateBusinessParams) (db.Business, error) {
	return s.queries.CreateBusiness(ctx, arg)
}

func (s *store) CreateReward(ctx context.Context, arg db.CreateRewardParams) (db.Reward, error) {
	return s.queries.CreateReward(ctx, arg)
}

func (s *store) GetCustomerByPhone(ctx context.Context, phoneNumber string) (db.Customer, error) {
	return s.queries.GetCustomerByPhone(ctx, phoneNumber)
}

func (s *store) GetBusinessByPhone(ctx context.Context, ownerPhone string) (db.Business, error) {
	return s.queries.GetBusinessByPhone(ctx, ownerPhone)
}

func (s *store) GetBusinessByID(ctx context.Context, id uuid.UUID) (db.Business, error) {
	return s.queries.GetBusinessByID(ctx, id)
}

func (s *store) GetRewardByID(ctx context.Context, id uuid.UUID) (db.Reward, error) {
	return s.queries.GetRewardByID(ctx, id)
}

func (s *store) GetCustomerPoints(ctx context.Context, phoneNumber string) (db.CustomerPoint, error) {
	return s.queries.GetCustomerPoints(ctx, phoneNumber)
}

func (s *store) GetBusinessAnalytics(ctx context.Context, businessID uuid.UUID) (db.BusinessAnalytic, error) {
	return s.queries.GetBusinessAnalytics(ctx, businessID)
}

func (s *store) ListRecentVisitsByBusiness(ctx context.Context, arg db.ListRecentVisitsByBusinessParams) ([]db.ListRecentVisitsByBusinessRow, error) {
	return s.queries.ListRecentVisitsByBusiness(ctx, arg)
}

func (s *store) ListVisitsByCustomerPhone(ctx context.Context, phoneNumber string) ([]db.ListVisitsByCustomerPhoneRow, error) {
	return s.queries.ListVisitsByCustomerPhone(ctx, phoneNumber)
}

func (s *store) ListActiveRewards(ctx context.Context) ([]db.ListActiveRewardsRow, error) {
	return s.queries.ListActiveRewards(ctx)
}

func (s *store) ListActiveRewardsByBusiness(ctx context.Context, businessID uuid.UUID) ([]db.Reward, error) {
	return s.queries.ListActiveRewardsByBusiness(ctx, businessID)
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint")
}

// IsForeignKeyViolation reports whether err came from a missing referenced
// row.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	return strings.Contains(err.Error(), "foreign key")
}

// IsNoRows reports whether a single-row query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
