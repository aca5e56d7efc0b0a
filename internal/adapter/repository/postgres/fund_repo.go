package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// FundRepository implements usecase.FundRepository.
type FundRepository struct {
	pool *pgxpool.Pool
}

// NewFundRepository creates a new FundRepository.
func NewFundRepository(pool *pgxpool.Pool) *FundRepository {
	return &FundRepository{pool: pool}
}

const fundColumns = `id, title, currency, balance, created_by, deleted, created_at, updated_at`

// Create creates a new fund.
func (r *FundRepository) Create(ctx context.Context, fund *domain.Fund) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO funds (id, title, currency, balance, created_by, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fund.ID,
		fund.Title,
		fund.Currency,
		decimalToNumeric(fund.Balance),
		fund.CreatedBy,
		fund.Deleted,
		timeToPgTimestamptz(fund.CreatedAt),
		timeToPgTimestamptz(fund.UpdatedAt),
	)

	return err
}

// GetByID retrieves a fund by ID.
func (r *FundRepository) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+fundColumns+` FROM funds WHERE id = $1`, id)

	return scanFund(row)
}

// GetByIDForUpdate retrieves a fund by ID with a FOR UPDATE lock.
func (r *FundRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+fundColumns+` FROM funds WHERE id = $1 FOR UPDATE`, id)

	return scanFund(row)
}

// GetByIDsForUpdate retrieves multiple funds with FOR UPDATE locks.
// Rows are locked in ascending id order regardless of the order ids
// arrive in, so concurrent transfers over the same pair cannot
// deadlock.
func (r *FundRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Fund, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+fundColumns+` FROM funds WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	funds := make([]*domain.Fund, 0, len(ids))
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, err
		}

		funds = append(funds, fund)
	}

	return funds, rows.Err()
}

// UpdateBalance updates the balance of a fund.
func (r *FundRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE funds SET balance = $2, updated_at = $3 WHERE id = $1`,
		id,
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

// SoftDelete marks a fund deleted. The row stays behind the
// transactions referencing it.
func (r *FundRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE funds SET deleted = TRUE, updated_at = $2 WHERE id = $1`,
		id,
		timeToPgTimestamptz(deletedAt),
	)

	return err
}

// List lists non-deleted funds with pagination.
func (r *FundRepository) List(ctx context.Context, limit, offset int) ([]*domain.Fund, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+fundColumns+` FROM funds
		WHERE deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var funds []*domain.Fund
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, err
		}

		funds = append(funds, fund)
	}

	return funds, rows.Err()
}

// TotalBalance returns the sum of all non-deleted fund balances.
func (r *FundRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var total pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(balance), 0) FROM funds WHERE deleted = FALSE`).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func scanFund(row pgx.Row) (*domain.Fund, error) {
	var (
		fund      domain.Fund
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&fund.ID,
		&fund.Title,
		&fund.Currency,
		&balance,
		&fund.CreatedBy,
		&fund.Deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFundNotFound
		}

		return nil, err
	}

	fund.Balance = numericToDecimal(balance)
	fund.CreatedAt = createdAt.Time
	fund.UpdatedAt = updatedAt.Time

	return &fund, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	// n.Int is nil for NaN and infinity values.
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
