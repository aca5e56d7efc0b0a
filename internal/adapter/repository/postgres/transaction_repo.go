package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
// Fund transactions are append-only; there is no update or delete.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, from_fund_id, to_fund_id, amount, description, created_by, created_at`

// Create inserts a fund transaction inside the transfer's database
// transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.FundTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO fund_transactions (id, from_fund_id, to_fund_id, amount, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID,
		txn.FromFundID,
		txn.ToFundID,
		decimalToNumeric(txn.Amount),
		txn.Description,
		txn.CreatedBy,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a fund transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.FundTransaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM fund_transactions WHERE id = $1`, id)

	return scanTransaction(row)
}

// ListByFund lists transactions where a fund is either side, newest
// first.
func (r *TransactionRepository) ListByFund(ctx context.Context, fundID string, limit, offset int) ([]*domain.FundTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM fund_transactions
		WHERE from_fund_id = $1 OR to_fund_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, fundID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.FundTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.FundTransaction, error) {
	var (
		txn       domain.FundTransaction
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.FromFundID,
		&txn.ToFundID,
		&amount,
		&txn.Description,
		&txn.CreatedBy,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Amount = numericToDecimal(amount)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
