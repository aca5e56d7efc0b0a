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

// DepositRepository implements usecase.DepositRepository. A partial
// unique index on (member_id, month) over non-rejected rows backs the
// one-active-deposit-per-month rule at the database level.
type DepositRepository struct {
	pool *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool}
}

const depositColumns = `id, member_id, month, amount, receipt_key, status, fund_id, reject_reason, verified_by, verified_at, created_at`

// Create inserts a pending deposit.
func (r *DepositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO deposits (id, member_id, month, amount, receipt_key, status, reject_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		deposit.ID,
		deposit.MemberID,
		deposit.Month.String(),
		decimalToNumeric(deposit.Amount),
		deposit.ReceiptKey,
		string(deposit.Status),
		deposit.RejectReason,
		timeToPgTimestamptz(deposit.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateDeposit
		}

		return err
	}

	return nil
}

// GetByID retrieves a deposit by ID.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.Deposit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+depositColumns+` FROM deposits WHERE id = $1`, id)

	return scanDeposit(row)
}

// GetByIDForUpdate retrieves a deposit by ID with a FOR UPDATE lock.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Deposit, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+depositColumns+` FROM deposits WHERE id = $1 FOR UPDATE`, id)

	return scanDeposit(row)
}

// MarkVerified moves a deposit to verified and records the crediting
// fund.
func (r *DepositRepository) MarkVerified(ctx context.Context, tx usecase.Transaction, id, fundID, verifiedBy string, verifiedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE deposits
		SET status = 'verified', fund_id = $2, verified_by = $3, verified_at = $4
		WHERE id = $1`,
		id, fundID, verifiedBy, timeToPgTimestamptz(verifiedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// MarkRejected moves a deposit to rejected with a reason.
func (r *DepositRepository) MarkRejected(ctx context.Context, tx usecase.Transaction, id, reason string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE deposits SET status = 'rejected', reject_reason = $2 WHERE id = $1`,
		id, reason)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// CountActiveInMonth counts non-rejected deposits for a month, inside
// the policy-change transaction.
func (r *DepositRepository) CountActiveInMonth(ctx context.Context, tx usecase.Transaction, m domain.Month) (int, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var count int
	err := pgxTx.QueryRow(ctx, `
		SELECT COUNT(*) FROM deposits WHERE month = $1 AND status <> 'rejected'`,
		m.String()).Scan(&count)

	return count, err
}

// ExistsActiveForMember reports whether a member already has a
// non-rejected deposit for a month.
func (r *DepositRepository) ExistsActiveForMember(ctx context.Context, memberID string, m domain.Month) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM deposits
			WHERE member_id = $1 AND month = $2 AND status <> 'rejected'
		)`, memberID, m.String()).Scan(&exists)

	return exists, err
}

// ListMemberIDsWithActive lists members holding a non-rejected deposit
// for a month. Used by the reminder run to skip members who already
// paid.
func (r *DepositRepository) ListMemberIDsWithActive(ctx context.Context, m domain.Month) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT member_id FROM deposits
		WHERE month = $1 AND status <> 'rejected'`, m.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ListByMember lists a member's deposits, newest month first.
func (r *DepositRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Deposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+depositColumns+` FROM deposits
		WHERE member_id = $1
		ORDER BY month DESC, created_at DESC
		LIMIT $2 OFFSET $3`, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeposits(rows)
}

// ListByStatus lists deposits in a state, oldest first so the
// verification queue is first-come first-served.
func (r *DepositRepository) ListByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.Deposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+depositColumns+` FROM deposits
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeposits(rows)
}

// TotalVerified returns the sum of all verified deposit amounts.
func (r *DepositRepository) TotalVerified(ctx context.Context) (decimal.Decimal, error) {
	var total pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM deposits WHERE status = 'verified'`).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func collectDeposits(rows pgx.Rows) ([]*domain.Deposit, error) {
	var deposits []*domain.Deposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}

		deposits = append(deposits, deposit)
	}

	return deposits, rows.Err()
}

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var (
		deposit    domain.Deposit
		monthText  string
		amount     pgtype.Numeric
		status     string
		verifiedAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&deposit.ID,
		&deposit.MemberID,
		&monthText,
		&amount,
		&deposit.ReceiptKey,
		&status,
		&deposit.FundID,
		&deposit.RejectReason,
		&deposit.VerifiedBy,
		&verifiedAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, err
	}

	deposit.Month, err = domain.ParseMonth(monthText)
	if err != nil {
		return nil, err
	}

	deposit.Amount = numericToDecimal(amount)
	deposit.Status = domain.DepositStatus(status)
	deposit.CreatedAt = createdAt.Time

	if verifiedAt.Valid {
		t := verifiedAt.Time
		deposit.VerifiedAt = &t
	}

	return &deposit, nil
}
