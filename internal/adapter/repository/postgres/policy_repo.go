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

// PolicyRepository implements usecase.PolicyRepository.
//
// Months are stored as "YYYY-MM" text, so lexicographic comparison in
// SQL matches chronological order and the interval queries stay plain
// string comparisons.
type PolicyRepository struct {
	pool *pgxpool.Pool
}

// NewPolicyRepository creates a new PolicyRepository.
func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{pool: pool}
}

const policyColumns = `id, monthly_amount, due_day, reminder_day, effective_month, terminated_at, created_by, created_at`

// Create inserts a policy.
func (r *PolicyRepository) Create(ctx context.Context, tx usecase.Transaction, policy *domain.DepositPolicy) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO deposit_policies (id, monthly_amount, due_day, reminder_day, effective_month, terminated_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		policy.ID,
		decimalToNumeric(policy.MonthlyAmount),
		policy.DueDay,
		policy.ReminderDay,
		policy.EffectiveMonth.String(),
		monthToText(policy.TerminatedAt),
		policy.CreatedBy,
		timeToPgTimestamptz(policy.CreatedAt),
	)

	return err
}

// GetByID retrieves a policy by ID.
func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*domain.DepositPolicy, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM deposit_policies WHERE id = $1`, id)

	return scanPolicy(row)
}

// GetByIDForUpdate retrieves a policy by ID with a FOR UPDATE lock.
func (r *PolicyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.DepositPolicy, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM deposit_policies WHERE id = $1 FOR UPDATE`, id)

	return scanPolicy(row)
}

// GetOpenEndedForUpdate retrieves the open-ended head of the policy
// chain with a FOR UPDATE lock. At most one row can match; the lock
// serializes concurrent policy creations.
func (r *PolicyRepository) GetOpenEndedForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.DepositPolicy, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM deposit_policies WHERE terminated_at IS NULL FOR UPDATE`)

	return scanPolicy(row)
}

// GetByTerminatedAtForUpdate retrieves the policy terminated at a given
// month with a FOR UPDATE lock. Several predecessors can share a
// termination month after zero-width terminations; the latest effective
// one is the chain's true predecessor.
func (r *PolicyRepository) GetByTerminatedAtForUpdate(ctx context.Context, tx usecase.Transaction, m domain.Month) (*domain.DepositPolicy, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM deposit_policies
		WHERE terminated_at = $1
		ORDER BY effective_month DESC
		LIMIT 1
		FOR UPDATE`, m.String())

	return scanPolicy(row)
}

// SetTerminatedAt sets or clears a policy's termination month.
func (r *PolicyRepository) SetTerminatedAt(ctx context.Context, tx usecase.Transaction, id string, terminatedAt *domain.Month) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE deposit_policies SET terminated_at = $2 WHERE id = $1`,
		id, monthToText(terminatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}

	return nil
}

// Delete removes a policy row.
func (r *PolicyRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		DELETE FROM deposit_policies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}

	return nil
}

// ResolveEffective returns the policy whose interval covers m: the one
// with the largest effective month at or before m that has not been
// terminated by m. Intervals never overlap, but the ORDER BY keeps the
// answer well-defined even against a corrupted chain.
func (r *PolicyRepository) ResolveEffective(ctx context.Context, m domain.Month) (*domain.DepositPolicy, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM deposit_policies
		WHERE effective_month <= $1
		  AND (terminated_at IS NULL OR terminated_at > $1)
		ORDER BY effective_month DESC
		LIMIT 1`, m.String())

	policy, err := scanPolicy(row)
	if errors.Is(err, domain.ErrPolicyNotFound) {
		return nil, domain.ErrNoEffectivePolicy
	}

	return policy, err
}

// List lists policies with pagination, newest effective month first.
func (r *PolicyRepository) List(ctx context.Context, limit, offset int) ([]*domain.DepositPolicy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+policyColumns+` FROM deposit_policies
		ORDER BY effective_month DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []*domain.DepositPolicy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}

		policies = append(policies, policy)
	}

	return policies, rows.Err()
}

func scanPolicy(row pgx.Row) (*domain.DepositPolicy, error) {
	var (
		policy         domain.DepositPolicy
		monthlyAmount  pgtype.Numeric
		effectiveMonth string
		terminatedAt   *string
		createdAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&policy.ID,
		&monthlyAmount,
		&policy.DueDay,
		&policy.ReminderDay,
		&effectiveMonth,
		&terminatedAt,
		&policy.CreatedBy,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}

		return nil, err
	}

	policy.MonthlyAmount = numericToDecimal(monthlyAmount)
	policy.CreatedAt = createdAt.Time

	policy.EffectiveMonth, err = domain.ParseMonth(effectiveMonth)
	if err != nil {
		return nil, err
	}

	if terminatedAt != nil {
		m, err := domain.ParseMonth(*terminatedAt)
		if err != nil {
			return nil, err
		}

		policy.TerminatedAt = &m
	}

	return &policy, nil
}

func monthToText(m *domain.Month) *string {
	if m == nil {
		return nil
	}

	s := m.String()

	return &s
}
