package postgres

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// ActivityRepository implements usecase.ActivityRepository.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityInsert = `
	INSERT INTO activity_logs (id, actor_id, action, detail, created_at)
	VALUES ($1, $2, $3, $4, $5)`

// Create inserts an activity entry outside any transaction.
func (r *ActivityRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	args, err := activityArgs(entry)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, activityInsert, args...)

	return err
}

// CreateTx inserts an activity entry inside the caller's transaction,
// so the entry commits or rolls back with the state change it records.
func (r *ActivityRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.ActivityLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := activityArgs(entry)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, activityInsert, args...)

	return err
}

func activityArgs(entry *domain.ActivityLog) ([]any, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	var detail []byte
	if entry.Detail != nil {
		var err error

		detail, err = json.Marshal(entry.Detail)
		if err != nil {
			return nil, err
		}
	}

	return []any{
		entry.ID,
		entry.ActorID,
		entry.Action,
		detail,
		timeToPgTimestamptz(entry.CreatedAt),
	}, nil
}

// List retrieves activity entries with filtering, newest first.
func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	query := `
		SELECT id, actor_id, action, detail, created_at
		FROM activity_logs
		WHERE 1=1`

	args := []any{}
	argPos := 1

	next := func() string {
		placeholder := "$" + strconv.Itoa(argPos)
		argPos++
		return placeholder
	}

	if filter.ActorID != "" {
		query += ` AND actor_id = ` + next()
		args = append(args, filter.ActorID)
	}

	if filter.Action != "" {
		query += ` AND action = ` + next()
		args = append(args, filter.Action)
	}

	if filter.StartDate != nil {
		query += ` AND created_at >= ` + next()
		args = append(args, *filter.StartDate)
	}

	if filter.EndDate != nil {
		query += ` AND created_at <= ` + next()
		args = append(args, *filter.EndDate)
	}

	query += ` ORDER BY created_at DESC`

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)

	query += ` LIMIT ` + next()
	args = append(args, limit)

	query += ` OFFSET ` + next()
	args = append(args, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ActivityLog
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanActivity(row pgx.Row) (*domain.ActivityLog, error) {
	var (
		entry     domain.ActivityLog
		detail    []byte
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.ActorID,
		&entry.Action,
		&detail,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if detail != nil {
		_ = json.Unmarshal(detail, &entry.Detail)
	}

	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
