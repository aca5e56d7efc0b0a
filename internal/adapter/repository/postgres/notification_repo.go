package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseme/esusu/internal/domain"
)

// NotificationRepository implements usecase.NotificationRepository.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, member_id, kind, message, read, created_at`

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, member_id, kind, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID,
		n.MemberID,
		string(n.Kind),
		n.Message,
		n.Read,
		timeToPgTimestamptz(n.CreatedAt),
	)

	return err
}

// GetByID retrieves a notification by ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)

	return scanNotification(row)
}

// ListByMember lists a member's notifications, newest first.
func (r *NotificationRepository) ListByMember(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE member_id = $1 AND ($2 = FALSE OR read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, memberID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead marks a notification read. The member filter keeps members
// from touching each other's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, memberID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND member_id = $2`,
		id, memberID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		n         domain.Notification
		kind      string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&n.ID,
		&n.MemberID,
		&kind,
		&n.Message,
		&n.Read,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}

		return nil, err
	}

	n.Kind = domain.NotificationKind(kind)
	n.CreatedAt = createdAt.Time

	return &n, nil
}
