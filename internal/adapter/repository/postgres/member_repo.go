package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseme/esusu/internal/domain"
)

// MemberRepository implements usecase.MemberRepository. Rows are keyed
// by the identity provider's subject ID.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const memberColumns = `id, email, name, role, active, created_at, updated_at`

// Create registers a member.
func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO members (id, email, name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		member.ID,
		member.Email,
		member.Name,
		string(member.Role),
		member.Active,
		timeToPgTimestamptz(member.CreatedAt),
		timeToPgTimestamptz(member.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMemberExists
		}

		return err
	}

	return nil
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+memberColumns+` FROM members WHERE id = $1`, id)

	return scanMember(row)
}

// ListActive lists all active members. Used by the reminder run, so it
// is deliberately unpaginated.
func (r *MemberRepository) ListActive(ctx context.Context) ([]*domain.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberColumns+` FROM members WHERE active = TRUE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMembers(rows)
}

// List lists members with pagination.
func (r *MemberRepository) List(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberColumns+` FROM members
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMembers(rows)
}

func collectMembers(rows pgx.Rows) ([]*domain.Member, error) {
	var members []*domain.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}

		members = append(members, member)
	}

	return members, rows.Err()
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		member    domain.Member
		role      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&member.ID,
		&member.Email,
		&member.Name,
		&role,
		&member.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}

		return nil, err
	}

	member.Role = domain.Role(role)
	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return &member, nil
}
