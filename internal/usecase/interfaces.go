package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
)

// FundRepository defines data access for funds.
type FundRepository interface {
	Create(ctx context.Context, fund *domain.Fund) error
	GetByID(ctx context.Context, id string) (*domain.Fund, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Fund, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Fund, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SoftDelete(ctx context.Context, tx Transaction, id string, deletedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Fund, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}

// PolicyRepository defines data access for deposit policies.
type PolicyRepository interface {
	Create(ctx context.Context, tx Transaction, policy *domain.DepositPolicy) error
	GetByID(ctx context.Context, id string) (*domain.DepositPolicy, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.DepositPolicy, error)
	// GetOpenEndedForUpdate locks and returns the open-ended policy, or
	// domain.ErrPolicyNotFound when the chain is empty.
	GetOpenEndedForUpdate(ctx context.Context, tx Transaction) (*domain.DepositPolicy, error)
	// GetByTerminatedAtForUpdate locks and returns the policy whose
	// TerminatedAt equals m, or domain.ErrPolicyNotFound.
	GetByTerminatedAtForUpdate(ctx context.Context, tx Transaction, m domain.Month) (*domain.DepositPolicy, error)
	SetTerminatedAt(ctx context.Context, tx Transaction, id string, terminatedAt *domain.Month) error
	Delete(ctx context.Context, tx Transaction, id string) error
	// ResolveEffective returns the policy covering m, or
	// domain.ErrNoEffectivePolicy.
	ResolveEffective(ctx context.Context, m domain.Month) (*domain.DepositPolicy, error)
	List(ctx context.Context, limit, offset int) ([]*domain.DepositPolicy, error)
}

// TransactionRepository defines data access for fund transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.FundTransaction) error
	GetByID(ctx context.Context, id string) (*domain.FundTransaction, error)
	ListByFund(ctx context.Context, fundID string, limit, offset int) ([]*domain.FundTransaction, error)
}

// DepositRepository defines data access for deposits.
type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.Deposit) error
	GetByID(ctx context.Context, id string) (*domain.Deposit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Deposit, error)
	MarkVerified(ctx context.Context, tx Transaction, id, fundID, verifiedBy string, verifiedAt time.Time) error
	MarkRejected(ctx context.Context, tx Transaction, id, reason string) error
	// CountActiveInMonth counts non-rejected deposits for m across all
	// members.
	CountActiveInMonth(ctx context.Context, tx Transaction, m domain.Month) (int, error)
	ExistsActiveForMember(ctx context.Context, memberID string, m domain.Month) (bool, error)
	ListMemberIDsWithActive(ctx context.Context, m domain.Month) ([]string, error)
	ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Deposit, error)
	ListByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.Deposit, error)
	TotalVerified(ctx context.Context) (decimal.Decimal, error)
}

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByMember(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, memberID string) error
}

// ActivityRepository defines data access for the activity log.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	CreateTx(ctx context.Context, tx Transaction, entry *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

// MemberRepository defines data access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	ListActive(ctx context.Context) ([]*domain.Member, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Member, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient persistence failures
// (deadlocks, serialization conflicts).
type Retrier interface {
	Do(ctx context.Context, op func(context.Context) error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time. Injected so that the effective-month
// window and reminder-day checks are testable.
type Clock interface {
	Now() time.Time
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
