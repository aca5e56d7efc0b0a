package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
)

const effectivePolicyCacheKey = "policy:effective:current"

// PolicyUseCase maintains the deposit-policy chain: creating a policy
// terminates its open-ended predecessor, deleting an upcoming policy
// re-opens the policy it had terminated.
type PolicyUseCase struct {
	txManager    TransactionManager
	policyRepo   PolicyRepository
	depositRepo  DepositRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
	clock        Clock
	cache        Cache
	cacheTTL     time.Duration
}

// NewPolicyUseCase creates a new PolicyUseCase. cache may be nil.
func NewPolicyUseCase(
	txManager TransactionManager,
	policyRepo PolicyRepository,
	depositRepo DepositRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	clock Clock,
	cache Cache,
) *PolicyUseCase {
	return &PolicyUseCase{
		txManager:    txManager,
		policyRepo:   policyRepo,
		depositRepo:  depositRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
		clock:        clock,
		cache:        cache,
		cacheTTL:     5 * time.Minute,
	}
}

// CreatePolicyInput represents input for creating a deposit policy.
type CreatePolicyInput struct {
	MonthlyAmount  decimal.Decimal
	DueDay         int
	ReminderDay    int
	EffectiveMonth domain.Month
	ActorID        string
}

// CreatePolicy inserts a new open-ended policy and terminates the
// previous open-ended one at the new effective month, atomically.
//
// The effective month must be the current or the next calendar month.
// When it is the current month, the operation is refused if any
// non-rejected deposit already exists for that month: members have
// already been asked to pay under the old amount.
func (uc *PolicyUseCase) CreatePolicy(ctx context.Context, input CreatePolicyInput) (*domain.DepositPolicy, error) {
	now := uc.clock.Now().UTC()

	policy := &domain.DepositPolicy{
		ID:             uc.idGen.Generate(),
		MonthlyAmount:  input.MonthlyAmount,
		DueDay:         input.DueDay,
		ReminderDay:    input.ReminderDay,
		EffectiveMonth: input.EffectiveMonth,
		CreatedBy:      input.ActorID,
		CreatedAt:      now,
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	current := domain.MonthOf(now)
	if !input.EffectiveMonth.Equal(current) && !input.EffectiveMonth.Equal(current.Next()) {
		return nil, domain.ErrPolicyOutOfWindow
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if input.EffectiveMonth.Equal(current) {
		count, err := uc.depositRepo.CountActiveInMonth(ctx, tx, current)
		if err != nil {
			return nil, err
		}

		if count > 0 {
			return nil, domain.ErrPolicyMonthClosed
		}
	}

	head, err := uc.policyRepo.GetOpenEndedForUpdate(ctx, tx)
	if err != nil && !errors.Is(err, domain.ErrPolicyNotFound) {
		return nil, err
	}

	// Terminate the predecessor at the new effective month. A head with
	// the same effective month is closed into a zero-width interval so
	// it covers nothing; a later head would invert the chain.
	if head != nil {
		if head.EffectiveMonth.After(input.EffectiveMonth) {
			return nil, domain.ErrPolicyOutOfWindow
		}

		if err := uc.policyRepo.SetTerminatedAt(ctx, tx, head.ID, &input.EffectiveMonth); err != nil {
			return nil, err
		}
	}

	if err := uc.policyRepo.Create(ctx, tx, policy); err != nil {
		return nil, err
	}

	entry := &domain.ActivityLog{
		ActorID:   input.ActorID,
		Action:    domain.ActionPolicyCreate,
		Detail:    domain.MarshalDetail(policy),
		CreatedAt: now,
	}

	if err := uc.activityRepo.CreateTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)

	return policy, nil
}

// DeletePolicy removes an upcoming policy and re-opens the policy it
// had terminated, preserving the chain invariant. Deleting the sole
// open-ended policy is permitted; "no active policy" is a valid state.
func (uc *PolicyUseCase) DeletePolicy(ctx context.Context, id string, actor *domain.Member) error {
	if !actor.Role.CanManagePolicies() {
		return domain.ErrInsufficientRole
	}

	now := uc.clock.Now().UTC()
	current := domain.MonthOf(now)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	policy, err := uc.policyRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if !policy.Upcoming(current) {
		return domain.ErrPolicyNotUpcoming
	}

	if err := uc.policyRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	// Re-open the predecessor the deleted policy had closed.
	pred, err := uc.policyRepo.GetByTerminatedAtForUpdate(ctx, tx, policy.EffectiveMonth)
	if err != nil && !errors.Is(err, domain.ErrPolicyNotFound) {
		return err
	}

	if pred != nil {
		if err := uc.policyRepo.SetTerminatedAt(ctx, tx, pred.ID, nil); err != nil {
			return err
		}
	}

	entry := &domain.ActivityLog{
		ActorID:   actor.ID,
		Action:    domain.ActionPolicyDelete,
		Detail:    domain.MarshalDetail(policy),
		CreatedAt: now,
	}

	if err := uc.activityRepo.CreateTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.invalidateCache(ctx)

	return nil
}

// ResolveEffective returns the policy governing m, or
// domain.ErrNoEffectivePolicy. Resolutions for the current month are
// served from cache when one is configured.
func (uc *PolicyUseCase) ResolveEffective(ctx context.Context, m domain.Month) (*domain.DepositPolicy, error) {
	current := domain.MonthOf(uc.clock.Now().UTC())

	if uc.cache != nil && m.Equal(current) {
		if data, err := uc.cache.Get(ctx, effectivePolicyCacheKey); err == nil {
			var cached domain.DepositPolicy
			if err := json.Unmarshal(data, &cached); err == nil && cached.Covers(m) {
				return &cached, nil
			}
		}
	}

	policy, err := uc.policyRepo.ResolveEffective(ctx, m)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && m.Equal(current) {
		if data, err := json.Marshal(policy); err == nil {
			_ = uc.cache.Set(ctx, effectivePolicyCacheKey, data, uc.cacheTTL)
		}
	}

	return policy, nil
}

// ListPolicies lists policies with pagination, newest effective month
// first.
func (uc *PolicyUseCase) ListPolicies(ctx context.Context, limit, offset int) ([]*domain.DepositPolicy, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.policyRepo.List(ctx, limit, offset)
}

func (uc *PolicyUseCase) invalidateCache(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, effectivePolicyCacheKey)
	}
}
