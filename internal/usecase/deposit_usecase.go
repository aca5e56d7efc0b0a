package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
)

// DepositUseCase handles deposit submission and verification. A
// verified deposit is the only operation that increases the total
// balance held across funds.
type DepositUseCase struct {
	txManager        TransactionManager
	depositRepo      DepositRepository
	fundRepo         FundRepository
	policyRepo       PolicyRepository
	activityRepo     ActivityRepository
	notificationRepo NotificationRepository
	idGen            IDGenerator
	clock            Clock
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TransactionManager,
	depositRepo DepositRepository,
	fundRepo FundRepository,
	policyRepo PolicyRepository,
	activityRepo ActivityRepository,
	notificationRepo NotificationRepository,
	idGen IDGenerator,
	clock Clock,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:        txManager,
		depositRepo:      depositRepo,
		fundRepo:         fundRepo,
		policyRepo:       policyRepo,
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
		idGen:            idGen,
		clock:            clock,
	}
}

// SubmitDepositInput represents a member's deposit submission.
type SubmitDepositInput struct {
	Month      domain.Month
	Amount     decimal.Decimal
	ReceiptKey string
	Actor      *domain.Member
}

// SubmitDeposit records a pending deposit for the acting member. When
// a policy covers the deposit month, the amount must equal the
// policy's monthly amount.
func (uc *DepositUseCase) SubmitDeposit(ctx context.Context, input SubmitDepositInput) (*domain.Deposit, error) {
	now := uc.clock.Now().UTC()

	deposit := &domain.Deposit{
		ID:         uc.idGen.Generate(),
		MemberID:   input.Actor.ID,
		Month:      input.Month,
		Amount:     input.Amount,
		ReceiptKey: input.ReceiptKey,
		Status:     domain.DepositPending,
		CreatedAt:  now,
	}

	if err := deposit.Validate(); err != nil {
		return nil, err
	}

	policy, err := uc.policyRepo.ResolveEffective(ctx, input.Month)
	if err != nil && !errors.Is(err, domain.ErrNoEffectivePolicy) {
		return nil, err
	}

	if policy != nil && !input.Amount.Equal(policy.MonthlyAmount) {
		return nil, fmt.Errorf("%w: expected %s", domain.ErrDepositAmountMismatch, policy.MonthlyAmount)
	}

	exists, err := uc.depositRepo.ExistsActiveForMember(ctx, input.Actor.ID, input.Month)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, domain.ErrDuplicateDeposit
	}

	if err := uc.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	entry := &domain.ActivityLog{
		ActorID:   input.Actor.ID,
		Action:    domain.ActionDepositSubmit,
		Detail:    domain.MarshalDetail(deposit),
		CreatedAt: now,
	}

	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return deposit, nil
}

// VerifyDepositInput represents a manager verifying a deposit into a
// fund.
type VerifyDepositInput struct {
	DepositID string
	FundID    string
	Actor     *domain.Member
}

// VerifyDeposit credits the target fund by the deposit amount and
// marks the deposit verified, atomically.
func (uc *DepositUseCase) VerifyDeposit(ctx context.Context, input VerifyDepositInput) (*domain.Deposit, error) {
	if !input.Actor.Role.CanVerifyDeposits() {
		return nil, domain.ErrInsufficientRole
	}

	now := uc.clock.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, input.DepositID)
	if err != nil {
		return nil, err
	}

	if !deposit.Pending() {
		return nil, domain.ErrDepositNotPending
	}

	fund, err := uc.fundRepo.GetByIDForUpdate(ctx, tx, input.FundID)
	if err != nil {
		return nil, err
	}

	if fund.Deleted {
		return nil, domain.ErrFundNotFound
	}

	if err := uc.fundRepo.UpdateBalance(ctx, tx, fund.ID, fund.ApplyCredit(deposit.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.depositRepo.MarkVerified(ctx, tx, deposit.ID, fund.ID, input.Actor.ID, now); err != nil {
		return nil, err
	}

	deposit.Status = domain.DepositVerified
	deposit.FundID = &fund.ID
	deposit.VerifiedBy = &input.Actor.ID
	deposit.VerifiedAt = &now

	entry := &domain.ActivityLog{
		ActorID:   input.Actor.ID,
		Action:    domain.ActionDepositVerify,
		Detail:    domain.MarshalDetail(deposit),
		CreatedAt: now,
	}

	if err := uc.activityRepo.CreateTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.notify(ctx, deposit.MemberID, domain.NotificationDepositVerified,
		fmt.Sprintf("Your %s deposit of %s was verified.", deposit.Month, deposit.Amount))

	return deposit, nil
}

// RejectDepositInput represents a manager rejecting a deposit.
type RejectDepositInput struct {
	DepositID string
	Reason    string
	Actor     *domain.Member
}

// RejectDeposit marks a pending deposit rejected. The member may
// submit again for the same month.
func (uc *DepositUseCase) RejectDeposit(ctx context.Context, input RejectDepositInput) (*domain.Deposit, error) {
	if !input.Actor.Role.CanVerifyDeposits() {
		return nil, domain.ErrInsufficientRole
	}

	if input.Reason == "" {
		return nil, domain.ErrMissingRejectReason
	}

	now := uc.clock.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, input.DepositID)
	if err != nil {
		return nil, err
	}

	if !deposit.Pending() {
		return nil, domain.ErrDepositNotPending
	}

	if err := uc.depositRepo.MarkRejected(ctx, tx, deposit.ID, input.Reason); err != nil {
		return nil, err
	}

	deposit.Status = domain.DepositRejected
	deposit.RejectReason = input.Reason

	entry := &domain.ActivityLog{
		ActorID:   input.Actor.ID,
		Action:    domain.ActionDepositReject,
		Detail:    domain.MarshalDetail(deposit),
		CreatedAt: now,
	}

	if err := uc.activityRepo.CreateTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.notify(ctx, deposit.MemberID, domain.NotificationDepositRejected,
		fmt.Sprintf("Your %s deposit was rejected: %s", deposit.Month, input.Reason))

	return deposit, nil
}

// GetDeposit retrieves a deposit by ID.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, id string) (*domain.Deposit, error) {
	return uc.depositRepo.GetByID(ctx, id)
}

// ListDepositsByMember lists a member's deposits with pagination.
func (uc *DepositUseCase) ListDepositsByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.Deposit, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.depositRepo.ListByMember(ctx, memberID, limit, offset)
}

// ListDepositsByStatus lists deposits in a given state, oldest first.
func (uc *DepositUseCase) ListDepositsByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.Deposit, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.depositRepo.ListByStatus(ctx, status, limit, offset)
}

// notify records a notification outside the transaction; a failed
// notification must not undo a committed verification.
func (uc *DepositUseCase) notify(ctx context.Context, memberID string, kind domain.NotificationKind, message string) {
	if uc.notificationRepo == nil {
		return
	}

	_ = uc.notificationRepo.Create(ctx, &domain.Notification{
		ID:        uc.idGen.Generate(),
		MemberID:  memberID,
		Kind:      kind,
		Message:   message,
		CreatedAt: uc.clock.Now().UTC(),
	})
}
