package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
)

// TransferUseCase moves money between two funds atomically, with the
// source fund never allowed below zero.
type TransferUseCase struct {
	txManager       TransactionManager
	fundRepo        FundRepository
	transactionRepo TransactionRepository
	activityRepo    ActivityRepository
	idGen           IDGenerator
	clock           Clock
	retrier         Retrier
}

// NewTransferUseCase creates a new TransferUseCase. retrier may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	fundRepo FundRepository,
	transactionRepo TransactionRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	clock Clock,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		fundRepo:        fundRepo,
		transactionRepo: transactionRepo,
		activityRepo:    activityRepo,
		idGen:           idGen,
		clock:           clock,
		retrier:         retrier,
	}
}

// TransferInput represents input for a fund transfer.
type TransferInput struct {
	FromFundID  string
	ToFundID    string
	Amount      decimal.Decimal
	Description string
	Actor       *domain.Member
}

// Transfer debits one fund and credits another atomically, writing one
// immutable FundTransaction row and one activity-log row in the same
// transaction. Both fund rows are locked in ascending-id order before
// the sufficiency check, so concurrent transfers cannot act on stale
// balances or deadlock on opposite-direction pairs.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.FundTransaction, error) {
	if !input.Actor.Role.CanTransferFunds() {
		return nil, domain.ErrInsufficientRole
	}

	if input.FromFundID == input.ToFundID {
		return nil, domain.ErrSameFund
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var result *domain.FundTransaction

	op := func(ctx context.Context) error {
		txn, err := uc.transferTx(ctx, input)
		if err != nil {
			return err
		}

		result = txn

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Do(ctx, op)
	} else {
		err = op(ctx)
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *TransferUseCase) transferTx(ctx context.Context, input TransferInput) (*domain.FundTransaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := []string{input.FromFundID, input.ToFundID}
	sort.Strings(ids)

	funds, err := uc.fundRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	fundMap := make(map[string]*domain.Fund, len(funds))
	for _, f := range funds {
		if !f.Deleted {
			fundMap[f.ID] = f
		}
	}

	from := fundMap[input.FromFundID]
	to := fundMap[input.ToFundID]

	if from == nil || to == nil {
		return nil, domain.ErrFundNotFound
	}

	if from.Currency != to.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()

	txn := &domain.FundTransaction{
		ID:          uc.idGen.Generate(),
		FromFundID:  input.FromFundID,
		ToFundID:    input.ToFundID,
		Amount:      input.Amount,
		Description: input.Description,
		CreatedBy:   input.Actor.ID,
		CreatedAt:   now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.fundRepo.UpdateBalance(ctx, tx, from.ID, from.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.fundRepo.UpdateBalance(ctx, tx, to.ID, to.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	entry := &domain.ActivityLog{
		ActorID:   input.Actor.ID,
		Action:    domain.ActionTransferCreate,
		Detail:    domain.MarshalDetail(txn),
		CreatedAt: now,
	}

	if err := uc.activityRepo.CreateTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a fund transaction by ID.
func (uc *TransferUseCase) GetTransaction(ctx context.Context, id string) (*domain.FundTransaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsByFund lists transactions touching a fund.
func (uc *TransferUseCase) ListTransactionsByFund(ctx context.Context, fundID string, limit, offset int) ([]*domain.FundTransaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.transactionRepo.ListByFund(ctx, fundID, limit, offset)
}
