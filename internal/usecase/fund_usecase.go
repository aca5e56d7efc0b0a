package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
)

// FundUseCase handles fund lifecycle.
type FundUseCase struct {
	txManager    TransactionManager
	fundRepo     FundRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
	clock        Clock
}

// NewFundUseCase creates a new FundUseCase.
func NewFundUseCase(
	txManager TransactionManager,
	fundRepo FundRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	clock Clock,
) *FundUseCase {
	return &FundUseCase{
		txManager:    txManager,
		fundRepo:     fundRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateFundInput represents input for creating a fund.
type CreateFundInput struct {
	Title    string
	Currency string
	Actor    *domain.Member
}

// CreateFund creates a new fund with a zero balance.
func (uc *FundUseCase) CreateFund(ctx context.Context, input CreateFundInput) (*domain.Fund, error) {
	if !input.Actor.Role.CanManageFunds() {
		return nil, domain.ErrInsufficientRole
	}

	if err := domain.ValidateFundTitle(input.Title); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()

	fund := &domain.Fund{
		ID:        uc.idGen.Generate(),
		Title:     input.Title,
		Currency:  input.Currency,
		Balance:   decimal.Zero,
		CreatedBy: input.Actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.fundRepo.Create(ctx, fund); err != nil {
		return nil, err
	}

	entry := &domain.ActivityLog{
		ActorID:   input.Actor.ID,
		Action:    domain.ActionFundCreate,
		Detail:    domain.MarshalDetail(fund),
		CreatedAt: now,
	}

	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return fund, nil
}

// GetFund retrieves a fund by ID.
func (uc *FundUseCase) GetFund(ctx context.Context, id string) (*domain.Fund, error) {
	fund, err := uc.fundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fund.Deleted {
		return nil, domain.ErrFundNotFound
	}

	return fund, nil
}

// ListFunds lists non-deleted funds with pagination.
func (uc *FundUseCase) ListFunds(ctx context.Context, limit, offset int) ([]*domain.Fund, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.fundRepo.List(ctx, limit, offset)
}

// DeleteFund soft-deletes an empty fund. A fund still holding a
// balance cannot be deleted; money must be transferred out first.
func (uc *FundUseCase) DeleteFund(ctx context.Context, id string, actor *domain.Member) error {
	if !actor.Role.CanManageFunds() {
		return domain.ErrInsufficientRole
	}

	now := uc.clock.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	fund, err := uc.fundRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if fund.Deleted {
		return domain.ErrFundNotFound
	}

	if !fund.Balance.IsZero() {
		return domain.ErrFundNotEmpty
	}

	if err := uc.fundRepo.SoftDelete(ctx, tx, id, now); err != nil {
		return err
	}

	entry := &domain.ActivityLog{
		ActorID:   actor.ID,
		Action:    domain.ActionFundDelete,
		Detail:    domain.MarshalDetail(fund),
		CreatedAt: now,
	}

	if err := uc.activityRepo.CreateTx(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
