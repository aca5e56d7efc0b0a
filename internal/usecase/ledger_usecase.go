package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerUseCase checks ledger-wide invariants.
type LedgerUseCase struct {
	fundRepo    FundRepository
	depositRepo DepositRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(fundRepo FundRepository, depositRepo DepositRepository) *LedgerUseCase {
	return &LedgerUseCase{
		fundRepo:    fundRepo,
		depositRepo: depositRepo,
	}
}

// ConsistencyReport is the result of a consistency check.
type ConsistencyReport struct {
	TotalBalance  decimal.Decimal
	TotalVerified decimal.Decimal
	Consistent    bool
}

// CheckConsistency verifies that the sum of fund balances equals the
// sum of verified deposit amounts. Transfers conserve the total; only
// deposit verification changes it, so any drift means a broken
// transaction somewhere.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalBalance, err := uc.fundRepo.TotalBalance(ctx)
	if err != nil {
		return nil, err
	}

	totalVerified, err := uc.depositRepo.TotalVerified(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		TotalBalance:  totalBalance,
		TotalVerified: totalVerified,
		Consistent:    totalBalance.Equal(totalVerified),
	}, nil
}
