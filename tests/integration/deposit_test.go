package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/adapter/repository/postgres"
	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
	"github.com/oseme/esusu/tests/testutil"
)

func newDepositUseCase(db *testutil.TestDB) *usecase.DepositUseCase {
	pool := db.Pool

	return usecase.NewDepositUseCase(
		postgres.NewTxManager(pool),
		postgres.NewDepositRepository(pool),
		postgres.NewFundRepository(pool),
		postgres.NewPolicyRepository(pool),
		postgres.NewActivityRepository(pool),
		postgres.NewNotificationRepository(pool),
		postgres.NewULIDGenerator(),
		usecase.NewSystemClock(),
	)
}

func TestDepositVerificationCreditsFund(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	manager := db.CreateTestMember(ctx, "mgr-1", domain.RoleManager)
	member := db.CreateTestMember(ctx, "mem-1", domain.RoleMember)
	fund := db.CreateTestFund(ctx, "General", decimal.Zero)

	policyUC := newPolicyUseCase(db)
	depositUC := newDepositUseCase(db)

	month := domain.MonthOf(time.Now().UTC())

	if _, err := policyUC.CreatePolicy(ctx, usecase.CreatePolicyInput{
		MonthlyAmount:  decimal.NewFromInt(500),
		DueDay:         5,
		ReminderDay:    1,
		EffectiveMonth: month,
		ActorID:        manager.ID,
	}); err != nil {
		t.Fatalf("failed to create policy: %v", err)
	}

	deposit, err := depositUC.SubmitDeposit(ctx, usecase.SubmitDepositInput{
		Month:      month,
		Amount:     decimal.NewFromInt(500),
		ReceiptKey: "receipts/2024-01/mem-1.jpg",
		Actor:      member,
	})
	if err != nil {
		t.Fatalf("failed to submit deposit: %v", err)
	}
	if deposit.Status != domain.DepositPending {
		t.Fatalf("expected pending deposit, got %s", deposit.Status)
	}

	verified, err := depositUC.VerifyDeposit(ctx, usecase.VerifyDepositInput{
		DepositID: deposit.ID,
		FundID:    fund.ID,
		Actor:     manager,
	})
	if err != nil {
		t.Fatalf("failed to verify deposit: %v", err)
	}
	if verified.Status != domain.DepositVerified {
		t.Fatalf("expected verified deposit, got %s", verified.Status)
	}

	got, err := postgres.NewFundRepository(db.Pool).GetByID(ctx, fund.ID)
	if err != nil {
		t.Fatalf("failed to load fund: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected fund balance 500, got %s", got.Balance)
	}

	// Verified deposits are what the fund totals must account for.
	report, err := usecase.NewLedgerUseCase(
		postgres.NewFundRepository(db.Pool),
		postgres.NewDepositRepository(db.Pool),
	).CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if !report.Consistent {
		t.Fatalf("expected consistent ledger, balance %s vs verified %s",
			report.TotalBalance, report.TotalVerified)
	}
}

func TestDuplicateDepositForMonthRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	member := db.CreateTestMember(ctx, "mem-1", domain.RoleMember)
	depositUC := newDepositUseCase(db)

	month := domain.MonthOf(time.Now().UTC())

	input := usecase.SubmitDepositInput{
		Month:      month,
		Amount:     decimal.NewFromInt(200),
		ReceiptKey: "receipts/first.jpg",
		Actor:      member,
	}

	if _, err := depositUC.SubmitDeposit(ctx, input); err != nil {
		t.Fatalf("failed to submit deposit: %v", err)
	}

	_, err := depositUC.SubmitDeposit(ctx, input)
	if !errors.Is(err, domain.ErrDuplicateDeposit) {
		t.Fatalf("expected ErrDuplicateDeposit, got %v", err)
	}
}
