package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/adapter/repository/postgres"
	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
	"github.com/oseme/esusu/tests/testutil"
)

func newTransferUseCase(db *testutil.TestDB) *usecase.TransferUseCase {
	pool := db.Pool

	return usecase.NewTransferUseCase(
		postgres.NewTxManager(pool),
		postgres.NewFundRepository(pool),
		postgres.NewTransactionRepository(pool),
		postgres.NewActivityRepository(pool),
		postgres.NewULIDGenerator(),
		usecase.NewSystemClock(),
		postgres.NewRetrier(zerolog.Nop()),
	)
}

func TestTransferMovesMoney(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	manager := db.CreateTestMember(ctx, "mgr-1", domain.RoleManager)
	from := db.CreateTestFund(ctx, "General", decimal.NewFromInt(1000))
	to := db.CreateTestFund(ctx, "Emergency", decimal.NewFromInt(0))

	uc := newTransferUseCase(db)

	txn, err := uc.Transfer(ctx, usecase.TransferInput{
		FromFundID: from.ID,
		ToFundID:   to.ID,
		Amount:     decimal.NewFromInt(400),
		Actor:      manager,
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	fundRepo := postgres.NewFundRepository(db.Pool)

	gotFrom, err := fundRepo.GetByID(ctx, from.ID)
	if err != nil {
		t.Fatalf("failed to load source fund: %v", err)
	}
	gotTo, err := fundRepo.GetByID(ctx, to.ID)
	if err != nil {
		t.Fatalf("failed to load destination fund: %v", err)
	}

	if !gotFrom.Balance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected source balance 600, got %s", gotFrom.Balance)
	}
	if !gotTo.Balance.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected destination balance 400, got %s", gotTo.Balance)
	}

	// The audit row is immutable and readable afterwards.
	stored, err := postgres.NewTransactionRepository(db.Pool).GetByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("failed to load transaction: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected stored amount 400, got %s", stored.Amount)
	}
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	manager := db.CreateTestMember(ctx, "mgr-1", domain.RoleManager)
	a := db.CreateTestFund(ctx, "A", decimal.NewFromInt(5000))
	b := db.CreateTestFund(ctx, "B", decimal.NewFromInt(5000))

	uc := newTransferUseCase(db)

	const workers = 20

	var (
		wg       sync.WaitGroup
		failures atomic.Int32
	)

	// Opposite directions force lock contention on the same two rows.
	for i := 0; i < workers; i++ {
		wg.Add(1)
		fromID, toID := a.ID, b.ID
		if i%2 == 1 {
			fromID, toID = b.ID, a.ID
		}

		go func() {
			defer wg.Done()

			_, err := uc.Transfer(ctx, usecase.TransferInput{
				FromFundID: fromID,
				ToFundID:   toID,
				Amount:     decimal.NewFromInt(100),
				Actor:      manager,
			})
			if err != nil {
				failures.Add(1)
			}
		}()
	}

	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Fatalf("expected all transfers to succeed, %d failed", n)
	}

	total, err := postgres.NewFundRepository(db.Pool).TotalBalance(ctx)
	if err != nil {
		t.Fatalf("failed to total balances: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected conserved total 10000, got %s", total)
	}
}

func TestTransferRefusesOverdraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	manager := db.CreateTestMember(ctx, "mgr-1", domain.RoleManager)
	from := db.CreateTestFund(ctx, "Small", decimal.NewFromInt(50))
	to := db.CreateTestFund(ctx, "Big", decimal.NewFromInt(0))

	uc := newTransferUseCase(db)

	_, err := uc.Transfer(ctx, usecase.TransferInput{
		FromFundID: from.ID,
		ToFundID:   to.ID,
		Amount:     decimal.NewFromInt(100),
		Actor:      manager,
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	got, err := postgres.NewFundRepository(db.Pool).GetByID(ctx, from.ID)
	if err != nil {
		t.Fatalf("failed to load fund: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected untouched balance 50, got %s", got.Balance)
	}
}
