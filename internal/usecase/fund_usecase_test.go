package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
	"github.com/oseme/esusu/internal/usecase/mocks"
)

var admin = &domain.Member{ID: "admin-1", Role: domain.RoleAdmin}

func newFundFixture() (*usecase.FundUseCase, *mocks.MockFundRepository, *mocks.MockActivityRepository) {
	fundRepo := mocks.NewMockFundRepository()
	activityRepo := mocks.NewMockActivityRepository()

	uc := usecase.NewFundUseCase(
		mocks.NewMockTransactionManager(),
		fundRepo,
		activityRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockClock(testNow),
	)

	return uc, fundRepo, activityRepo
}

func TestFundUseCase_CreateFund(t *testing.T) {
	uc, _, activityRepo := newFundFixture()

	fund, err := uc.CreateFund(context.Background(), usecase.CreateFundInput{
		Title:    "School Fees",
		Currency: "NGN",
		Actor:    admin,
	})
	require.NoError(t, err)

	assert.True(t, fund.Balance.IsZero())
	assert.Equal(t, "NGN", fund.Currency)
	assert.Equal(t, "admin-1", fund.CreatedBy)

	entries := activityRepo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionFundCreate, entries[0].Action)
}

func TestFundUseCase_CreateFund_Validation(t *testing.T) {
	uc, _, _ := newFundFixture()

	_, err := uc.CreateFund(context.Background(), usecase.CreateFundInput{
		Title: "School Fees", Currency: "NGN",
		Actor: &domain.Member{ID: "mem-1", Role: domain.RoleMember},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	_, err = uc.CreateFund(context.Background(), usecase.CreateFundInput{
		Title: "", Currency: "NGN", Actor: admin,
	})
	assert.Error(t, err)

	_, err = uc.CreateFund(context.Background(), usecase.CreateFundInput{
		Title: "School Fees", Currency: "naira", Actor: admin,
	})
	assert.Error(t, err)
}

func TestFundUseCase_GetFund_DeletedIsNotFound(t *testing.T) {
	uc, fundRepo, _ := newFundFixture()

	fundRepo.Put(&domain.Fund{ID: "gone", Title: "Old", Currency: "NGN", Deleted: true})

	_, err := uc.GetFund(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrFundNotFound)
}

func TestFundUseCase_DeleteFund(t *testing.T) {
	uc, fundRepo, activityRepo := newFundFixture()

	fundRepo.Put(&domain.Fund{ID: "empty", Title: "Empty", Currency: "NGN", Balance: decimal.Zero})
	fundRepo.Put(&domain.Fund{ID: "loaded", Title: "Loaded", Currency: "NGN", Balance: decimal.NewFromInt(50)})

	// A fund still holding money cannot be deleted.
	assert.ErrorIs(t, uc.DeleteFund(context.Background(), "loaded", admin), domain.ErrFundNotEmpty)

	require.NoError(t, uc.DeleteFund(context.Background(), "empty", admin))

	_, err := uc.GetFund(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrFundNotFound)

	// Deleting twice reports not found.
	assert.ErrorIs(t, uc.DeleteFund(context.Background(), "empty", admin), domain.ErrFundNotFound)

	entries := activityRepo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionFundDelete, entries[0].Action)
}

func TestFundUseCase_ManagerCanManageFunds(t *testing.T) {
	uc, fundRepo, _ := newFundFixture()

	fund, err := uc.CreateFund(context.Background(), usecase.CreateFundInput{
		Title:    "Emergency",
		Currency: "NGN",
		Actor:    manager,
	})
	require.NoError(t, err)
	assert.Equal(t, manager.ID, fund.CreatedBy)

	fundRepo.Put(&domain.Fund{ID: "empty", Title: "Empty", Currency: "NGN", Balance: decimal.Zero})
	require.NoError(t, uc.DeleteFund(context.Background(), "empty", manager))

	_, err = uc.GetFund(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrFundNotFound)
}

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	fundRepo := mocks.NewMockFundRepository()
	depositRepo := mocks.NewMockDepositRepository()
	uc := usecase.NewLedgerUseCase(fundRepo, depositRepo)

	// Empty ledger is consistent.
	report, err := uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)

	fundRepo.Put(&domain.Fund{ID: "f1", Currency: "NGN", Balance: decimal.NewFromInt(700)})
	fundRepo.Put(&domain.Fund{ID: "f2", Currency: "NGN", Balance: decimal.NewFromInt(300)})
	depositRepo.Put(&domain.Deposit{ID: "d1", MemberID: "m1", Status: domain.DepositVerified, Amount: decimal.NewFromInt(1000)})

	report, err = uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.True(t, report.TotalBalance.Equal(decimal.NewFromInt(1000)))

	// Drift is reported, not hidden.
	depositRepo.Put(&domain.Deposit{ID: "d2", MemberID: "m2", Status: domain.DepositVerified, Amount: decimal.NewFromInt(5)})

	report, err = uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.True(t, report.TotalVerified.Equal(decimal.NewFromInt(1005)))
}
