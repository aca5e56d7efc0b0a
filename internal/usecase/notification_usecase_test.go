package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
	"github.com/oseme/esusu/internal/usecase/mocks"
)

type notificationFixture struct {
	uc               *usecase.NotificationUseCase
	notificationRepo *mocks.MockNotificationRepository
	depositRepo      *mocks.MockDepositRepository
	memberRepo       *mocks.MockMemberRepository
	policyRepo       *mocks.MockPolicyRepository
	clock            *mocks.MockClock
}

func newNotificationFixture(now time.Time) *notificationFixture {
	f := &notificationFixture{
		notificationRepo: mocks.NewMockNotificationRepository(),
		depositRepo:      mocks.NewMockDepositRepository(),
		memberRepo:       mocks.NewMockMemberRepository(),
		policyRepo:       mocks.NewMockPolicyRepository(),
		clock:            mocks.NewMockClock(now),
	}

	f.uc = usecase.NewNotificationUseCase(
		f.notificationRepo,
		f.depositRepo,
		f.memberRepo,
		f.policyRepo,
		mocks.NewMockIDGenerator(),
		f.clock,
	)

	return f
}

func (f *notificationFixture) seedMembers(ids ...string) {
	for _, id := range ids {
		f.memberRepo.Put(&domain.Member{ID: id, Role: domain.RoleMember, Active: true})
	}
}

func (f *notificationFixture) seedPolicy(reminderDay int) {
	f.policyRepo.Put(&domain.DepositPolicy{
		ID:             "p1",
		MonthlyAmount:  decimal.NewFromInt(500),
		DueDay:         10,
		ReminderDay:    reminderDay,
		EffectiveMonth: month(2024, time.January),
	})
}

func TestNotificationUseCase_SendDepositReminders(t *testing.T) {
	// The 3rd of January is the policy's reminder day.
	f := newNotificationFixture(time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC))
	f.seedPolicy(3)
	f.seedMembers("m1", "m2", "m3")

	// m2 already has a pending deposit this month.
	f.depositRepo.Put(&domain.Deposit{
		ID:       "d1",
		MemberID: "m2",
		Month:    month(2024, time.January),
		Amount:   decimal.NewFromInt(500),
		Status:   domain.DepositPending,
	})

	sent, err := f.uc.SendDepositReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	reminded := make(map[string]bool)
	for _, n := range f.notificationRepo.All() {
		assert.Equal(t, domain.NotificationDepositReminder, n.Kind)
		assert.Contains(t, n.Message, "2024-01")
		assert.Contains(t, n.Message, "500")
		reminded[n.MemberID] = true
	}
	assert.True(t, reminded["m1"])
	assert.False(t, reminded["m2"])
	assert.True(t, reminded["m3"])
}

func TestNotificationUseCase_SendDepositReminders_WrongDay(t *testing.T) {
	f := newNotificationFixture(time.Date(2024, time.January, 4, 8, 0, 0, 0, time.UTC))
	f.seedPolicy(3)
	f.seedMembers("m1")

	sent, err := f.uc.SendDepositReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, f.notificationRepo.All())
}

func TestNotificationUseCase_SendDepositReminders_NoPolicy(t *testing.T) {
	f := newNotificationFixture(time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC))
	f.seedMembers("m1")

	sent, err := f.uc.SendDepositReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestNotificationUseCase_SendDepositReminders_ShortMonthClamp(t *testing.T) {
	// Reminder day 31 clamps to the 29th in February 2024.
	f := newNotificationFixture(time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC))
	f.seedPolicy(31)
	f.seedMembers("m1")

	sent, err := f.uc.SendDepositReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestNotificationUseCase_SendDepositReminders_RejectedStillReminded(t *testing.T) {
	f := newNotificationFixture(time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC))
	f.seedPolicy(3)
	f.seedMembers("m1")

	// A rejected deposit does not count as paid.
	f.depositRepo.Put(&domain.Deposit{
		ID:       "d1",
		MemberID: "m1",
		Month:    month(2024, time.January),
		Amount:   decimal.NewFromInt(500),
		Status:   domain.DepositRejected,
	})

	sent, err := f.uc.SendDepositReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestNotificationUseCase_MarkRead(t *testing.T) {
	f := newNotificationFixture(testNow)

	f.notificationRepo.Create(context.Background(), &domain.Notification{
		ID:       "n1",
		MemberID: "m1",
		Kind:     domain.NotificationDepositVerified,
		Message:  "verified",
	})

	// Another member cannot mark it read.
	assert.ErrorIs(t, f.uc.MarkRead(context.Background(), "n1", "m2"), domain.ErrNotificationNotFound)

	require.NoError(t, f.uc.MarkRead(context.Background(), "n1", "m1"))

	unread, err := f.uc.ListNotifications(context.Background(), "m1", true, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := f.uc.ListNotifications(context.Background(), "m1", false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
