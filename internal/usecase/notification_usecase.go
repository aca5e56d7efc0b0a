package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/oseme/esusu/internal/domain"
)

// NotificationUseCase handles member notifications and the monthly
// deposit reminder run.
type NotificationUseCase struct {
	notificationRepo NotificationRepository
	depositRepo      DepositRepository
	memberRepo       MemberRepository
	policyRepo       PolicyRepository
	idGen            IDGenerator
	clock            Clock
}

// NewNotificationUseCase creates a new NotificationUseCase.
func NewNotificationUseCase(
	notificationRepo NotificationRepository,
	depositRepo DepositRepository,
	memberRepo MemberRepository,
	policyRepo PolicyRepository,
	idGen IDGenerator,
	clock Clock,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		depositRepo:      depositRepo,
		memberRepo:       memberRepo,
		policyRepo:       policyRepo,
		idGen:            idGen,
		clock:            clock,
	}
}

// ListNotifications lists a member's notifications, newest first.
func (uc *NotificationUseCase) ListNotifications(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.notificationRepo.ListByMember(ctx, memberID, unreadOnly, limit, offset)
}

// MarkRead marks a notification read. Members can only mark their own.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, memberID string) error {
	return uc.notificationRepo.MarkRead(ctx, id, memberID)
}

// SendDepositReminders writes a deposit-reminder notification for
// every active member without a non-rejected deposit this month. It is
// invoked daily by the scheduler and only acts on the effective
// policy's reminder day (clamped for short months). Returns the number
// of reminders written.
func (uc *NotificationUseCase) SendDepositReminders(ctx context.Context) (int, error) {
	now := uc.clock.Now().UTC()
	current := domain.MonthOf(now)

	policy, err := uc.policyRepo.ResolveEffective(ctx, current)
	if err != nil {
		if errors.Is(err, domain.ErrNoEffectivePolicy) {
			return 0, nil
		}

		return 0, err
	}

	if now.Day() != policy.ReminderDate(current) {
		return 0, nil
	}

	members, err := uc.memberRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	paidIDs, err := uc.depositRepo.ListMemberIDsWithActive(ctx, current)
	if err != nil {
		return 0, err
	}

	paid := make(map[string]bool, len(paidIDs))
	for _, id := range paidIDs {
		paid[id] = true
	}

	message := fmt.Sprintf("Reminder: your %s deposit of %s is due on day %d.",
		current, policy.MonthlyAmount, policy.DueDay)

	sent := 0
	for _, m := range members {
		if paid[m.ID] {
			continue
		}

		n := &domain.Notification{
			ID:        uc.idGen.Generate(),
			MemberID:  m.ID,
			Kind:      domain.NotificationDepositReminder,
			Message:   message,
			CreatedAt: now,
		}

		if err := uc.notificationRepo.Create(ctx, n); err != nil {
			return sent, err
		}

		sent++
	}

	return sent, nil
}
