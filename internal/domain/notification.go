package domain

import "time"

// NotificationKind classifies a notification.
type NotificationKind string

const (
	NotificationDepositReminder NotificationKind = "deposit.reminder"
	NotificationDepositVerified NotificationKind = "deposit.verified"
	NotificationDepositRejected NotificationKind = "deposit.rejected"
)

// Notification is a message recorded for a member. Delivery channels
// are outside this service; rows are the sink.
type Notification struct {
	ID        string
	MemberID  string
	Kind      NotificationKind
	Message   string
	Read      bool
	CreatedAt time.Time
}
