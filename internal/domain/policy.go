package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositPolicy is a time-bounded rule fixing the monthly deposit
// amount and the due/reminder days. Policies form a chain of
// [EffectiveMonth, TerminatedAt) intervals: each TerminatedAt, when
// set, equals the EffectiveMonth of the policy that superseded it, and
// exactly one policy is open-ended (TerminatedAt nil) at a time.
type DepositPolicy struct {
	ID             string
	MonthlyAmount  decimal.Decimal
	DueDay         int
	ReminderDay    int
	EffectiveMonth Month
	TerminatedAt   *Month
	CreatedBy      string
	CreatedAt      time.Time
}

// Validate validates the policy fields.
func (p *DepositPolicy) Validate() error {
	if p.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if p.DueDay < 1 || p.DueDay > 31 {
		return ErrInvalidDayOfMonth
	}

	if p.ReminderDay < 1 || p.ReminderDay > 31 {
		return ErrInvalidDayOfMonth
	}

	if p.EffectiveMonth.IsZero() {
		return ErrInvalidMonth
	}

	return nil
}

// Covers reports whether the policy governs month m, i.e. whether m
// falls inside [EffectiveMonth, TerminatedAt). This is the canonical
// definition of "effective policy for m" regardless of how the chain
// was built.
func (p *DepositPolicy) Covers(m Month) bool {
	if m.Before(p.EffectiveMonth) {
		return false
	}

	return p.TerminatedAt == nil || m.Before(*p.TerminatedAt)
}

// OpenEnded reports whether the policy has no termination month.
func (p *DepositPolicy) OpenEnded() bool {
	return p.TerminatedAt == nil
}

// Upcoming reports whether the policy only starts governing after the
// current month. Only upcoming policies may be deleted.
func (p *DepositPolicy) Upcoming(current Month) bool {
	return p.EffectiveMonth.After(current)
}

// ReminderDate returns the day of month the reminder fires in m,
// clamping past the last day of short months.
func (p *DepositPolicy) ReminderDate(m Month) int {
	if days := m.Days(); p.ReminderDay > days {
		return days
	}

	return p.ReminderDay
}
