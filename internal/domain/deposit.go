package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the verification state of a deposit.
type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositVerified DepositStatus = "verified"
	DepositRejected DepositStatus = "rejected"
)

// Deposit is a member's monthly payment. It starts pending with an
// uploaded receipt and is verified into a fund (crediting the fund
// balance) or rejected by a manager. A member can have at most one
// non-rejected deposit per month.
type Deposit struct {
	ID           string
	MemberID     string
	Month        Month
	Amount       decimal.Decimal
	ReceiptKey   string
	Status       DepositStatus
	FundID       *string
	RejectReason string
	VerifiedBy   *string
	VerifiedAt   *time.Time
	CreatedAt    time.Time
}

// Validate validates a deposit submission.
func (d *Deposit) Validate() error {
	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if d.Month.IsZero() {
		return ErrInvalidMonth
	}

	if d.ReceiptKey == "" {
		return ErrMissingReceipt
	}

	return nil
}

// Pending reports whether the deposit still awaits verification.
func (d *Deposit) Pending() bool {
	return d.Status == DepositPending
}
