package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundTransaction is the immutable audit record of a transfer between
// two funds. Exactly one row is written per transfer, in the same
// transaction as the two balance mutations.
type FundTransaction struct {
	ID          string
	FromFundID  string
	ToFundID    string
	Amount      decimal.Decimal
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

// Validate validates a transfer request.
func (t *FundTransaction) Validate() error {
	if t.FromFundID == t.ToFundID {
		return ErrSameFund
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
