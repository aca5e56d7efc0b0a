package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund is a named balance bucket. Verified deposits credit a fund;
// transfers move money between two funds. A fund balance never goes
// negative through a transfer.
type Fund struct {
	ID        string
	Title     string
	Currency  string
	Balance   decimal.Decimal
	CreatedBy string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks whether the fund can be debited by amount.
func (f *Fund) ValidateDebit(amount decimal.Decimal) error {
	if f.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}

	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (f *Fund) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return f.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (f *Fund) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return f.Balance.Add(amount)
}
