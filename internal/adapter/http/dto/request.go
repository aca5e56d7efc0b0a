package dto

import (
	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// CreatePolicyRequest represents a request to create a deposit policy.
type CreatePolicyRequest struct {
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	DueDay         int             `json:"due_day"`
	ReminderDay    int             `json:"reminder_day"`
	EffectiveMonth string          `json:"effective_month"`
}

// ToUseCaseInput converts to use case input. The actor is filled by
// the handler from the authenticated member.
func (r *CreatePolicyRequest) ToUseCaseInput(actorID string) (usecase.CreatePolicyInput, error) {
	month, err := domain.ParseMonth(r.EffectiveMonth)
	if err != nil {
		return usecase.CreatePolicyInput{}, err
	}

	return usecase.CreatePolicyInput{
		MonthlyAmount:  r.MonthlyAmount,
		DueDay:         r.DueDay,
		ReminderDay:    r.ReminderDay,
		EffectiveMonth: month,
		ActorID:        actorID,
	}, nil
}

// CreateFundRequest represents a request to create a fund.
type CreateFundRequest struct {
	Title    string `json:"title"`
	Currency string `json:"currency"`
}

// TransferRequest represents a request to move money between funds.
type TransferRequest struct {
	FromFundID  string          `json:"from_fund_id"`
	ToFundID    string          `json:"to_fund_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// SubmitDepositRequest represents a member's deposit submission.
type SubmitDepositRequest struct {
	Month      string          `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	ReceiptKey string          `json:"receipt_key"`
}

// Parse converts to use case input.
func (r *SubmitDepositRequest) Parse() (usecase.SubmitDepositInput, error) {
	month, err := domain.ParseMonth(r.Month)
	if err != nil {
		return usecase.SubmitDepositInput{}, err
	}

	return usecase.SubmitDepositInput{
		Month:      month,
		Amount:     r.Amount,
		ReceiptKey: r.ReceiptKey,
	}, nil
}

// VerifyDepositRequest represents a manager verifying a deposit into a
// fund.
type VerifyDepositRequest struct {
	FundID string `json:"fund_id"`
}

// RejectDepositRequest represents a manager rejecting a deposit.
type RejectDepositRequest struct {
	Reason string `json:"reason"`
}

// RegisterMemberRequest represents a request to register a member.
type RegisterMemberRequest struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role,omitempty"`
}
