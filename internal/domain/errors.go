package domain

import "errors"

var (
	// Fund errors
	ErrFundNotFound      = errors.New("fund not found")
	ErrFundNotEmpty      = errors.New("fund balance must be zero before deletion")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCurrencyMismatch  = errors.New("cannot transfer between different currencies")

	// Transfer errors
	ErrSameFund            = errors.New("cannot transfer to the same fund")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrTransactionNotFound = errors.New("fund transaction not found")

	// Policy errors
	ErrPolicyNotFound     = errors.New("deposit policy not found")
	ErrPolicyOutOfWindow  = errors.New("effective month must be the current or next calendar month")
	ErrPolicyMonthClosed  = errors.New("deposits already exist for the effective month")
	ErrPolicyNotUpcoming  = errors.New("only upcoming policies can be deleted")
	ErrInvalidDayOfMonth  = errors.New("day of month must be between 1 and 31")
	ErrNoEffectivePolicy  = errors.New("no policy is effective for the requested month")

	// Deposit errors
	ErrDepositNotFound       = errors.New("deposit not found")
	ErrDepositNotPending     = errors.New("deposit has already been processed")
	ErrDuplicateDeposit      = errors.New("a deposit for this month already exists")
	ErrDepositAmountMismatch = errors.New("deposit amount does not match the effective policy")
	ErrMissingReceipt        = errors.New("deposit receipt is required")
	ErrMissingRejectReason   = errors.New("a reason is required to reject a deposit")

	// Member errors
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already registered")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
