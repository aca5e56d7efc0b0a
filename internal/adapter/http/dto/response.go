package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oseme/esusu/internal/domain"
)

// PolicyResponse represents a deposit policy in API responses.
type PolicyResponse struct {
	ID             string          `json:"id"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	DueDay         int             `json:"due_day"`
	ReminderDay    int             `json:"reminder_day"`
	EffectiveMonth string          `json:"effective_month"`
	TerminatedAt   *string         `json:"terminated_at,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PolicyFromDomain converts a domain policy to a response.
func PolicyFromDomain(p *domain.DepositPolicy) *PolicyResponse {
	resp := &PolicyResponse{
		ID:             p.ID,
		MonthlyAmount:  p.MonthlyAmount,
		DueDay:         p.DueDay,
		ReminderDay:    p.ReminderDay,
		EffectiveMonth: p.EffectiveMonth.String(),
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
	}

	if p.TerminatedAt != nil {
		s := p.TerminatedAt.String()
		resp.TerminatedAt = &s
	}

	return resp
}

// PoliciesFromDomain converts domain policies to responses.
func PoliciesFromDomain(policies []*domain.DepositPolicy) []*PolicyResponse {
	result := make([]*PolicyResponse, len(policies))
	for i, p := range policies {
		result[i] = PolicyFromDomain(p)
	}
	return result
}

// FundResponse represents a fund in API responses.
type FundResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FundFromDomain converts a domain fund to a response.
func FundFromDomain(f *domain.Fund) *FundResponse {
	return &FundResponse{
		ID:        f.ID,
		Title:     f.Title,
		Currency:  f.Currency,
		Balance:   f.Balance,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FundsFromDomain converts domain funds to responses.
func FundsFromDomain(funds []*domain.Fund) []*FundResponse {
	result := make([]*FundResponse, len(funds))
	for i, f := range funds {
		result[i] = FundFromDomain(f)
	}
	return result
}

// TransactionResponse represents a fund transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	FromFundID  string          `json:"from_fund_id"`
	ToFundID    string          `json:"to_fund_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.FundTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		FromFundID:  t.FromFundID,
		ToFundID:    t.ToFundID,
		Amount:      t.Amount,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.FundTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// DepositResponse represents a deposit in API responses.
type DepositResponse struct {
	ID           string          `json:"id"`
	MemberID     string          `json:"member_id"`
	Month        string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	ReceiptKey   string          `json:"receipt_key"`
	Status       string          `json:"status"`
	FundID       *string         `json:"fund_id,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
	VerifiedBy   *string         `json:"verified_by,omitempty"`
	VerifiedAt   *time.Time      `json:"verified_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DepositFromDomain converts a domain deposit to a response.
func DepositFromDomain(d *domain.Deposit) *DepositResponse {
	return &DepositResponse{
		ID:           d.ID,
		MemberID:     d.MemberID,
		Month:        d.Month.String(),
		Amount:       d.Amount,
		ReceiptKey:   d.ReceiptKey,
		Status:       string(d.Status),
		FundID:       d.FundID,
		RejectReason: d.RejectReason,
		VerifiedBy:   d.VerifiedBy,
		VerifiedAt:   d.VerifiedAt,
		CreatedAt:    d.CreatedAt,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.Deposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationFromDomain converts a domain notification to a response.
func NotificationFromDomain(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationsFromDomain converts domain notifications to responses.
func NotificationsFromDomain(notifications []*domain.Notification) []*NotificationResponse {
	result := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = NotificationFromDomain(n)
	}
	return result
}

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      string(m.Role),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// ActivityResponse represents an activity entry in API responses.
type ActivityResponse struct {
	ID        string      `json:"id"`
	ActorID   string      `json:"actor_id"`
	Action    string      `json:"action"`
	Detail    domain.JSON `json:"detail,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ActivitiesFromDomain converts domain activity entries to responses.
func ActivitiesFromDomain(entries []*domain.ActivityLog) []*ActivityResponse {
	result := make([]*ActivityResponse, len(entries))
	for i, e := range entries {
		result[i] = &ActivityResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	TotalBalance  decimal.Decimal `json:"total_balance"`
	TotalVerified decimal.Decimal `json:"total_verified"`
	Consistent    bool            `json:"consistent"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
