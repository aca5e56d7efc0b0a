package domain

import (
	"encoding/json"
	"time"
)

// ActivityLog is an append-only record of a mutating operation: who
// did what, with a structured detail payload. Core operations write
// one row in the same transaction as their state change.
type ActivityLog struct {
	ID        string
	ActorID   string
	Action    string
	Detail    JSON
	CreatedAt time.Time
}

// JSON is a JSON-serializable detail payload.
type JSON map[string]any

// Activity actions.
const (
	ActionPolicyCreate   = "policy.create"
	ActionPolicyDelete   = "policy.delete"
	ActionFundCreate     = "fund.create"
	ActionFundDelete     = "fund.delete"
	ActionTransferCreate = "transfer.create"
	ActionDepositSubmit  = "deposit.submit"
	ActionDepositVerify  = "deposit.verify"
	ActionDepositReject  = "deposit.reject"
	ActionMemberRegister = "member.register"
)

// MarshalDetail converts a domain object to a JSON payload for an
// activity entry.
func MarshalDetail(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal detail"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal detail"}
	}

	return result
}

// ActivityFilter defines filters for querying the activity log.
type ActivityFilter struct {
	ActorID   string
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
