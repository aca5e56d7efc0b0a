package domain

import (
	"errors"
	"time"
)

// Member is a participant of the savings group.
type Member struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role is a member's access level.
type Role string

const (
	// RoleMember can submit deposits and view their own data.
	RoleMember Role = "member"

	// RoleManager can verify deposits, move funds and manage policies.
	RoleManager Role = "manager"

	// RoleAdmin has full access, including fund and member management.
	RoleAdmin Role = "admin"
)

var validRoles = map[Role]bool{
	RoleMember:  true,
	RoleManager: true,
	RoleAdmin:   true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// AtLeast reports whether r grants at least the access of min,
// ordering member < manager < admin.
func (r Role) AtLeast(min Role) bool {
	rank := map[Role]int{RoleMember: 0, RoleManager: 1, RoleAdmin: 2}

	rr, ok := rank[r]
	if !ok {
		return false
	}

	return rr >= rank[min]
}

// CanManagePolicies checks if the role may create or delete deposit
// policies.
func (r Role) CanManagePolicies() bool {
	return r.AtLeast(RoleManager)
}

// CanVerifyDeposits checks if the role may verify or reject deposits.
func (r Role) CanVerifyDeposits() bool {
	return r.AtLeast(RoleManager)
}

// CanTransferFunds checks if the role may move money between funds.
func (r Role) CanTransferFunds() bool {
	return r.AtLeast(RoleManager)
}

// CanManageFunds checks if the role may create or delete funds.
func (r Role) CanManageFunds() bool {
	return r.AtLeast(RoleManager)
}

// CanManageMembers checks if the role may register members.
func (r Role) CanManageMembers() bool {
	return r == RoleAdmin
}

// Authentication errors.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
