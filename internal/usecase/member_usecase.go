package usecase

import (
	"context"
	"strings"

	"github.com/oseme/esusu/internal/domain"
)

// MemberUseCase manages the member directory. Identity and credentials
// live with the external identity provider; the directory only mirrors
// who belongs to the group and with which role.
type MemberUseCase struct {
	memberRepo   MemberRepository
	activityRepo ActivityRepository
	clock        Clock
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(memberRepo MemberRepository, activityRepo ActivityRepository, clock Clock) *MemberUseCase {
	return &MemberUseCase{
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
		clock:        clock,
	}
}

// RegisterMemberInput represents input for registering a member.
type RegisterMemberInput struct {
	ID    string
	Email string
	Name  string
	Role  domain.Role
	Actor *domain.Member
}

// RegisterMember adds a member under their identity-provider subject
// ID.
func (uc *MemberUseCase) RegisterMember(ctx context.Context, input RegisterMemberInput) (*domain.Member, error) {
	if !input.Actor.Role.CanManageMembers() {
		return nil, domain.ErrInsufficientRole
	}

	if strings.TrimSpace(input.ID) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, domain.ErrUnauthorized
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}

	if !role.IsValid() {
		return nil, domain.ErrInsufficientRole
	}

	now := uc.clock.Now().UTC()

	member := &domain.Member{
		ID:        input.ID,
		Email:     input.Email,
		Name:      input.Name,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	entry := &domain.ActivityLog{
		ActorID:   input.Actor.ID,
		Action:    domain.ActionMemberRegister,
		Detail:    domain.MarshalDetail(member),
		CreatedAt: now,
	}

	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return member, nil
}

// GetMember retrieves a member by ID.
func (uc *MemberUseCase) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return uc.memberRepo.GetByID(ctx, id)
}

// ListMembers lists members with pagination.
func (uc *MemberUseCase) ListMembers(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.memberRepo.List(ctx, limit, offset)
}
