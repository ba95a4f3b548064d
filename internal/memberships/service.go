package memberships

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type membershipRepository interface {
	ListTenantMembers(ctx context.Context, tenantID uuid.UUID) ([]TenantMemberDTO, error)
	FindMembershipByID(ctx context.Context, tenantID, membershipID uuid.UUID) (*models.TenantMembership, error)
	UpdateMembership(ctx context.Context, membershipID, tenantID uuid.UUID, input UpdateMembershipInput) (*models.TenantMembership, error)
	DeleteMembership(ctx context.Context, tenantID, userID uuid.UUID) error
	CountMembersWithRoles(ctx context.Context, tenantID uuid.UUID, roles ...enums.MemberRole) (int64, error)
}

// Service handles member administration for a tenant.
type Service struct {
	repo membershipRepository
}

func NewService(repo membershipRepository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("membership repository required")
	}
	return &Service{repo: repo}, nil
}

// List returns the tenant's members with their profiles and grants.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]TenantMemberDTO, error) {
	rows, err := s.repo.ListTenantMembers(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list members")
	}
	return rows, nil
}

// Update changes a member's role, position, or grants. Only owners can
// touch ownership, and a company must keep at least one active owner.
func (s *Service) Update(ctx context.Context, tenantID, membershipID uuid.UUID, actorRole enums.MemberRole, input UpdateMembershipInput) (*MembershipDTO, error) {
	membership, err := s.load(ctx, tenantID, membershipID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && *input.Role != membership.Role {
		if (*input.Role == enums.MemberRoleOwner || membership.Role == enums.MemberRoleOwner) && actorRole != enums.MemberRoleOwner {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only owners can change ownership")
		}
		if membership.Role == enums.MemberRoleOwner {
			if err := s.requireAnotherOwner(ctx, tenantID); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.repo.UpdateMembership(ctx, membershipID, tenantID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update member")
	}
	return ToDTO(updated), nil
}

// Remove deletes a membership. Members cannot remove themselves, only
// owners can remove an owner, and the last owner cannot be removed.
func (s *Service) Remove(ctx context.Context, tenantID, membershipID, actorUserID uuid.UUID, actorRole enums.MemberRole) error {
	membership, err := s.load(ctx, tenantID, membershipID)
	if err != nil {
		return err
	}

	if membership.UserID == actorUserID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot remove your own membership")
	}
	if membership.Role == enums.MemberRoleOwner {
		if actorRole != enums.MemberRoleOwner {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only owners can remove owners")
		}
		if err := s.requireAnotherOwner(ctx, tenantID); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteMembership(ctx, tenantID, membership.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove member")
	}
	return nil
}

func (s *Service) load(ctx context.Context, tenantID, membershipID uuid.UUID) (*models.TenantMembership, error) {
	membership, err := s.repo.FindMembershipByID(ctx, tenantID, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load member")
	}
	return membership, nil
}

func (s *Service) requireAnotherOwner(ctx context.Context, tenantID uuid.UUID) error {
	owners, err := s.repo.CountMembersWithRoles(ctx, tenantID, enums.MemberRoleOwner)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count owners")
	}
	if owners <= 1 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "company needs at least one owner")
	}
	return nil
}
