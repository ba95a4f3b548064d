package memberships

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type stubMembershipRepo struct {
	rows map[uuid.UUID]*models.TenantMembership
}

func newStubMembershipRepo() *stubMembershipRepo {
	return &stubMembershipRepo{rows: make(map[uuid.UUID]*models.TenantMembership)}
}

func (r *stubMembershipRepo) add(tenantID uuid.UUID, role enums.MemberRole, status enums.MembershipStatus) *models.TenantMembership {
	m := &models.TenantMembership{
		ID:          uuid.New(),
		TenantID:    tenantID,
		UserID:      uuid.New(),
		Role:        role,
		Status:      status,
		Permissions: dbtypes.PermissionMap{},
	}
	r.rows[m.ID] = m
	return m
}

func (r *stubMembershipRepo) ListTenantMembers(_ context.Context, tenantID uuid.UUID) ([]TenantMemberDTO, error) {
	var out []TenantMemberDTO
	for _, m := range r.rows {
		if m.TenantID == tenantID {
			out = append(out, TenantMemberDTO{
				MembershipID: m.ID,
				TenantID:     m.TenantID,
				UserID:       m.UserID,
				Role:         m.Role,
				Status:       m.Status,
				Permissions:  m.Permissions,
			})
		}
	}
	return out, nil
}

func (r *stubMembershipRepo) FindMembershipByID(_ context.Context, tenantID, membershipID uuid.UUID) (*models.TenantMembership, error) {
	m, ok := r.rows[membershipID]
	if !ok || m.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMembershipRepo) UpdateMembership(_ context.Context, membershipID, tenantID uuid.UUID, input UpdateMembershipInput) (*models.TenantMembership, error) {
	m, ok := r.rows[membershipID]
	if !ok || m.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	if input.Role != nil {
		m.Role = *input.Role
	}
	if input.PositionID != nil {
		m.PositionID = *input.PositionID
	}
	if input.Permissions != nil {
		m.Permissions = input.Permissions.Clone()
	}
	return m, nil
}

func (r *stubMembershipRepo) DeleteMembership(_ context.Context, tenantID, userID uuid.UUID) error {
	for id, m := range r.rows {
		if m.TenantID == tenantID && m.UserID == userID {
			delete(r.rows, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMembershipRepo) CountMembersWithRoles(_ context.Context, tenantID uuid.UUID, roles ...enums.MemberRole) (int64, error) {
	var count int64
	for _, m := range r.rows {
		if m.TenantID != tenantID || m.Status != enums.MembershipStatusActive {
			continue
		}
		for _, role := range roles {
			if m.Role == role {
				count++
				break
			}
		}
	}
	return count, nil
}

func TestUpdateBlocksDemotingLastOwner(t *testing.T) {
	repo := newStubMembershipRepo()
	tenantID := uuid.New()
	owner := repo.add(tenantID, enums.MemberRoleOwner, enums.MembershipStatusActive)
	repo.add(tenantID, enums.MemberRoleMember, enums.MembershipStatusActive)

	svc, err := NewService(repo)
	require.NoError(t, err)

	member := enums.MemberRoleMember
	_, err = svc.Update(context.Background(), tenantID, owner.ID, enums.MemberRoleOwner, UpdateMembershipInput{Role: &member})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	// A second owner unblocks the demotion.
	repo.add(tenantID, enums.MemberRoleOwner, enums.MembershipStatusActive)
	updated, err := svc.Update(context.Background(), tenantID, owner.ID, enums.MemberRoleOwner, UpdateMembershipInput{Role: &member})
	require.NoError(t, err)
	require.Equal(t, enums.MemberRoleMember, updated.Role)
}

func TestOnlyOwnersTouchOwnership(t *testing.T) {
	repo := newStubMembershipRepo()
	tenantID := uuid.New()
	repo.add(tenantID, enums.MemberRoleOwner, enums.MembershipStatusActive)
	owner2 := repo.add(tenantID, enums.MemberRoleOwner, enums.MembershipStatusActive)
	member := repo.add(tenantID, enums.MemberRoleMember, enums.MembershipStatusActive)

	svc, err := NewService(repo)
	require.NoError(t, err)

	ownerRole := enums.MemberRoleOwner
	_, err = svc.Update(context.Background(), tenantID, member.ID, enums.MemberRoleAdmin, UpdateMembershipInput{Role: &ownerRole})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	err = svc.Remove(context.Background(), tenantID, owner2.ID, member.UserID, enums.MemberRoleAdmin)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	require.NoError(t, svc.Remove(context.Background(), tenantID, owner2.ID, member.UserID, enums.MemberRoleOwner))
}

func TestRemoveGuards(t *testing.T) {
	repo := newStubMembershipRepo()
	tenantID := uuid.New()
	owner := repo.add(tenantID, enums.MemberRoleOwner, enums.MembershipStatusActive)
	member := repo.add(tenantID, enums.MemberRoleMember, enums.MembershipStatusActive)

	svc, err := NewService(repo)
	require.NoError(t, err)

	err = svc.Remove(context.Background(), tenantID, member.ID, member.UserID, enums.MemberRoleMember)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code(), "self removal is rejected")

	err = svc.Remove(context.Background(), tenantID, owner.ID, member.UserID, enums.MemberRoleOwner)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code(), "last owner stays")

	require.NoError(t, svc.Remove(context.Background(), tenantID, member.ID, owner.UserID, enums.MemberRoleOwner))
	_, err = repo.FindMembershipByID(context.Background(), tenantID, member.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdatePermissionsAndPosition(t *testing.T) {
	repo := newStubMembershipRepo()
	tenantID := uuid.New()
	member := repo.add(tenantID, enums.MemberRoleMember, enums.MembershipStatusActive)

	svc, err := NewService(repo)
	require.NoError(t, err)

	positionID := uuid.New()
	positionPtr := &positionID
	grants := dbtypes.PermissionMap{
		enums.PermissionResourceIncoming: enums.PermissionLevelOwnOnly,
		enums.PermissionResourceUsage:    enums.PermissionLevelRead,
	}
	updated, err := svc.Update(context.Background(), tenantID, member.ID, enums.MemberRoleAdmin, UpdateMembershipInput{
		PositionID:  &positionPtr,
		Permissions: &grants,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PositionID)
	require.Equal(t, positionID, *updated.PositionID)
	require.Equal(t, enums.PermissionLevelOwnOnly, updated.Permissions.Level(enums.PermissionResourceIncoming))
}
