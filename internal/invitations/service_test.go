package invitations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type stubInviteTxRunner struct{}

func (stubInviteTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubInvitationRepo struct {
	invitations map[uuid.UUID]*models.Invitation
}

func newStubInvitationRepo() *stubInvitationRepo {
	return &stubInvitationRepo{invitations: make(map[uuid.UUID]*models.Invitation)}
}

func (r *stubInvitationRepo) Create(_ context.Context, invitation *models.Invitation) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}
	copied := *invitation
	r.invitations[invitation.ID] = &copied
	return nil
}

func (r *stubInvitationRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*models.Invitation, error) {
	inv, ok := r.invitations[id]
	if !ok || inv.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *stubInvitationRepo) FindByToken(_ context.Context, token string) (*models.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.Token == token {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInvitationRepo) FindByTokenForUpdate(_ *gorm.DB, token string) (*models.Invitation, error) {
	return r.FindByToken(context.Background(), token)
}

func (r *stubInvitationRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range r.invitations {
		if inv.TenantID == tenantID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInvitationRepo) Save(_ context.Context, invitation *models.Invitation) error {
	copied := *invitation
	r.invitations[invitation.ID] = &copied
	return nil
}

func (r *stubInvitationRepo) SaveWithTx(_ *gorm.DB, invitation *models.Invitation) error {
	return r.Save(context.Background(), invitation)
}

type stubInviteMemberships struct {
	memberships map[string]*models.TenantMembership
}

func newStubInviteMemberships() *stubInviteMemberships {
	return &stubInviteMemberships{memberships: make(map[string]*models.TenantMembership)}
}

func membershipKey(userID, tenantID uuid.UUID) string {
	return userID.String() + "|" + tenantID.String()
}

func (r *stubInviteMemberships) GetMembership(_ context.Context, userID, tenantID uuid.UUID) (*models.TenantMembership, error) {
	m, ok := r.memberships[membershipKey(userID, tenantID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubInviteMemberships) CreateMembershipWithTx(_ *gorm.DB, dto memberships.CreateMembershipDTO) (*models.TenantMembership, error) {
	m := &models.TenantMembership{
		ID:          uuid.New(),
		TenantID:    dto.TenantID,
		UserID:      dto.UserID,
		Role:        dto.Role,
		Status:      dto.Status,
		Permissions: dto.Permissions,
	}
	r.memberships[membershipKey(dto.UserID, dto.TenantID)] = m
	return m, nil
}

func newTestInvitationService(t *testing.T) (*Service, *stubInvitationRepo, *stubInviteMemberships) {
	t.Helper()
	repo := newStubInvitationRepo()
	members := newStubInviteMemberships()
	svc, err := NewService(ServiceParams{
		TxRunner:        stubInviteTxRunner{},
		Repo:            repo,
		MembershipsRepo: members,
		Config:          config.InvitationConfig{TTL: 168 * time.Hour},
	})
	require.NoError(t, err)
	return svc, repo, members
}

func TestInviteIssuesPendingTokenWithTTL(t *testing.T) {
	svc, _, _ := newTestInvitationService(t)
	tenantID := uuid.New()
	inviterID := uuid.New()

	issued, err := svc.Invite(context.Background(), CreateInvitationDTO{
		TenantID:  tenantID,
		Email:     "  Crew.Lead@Example.COM ",
		Role:      enums.MemberRoleMember,
		InvitedBy: inviterID,
		Permissions: dbtypes.PermissionMap{
			enums.PermissionResourceIncoming: enums.PermissionLevelWrite,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "crew.lead@example.com", issued.Email)
	require.Equal(t, enums.InvitationStatusPending, issued.Status)
	require.Len(t, issued.Token, 64, "token is 32 random bytes hex encoded")
	require.WithinDuration(t, time.Now().Add(168*time.Hour), issued.ExpiresAt, time.Minute)
}

func TestInviteRejectsOwnerRoleAndBadEmail(t *testing.T) {
	svc, _, _ := newTestInvitationService(t)
	tenantID := uuid.New()

	_, err := svc.Invite(context.Background(), CreateInvitationDTO{
		TenantID: tenantID, Email: "not-an-email", Role: enums.MemberRoleMember, InvitedBy: uuid.New(),
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Invite(context.Background(), CreateInvitationDTO{
		TenantID: tenantID, Email: "boss@example.com", Role: enums.MemberRoleOwner, InvitedBy: uuid.New(),
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAcceptCreatesActiveMembership(t *testing.T) {
	svc, repo, members := newTestInvitationService(t)
	tenantID := uuid.New()
	inviterID := uuid.New()
	newUserID := uuid.New()

	issued, err := svc.Invite(context.Background(), CreateInvitationDTO{
		TenantID:  tenantID,
		Email:     "crew.lead@example.com",
		Role:      enums.MemberRoleAdmin,
		InvitedBy: inviterID,
		Permissions: dbtypes.PermissionMap{
			enums.PermissionResourceIncoming: enums.PermissionLevelWrite,
		},
	})
	require.NoError(t, err)

	result, err := svc.Accept(context.Background(), newUserID, issued.Token)
	require.NoError(t, err)
	require.Equal(t, tenantID, result.TenantID)
	require.Equal(t, enums.MemberRoleAdmin, result.Role)

	membership, err := members.GetMembership(context.Background(), newUserID, tenantID)
	require.NoError(t, err)
	require.Equal(t, enums.MembershipStatusActive, membership.Status)
	require.Equal(t, enums.PermissionLevelWrite, membership.Permissions.Level(enums.PermissionResourceIncoming))

	stored := repo.invitations[issued.ID]
	require.Equal(t, enums.InvitationStatusAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedByUserID)
	require.Equal(t, newUserID, *stored.AcceptedByUserID)

	_, err = svc.Accept(context.Background(), uuid.New(), issued.Token)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code(), "token cannot be redeemed twice")
}

func TestAcceptRejectsExpiredToken(t *testing.T) {
	svc, repo, _ := newTestInvitationService(t)
	tenantID := uuid.New()

	issued, err := svc.Invite(context.Background(), CreateInvitationDTO{
		TenantID: tenantID, Email: "late@example.com", Role: enums.MemberRoleMember, InvitedBy: uuid.New(),
	})
	require.NoError(t, err)

	stored := repo.invitations[issued.ID]
	stored.ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.Accept(context.Background(), uuid.New(), issued.Token)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	require.Equal(t, enums.InvitationStatusExpired, repo.invitations[issued.ID].Status)
}

func TestRevokeOnlyTouchesPendingInvitations(t *testing.T) {
	svc, repo, _ := newTestInvitationService(t)
	tenantID := uuid.New()

	issued, err := svc.Invite(context.Background(), CreateInvitationDTO{
		TenantID: tenantID, Email: "crew@example.com", Role: enums.MemberRoleMember, InvitedBy: uuid.New(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), tenantID, issued.ID))
	require.Equal(t, enums.InvitationStatusRevoked, repo.invitations[issued.ID].Status)

	err = svc.Revoke(context.Background(), tenantID, issued.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	err = svc.Revoke(context.Background(), uuid.New(), issued.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
