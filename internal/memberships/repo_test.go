package memberships

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

func setupMembershipsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS tenants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS positions (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS tenant_memberships (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  role TEXT NOT NULL,
  status TEXT NOT NULL,
  position_id TEXT,
  permissions TEXT NOT NULL DEFAULT '{}',
  invited_by_user_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}

	t.Cleanup(func() {
		for _, table := range []string{"tenant_memberships", "positions", "tenants", "users"} {
			db.Exec("DELETE FROM " + table)
		}
	})

	return db
}

func seedUserAndTenant(t *testing.T, db *gorm.DB, username, slug string) (*models.User, *models.Tenant) {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "hash",
		Name:         "Test Member",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	tenant := &models.Tenant{
		ID:       uuid.New(),
		Name:     "Gwangtel",
		Slug:     slug,
		IsActive: true,
	}
	require.NoError(t, db.Create(tenant).Error)

	return user, tenant
}

func TestRepositoryMembershipFlow(t *testing.T) {
	db := setupMembershipsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user, tenant := seedUserAndTenant(t, db, "owner01", "gwangtel")

	membership, err := repo.CreateMembership(ctx, CreateMembershipDTO{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Role:     enums.MemberRoleOwner,
		Status:   enums.MembershipStatusActive,
	})
	require.NoError(t, err)
	require.Equal(t, enums.MemberRoleOwner, membership.Role)

	list, err := repo.ListUserTenants(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, tenant.Name, list[0].TenantName)
	require.Equal(t, tenant.Slug, list[0].TenantSlug)
	require.Equal(t, enums.MemberRoleOwner, list[0].Role)

	ok, err := repo.UserHasRole(ctx, user.ID, tenant.ID, enums.MemberRoleOwner, enums.MemberRoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.UserHasRole(ctx, user.ID, tenant.ID, enums.MemberRoleMember)
	require.NoError(t, err)
	require.False(t, ok)

	count, err := repo.CountMembersWithRoles(ctx, tenant.ID, enums.MemberRoleOwner)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRepositoryUpdateMembershipPermissions(t *testing.T) {
	db := setupMembershipsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user, tenant := seedUserAndTenant(t, db, "field01", "hanju")

	membership, err := repo.CreateMembership(ctx, CreateMembershipDTO{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Role:     enums.MemberRoleMember,
		Status:   enums.MembershipStatusActive,
		Permissions: dbtypes.PermissionMap{
			enums.PermissionResourceOutgoing: enums.PermissionLevelOwnOnly,
		},
	})
	require.NoError(t, err)

	newGrants := dbtypes.PermissionMap{
		enums.PermissionResourceOutgoing:  enums.PermissionLevelWrite,
		enums.PermissionResourceInventory: enums.PermissionLevelRead,
	}
	updated, err := repo.UpdateMembership(ctx, membership.ID, tenant.ID, UpdateMembershipInput{
		Permissions: &newGrants,
	})
	require.NoError(t, err)
	require.Equal(t, enums.PermissionLevelWrite, updated.Permissions.Level(enums.PermissionResourceOutgoing))
	require.Equal(t, enums.PermissionLevelRead, updated.Permissions.Level(enums.PermissionResourceInventory))

	badRole := enums.MemberRole("superuser")
	_, err = repo.UpdateMembership(ctx, membership.ID, tenant.ID, UpdateMembershipInput{Role: &badRole})
	require.Error(t, err)
}

func TestRepositoryDeleteMembership(t *testing.T) {
	db := setupMembershipsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user, tenant := seedUserAndTenant(t, db, "member01", "deleteco")

	_, err := repo.CreateMembership(ctx, CreateMembershipDTO{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Role:     enums.MemberRoleMember,
		Status:   enums.MembershipStatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteMembership(ctx, tenant.ID, user.ID))
	require.ErrorIs(t, repo.DeleteMembership(ctx, tenant.ID, user.ID), gorm.ErrRecordNotFound)
}
