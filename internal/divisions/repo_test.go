package divisions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

func setupDivisionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS divisions (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sort_order INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS teams (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  division_id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  member_count INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_activity_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}

	t.Cleanup(func() {
		for _, table := range []string{"teams", "divisions"} {
			db.Exec("DELETE FROM " + table)
		}
	})

	return db
}

func TestRepositoryDivisionCRUD(t *testing.T) {
	db := setupDivisionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := repo.Create(ctx, CreateDivisionDTO{TenantID: tenantID, Name: "KT Line", SortOrder: 2})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)

	second, err := repo.Create(ctx, CreateDivisionDTO{TenantID: tenantID, Name: "LGU Line", SortOrder: 1})
	require.NoError(t, err)

	otherTenant := uuid.New()
	_, err = repo.Create(ctx, CreateDivisionDTO{TenantID: otherTenant, Name: "SKB Line"})
	require.NoError(t, err)

	list, err := repo.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "lower sort order first")

	newName := "KT Backbone"
	inactive := false
	updated, err := repo.Update(ctx, tenantID, first.ID, UpdateDivisionInput{Name: &newName, IsActive: &inactive})
	require.NoError(t, err)
	require.Equal(t, "KT Backbone", updated.Name)
	require.False(t, updated.IsActive)

	_, err = repo.Update(ctx, otherTenant, first.ID, UpdateDivisionInput{Name: &newName})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "cross-tenant update must miss")

	require.NoError(t, repo.Delete(ctx, tenantID, second.ID))
	require.ErrorIs(t, repo.Delete(ctx, tenantID, second.ID), gorm.ErrRecordNotFound)
}

func TestRepositoryCountTeams(t *testing.T) {
	db := setupDivisionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	division, err := repo.Create(ctx, CreateDivisionDTO{TenantID: tenantID, Name: "KT Line"})
	require.NoError(t, err)

	count, err := repo.CountTeams(ctx, tenantID, division.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	team := &models.Team{
		ID:         uuid.New(),
		TenantID:   tenantID,
		DivisionID: division.ID,
		Name:       "Crew 1",
		Category:   "installation",
		IsActive:   true,
	}
	require.NoError(t, db.Create(team).Error)

	count, err = repo.CountTeams(ctx, tenantID, division.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
