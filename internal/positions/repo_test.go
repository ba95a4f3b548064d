package positions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPositionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
CREATE TABLE IF NOT EXISTS positions (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM positions")
	})

	return db
}

func TestRepositoryPositionCRUD(t *testing.T) {
	db := setupPositionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	senior, err := repo.Create(ctx, CreatePositionDTO{TenantID: tenantID, Name: "Senior Technician", SortOrder: 2})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, senior.ID)

	foreman, err := repo.Create(ctx, CreatePositionDTO{TenantID: tenantID, Name: "Site Foreman", SortOrder: 1})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreatePositionDTO{TenantID: uuid.New(), Name: "Dispatcher"})
	require.NoError(t, err)

	list, err := repo.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, foreman.ID, list[0].ID, "lower sort order first")

	newName := "Lead Technician"
	newOrder := 0
	updated, err := repo.Update(ctx, tenantID, senior.ID, UpdatePositionInput{Name: &newName, SortOrder: &newOrder})
	require.NoError(t, err)
	require.Equal(t, "Lead Technician", updated.Name)
	require.Equal(t, 0, updated.SortOrder)

	_, err = repo.Update(ctx, uuid.New(), senior.ID, UpdatePositionInput{Name: &newName})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "cross tenant update must miss")

	require.NoError(t, repo.Delete(ctx, tenantID, foreman.ID))
	require.ErrorIs(t, repo.Delete(ctx, tenantID, foreman.ID), gorm.ErrRecordNotFound)

	list, err = repo.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
