package teams

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

func setupTeamsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
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
);`, `
CREATE TABLE IF NOT EXISTS cable_drums (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  management_no TEXT NOT NULL,
  division TEXT NOT NULL,
  category TEXT NOT NULL,
  received_date TEXT NOT NULL,
  manufacturer TEXT,
  manufacture_year TEXT,
  spec TEXT NOT NULL,
  core_count INTEGER,
  drum_no TEXT,
  location TEXT,
  remark TEXT,
  total_length TEXT NOT NULL,
  used_length TEXT NOT NULL DEFAULT '0',
  remaining_length TEXT NOT NULL,
  unit_price TEXT,
  total_amount TEXT,
  project_code TEXT,
  project_name TEXT,
  status TEXT NOT NULL,
  current_team_id TEXT,
  created_by_user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}

	t.Cleanup(func() {
		for _, table := range []string{"cable_drums", "teams"} {
			db.Exec("DELETE FROM " + table)
		}
	})

	return db
}

func TestRepositoryTeamCRUD(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	divisionA := uuid.New()
	divisionB := uuid.New()

	crew1, err := repo.Create(ctx, CreateTeamDTO{
		TenantID:    tenantID,
		DivisionID:  divisionA,
		Name:        "Crew 1",
		Category:    "installation",
		MemberCount: 4,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, crew1.ID)

	_, err = repo.Create(ctx, CreateTeamDTO{
		TenantID:   tenantID,
		DivisionID: divisionB,
		Name:       "Crew 2",
		Category:   "maintenance",
	})
	require.NoError(t, err)

	all, err := repo.ListByTenant(ctx, tenantID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := repo.ListByTenant(ctx, tenantID, &divisionA)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, crew1.ID, filtered[0].ID)

	count := 6
	updated, err := repo.Update(ctx, tenantID, crew1.ID, UpdateTeamInput{MemberCount: &count})
	require.NoError(t, err)
	require.Equal(t, 6, updated.MemberCount)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.TouchActivity(ctx, tenantID, crew1.ID, now))
	fresh, err := repo.FindByID(ctx, tenantID, crew1.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastActivityAt)

	require.NoError(t, repo.Delete(ctx, tenantID, crew1.ID))
	_, err = repo.FindByID(ctx, tenantID, crew1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCountAssignedDrums(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	team, err := repo.Create(ctx, CreateTeamDTO{
		TenantID:   tenantID,
		DivisionID: uuid.New(),
		Name:       "Crew 1",
		Category:   "installation",
	})
	require.NoError(t, err)

	count, err := repo.CountAssignedDrums(ctx, tenantID, team.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	drum := &models.CableDrum{
		ID:              uuid.New(),
		TenantID:        tenantID,
		ManagementNo:    "KT-2025-001",
		Division:        "KT Line",
		Category:        "optical",
		ReceivedDate:    "2025-03-01",
		Spec:            "SM 24C",
		Status:          enums.CableStatusAssigned,
		CurrentTeamID:   &team.ID,
		CreatedByUserID: uuid.New(),
	}
	require.NoError(t, db.Create(drum).Error)

	count, err = repo.CountAssignedDrums(ctx, tenantID, team.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
