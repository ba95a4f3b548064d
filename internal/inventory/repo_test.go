package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  division TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  product_name TEXT NOT NULL,
  specification TEXT NOT NULL,
  unit TEXT NOT NULL DEFAULT '',
  carried_over TEXT NOT NULL DEFAULT '0',
  total_incoming TEXT NOT NULL DEFAULT '0',
  total_outgoing TEXT NOT NULL DEFAULT '0',
  total_usage TEXT NOT NULL DEFAULT '0',
  remaining TEXT NOT NULL DEFAULT '0',
  unit_price TEXT NOT NULL DEFAULT '0',
  total_amount TEXT NOT NULL DEFAULT '0',
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (tenant_id, division, product_name, specification)
);`, `
CREATE TABLE IF NOT EXISTS incoming_records (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  inventory_item_id TEXT,
  record_date TEXT NOT NULL,
  division TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  product_name TEXT NOT NULL,
  specification TEXT NOT NULL,
  quantity TEXT NOT NULL,
  unit_price TEXT NOT NULL DEFAULT '0',
  total_amount TEXT NOT NULL DEFAULT '0',
  supplier TEXT NOT NULL DEFAULT '',
  note TEXT,
  created_by_user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS outgoing_records (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  inventory_item_id TEXT,
  record_date TEXT NOT NULL,
  division TEXT NOT NULL,
  team_category TEXT NOT NULL,
  project_name TEXT NOT NULL DEFAULT '',
  product_name TEXT NOT NULL,
  specification TEXT NOT NULL,
  quantity TEXT NOT NULL,
  recipient TEXT NOT NULL DEFAULT '',
  note TEXT,
  created_by_user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS usage_records (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  inventory_item_id TEXT,
  record_date TEXT NOT NULL,
  division TEXT NOT NULL,
  team_category TEXT NOT NULL,
  project_name TEXT NOT NULL DEFAULT '',
  product_name TEXT NOT NULL,
  specification TEXT NOT NULL,
  quantity TEXT NOT NULL,
  recipient TEXT NOT NULL DEFAULT '',
  note TEXT,
  created_by_user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}

	t.Cleanup(func() {
		for _, table := range []string{"usage_records", "outgoing_records", "incoming_records", "inventory_items"} {
			db.Exec("DELETE FROM " + table)
		}
	})

	return db
}

func TestRepositoryInventoryIdentityLookup(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	item, err := repo.Create(ctx, CreateItemDTO{
		TenantID:      tenantID,
		Division:      "KT",
		Category:      "conduit",
		ProductName:   "Conduit",
		Specification: "30mm",
		Unit:          "m",
		CarriedOver:   decimal.NewFromInt(100),
		UnitPrice:     decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	require.True(t, item.Remaining.Equal(decimal.NewFromInt(100)), "remaining starts at carried-over")

	found, err := repo.FindByIdentity(ctx, tenantID, "KT", "Conduit", "30mm")
	require.NoError(t, err)
	require.Equal(t, item.ID, found.ID)

	_, err = repo.FindByIdentity(ctx, tenantID, "KT", "Conduit", "40mm")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByIdentity(ctx, uuid.New(), "KT", "Conduit", "30mm")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "identity is tenant-scoped")
}

func TestRepositorySumTotals(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	item, err := repo.Create(ctx, CreateItemDTO{
		TenantID:      tenantID,
		Division:      "KT",
		ProductName:   "Conduit",
		Specification: "30mm",
	})
	require.NoError(t, err)

	records := []any{
		&models.IncomingRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-02", Division: "KT", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(300), CreatedByUserID: userID},
		&models.IncomingRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-05", Division: "KT", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(100), CreatedByUserID: userID},
		&models.OutgoingRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-06", Division: "KT", TeamCategory: "Crew A", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(150), Recipient: "Crew A", CreatedByUserID: userID},
		&models.UsageRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-08", Division: "KT", TeamCategory: "Crew A", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(90), Recipient: "Crew A", CreatedByUserID: userID},
		// Different spec, must not be counted.
		&models.IncomingRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-02", Division: "KT", ProductName: "Conduit", Specification: "40mm", Quantity: decimal.NewFromInt(999), CreatedByUserID: userID},
	}
	for _, rec := range records {
		require.NoError(t, db.Create(rec).Error)
	}

	totals, err := repo.SumTotals(ctx, item)
	require.NoError(t, err)
	require.True(t, totals.TotalIncoming.Equal(decimal.NewFromInt(400)))
	require.True(t, totals.TotalOutgoing.Equal(decimal.NewFromInt(150)))
	require.True(t, totals.TotalUsage.Equal(decimal.NewFromInt(90)))

	Recalculate(item, totals)
	require.NoError(t, repo.Save(ctx, item))

	fresh, err := repo.FindByID(ctx, tenantID, item.ID)
	require.NoError(t, err)
	require.True(t, fresh.Remaining.Equal(decimal.NewFromInt(250)))
}
