package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

func newTestInventoryService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupInventoryTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func createTestItem(t *testing.T, svc *Service, tenantID uuid.UUID, division, product, spec string) *ItemDTO {
	t.Helper()
	item, err := svc.Create(context.Background(), CreateItemDTO{
		TenantID:      tenantID,
		Division:      division,
		ProductName:   product,
		Specification: spec,
		Unit:          "m",
		CarriedOver:   decimal.NewFromInt(100),
		UnitPrice:     decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	return item
}

func TestBulkReplaceSwapsStockList(t *testing.T) {
	svc, _ := newTestInventoryService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	otherTenant := uuid.New()

	createTestItem(t, svc, tenantID, "KT", "Conduit", "30mm")
	createTestItem(t, svc, tenantID, "KT", "Conduit", "40mm")
	keep := createTestItem(t, svc, otherTenant, "LG", "Tray", "100mm")

	items, err := svc.BulkReplace(ctx, tenantID, []CreateItemDTO{
		{Division: "KT", ProductName: "Duct", Specification: "50mm", CarriedOver: decimal.NewFromInt(10)},
		{Division: "SKT", ProductName: "Clamp", Specification: "", CarriedOver: decimal.Zero},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	list, err := svc.List(ctx, tenantID, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, item := range list {
		require.NotEqual(t, "Conduit", item.ProductName, "old stock lines are cleared")
	}

	// Another tenant's stock is untouched by the swap.
	still, err := svc.Get(ctx, otherTenant, keep.ID)
	require.NoError(t, err)
	require.Equal(t, "Tray", still.ProductName)
}

func TestBulkReplaceValidatesBeforeClearing(t *testing.T) {
	svc, _ := newTestInventoryService(t)
	ctx := context.Background()
	tenantID := uuid.New()

	createTestItem(t, svc, tenantID, "KT", "Conduit", "30mm")

	_, err := svc.BulkReplace(ctx, tenantID, []CreateItemDTO{
		{Division: "KT", ProductName: "Duct", Specification: "50mm"},
		{Division: "", ProductName: "Clamp"},
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.BulkReplace(ctx, tenantID, []CreateItemDTO{
		{Division: "KT", ProductName: "Duct", Specification: "50mm"},
		{Division: "KT", ProductName: "Duct", Specification: "50mm"},
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code(), "duplicate identity keys are rejected")

	// A rejected payload must not have cleared anything.
	list, err := svc.List(ctx, tenantID, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Conduit", list[0].ProductName)
}

func TestBulkDeleteCountsAndSkipsMissing(t *testing.T) {
	svc, _ := newTestInventoryService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	otherTenant := uuid.New()

	first := createTestItem(t, svc, tenantID, "KT", "Conduit", "30mm")
	second := createTestItem(t, svc, tenantID, "KT", "Conduit", "40mm")
	foreign := createTestItem(t, svc, otherTenant, "LG", "Tray", "100mm")

	deleted, err := svc.BulkDelete(ctx, tenantID, []uuid.UUID{first.ID, uuid.New(), second.ID, foreign.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted, "missing and foreign ids are skipped, not counted")

	list, err := svc.List(ctx, tenantID, nil)
	require.NoError(t, err)
	require.Empty(t, list)

	still, err := svc.Get(ctx, otherTenant, foreign.ID)
	require.NoError(t, err)
	require.Equal(t, "Tray", still.ProductName)
}

func TestStatsSumsRecordTables(t *testing.T) {
	svc, repo := newTestInventoryService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	item := createTestItem(t, svc, tenantID, "KT", "Conduit", "30mm")

	records := []any{
		&models.IncomingRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-02", Division: "KT", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(300), CreatedByUserID: userID},
		&models.OutgoingRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-06", Division: "KT", TeamCategory: "Crew A", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(150), Recipient: "Crew A", CreatedByUserID: userID},
		&models.UsageRecord{ID: uuid.New(), TenantID: tenantID, RecordDate: "2025-03-08", Division: "KT", TeamCategory: "Crew A", ProductName: "Conduit", Specification: "30mm", Quantity: decimal.NewFromInt(90), Recipient: "Crew A", CreatedByUserID: userID},
	}
	for _, rec := range records {
		require.NoError(t, repo.db.Create(rec).Error)
	}

	stats, err := svc.Stats(ctx, tenantID, item.ID)
	require.NoError(t, err)
	require.True(t, stats.TotalIncoming.Equal(decimal.NewFromInt(300)))
	require.True(t, stats.TotalSentToTeam.Equal(decimal.NewFromInt(150)))
	require.True(t, stats.TotalUsage.Equal(decimal.NewFromInt(90)))

	_, err = svc.Stats(ctx, tenantID, uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
