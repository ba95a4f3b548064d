package records

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/inventory"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type stubRecordRepo struct {
	incoming map[uuid.UUID]*models.IncomingRecord
	outgoing map[uuid.UUID]*models.OutgoingRecord
	usage    map[uuid.UUID]*models.UsageRecord
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{
		incoming: map[uuid.UUID]*models.IncomingRecord{},
		outgoing: map[uuid.UUID]*models.OutgoingRecord{},
		usage:    map[uuid.UUID]*models.UsageRecord{},
	}
}

func (s *stubRecordRepo) CreateIncoming(ctx context.Context, record *models.IncomingRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.incoming[record.ID] = record
	return nil
}

func (s *stubRecordRepo) FindIncomingByID(ctx context.Context, tenantID, id uuid.UUID) (*models.IncomingRecord, error) {
	record, ok := s.incoming[id]
	if !ok || record.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (s *stubRecordRepo) ListIncoming(ctx context.Context, opts listQuery) ([]models.IncomingRecord, error) {
	var rows []models.IncomingRecord
	for _, record := range s.incoming {
		if record.TenantID != opts.tenantID {
			continue
		}
		if opts.createdBy != nil && record.CreatedByUserID != *opts.createdBy {
			continue
		}
		rows = append(rows, *record)
	}
	return rows, nil
}

func (s *stubRecordRepo) SaveIncoming(ctx context.Context, record *models.IncomingRecord) error {
	s.incoming[record.ID] = record
	return nil
}

func (s *stubRecordRepo) DeleteIncoming(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, ok := s.incoming[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.incoming, id)
	return nil
}

func (s *stubRecordRepo) CreateOutgoing(ctx context.Context, record *models.OutgoingRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.outgoing[record.ID] = record
	return nil
}

func (s *stubRecordRepo) FindOutgoingByID(ctx context.Context, tenantID, id uuid.UUID) (*models.OutgoingRecord, error) {
	record, ok := s.outgoing[id]
	if !ok || record.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (s *stubRecordRepo) ListOutgoing(ctx context.Context, opts listQuery) ([]models.OutgoingRecord, error) {
	var rows []models.OutgoingRecord
	for _, record := range s.outgoing {
		if record.TenantID == opts.tenantID {
			rows = append(rows, *record)
		}
	}
	return rows, nil
}

func (s *stubRecordRepo) SaveOutgoing(ctx context.Context, record *models.OutgoingRecord) error {
	s.outgoing[record.ID] = record
	return nil
}

func (s *stubRecordRepo) DeleteOutgoing(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, ok := s.outgoing[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.outgoing, id)
	return nil
}

func (s *stubRecordRepo) CreateUsage(ctx context.Context, record *models.UsageRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.usage[record.ID] = record
	return nil
}

func (s *stubRecordRepo) FindUsageByID(ctx context.Context, tenantID, id uuid.UUID) (*models.UsageRecord, error) {
	record, ok := s.usage[id]
	if !ok || record.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (s *stubRecordRepo) ListUsage(ctx context.Context, opts listQuery) ([]models.UsageRecord, error) {
	var rows []models.UsageRecord
	for _, record := range s.usage {
		if record.TenantID == opts.tenantID {
			rows = append(rows, *record)
		}
	}
	return rows, nil
}

func (s *stubRecordRepo) SaveUsage(ctx context.Context, record *models.UsageRecord) error {
	s.usage[record.ID] = record
	return nil
}

func (s *stubRecordRepo) DeleteUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, ok := s.usage[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.usage, id)
	return nil
}

type stubInventoryMaintainer struct {
	items     map[string]*models.InventoryItem
	refreshed []uuid.UUID
}

func newStubInventoryMaintainer() *stubInventoryMaintainer {
	return &stubInventoryMaintainer{items: map[string]*models.InventoryItem{}}
}

func identityKey(tenantID uuid.UUID, division, product, spec string) string {
	return tenantID.String() + "|" + division + "|" + product + "|" + spec
}

func (s *stubInventoryMaintainer) EnsureItem(ctx context.Context, dto inventory.CreateItemDTO) (*models.InventoryItem, error) {
	key := identityKey(dto.TenantID, dto.Division, dto.ProductName, dto.Specification)
	if item, ok := s.items[key]; ok {
		return item, nil
	}
	item := dto.ToModel()
	s.items[key] = item
	return item, nil
}

func (s *stubInventoryMaintainer) LookupItem(ctx context.Context, tenantID uuid.UUID, division, productName, specification string) (*models.InventoryItem, error) {
	return s.items[identityKey(tenantID, division, productName, specification)], nil
}

func (s *stubInventoryMaintainer) RefreshItem(ctx context.Context, tenantID, id uuid.UUID) error {
	s.refreshed = append(s.refreshed, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *stubRecordRepo, *stubInventoryMaintainer) {
	t.Helper()
	repo := newStubRecordRepo()
	stock := newStubInventoryMaintainer()
	svc, err := NewService(repo, stock)
	require.NoError(t, err)
	return svc, repo, stock
}

func TestCreateIncomingCreatesStockLine(t *testing.T) {
	svc, repo, stock := newTestService(t)
	tenantID := uuid.New()
	actor := Actor{UserID: uuid.New()}

	dto, err := svc.CreateIncoming(context.Background(), actor, CreateIncomingDTO{
		TenantID:      tenantID,
		RecordDate:    "2025-03-02",
		Division:      "KT",
		Category:      "conduit",
		ProductName:   "Conduit",
		Specification: "30mm",
		Quantity:      decimal.NewFromInt(300),
		UnitPrice:     decimal.NewFromInt(1200),
		Supplier:      "Hanjin Materials",
	})
	require.NoError(t, err)
	require.NotNil(t, dto.InventoryItemID)
	require.True(t, dto.TotalAmount.Equal(decimal.NewFromInt(360000)))
	require.Equal(t, actor.UserID, dto.CreatedByUserID)
	require.Len(t, repo.incoming, 1)
	require.Len(t, stock.items, 1, "new product identity must create a stock line")
	require.Len(t, stock.refreshed, 1, "aggregates must be recomputed after the write")
}

func TestCreateIncomingValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	actor := Actor{UserID: uuid.New()}

	_, err := svc.CreateIncoming(context.Background(), actor, CreateIncomingDTO{
		TenantID:   uuid.New(),
		RecordDate: "03/02/2025",
		Division:   "KT", ProductName: "Conduit",
		Quantity: decimal.NewFromInt(10),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.CreateIncoming(context.Background(), actor, CreateIncomingDTO{
		TenantID:   uuid.New(),
		RecordDate: "2025-03-02",
		Division:   "KT", ProductName: "Conduit",
		Quantity: decimal.NewFromInt(-5),
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestOwnOnlyActorCannotTouchOthersRecords(t *testing.T) {
	svc, repo, _ := newTestService(t)
	tenantID := uuid.New()
	owner := uuid.New()
	other := Actor{UserID: uuid.New(), OwnOnly: true}

	record := &models.IncomingRecord{
		ID:              uuid.New(),
		TenantID:        tenantID,
		RecordDate:      "2025-03-02",
		Division:        "KT",
		ProductName:     "Conduit",
		Specification:   "30mm",
		Quantity:        decimal.NewFromInt(10),
		CreatedByUserID: owner,
	}
	repo.incoming[record.ID] = record

	newSupplier := "Other Supplier"
	_, err := svc.UpdateIncoming(context.Background(), tenantID, other, record.ID, UpdateIncomingInput{Supplier: &newSupplier})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	err = svc.DeleteIncoming(context.Background(), tenantID, other, record.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
	require.Len(t, repo.incoming, 1, "record must survive the forbidden delete")
}

func TestOwnOnlyListFiltersByAuthor(t *testing.T) {
	svc, repo, _ := newTestService(t)
	tenantID := uuid.New()
	mine := uuid.New()
	theirs := uuid.New()

	for i, author := range []uuid.UUID{mine, mine, theirs} {
		repo.incoming[uuid.New()] = &models.IncomingRecord{
			ID:              uuid.New(),
			TenantID:        tenantID,
			RecordDate:      "2025-03-02",
			Division:        "KT",
			ProductName:     "Conduit",
			Specification:   "30mm",
			Quantity:        decimal.NewFromInt(int64(i + 1)),
			CreatedByUserID: author,
		}
	}

	list, err := svc.ListIncoming(context.Background(), tenantID, Actor{UserID: mine, OwnOnly: true}, ListFilter{})
	require.NoError(t, err)
	require.Len(t, list.Records, 2)
}

func TestBulkDeleteCollectsFailures(t *testing.T) {
	svc, repo, _ := newTestService(t)
	tenantID := uuid.New()
	actor := Actor{UserID: uuid.New()}

	record := &models.OutgoingRecord{
		ID:              uuid.New(),
		TenantID:        tenantID,
		RecordDate:      "2025-03-02",
		Division:        "KT",
		TeamCategory:    "Crew A",
		ProductName:     "Conduit",
		Specification:   "30mm",
		Quantity:        decimal.NewFromInt(10),
		Recipient:       "Crew A",
		CreatedByUserID: actor.UserID,
	}
	repo.outgoing[record.ID] = record

	err := svc.BulkDeleteOutgoing(context.Background(), tenantID, actor, []uuid.UUID{record.ID, uuid.New()})
	require.Error(t, err, "missing id must surface")
	require.Empty(t, repo.outgoing, "existing record must still be deleted")
}

func TestCreateOutgoingLinksExistingItem(t *testing.T) {
	svc, _, stock := newTestService(t)
	tenantID := uuid.New()
	actor := Actor{UserID: uuid.New()}

	item, err := stock.EnsureItem(context.Background(), inventory.CreateItemDTO{
		TenantID: tenantID, Division: "KT", ProductName: "Conduit", Specification: "30mm",
	})
	require.NoError(t, err)
	stock.refreshed = nil

	dto, err := svc.CreateOutgoing(context.Background(), actor, CreateOutgoingDTO{
		TenantID:      tenantID,
		RecordDate:    "2025-03-06",
		Division:      "KT",
		TeamCategory:  "Crew A",
		ProductName:   "Conduit",
		Specification: "30mm",
		Quantity:      decimal.NewFromInt(50),
		Recipient:     "Crew A",
	})
	require.NoError(t, err)
	require.NotNil(t, dto.InventoryItemID)
	require.Equal(t, item.ID, *dto.InventoryItemID)
	require.Equal(t, []uuid.UUID{item.ID}, stock.refreshed)
}

func TestCreateUsageWithoutStockLineLeavesItemNil(t *testing.T) {
	svc, _, stock := newTestService(t)
	actor := Actor{UserID: uuid.New()}

	dto, err := svc.CreateUsage(context.Background(), actor, CreateUsageDTO{
		TenantID:      uuid.New(),
		RecordDate:    "2025-03-08",
		Division:      "KT",
		TeamCategory:  "Crew A",
		ProductName:   "Unknown Part",
		Specification: "",
		Quantity:      decimal.NewFromInt(5),
		Recipient:     "Crew A",
	})
	require.NoError(t, err)
	require.Nil(t, dto.InventoryItemID)
	require.Empty(t, stock.refreshed)
}
