package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// Repository provides persistence helpers for inventory items.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new stock line.
func (r *Repository) Create(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an item scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIdentity loads the stock line matching the item identity key.
func (r *Repository) FindByIdentity(ctx context.Context, tenantID uuid.UUID, division, productName, specification string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND division = ? AND product_name = ? AND specification = ?",
			tenantID, division, productName, specification).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByTenant returns all stock lines, optionally filtered by division.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, division *string) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if division != nil {
		query = query.Where("division = ?", *division)
	}
	var rows []models.InventoryItem
	if err := query.Order("division ASC, product_name ASC, specification ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save writes back the full item row, aggregates included.
func (r *Repository) Save(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a stock line.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByTenant clears every stock line the tenant holds.
func (r *Repository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.InventoryItem{}).Error
}

// SumTotals recomputes the record sums feeding an item's aggregates.
func (r *Repository) SumTotals(ctx context.Context, item *models.InventoryItem) (ItemTotals, error) {
	var totals ItemTotals
	var err error

	totals.TotalIncoming, err = r.sumQuantity(ctx, &models.IncomingRecord{}, item)
	if err != nil {
		return totals, err
	}
	totals.TotalOutgoing, err = r.sumQuantity(ctx, &models.OutgoingRecord{}, item)
	if err != nil {
		return totals, err
	}
	totals.TotalUsage, err = r.sumQuantity(ctx, &models.UsageRecord{}, item)
	return totals, err
}

func (r *Repository) sumQuantity(ctx context.Context, model any, item *models.InventoryItem) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Model(model).
		Select("SUM(quantity)").
		Where("tenant_id = ? AND division = ? AND product_name = ? AND specification = ?",
			item.TenantID, item.Division, item.ProductName, item.Specification).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

// ListOutgoing returns the tenant's outgoing records for aggregation.
func (r *Repository) ListOutgoing(ctx context.Context, tenantID uuid.UUID) ([]models.OutgoingRecord, error) {
	var rows []models.OutgoingRecord
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&rows).Error
	return rows, err
}

// ListUsage returns the tenant's usage records for aggregation.
func (r *Repository) ListUsage(ctx context.Context, tenantID uuid.UUID) ([]models.UsageRecord, error) {
	var rows []models.UsageRecord
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&rows).Error
	return rows, err
}
