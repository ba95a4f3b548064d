package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is one stock line keyed by tenant, division, product
// name, and specification. The aggregate columns are never mutated
// incrementally; they are recomputed from the record tables.
type InventoryItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_inventory_identity"`
	Division      string          `gorm:"column:division;not null;uniqueIndex:idx_inventory_identity"`
	Category      string          `gorm:"column:category;not null"`
	ProductName   string          `gorm:"column:product_name;not null;uniqueIndex:idx_inventory_identity"`
	Specification string          `gorm:"column:specification;not null;uniqueIndex:idx_inventory_identity"`
	Unit          string          `gorm:"column:unit;not null;default:''"`
	CarriedOver   decimal.Decimal `gorm:"column:carried_over;type:numeric(14,2);not null;default:0"`
	TotalIncoming decimal.Decimal `gorm:"column:total_incoming;type:numeric(14,2);not null;default:0"`
	TotalOutgoing decimal.Decimal `gorm:"column:total_outgoing;type:numeric(14,2);not null;default:0"`
	TotalUsage    decimal.Decimal `gorm:"column:total_usage;type:numeric(14,2);not null;default:0"`
	Remaining     decimal.Decimal `gorm:"column:remaining;type:numeric(14,2);not null;default:0"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:numeric(16,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
