package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomingRecord is one received delivery of general material.
type IncomingRecord struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	InventoryItemID *uuid.UUID      `gorm:"column:inventory_item_id;type:uuid;index"`
	RecordDate      string          `gorm:"column:record_date;type:text;not null"`
	Division        string          `gorm:"column:division;not null"`
	Category        string          `gorm:"column:category;not null;default:''"`
	ProductName     string          `gorm:"column:product_name;not null"`
	Specification   string          `gorm:"column:specification;not null"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:numeric(14,2);not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(16,2);not null;default:0"`
	Supplier        string          `gorm:"column:supplier;not null;default:''"`
	Note            *string         `gorm:"column:note"`
	CreatedByUserID uuid.UUID       `gorm:"column:created_by_user_id;type:uuid;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
