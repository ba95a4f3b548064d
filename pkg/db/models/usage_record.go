package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageRecord is one consumption report filed by a field team.
type UsageRecord struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	InventoryItemID *uuid.UUID      `gorm:"column:inventory_item_id;type:uuid;index"`
	RecordDate      string          `gorm:"column:record_date;type:text;not null"`
	Division        string          `gorm:"column:division;not null"`
	TeamCategory    string          `gorm:"column:team_category;not null"`
	ProjectName     string          `gorm:"column:project_name;not null;default:''"`
	ProductName     string          `gorm:"column:product_name;not null"`
	Specification   string          `gorm:"column:specification;not null"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:numeric(14,2);not null"`
	Recipient       string          `gorm:"column:recipient;not null"`
	Note            *string         `gorm:"column:note"`
	CreatedByUserID uuid.UUID       `gorm:"column:created_by_user_id;type:uuid;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
