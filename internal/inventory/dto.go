package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// ItemDTO is the API representation of a stock line.
type ItemDTO struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Division      string          `json:"division"`
	Category      string          `json:"category"`
	ProductName   string          `json:"product_name"`
	Specification string          `json:"specification"`
	Unit          string          `json:"unit"`
	CarriedOver   decimal.Decimal `json:"carried_over"`
	TotalIncoming decimal.Decimal `json:"total_incoming"`
	TotalOutgoing decimal.Decimal `json:"total_outgoing"`
	TotalUsage    decimal.Decimal `json:"total_usage"`
	Remaining     decimal.Decimal `json:"remaining"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateItemDTO carries the fields accepted when registering a stock line.
type CreateItemDTO struct {
	TenantID      uuid.UUID
	Division      string
	Category      string
	ProductName   string
	Specification string
	Unit          string
	CarriedOver   decimal.Decimal
	UnitPrice     decimal.Decimal
}

// UpdateItemInput carries the mutable descriptive fields; aggregates are
// recomputed, never patched directly.
type UpdateItemInput struct {
	Category    *string
	Unit        *string
	CarriedOver *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// ItemStatsDTO reports the raw record sums behind one stock line.
type ItemStatsDTO struct {
	TotalIncoming   decimal.Decimal `json:"total_incoming"`
	TotalSentToTeam decimal.Decimal `json:"total_sent_to_team"`
	TotalUsage      decimal.Decimal `json:"total_usage"`
}

// TeamStockDTO is one held-stock row in the reporting view.
type TeamStockDTO struct {
	Division      string          `json:"division"`
	TeamCategory  string          `json:"team_category"`
	ProductName   string          `json:"product_name"`
	Specification string          `json:"specification"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ToModel converts the create DTO to a persistence model.
func (d CreateItemDTO) ToModel() *models.InventoryItem {
	item := &models.InventoryItem{
		ID:            uuid.New(),
		TenantID:      d.TenantID,
		Division:      d.Division,
		Category:      d.Category,
		ProductName:   d.ProductName,
		Specification: d.Specification,
		Unit:          d.Unit,
		CarriedOver:   d.CarriedOver,
		UnitPrice:     d.UnitPrice,
	}
	item.Remaining = d.CarriedOver
	item.TotalAmount = item.Remaining.Mul(d.UnitPrice)
	return item
}

// ToDTO maps a model into its API representation.
func ToDTO(m *models.InventoryItem) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:            m.ID,
		TenantID:      m.TenantID,
		Division:      m.Division,
		Category:      m.Category,
		ProductName:   m.ProductName,
		Specification: m.Specification,
		Unit:          m.Unit,
		CarriedOver:   m.CarriedOver,
		TotalIncoming: m.TotalIncoming,
		TotalOutgoing: m.TotalOutgoing,
		TotalUsage:    m.TotalUsage,
		Remaining:     m.Remaining,
		UnitPrice:     m.UnitPrice,
		TotalAmount:   m.TotalAmount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
