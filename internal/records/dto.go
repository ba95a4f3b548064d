package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// Actor carries the caller identity and scoping for record operations.
// OwnOnly restricts reads and writes to rows the caller authored.
type Actor struct {
	UserID  uuid.UUID
	OwnOnly bool
}

// ListFilter narrows record list queries. Month matches the YYYY-MM
// prefix of the record date.
type ListFilter struct {
	Month    *string
	Division *string
	Limit    int
	Cursor   string
}

// IncomingDTO is one received delivery.
type IncomingDTO struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	InventoryItemID *uuid.UUID      `json:"inventory_item_id,omitempty"`
	RecordDate      string          `json:"record_date"`
	Division        string          `json:"division"`
	Category        string          `json:"category"`
	ProductName     string          `json:"product_name"`
	Specification   string          `json:"specification"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Supplier        string          `json:"supplier"`
	Note            *string         `json:"note,omitempty"`
	CreatedByUserID uuid.UUID       `json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OutgoingDTO is one release of material to a field crew.
type OutgoingDTO struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	InventoryItemID *uuid.UUID      `json:"inventory_item_id,omitempty"`
	RecordDate      string          `json:"record_date"`
	Division        string          `json:"division"`
	TeamCategory    string          `json:"team_category"`
	ProjectName     string          `json:"project_name"`
	ProductName     string          `json:"product_name"`
	Specification   string          `json:"specification"`
	Quantity        decimal.Decimal `json:"quantity"`
	Recipient       string          `json:"recipient"`
	Note            *string         `json:"note,omitempty"`
	CreatedByUserID uuid.UUID       `json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// UsageDTO is one consumption report filed by a field crew.
type UsageDTO struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	InventoryItemID *uuid.UUID      `json:"inventory_item_id,omitempty"`
	RecordDate      string          `json:"record_date"`
	Division        string          `json:"division"`
	TeamCategory    string          `json:"team_category"`
	ProjectName     string          `json:"project_name"`
	ProductName     string          `json:"product_name"`
	Specification   string          `json:"specification"`
	Quantity        decimal.Decimal `json:"quantity"`
	Recipient       string          `json:"recipient"`
	Note            *string         `json:"note,omitempty"`
	CreatedByUserID uuid.UUID       `json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateIncomingDTO carries the fields accepted on incoming creation.
type CreateIncomingDTO struct {
	TenantID      uuid.UUID
	RecordDate    string
	Division      string
	Category      string
	ProductName   string
	Specification string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Supplier      string
	Note          *string
}

// CreateOutgoingDTO carries the fields accepted on outgoing creation.
type CreateOutgoingDTO struct {
	TenantID      uuid.UUID
	RecordDate    string
	Division      string
	TeamCategory  string
	ProjectName   string
	ProductName   string
	Specification string
	Quantity      decimal.Decimal
	Recipient     string
	Note          *string
}

// CreateUsageDTO carries the fields accepted on usage creation.
type CreateUsageDTO struct {
	TenantID      uuid.UUID
	RecordDate    string
	Division      string
	TeamCategory  string
	ProjectName   string
	ProductName   string
	Specification string
	Quantity      decimal.Decimal
	Recipient     string
	Note          *string
}

// UpdateIncomingInput patches an incoming record; nil means unchanged.
type UpdateIncomingInput struct {
	RecordDate    *string
	Division      *string
	Category      *string
	ProductName   *string
	Specification *string
	Quantity      *decimal.Decimal
	UnitPrice     *decimal.Decimal
	Supplier      *string
	Note          *string
}

// UpdateOutgoingInput patches an outgoing record; nil means unchanged.
type UpdateOutgoingInput struct {
	RecordDate    *string
	Division      *string
	TeamCategory  *string
	ProjectName   *string
	ProductName   *string
	Specification *string
	Quantity      *decimal.Decimal
	Recipient     *string
	Note          *string
}

// UpdateUsageInput patches a usage record; nil means unchanged.
type UpdateUsageInput = UpdateOutgoingInput

// IncomingList is one page of incoming records.
type IncomingList struct {
	Records    []IncomingDTO `json:"records"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// OutgoingList is one page of outgoing records.
type OutgoingList struct {
	Records    []OutgoingDTO `json:"records"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// UsageList is one page of usage records.
type UsageList struct {
	Records    []UsageDTO `json:"records"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func incomingToDTO(m *models.IncomingRecord) *IncomingDTO {
	if m == nil {
		return nil
	}
	return &IncomingDTO{
		ID:              m.ID,
		TenantID:        m.TenantID,
		InventoryItemID: m.InventoryItemID,
		RecordDate:      m.RecordDate,
		Division:        m.Division,
		Category:        m.Category,
		ProductName:     m.ProductName,
		Specification:   m.Specification,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		TotalAmount:     m.TotalAmount,
		Supplier:        m.Supplier,
		Note:            m.Note,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func outgoingToDTO(m *models.OutgoingRecord) *OutgoingDTO {
	if m == nil {
		return nil
	}
	return &OutgoingDTO{
		ID:              m.ID,
		TenantID:        m.TenantID,
		InventoryItemID: m.InventoryItemID,
		RecordDate:      m.RecordDate,
		Division:        m.Division,
		TeamCategory:    m.TeamCategory,
		ProjectName:     m.ProjectName,
		ProductName:     m.ProductName,
		Specification:   m.Specification,
		Quantity:        m.Quantity,
		Recipient:       m.Recipient,
		Note:            m.Note,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func usageToDTO(m *models.UsageRecord) *UsageDTO {
	if m == nil {
		return nil
	}
	return &UsageDTO{
		ID:              m.ID,
		TenantID:        m.TenantID,
		InventoryItemID: m.InventoryItemID,
		RecordDate:      m.RecordDate,
		Division:        m.Division,
		TeamCategory:    m.TeamCategory,
		ProjectName:     m.ProjectName,
		ProductName:     m.ProductName,
		Specification:   m.Specification,
		Quantity:        m.Quantity,
		Recipient:       m.Recipient,
		Note:            m.Note,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
