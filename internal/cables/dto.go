package cables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// DrumDTO is the API representation of an optical-cable drum.
type DrumDTO struct {
	ID              uuid.UUID         `json:"id"`
	TenantID        uuid.UUID         `json:"tenant_id"`
	ManagementNo    string            `json:"management_no"`
	DrumNo          string            `json:"drum_no"`
	Division        string            `json:"division"`
	Category        string            `json:"category"`
	Spec            string            `json:"spec"`
	CoreCount       int               `json:"core_count"`
	Manufacturer    string            `json:"manufacturer"`
	ManufactureYear string            `json:"manufacture_year"`
	ReceivedDate    string            `json:"received_date"`
	Location        string            `json:"location"`
	ProjectCode     string            `json:"project_code"`
	ProjectName     string            `json:"project_name"`
	TotalLength     decimal.Decimal   `json:"total_length"`
	UsedLength      decimal.Decimal   `json:"used_length"`
	RemainingLength decimal.Decimal   `json:"remaining_length"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          enums.CableStatus `json:"status"`
	CurrentTeamID   *uuid.UUID        `json:"current_team_id,omitempty"`
	Remark          *string           `json:"remark,omitempty"`
	CreatedByUserID uuid.UUID         `json:"created_by_user_id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// LogDTO is one drum lifecycle event.
type LogDTO struct {
	ID              uuid.UUID          `json:"id"`
	TenantID        uuid.UUID          `json:"tenant_id"`
	CableID         uuid.UUID          `json:"cable_id"`
	LogType         enums.CableLogType `json:"log_type"`
	UsageDate       string             `json:"usage_date"`
	WorkerName      string             `json:"worker_name"`
	TeamID          *uuid.UUID         `json:"team_id,omitempty"`
	Location        *string            `json:"location,omitempty"`
	InstallLength   decimal.Decimal    `json:"install_length"`
	WasteLength     decimal.Decimal    `json:"waste_length"`
	UsedLength      decimal.Decimal    `json:"used_length"`
	BeforeRemaining decimal.Decimal    `json:"before_remaining"`
	AfterRemaining  decimal.Decimal    `json:"after_remaining"`
	Note            *string            `json:"note,omitempty"`
	CreatedByUserID *uuid.UUID         `json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// LogWithDrumDTO is a tenant-wide history row joined with the drum's
// identifying fields for list views.
type LogWithDrumDTO struct {
	LogDTO
	ManagementNo string `json:"management_no"`
	DrumNo       string `json:"drum_no"`
	Spec         string `json:"spec"`
}

// ReceiveDrumDTO carries the fields accepted when receiving a drum.
type ReceiveDrumDTO struct {
	TenantID        uuid.UUID
	ManagementNo    string
	DrumNo          string
	Division        string
	Category        string
	Spec            string
	CoreCount       int
	Manufacturer    string
	ManufactureYear string
	ReceivedDate    string
	Location        string
	ProjectCode     string
	ProjectName     string
	TotalLength     decimal.Decimal
	UnitPrice       decimal.Decimal
	Remark          *string
}

// UpdateDrumInput patches a drum's descriptive fields; nil means unchanged.
// Quantities and status only move through lifecycle operations.
type UpdateDrumInput struct {
	ManagementNo    *string
	DrumNo          *string
	Division        *string
	Category        *string
	Spec            *string
	CoreCount       *int
	Manufacturer    *string
	ManufactureYear *string
	ReceivedDate    *string
	Location        *string
	ProjectCode     *string
	ProjectName     *string
	UnitPrice       *decimal.Decimal
	Remark          *string
}

// AssignInput transfers custody of a drum to a field crew.
type AssignInput struct {
	TeamID     uuid.UUID
	UsageDate  string
	WorkerName string
	Note       *string
}

// UsageInput reports installed and wasted lengths from the field.
type UsageInput struct {
	InstallLength decimal.Decimal
	WasteLength   decimal.Decimal
	SectionName   string
	UsageDate     string
	WorkerName    string
	Note          *string
}

// ReturnInput brings an assigned drum back to the warehouse.
type ReturnInput struct {
	TeamID     uuid.UUID
	UsageDate  string
	WorkerName string
	Note       *string
}

// WasteInput marks a drum as scrap.
type WasteInput struct {
	UsageDate  string
	WorkerName string
	Note       *string
}

// DrumListFilter narrows drum list queries.
type DrumListFilter struct {
	Status   *enums.CableStatus
	Division *string
	TeamID   *uuid.UUID
	Limit    int
	Cursor   string
}

// LogListFilter narrows tenant-wide history queries.
type LogListFilter struct {
	LogType *enums.CableLogType
	Limit   int
	Cursor  string
}

// DrumList is one page of drums.
type DrumList struct {
	Drums      []DrumDTO `json:"drums"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// LogList is one page of tenant-wide history rows.
type LogList struct {
	Logs       []LogWithDrumDTO `json:"logs"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func drumToDTO(m *models.CableDrum) *DrumDTO {
	if m == nil {
		return nil
	}
	return &DrumDTO{
		ID:              m.ID,
		TenantID:        m.TenantID,
		ManagementNo:    m.ManagementNo,
		DrumNo:          m.DrumNo,
		Division:        m.Division,
		Category:        m.Category,
		Spec:            m.Spec,
		CoreCount:       m.CoreCount,
		Manufacturer:    m.Manufacturer,
		ManufactureYear: m.ManufactureYear,
		ReceivedDate:    m.ReceivedDate,
		Location:        m.Location,
		ProjectCode:     m.ProjectCode,
		ProjectName:     m.ProjectName,
		TotalLength:     m.TotalLength,
		UsedLength:      m.UsedLength,
		RemainingLength: m.RemainingLength,
		UnitPrice:       m.UnitPrice,
		TotalAmount:     m.TotalAmount,
		Status:          m.Status,
		CurrentTeamID:   m.CurrentTeamID,
		Remark:          m.Remark,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func logToDTO(m *models.CableLog) *LogDTO {
	if m == nil {
		return nil
	}
	return &LogDTO{
		ID:              m.ID,
		TenantID:        m.TenantID,
		CableID:         m.CableID,
		LogType:         m.LogType,
		UsageDate:       m.UsageDate,
		WorkerName:      m.WorkerName,
		TeamID:          m.TeamID,
		Location:        m.Location,
		InstallLength:   m.InstallLength,
		WasteLength:     m.WasteLength,
		UsedLength:      m.UsedLength,
		BeforeRemaining: m.BeforeRemaining,
		AfterRemaining:  m.AfterRemaining,
		Note:            m.Note,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
	}
}
