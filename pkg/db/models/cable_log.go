package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// CableLog is the append-only event history of a drum. Before/after
// remaining lengths are captured at write time so the history stays
// readable even if the drum row is later edited.
type CableLog struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID          `gorm:"column:tenant_id;type:uuid;not null;index"`
	CableID         uuid.UUID          `gorm:"column:cable_id;type:uuid;not null;index"`
	LogType         enums.CableLogType `gorm:"column:log_type;type:cable_log_type;not null"`
	UsageDate       string             `gorm:"column:usage_date;type:text;not null"`
	WorkerName      string             `gorm:"column:worker_name;not null"`
	TeamID          *uuid.UUID         `gorm:"column:team_id;type:uuid"`
	Location        *string            `gorm:"column:location"`
	InstallLength   decimal.Decimal    `gorm:"column:install_length;type:numeric(12,2);not null;default:0"`
	WasteLength     decimal.Decimal    `gorm:"column:waste_length;type:numeric(12,2);not null;default:0"`
	UsedLength      decimal.Decimal    `gorm:"column:used_length;type:numeric(12,2);not null;default:0"`
	BeforeRemaining decimal.Decimal    `gorm:"column:before_remaining;type:numeric(12,2);not null"`
	AfterRemaining  decimal.Decimal    `gorm:"column:after_remaining;type:numeric(12,2);not null"`
	Note            *string            `gorm:"column:note"`
	CreatedByUserID *uuid.UUID         `gorm:"column:created_by_user_id;type:uuid"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
}
