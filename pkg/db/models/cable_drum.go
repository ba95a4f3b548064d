package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// CableDrum is one physical optical-cable drum. RemainingLength is
// redundant with TotalLength-UsedLength and is what list views read.
type CableDrum struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index"`
	ManagementNo    string            `gorm:"column:management_no;not null;default:''"`
	DrumNo          string            `gorm:"column:drum_no;not null"`
	Division        string            `gorm:"column:division;not null;default:''"`
	Category        string            `gorm:"column:category;not null;default:''"`
	Spec            string            `gorm:"column:spec;not null"`
	CoreCount       int               `gorm:"column:core_count;not null;default:0"`
	Manufacturer    string            `gorm:"column:manufacturer;not null;default:''"`
	ManufactureYear string            `gorm:"column:manufacture_year;not null;default:''"`
	ReceivedDate    string            `gorm:"column:received_date;type:text;not null"`
	Location        string            `gorm:"column:location;not null;default:''"`
	ProjectCode     string            `gorm:"column:project_code;not null;default:''"`
	ProjectName     string            `gorm:"column:project_name;not null;default:''"`
	TotalLength     decimal.Decimal   `gorm:"column:total_length;type:numeric(12,2);not null"`
	UsedLength      decimal.Decimal   `gorm:"column:used_length;type:numeric(12,2);not null;default:0"`
	RemainingLength decimal.Decimal   `gorm:"column:remaining_length;type:numeric(12,2);not null"`
	UnitPrice       decimal.Decimal   `gorm:"column:unit_price;type:numeric(14,2);not null;default:0"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(16,2);not null;default:0"`
	Status          enums.CableStatus `gorm:"column:status;type:cable_status;not null"`
	CurrentTeamID   *uuid.UUID        `gorm:"column:current_team_id;type:uuid"`
	Remark          *string           `gorm:"column:remark"`
	CreatedByUserID uuid.UUID         `gorm:"column:created_by_user_id;type:uuid;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
