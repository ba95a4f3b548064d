package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a field crew inside a division. Drums are checked out to teams.
type Team struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	DivisionID     uuid.UUID  `gorm:"column:division_id;type:uuid;not null"`
	Name           string     `gorm:"column:name;not null"`
	Category       string     `gorm:"column:category;not null"`
	MemberCount    int        `gorm:"column:member_count;not null;default:0"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	LastActivityAt *time.Time `gorm:"column:last_activity_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
