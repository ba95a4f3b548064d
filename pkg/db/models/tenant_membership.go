package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// TenantMembership links a user with a tenant and captures their role,
// status, and per-resource permission grants.
type TenantMembership struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_memberships_tenant_user"`
	UserID          uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_memberships_tenant_user"`
	Role            enums.MemberRole       `gorm:"column:role;type:member_role;not null"`
	Status          enums.MembershipStatus `gorm:"column:status;type:membership_status;not null"`
	PositionID      *uuid.UUID             `gorm:"column:position_id;type:uuid"`
	Permissions     dbtypes.PermissionMap  `gorm:"column:permissions;type:jsonb;not null;default:'{}'"`
	InvitedByUserID *uuid.UUID             `gorm:"column:invited_by_user_id;type:uuid"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
