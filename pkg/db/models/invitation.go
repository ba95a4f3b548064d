package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// Invitation is a pending offer to join a tenant, redeemed by token.
type Invitation struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID         uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null;index"`
	Email            string                 `gorm:"column:email;not null"`
	Role             enums.MemberRole       `gorm:"column:role;type:member_role;not null"`
	Permissions      dbtypes.PermissionMap  `gorm:"column:permissions;type:jsonb;not null;default:'{}'"`
	Token            string                 `gorm:"column:token;type:text;not null;uniqueIndex"`
	Status           enums.InvitationStatus `gorm:"column:status;type:invitation_status;not null"`
	ExpiresAt        time.Time              `gorm:"column:expires_at;not null"`
	InvitedByUserID  uuid.UUID              `gorm:"column:invited_by_user_id;type:uuid;not null"`
	AcceptedByUserID *uuid.UUID             `gorm:"column:accepted_by_user_id;type:uuid"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
