package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// MembershipDTO is the transport shape for a raw membership record.
type MembershipDTO struct {
	ID              uuid.UUID              `json:"id"`
	TenantID        uuid.UUID              `json:"tenant_id"`
	UserID          uuid.UUID              `json:"user_id"`
	Role            enums.MemberRole       `json:"role"`
	Status          enums.MembershipStatus `json:"status"`
	PositionID      *uuid.UUID             `json:"position_id,omitempty"`
	Permissions     dbtypes.PermissionMap  `json:"permissions"`
	InvitedByUserID *uuid.UUID             `json:"invited_by_user_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// MembershipWithTenant includes basic tenant metadata + membership info.
// It backs the tenant switcher in the client.
type MembershipWithTenant struct {
	MembershipID uuid.UUID              `json:"membership_id"`
	TenantID     uuid.UUID              `json:"tenant_id"`
	UserID       uuid.UUID              `json:"user_id"`
	TenantName   string                 `json:"tenant_name"`
	TenantSlug   string                 `json:"tenant_slug"`
	Role         enums.MemberRole       `json:"role"`
	Status       enums.MembershipStatus `json:"status"`
	Permissions  dbtypes.PermissionMap  `json:"permissions"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// TenantMemberDTO mixes membership metadata with the associated user
// profile for the admin member list.
type TenantMemberDTO struct {
	MembershipID uuid.UUID              `json:"membership_id"`
	TenantID     uuid.UUID              `json:"tenant_id"`
	UserID       uuid.UUID              `json:"user_id"`
	Username     string                 `json:"username"`
	Name         string                 `json:"name"`
	Email        *string                `json:"email,omitempty"`
	Role         enums.MemberRole       `json:"role"`
	Status       enums.MembershipStatus `json:"membership_status"`
	PositionID   *uuid.UUID             `json:"position_id,omitempty"`
	PositionName *string                `json:"position_name,omitempty"`
	Permissions  dbtypes.PermissionMap  `json:"permissions"`
	CreatedAt    time.Time              `json:"created_at"`
	LastLoginAt  *time.Time             `json:"last_login_at,omitempty"`
}

// UpdateMembershipInput captures the mutable membership fields. Nil
// means "leave unchanged".
type UpdateMembershipInput struct {
	Role        *enums.MemberRole
	PositionID  **uuid.UUID
	Permissions *dbtypes.PermissionMap
}

// ToDTO converts a model to the external DTO.
func ToDTO(m *models.TenantMembership) *MembershipDTO {
	if m == nil {
		return nil
	}

	return &MembershipDTO{
		ID:              m.ID,
		TenantID:        m.TenantID,
		UserID:          m.UserID,
		Role:            m.Role,
		Status:          m.Status,
		PositionID:      copyUUIDPointer(m.PositionID),
		Permissions:     m.Permissions.Clone(),
		InvitedByUserID: copyUUIDPointer(m.InvitedByUserID),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func copyUUIDPointer(src *uuid.UUID) *uuid.UUID {
	if src == nil {
		return nil
	}
	dst := *src
	return &dst
}
