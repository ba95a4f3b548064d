package invitations

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// InvitationDTO is the API representation of a tenant invitation.
type InvitationDTO struct {
	ID               uuid.UUID              `json:"id"`
	TenantID         uuid.UUID              `json:"tenant_id"`
	Email            string                 `json:"email"`
	Role             enums.MemberRole       `json:"role"`
	Permissions      dbtypes.PermissionMap  `json:"permissions"`
	Token            string                 `json:"token,omitempty"`
	Status           enums.InvitationStatus `json:"status"`
	ExpiresAt        time.Time              `json:"expires_at"`
	InvitedByUserID  uuid.UUID              `json:"invited_by_user_id"`
	AcceptedByUserID *uuid.UUID             `json:"accepted_by_user_id,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// CreateInvitationDTO carries the fields for issuing an invitation.
type CreateInvitationDTO struct {
	TenantID    uuid.UUID
	Email       string
	Role        enums.MemberRole
	Permissions dbtypes.PermissionMap
	InvitedBy   uuid.UUID
}

// AcceptResult reports the membership created by redeeming a token.
type AcceptResult struct {
	TenantID     uuid.UUID        `json:"tenant_id"`
	MembershipID uuid.UUID        `json:"membership_id"`
	Role         enums.MemberRole `json:"role"`
}

// ToDTO converts a record into its API shape. The raw token is only
// included for freshly issued invitations.
func ToDTO(inv *models.Invitation, includeToken bool) *InvitationDTO {
	dto := &InvitationDTO{
		ID:               inv.ID,
		TenantID:         inv.TenantID,
		Email:            inv.Email,
		Role:             inv.Role,
		Permissions:      inv.Permissions.Clone(),
		Status:           inv.Status,
		ExpiresAt:        inv.ExpiresAt,
		InvitedByUserID:  inv.InvitedByUserID,
		CreatedAt:        inv.CreatedAt,
	}
	if inv.AcceptedByUserID != nil {
		accepted := *inv.AcceptedByUserID
		dto.AcceptedByUserID = &accepted
	}
	if includeToken {
		dto.Token = inv.Token
	}
	return dto
}
