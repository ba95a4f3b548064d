package auth

import (
	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/users"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TenantSummary describes the tenant metadata returned after login.
type TenantSummary struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Role        enums.MemberRole      `json:"role"`
	Permissions dbtypes.PermissionMap `json:"permissions"`
}

// LoginResponse contains the tokens, user, and tenant list produced by a successful login.
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Tenants      []TenantSummary `json:"tenants"`
	User         *users.UserDTO  `json:"user"`
}

// MeResponse describes the authenticated user plus their memberships.
type MeResponse struct {
	User           *users.UserDTO  `json:"user"`
	Tenants        []TenantSummary `json:"tenants"`
	ActiveTenantID *uuid.UUID      `json:"active_tenant_id,omitempty"`
}
