package memberships

import (
	"time"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

type membershipWithTenantRow struct {
	models.TenantMembership
	TenantName string `gorm:"column:tenant_name"`
	TenantSlug string `gorm:"column:tenant_slug"`
}

func membershipWithTenantFromRow(row membershipWithTenantRow) MembershipWithTenant {
	return MembershipWithTenant{
		MembershipID: row.ID,
		TenantID:     row.TenantID,
		UserID:       row.UserID,
		TenantName:   row.TenantName,
		TenantSlug:   row.TenantSlug,
		Role:         row.Role,
		Status:       row.Status,
		Permissions:  row.Permissions.Clone(),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func membershipRowsToDTO(rows []membershipWithTenantRow) []MembershipWithTenant {
	out := make([]MembershipWithTenant, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipWithTenantFromRow(row))
	}
	return out
}

type tenantMemberRow struct {
	models.TenantMembership
	Username     string     `gorm:"column:username"`
	Name         string     `gorm:"column:name"`
	Email        *string    `gorm:"column:email"`
	PositionName *string    `gorm:"column:position_name"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

func tenantMemberFromRow(row tenantMemberRow) TenantMemberDTO {
	return TenantMemberDTO{
		MembershipID: row.ID,
		TenantID:     row.TenantID,
		UserID:       row.UserID,
		Username:     row.Username,
		Name:         row.Name,
		Email:        row.Email,
		Role:         row.Role,
		Status:       row.Status,
		PositionID:   copyUUIDPointer(row.PositionID),
		PositionName: row.PositionName,
		Permissions:  row.Permissions.Clone(),
		CreatedAt:    row.CreatedAt,
		LastLoginAt:  row.LastLoginAt,
	}
}

func tenantMembersFromRows(rows []tenantMemberRow) []TenantMemberDTO {
	out := make([]TenantMemberDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, tenantMemberFromRow(row))
	}
	return out
}
