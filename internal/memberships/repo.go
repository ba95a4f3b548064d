package memberships

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// Repository exposes membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUserTenants returns the tenants a user belongs to along with membership metadata.
func (r *Repository) ListUserTenants(ctx context.Context, userID uuid.UUID) ([]MembershipWithTenant, error) {
	var rows []membershipWithTenantRow

	err := r.db.WithContext(ctx).
		Model(&models.TenantMembership{}).
		Select("tenant_memberships.*, tenants.name AS tenant_name, tenants.slug AS tenant_slug").
		Joins("JOIN tenants ON tenants.id = tenant_memberships.tenant_id").
		Where("tenant_memberships.user_id = ? AND tenant_memberships.status = ?", userID, enums.MembershipStatusActive).
		Order("tenants.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return membershipRowsToDTO(rows), nil
}

// GetMembership retrieves a membership by user and tenant.
func (r *Repository) GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (*models.TenantMembership, error) {
	var membership models.TenantMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembershipDTO carries the fields needed to persist a membership.
type CreateMembershipDTO struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	Role        enums.MemberRole
	Status      enums.MembershipStatus
	PositionID  *uuid.UUID
	Permissions dbtypes.PermissionMap
	InvitedBy   *uuid.UUID
}

func (d CreateMembershipDTO) toModel() (*models.TenantMembership, error) {
	if !d.Role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", d.Role)
	}
	if !d.Status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", d.Status)
	}
	perms := d.Permissions
	if perms == nil {
		perms = dbtypes.PermissionMap{}
	}
	if err := perms.Validate(); err != nil {
		return nil, err
	}

	return &models.TenantMembership{
		ID:              uuid.New(),
		TenantID:        d.TenantID,
		UserID:          d.UserID,
		Role:            d.Role,
		Status:          d.Status,
		PositionID:      d.PositionID,
		Permissions:     perms.Clone(),
		InvitedByUserID: d.InvitedBy,
	}, nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, dto CreateMembershipDTO) (*models.TenantMembership, error) {
	membership, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// CreateMembershipWithTx persists a membership inside the provided transaction.
func (r *Repository) CreateMembershipWithTx(tx *gorm.DB, dto CreateMembershipDTO) (*models.TenantMembership, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	membership, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	if err := tx.Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// UserHasRole reports whether the user holds one of the provided roles for the tenant.
func (r *Repository) UserHasRole(ctx context.Context, userID, tenantID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TenantMembership{}).
		Where("user_id = ? AND tenant_id = ? AND role IN ? AND status = ?",
			userID, tenantID, roles, enums.MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMembershipWithTenant returns membership details joined with tenant metadata.
func (r *Repository) GetMembershipWithTenant(ctx context.Context, userID, tenantID uuid.UUID) (*MembershipWithTenant, error) {
	var row membershipWithTenantRow
	err := r.db.WithContext(ctx).
		Model(&models.TenantMembership{}).
		Select("tenant_memberships.*, tenants.name AS tenant_name, tenants.slug AS tenant_slug").
		Joins("JOIN tenants ON tenants.id = tenant_memberships.tenant_id").
		Where("tenant_memberships.user_id = ? AND tenant_memberships.tenant_id = ?", userID, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	dto := membershipWithTenantFromRow(row)
	return &dto, nil
}

// FindMembershipByID loads a membership row scoped to the tenant.
func (r *Repository) FindMembershipByID(ctx context.Context, tenantID, membershipID uuid.UUID) (*models.TenantMembership, error) {
	var membership models.TenantMembership
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", membershipID, tenantID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListTenantMembers returns memberships for the tenant along with user metadata.
func (r *Repository) ListTenantMembers(ctx context.Context, tenantID uuid.UUID) ([]TenantMemberDTO, error) {
	var rows []tenantMemberRow
	err := r.db.WithContext(ctx).
		Model(&models.TenantMembership{}).
		Select("tenant_memberships.*, users.username, users.name, users.email, users.last_login_at, positions.name AS position_name").
		Joins("JOIN users ON users.id = tenant_memberships.user_id").
		Joins("LEFT JOIN positions ON positions.id = tenant_memberships.position_id").
		Where("tenant_memberships.tenant_id = ?", tenantID).
		Order("tenant_memberships.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return tenantMembersFromRows(rows), nil
}

// UpdateMembership applies the provided mutations and returns the fresh record.
func (r *Repository) UpdateMembership(ctx context.Context, membershipID, tenantID uuid.UUID, input UpdateMembershipInput) (*models.TenantMembership, error) {
	updates := map[string]any{}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, fmt.Errorf("invalid member role %q", *input.Role)
		}
		updates["role"] = *input.Role
	}
	if input.PositionID != nil {
		updates["position_id"] = *input.PositionID
	}
	if input.Permissions != nil {
		if err := input.Permissions.Validate(); err != nil {
			return nil, err
		}
		updates["permissions"] = input.Permissions.Clone()
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.TenantMembership{}).
			Where("id = ? AND tenant_id = ?", membershipID, tenantID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var membership models.TenantMembership
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", membershipID, tenantID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// DeleteMembership removes the membership row for the tenant.
func (r *Repository) DeleteMembership(ctx context.Context, tenantID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Delete(&models.TenantMembership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountMembersWithRoles counts active memberships holding any of the roles.
func (r *Repository) CountMembersWithRoles(ctx context.Context, tenantID uuid.UUID, roles ...enums.MemberRole) (int64, error) {
	if len(roles) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TenantMembership{}).
		Where("tenant_id = ? AND role IN ? AND status = ?", tenantID, roles, enums.MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
