package divisions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// Repository provides persistence helpers for divisions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new division row.
func (r *Repository) Create(ctx context.Context, dto CreateDivisionDTO) (*models.Division, error) {
	division := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(division).Error; err != nil {
		return nil, err
	}
	return division, nil
}

// FindByID loads a division scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Division, error) {
	var division models.Division
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&division).Error
	if err != nil {
		return nil, err
	}
	return &division, nil
}

// ListByTenant returns all divisions for a tenant ordered for display.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Division, error) {
	var rows []models.Division
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided changes and returns the fresh row.
func (r *Repository) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateDivisionInput) (*models.Division, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Division{}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, tenantID, id)
}

// Delete removes a division row.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Division{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountTeams reports how many teams reference the division.
func (r *Repository) CountTeams(ctx context.Context, tenantID, divisionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("tenant_id = ? AND division_id = ?", tenantID, divisionID).
		Count(&count).Error
	return count, err
}
