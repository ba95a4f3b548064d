package positions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// Repository provides persistence helpers for positions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new position row.
func (r *Repository) Create(ctx context.Context, dto CreatePositionDTO) (*models.Position, error) {
	position := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return nil, err
	}
	return position, nil
}

// FindByID loads a position scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// ListByTenant returns all positions for a tenant ordered for display.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Position, error) {
	var rows []models.Position
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
func (r *Repository) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdatePositionInput) (*models.Position, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Position{}).
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

// Delete removes a position row.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Position{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
