package teams

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// Repository provides persistence helpers for teams.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new team row.
func (r *Repository) Create(ctx context.Context, dto CreateTeamDTO) (*models.Team, error) {
	team := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// FindByID loads a team scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByTenant returns the tenant's teams, optionally filtered by division.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, divisionID *uuid.UUID) ([]models.Team, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if divisionID != nil {
		query = query.Where("division_id = ?", *divisionID)
	}
	var rows []models.Team
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided changes and returns the fresh row.
func (r *Repository) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	updates := map[string]any{}
	if input.DivisionID != nil {
		updates["division_id"] = *input.DivisionID
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.MemberCount != nil {
		updates["member_count"] = *input.MemberCount
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Team{}).
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

// TouchActivity stamps the team's last activity time. Failures here must
// not abort the calling operation.
func (r *Repository) TouchActivity(ctx context.Context, tenantID, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("last_activity_at", at).Error
}

// Delete removes a team row.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Team{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAssignedDrums reports how many drums are currently checked out to the team.
func (r *Repository) CountAssignedDrums(ctx context.Context, tenantID, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CableDrum{}).
		Where("tenant_id = ? AND current_team_id = ?", tenantID, teamID).
		Count(&count).Error
	return count, err
}
