package positions

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// PositionDTO is the API representation of a job title.
type PositionDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePositionDTO carries the fields for a new position.
type CreatePositionDTO struct {
	TenantID  uuid.UUID
	Name      string
	SortOrder int
}

// ToModel converts the DTO into a persistable record.
func (d CreatePositionDTO) ToModel() *models.Position {
	return &models.Position{
		ID:        uuid.New(),
		TenantID:  d.TenantID,
		Name:      d.Name,
		SortOrder: d.SortOrder,
	}
}

// UpdatePositionInput patches a position; nil means unchanged.
type UpdatePositionInput struct {
	Name      *string
	SortOrder *int
}

// ToDTO converts a record into its API shape.
func ToDTO(p *models.Position) *PositionDTO {
	return &PositionDTO{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
