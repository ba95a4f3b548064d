package divisions

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// DivisionDTO is the API representation of a division.
type DivisionDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDivisionDTO carries the fields accepted on creation.
type CreateDivisionDTO struct {
	TenantID  uuid.UUID
	Name      string
	SortOrder int
}

// UpdateDivisionInput carries the mutable fields; nil means unchanged.
type UpdateDivisionInput struct {
	Name      *string
	SortOrder *int
	IsActive  *bool
}

// ToModel converts the create DTO to a persistence model.
func (d CreateDivisionDTO) ToModel() *models.Division {
	return &models.Division{
		ID:        uuid.New(),
		TenantID:  d.TenantID,
		Name:      d.Name,
		SortOrder: d.SortOrder,
		IsActive:  true,
	}
}

// ToDTO maps a model into its API representation.
func ToDTO(m *models.Division) *DivisionDTO {
	if m == nil {
		return nil
	}
	return &DivisionDTO{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
