package teams

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// TeamDTO is the API representation of a field crew.
type TeamDTO struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	DivisionID     uuid.UUID  `json:"division_id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	MemberCount    int        `json:"member_count"`
	IsActive       bool       `json:"is_active"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateTeamDTO carries the fields accepted when registering a crew.
type CreateTeamDTO struct {
	TenantID    uuid.UUID
	DivisionID  uuid.UUID
	Name        string
	Category    string
	MemberCount int
}

// UpdateTeamInput carries the mutable fields; nil means unchanged.
type UpdateTeamInput struct {
	DivisionID  *uuid.UUID
	Name        *string
	Category    *string
	MemberCount *int
	IsActive    *bool
}

// ToModel converts the create DTO to a persistence model.
func (d CreateTeamDTO) ToModel() *models.Team {
	return &models.Team{
		ID:          uuid.New(),
		TenantID:    d.TenantID,
		DivisionID:  d.DivisionID,
		Name:        d.Name,
		Category:    d.Category,
		MemberCount: d.MemberCount,
		IsActive:    true,
	}
}

// ToDTO maps a model into its API representation.
func ToDTO(m *models.Team) *TeamDTO {
	if m == nil {
		return nil
	}
	return &TeamDTO{
		ID:             m.ID,
		TenantID:       m.TenantID,
		DivisionID:     m.DivisionID,
		Name:           m.Name,
		Category:       m.Category,
		MemberCount:    m.MemberCount,
		IsActive:       m.IsActive,
		LastActivityAt: m.LastActivityAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
