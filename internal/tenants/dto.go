package tenants

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// TenantDTO exposes safe tenant data in API responses.
type TenantDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTenantDTO holds creation-time data for a new tenant.
type CreateTenantDTO struct {
	Name string
	Slug string
}

// FromModel maps the persisted tenant into a DTO.
func FromModel(m *models.Tenant) *TenantDTO {
	if m == nil {
		return nil
	}
	return &TenantDTO{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModel converts the creation DTO into a model.
func (c CreateTenantDTO) ToModel() *models.Tenant {
	return &models.Tenant{
		ID:       uuid.New(),
		Name:     c.Name,
		Slug:     c.Slug,
		IsActive: true,
	}
}
