package divisions

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type divisionRepository interface {
	Create(ctx context.Context, dto CreateDivisionDTO) (*models.Division, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Division, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Division, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateDivisionInput) (*models.Division, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountTeams(ctx context.Context, tenantID, divisionID uuid.UUID) (int64, error)
}

// Service exposes division management operations.
type Service struct {
	repo divisionRepository
}

func NewService(repo divisionRepository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("division repository required")
	}
	return &Service{repo: repo}, nil
}

// List returns the tenant's divisions in display order.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]DivisionDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list divisions")
	}
	out := make([]DivisionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out, nil
}

// Create adds a division after validating its name.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, name string, sortOrder int) (*DivisionDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "division name is required")
	}
	division, err := s.repo.Create(ctx, CreateDivisionDTO{
		TenantID:  tenantID,
		Name:      name,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create division")
	}
	return ToDTO(division), nil
}

// Update mutates a division's fields.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateDivisionInput) (*DivisionDTO, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "division name cannot be empty")
		}
		input.Name = &trimmed
	}
	division, err := s.repo.Update(ctx, tenantID, id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "division not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update division")
	}
	return ToDTO(division), nil
}

// Delete removes a division unless teams still reference it.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	teamCount, err := s.repo.CountTeams(ctx, tenantID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count teams")
	}
	if teamCount > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "division still has teams")
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "division not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete division")
	}
	return nil
}
