package positions

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type positionRepository interface {
	Create(ctx context.Context, dto CreatePositionDTO) (*models.Position, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Position, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Position, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdatePositionInput) (*models.Position, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// Service exposes position management operations.
type Service struct {
	repo positionRepository
}

func NewService(repo positionRepository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("position repository required")
	}
	return &Service{repo: repo}, nil
}

// List returns the tenant's positions in display order.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]PositionDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list positions")
	}
	out := make([]PositionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out, nil
}

// Create adds a position after validating its name.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, name string, sortOrder int) (*PositionDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position name is required")
	}
	position, err := s.repo.Create(ctx, CreatePositionDTO{
		TenantID:  tenantID,
		Name:      name,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create position")
	}
	return ToDTO(position), nil
}

// Update mutates a position's fields.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdatePositionInput) (*PositionDTO, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "position name cannot be empty")
		}
		input.Name = &trimmed
	}
	position, err := s.repo.Update(ctx, tenantID, id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update position")
	}
	return ToDTO(position), nil
}

// Delete removes a position row.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete position")
	}
	return nil
}
