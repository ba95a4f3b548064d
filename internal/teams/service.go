package teams

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type teamRepository interface {
	Create(ctx context.Context, dto CreateTeamDTO) (*models.Team, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Team, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, divisionID *uuid.UUID) ([]models.Team, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountAssignedDrums(ctx context.Context, tenantID, teamID uuid.UUID) (int64, error)
}

type divisionFinder interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Division, error)
}

// Service exposes team management operations.
type Service struct {
	repo      teamRepository
	divisions divisionFinder
}

func NewService(repo teamRepository, divisions divisionFinder) (*Service, error) {
	if repo == nil {
		return nil, errors.New("team repository required")
	}
	if divisions == nil {
		return nil, errors.New("division finder required")
	}
	return &Service{repo: repo, divisions: divisions}, nil
}

// List returns the tenant's teams, optionally filtered by division.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, divisionID *uuid.UUID) ([]TeamDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID, divisionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list teams")
	}
	out := make([]TeamDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out, nil
}

// Get loads a single team.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*TeamDTO, error) {
	team, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load team")
	}
	return ToDTO(team), nil
}

// Create registers a field crew under an existing division.
func (s *Service) Create(ctx context.Context, dto CreateTeamDTO) (*TeamDTO, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
	}
	if dto.MemberCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member count cannot be negative")
	}
	if _, err := s.divisions.FindByID(ctx, dto.TenantID, dto.DivisionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "division not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load division")
	}

	team, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create team")
	}
	return ToDTO(team), nil
}

// Update mutates a team's fields.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateTeamInput) (*TeamDTO, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name cannot be empty")
		}
		input.Name = &trimmed
	}
	if input.MemberCount != nil && *input.MemberCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member count cannot be negative")
	}
	if input.DivisionID != nil {
		if _, err := s.divisions.FindByID(ctx, tenantID, *input.DivisionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "division not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load division")
		}
	}

	team, err := s.repo.Update(ctx, tenantID, id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update team")
	}
	return ToDTO(team), nil
}

// Delete removes a team unless drums are still checked out to it.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	assigned, err := s.repo.CountAssignedDrums(ctx, tenantID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count assigned drums")
	}
	if assigned > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "team still holds assigned drums")
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete team")
	}
	return nil
}
