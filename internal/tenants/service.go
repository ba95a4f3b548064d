package tenants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type tenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
}

type membershipsRepository interface {
	UserHasRole(ctx context.Context, userID, tenantID uuid.UUID, roles ...enums.MemberRole) (bool, error)
}

// Service exposes company profile operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error)
	Update(ctx context.Context, actorID, tenantID uuid.UUID, input UpdateTenantInput) (*TenantDTO, error)
}

type service struct {
	repo        tenantRepository
	memberships membershipsRepository
}

// NewService builds a tenant service with the provided repositories.
func NewService(repo tenantRepository, membershipsRepo membershipsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	if membershipsRepo == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	return &service{repo: repo, memberships: membershipsRepo}, nil
}

// UpdateTenantInput captures the allowed tenant fields for mutation.
type UpdateTenantInput struct {
	Name *string
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	return FromModel(tenant), nil
}

func (s *service) Update(ctx context.Context, actorID, tenantID uuid.UUID, input UpdateTenantInput) (*TenantDTO, error) {
	ok, err := s.memberships.UserHasRole(ctx, actorID, tenantID, enums.MemberRoleOwner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}

	tenant, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant name cannot be empty")
		}
		tenant.Name = trimmed
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tenant")
	}
	return FromModel(tenant), nil
}
