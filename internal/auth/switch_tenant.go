package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	pkgAuth "github.com/hyunwoo-lim/cabletrack-backend/pkg/auth"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/auth/session"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

// SwitchTenantInput captures the data required to switch the active tenant.
type SwitchTenantInput struct {
	UserID        uuid.UUID
	TenantID      uuid.UUID
	AccessTokenID string
}

// SwitchTenantResult returns the tokens issued after switching tenants.
type SwitchTenantResult struct {
	AccessToken  string
	RefreshToken string
	Tenant       TenantSummary
}

type switchTenantService struct {
	memberships switchMembershipsRepository
	session     switchSessionRotator
	jwtCfg      config.JWTConfig
}

type switchMembershipsRepository interface {
	GetMembershipWithTenant(ctx context.Context, userID, tenantID uuid.UUID) (*memberships.MembershipWithTenant, error)
}

type switchSessionRotator interface {
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	RefreshToken(ctx context.Context, accessID string) (string, error)
}

// SwitchTenantServiceParams bundles dependencies for the switch flow.
type SwitchTenantServiceParams struct {
	MembershipsRepo switchMembershipsRepository
	SessionManager  switchSessionRotator
	JWTConfig       config.JWTConfig
}

// NewSwitchTenantService constructs the service.
func NewSwitchTenantService(params SwitchTenantServiceParams) (SwitchTenantService, error) {
	if params.MembershipsRepo == nil {
		return nil, errors.New("memberships repository required")
	}
	if params.SessionManager == nil {
		return nil, errors.New("session manager required")
	}
	return &switchTenantService{
		memberships: params.MembershipsRepo,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
	}, nil
}

// SwitchTenantService is the interface exposed to the controller.
type SwitchTenantService interface {
	Switch(ctx context.Context, input SwitchTenantInput) (*SwitchTenantResult, error)
}

func (s *switchTenantService) Switch(ctx context.Context, input SwitchTenantInput) (*SwitchTenantResult, error) {
	membership, err := s.memberships.GetMembershipWithTenant(ctx, input.UserID, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant membership required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup membership")
	}
	if membership.Status != enums.MembershipStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant membership inactive")
	}

	refreshToken, err := s.session.RefreshToken(ctx, input.AccessTokenID)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load refresh token")
	}

	newAccessID, newRefreshToken, err := s.session.Rotate(ctx, input.AccessTokenID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	payload := pkgAuth.AccessTokenPayload{
		UserID:         input.UserID,
		ActiveTenantID: &input.TenantID,
		Role:           membership.Role,
		JTI:            newAccessID,
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &SwitchTenantResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Tenant: TenantSummary{
			ID:          membership.TenantID,
			Name:        membership.TenantName,
			Slug:        membership.TenantSlug,
			Role:        membership.Role,
			Permissions: membership.Permissions,
		},
	}, nil
}
