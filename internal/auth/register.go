package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/tenants"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/users"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/security"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// RegisterRequest contains the payload required for onboarding a new company.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3"`
	Password    string  `json:"password" validate:"required,min=6"`
	Name        string  `json:"name" validate:"required"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	CompanyName string  `json:"company_name" validate:"required"`
}

// RegisterService handles the onboarding transaction: the first user of
// a company becomes its owner.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

type registerTxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerTenantRepository interface {
	Create(ctx context.Context, dto tenants.CreateTenantDTO) (*models.Tenant, error)
}

type registerMembershipRepository interface {
	CreateMembership(ctx context.Context, dto memberships.CreateMembershipDTO) (*models.TenantMembership, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
// Repo factories receive the transaction so the whole flow commits atomically.
type RegisterServiceParams struct {
	TxRunner              registerTxRunner
	UserRepoFactory       func(tx *gorm.DB) registerUserRepository
	TenantRepoFactory     func(tx *gorm.DB) registerTenantRepository
	MembershipRepoFactory func(tx *gorm.DB) registerMembershipRepository
	PasswordConfig        config.PasswordConfig
}

type registerService struct {
	tx             registerTxRunner
	userRepos      func(tx *gorm.DB) registerUserRepository
	tenantRepos    func(tx *gorm.DB) registerTenantRepository
	memberRepos    func(tx *gorm.DB) registerMembershipRepository
	passwordCfg    config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.UserRepoFactory == nil {
		params.UserRepoFactory = func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		}
	}
	if params.TenantRepoFactory == nil {
		params.TenantRepoFactory = func(tx *gorm.DB) registerTenantRepository {
			return tenants.NewRepository(tx)
		}
	}
	if params.MembershipRepoFactory == nil {
		params.MembershipRepoFactory = func(tx *gorm.DB) registerMembershipRepository {
			return memberships.NewRepository(tx)
		}
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepos:   params.UserRepoFactory,
		tenantRepos: params.TenantRepoFactory,
		memberRepos: params.MembershipRepoFactory,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepos(tx)
		tenantRepo := s.tenantRepos(tx)
		membershipRepo := s.memberRepos(tx)

		if _, err := userRepo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			PasswordHash: passwordHash,
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		tenant, err := tenantRepo.Create(ctx, tenants.CreateTenantDTO{
			Name: companyName,
			Slug: slugify(companyName),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tenant")
		}

		if _, err := membershipRepo.CreateMembership(ctx, memberships.CreateMembershipDTO{
			TenantID: tenant.ID,
			UserID:   user.ID,
			Role:     enums.MemberRoleOwner,
			Status:   enums.MembershipStatusActive,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
		}

		return nil
	})
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
