package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/tenants"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/users"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	pkgmodels "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterUserRepo struct {
	data    map[string]*pkgmodels.User
	created *pkgmodels.User
}

func newStubRegisterUserRepo() *stubRegisterUserRepo {
	return &stubRegisterUserRepo{data: map[string]*pkgmodels.User{}}
}

func (s *stubRegisterUserRepo) FindByUsername(ctx context.Context, username string) (*pkgmodels.User, error) {
	if user, ok := s.data[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Username] = user
	s.created = user
	return user, nil
}

type stubRegisterTenantRepo struct {
	created *pkgmodels.Tenant
}

func (s *stubRegisterTenantRepo) Create(ctx context.Context, dto tenants.CreateTenantDTO) (*pkgmodels.Tenant, error) {
	tenant := dto.ToModel()
	tenant.ID = uuid.New()
	s.created = tenant
	return tenant, nil
}

type stubRegisterMembershipRepo struct {
	created *memberships.CreateMembershipDTO
}

func (s *stubRegisterMembershipRepo) CreateMembership(ctx context.Context, dto memberships.CreateMembershipDTO) (*pkgmodels.TenantMembership, error) {
	s.created = &dto
	return &pkgmodels.TenantMembership{
		ID:       uuid.New(),
		TenantID: dto.TenantID,
		UserID:   dto.UserID,
		Role:     dto.Role,
		Status:   dto.Status,
	}, nil
}

type registerTestSetup struct {
	service    RegisterService
	userRepo   *stubRegisterUserRepo
	tenantRepo *stubRegisterTenantRepo
	memberRepo *stubRegisterMembershipRepo
}

func newRegisterTestSetup(t *testing.T) *registerTestSetup {
	t.Helper()
	userRepo := newStubRegisterUserRepo()
	tenantRepo := &stubRegisterTenantRepo{}
	memberRepo := &stubRegisterMembershipRepo{}
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return userRepo
		},
		TenantRepoFactory: func(tx *gorm.DB) registerTenantRepository {
			return tenantRepo
		},
		MembershipRepoFactory: func(tx *gorm.DB) registerMembershipRepository {
			return memberRepo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return &registerTestSetup{
		service:    svc,
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		memberRepo: memberRepo,
	}
}

func sampleRegisterRequest(username, company string) RegisterRequest {
	return RegisterRequest{
		Username:    username,
		Password:    "Secret123!",
		Name:        "Hyunwoo Lim",
		CompanyName: company,
	}
}

func TestRegisterCreatesTenantWithOwnerMembership(t *testing.T) {
	setup := newRegisterTestSetup(t)
	req := sampleRegisterRequest("hwlim", "Seohae Networks Co.")

	if err := setup.service.Register(context.Background(), req); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if setup.userRepo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if setup.userRepo.created.PasswordHash == "Secret123!" {
		t.Fatalf("password stored without hashing")
	}
	if setup.tenantRepo.created == nil {
		t.Fatalf("expected tenant to be created")
	}
	if setup.tenantRepo.created.Slug != "seohae-networks-co" {
		t.Fatalf("unexpected slug %q", setup.tenantRepo.created.Slug)
	}
	if setup.memberRepo.created == nil {
		t.Fatalf("expected membership to be created")
	}
	if setup.memberRepo.created.TenantID != setup.tenantRepo.created.ID {
		t.Fatalf("membership not linked to created tenant")
	}
	if setup.memberRepo.created.UserID != setup.userRepo.created.ID {
		t.Fatalf("membership not linked to created user")
	}
	if setup.memberRepo.created.Role != enums.MemberRoleOwner {
		t.Fatalf("expected owner role, got %s", setup.memberRepo.created.Role)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.userRepo.data["hwlim"] = &pkgmodels.User{ID: uuid.New(), Username: "hwlim"}

	err := setup.service.Register(context.Background(), sampleRegisterRequest("hwlim", "Another Co"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if setup.tenantRepo.created != nil {
		t.Fatalf("expected no tenant creation on conflict")
	}
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	setup := newRegisterTestSetup(t)

	err := setup.service.Register(context.Background(), RegisterRequest{Password: "Secret123!", CompanyName: "Co"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing username, got %v", err)
	}

	err = setup.service.Register(context.Background(), RegisterRequest{Username: "hwlim", Password: "Secret123!"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing company, got %v", err)
	}
}
