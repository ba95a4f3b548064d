package invitations

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

const tokenBytes = 32

type invitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invitation, error)
	FindByToken(ctx context.Context, token string) (*models.Invitation, error)
	FindByTokenForUpdate(tx *gorm.DB, token string) (*models.Invitation, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Invitation, error)
	Save(ctx context.Context, invitation *models.Invitation) error
	SaveWithTx(tx *gorm.DB, invitation *models.Invitation) error
}

type membershipRepository interface {
	GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (*models.TenantMembership, error)
	CreateMembershipWithTx(tx *gorm.DB, dto memberships.CreateMembershipDTO) (*models.TenantMembership, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies for the invitation service.
type ServiceParams struct {
	TxRunner        txRunner
	Repo            invitationRepository
	MembershipsRepo membershipRepository
	Config          config.InvitationConfig
}

// Service issues and redeems tenant invitations.
type Service struct {
	tx              txRunner
	repo            invitationRepository
	membershipsRepo membershipRepository
	cfg             config.InvitationConfig
	now             func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.TxRunner == nil {
		return nil, errors.New("transaction runner required")
	}
	if params.Repo == nil {
		return nil, errors.New("invitation repository required")
	}
	if params.MembershipsRepo == nil {
		return nil, errors.New("membership repository required")
	}
	return &Service{
		tx:              params.TxRunner,
		repo:            params.Repo,
		membershipsRepo: params.MembershipsRepo,
		cfg:             params.Config,
		now:             time.Now,
	}, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Invite issues a pending invitation and returns it with the raw token.
func (s *Service) Invite(ctx context.Context, dto CreateInvitationDTO) (*InvitationDTO, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if !dto.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid member role")
	}
	if dto.Role == enums.MemberRoleOwner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ownership is not granted by invitation")
	}
	perms := dto.Permissions
	if perms == nil {
		perms = dbtypes.PermissionMap{}
	}
	if err := perms.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid permissions")
	}

	token, err := generateToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}

	invitation := &models.Invitation{
		ID:              uuid.New(),
		TenantID:        dto.TenantID,
		Email:           email,
		Role:            dto.Role,
		Permissions:     perms.Clone(),
		Token:           token,
		Status:          enums.InvitationStatusPending,
		ExpiresAt:       s.now().Add(s.ttl()),
		InvitedByUserID: dto.InvitedBy,
	}
	if err := s.repo.Create(ctx, invitation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create invitation")
	}
	return ToDTO(invitation, true), nil
}

// List returns the tenant's invitations. Pending rows past their expiry
// are reported as expired without waiting for a write.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]InvitationDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list invitations")
	}
	now := s.now()
	out := make([]InvitationDTO, 0, len(rows))
	for i := range rows {
		dto := ToDTO(&rows[i], false)
		if dto.Status == enums.InvitationStatusPending && rows[i].ExpiresAt.Before(now) {
			dto.Status = enums.InvitationStatusExpired
		}
		out = append(out, *dto)
	}
	return out, nil
}

// Revoke withdraws a pending invitation.
func (s *Service) Revoke(ctx context.Context, tenantID, id uuid.UUID) error {
	invitation, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invitation not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invitation")
	}
	if invitation.Status != enums.InvitationStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending invitations can be revoked")
	}
	invitation.Status = enums.InvitationStatusRevoked
	if err := s.repo.Save(ctx, invitation); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save invitation")
	}
	return nil
}

// Accept redeems a token for the calling user, creating an active
// membership with the role and permissions the invitation carries.
func (s *Service) Accept(ctx context.Context, userID uuid.UUID, token string) (*AcceptResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	var result *AcceptResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		invitation, err := s.repo.FindByTokenForUpdate(tx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invitation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invitation")
		}
		if invitation.Status != enums.InvitationStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "invitation is no longer open")
		}
		if invitation.ExpiresAt.Before(s.now()) {
			invitation.Status = enums.InvitationStatusExpired
			if err := s.repo.SaveWithTx(tx, invitation); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save invitation")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "invitation has expired")
		}

		existing, err := s.membershipsRepo.GetMembership(ctx, userID, invitation.TenantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check membership")
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "user already belongs to this company")
		}

		invitedBy := invitation.InvitedByUserID
		membership, err := s.membershipsRepo.CreateMembershipWithTx(tx, memberships.CreateMembershipDTO{
			TenantID:    invitation.TenantID,
			UserID:      userID,
			Role:        invitation.Role,
			Status:      enums.MembershipStatusActive,
			Permissions: invitation.Permissions.Clone(),
			InvitedBy:   &invitedBy,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
		}

		invitation.Status = enums.InvitationStatusAccepted
		invitation.AcceptedByUserID = &userID
		if err := s.repo.SaveWithTx(tx, invitation); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save invitation")
		}

		result = &AcceptResult{
			TenantID:     invitation.TenantID,
			MembershipID: membership.ID,
			Role:         membership.Role,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) ttl() time.Duration {
	if s.cfg.TTL <= 0 {
		return 168 * time.Hour
	}
	return s.cfg.TTL
}
