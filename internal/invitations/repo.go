package invitations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

func lockingClause() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// Repository provides persistence helpers for invitations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new invitation row.
func (r *Repository) Create(ctx context.Context, invitation *models.Invitation) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(invitation).Error
}

// FindByID loads an invitation scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByToken loads an invitation by its redemption token.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByTokenForUpdate loads an invitation by token inside the provided
// transaction, locking the row so a token cannot be redeemed twice.
func (r *Repository) FindByTokenForUpdate(tx *gorm.DB, token string) (*models.Invitation, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var invitation models.Invitation
	err := tx.
		Clauses(lockingClause()).
		Where("token = ?", token).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByTenant returns the tenant's invitations, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Invitation, error) {
	var rows []models.Invitation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save persists all fields of an existing invitation.
func (r *Repository) Save(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

// SaveWithTx persists an invitation inside the provided transaction.
func (r *Repository) SaveWithTx(tx *gorm.DB, invitation *models.Invitation) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Save(invitation).Error
}
