package tenants

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
)

// Repository handles tenant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to tenant operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new tenant row.
func (r *Repository) Create(ctx context.Context, dto CreateTenantDTO) (*models.Tenant, error) {
	tenant := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// CreateWithTx persists a new tenant inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, dto CreateTenantDTO) (*models.Tenant, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	tenant := dto.ToModel()
	if err := tx.Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// FindByID loads a tenant by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindBySlug loads a tenant by its unique slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update saves the provided tenant.
func (r *Repository) Update(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	return r.db.WithContext(ctx).Save(tenant).Error
}
