package records

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgpagination "github.com/hyunwoo-lim/cabletrack-backend/pkg/pagination"
)

// Repository provides persistence helpers for the three record tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	tenantID  uuid.UUID
	month     *string
	division  *string
	createdBy *uuid.UUID
	limit     int
	cursor    *pkgpagination.Cursor
}

func (r *Repository) applyListQuery(query *gorm.DB, opts listQuery) *gorm.DB {
	query = query.Where("tenant_id = ?", opts.tenantID)
	if opts.month != nil {
		query = query.Where("record_date LIKE ?", *opts.month+"%")
	}
	if opts.division != nil {
		query = query.Where("division = ?", *opts.division)
	}
	if opts.createdBy != nil {
		query = query.Where("created_by_user_id = ?", *opts.createdBy)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}
	return query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)
}

// CreateIncoming inserts a new incoming record.
func (r *Repository) CreateIncoming(ctx context.Context, record *models.IncomingRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindIncomingByID loads an incoming record scoped to the tenant.
func (r *Repository) FindIncomingByID(ctx context.Context, tenantID, id uuid.UUID) (*models.IncomingRecord, error) {
	var record models.IncomingRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListIncoming returns one page of incoming records.
func (r *Repository) ListIncoming(ctx context.Context, opts listQuery) ([]models.IncomingRecord, error) {
	var rows []models.IncomingRecord
	query := r.applyListQuery(r.db.WithContext(ctx).Model(&models.IncomingRecord{}), opts)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveIncoming writes back the full record row.
func (r *Repository) SaveIncoming(ctx context.Context, record *models.IncomingRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeleteIncoming removes one incoming record.
func (r *Repository) DeleteIncoming(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(r.db.WithContext(ctx), &models.IncomingRecord{}, tenantID, id)
}

// CreateOutgoing inserts a new outgoing record.
func (r *Repository) CreateOutgoing(ctx context.Context, record *models.OutgoingRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindOutgoingByID loads an outgoing record scoped to the tenant.
func (r *Repository) FindOutgoingByID(ctx context.Context, tenantID, id uuid.UUID) (*models.OutgoingRecord, error) {
	var record models.OutgoingRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListOutgoing returns one page of outgoing records.
func (r *Repository) ListOutgoing(ctx context.Context, opts listQuery) ([]models.OutgoingRecord, error) {
	var rows []models.OutgoingRecord
	query := r.applyListQuery(r.db.WithContext(ctx).Model(&models.OutgoingRecord{}), opts)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveOutgoing writes back the full record row.
func (r *Repository) SaveOutgoing(ctx context.Context, record *models.OutgoingRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeleteOutgoing removes one outgoing record.
func (r *Repository) DeleteOutgoing(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(r.db.WithContext(ctx), &models.OutgoingRecord{}, tenantID, id)
}

// CreateUsage inserts a new usage record.
func (r *Repository) CreateUsage(ctx context.Context, record *models.UsageRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindUsageByID loads a usage record scoped to the tenant.
func (r *Repository) FindUsageByID(ctx context.Context, tenantID, id uuid.UUID) (*models.UsageRecord, error) {
	var record models.UsageRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListUsage returns one page of usage records.
func (r *Repository) ListUsage(ctx context.Context, opts listQuery) ([]models.UsageRecord, error) {
	var rows []models.UsageRecord
	query := r.applyListQuery(r.db.WithContext(ctx).Model(&models.UsageRecord{}), opts)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveUsage writes back the full record row.
func (r *Repository) SaveUsage(ctx context.Context, record *models.UsageRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeleteUsage removes one usage record.
func (r *Repository) DeleteUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(r.db.WithContext(ctx), &models.UsageRecord{}, tenantID, id)
}

func deleteScoped(db *gorm.DB, model any, tenantID, id uuid.UUID) error {
	result := db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
