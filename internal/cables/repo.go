package cables

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgpagination "github.com/hyunwoo-lim/cabletrack-backend/pkg/pagination"
)

// Repository provides persistence helpers for drums and their history.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDrum inserts a drum row.
func (r *Repository) CreateDrum(ctx context.Context, drum *models.CableDrum) error {
	if drum.ID == uuid.Nil {
		drum.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(drum).Error
}

// FindDrumByID loads a drum scoped to the tenant.
func (r *Repository) FindDrumByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CableDrum, error) {
	var drum models.CableDrum
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&drum).Error
	if err != nil {
		return nil, err
	}
	return &drum, nil
}

// FindDrumForUpdate loads a drum under a row lock. Lifecycle operations
// read and write inside one transaction so two concurrent usage reports
// cannot both validate against the same remaining length.
func (r *Repository) FindDrumForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*models.CableDrum, error) {
	var drum models.CableDrum
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&drum).Error
	if err != nil {
		return nil, err
	}
	return &drum, nil
}

// SaveDrum writes back the full drum row.
func (r *Repository) SaveDrum(ctx context.Context, drum *models.CableDrum) error {
	return r.db.WithContext(ctx).Save(drum).Error
}

// DeleteDrum removes a drum and its history.
func (r *Repository) DeleteDrum(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("cable_id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.CableLog{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.CableDrum{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListDrums returns one page of drums for the tenant.
func (r *Repository) ListDrums(ctx context.Context, tenantID uuid.UUID, filter DrumListFilter, cursor *pkgpagination.Cursor, limit int) ([]models.CableDrum, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CableDrum{}).
		Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Division != nil {
		query = query.Where("division = ?", *filter.Division)
	}
	if filter.TeamID != nil {
		query = query.Where("current_team_id = ?", *filter.TeamID)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.CableDrum
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateLog appends one history row.
func (r *Repository) CreateLog(ctx context.Context, log *models.CableLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListLogsByCable returns a drum's full history, newest first.
func (r *Repository) ListLogsByCable(ctx context.Context, tenantID, cableID uuid.UUID) ([]models.CableLog, error) {
	var rows []models.CableLog
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND cable_id = ?", tenantID, cableID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListLogs returns one page of tenant-wide history joined with drum fields.
func (r *Repository) ListLogs(ctx context.Context, tenantID uuid.UUID, filter LogListFilter, cursor *pkgpagination.Cursor, limit int) ([]logWithDrumRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CableLog{}).
		Select("cable_logs.*, cable_drums.management_no, cable_drums.drum_no, cable_drums.spec").
		Joins("JOIN cable_drums ON cable_drums.id = cable_logs.cable_id").
		Where("cable_logs.tenant_id = ?", tenantID)
	if filter.LogType != nil {
		query = query.Where("cable_logs.log_type = ?", *filter.LogType)
	}
	if cursor != nil {
		query = query.Where("(cable_logs.created_at < ?) OR (cable_logs.created_at = ? AND cable_logs.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []logWithDrumRow
	err := query.Order("cable_logs.created_at DESC").Order("cable_logs.id DESC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteLogsByIDs removes history rows by ID and reports how many matched.
func (r *Repository) DeleteLogsByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Delete(&models.CableLog{})
	return result.RowsAffected, result.Error
}
