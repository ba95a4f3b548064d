package cables

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	pkgpagination "github.com/hyunwoo-lim/cabletrack-backend/pkg/pagination"
)

const (
	usageDateLayout = "2006-01-02"

	// Receive logs are written by the system, not a field worker.
	receiveWorkerName     = "System"
	bulkReceiveWorkerName = "System (Bulk)"
)

type cableRepository interface {
	CreateDrum(ctx context.Context, drum *models.CableDrum) error
	FindDrumByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CableDrum, error)
	FindDrumForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*models.CableDrum, error)
	SaveDrum(ctx context.Context, drum *models.CableDrum) error
	DeleteDrum(ctx context.Context, tenantID, id uuid.UUID) error
	ListDrums(ctx context.Context, tenantID uuid.UUID, filter DrumListFilter, cursor *pkgpagination.Cursor, limit int) ([]models.CableDrum, error)
	CreateLog(ctx context.Context, log *models.CableLog) error
	ListLogsByCable(ctx context.Context, tenantID, cableID uuid.UUID) ([]models.CableLog, error)
	ListLogs(ctx context.Context, tenantID uuid.UUID, filter LogListFilter, cursor *pkgpagination.Cursor, limit int) ([]logWithDrumRow, error)
	DeleteLogsByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies for the drum lifecycle service.
type ServiceParams struct {
	TxRunner    txRunner
	Repo        cableRepository
	RepoFactory func(tx *gorm.DB) cableRepository
	Config      config.CableConfig
}

// Service owns the drum lifecycle. Every state transition runs inside a
// transaction holding a row lock on the drum, so concurrent reports
// cannot overdraw it.
type Service struct {
	tx    txRunner
	repo  cableRepository
	repos func(tx *gorm.DB) cableRepository
	cfg   config.CableConfig
}

func NewService(params ServiceParams) (*Service, error) {
	if params.TxRunner == nil {
		return nil, errors.New("transaction runner required")
	}
	if params.Repo == nil {
		return nil, errors.New("cable repository required")
	}
	if params.RepoFactory == nil {
		params.RepoFactory = func(tx *gorm.DB) cableRepository {
			return NewRepository(tx)
		}
	}
	return &Service{
		tx:    params.TxRunner,
		repo:  params.Repo,
		repos: params.RepoFactory,
		cfg:   params.Config,
	}, nil
}

func validateUsageDate(date string) error {
	if _, err := time.Parse(usageDateLayout, date); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "date must be formatted YYYY-MM-DD")
	}
	return nil
}

func (s *Service) validateReceive(dto *ReceiveDrumDTO) error {
	dto.ManagementNo = strings.TrimSpace(dto.ManagementNo)
	dto.Spec = strings.TrimSpace(dto.Spec)
	if dto.ManagementNo == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "management number is required")
	}
	if dto.Spec == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cable spec is required")
	}
	if !dto.TotalLength.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "total length must be positive")
	}
	return validateUsageDate(dto.ReceivedDate)
}

func (s *Service) buildDrum(dto ReceiveDrumDTO, createdBy uuid.UUID) *models.CableDrum {
	return &models.CableDrum{
		ID:              uuid.New(),
		TenantID:        dto.TenantID,
		ManagementNo:    dto.ManagementNo,
		DrumNo:          dto.DrumNo,
		Division:        dto.Division,
		Category:        dto.Category,
		Spec:            dto.Spec,
		CoreCount:       dto.CoreCount,
		Manufacturer:    dto.Manufacturer,
		ManufactureYear: dto.ManufactureYear,
		ReceivedDate:    dto.ReceivedDate,
		Location:        dto.Location,
		ProjectCode:     dto.ProjectCode,
		ProjectName:     dto.ProjectName,
		TotalLength:     dto.TotalLength,
		RemainingLength: dto.TotalLength,
		UnitPrice:       dto.UnitPrice,
		TotalAmount:     dto.TotalLength.Mul(dto.UnitPrice),
		Status:          enums.CableStatusInStock,
		Remark:          dto.Remark,
		CreatedByUserID: createdBy,
	}
}

func receiveLog(drum *models.CableDrum, workerName string, createdBy uuid.UUID) *models.CableLog {
	userID := createdBy
	return &models.CableLog{
		TenantID:        drum.TenantID,
		CableID:         drum.ID,
		LogType:         enums.CableLogTypeReceive,
		UsageDate:       drum.ReceivedDate,
		WorkerName:      workerName,
		AfterRemaining:  drum.TotalLength,
		CreatedByUserID: &userID,
	}
}

// Receive registers a new drum and writes its opening history row.
func (s *Service) Receive(ctx context.Context, createdBy uuid.UUID, dto ReceiveDrumDTO) (*DrumDTO, error) {
	if err := s.validateReceive(&dto); err != nil {
		return nil, err
	}

	drum := s.buildDrum(dto, createdBy)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		if err := repo.CreateDrum(ctx, drum); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create drum")
		}
		if err := repo.CreateLog(ctx, receiveLog(drum, receiveWorkerName, createdBy)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create receive log")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drumToDTO(drum), nil
}

// ReceiveBulk registers a batch of drums atomically. Validation runs up
// front so a bad row fails the call before anything is written.
func (s *Service) ReceiveBulk(ctx context.Context, createdBy uuid.UUID, dtos []ReceiveDrumDTO) ([]DrumDTO, error) {
	if len(dtos) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one drum is required")
	}

	var validationErrs []error
	for i := range dtos {
		if err := s.validateReceive(&dtos[i]); err != nil {
			validationErrs = append(validationErrs, fmt.Errorf("drum %d: %w", i+1, err))
		}
	}
	if combined := multierr.Combine(validationErrs...); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "invalid bulk receive payload")
	}

	drums := make([]*models.CableDrum, 0, len(dtos))
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		for i := range dtos {
			drum := s.buildDrum(dtos[i], createdBy)
			if err := repo.CreateDrum(ctx, drum); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create drum")
			}
			if err := repo.CreateLog(ctx, receiveLog(drum, bulkReceiveWorkerName, createdBy)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create receive log")
			}
			drums = append(drums, drum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]DrumDTO, 0, len(drums))
	for _, drum := range drums {
		out = append(out, *drumToDTO(drum))
	}
	return out, nil
}

// Assign checks a drum out to a field crew. Custody changes; length does not.
func (s *Service) Assign(ctx context.Context, tenantID, actorID, drumID uuid.UUID, input AssignInput) (*DrumDTO, error) {
	if input.TeamID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team is required")
	}
	if err := validateUsageDate(input.UsageDate); err != nil {
		return nil, err
	}

	var result *models.CableDrum
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		drum, err := s.lockDrum(ctx, repo, tenantID, drumID)
		if err != nil {
			return err
		}
		if drum.Status != enums.CableStatusInStock {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "drum is not in stock")
		}
		if !drum.RemainingLength.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "drum has no remaining length")
		}

		drum.Status = enums.CableStatusAssigned
		teamID := input.TeamID
		drum.CurrentTeamID = &teamID
		if err := repo.SaveDrum(ctx, drum); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save drum")
		}

		log := &models.CableLog{
			TenantID:        tenantID,
			CableID:         drum.ID,
			LogType:         enums.CableLogTypeAssign,
			UsageDate:       input.UsageDate,
			WorkerName:      input.WorkerName,
			TeamID:          &teamID,
			BeforeRemaining: drum.RemainingLength,
			AfterRemaining:  drum.RemainingLength,
			Note:            input.Note,
			CreatedByUserID: &actorID,
		}
		if err := repo.CreateLog(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create assign log")
		}
		result = drum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drumToDTO(result), nil
}

// Usage consumes length from a drum. Install and waste both count
// against the remaining length; hitting exactly zero retires the drum.
func (s *Service) Usage(ctx context.Context, tenantID, actorID, drumID uuid.UUID, input UsageInput) (*DrumDTO, error) {
	if input.InstallLength.IsNegative() || input.WasteLength.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lengths cannot be negative")
	}
	consumed := input.InstallLength.Add(input.WasteLength)
	if !consumed.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "install or waste length is required")
	}
	if err := validateUsageDate(input.UsageDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.WorkerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker name is required")
	}

	var result *models.CableDrum
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		drum, err := s.lockDrum(ctx, repo, tenantID, drumID)
		if err != nil {
			return err
		}
		if drum.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "drum is retired")
		}
		if consumed.GreaterThan(drum.RemainingLength) {
			return pkgerrors.New(pkgerrors.CodeValidation, "usage exceeds remaining length")
		}

		before := drum.RemainingLength
		drum.UsedLength = drum.UsedLength.Add(consumed)
		drum.RemainingLength = drum.TotalLength.Sub(drum.UsedLength)
		if drum.RemainingLength.IsZero() {
			drum.Status = enums.CableStatusUsedUp
		}
		if err := repo.SaveDrum(ctx, drum); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save drum")
		}

		var location *string
		if section := strings.TrimSpace(input.SectionName); section != "" {
			location = &section
		}
		log := &models.CableLog{
			TenantID:        tenantID,
			CableID:         drum.ID,
			LogType:         enums.CableLogTypeUsage,
			UsageDate:       input.UsageDate,
			WorkerName:      input.WorkerName,
			TeamID:          drum.CurrentTeamID,
			Location:        location,
			InstallLength:   input.InstallLength,
			WasteLength:     input.WasteLength,
			UsedLength:      consumed,
			BeforeRemaining: before,
			AfterRemaining:  drum.RemainingLength,
			Note:            input.Note,
			CreatedByUserID: &actorID,
		}
		if err := repo.CreateLog(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create usage log")
		}
		result = drum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drumToDTO(result), nil
}

// Return brings an assigned drum back into warehouse stock.
func (s *Service) Return(ctx context.Context, tenantID, actorID, drumID uuid.UUID, input ReturnInput) (*DrumDTO, error) {
	if input.TeamID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team is required")
	}
	if err := validateUsageDate(input.UsageDate); err != nil {
		return nil, err
	}

	var result *models.CableDrum
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		drum, err := s.lockDrum(ctx, repo, tenantID, drumID)
		if err != nil {
			return err
		}
		if drum.Status != enums.CableStatusAssigned || drum.CurrentTeamID == nil || *drum.CurrentTeamID != input.TeamID {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "drum is not assigned to that team")
		}

		teamID := input.TeamID
		drum.Status = enums.CableStatusInStock
		drum.CurrentTeamID = nil
		if err := repo.SaveDrum(ctx, drum); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save drum")
		}

		log := &models.CableLog{
			TenantID:        tenantID,
			CableID:         drum.ID,
			LogType:         enums.CableLogTypeReturn,
			UsageDate:       input.UsageDate,
			WorkerName:      input.WorkerName,
			TeamID:          &teamID,
			BeforeRemaining: drum.RemainingLength,
			AfterRemaining:  drum.RemainingLength,
			Note:            input.Note,
			CreatedByUserID: &actorID,
		}
		if err := repo.CreateLog(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create return log")
		}
		result = drum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drumToDTO(result), nil
}

// Waste retires a drum as scrap. Whether the remaining length is zeroed
// is configurable; the ledger keeps the before/after values either way.
func (s *Service) Waste(ctx context.Context, tenantID, actorID, drumID uuid.UUID, input WasteInput) (*DrumDTO, error) {
	if err := validateUsageDate(input.UsageDate); err != nil {
		return nil, err
	}

	var result *models.CableDrum
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		drum, err := s.lockDrum(ctx, repo, tenantID, drumID)
		if err != nil {
			return err
		}
		if drum.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "drum is already retired")
		}

		before := drum.RemainingLength
		drum.Status = enums.CableStatusWaste
		if s.cfg.WasteZeroesRemaining {
			drum.UsedLength = drum.TotalLength
			drum.RemainingLength = decimal.Zero
		}
		if err := repo.SaveDrum(ctx, drum); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save drum")
		}

		log := &models.CableLog{
			TenantID:        tenantID,
			CableID:         drum.ID,
			LogType:         enums.CableLogTypeWaste,
			UsageDate:       input.UsageDate,
			WorkerName:      input.WorkerName,
			TeamID:          drum.CurrentTeamID,
			BeforeRemaining: before,
			AfterRemaining:  drum.RemainingLength,
			Note:            input.Note,
			CreatedByUserID: &actorID,
		}
		if err := repo.CreateLog(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create waste log")
		}
		result = drum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drumToDTO(result), nil
}

// Get loads a single drum.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*DrumDTO, error) {
	drum, err := s.repo.FindDrumByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drum not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load drum")
	}
	return drumToDTO(drum), nil
}

// List returns one page of drums.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter DrumListFilter) (*DrumList, error) {
	cursor, err := pkgpagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	pageSize := pkgpagination.NormalizeLimit(filter.Limit)

	rows, err := s.repo.ListDrums(ctx, tenantID, filter, cursor, pageSize+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list drums")
	}

	result := &DrumList{Drums: make([]DrumDTO, 0, len(rows))}
	for i := range rows {
		if i == pageSize {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Drums = append(result.Drums, *drumToDTO(&rows[i]))
	}
	return result, nil
}

// Update patches a drum's descriptive fields. Lifecycle fields only move
// through the lifecycle operations.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateDrumInput) (*DrumDTO, error) {
	drum, err := s.repo.FindDrumByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drum not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load drum")
	}

	if input.ManagementNo != nil {
		trimmed := strings.TrimSpace(*input.ManagementNo)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "management number cannot be empty")
		}
		drum.ManagementNo = trimmed
	}
	if input.DrumNo != nil {
		drum.DrumNo = *input.DrumNo
	}
	if input.Division != nil {
		drum.Division = *input.Division
	}
	if input.Category != nil {
		drum.Category = *input.Category
	}
	if input.Spec != nil {
		trimmed := strings.TrimSpace(*input.Spec)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cable spec cannot be empty")
		}
		drum.Spec = trimmed
	}
	if input.CoreCount != nil {
		drum.CoreCount = *input.CoreCount
	}
	if input.Manufacturer != nil {
		drum.Manufacturer = *input.Manufacturer
	}
	if input.ManufactureYear != nil {
		drum.ManufactureYear = *input.ManufactureYear
	}
	if input.ReceivedDate != nil {
		if err := validateUsageDate(*input.ReceivedDate); err != nil {
			return nil, err
		}
		drum.ReceivedDate = *input.ReceivedDate
	}
	if input.Location != nil {
		drum.Location = *input.Location
	}
	if input.ProjectCode != nil {
		drum.ProjectCode = *input.ProjectCode
	}
	if input.ProjectName != nil {
		drum.ProjectName = *input.ProjectName
	}
	if input.UnitPrice != nil {
		drum.UnitPrice = *input.UnitPrice
		drum.TotalAmount = drum.TotalLength.Mul(drum.UnitPrice)
	}
	if input.Remark != nil {
		drum.Remark = input.Remark
	}

	if err := s.repo.SaveDrum(ctx, drum); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save drum")
	}
	return drumToDTO(drum), nil
}

// Delete removes a drum and its history. Both deletes run in one
// transaction so a failure cannot leave the drum without its audit
// trail.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repos(tx).DeleteDrum(ctx, tenantID, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "drum not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete drum")
	}
	return nil
}

// BulkDeleteDrums removes many drums, collecting failures.
func (s *Service) BulkDeleteDrums(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	var errs []error
	for _, id := range ids {
		if err := s.Delete(ctx, tenantID, id); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

// Logs returns a drum's full history.
func (s *Service) Logs(ctx context.Context, tenantID, drumID uuid.UUID) ([]LogDTO, error) {
	if _, err := s.repo.FindDrumByID(ctx, tenantID, drumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drum not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load drum")
	}
	rows, err := s.repo.ListLogsByCable(ctx, tenantID, drumID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list drum logs")
	}
	out := make([]LogDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *logToDTO(&rows[i]))
	}
	return out, nil
}

// AllLogs returns one page of tenant-wide history joined with drum fields.
func (s *Service) AllLogs(ctx context.Context, tenantID uuid.UUID, filter LogListFilter) (*LogList, error) {
	cursor, err := pkgpagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	pageSize := pkgpagination.NormalizeLimit(filter.Limit)

	rows, err := s.repo.ListLogs(ctx, tenantID, filter, cursor, pageSize+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list logs")
	}

	result := &LogList{Logs: make([]LogWithDrumDTO, 0, len(rows))}
	for i := range rows {
		if i == pageSize {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Logs = append(result.Logs, rows[i].toDTO())
	}
	return result, nil
}

// BulkDeleteLogs removes history rows. Owners only: the history is the
// audit trail, so pruning it is an administrative action.
func (s *Service) BulkDeleteLogs(ctx context.Context, tenantID uuid.UUID, actorRole enums.MemberRole, ids []uuid.UUID) (int64, error) {
	if actorRole != enums.MemberRoleOwner {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "only owners can delete history")
	}
	if len(ids) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one log id is required")
	}
	deleted, err := s.repo.DeleteLogsByIDs(ctx, tenantID, ids)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete logs")
	}
	return deleted, nil
}

func (s *Service) lockDrum(ctx context.Context, repo cableRepository, tenantID, drumID uuid.UUID) (*models.CableDrum, error) {
	drum, err := repo.FindDrumForUpdate(ctx, tenantID, drumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drum not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lock drum")
	}
	return drum, nil
}
