package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/inventory"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	pkgpagination "github.com/hyunwoo-lim/cabletrack-backend/pkg/pagination"
)

const recordDateLayout = "2006-01-02"

type recordRepository interface {
	CreateIncoming(ctx context.Context, record *models.IncomingRecord) error
	FindIncomingByID(ctx context.Context, tenantID, id uuid.UUID) (*models.IncomingRecord, error)
	ListIncoming(ctx context.Context, opts listQuery) ([]models.IncomingRecord, error)
	SaveIncoming(ctx context.Context, record *models.IncomingRecord) error
	DeleteIncoming(ctx context.Context, tenantID, id uuid.UUID) error

	CreateOutgoing(ctx context.Context, record *models.OutgoingRecord) error
	FindOutgoingByID(ctx context.Context, tenantID, id uuid.UUID) (*models.OutgoingRecord, error)
	ListOutgoing(ctx context.Context, opts listQuery) ([]models.OutgoingRecord, error)
	SaveOutgoing(ctx context.Context, record *models.OutgoingRecord) error
	DeleteOutgoing(ctx context.Context, tenantID, id uuid.UUID) error

	CreateUsage(ctx context.Context, record *models.UsageRecord) error
	FindUsageByID(ctx context.Context, tenantID, id uuid.UUID) (*models.UsageRecord, error)
	ListUsage(ctx context.Context, opts listQuery) ([]models.UsageRecord, error)
	SaveUsage(ctx context.Context, record *models.UsageRecord) error
	DeleteUsage(ctx context.Context, tenantID, id uuid.UUID) error
}

type inventoryMaintainer interface {
	EnsureItem(ctx context.Context, dto inventory.CreateItemDTO) (*models.InventoryItem, error)
	LookupItem(ctx context.Context, tenantID uuid.UUID, division, productName, specification string) (*models.InventoryItem, error)
	RefreshItem(ctx context.Context, tenantID, id uuid.UUID) error
}

// Service exposes CRUD over the three record tables. Every mutation
// triggers a recomputation of the touched stock line's aggregates.
type Service struct {
	repo  recordRepository
	stock inventoryMaintainer
}

func NewService(repo recordRepository, stock inventoryMaintainer) (*Service, error) {
	if repo == nil {
		return nil, errors.New("record repository required")
	}
	if stock == nil {
		return nil, errors.New("inventory maintainer required")
	}
	return &Service{repo: repo, stock: stock}, nil
}

func (s *Service) buildListQuery(tenantID uuid.UUID, actor Actor, filter ListFilter) (listQuery, int, error) {
	opts := listQuery{
		tenantID: tenantID,
		month:    filter.Month,
		division: filter.Division,
	}
	if filter.Month != nil {
		if _, err := time.Parse("2006-01", *filter.Month); err != nil {
			return opts, 0, pkgerrors.New(pkgerrors.CodeValidation, "month must be formatted YYYY-MM")
		}
	}
	if actor.OwnOnly {
		userID := actor.UserID
		opts.createdBy = &userID
	}
	cursor, err := pkgpagination.ParseCursor(filter.Cursor)
	if err != nil {
		return opts, 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	opts.cursor = cursor
	pageSize := pkgpagination.NormalizeLimit(filter.Limit)
	opts.limit = pageSize + 1
	return opts, pageSize, nil
}

func validateRecordDate(date string) error {
	if _, err := time.Parse(recordDateLayout, date); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "record date must be formatted YYYY-MM-DD")
	}
	return nil
}

func (s *Service) checkOwnership(actor Actor, createdBy uuid.UUID) error {
	if actor.OwnOnly && createdBy != actor.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "record belongs to another user")
	}
	return nil
}

// refresh recomputes the stock line for an identity key if one exists.
func (s *Service) refresh(ctx context.Context, tenantID uuid.UUID, division, productName, specification string) error {
	item, err := s.stock.LookupItem(ctx, tenantID, division, productName, specification)
	if err != nil || item == nil {
		return err
	}
	return s.stock.RefreshItem(ctx, tenantID, item.ID)
}

// CreateIncoming records a delivery, creating the stock line on first
// sight of a new product identity.
func (s *Service) CreateIncoming(ctx context.Context, actor Actor, dto CreateIncomingDTO) (*IncomingDTO, error) {
	dto.Division = strings.TrimSpace(dto.Division)
	dto.ProductName = strings.TrimSpace(dto.ProductName)
	dto.Specification = strings.TrimSpace(dto.Specification)
	if dto.Division == "" || dto.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "division and product name are required")
	}
	if err := validateRecordDate(dto.RecordDate); err != nil {
		return nil, err
	}
	if !dto.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	item, err := s.stock.EnsureItem(ctx, inventory.CreateItemDTO{
		TenantID:      dto.TenantID,
		Division:      dto.Division,
		Category:      dto.Category,
		ProductName:   dto.ProductName,
		Specification: dto.Specification,
		UnitPrice:     dto.UnitPrice,
	})
	if err != nil {
		return nil, err
	}

	record := &models.IncomingRecord{
		TenantID:        dto.TenantID,
		InventoryItemID: &item.ID,
		RecordDate:      dto.RecordDate,
		Division:        dto.Division,
		Category:        dto.Category,
		ProductName:     dto.ProductName,
		Specification:   dto.Specification,
		Quantity:        dto.Quantity,
		UnitPrice:       dto.UnitPrice,
		TotalAmount:     dto.Quantity.Mul(dto.UnitPrice),
		Supplier:        dto.Supplier,
		Note:            dto.Note,
		CreatedByUserID: actor.UserID,
	}
	if err := s.repo.CreateIncoming(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create incoming record")
	}
	if err := s.stock.RefreshItem(ctx, dto.TenantID, item.ID); err != nil {
		return nil, err
	}
	return incomingToDTO(record), nil
}

// ListIncoming returns one page of incoming records in the actor's scope.
func (s *Service) ListIncoming(ctx context.Context, tenantID uuid.UUID, actor Actor, filter ListFilter) (*IncomingList, error) {
	opts, pageSize, err := s.buildListQuery(tenantID, actor, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListIncoming(ctx, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list incoming records")
	}

	result := &IncomingList{Records: make([]IncomingDTO, 0, len(rows))}
	for i := range rows {
		if i == pageSize {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Records = append(result.Records, *incomingToDTO(&rows[i]))
	}
	return result, nil
}

// UpdateIncoming patches a delivery and refreshes affected stock lines.
func (s *Service) UpdateIncoming(ctx context.Context, tenantID uuid.UUID, actor Actor, id uuid.UUID, input UpdateIncomingInput) (*IncomingDTO, error) {
	record, err := s.repo.FindIncomingByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "incoming record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load incoming record")
	}
	if err := s.checkOwnership(actor, record.CreatedByUserID); err != nil {
		return nil, err
	}

	oldDivision, oldProduct, oldSpec := record.Division, record.ProductName, record.Specification

	if input.RecordDate != nil {
		if err := validateRecordDate(*input.RecordDate); err != nil {
			return nil, err
		}
		record.RecordDate = *input.RecordDate
	}
	if input.Division != nil {
		record.Division = strings.TrimSpace(*input.Division)
	}
	if input.Category != nil {
		record.Category = *input.Category
	}
	if input.ProductName != nil {
		record.ProductName = strings.TrimSpace(*input.ProductName)
	}
	if input.Specification != nil {
		record.Specification = strings.TrimSpace(*input.Specification)
	}
	if input.Quantity != nil {
		if !input.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		record.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		record.UnitPrice = *input.UnitPrice
	}
	if input.Supplier != nil {
		record.Supplier = *input.Supplier
	}
	if input.Note != nil {
		record.Note = input.Note
	}
	record.TotalAmount = record.Quantity.Mul(record.UnitPrice)

	identityChanged := record.Division != oldDivision || record.ProductName != oldProduct || record.Specification != oldSpec
	if identityChanged {
		item, err := s.stock.EnsureItem(ctx, inventory.CreateItemDTO{
			TenantID:      tenantID,
			Division:      record.Division,
			Category:      record.Category,
			ProductName:   record.ProductName,
			Specification: record.Specification,
			UnitPrice:     record.UnitPrice,
		})
		if err != nil {
			return nil, err
		}
		record.InventoryItemID = &item.ID
	}

	if err := s.repo.SaveIncoming(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save incoming record")
	}

	if err := s.refresh(ctx, tenantID, record.Division, record.ProductName, record.Specification); err != nil {
		return nil, err
	}
	if identityChanged {
		if err := s.refresh(ctx, tenantID, oldDivision, oldProduct, oldSpec); err != nil {
			return nil, err
		}
	}
	return incomingToDTO(record), nil
}

// DeleteIncoming removes a delivery and refreshes its stock line.
func (s *Service) DeleteIncoming(ctx context.Context, tenantID uuid.UUID, actor Actor, id uuid.UUID) error {
	record, err := s.repo.FindIncomingByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "incoming record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load incoming record")
	}
	if err := s.checkOwnership(actor, record.CreatedByUserID); err != nil {
		return err
	}
	if err := s.repo.DeleteIncoming(ctx, tenantID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete incoming record")
	}
	return s.refresh(ctx, tenantID, record.Division, record.ProductName, record.Specification)
}

// BulkDeleteIncoming removes many deliveries; failures are collected so
// one bad ID does not abort the rest.
func (s *Service) BulkDeleteIncoming(ctx context.Context, tenantID uuid.UUID, actor Actor, ids []uuid.UUID) error {
	var errs []error
	for _, id := range ids {
		if err := s.DeleteIncoming(ctx, tenantID, actor, id); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

// CreateOutgoing records a release of material to a field crew.
func (s *Service) CreateOutgoing(ctx context.Context, actor Actor, dto CreateOutgoingDTO) (*OutgoingDTO, error) {
	dto.Division = strings.TrimSpace(dto.Division)
	dto.ProductName = strings.TrimSpace(dto.ProductName)
	dto.Specification = strings.TrimSpace(dto.Specification)
	dto.TeamCategory = strings.TrimSpace(dto.TeamCategory)
	if dto.Division == "" || dto.ProductName == "" || dto.TeamCategory == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "division, product name, and team are required")
	}
	if err := validateRecordDate(dto.RecordDate); err != nil {
		return nil, err
	}
	if !dto.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	record := &models.OutgoingRecord{
		TenantID:        dto.TenantID,
		RecordDate:      dto.RecordDate,
		Division:        dto.Division,
		TeamCategory:    dto.TeamCategory,
		ProjectName:     dto.ProjectName,
		ProductName:     dto.ProductName,
		Specification:   dto.Specification,
		Quantity:        dto.Quantity,
		Recipient:       dto.Recipient,
		Note:            dto.Note,
		CreatedByUserID: actor.UserID,
	}

	item, err := s.stock.LookupItem(ctx, dto.TenantID, dto.Division, dto.ProductName, dto.Specification)
	if err != nil {
		return nil, err
	}
	if item != nil {
		record.InventoryItemID = &item.ID
	}

	if err := s.repo.CreateOutgoing(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create outgoing record")
	}
	if item != nil {
		if err := s.stock.RefreshItem(ctx, dto.TenantID, item.ID); err != nil {
			return nil, err
		}
	}
	return outgoingToDTO(record), nil
}

// ListOutgoing returns one page of outgoing records in the actor's scope.
func (s *Service) ListOutgoing(ctx context.Context, tenantID uuid.UUID, actor Actor, filter ListFilter) (*OutgoingList, error) {
	opts, pageSize, err := s.buildListQuery(tenantID, actor, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListOutgoing(ctx, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list outgoing records")
	}

	result := &OutgoingList{Records: make([]OutgoingDTO, 0, len(rows))}
	for i := range rows {
		if i == pageSize {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Records = append(result.Records, *outgoingToDTO(&rows[i]))
	}
	return result, nil
}

// UpdateOutgoing patches an outgoing record and refreshes stock lines.
func (s *Service) UpdateOutgoing(ctx context.Context, tenantID uuid.UUID, actor Actor, id uuid.UUID, input UpdateOutgoingInput) (*OutgoingDTO, error) {
	record, err := s.repo.FindOutgoingByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "outgoing record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load outgoing record")
	}
	if err := s.checkOwnership(actor, record.CreatedByUserID); err != nil {
		return nil, err
	}

	oldDivision, oldProduct, oldSpec := record.Division, record.ProductName, record.Specification
	if err := applyOutgoingPatch(record, input); err != nil {
		return nil, err
	}

	identityChanged := record.Division != oldDivision || record.ProductName != oldProduct || record.Specification != oldSpec
	if identityChanged {
		item, err := s.stock.LookupItem(ctx, tenantID, record.Division, record.ProductName, record.Specification)
		if err != nil {
			return nil, err
		}
		record.InventoryItemID = nil
		if item != nil {
			record.InventoryItemID = &item.ID
		}
	}

	if err := s.repo.SaveOutgoing(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save outgoing record")
	}

	if err := s.refresh(ctx, tenantID, record.Division, record.ProductName, record.Specification); err != nil {
		return nil, err
	}
	if identityChanged {
		if err := s.refresh(ctx, tenantID, oldDivision, oldProduct, oldSpec); err != nil {
			return nil, err
		}
	}
	return outgoingToDTO(record), nil
}

// DeleteOutgoing removes an outgoing record and refreshes its stock line.
func (s *Service) DeleteOutgoing(ctx context.Context, tenantID uuid.UUID, actor Actor, id uuid.UUID) error {
	record, err := s.repo.FindOutgoingByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "outgoing record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load outgoing record")
	}
	if err := s.checkOwnership(actor, record.CreatedByUserID); err != nil {
		return err
	}
	if err := s.repo.DeleteOutgoing(ctx, tenantID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete outgoing record")
	}
	return s.refresh(ctx, tenantID, record.Division, record.ProductName, record.Specification)
}

// BulkDeleteOutgoing removes many outgoing records, collecting failures.
func (s *Service) BulkDeleteOutgoing(ctx context.Context, tenantID uuid.UUID, actor Actor, ids []uuid.UUID) error {
	var errs []error
	for _, id := range ids {
		if err := s.DeleteOutgoing(ctx, tenantID, actor, id); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

// CreateUsage records a consumption report from a field crew.
func (s *Service) CreateUsage(ctx context.Context, actor Actor, dto CreateUsageDTO) (*UsageDTO, error) {
	dto.Division = strings.TrimSpace(dto.Division)
	dto.ProductName = strings.TrimSpace(dto.ProductName)
	dto.Specification = strings.TrimSpace(dto.Specification)
	dto.TeamCategory = strings.TrimSpace(dto.TeamCategory)
	if dto.Division == "" || dto.ProductName == "" || dto.TeamCategory == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "division, product name, and team are required")
	}
	if err := validateRecordDate(dto.RecordDate); err != nil {
		return nil, err
	}
	if !dto.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	record := &models.UsageRecord{
		TenantID:        dto.TenantID,
		RecordDate:      dto.RecordDate,
		Division:        dto.Division,
		TeamCategory:    dto.TeamCategory,
		ProjectName:     dto.ProjectName,
		ProductName:     dto.ProductName,
		Specification:   dto.Specification,
		Quantity:        dto.Quantity,
		Recipient:       dto.Recipient,
		Note:            dto.Note,
		CreatedByUserID: actor.UserID,
	}

	item, err := s.stock.LookupItem(ctx, dto.TenantID, dto.Division, dto.ProductName, dto.Specification)
	if err != nil {
		return nil, err
	}
	if item != nil {
		record.InventoryItemID = &item.ID
	}

	if err := s.repo.CreateUsage(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create usage record")
	}
	if item != nil {
		if err := s.stock.RefreshItem(ctx, dto.TenantID, item.ID); err != nil {
			return nil, err
		}
	}
	return usageToDTO(record), nil
}

// ListUsage returns one page of usage records in the actor's scope.
func (s *Service) ListUsage(ctx context.Context, tenantID uuid.UUID, actor Actor, filter ListFilter) (*UsageList, error) {
	opts, pageSize, err := s.buildListQuery(tenantID, actor, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListUsage(ctx, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list usage records")
	}

	result := &UsageList{Records: make([]UsageDTO, 0, len(rows))}
	for i := range rows {
		if i == pageSize {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Records = append(result.Records, *usageToDTO(&rows[i]))
	}
	return result, nil
}

// UpdateUsage patches a usage record and refreshes stock lines.
func (s *Service) UpdateUsage(ctx context.Context, tenantID uuid.UUID, actor Actor, id uuid.UUID, input UpdateUsageInput) (*UsageDTO, error) {
	record, err := s.repo.FindUsageByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "usage record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load usage record")
	}
	if err := s.checkOwnership(actor, record.CreatedByUserID); err != nil {
		return nil, err
	}

	oldDivision, oldProduct, oldSpec := record.Division, record.ProductName, record.Specification
	if err := applyUsagePatch(record, input); err != nil {
		return nil, err
	}

	identityChanged := record.Division != oldDivision || record.ProductName != oldProduct || record.Specification != oldSpec
	if identityChanged {
		item, err := s.stock.LookupItem(ctx, tenantID, record.Division, record.ProductName, record.Specification)
		if err != nil {
			return nil, err
		}
		record.InventoryItemID = nil
		if item != nil {
			record.InventoryItemID = &item.ID
		}
	}

	if err := s.repo.SaveUsage(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save usage record")
	}

	if err := s.refresh(ctx, tenantID, record.Division, record.ProductName, record.Specification); err != nil {
		return nil, err
	}
	if identityChanged {
		if err := s.refresh(ctx, tenantID, oldDivision, oldProduct, oldSpec); err != nil {
			return nil, err
		}
	}
	return usageToDTO(record), nil
}

// DeleteUsage removes a usage record and refreshes its stock line.
func (s *Service) DeleteUsage(ctx context.Context, tenantID uuid.UUID, actor Actor, id uuid.UUID) error {
	record, err := s.repo.FindUsageByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "usage record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load usage record")
	}
	if err := s.checkOwnership(actor, record.CreatedByUserID); err != nil {
		return err
	}
	if err := s.repo.DeleteUsage(ctx, tenantID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete usage record")
	}
	return s.refresh(ctx, tenantID, record.Division, record.ProductName, record.Specification)
}

// BulkDeleteUsage removes many usage records, collecting failures.
func (s *Service) BulkDeleteUsage(ctx context.Context, tenantID uuid.UUID, actor Actor, ids []uuid.UUID) error {
	var errs []error
	for _, id := range ids {
		if err := s.DeleteUsage(ctx, tenantID, actor, id); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

func applyOutgoingPatch(record *models.OutgoingRecord, input UpdateOutgoingInput) error {
	if input.RecordDate != nil {
		if err := validateRecordDate(*input.RecordDate); err != nil {
			return err
		}
		record.RecordDate = *input.RecordDate
	}
	if input.Division != nil {
		record.Division = strings.TrimSpace(*input.Division)
	}
	if input.TeamCategory != nil {
		record.TeamCategory = strings.TrimSpace(*input.TeamCategory)
	}
	if input.ProjectName != nil {
		record.ProjectName = *input.ProjectName
	}
	if input.ProductName != nil {
		record.ProductName = strings.TrimSpace(*input.ProductName)
	}
	if input.Specification != nil {
		record.Specification = strings.TrimSpace(*input.Specification)
	}
	if input.Quantity != nil {
		if !input.Quantity.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		record.Quantity = *input.Quantity
	}
	if input.Recipient != nil {
		record.Recipient = *input.Recipient
	}
	if input.Note != nil {
		record.Note = input.Note
	}
	return nil
}

func applyUsagePatch(record *models.UsageRecord, input UpdateUsageInput) error {
	if input.RecordDate != nil {
		if err := validateRecordDate(*input.RecordDate); err != nil {
			return err
		}
		record.RecordDate = *input.RecordDate
	}
	if input.Division != nil {
		record.Division = strings.TrimSpace(*input.Division)
	}
	if input.TeamCategory != nil {
		record.TeamCategory = strings.TrimSpace(*input.TeamCategory)
	}
	if input.ProjectName != nil {
		record.ProjectName = *input.ProjectName
	}
	if input.ProductName != nil {
		record.ProductName = strings.TrimSpace(*input.ProductName)
	}
	if input.Specification != nil {
		record.Specification = strings.TrimSpace(*input.Specification)
	}
	if input.Quantity != nil {
		if !input.Quantity.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		record.Quantity = *input.Quantity
	}
	if input.Recipient != nil {
		record.Recipient = *input.Recipient
	}
	if input.Note != nil {
		record.Note = input.Note
	}
	return nil
}
