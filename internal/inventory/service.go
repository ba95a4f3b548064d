package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
)

type itemRepository interface {
	Create(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error)
	FindByIdentity(ctx context.Context, tenantID uuid.UUID, division, productName, specification string) (*models.InventoryItem, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, division *string) ([]models.InventoryItem, error)
	Save(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
	SumTotals(ctx context.Context, item *models.InventoryItem) (ItemTotals, error)
	ListOutgoing(ctx context.Context, tenantID uuid.UUID) ([]models.OutgoingRecord, error)
	ListUsage(ctx context.Context, tenantID uuid.UUID) ([]models.UsageRecord, error)
}

// Service exposes stock-line management and the reporting views.
type Service struct {
	repo itemRepository
}

func NewService(repo itemRepository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("inventory repository required")
	}
	return &Service{repo: repo}, nil
}

// List returns the tenant's stock lines.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, division *string) ([]ItemDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID, division)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDTO(&rows[i]))
	}
	return out, nil
}

// Get loads a single stock line.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	return ToDTO(item), nil
}

// Create registers a stock line after checking the identity key is free.
func (s *Service) Create(ctx context.Context, dto CreateItemDTO) (*ItemDTO, error) {
	dto.Division = strings.TrimSpace(dto.Division)
	dto.ProductName = strings.TrimSpace(dto.ProductName)
	dto.Specification = strings.TrimSpace(dto.Specification)
	if dto.Division == "" || dto.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "division and product name are required")
	}
	if dto.CarriedOver.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carried-over quantity cannot be negative")
	}

	if _, err := s.repo.FindByIdentity(ctx, dto.TenantID, dto.Division, dto.ProductName, dto.Specification); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "inventory item already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check inventory identity")
	}

	item, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory item")
	}
	return ToDTO(item), nil
}

// Update patches the descriptive fields and recomputes the aggregates.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}

	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.CarriedOver != nil {
		if input.CarriedOver.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "carried-over quantity cannot be negative")
		}
		item.CarriedOver = *input.CarriedOver
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}

	if err := s.recalculate(ctx, item); err != nil {
		return nil, err
	}
	return ToDTO(item), nil
}

// Delete removes a stock line.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory item")
	}
	return nil
}

// BulkReplace swaps the tenant's whole stock list for the uploaded
// one. The sheet import treats the payload as the source of truth, so
// existing lines are cleared first. Validation runs up front; a bad row
// fails the call before anything is written.
func (s *Service) BulkReplace(ctx context.Context, tenantID uuid.UUID, dtos []CreateItemDTO) ([]ItemDTO, error) {
	if len(dtos) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	var validationErrs []error
	seen := make(map[string]bool, len(dtos))
	for i := range dtos {
		dtos[i].TenantID = tenantID
		dtos[i].Division = strings.TrimSpace(dtos[i].Division)
		dtos[i].ProductName = strings.TrimSpace(dtos[i].ProductName)
		dtos[i].Specification = strings.TrimSpace(dtos[i].Specification)
		if dtos[i].Division == "" || dtos[i].ProductName == "" {
			validationErrs = append(validationErrs, fmt.Errorf("item %d: division and product name are required", i+1))
			continue
		}
		if dtos[i].CarriedOver.IsNegative() {
			validationErrs = append(validationErrs, fmt.Errorf("item %d: carried-over quantity cannot be negative", i+1))
			continue
		}
		key := dtos[i].Division + "\x00" + dtos[i].ProductName + "\x00" + dtos[i].Specification
		if seen[key] {
			validationErrs = append(validationErrs, fmt.Errorf("item %d: duplicate identity in payload", i+1))
			continue
		}
		seen[key] = true
	}
	if combined := multierr.Combine(validationErrs...); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "invalid bulk inventory payload")
	}

	if err := s.repo.DeleteByTenant(ctx, tenantID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear inventory")
	}
	out := make([]ItemDTO, 0, len(dtos))
	for i := range dtos {
		item, err := s.repo.Create(ctx, dtos[i])
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory item")
		}
		out = append(out, *ToDTO(item))
	}
	return out, nil
}

// BulkDelete removes the listed stock lines and reports how many went.
// Ids that no longer exist are skipped, not errors; bulk deletes race
// with other sessions routinely.
func (s *Service) BulkDelete(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64
	var errs []error
	for _, id := range ids {
		if err := s.repo.Delete(ctx, tenantID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	if combined := multierr.Combine(errs...); combined != nil {
		return deleted, pkgerrors.Wrap(pkgerrors.CodeInternal, combined, "bulk delete inventory")
	}
	return deleted, nil
}

// Stats sums the record tables for one stock line on demand, without
// touching the stored aggregates.
func (s *Service) Stats(ctx context.Context, tenantID, id uuid.UUID) (*ItemStatsDTO, error) {
	item, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	totals, err := s.repo.SumTotals(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum record totals")
	}
	return &ItemStatsDTO{
		TotalIncoming:   totals.TotalIncoming,
		TotalSentToTeam: totals.TotalOutgoing,
		TotalUsage:      totals.TotalUsage,
	}, nil
}

// RefreshItem recomputes one item's aggregates from its record tables.
// Record mutations call this instead of patching totals incrementally.
func (s *Service) RefreshItem(ctx context.Context, tenantID, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	return s.recalculate(ctx, item)
}

// EnsureItem returns the stock line for the identity key, creating a
// bare one when an incoming delivery names a product the tenant has
// never stocked.
func (s *Service) EnsureItem(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error) {
	item, err := s.repo.FindByIdentity(ctx, dto.TenantID, dto.Division, dto.ProductName, dto.Specification)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check inventory identity")
	}
	item, err = s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory item")
	}
	return item, nil
}

// LookupItem returns the stock line for the identity key, or nil when
// the tenant has never stocked that product.
func (s *Service) LookupItem(ctx context.Context, tenantID uuid.UUID, division, productName, specification string) (*models.InventoryItem, error) {
	item, err := s.repo.FindByIdentity(ctx, tenantID, division, productName, specification)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check inventory identity")
	}
	return item, nil
}

// TeamStock folds all outgoing and usage rows into the held-stock view.
func (s *Service) TeamStock(ctx context.Context, tenantID uuid.UUID) ([]TeamStockDTO, error) {
	outgoing, err := s.repo.ListOutgoing(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load outgoing records")
	}
	usage, err := s.repo.ListUsage(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load usage records")
	}

	entries := FoldTeamStock(outgoing, usage)
	out := make([]TeamStockDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, TeamStockDTO{
			Division:      e.Division,
			TeamCategory:  e.TeamCategory,
			ProductName:   e.ProductName,
			Specification: e.Specification,
			Quantity:      e.Quantity,
		})
	}
	return out, nil
}

func (s *Service) recalculate(ctx context.Context, item *models.InventoryItem) error {
	totals, err := s.repo.SumTotals(ctx, item)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum record totals")
	}
	Recalculate(item, totals)
	if err := s.repo.Save(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save inventory item")
	}
	return nil
}
