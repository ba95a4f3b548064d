package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/inventory"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type createItemRequest struct {
	Division      string          `json:"division" validate:"required,max=100"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	ProductName   string          `json:"product_name" validate:"required,max=200"`
	Specification string          `json:"specification" validate:"omitempty,max=200"`
	Unit          string          `json:"unit" validate:"omitempty,max=20"`
	CarriedOver   decimal.Decimal `json:"carried_over"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

type bulkItemsRequest struct {
	Items []createItemRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

type updateItemRequest struct {
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit        *string          `json:"unit,omitempty" validate:"omitempty,max=20"`
	CarriedOver *decimal.Decimal `json:"carried_over,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// InventoryList returns the tenant's stock lines, optionally scoped to
// one division via ?division=.
func InventoryList(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var division *string
		if v := r.URL.Query().Get("division"); v != "" {
			division = &v
		}

		items, err := svc.List(r.Context(), tenantID, division)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// InventoryGet returns one stock line.
func InventoryGet(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Get(r.Context(), tenantID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"item": item})
	}
}

// InventoryCreate registers a stock line ahead of any movement records.
func InventoryCreate(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), inventory.CreateItemDTO{
			TenantID:      tenantID,
			Division:      body.Division,
			Category:      body.Category,
			ProductName:   body.ProductName,
			Specification: body.Specification,
			Unit:          body.Unit,
			CarriedOver:   body.CarriedOver,
			UnitPrice:     body.UnitPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"item": item})
	}
}

// InventoryBulkReplace swaps the tenant's whole stock list for the
// uploaded one, the import path for spreadsheet-shaped data.
func InventoryBulkReplace(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bulkItemsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dtos := make([]inventory.CreateItemDTO, 0, len(body.Items))
		for _, item := range body.Items {
			dtos = append(dtos, inventory.CreateItemDTO{
				TenantID:      tenantID,
				Division:      item.Division,
				Category:      item.Category,
				ProductName:   item.ProductName,
				Specification: item.Specification,
				Unit:          item.Unit,
				CarriedOver:   item.CarriedOver,
				UnitPrice:     item.UnitPrice,
			})
		}

		items, err := svc.BulkReplace(r.Context(), tenantID, dtos)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"items": items})
	}
}

// InventoryBulkDelete removes many stock lines in one call.
func InventoryBulkDelete(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bulkDeleteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ids, err := parseBulkIDs(body.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.BulkDelete(r.Context(), tenantID, ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "count": deleted})
	}
}

// InventoryStats reports the raw record sums behind one stock line.
func InventoryStats(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), tenantID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stats": stats})
	}
}

// InventoryUpdate patches a stock line's descriptive fields. Aggregates
// are recomputed from the movement records, never accepted from input.
func InventoryUpdate(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), tenantID, itemID, inventory.UpdateItemInput{
			Category:    body.Category,
			Unit:        body.Unit,
			CarriedOver: body.CarriedOver,
			UnitPrice:   body.UnitPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"item": item})
	}
}

// InventoryDelete removes a stock line.
func InventoryDelete(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}

// InventoryTeamStock reports material currently held by field crews,
// derived as outgoing minus usage per team and product.
func InventoryTeamStock(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.TeamStock(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"team_stock": rows})
	}
}
