package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/api/middleware"
	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/records"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type createIncomingRequest struct {
	RecordDate    string          `json:"record_date" validate:"required,datetime=2006-01-02"`
	Division      string          `json:"division" validate:"required,max=100"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	ProductName   string          `json:"product_name" validate:"required,max=200"`
	Specification string          `json:"specification" validate:"omitempty,max=200"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Supplier      string          `json:"supplier" validate:"omitempty,max=200"`
	Note          *string         `json:"note,omitempty" validate:"omitempty,max=500"`
}

type updateIncomingRequest struct {
	RecordDate    *string          `json:"record_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Division      *string          `json:"division,omitempty" validate:"omitempty,max=100"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	ProductName   *string          `json:"product_name,omitempty" validate:"omitempty,max=200"`
	Specification *string          `json:"specification,omitempty" validate:"omitempty,max=200"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier      *string          `json:"supplier,omitempty" validate:"omitempty,max=200"`
	Note          *string          `json:"note,omitempty" validate:"omitempty,max=500"`
}

type createMovementRequest struct {
	RecordDate    string          `json:"record_date" validate:"required,datetime=2006-01-02"`
	Division      string          `json:"division" validate:"required,max=100"`
	TeamCategory  string          `json:"team_category" validate:"required,max=100"`
	ProjectName   string          `json:"project_name" validate:"omitempty,max=200"`
	ProductName   string          `json:"product_name" validate:"required,max=200"`
	Specification string          `json:"specification" validate:"omitempty,max=200"`
	Quantity      decimal.Decimal `json:"quantity"`
	Recipient     string          `json:"recipient" validate:"omitempty,max=100"`
	Note          *string         `json:"note,omitempty" validate:"omitempty,max=500"`
}

type updateMovementRequest struct {
	RecordDate    *string          `json:"record_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Division      *string          `json:"division,omitempty" validate:"omitempty,max=100"`
	TeamCategory  *string          `json:"team_category,omitempty" validate:"omitempty,max=100"`
	ProjectName   *string          `json:"project_name,omitempty" validate:"omitempty,max=200"`
	ProductName   *string          `json:"product_name,omitempty" validate:"omitempty,max=200"`
	Specification *string          `json:"specification,omitempty" validate:"omitempty,max=200"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	Recipient     *string          `json:"recipient,omitempty" validate:"omitempty,max=100"`
	Note          *string          `json:"note,omitempty" validate:"omitempty,max=500"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=200,dive,uuid"`
}

const maxRecordPageSize = 200

func recordActor(r *http.Request) (records.Actor, error) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		return records.Actor{}, err
	}
	return records.Actor{
		UserID:  userID,
		OwnOnly: middleware.OwnOnlyFromContext(r.Context()),
	}, nil
}

func recordListFilter(r *http.Request) (records.ListFilter, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxRecordPageSize)
	if err != nil {
		return records.ListFilter{}, err
	}

	filter := records.ListFilter{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}
	if v := r.URL.Query().Get("month"); v != "" {
		filter.Month = &v
	}
	if v := r.URL.Query().Get("division"); v != "" {
		filter.Division = &v
	}
	return filter, nil
}

func parseBulkIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid record id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IncomingCreate records a received delivery and refreshes the matching
// stock line.
func IncomingCreate(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createIncomingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateIncoming(r.Context(), actor, records.CreateIncomingDTO{
			TenantID:      tenantID,
			RecordDate:    body.RecordDate,
			Division:      body.Division,
			Category:      body.Category,
			ProductName:   body.ProductName,
			Specification: body.Specification,
			Quantity:      body.Quantity,
			UnitPrice:     body.UnitPrice,
			Supplier:      body.Supplier,
			Note:          body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"record": record})
	}
}

// IncomingList returns a page of incoming records.
func IncomingList(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := recordListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListIncoming(r.Context(), tenantID, actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// IncomingUpdate patches an incoming record.
func IncomingUpdate(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateIncomingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateIncoming(r.Context(), tenantID, actor, recordID, records.UpdateIncomingInput{
			RecordDate:    body.RecordDate,
			Division:      body.Division,
			Category:      body.Category,
			ProductName:   body.ProductName,
			Specification: body.Specification,
			Quantity:      body.Quantity,
			UnitPrice:     body.UnitPrice,
			Supplier:      body.Supplier,
			Note:          body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"record": record})
	}
}

// IncomingDelete removes one incoming record.
func IncomingDelete(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteIncoming(r.Context(), tenantID, actor, recordID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}

// IncomingBulkDelete removes a batch of incoming records.
func IncomingBulkDelete(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
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

		if err := svc.BulkDeleteIncoming(r.Context(), tenantID, actor, ids); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "count": len(ids)})
	}
}

// OutgoingCreate records material released to a field crew.
func OutgoingCreate(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateOutgoing(r.Context(), actor, records.CreateOutgoingDTO{
			TenantID:      tenantID,
			RecordDate:    body.RecordDate,
			Division:      body.Division,
			TeamCategory:  body.TeamCategory,
			ProjectName:   body.ProjectName,
			ProductName:   body.ProductName,
			Specification: body.Specification,
			Quantity:      body.Quantity,
			Recipient:     body.Recipient,
			Note:          body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"record": record})
	}
}

// OutgoingList returns a page of outgoing records.
func OutgoingList(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := recordListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListOutgoing(r.Context(), tenantID, actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// OutgoingUpdate patches an outgoing record.
func OutgoingUpdate(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateOutgoing(r.Context(), tenantID, actor, recordID, movementInput(body))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"record": record})
	}
}

// OutgoingDelete removes one outgoing record.
func OutgoingDelete(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOutgoing(r.Context(), tenantID, actor, recordID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}

// OutgoingBulkDelete removes a batch of outgoing records.
func OutgoingBulkDelete(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
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

		if err := svc.BulkDeleteOutgoing(r.Context(), tenantID, actor, ids); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "count": len(ids)})
	}
}

// UsageCreate records material consumed by a field crew.
func UsageCreate(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateUsage(r.Context(), actor, records.CreateUsageDTO{
			TenantID:      tenantID,
			RecordDate:    body.RecordDate,
			Division:      body.Division,
			TeamCategory:  body.TeamCategory,
			ProjectName:   body.ProjectName,
			ProductName:   body.ProductName,
			Specification: body.Specification,
			Quantity:      body.Quantity,
			Recipient:     body.Recipient,
			Note:          body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"record": record})
	}
}

// UsageList returns a page of usage records.
func UsageList(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := recordListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListUsage(r.Context(), tenantID, actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// UsageUpdate patches a usage record.
func UsageUpdate(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateUsage(r.Context(), tenantID, actor, recordID, movementInput(body))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"record": record})
	}
}

// UsageDelete removes one usage record.
func UsageDelete(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteUsage(r.Context(), tenantID, actor, recordID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}

// UsageBulkDelete removes a batch of usage records.
func UsageBulkDelete(svc *records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := recordActor(r)
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

		if err := svc.BulkDeleteUsage(r.Context(), tenantID, actor, ids); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "count": len(ids)})
	}
}

func movementInput(body updateMovementRequest) records.UpdateOutgoingInput {
	return records.UpdateOutgoingInput{
		RecordDate:    body.RecordDate,
		Division:      body.Division,
		TeamCategory:  body.TeamCategory,
		ProjectName:   body.ProjectName,
		ProductName:   body.ProductName,
		Specification: body.Specification,
		Quantity:      body.Quantity,
		Recipient:     body.Recipient,
		Note:          body.Note,
	}
}
