package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/cables"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type receiveDrumRequest struct {
	ManagementNo    string          `json:"management_no" validate:"required,max=100"`
	DrumNo          string          `json:"drum_no" validate:"omitempty,max=100"`
	Division        string          `json:"division" validate:"omitempty,max=100"`
	Category        string          `json:"category" validate:"omitempty,max=100"`
	Spec            string          `json:"spec" validate:"required,max=200"`
	CoreCount       int             `json:"core_count" validate:"min=0"`
	Manufacturer    string          `json:"manufacturer" validate:"omitempty,max=200"`
	ManufactureYear string          `json:"manufacture_year" validate:"omitempty,max=10"`
	ReceivedDate    string          `json:"received_date" validate:"required,datetime=2006-01-02"`
	Location        string          `json:"location" validate:"omitempty,max=200"`
	ProjectCode     string          `json:"project_code" validate:"omitempty,max=100"`
	ProjectName     string          `json:"project_name" validate:"omitempty,max=200"`
	TotalLength     decimal.Decimal `json:"total_length"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Remark          *string         `json:"remark,omitempty" validate:"omitempty,max=500"`
}

type receiveBulkRequest struct {
	Drums []receiveDrumRequest `json:"drums" validate:"required,min=1,max=100,dive"`
}

type updateDrumRequest struct {
	ManagementNo    *string          `json:"management_no,omitempty" validate:"omitempty,max=100"`
	DrumNo          *string          `json:"drum_no,omitempty" validate:"omitempty,max=100"`
	Division        *string          `json:"division,omitempty" validate:"omitempty,max=100"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Spec            *string          `json:"spec,omitempty" validate:"omitempty,max=200"`
	CoreCount       *int             `json:"core_count,omitempty" validate:"omitempty,min=0"`
	Manufacturer    *string          `json:"manufacturer,omitempty" validate:"omitempty,max=200"`
	ManufactureYear *string          `json:"manufacture_year,omitempty" validate:"omitempty,max=10"`
	ReceivedDate    *string          `json:"received_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location        *string          `json:"location,omitempty" validate:"omitempty,max=200"`
	ProjectCode     *string          `json:"project_code,omitempty" validate:"omitempty,max=100"`
	ProjectName     *string          `json:"project_name,omitempty" validate:"omitempty,max=200"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Remark          *string          `json:"remark,omitempty" validate:"omitempty,max=500"`
}

type assignDrumRequest struct {
	TeamID     string  `json:"team_id" validate:"required,uuid"`
	UsageDate  string  `json:"usage_date" validate:"required,datetime=2006-01-02"`
	WorkerName string  `json:"worker_name" validate:"required,max=100"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type drumUsageRequest struct {
	InstallLength decimal.Decimal `json:"install_length"`
	WasteLength   decimal.Decimal `json:"waste_length"`
	SectionName   string          `json:"section_name" validate:"omitempty,max=200"`
	UsageDate     string          `json:"usage_date" validate:"required,datetime=2006-01-02"`
	WorkerName    string          `json:"worker_name" validate:"required,max=100"`
	Note          *string         `json:"note,omitempty" validate:"omitempty,max=500"`
}

type returnDrumRequest struct {
	TeamID     string  `json:"team_id" validate:"required,uuid"`
	UsageDate  string  `json:"usage_date" validate:"required,datetime=2006-01-02"`
	WorkerName string  `json:"worker_name" validate:"required,max=100"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type wasteDrumRequest struct {
	UsageDate  string  `json:"usage_date" validate:"required,datetime=2006-01-02"`
	WorkerName string  `json:"worker_name" validate:"required,max=100"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

func (req receiveDrumRequest) toDTO(tenantID uuid.UUID) cables.ReceiveDrumDTO {
	return cables.ReceiveDrumDTO{
		TenantID:        tenantID,
		ManagementNo:    req.ManagementNo,
		DrumNo:          req.DrumNo,
		Division:        req.Division,
		Category:        req.Category,
		Spec:            req.Spec,
		CoreCount:       req.CoreCount,
		Manufacturer:    req.Manufacturer,
		ManufactureYear: req.ManufactureYear,
		ReceivedDate:    req.ReceivedDate,
		Location:        req.Location,
		ProjectCode:     req.ProjectCode,
		ProjectName:     req.ProjectName,
		TotalLength:     req.TotalLength,
		UnitPrice:       req.UnitPrice,
		Remark:          req.Remark,
	}
}

// CablesReceive registers a new drum and opens its ledger.
func CablesReceive(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body receiveDrumRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drum, err := svc.Receive(r.Context(), actorID, body.toDTO(tenantID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"drum": drum})
	}
}

// CablesReceiveBulk registers a batch of drums in one transaction.
func CablesReceiveBulk(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body receiveBulkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dtos := make([]cables.ReceiveDrumDTO, 0, len(body.Drums))
		for _, req := range body.Drums {
			dtos = append(dtos, req.toDTO(tenantID))
		}

		drums, err := svc.ReceiveBulk(r.Context(), actorID, dtos)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"drums": drums})
	}
}

// CablesList returns a page of drums, filtered by ?status=, ?division=
// and ?team_id=.
func CablesList(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxRecordPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := cables.DrumListFilter{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}
		if v := r.URL.Query().Get("status"); v != "" {
			status := enums.CableStatus(v)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if v := r.URL.Query().Get("division"); v != "" {
			filter.Division = &v
		}
		if v := r.URL.Query().Get("team_id"); v != "" {
			teamID, err := uuid.Parse(v)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid team_id filter"))
				return
			}
			filter.TeamID = &teamID
		}

		page, err := svc.List(r.Context(), tenantID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CablesGet returns one drum.
func CablesGet(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drum, err := svc.Get(r.Context(), tenantID, drumID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drum": drum})
	}
}

// CablesUpdate patches a drum's descriptive fields. Lengths and status
// only move through the lifecycle endpoints.
func CablesUpdate(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateDrumRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drum, err := svc.Update(r.Context(), tenantID, drumID, cables.UpdateDrumInput{
			ManagementNo:    body.ManagementNo,
			DrumNo:          body.DrumNo,
			Division:        body.Division,
			Category:        body.Category,
			Spec:            body.Spec,
			CoreCount:       body.CoreCount,
			Manufacturer:    body.Manufacturer,
			ManufactureYear: body.ManufactureYear,
			ReceivedDate:    body.ReceivedDate,
			Location:        body.Location,
			ProjectCode:     body.ProjectCode,
			ProjectName:     body.ProjectName,
			UnitPrice:       body.UnitPrice,
			Remark:          body.Remark,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drum": drum})
	}
}

// CablesDelete removes a drum and its history.
func CablesDelete(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, drumID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}

// CablesBulkDelete removes a batch of drums.
func CablesBulkDelete(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.BulkDeleteDrums(r.Context(), tenantID, ids); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "count": len(ids)})
	}
}

// CablesAssign hands a drum to a field crew.
func CablesAssign(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignDrumRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teamID, err := uuid.Parse(body.TeamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid team_id"))
			return
		}

		drum, err := svc.Assign(r.Context(), tenantID, actorID, drumID, cables.AssignInput{
			TeamID:     teamID,
			UsageDate:  body.UsageDate,
			WorkerName: body.WorkerName,
			Note:       body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drum": drum})
	}
}

// CablesUsage applies a field usage report to a drum.
func CablesUsage(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body drumUsageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drum, err := svc.Usage(r.Context(), tenantID, actorID, drumID, cables.UsageInput{
			InstallLength: body.InstallLength,
			WasteLength:   body.WasteLength,
			SectionName:   body.SectionName,
			UsageDate:     body.UsageDate,
			WorkerName:    body.WorkerName,
			Note:          body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drum": drum})
	}
}

// CablesReturn brings an assigned drum back to the warehouse.
func CablesReturn(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body returnDrumRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teamID, err := uuid.Parse(body.TeamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid team_id"))
			return
		}

		drum, err := svc.Return(r.Context(), tenantID, actorID, drumID, cables.ReturnInput{
			TeamID:     teamID,
			UsageDate:  body.UsageDate,
			WorkerName: body.WorkerName,
			Note:       body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drum": drum})
	}
}

// CablesWaste retires a drum as scrap.
func CablesWaste(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body wasteDrumRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drum, err := svc.Waste(r.Context(), tenantID, actorID, drumID, cables.WasteInput{
			UsageDate:  body.UsageDate,
			WorkerName: body.WorkerName,
			Note:       body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drum": drum})
	}
}

// CablesLogs returns the full history of one drum, newest first.
func CablesLogs(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drumID, err := pathUUID(r, "drumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logs, err := svc.Logs(r.Context(), tenantID, drumID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"logs": logs})
	}
}

// CablesAllLogs returns a page of tenant-wide history rows, optionally
// filtered by ?log_type=.
func CablesAllLogs(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxRecordPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := cables.LogListFilter{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}
		if v := r.URL.Query().Get("log_type"); v != "" {
			logType := enums.CableLogType(v)
			if !logType.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid log_type filter"))
				return
			}
			filter.LogType = &logType
		}

		page, err := svc.AllLogs(r.Context(), tenantID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CablesLogsBulkDelete removes history rows. Owner only.
func CablesLogsBulkDelete(svc *cables.Service, logg *logger.Logger) http.HandlerFunc {
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

		deleted, err := svc.BulkDeleteLogs(r.Context(), tenantID, actorRoleFromRequest(r), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "count": deleted})
	}
}
