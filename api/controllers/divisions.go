package controllers

import (
	"net/http"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/divisions"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type createDivisionRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

type updateDivisionRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	SortOrder *int    `json:"sort_order,omitempty" validate:"omitempty,min=0"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// DivisionsList returns the tenant's divisions.
func DivisionsList(svc *divisions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"divisions": list})
	}
}

// DivisionsCreate adds a new division.
func DivisionsCreate(svc *divisions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createDivisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		division, err := svc.Create(r.Context(), tenantID, validators.SanitizeString(body.Name, 100), body.SortOrder)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"division": division})
	}
}

// DivisionsUpdate patches a division.
func DivisionsUpdate(svc *divisions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		divisionID, err := pathUUID(r, "divisionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateDivisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		division, err := svc.Update(r.Context(), tenantID, divisionID, divisions.UpdateDivisionInput{
			Name:      body.Name,
			SortOrder: body.SortOrder,
			IsActive:  body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"division": division})
	}
}

// DivisionsDelete removes a division without teams.
func DivisionsDelete(svc *divisions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		divisionID, err := pathUUID(r, "divisionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), tenantID, divisionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
