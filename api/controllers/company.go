package controllers

import (
	"net/http"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/tenants"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type updateCompanyRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=200"`
}

// CompanyProfile returns the active company.
func CompanyProfile(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.GetByID(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"company": company})
	}
}

// CompanyUpdate renames the active company. Owner only.
func CompanyUpdate(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body updateCompanyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.Update(r.Context(), actorID, tenantID, tenants.UpdateTenantInput{Name: body.Name})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"company": company})
	}
}
