package auth

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/api/middleware"
	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/auth"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-CT-Token", result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// AuthMe returns the caller's profile plus their company memberships.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var activeTenantID *uuid.UUID
		if raw := middleware.TenantIDFromContext(r.Context()); raw != "" {
			if tid, parseErr := uuid.Parse(raw); parseErr == nil {
				activeTenantID = &tid
			}
		}

		result, err := svc.Me(r.Context(), userID, activeTenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
