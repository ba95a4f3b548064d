package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	pkgAuth "github.com/hyunwoo-lim/cabletrack-backend/pkg/auth"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"

	"github.com/hyunwoo-lim/cabletrack-backend/internal/auth"
)

type switchTenantRequest struct {
	TenantID string `json:"tenant_id" validate:"required,uuid"`
}

type switchTenantResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Tenant       auth.TenantSummary `json:"tenant"`
}

func parseBearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", errors.New(errors.CodeUnauthorized, "missing credentials")
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", errors.New(errors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// AuthSwitchTenant mints a new token that targets the requested company.
func AuthSwitchTenant(svc auth.SwitchTenantService, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "switch tenant service unavailable"))
			return
		}

		var body switchTenantRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenantID, err := uuid.Parse(body.TenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeValidation, err, "invalid tenant_id"))
			return
		}

		token, err := parseBearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessToken(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeUnauthorized, err, "invalid token"))
			return
		}

		result, err := svc.Switch(r.Context(), auth.SwitchTenantInput{
			UserID:        claims.UserID,
			TenantID:      tenantID,
			AccessTokenID: claims.ID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-CT-Token", result.AccessToken)
		responses.WriteSuccess(w, switchTenantResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			Tenant:       result.Tenant,
		})
	}
}
