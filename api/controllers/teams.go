package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/teams"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type createTeamRequest struct {
	DivisionID  string `json:"division_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,max=100"`
	MemberCount int    `json:"member_count" validate:"min=0"`
}

type updateTeamRequest struct {
	DivisionID  *string `json:"division_id,omitempty" validate:"omitempty,uuid"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	MemberCount *int    `json:"member_count,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// TeamsList returns the tenant's crews, optionally filtered by division.
func TeamsList(svc *teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var divisionID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("division_id")); raw != "" {
			parsed, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid division_id"))
				return
			}
			divisionID = &parsed
		}
		list, err := svc.List(r.Context(), tenantID, divisionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"teams": list})
	}
}

// TeamsGet returns a single crew.
func TeamsGet(svc *teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		team, err := svc.Get(r.Context(), tenantID, teamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"team": team})
	}
}

// TeamsCreate registers a crew under a division.
func TeamsCreate(svc *teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createTeamRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		divisionID, err := uuid.Parse(body.DivisionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid division_id"))
			return
		}
		team, err := svc.Create(r.Context(), teams.CreateTeamDTO{
			TenantID:    tenantID,
			DivisionID:  divisionID,
			Name:        body.Name,
			Category:    body.Category,
			MemberCount: body.MemberCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"team": team})
	}
}

// TeamsUpdate patches a crew.
func TeamsUpdate(svc *teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateTeamRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := teams.UpdateTeamInput{
			Name:        body.Name,
			Category:    body.Category,
			MemberCount: body.MemberCount,
			IsActive:    body.IsActive,
		}
		if body.DivisionID != nil {
			divisionID, parseErr := uuid.Parse(*body.DivisionID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid division_id"))
				return
			}
			input.DivisionID = &divisionID
		}
		team, err := svc.Update(r.Context(), tenantID, teamID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"team": team})
	}
}

// TeamsDelete removes a crew holding no drums.
func TeamsDelete(svc *teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), tenantID, teamID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
