package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hyunwoo-lim/cabletrack-backend/api/middleware"
	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type updateMemberRequest struct {
	Role        *string                `json:"role" validate:"omitempty,oneof=owner admin member"`
	PositionID  *string                `json:"position_id" validate:"omitempty"`
	Permissions *dbtypes.PermissionMap `json:"permissions" validate:"omitempty"`
}

func actorRoleFromRequest(r *http.Request) enums.MemberRole {
	return enums.MemberRole(middleware.RoleFromContext(r.Context()))
}

// MembersList returns the company roster with profiles and grants.
func MembersList(svc *memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"members": members})
	}
}

// MembersUpdate changes a member's role, position, or resource grants.
func MembersUpdate(svc *memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membershipID, err := pathUUID(r, "membershipID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMemberRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := memberships.UpdateMembershipInput{}
		if body.Role != nil {
			role := enums.MemberRole(*body.Role)
			input.Role = &role
		}
		if body.PositionID != nil {
			// Empty string clears the position assignment.
			if *body.PositionID == "" {
				var cleared *uuid.UUID
				input.PositionID = &cleared
			} else {
				positionID, err := uuid.Parse(*body.PositionID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid position_id"))
					return
				}
				positionPtr := &positionID
				input.PositionID = &positionPtr
			}
		}
		if body.Permissions != nil {
			if err := body.Permissions.Validate(); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid permissions"))
				return
			}
			input.Permissions = body.Permissions
		}

		updated, err := svc.Update(r.Context(), tenantID, membershipID, actorRoleFromRequest(r), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"member": updated})
	}
}

// MembersRemove deletes a membership from the company.
func MembersRemove(svc *memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membershipID, err := pathUUID(r, "membershipID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), tenantID, membershipID, actorID, actorRoleFromRequest(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "removed"})
	}
}
