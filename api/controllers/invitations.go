package controllers

import (
	"net/http"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/api/validators"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/invitations"
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
)

type createInvitationRequest struct {
	Email       string                `json:"email" validate:"required,email"`
	Role        string                `json:"role" validate:"required,oneof=admin member"`
	Permissions dbtypes.PermissionMap `json:"permissions" validate:"omitempty"`
}

type acceptInvitationRequest struct {
	Token string `json:"token" validate:"required,len=64"`
}

// InvitationsList returns the company's invitations, newest first.
func InvitationsList(svc *invitations.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, map[string]any{"invitations": list})
	}
}

// InvitationsCreate issues a new invitation token. The token is only
// returned on this response, never on later listings.
func InvitationsCreate(svc *invitations.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body createInvitationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invitation, err := svc.Invite(r.Context(), invitations.CreateInvitationDTO{
			TenantID:    tenantID,
			Email:       body.Email,
			Role:        enums.MemberRole(body.Role),
			Permissions: body.Permissions,
			InvitedBy:   actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"invitation": invitation})
	}
}

// InvitationsRevoke cancels a pending invitation.
func InvitationsRevoke(svc *invitations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invitationID, err := pathUUID(r, "invitationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Revoke(r.Context(), tenantID, invitationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "revoked"})
	}
}

// InvitationsAccept redeems an invitation token for the logged in user.
// It runs outside tenant scope: the token decides the company.
func InvitationsAccept(svc *invitations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body acceptInvitationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Accept(r.Context(), userID, body.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"membership": result})
	}
}
