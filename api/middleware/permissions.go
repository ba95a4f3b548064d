package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyunwoo-lim/cabletrack-backend/api/responses"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	pkgerrors "github.com/hyunwoo-lim/cabletrack-backend/pkg/errors"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/permissions"
)

type MembershipLoader interface {
	GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (*models.TenantMembership, error)
}

// RequirePermission resolves the caller's membership and enforces the
// per-resource grant before the handler runs. An own_only grant passes
// through with the ownership flag set on the context so handlers can
// scope their queries.
func RequirePermission(loader MembershipLoader, logg *logger.Logger, resource enums.PermissionResource, action permissions.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if loader == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership loader unavailable"))
				return
			}

			uid, err := uuid.Parse(UserIDFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}
			tid, err := uuid.Parse(TenantIDFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "no active company selected"))
				return
			}

			membership, err := loader.GetMembership(ctx, uid, tid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this company"))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership"))
				return
			}
			if membership.Status != enums.MembershipStatusActive {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "membership is not active"))
				return
			}

			decision := permissions.Check(membership.Role, membership.Permissions, resource, action)
			if !decision.Allowed {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwnOnly(ctx, decision.OwnOnly)))
		})
	}
}
