package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hyunwoo-lim/cabletrack-backend/api/controllers"
	authcontrollers "github.com/hyunwoo-lim/cabletrack-backend/api/controllers/auth"
	"github.com/hyunwoo-lim/cabletrack-backend/api/middleware"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/auth"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/cables"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/divisions"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/inventory"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/invitations"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/memberships"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/positions"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/records"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/teams"
	"github.com/hyunwoo-lim/cabletrack-backend/internal/tenants"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/auth/session"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/metrics"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/permissions"
	pkgredis "github.com/hyunwoo-lim/cabletrack-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// memberGuard is the membership surface the routing middleware needs.
type memberGuard interface {
	middleware.MembershipChecker
	middleware.MembershipLoader
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	sessionManager sessionManager,
	authService auth.Service,
	registerService auth.RegisterService,
	switchService auth.SwitchTenantService,
	companyService tenants.Service,
	membersGuard memberGuard,
	membersService *memberships.Service,
	invitationsService *invitations.Service,
	divisionsService *divisions.Service,
	teamsService *teams.Service,
	positionsService *positions.Service,
	inventoryService *inventory.Service,
	recordsService *records.Service,
	cablesService *cables.Service,
) http.Handler {
	// Interface params stay nil when redis is absent so the middleware
	// can detect the missing store.
	var redisPinger pkgredis.Pinger
	var rateStore middleware.RateLimiterStore
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		redisPinger = redisClient
		rateStore = redisClient
		idemStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", authcontrollers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg), middleware.Idempotency(idemStore, logg)).Post("/register", controllers.AuthRegister(registerService, authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
			r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
			r.Get("/me", authcontrollers.AuthMe(authService, logg))
			r.Post("/switch-tenant", authcontrollers.AuthSwitchTenant(switchService, cfg.JWT, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		// Invitation acceptance runs outside tenant scope: the token
		// decides which company the caller joins.
		r.Post("/invitations/accept", controllers.InvitationsAccept(invitationsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.TenantContext(logg))
			r.Use(middleware.RequireTenantRoles(membersGuard, logg,
				enums.MemberRoleOwner, enums.MemberRoleAdmin, enums.MemberRoleMember))

			r.Get("/company", controllers.CompanyProfile(companyService, logg))
			r.Patch("/company", controllers.CompanyUpdate(companyService, logg))

			r.Route("/divisions", func(r chi.Router) {
				r.Get("/", controllers.DivisionsList(divisionsService, logg))
				r.Post("/", controllers.DivisionsCreate(divisionsService, logg))
				r.Patch("/{divisionID}", controllers.DivisionsUpdate(divisionsService, logg))
				r.Delete("/{divisionID}", controllers.DivisionsDelete(divisionsService, logg))
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", controllers.TeamsList(teamsService, logg))
				r.Post("/", controllers.TeamsCreate(teamsService, logg))
				r.Get("/{teamID}", controllers.TeamsGet(teamsService, logg))
				r.Patch("/{teamID}", controllers.TeamsUpdate(teamsService, logg))
				r.Delete("/{teamID}", controllers.TeamsDelete(teamsService, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				read := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceInventory, permissions.ActionRead)
				write := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceInventory, permissions.ActionWrite)

				r.With(read).Get("/", controllers.InventoryList(inventoryService, logg))
				r.With(read).Get("/team-stock", controllers.InventoryTeamStock(inventoryService, logg))
				r.With(read).Get("/{itemID}", controllers.InventoryGet(inventoryService, logg))
				r.With(read).Get("/{itemID}/stats", controllers.InventoryStats(inventoryService, logg))
				r.With(write).Post("/", controllers.InventoryCreate(inventoryService, logg))
				r.With(write).Post("/bulk", controllers.InventoryBulkReplace(inventoryService, logg))
				r.With(write).Post("/bulk-delete", controllers.InventoryBulkDelete(inventoryService, logg))
				r.With(write).Patch("/{itemID}", controllers.InventoryUpdate(inventoryService, logg))
				r.With(write).Delete("/{itemID}", controllers.InventoryDelete(inventoryService, logg))
			})

			r.Route("/records", func(r chi.Router) {
				r.Route("/incoming", func(r chi.Router) {
					read := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceIncoming, permissions.ActionRead)
					write := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceIncoming, permissions.ActionWrite)

					r.With(read).Get("/", controllers.IncomingList(recordsService, logg))
					r.With(write).Post("/", controllers.IncomingCreate(recordsService, logg))
					r.With(write).Patch("/{recordID}", controllers.IncomingUpdate(recordsService, logg))
					r.With(write).Delete("/{recordID}", controllers.IncomingDelete(recordsService, logg))
					r.With(write).Post("/bulk-delete", controllers.IncomingBulkDelete(recordsService, logg))
				})
				r.Route("/outgoing", func(r chi.Router) {
					read := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceOutgoing, permissions.ActionRead)
					write := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceOutgoing, permissions.ActionWrite)

					r.With(read).Get("/", controllers.OutgoingList(recordsService, logg))
					r.With(write).Post("/", controllers.OutgoingCreate(recordsService, logg))
					r.With(write).Patch("/{recordID}", controllers.OutgoingUpdate(recordsService, logg))
					r.With(write).Delete("/{recordID}", controllers.OutgoingDelete(recordsService, logg))
					r.With(write).Post("/bulk-delete", controllers.OutgoingBulkDelete(recordsService, logg))
				})
				r.Route("/usage", func(r chi.Router) {
					read := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceUsage, permissions.ActionRead)
					write := middleware.RequirePermission(membersGuard, logg, enums.PermissionResourceUsage, permissions.ActionWrite)

					r.With(read).Get("/", controllers.UsageList(recordsService, logg))
					r.With(write).Post("/", controllers.UsageCreate(recordsService, logg))
					r.With(write).Patch("/{recordID}", controllers.UsageUpdate(recordsService, logg))
					r.With(write).Delete("/{recordID}", controllers.UsageDelete(recordsService, logg))
					r.With(write).Post("/bulk-delete", controllers.UsageBulkDelete(recordsService, logg))
				})
			})

			r.Route("/cables", func(r chi.Router) {
				r.Get("/", controllers.CablesList(cablesService, logg))
				r.Post("/", controllers.CablesReceive(cablesService, logg))
				r.Post("/bulk", controllers.CablesReceiveBulk(cablesService, logg))
				r.Post("/bulk-delete", controllers.CablesBulkDelete(cablesService, logg))
				r.Get("/logs", controllers.CablesAllLogs(cablesService, logg))
				r.Post("/logs/bulk-delete", controllers.CablesLogsBulkDelete(cablesService, logg))

				r.Route("/{drumID}", func(r chi.Router) {
					r.Get("/", controllers.CablesGet(cablesService, logg))
					r.Patch("/", controllers.CablesUpdate(cablesService, logg))
					r.Delete("/", controllers.CablesDelete(cablesService, logg))
					r.Get("/logs", controllers.CablesLogs(cablesService, logg))
					r.Post("/assign", controllers.CablesAssign(cablesService, logg))
					r.Post("/usage", controllers.CablesUsage(cablesService, logg))
					r.Post("/return", controllers.CablesReturn(cablesService, logg))
					r.Post("/waste", controllers.CablesWaste(cablesService, logg))
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.TenantContext(logg))
			r.Use(middleware.RequireTenantRoles(membersGuard, logg,
				enums.MemberRoleOwner, enums.MemberRoleAdmin))

			r.Route("/members", func(r chi.Router) {
				r.Get("/", controllers.MembersList(membersService, logg))
				r.Patch("/{membershipID}", controllers.MembersUpdate(membersService, logg))
				r.Delete("/{membershipID}", controllers.MembersRemove(membersService, logg))
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", controllers.PositionsList(positionsService, logg))
				r.Post("/", controllers.PositionsCreate(positionsService, logg))
				r.Patch("/{positionID}", controllers.PositionsUpdate(positionsService, logg))
				r.Delete("/{positionID}", controllers.PositionsDelete(positionsService, logg))
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Get("/", controllers.InvitationsList(invitationsService, logg))
				r.Post("/", controllers.InvitationsCreate(invitationsService, logg))
				r.Delete("/{invitationID}", controllers.InvitationsRevoke(invitationsService, logg))
			})
		})
	})

	return r
}
