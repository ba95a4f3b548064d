package main

import (
	"context"
	"net/http"
	"os"

	"github.com/hyunwoo-lim/cabletrack-backend/api/routes"
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
	"github.com/hyunwoo-lim/cabletrack-backend/internal/users"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/auth/session"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/config"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/db"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/logger"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/metrics"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/migrate"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	membershipsRepo := memberships.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:        usersRepo,
		MembershipsRepo: membershipsRepo,
		SessionManager:  sessionManager,
		JWTConfig:       cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	switchService, err := auth.NewSwitchTenantService(auth.SwitchTenantServiceParams{
		MembershipsRepo: membershipsRepo,
		SessionManager:  sessionManager,
		JWTConfig:       cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create switch-tenant service", err)
		os.Exit(1)
	}

	companyService, err := tenants.NewService(tenants.NewRepository(dbClient.DB()), membershipsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create company service", err)
		os.Exit(1)
	}

	membersService, err := memberships.NewService(membershipsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create members service", err)
		os.Exit(1)
	}

	invitationsService, err := invitations.NewService(invitations.ServiceParams{
		TxRunner:        dbClient,
		Repo:            invitations.NewRepository(dbClient.DB()),
		MembershipsRepo: membershipsRepo,
		Config:          cfg.Invitations,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create invitations service", err)
		os.Exit(1)
	}

	divisionsRepo := divisions.NewRepository(dbClient.DB())
	divisionsService, err := divisions.NewService(divisionsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create divisions service", err)
		os.Exit(1)
	}

	teamsService, err := teams.NewService(teams.NewRepository(dbClient.DB()), divisionsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create teams service", err)
		os.Exit(1)
	}

	positionsService, err := positions.NewService(positions.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create positions service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	recordsService, err := records.NewService(records.NewRepository(dbClient.DB()), inventoryService)
	if err != nil {
		logg.Error(context.Background(), "failed to create records service", err)
		os.Exit(1)
	}

	cablesService, err := cables.NewService(cables.ServiceParams{
		TxRunner: dbClient,
		Repo:     cables.NewRepository(dbClient.DB()),
		Config:   cfg.Cable,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cables service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			metricsHandler,
			sessionManager,
			authService,
			registerService,
			switchService,
			companyService,
			membershipsRepo,
			membersService,
			invitationsService,
			divisionsService,
			teamsService,
			positionsService,
			inventoryService,
			recordsService,
			cablesService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
