package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/audit"
	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	httpapi "github.com/aussiebroadwan/opshub/internal/opshub/http"
	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/internal/opshub/store/drivers/postgres"
	"github.com/aussiebroadwan/opshub/internal/opshub/store/drivers/sqlite"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via -ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the OpsHub service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	feed *audit.Feed

	auditService        *service.AuditService
	inviteService       *service.InviteService
	userService         *service.UserService
	rolesService        *service.RolesService
	seedService         *service.SeedService
	housekeepingService *service.HousekeepingService

	unsubscribe func()
	server      *http.Server
	router      *httpapi.Router
}

// New opens the store, applies migrations, seeds if enabled and refuses to
// start when the default role is missing.
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "opshub",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: logger,
		feed:   audit.NewFeed(),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.initData(ctx); err != nil {
		app.unsubscribe()
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("opshub starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("db_driver", app.cfg.DBDriver),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, stops background work and closes the
// store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down opshub...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeepingService.Stop()
	app.unsubscribe()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("opshub stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DBDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(postgres.DefaultConfig(app.cfg.DatabaseURL))
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", slog.String("db_driver", app.cfg.DBDriver))
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.auditService = &service.AuditService{Store: app.db, Feed: app.feed}

	app.inviteService = &service.InviteService{
		Store:           app.db,
		Audit:           app.auditService,
		AcceptURLBase:   app.cfg.AcceptURLBase,
		TTL:             app.cfg.InviteTTL,
		Supersede:       app.cfg.InviteSupersede,
		DefaultRoleCode: app.cfg.DefaultRoleCode,
	}
	app.userService = &service.UserService{Store: app.db, Audit: app.auditService}
	app.rolesService = &service.RolesService{
		Store:           app.db,
		Audit:           app.auditService,
		DefaultRoleCode: app.cfg.DefaultRoleCode,
	}
	app.seedService = &service.SeedService{
		Store:           app.db,
		Audit:           app.auditService,
		DefaultRoleCode: app.cfg.DefaultRoleCode,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)

	app.unsubscribe = app.feed.Subscribe(app.logAuditEntry)
}

// logAuditEntry mirrors committed audit entries into the service log.
func (app *Application) logAuditEntry(version uint64, e domain.AuditLog) {
	app.logger.Info("audit",
		slog.Uint64("feed_version", version),
		slog.String("action", string(e.Action)),
		slog.String("actor_id", e.ActorID),
		slog.String("target_type", string(e.TargetType)),
		slog.String("target_id", e.TargetID),
	)
}

// initData seeds the system roles when enabled and checks that invite
// redemption has a role to grant.
func (app *Application) initData(ctx context.Context) error {
	if app.cfg.Seed {
		seed := domain.DefaultSeed(app.cfg.AdminEmail)
		if !slices.ContainsFunc(seed.Roles, func(r domain.RoleDefinition) bool {
			return r.Code == app.cfg.DefaultRoleCode
		}) {
			seed.Roles = append(seed.Roles, domain.RoleDefinition{
				Code: app.cfg.DefaultRoleCode,
				Name: app.cfg.DefaultRoleCode,
				Type: domain.RoleTypeSystem,
			})
		}

		res, err := app.seedService.Seed(ctx, seed)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		app.logger.Info("seed complete",
			slog.Int("roles_created", res.RolesCreated),
			slog.Bool("admin_created", res.AdminCreated),
		)
	}

	if err := app.seedService.CheckDefaultRole(ctx); err != nil {
		return fmt.Errorf("startup check failed: %w", err)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.InviteService = app.inviteService
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.AuditService = app.auditService
	router.SeedService = app.seedService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
