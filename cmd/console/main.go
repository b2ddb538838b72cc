package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/restaurant-console/internal/api/http"
	"github.com/spec-kit/restaurant-console/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/backend"
	"github.com/spec-kit/restaurant-console/internal/config"
	"github.com/spec-kit/restaurant-console/internal/domain"
	"github.com/spec-kit/restaurant-console/internal/events"
	"github.com/spec-kit/restaurant-console/internal/observability"
	"github.com/spec-kit/restaurant-console/internal/service"
	"github.com/spec-kit/restaurant-console/internal/session"
	"github.com/spec-kit/restaurant-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, cfg.Session.TerminalID))

	store, err := session.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open credential store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer store.Close()

	loginClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), nil)
	manager := session.NewManager(session.Dependencies{
		Store:         store.Store,
		Decoder:       auth.NewDecoder(),
		Authenticator: loginClient,
		Logger:        logger,
		Metrics:       metrics,
		Events:        dispatcher,
	})
	api := loginClient.WithCredentials(manager)

	unsubscribe := manager.Subscribe(func(s domain.Session) {
		if s.State == domain.SessionUnauthenticated {
			logger.Debug("terminal locked; views will redirect to login")
		}
	})
	defer unsubscribe()

	table := httptransport.ConsoleRoutes(cfg.Routes)
	guard := auth.NewGuardMiddleware(manager, table.Guard(), metrics)

	deps := map[string]handlers.Pinger{}
	if store.Pinger != nil {
		deps[store.Name] = store.Pinger
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Table:   table,
		Guard:   guard,
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, manager, deps),
		Session: handlers.NewSessionHandler(manager, loginClient, cfg.Routes.LoginPath, cfg.Routes.LandingPath),
		Tables:  handlers.NewTablesHandler(manager, api),
		Menu:    handlers.NewMenuHandler(manager, api),
		Users:   handlers.NewUsersHandler(manager, api),
		Metrics: metrics,
	})

	go func() {
		s := manager.Hydrate(ctx)
		logger.Info("session hydrated", zap.String("state", s.State.String()))
	}()

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
