package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/contact-bridge/internal/api/http"
	"github.com/spec-kit/contact-bridge/internal/api/http/handlers"
	"github.com/spec-kit/contact-bridge/internal/auth"
	"github.com/spec-kit/contact-bridge/internal/config"
	"github.com/spec-kit/contact-bridge/internal/events"
	"github.com/spec-kit/contact-bridge/internal/extract"
	"github.com/spec-kit/contact-bridge/internal/observability"
	"github.com/spec-kit/contact-bridge/internal/persistence"
	"github.com/spec-kit/contact-bridge/internal/service"
	"github.com/spec-kit/contact-bridge/internal/worker"
	"github.com/spec-kit/contact-bridge/internal/zendesk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var locker service.TicketLocker = persistence.NewLocalTicketLock()
	if redis != nil {
		locker = persistence.NewRedisTicketLock(redis, cfg.Lock.TTL())
	}

	client := zendesk.NewClient(cfg.Zendesk, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartPipelineAuditor(service.NewPipelineAuditor(dispatcher, metrics, logger))

	processor := service.NewTicketProcessor(service.ProcessorConfig{
		TargetTag: cfg.Pipeline.TargetTag,
		MacroID:   cfg.Pipeline.MacroID,
	}, service.ProcessorDependencies{
		Tickets:   client,
		Extractor: extract.NewExtractor(cfg.Extract.ExcludedDomains, logger),
		Resolver:  service.NewUserResolver(client, service.FoldTransientIntoNotFound, logger),
		Mutator: service.NewTicketMutator(client, client, service.MutatorConfig{
			TargetGroupID: cfg.Pipeline.TargetGroupID,
			AssignComment: cfg.Pipeline.AssignComment,
			CloseComment:  cfg.Pipeline.CloseComment,
		}, logger),
		Locker:     locker,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	var admin *auth.AdminMiddleware
	if cfg.Auth.JWTSecret != "" {
		admin = auth.NewAdminMiddleware(auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes))
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set; manual endpoints are unauthenticated")
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.Zendesk.Domain, redis),
		Webhook:  handlers.NewWebhookHandler(processor, logger),
		Macros:   handlers.NewMacroHandler(client, logger),
		Metrics:  metrics,
		Verifier: auth.NewWebhookVerifier(cfg.Zendesk.WebhookSecret),
		Admin:    admin,
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("zendesk_domain", cfg.Zendesk.Domain),
			zap.String("target_tag", cfg.Pipeline.TargetTag),
			zap.String("macro_id", cfg.Pipeline.MacroID),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
