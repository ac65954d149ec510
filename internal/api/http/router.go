package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-bridge/internal/api/http/handlers"
	"github.com/spec-kit/contact-bridge/internal/auth"
	"github.com/spec-kit/contact-bridge/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Webhook  *handlers.WebhookHandler
	Macros   *handlers.MacroHandler
	Metrics  *observability.Metrics
	Verifier *auth.WebhookVerifier
	Admin    *auth.AdminMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	app.Post("/webhook/zendesk", cfg.Verifier.Handle, cfg.Webhook.Zendesk)

	app.Post("/process-ticket/:ticketId", cfg.Admin.Handle, cfg.Webhook.ProcessTicket)
	app.Get("/test-macro/:macroId", cfg.Admin.Handle, cfg.Macros.TestMacro)
}
