package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-bridge/internal/persistence"
	apperrors "github.com/spec-kit/contact-bridge/pkg/util"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	zendeskDomain string
	redis         *persistence.Redis
}

// NewHealthHandler returns a new handler instance. redis may be nil.
func NewHealthHandler(zendeskDomain string, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{zendeskDomain: zendeskDomain, redis: redis}
}

// Health reports service liveness.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339Nano),
		"zendesk_domain": h.zendeskDomain,
	})
}

// Ready reports readiness by checking the lock backend.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.redis == nil {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": fiber.Map{"redis": "disabled"},
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx); err != nil {
		return apperrors.NewUnavailable("redis", err)
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": fiber.Map{"redis": "ok"},
	})
}
