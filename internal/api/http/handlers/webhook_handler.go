package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/api/dto"
	"github.com/spec-kit/contact-bridge/internal/domain"
	apperrors "github.com/spec-kit/contact-bridge/pkg/util"
)

// TicketProcessor runs the pipeline for one ticket.
type TicketProcessor interface {
	Process(ctx context.Context, ticketID string) domain.ProcessResult
}

// WebhookHandler triggers ticket processing from webhooks and manual calls.
type WebhookHandler struct {
	processor TicketProcessor
	logger    *zap.Logger
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(processor TicketProcessor, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{processor: processor, logger: logger}
}

// Zendesk handles POST /webhook/zendesk.
func (h *WebhookHandler) Zendesk(c *fiber.Ctx) error {
	h.logger.Debug("received webhook", zap.ByteString("body", c.Body()))

	var req dto.WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	if req.Ticket.ID.Missing() {
		return apperrors.NewValidationError("No ticket ID provided", nil)
	}
	return h.respond(c, strings.TrimSpace(string(req.Ticket.ID)))
}

// ProcessTicket handles POST /process-ticket/:ticketId.
func (h *WebhookHandler) ProcessTicket(c *fiber.Ctx) error {
	ticketID := strings.TrimSpace(c.Params("ticketId"))
	if dto.TicketID(ticketID).Missing() {
		return apperrors.NewValidationError("No ticket ID provided", nil)
	}
	return h.respond(c, ticketID)
}

func (h *WebhookHandler) respond(c *fiber.Ctx, ticketID string) error {
	result := h.processor.Process(c.UserContext(), ticketID)
	return c.JSON(dto.ProcessResponse{
		Success:  result.Success,
		TicketID: ticketID,
		Result:   result,
	})
}
