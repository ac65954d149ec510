package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/api/dto"
	"github.com/spec-kit/contact-bridge/internal/domain"
	"github.com/spec-kit/contact-bridge/internal/zendesk"
)

// MacroFetcher reads macro definitions.
type MacroFetcher interface {
	GetMacro(ctx context.Context, macroID string) (*domain.Macro, error)
}

// MacroHandler exposes macro inspection.
type MacroHandler struct {
	macros MacroFetcher
	logger *zap.Logger
}

// NewMacroHandler constructs handler.
func NewMacroHandler(macros MacroFetcher, logger *zap.Logger) *MacroHandler {
	return &MacroHandler{macros: macros, logger: logger}
}

// TestMacro handles GET /test-macro/:macroId.
func (h *MacroHandler) TestMacro(c *fiber.Ctx) error {
	macroID := c.Params("macroId")
	macro, err := h.macros.GetMacro(c.UserContext(), macroID)
	if err != nil {
		h.logger.Warn("macro lookup failed", zap.String("macro_id", macroID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   upstreamErrorBody(err),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"macro": dto.MacroResponse{
			ID:          macro.ID,
			Title:       macro.Title,
			Active:      macro.Active,
			Actions:     macro.Actions,
			Description: macro.Description,
		},
	})
}

// upstreamErrorBody returns the API's JSON error body when there is one,
// otherwise the error message.
func upstreamErrorBody(err error) any {
	var apiErr *zendesk.APIError
	if errors.As(err, &apiErr) && json.Valid(apiErr.Body) {
		return json.RawMessage(apiErr.Body)
	}
	return err.Error()
}
