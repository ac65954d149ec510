package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/domain"
	"github.com/spec-kit/contact-bridge/internal/zendesk"
)

// MacroOutcome describes how ApplyMacro finished.
type MacroOutcome string

const (
	// MacroExecuted means the API-computed patch was written.
	MacroExecuted MacroOutcome = "executed"
	// MacroManual means the actions were translated locally and written.
	MacroManual MacroOutcome = "manual"
	// MacroNoop means no action mapped to a ticket field.
	MacroNoop MacroOutcome = "noop"
	// MacroSkipped means the macro does not exist.
	MacroSkipped MacroOutcome = "skipped"
)

// MutatorConfig holds the fixed values written by the mutator.
type MutatorConfig struct {
	TargetGroupID int64
	AssignComment string
	CloseComment  string
}

// TicketMutator performs the ticket updates of the pipeline.
type TicketMutator struct {
	tickets TicketAPI
	macros  MacroAPI
	cfg     MutatorConfig
	logger  *zap.Logger
}

// NewTicketMutator creates the mutator.
func NewTicketMutator(tickets TicketAPI, macros MacroAPI, cfg MutatorConfig, logger *zap.Logger) *TicketMutator {
	return &TicketMutator{tickets: tickets, macros: macros, cfg: cfg, logger: logger}
}

// AssignRequester makes userID the requester, clears the assignee and moves
// the ticket to the target group. It must run before ApplyMacro so that any
// notification the macro triggers reaches the new requester.
func (m *TicketMutator) AssignRequester(ctx context.Context, ticketID string, userID int64) error {
	update := domain.NewTicketUpdate().
		SetRequester(userID).
		ClearAssignee().
		SetGroup(m.cfg.TargetGroupID).
		SetComment(domain.CommentInput{Body: m.cfg.AssignComment, Public: false})

	if _, err := m.tickets.UpdateTicket(ctx, ticketID, update); err != nil {
		return fmt.Errorf("assign requester on ticket %s: %w", ticketID, err)
	}
	m.logger.Info("assigned requester",
		zap.String("ticket_id", ticketID),
		zap.Int64("user_id", userID),
		zap.Int64("group_id", m.cfg.TargetGroupID))
	return nil
}

// ApplyMacro applies macroID to the ticket. It first writes the patch the API
// computes for the macro and, if that is unavailable, translates the macro's
// actions itself. A missing macro is skipped without error.
func (m *TicketMutator) ApplyMacro(ctx context.Context, ticketID, macroID string) (MacroOutcome, error) {
	macro, err := m.macros.GetMacro(ctx, macroID)
	if err != nil {
		if zendesk.IsNotFound(err) {
			m.logger.Warn("macro not found; skipping", zap.String("macro_id", macroID))
			return MacroSkipped, nil
		}
		return "", fmt.Errorf("fetch macro %s: %w", macroID, err)
	}
	m.logger.Info("applying macro",
		zap.String("ticket_id", ticketID),
		zap.String("macro_id", macroID),
		zap.String("title", macro.Title),
		zap.Int("actions", len(macro.Actions)))

	err = m.executeRemote(ctx, ticketID, macroID)
	if err == nil {
		return MacroExecuted, nil
	}
	m.logger.Info("macro execution unavailable; applying actions manually",
		zap.String("ticket_id", ticketID), zap.Error(err))

	update := m.translateActions(macro.Actions)
	if update.Empty() {
		m.logger.Warn("macro has no applicable actions", zap.String("macro_id", macroID))
		return MacroNoop, nil
	}
	if _, err := m.tickets.UpdateTicket(ctx, ticketID, update); err != nil {
		return "", fmt.Errorf("apply macro %s actions to ticket %s: %w", macroID, ticketID, err)
	}
	return MacroManual, nil
}

func (m *TicketMutator) executeRemote(ctx context.Context, ticketID, macroID string) error {
	patch, err := m.macros.PreviewMacro(ctx, ticketID, macroID)
	if err != nil {
		return err
	}
	if patch == nil {
		return fmt.Errorf("macro %s returned no ticket patch", macroID)
	}
	_, err = m.tickets.UpdateTicket(ctx, ticketID, patch)
	return err
}

func (m *TicketMutator) translateActions(actions []domain.MacroAction) *domain.TicketUpdate {
	update := domain.NewTicketUpdate()
	for _, action := range actions {
		switch action.Field {
		case "comment_value":
			update.SetComment(domain.CommentInput{Body: action.StringValue(), Public: true})
		case "comment_value_html":
			body := action.StringValue()
			update.SetComment(domain.CommentInput{Body: body, HTMLBody: body, Public: true})
		case "status", "priority", "type":
			update.Set(action.Field, action.StringValue())
		case "group_id", "assignee_id":
			update.Set(action.Field, action.Value)
		default:
			m.logger.Info("ignoring unsupported macro action", zap.String("field", action.Field))
		}
	}
	return update
}

// Close sets the ticket to closed, not solved, so a customer reply opens a
// new ticket instead of reopening this one.
func (m *TicketMutator) Close(ctx context.Context, ticketID string) error {
	update := domain.NewTicketUpdate().
		SetStatus(domain.TicketStatusClosed).
		SetComment(domain.CommentInput{Body: m.cfg.CloseComment, Public: false})

	if _, err := m.tickets.UpdateTicket(ctx, ticketID, update); err != nil {
		return fmt.Errorf("close ticket %s: %w", ticketID, err)
	}
	m.logger.Info("closed ticket", zap.String("ticket_id", ticketID))
	return nil
}
