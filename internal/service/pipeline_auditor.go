package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/events"
	"github.com/spec-kit/contact-bridge/internal/observability"
)

// PipelineAuditor records pipeline events in the log and in metrics.
type PipelineAuditor struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewPipelineAuditor creates the auditor.
func NewPipelineAuditor(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *PipelineAuditor {
	return &PipelineAuditor{dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *PipelineAuditor) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketProcessed, a.handleTicketProcessed)
	a.dispatcher.Subscribe(events.EventTicketSkipped, a.handleTicketSkipped)
	a.dispatcher.Subscribe(events.EventTicketFailed, a.handleTicketFailed)
	a.dispatcher.Subscribe(events.EventUserCreated, a.handleUserCreated)
	a.dispatcher.Subscribe(events.EventMacroApplied, a.handleMacroApplied)
	a.dispatcher.Subscribe(events.EventMacroFailed, a.handleMacroFailed)
}

func (a *PipelineAuditor) handleTicketProcessed(_ context.Context, event events.Event) error {
	a.metrics.RecordPipeline("processed")
	a.logger.Info("TicketProcessed", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}

func (a *PipelineAuditor) handleTicketSkipped(_ context.Context, event events.Event) error {
	a.metrics.RecordPipeline("skipped")
	a.logger.Info("TicketSkipped", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}

func (a *PipelineAuditor) handleTicketFailed(_ context.Context, event events.Event) error {
	a.metrics.RecordPipeline("failed")
	a.logger.Warn("TicketFailed", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}

func (a *PipelineAuditor) handleUserCreated(_ context.Context, event events.Event) error {
	a.metrics.RecordUserCreated()
	a.logger.Info("UserCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}

func (a *PipelineAuditor) handleMacroApplied(_ context.Context, event events.Event) error {
	strategy := "unknown"
	if payload, ok := event.Payload.(events.MacroPayload); ok && payload.Strategy != "" {
		strategy = payload.Strategy
	}
	a.metrics.RecordMacro(strategy)
	a.logger.Debug("MacroApplied", zap.String("ticket_id", event.TicketID), zap.String("strategy", strategy))
	return nil
}

func (a *PipelineAuditor) handleMacroFailed(_ context.Context, event events.Event) error {
	a.metrics.RecordMacro("failed")
	a.logger.Warn("MacroFailed", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}
