package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/domain"
	"github.com/spec-kit/contact-bridge/internal/events"
)

// ProcessorConfig holds the pipeline's fixed identifiers.
type ProcessorConfig struct {
	TargetTag string
	MacroID   string
}

// ProcessorDependencies bundles collaborators. Locker and Dispatcher are optional.
type ProcessorDependencies struct {
	Tickets    TicketAPI
	Extractor  ContactExtractor
	Resolver   *UserResolver
	Mutator    *TicketMutator
	Locker     TicketLocker
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketProcessor runs the contact pipeline for one ticket at a time:
// extract contact, resolve user, assign requester, apply macro, close.
type TicketProcessor struct {
	cfg        ProcessorConfig
	tickets    TicketAPI
	extractor  ContactExtractor
	resolver   *UserResolver
	mutator    *TicketMutator
	locker     TicketLocker
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketProcessor creates the processor.
func NewTicketProcessor(cfg ProcessorConfig, deps ProcessorDependencies) *TicketProcessor {
	return &TicketProcessor{
		cfg:        cfg,
		tickets:    deps.Tickets,
		extractor:  deps.Extractor,
		resolver:   deps.Resolver,
		mutator:    deps.Mutator,
		locker:     deps.Locker,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Process runs the pipeline for ticketID. It never returns an error or
// panics; every failure is reported as an unsuccessful result.
func (p *TicketProcessor) Process(ctx context.Context, ticketID string) (result domain.ProcessResult) {
	logger := p.logger.With(zap.String("ticket_id", ticketID))
	logger.Info("processing ticket")

	defer func() {
		if r := recover(); r != nil {
			logger.Error("ticket pipeline panicked", zap.Any("panic", r), zap.Stack("stack"))
			result = p.fail(ctx, ticketID, fmt.Errorf("%v", r))
		}
	}()

	if p.locker != nil {
		release, ok, err := p.locker.Acquire(ctx, ticketID)
		switch {
		case err != nil:
			logger.Warn("ticket lock unavailable; continuing without it", zap.Error(err))
		case !ok:
			logger.Info("ticket is locked by another run")
			return p.skip(ctx, ticketID, domain.ReasonAlreadyRunning)
		default:
			defer release()
		}
	}

	res, err := p.run(ctx, logger, ticketID)
	if err != nil {
		logger.Error("ticket processing failed", zap.Error(err))
		return p.fail(ctx, ticketID, err)
	}
	return res
}

func (p *TicketProcessor) run(ctx context.Context, logger *zap.Logger, ticketID string) (domain.ProcessResult, error) {
	ticket, err := p.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return domain.ProcessResult{}, fmt.Errorf("fetch ticket %s: %w", ticketID, err)
	}

	if !ticket.HasTag(p.cfg.TargetTag) {
		logger.Info("ticket lacks target tag; skipping", zap.String("tag", p.cfg.TargetTag))
		return p.skip(ctx, ticketID, domain.ReasonMissingTag), nil
	}

	if len(ticket.Comments) == 0 {
		comments, err := p.tickets.ListComments(ctx, ticketID)
		if err != nil {
			logger.Warn("could not list comments; using the description only", zap.Error(err))
		} else {
			ticket.Comments = comments
		}
	}

	contact := p.extractor.Extract(ticketContent(ticket))
	if contact.Email == "" {
		logger.Info("no email found in ticket")
		return p.skip(ctx, ticketID, domain.ReasonNoEmail), nil
	}
	if !contact.HasName() {
		logger.Info("no name found in ticket")
		return p.skip(ctx, ticketID, domain.ReasonNoName), nil
	}

	user, created, err := p.resolver.Resolve(ctx, contact)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	if created {
		p.publish(ctx, events.New(events.EventUserCreated, ticketID, events.UserCreatedPayload{
			UserID:    user.ID,
			Email:     user.Email,
			WithPhone: user.Phone != "",
		}))
	}

	if err := p.mutator.AssignRequester(ctx, ticketID, user.ID); err != nil {
		return domain.ProcessResult{}, err
	}

	outcome, err := p.applyMacro(ctx, ticketID)
	if err != nil {
		logger.Warn("could not apply macro; closing anyway",
			zap.String("macro_id", p.cfg.MacroID), zap.Error(err))
		p.publish(ctx, events.New(events.EventMacroFailed, ticketID, events.MacroPayload{
			MacroID: p.cfg.MacroID,
			Error:   err.Error(),
		}))
	} else {
		p.publish(ctx, events.New(events.EventMacroApplied, ticketID, events.MacroPayload{
			MacroID:  p.cfg.MacroID,
			Strategy: string(outcome),
		}))
	}

	if err := p.mutator.Close(ctx, ticketID); err != nil {
		return domain.ProcessResult{}, err
	}

	p.publish(ctx, events.New(events.EventTicketProcessed, ticketID, events.TicketProcessedPayload{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserCreated: created,
	}))
	return domain.ProcessResult{
		Success:     true,
		UserID:      user.ID,
		UserEmail:   user.Email,
		ContactInfo: &contact,
	}, nil
}

// applyMacro isolates the macro step so that even a panic in it cannot stop
// the ticket from being closed.
func (p *TicketProcessor) applyMacro(ctx context.Context, ticketID string) (outcome MacroOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("macro step panicked: %v", r)
		}
	}()
	return p.mutator.ApplyMacro(ctx, ticketID, p.cfg.MacroID)
}

func (p *TicketProcessor) skip(ctx context.Context, ticketID, reason string) domain.ProcessResult {
	p.publish(ctx, events.New(events.EventTicketSkipped, ticketID, events.TicketSkippedPayload{Reason: reason}))
	return domain.ProcessResult{Success: false, Reason: reason}
}

func (p *TicketProcessor) fail(ctx context.Context, ticketID string, err error) domain.ProcessResult {
	p.publish(ctx, events.New(events.EventTicketFailed, ticketID, events.TicketFailedPayload{Reason: err.Error()}))
	return domain.ProcessResult{Success: false, Reason: err.Error()}
}

func (p *TicketProcessor) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	_ = p.dispatcher.Publish(ctx, event)
}

// ticketContent joins the description with every comment, preferring the
// HTML body so that tables and highlights survive.
func ticketContent(ticket *domain.Ticket) string {
	parts := make([]string, 0, len(ticket.Comments)+1)
	parts = append(parts, ticket.Description)
	for _, c := range ticket.Comments {
		if c.HTMLBody != "" {
			parts = append(parts, c.HTMLBody)
		} else {
			parts = append(parts, c.Body)
		}
	}
	return strings.Join(parts, " ")
}
