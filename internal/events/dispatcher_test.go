package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	var calls []string
	d.Subscribe(EventMacroFailed, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventMacroFailed, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventUserCreated, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), New(EventMacroFailed, "42", MacroPayload{MacroID: "7"}))

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second:42"}, calls)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventTicketSkipped, "9", TicketSkippedPayload{Reason: "Missing target tag"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventTicketSkipped, e.Type)
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	reached := false
	d.Subscribe(EventTicketFailed, func(context.Context, Event) error {
		panic("subscriber bug")
	})
	d.Subscribe(EventTicketFailed, func(context.Context, Event) error {
		reached = true
		return nil
	})

	assert.NotPanics(t, func() {
		assert.NoError(t, d.Publish(context.Background(), New(EventTicketFailed, "1", TicketFailedPayload{Reason: "x"})))
	})
	assert.True(t, reached)
}
