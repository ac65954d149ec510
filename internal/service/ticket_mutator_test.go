package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMutator(t *testing.T, fz *fakeZendesk) *TicketMutator {
	t.Helper()
	client := fz.client(t)
	return NewTicketMutator(client, client, MutatorConfig{TargetGroupID: testGroupID, AssignComment: "a", CloseComment: "c"}, zap.NewNop())
}

func TestApplyMacroManualTranslation(t *testing.T) {
	fz := newFakeZendesk()
	fz.applyStatus = http.StatusNotFound
	m := newTestMutator(t, fz)

	outcome, err := m.ApplyMacro(context.Background(), testTicketID, testMacroID)

	require.NoError(t, err)
	assert.Equal(t, MacroManual, outcome)
	writes := fz.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, map[string]any{
		"comment": map[string]any{
			"body":      "<p>Welcome!</p>",
			"html_body": "<p>Welcome!</p>",
			"public":    true,
		},
		"status":   "solved",
		"group_id": float64(555),
	}, writes[0].Body["ticket"])
}

func TestApplyMacroPlainComment(t *testing.T) {
	fz := newFakeZendesk()
	fz.applyResult = map[string]any{}
	fz.macro["actions"] = []map[string]any{
		{"field": "comment_value", "value": []string{"channel:all", "Thanks for signing up"}},
		{"field": "priority", "value": "low"},
		{"field": "type", "value": "task"},
		{"field": "assignee_id", "value": "current_user"},
	}
	m := newTestMutator(t, fz)

	outcome, err := m.ApplyMacro(context.Background(), testTicketID, testMacroID)

	require.NoError(t, err)
	assert.Equal(t, MacroManual, outcome)
	assert.Equal(t, map[string]any{
		"comment":     map[string]any{"body": "Thanks for signing up", "public": true},
		"priority":    "low",
		"type":        "task",
		"assignee_id": "current_user",
	}, fz.writes()[0].Body["ticket"])
}

func TestApplyMacroWithoutApplicableActionsIsNoop(t *testing.T) {
	fz := newFakeZendesk()
	fz.applyStatus = http.StatusInternalServerError
	fz.macro["actions"] = []map[string]any{{"field": "set_tags", "value": "x"}}
	m := newTestMutator(t, fz)

	outcome, err := m.ApplyMacro(context.Background(), testTicketID, testMacroID)

	require.NoError(t, err)
	assert.Equal(t, MacroNoop, outcome)
	assert.Empty(t, fz.writes())
}

func TestApplyMacroExecutedPatchFailureFallsBack(t *testing.T) {
	fz := newFakeZendesk()
	fz.putStatuses = []int{http.StatusUnprocessableEntity, http.StatusOK}
	m := newTestMutator(t, fz)

	outcome, err := m.ApplyMacro(context.Background(), testTicketID, testMacroID)

	require.NoError(t, err)
	assert.Equal(t, MacroManual, outcome)
	assert.Len(t, fz.writes(), 2)
}

func TestApplyMacroFetchErrorIsReturned(t *testing.T) {
	fz := newFakeZendesk()
	fz.macroStatus = http.StatusInternalServerError
	m := newTestMutator(t, fz)

	_, err := m.ApplyMacro(context.Background(), testTicketID, testMacroID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch macro 77")
}
