package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacroActionStringValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "string", raw: `"closed"`, want: "closed"},
		{name: "number", raw: `31112854673047`, want: "31112854673047"},
		{name: "channel array", raw: `["channel:all","Welcome aboard"]`, want: "Welcome aboard"},
		{name: "empty array", raw: `[]`, want: ""},
		{name: "null", raw: `null`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := MacroAction{Field: "x", Value: json.RawMessage(tt.raw)}
			assert.Equal(t, tt.want, action.StringValue())
		})
	}
}

func TestTicketUpdateMarshalsExplicitNull(t *testing.T) {
	update := NewTicketUpdate().SetRequester(7).ClearAssignee().SetGroup(9)
	body, err := json.Marshal(update)
	require.NoError(t, err)
	assert.JSONEq(t, `{"requester_id":7,"assignee_id":null,"group_id":9}`, string(body))
	assert.True(t, NewTicketUpdate().Empty())
}

func TestContactInfoName(t *testing.T) {
	c := ContactInfo{LastName: "Doe"}
	assert.True(t, c.HasName())
	assert.Equal(t, "Doe", c.FullName())
	assert.False(t, ContactInfo{Email: "a@b.com"}.HasName())
}
