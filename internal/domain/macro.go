package domain

import (
	"bytes"
	"encoding/json"
)

// Macro is a named list of field mutations defined in the helpdesk.
type Macro struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Active      bool          `json:"active"`
	Description string        `json:"description"`
	Actions     []MacroAction `json:"actions"`
}

// MacroAction sets one ticket field. Value is kept raw since the helpdesk
// uses strings, numbers and arrays depending on the field.
type MacroAction struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// StringValue renders the action value as text. For array values the last
// element wins; comment actions use [channel, text].
func (a MacroAction) StringValue() string {
	raw := bytes.TrimSpace(a.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		return MacroAction{Value: list[len(list)-1]}.StringValue()
	}
	return string(raw)
}
