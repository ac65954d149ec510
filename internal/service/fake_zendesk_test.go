package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/config"
	"github.com/spec-kit/contact-bridge/internal/zendesk"
)

const (
	testTicketID = "12"
	testMacroID  = "77"
	testGroupID  = int64(31112854673047)
	testTag      = "ev_new_message"
)

const signupHTML = `<table>
<tr><td>First Name</td><td>Jane</td></tr>
<tr><td>Last Name</td><td>Doe</td></tr>
<tr><td>Company Email</td><td>jane@example.org</td></tr>
<tr><td>Phone</td><td>1-555-123-4567</td></tr>
</table>`

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]any
}

func (c recordedCall) String() string {
	return c.Method + " " + c.Path
}

// fakeZendesk is an in-memory helpdesk API that records every request.
type fakeZendesk struct {
	mu    sync.Mutex
	calls []recordedCall

	ticket         map[string]any
	listComments   []map[string]any
	commentsStatus int
	users          []map[string]any
	searchStatus   int
	createStatus   int
	macro          map[string]any
	macroStatus    int
	applyStatus    int
	applyResult    map[string]any
	putStatuses    []int
}

func newFakeZendesk() *fakeZendesk {
	return &fakeZendesk{
		ticket: map[string]any{
			"id":          12,
			"tags":        []string{"signup", testTag},
			"description": "New signup",
			"comments": []map[string]any{
				{"id": 1, "body": "plain copy", "html_body": signupHTML},
			},
		},
		macro: map[string]any{
			"id":    77,
			"title": "EV welcome",
			"actions": []map[string]any{
				{"field": "comment_value_html", "value": "<p>Welcome!</p>"},
				{"field": "status", "value": "solved"},
				{"field": "group_id", "value": 555},
				{"field": "set_tags", "value": "welcomed"},
			},
		},
		applyResult: map[string]any{"ticket": map[string]any{"status": "solved", "comment": map[string]any{"body": "Welcome!", "public": true}}},
	}
}

func (f *fakeZendesk) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := recordedCall{Method: r.Method, Path: r.URL.Path}
	if body, _ := io.ReadAll(r.Body); len(body) > 0 {
		_ = json.Unmarshal(body, &call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	ticketPath := fmt.Sprintf("/api/v2/tickets/%s.json", testTicketID)
	switch {
	case r.Method == http.MethodGet && r.URL.Path == ticketPath:
		respond(w, http.StatusOK, map[string]any{"ticket": f.ticket})
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/comments.json"):
		respond(w, statusOr(f.commentsStatus), map[string]any{"comments": nonNil(f.listComments)})
	case r.Method == http.MethodGet && r.URL.Path == "/api/v2/users/search.json":
		respond(w, statusOr(f.searchStatus), map[string]any{"users": nonNil(f.users)})
	case r.Method == http.MethodPost && r.URL.Path == "/api/v2/users.json":
		status := f.createStatus
		if status == 0 {
			status = http.StatusCreated
		}
		user, _ := call.Body["user"].(map[string]any)
		if user == nil {
			user = map[string]any{}
		}
		user["id"] = 101
		respond(w, status, map[string]any{"user": user})
	case r.Method == http.MethodGet && r.URL.Path == "/api/v2/macros/"+testMacroID+".json":
		respond(w, statusOr(f.macroStatus), map[string]any{"macro": f.macro})
	case r.Method == http.MethodGet && r.URL.Path == fmt.Sprintf("/api/v2/tickets/%s/macros/%s/apply.json", testTicketID, testMacroID):
		respond(w, statusOr(f.applyStatus), map[string]any{"result": f.applyResult})
	case r.Method == http.MethodPut && r.URL.Path == ticketPath:
		respond(w, f.nextPutStatus(), map[string]any{"ticket": map[string]any{"id": 12}})
	default:
		respond(w, http.StatusNotFound, map[string]any{"error": "RecordNotFound"})
	}
}

func (f *fakeZendesk) nextPutStatus() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.putStatuses) == 0 {
		return http.StatusOK
	}
	status := f.putStatuses[0]
	f.putStatuses = f.putStatuses[1:]
	return status
}

func (f *fakeZendesk) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

func (f *fakeZendesk) writes() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.Method != http.MethodGet {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeZendesk) client(t *testing.T) *zendesk.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return zendesk.NewClient(config.ZendeskConfig{Domain: srv.URL, Email: "bot@acme.com", APIToken: "tok"}, zap.NewNop())
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func statusOr(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}

func nonNil(users []map[string]any) []map[string]any {
	if users == nil {
		return []map[string]any{}
	}
	return users
}
