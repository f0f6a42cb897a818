package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"
)

func testTodoistServer(t *testing.T, body string, code int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Header.Get("Authorization"), "Bearer test-token")
		assert.Equal(t, r.URL.Query().Get("filter"), "today")
		w.WriteHeader(code)
		fmt.Fprint(w, body)
	}))
}

func TestTodoistMissingToken(t *testing.T) {
	rt, _, _ := testRuntime()

	tt := &todoistTasks{zone: time.UTC}
	records, err := tt.fetchToday(rt)

	// not configured is not an error, it is one explanatory row
	assert.NilError(t, err)
	assert.Equal(t, len(records), 1)
	assert.Assert(t, strings.Contains(records[0].Text, eTodoToken))
	assert.Assert(t, records[0].Due == nil)
}

func TestTodoistFetchToday(t *testing.T) {
	rt, _, _ := testRuntime()

	body := `[
		{"content": "Buy milk", "due": {"date": "2020-01-15", "datetime": "2020-01-15T07:30:00Z"}},
		{"content": "Walk the dog"}
	]`
	srv := testTodoistServer(t, body, http.StatusOK)
	defer srv.Close()

	tt := &todoistTasks{token: "test-token", url: srv.URL, zone: time.UTC, client: srv.Client()}
	records, err := tt.fetchToday(rt)

	assert.NilError(t, err)
	assert.Equal(t, len(records), 2)
	assert.Equal(t, records[0].Text, "Buy milk")
	assert.Equal(t, records[0].Due.String(), "07:30")
	assert.Equal(t, records[1].Text, "Walk the dog")
	assert.Assert(t, records[1].Due == nil)
}

func TestTodoistNaiveDueDatetime(t *testing.T) {
	rt, _, _ := testRuntime()

	// no offset on the wire, our zone gets attached
	body := `[{"content": "Wake up", "due": {"datetime": "2020-01-15T06:45:00"}}]`
	srv := testTodoistServer(t, body, http.StatusOK)
	defer srv.Close()

	tt := &todoistTasks{token: "test-token", url: srv.URL, zone: time.UTC, client: srv.Client()}
	records, err := tt.fetchToday(rt)

	assert.NilError(t, err)
	assert.Equal(t, records[0].Due.String(), "06:45")
}

func TestTodoistServerError(t *testing.T) {
	rt, _, _ := testRuntime()

	srv := testTodoistServer(t, "gateway timeout", http.StatusBadGateway)
	defer srv.Close()

	tt := &todoistTasks{token: "test-token", url: srv.URL, zone: time.UTC, client: srv.Client()}
	_, err := tt.fetchToday(rt)

	assert.Assert(t, err != nil)
}

func TestTodoistNetworkError(t *testing.T) {
	rt, _, _ := testRuntime()

	srv := testTodoistServer(t, "[]", http.StatusOK)
	url := srv.URL
	srv.Close()

	tt := &todoistTasks{token: "test-token", url: url, zone: time.UTC, client: &http.Client{Timeout: time.Second}}
	_, err := tt.fetchToday(rt)

	assert.Assert(t, err != nil)
}

func TestTodoistBadJSON(t *testing.T) {
	rt, _, _ := testRuntime()

	srv := testTodoistServer(t, `{"not": "an array"}`, http.StatusOK)
	defer srv.Close()

	tt := &todoistTasks{token: "test-token", url: srv.URL, zone: time.UTC, client: srv.Client()}
	_, err := tt.fetchToday(rt)

	assert.Assert(t, err != nil)
}
