package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/assert"
)

func testWebService(t *testing.T) (*webService, runtimeConfig, func()) {
	rt, _, _ := testRuntime()

	// keep favorite writes out of the shared test conf path
	path, cleanup := testFavoritesPath(t)
	rt.favorites = loadFavorites(path)

	return &webService{rt: rt}, rt, cleanup
}

func testRequest(h *webService, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.router().ServeHTTP(w, req)
	return w
}

func TestWebSetAlarm(t *testing.T) {
	h, rt, cleanup := testWebService(t)
	defer cleanup()

	w := testRequest(h, "POST", "/api/alarm", `{"time": "07:30"}`)
	assert.Equal(t, w.Code, http.StatusOK)

	msg, _ := almStateRead(t, rt.comms.alarm)
	assert.Equal(t, msg.ID, msgArm)
	tod, err := toTimeOfDay(msg.val)
	assert.NilError(t, err)
	assert.Equal(t, tod.String(), "07:30")
}

func TestWebSetAlarmBadTime(t *testing.T) {
	h, rt, cleanup := testWebService(t)
	defer cleanup()

	w := testRequest(h, "POST", "/api/alarm", `{"time": "25:99"}`)
	assert.Equal(t, w.Code, http.StatusBadRequest)

	select {
	case <-rt.comms.alarm:
		t.Error("no message should be sent for a bad time")
	default:
	}
}

func TestWebClearAndStopAlarm(t *testing.T) {
	h, rt, cleanup := testWebService(t)
	defer cleanup()

	w := testRequest(h, "DELETE", "/api/alarm", "")
	assert.Equal(t, w.Code, http.StatusOK)
	msg, _ := almStateRead(t, rt.comms.alarm)
	assert.Equal(t, msg.ID, msgDisarm)

	w = testRequest(h, "POST", "/api/alarm/stop", "")
	assert.Equal(t, w.Code, http.StatusOK)
	msg, _ = almStateRead(t, rt.comms.alarm)
	assert.Equal(t, msg.ID, msgStop)
}

func TestWebFavorites(t *testing.T) {
	h, rt, cleanup := testWebService(t)
	defer cleanup()

	w := testRequest(h, "POST", "/api/favorites/0", `{"time": "06:45"}`)
	assert.Equal(t, w.Code, http.StatusOK)

	fav := rt.favorites.get(0)
	assert.Assert(t, fav != nil)
	assert.Equal(t, fav.String(), "06:45")

	w = testRequest(h, "GET", "/api/favorites", "")
	assert.Equal(t, w.Code, http.StatusOK)
	var resp map[string][]string
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp["favorites"][0], "06:45")
	assert.Equal(t, resp["favorites"][1], "")

	w = testRequest(h, "POST", "/api/favorites/7", `{"time": "06:45"}`)
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestWebStatus(t *testing.T) {
	h, rt, cleanup := testWebService(t)
	defer cleanup()

	rt.board.update(func(d *dashboardStatus) {
		d.Clock = "12:34:56"
		d.AlarmTime = "07:30"
		d.Tasks = []string{"Buy milk"}
	})

	w := testRequest(h, "GET", "/api/status", "")
	assert.Equal(t, w.Code, http.StatusOK)

	var resp statusResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Clock, "12:34:56")
	assert.Equal(t, resp.AlarmTime, "07:30")
	assert.Equal(t, resp.Tasks[0], "Buy milk")
	assert.Equal(t, len(resp.Favorites), 2)
}

func TestWebRefresh(t *testing.T) {
	h, rt, cleanup := testWebService(t)
	defer cleanup()

	w := testRequest(h, "POST", "/api/refresh", "")
	assert.Equal(t, w.Code, http.StatusOK)

	msg, _ := feedMsgRead(t, rt.comms.feeds)
	assert.Equal(t, msg.ID, msgRefresh)
}
