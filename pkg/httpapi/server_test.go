package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anggasct/junction"
	"github.com/anggasct/junction/pkg/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, mode junction.Mode) (*httpapi.Server, *junction.ManualClock) {
	t.Helper()
	clock := junction.NewManualClock(testStart)
	controller, err := junction.NewBuilder().
		Mode(mode).
		GreenTime(2 * time.Second).
		YellowTime(1 * time.Second).
		ReleaseInterval(100 * time.Millisecond).
		WithClock(clock).
		Build()
	require.NoError(t, err)
	return httpapi.NewServer(controller, clock), clock
}

func doJSON(t *testing.T, server *httpapi.Server, method, path, body string) (*httptest.ResponseRecorder, httpapi.StatePayload) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var payload httpapi.StatePayload
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestServer_Status(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, payload := doJSON(t, server, http.MethodGet, "/api/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vehicle", payload.Mode)
	assert.Equal(t, "idle", payload.Phase)
	assert.False(t, payload.Running)
	assert.Nil(t, payload.CurrentLane)
	assert.Equal(t, map[string]int{"N": 0, "E": 0, "S": 0, "W": 0}, payload.Counts)
	assert.InDelta(t, 1.0, payload.YellowTime, 1e-9)
	assert.Empty(t, payload.Logs)
	assert.NotEmpty(t, payload.ID)
}

func TestServer_SetCountsValidation(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	// Negative and fractional entries are dropped per direction without
	// failing the rest of the request
	rec, payload := doJSON(t, server, http.MethodPost, "/api/set_counts",
		`{"N": 3, "E": -2, "S": 1.5, "W": 2, "X": 9}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"N": 3, "E": 0, "S": 0, "W": 2}, payload.Counts)
	assert.Equal(t, map[string]int{"N": 3, "E": 0, "S": 0, "W": 2}, payload.Waiting)
}

func TestServer_ControlAndTickFlow(t *testing.T) {
	server, clock := newTestServer(t, junction.ModeVehicleActuated)

	doJSON(t, server, http.MethodPost, "/api/set_counts", `{"N": 2}`)
	rec, payload := doJSON(t, server, http.MethodPost, "/api/control", `{"action": "start"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, payload.Running)
	require.NotEmpty(t, payload.Logs)
	assert.Equal(t, "[08:00:00] Simulation started", payload.Logs[0])

	clock.Advance(100 * time.Millisecond)
	_, payload = doJSON(t, server, http.MethodPost, "/api/tick", "")
	assert.Equal(t, "green", payload.Phase)
	require.NotNil(t, payload.CurrentLane)
	assert.Equal(t, "N", *payload.CurrentLane)

	clock.Advance(150 * time.Millisecond)
	_, payload = doJSON(t, server, http.MethodPost, "/api/tick", "")
	assert.Equal(t, 1, payload.Served)
	assert.Equal(t, 1, payload.Waiting["N"])

	clock.Advance(150 * time.Millisecond)
	_, payload = doJSON(t, server, http.MethodPost, "/api/tick", "")
	assert.Equal(t, 2, payload.Served)
	assert.Equal(t, "yellow", payload.Phase)
	assert.Equal(t, "[08:00:00] Cleared N, Yellow.", payload.Logs[0])
}

func TestServer_SetModeRejectsUnknown(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/set_mode", `{"mode": "adaptive"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid mode"}`, rec.Body.String())

	rec, payload := doJSON(t, server, http.MethodPost, "/api/set_mode", `{"mode": "standard"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "standard", payload.Mode)
	assert.Equal(t, "[08:00:00] Switched mode to standard", payload.Logs[0])
}

func TestServer_ConfigRejectsNonPositive(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/config", `{"release_interval": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, payload := doJSON(t, server, http.MethodPost, "/api/config",
		`{"green_time": 12, "release_interval": 0.25}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 12.0, payload.GreenTime, 1e-9)
	assert.InDelta(t, 0.25, payload.ReleaseInterval, 1e-9)
	assert.InDelta(t, 1.0, payload.YellowTime, 1e-9)
}

func TestServer_Preset(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, payload := doJSON(t, server, http.MethodPost, "/api/preset", `{"preset": [3, -1, 2, 0]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"N": 3, "E": 0, "S": 2, "W": 0}, payload.Counts)
	assert.Equal(t, "[08:00:00] Preset vehicles updated", payload.Logs[0])
}

func TestServer_ControlRejectsUnknownAction(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/control", `{"action": "explode"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid action"}`, rec.Body.String())
}

func TestServer_MethodGuards(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/status", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec, _ = doJSON(t, server, http.MethodGet, "/api/tick", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_CORS(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	req := httptest.NewRequest(http.MethodOptions, "/api/status", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec, _ = doJSON(t, server, http.MethodGet, "/api/status", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_BadJSONBody(t *testing.T) {
	server, _ := newTestServer(t, junction.ModeVehicleActuated)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/control", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
