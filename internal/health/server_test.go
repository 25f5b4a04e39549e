package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecturebot/internal/metrics"
)

type fakeState struct {
	halted bool
	admins int
}

func (f *fakeState) IsHalted() bool  { return f.halted }
func (f *fakeState) AdminCount() int { return f.admins }

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHeartbeat(t *testing.T) {
	srv := NewServer(":0", &fakeState{admins: 2}, nil, "test")

	rec, body := get(t, srv.Routes(), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bot is running", body["status"])
	assert.Equal(t, false, body["halted"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["version"])
}

func TestStatus_Running(t *testing.T) {
	srv := NewServer(":0", &fakeState{admins: 3}, nil, "test")

	rec, body := get(t, srv.Routes(), "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "RUNNING", body["bot"])
	assert.Equal(t, float64(3), body["admins"])
	assert.Equal(t, "test", body["environment"])
}

func TestStatus_Halted(t *testing.T) {
	srv := NewServer(":0", &fakeState{halted: true}, nil, "test")

	_, body := get(t, srv.Routes(), "/status")
	assert.Equal(t, "STOPPED", body["bot"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordProposal()

	srv := NewServer(":0", &fakeState{}, reg, "test")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lecturebot_proposals_total 1")
}

func TestMetricsDisabledWithoutGatherer(t *testing.T) {
	srv := NewServer(":0", &fakeState{}, nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
