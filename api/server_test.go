package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresidus/tresidus-api/mocks"
)

func TestRouteNotFound(t *testing.T) {
	r, cleanup := newFileRouter(t)
	defer cleanup()

	w := perform(r, "GET", "/nope?x=1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	e := decode(t, w)
	assert.False(t, e.Success)
	assert.Equal(t, "Route not found", e.Error)
	assert.Equal(t, "Cannot GET /nope?x=1", e.Message)

	w = perform(r, "PATCH", "/api/consulting/r1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cannot PATCH /api/consulting/r1", decode(t, w).Message)
}

func TestPreflight(t *testing.T) {
	r, cleanup := newFileRouter(t)
	defer cleanup()

	for _, path := range []string{"/api/consulting", "/api/consulting/r1/communication", "/anything"} {
		w := perform(r, "OPTIONS", path, nil,
			"Origin", "https://tresidus.com",
			"Access-Control-Request-Method", "PUT")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	}
}

func TestCORSOnSimpleRequest(t *testing.T) {
	r, cleanup := newFileRouter(t)
	defer cleanup()

	w := perform(r, "GET", "/api/consulting", nil, "Origin", "https://tresidus.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestBannerAndPlaceholders(t *testing.T) {
	viper.Set("server.version", "1.0.0")
	defer viper.Set("server.version", "")

	r, cleanup := newFileRouter(t)
	defer cleanup()

	w := perform(r, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var banner struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Status    string            `json:"status"`
		Timestamp string            `json:"timestamp"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, decodeInto(w, &banner))
	assert.Equal(t, "Tresidus AI Backend API", banner.Message)
	assert.Equal(t, "1.0.0", banner.Version)
	assert.Equal(t, "running", banner.Status)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, banner.Timestamp)
	assert.Equal(t, "/api/consulting", banner.Endpoints["consulting"])

	w = perform(r, "GET", "/api/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Projects endpoint","data":[]}`, w.Body.String())

	w = perform(r, "GET", "/api/analytics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Analytics endpoint","data":{"totalProjects":9,"activeClients":12,"modelsInProduction":8}}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	r, cleanup := newFileRouter(t)
	defer cleanup()

	w := perform(r, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health struct {
		Status    string  `json:"status"`
		Uptime    float64 `json:"uptime"`
		Timestamp string  `json:"timestamp"`
	}
	require.NoError(t, decodeInto(w, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Uptime >= 0)
	assert.NotEmpty(t, health.Timestamp)
}

func TestHealthStoreDown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockRequestStore(ctl)
	m.EXPECT().Ping().Return(errors.New("no route to host")).Times(1)

	w := perform(newTestRouter(m), "GET", "/health", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w).Error)
}

func decodeInto(w *httptest.ResponseRecorder, obj interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), obj)
}
