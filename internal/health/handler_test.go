// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, path string) (int, ReadinessResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestReadinessWithoutRedis(t *testing.T) {
	code, body := get(t, newRouter(NewHandler(pinger{}, nil)), "/readyz")

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, body.Checks, 1)
	assert.Equal(t, "database", body.Checks[0].Name)
}

func TestReadinessDegraded(t *testing.T) {
	h := NewHandler(pinger{}, pinger{err: errors.New("down")})
	code, body := get(t, newRouter(h), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 2)
	assert.True(t, body.Checks[0].Healthy)
	assert.False(t, body.Checks[1].Healthy)
}

func TestShutdownFlipsProbes(t *testing.T) {
	h := NewHandler(pinger{}, nil)
	r := newRouter(h)

	code, _ := get(t, r, "/livez")
	assert.Equal(t, http.StatusOK, code)

	h.SetShutdown(true)

	code, body := get(t, r, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "shutting_down", body.Status)

	code, _ = get(t, r, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
