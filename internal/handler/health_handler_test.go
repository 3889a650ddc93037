package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/handler"
)

func TestHealthHandler(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		deps := newTestDeps()
		deps.checks["db"] = ok
		deps.checks["redis"] = ok
		resp, err := deps.app().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body handler.HealthResponse
		decode(t, resp, &body)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, map[string]string{"db": "ok", "redis": "ok"}, body.Checks)
	})

	t.Run("degraded", func(t *testing.T) {
		deps := newTestDeps()
		deps.checks["db"] = ok
		deps.checks["redis"] = down
		resp, err := deps.app().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var body handler.HealthResponse
		decode(t, resp, &body)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "down", body.Checks["redis"])
	})
}
