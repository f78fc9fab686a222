package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	t.Run("Generates a correlation id and logs the status", func(t *testing.T) {
		buf.Reset()

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middleware.LoggerFromContext(r.Context()).Info("inside handler")
			w.WriteHeader(http.StatusCreated)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/products", nil))

		assert.Equal(t, http.StatusCreated, rr.Code)

		id := rr.Header().Get(middleware.RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Contains(t, buf.String(), `"correlation_id":"`+id+`"`)
		assert.Contains(t, buf.String(), "inside handler")
		assert.Contains(t, buf.String(), `"http_status":201`)
	})

	t.Run("Keeps an incoming correlation id", func(t *testing.T) {
		buf.Reset()

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), "abc-123")
	})
}

func TestLoggerFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.LoggerFromContext(context.Background()))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Equal(t, logger, middleware.LoggerFromContext(middleware.WithLogger(context.Background(), logger)))
}
