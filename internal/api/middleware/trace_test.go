package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTrace(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var seenTraceID string
	handler := chimw.RequestID(Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})))

	t.Run("generates trace id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/columns", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Len(t, seenTraceID, 32)
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
		logger.AssertLogField(t, buf, "trace_id", seenTraceID)
		logger.AssertLogContains(t, buf, "request_id")
		logger.AssertLogField(t, buf, "status", float64(http.StatusTeapot))
	})

	t.Run("reuses caller trace id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(shared.TraceIDHeader, "client-trace-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "client-trace-1", seenTraceID)
		assert.Equal(t, "client-trace-1", w.Header().Get(shared.TraceIDHeader))
	})
}
