package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"id": 1, "name": "Todo"},
			expectedBody: `{"id":1,"name":"Todo"}`,
		},
		{
			name:         "empty list",
			status:       http.StatusOK,
			data:         []int{},
			expectedBody: `[]`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithSuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/tasks/1", nil)
	w := httptest.NewRecorder()

	RespondWithSuccess(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/columns", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "name is required")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "name is required", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
	assert.Zero(t, resp.Code, "code is not serialized")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "server error logs at error", status: http.StatusInternalServerError, expectedLevel: "ERROR"},
		{name: "client error logs at debug", status: http.StatusBadRequest, expectedLevel: "DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)
			ctx := logger.WithLogger(context.Background(), log)
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			err := errors.New("dial postgres://kanban:s3cret@db:5432/kanban failed")
			RespondWithErrorAndLog(w, req, tc.status, "failed", err)

			assert.Equal(t, tc.status, w.Code)
			entries, parseErr := buf.GetLogEntries()
			require.NoError(t, parseErr)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.expectedLevel, entries[0]["level"])
			assert.NotContains(t, entries[0]["error"], "s3cret")
			assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
		})
	}
}
