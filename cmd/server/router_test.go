package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
)

func serve(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	rec := serve(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(shared.TraceIDHeader))
}

func TestRouter_BoardRoutes(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	rec := serve(t, router, http.MethodPost, "/columns", `{"name":"Todo"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var column domain.Column
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &column))

	rec = serve(t, router, http.MethodPost, "/tasks", `{"title":"Write spec","columnId":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, router, http.MethodGet, "/tasks", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Equal(t, []domain.Task{{ID: 1, Title: "Write spec", ColumnID: column.ID}}, tasks)

	rec = serve(t, router, http.MethodDelete, "/columns/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/tasks", "", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_TraceIDPropagates(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	rec := serve(t, router, http.MethodPost, "/columns", `{}`, map[string]string{shared.TraceIDHeader: "abc123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "abc123", rec.Header().Get(shared.TraceIDHeader))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc123", body.TraceID)
}

func TestRouter_CORS(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	rec := serve(t, router, http.MethodOptions, "/columns", "", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	rec = serve(t, router, http.MethodGet, "/columns", "", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
