package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockBoardService is a mock implementation of service.BoardService for testing
type MockBoardService struct {
	ListColumnsFn  func(ctx context.Context) ([]domain.Column, error)
	ListTasksFn    func(ctx context.Context) ([]domain.Task, error)
	CreateColumnFn func(ctx context.Context, name string) (*domain.Column, error)
	RenameColumnFn func(ctx context.Context, id int64, name string) error
	DeleteColumnFn func(ctx context.Context, id int64) error
	CreateTaskFn   func(ctx context.Context, title string, columnID int64) (*domain.Task, error)
	RenameTaskFn   func(ctx context.Context, id int64, title string) error
	MoveTaskFn     func(ctx context.Context, id int64, columnID int64) error
	DeleteTaskFn   func(ctx context.Context, id int64) error
}

var _ service.BoardService = (*MockBoardService)(nil)

func (m *MockBoardService) ListColumns(ctx context.Context) ([]domain.Column, error) {
	if m.ListColumnsFn != nil {
		return m.ListColumnsFn(ctx)
	}
	return []domain.Column{}, nil
}

func (m *MockBoardService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []domain.Task{}, nil
}

func (m *MockBoardService) CreateColumn(ctx context.Context, name string) (*domain.Column, error) {
	if m.CreateColumnFn != nil {
		return m.CreateColumnFn(ctx, name)
	}
	return &domain.Column{ID: 1, Name: name}, nil
}

func (m *MockBoardService) RenameColumn(ctx context.Context, id int64, name string) error {
	if m.RenameColumnFn != nil {
		return m.RenameColumnFn(ctx, id, name)
	}
	return nil
}

func (m *MockBoardService) DeleteColumn(ctx context.Context, id int64) error {
	if m.DeleteColumnFn != nil {
		return m.DeleteColumnFn(ctx, id)
	}
	return nil
}

func (m *MockBoardService) CreateTask(ctx context.Context, title string, columnID int64) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, columnID)
	}
	return &domain.Task{ID: 1, Title: title, ColumnID: columnID}, nil
}

func (m *MockBoardService) RenameTask(ctx context.Context, id int64, title string) error {
	if m.RenameTaskFn != nil {
		return m.RenameTaskFn(ctx, id, title)
	}
	return nil
}

func (m *MockBoardService) MoveTask(ctx context.Context, id int64, columnID int64) error {
	if m.MoveTaskFn != nil {
		return m.MoveTaskFn(ctx, id, columnID)
	}
	return nil
}

func (m *MockBoardService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

func newTestRouter(svc service.BoardService) http.Handler {
	r := chi.NewRouter()
	NewBoardHandler(svc, nil).Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBoardHandler_Validation(t *testing.T) {
	svc := &MockBoardService{}
	router := newTestRouter(svc)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		wantMsg string
	}{
		{"create column without name", http.MethodPost, "/columns", `{}`, msgColumnNameRequired},
		{"create column with empty name", http.MethodPost, "/columns", `{"name":""}`, msgColumnNameRequired},
		{"create column malformed body", http.MethodPost, "/columns", `{"name":`, msgInvalidBody},
		{"create task without title", http.MethodPost, "/tasks", `{"columnId":1}`, msgTaskFieldsRequired},
		{"create task without column", http.MethodPost, "/tasks", `{"title":"Write spec"}`, msgTaskFieldsRequired},
		{"move without destination", http.MethodPost, "/tasks/1/move", `{}`, msgNewColumnRequired},
		{"rename column without name", http.MethodPost, "/columns/1/update", `{}`, msgNewNameRequired},
		{"rename task without title", http.MethodPost, "/tasks/1/update", `{"newTitle":""}`, msgNewTitleRequired},
		{"non integer column id", http.MethodDelete, "/columns/abc", "", "Invalid id"},
		{"non integer task id", http.MethodPost, "/tasks/1.5/move", `{"newColumnId":2}`, "Invalid id"},
		{"negative task id", http.MethodDelete, "/tasks/-3", "", "Invalid id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, tc.method, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantMsg, decodeError(t, w).Error)
		})
	}
}

func TestBoardHandler_CreateTask(t *testing.T) {
	var gotTitle string
	var gotColumn int64
	svc := &MockBoardService{
		CreateTaskFn: func(_ context.Context, title string, columnID int64) (*domain.Task, error) {
			gotTitle, gotColumn = title, columnID
			return &domain.Task{ID: 1, Title: title, ColumnID: columnID}, nil
		},
	}

	w := doRequest(t, newTestRouter(svc), http.MethodPost, "/tasks", `{"title":"Write spec","columnId":1}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Write spec","column_id":1}`, w.Body.String())
	assert.Equal(t, "Write spec", gotTitle)
	assert.Equal(t, int64(1), gotColumn)
}

func TestBoardHandler_CreateColumn(t *testing.T) {
	w := doRequest(t, newTestRouter(&MockBoardService{}), http.MethodPost, "/columns", `{"name":"Todo"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Todo"}`, w.Body.String())
}

func TestBoardHandler_SuccessResponses(t *testing.T) {
	var calls []string
	svc := &MockBoardService{
		DeleteColumnFn: func(_ context.Context, id int64) error {
			calls = append(calls, "delete_column")
			assert.Equal(t, int64(4), id)
			return nil
		},
		RenameColumnFn: func(_ context.Context, id int64, name string) error {
			calls = append(calls, "rename_column:"+name)
			return nil
		},
		DeleteTaskFn: func(_ context.Context, id int64) error {
			calls = append(calls, "delete_task")
			return nil
		},
		MoveTaskFn: func(_ context.Context, id, columnID int64) error {
			calls = append(calls, "move_task")
			assert.Equal(t, int64(2), columnID)
			return nil
		},
		RenameTaskFn: func(_ context.Context, id int64, title string) error {
			calls = append(calls, "rename_task:"+title)
			return nil
		},
	}
	router := newTestRouter(svc)

	requests := []struct{ method, path, body string }{
		{http.MethodDelete, "/columns/4", ""},
		{http.MethodPost, "/columns/4/update", `{"newName":"Doing"}`},
		{http.MethodDelete, "/tasks/9", ""},
		{http.MethodPost, "/tasks/9/move", `{"newColumnId":2}`},
		{http.MethodPost, "/tasks/9/update", `{"newTitle":"Ship it"}`},
	}
	for _, req := range requests {
		w := doRequest(t, router, req.method, req.path, req.body)
		assert.Equal(t, http.StatusOK, w.Code, req.path)
		assert.JSONEq(t, `{"success":true}`, w.Body.String(), req.path)
	}

	assert.Equal(t, []string{
		"delete_column", "rename_column:Doing", "delete_task", "move_task", "rename_task:Ship it",
	}, calls)
}

func TestBoardHandler_Errors(t *testing.T) {
	storeErr := service.NewBoardServiceError("list_tasks", "failed to list tasks",
		store.NewStoreError("task", "list", "query failed",
			errors.New("dial tcp 10.1.2.3:5432: connect: connection refused")))

	svc := &MockBoardService{
		ListTasksFn: func(context.Context) ([]domain.Task, error) { return nil, storeErr },
		MoveTaskFn: func(context.Context, int64, int64) error {
			return service.NewBoardServiceError("move_task", "column 2 does not exist", service.ErrColumnNotFound)
		},
		RenameTaskFn: func(context.Context, int64, string) error {
			return domain.NewValidationError("title", "is required", domain.ErrTaskTitleEmpty)
		},
	}
	router := newTestRouter(svc)

	t.Run("store failure is 500 with redacted message", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/tasks", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		msg := decodeError(t, w).Error
		assert.Contains(t, msg, "connection refused")
		assert.NotContains(t, msg, "10.1.2.3")
	})

	t.Run("missing column with reference validation is 404", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/tasks/1/move", `{"newColumnId":2}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Column not found", decodeError(t, w).Error)
	})

	t.Run("whitespace title rejected by domain", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/tasks/1/update", `{"newTitle":"  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, msgNewTitleRequired, decodeError(t, w).Error)
	})
}

func TestNewBoardHandler_NilService(t *testing.T) {
	assert.Panics(t, func() { NewBoardHandler(nil, nil) })
}
