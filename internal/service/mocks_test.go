package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockColumnStore mocks the store.ColumnStore interface
type MockColumnStore struct {
	mock.Mock
}

func (m *MockColumnStore) List(ctx context.Context) ([]domain.Column, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Column), args.Error(1)
}

func (m *MockColumnStore) Create(ctx context.Context, column *domain.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockColumnStore) Rename(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockColumnStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockColumnStore) WithTxColumnStore(tx *sql.Tx) store.ColumnStore {
	return m
}

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Move(ctx context.Context, id int64, columnID int64) error {
	args := m.Called(ctx, id, columnID)
	return args.Error(0)
}

func (m *MockTaskStore) Rename(ctx context.Context, id int64, title string) error {
	args := m.Called(ctx, id, title)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskStore) DeleteByColumn(ctx context.Context, columnID int64) (int64, error) {
	args := m.Called(ctx, columnID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return m
}

// recordingEmitter captures emitted events
type recordingEmitter struct {
	events []*events.BoardEvent
	err    error
}

func (r *recordingEmitter) EmitEvent(_ context.Context, event *events.BoardEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
