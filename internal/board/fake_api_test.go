package board

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/kanban-api/internal/client"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// fakeAPI is an in-memory client.API. Mutating calls wait on gate when it is
// set and fail with the next queued error for their method.
type fakeAPI struct {
	mu       sync.Mutex
	nextID   int64
	columns  []domain.Column
	tasks    []domain.Task
	calls    []string
	failures map[string][]error
	gate     chan struct{}
}

var _ client.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextID: 100,
		columns: []domain.Column{
			{ID: 1, Name: "Todo"},
			{ID: 2, Name: "Done"},
		},
		tasks: []domain.Task{
			{ID: 10, Title: "Write", ColumnID: 1},
		},
		failures: make(map[string][]error),
	}
}

func (f *fakeAPI) failNext(method string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = append(f.failures[method], errs...)
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) snapshot() ([]domain.Column, []domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Column(nil), f.columns...), append([]domain.Task(nil), f.tasks...)
}

// enter records the call, waits on the gate and returns the injected error.
// On success it returns with f.mu held.
func (f *fakeAPI) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	if queue := f.failures[method]; len(queue) > 0 {
		f.failures[method] = queue[1:]
		if err := queue[0]; err != nil {
			f.mu.Unlock()
			return err
		}
	}
	return nil
}

func (f *fakeAPI) ListColumns(ctx context.Context) ([]domain.Column, error) {
	if err := f.enter(ctx, "ListColumns"); err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return append([]domain.Column(nil), f.columns...), nil
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := f.enter(ctx, "ListTasks"); err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return append([]domain.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) CreateColumn(ctx context.Context, name string) (*domain.Column, error) {
	if err := f.enter(ctx, "CreateColumn"); err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	f.nextID++
	column := domain.Column{ID: f.nextID, Name: name}
	f.columns = append(f.columns, column)
	return &column, nil
}

func (f *fakeAPI) RenameColumn(ctx context.Context, id int64, name string) error {
	if err := f.enter(ctx, "RenameColumn"); err != nil {
		return err
	}
	defer f.mu.Unlock()
	for i := range f.columns {
		if f.columns[i].ID == id {
			f.columns[i].Name = name
		}
	}
	return nil
}

func (f *fakeAPI) DeleteColumn(ctx context.Context, id int64) error {
	if err := f.enter(ctx, "DeleteColumn"); err != nil {
		return err
	}
	defer f.mu.Unlock()
	columns := f.columns[:0]
	for _, c := range f.columns {
		if c.ID != id {
			columns = append(columns, c)
		}
	}
	f.columns = columns
	tasks := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ColumnID != id {
			tasks = append(tasks, t)
		}
	}
	f.tasks = tasks
	return nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, title string, columnID int64) (*domain.Task, error) {
	if err := f.enter(ctx, "CreateTask"); err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	f.nextID++
	task := domain.Task{ID: f.nextID, Title: title, ColumnID: columnID}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeAPI) RenameTask(ctx context.Context, id int64, title string) error {
	if err := f.enter(ctx, "RenameTask"); err != nil {
		return err
	}
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Title = title
		}
	}
	return nil
}

func (f *fakeAPI) MoveTask(ctx context.Context, id int64, columnID int64) error {
	if err := f.enter(ctx, "MoveTask"); err != nil {
		return err
	}
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].ColumnID = columnID
		}
	}
	return nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id int64) error {
	if err := f.enter(ctx, "DeleteTask"); err != nil {
		return err
	}
	defer f.mu.Unlock()
	tasks := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	f.tasks = tasks
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
