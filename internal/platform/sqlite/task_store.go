package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// TaskStore implements store.TaskStore on SQLite.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a SQLite TaskStore. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{db: db, logger: logger.With(slog.String("component", "task_store"))}
}

var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, column_id FROM tasks ORDER BY id`)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.ColumnID); err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "row iteration failed", err)
	}
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (title, column_id) VALUES (?, ?) RETURNING id`,
		task.Title,
		task.ColumnID,
	).Scan(&task.ID)
	if err != nil {
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("column_id", task.ColumnID))
	return nil
}

// Move implements store.TaskStore.Move
func (s *TaskStore) Move(ctx context.Context, id int64, columnID int64) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE tasks SET column_id = ? WHERE id = ?`, columnID, id); err != nil {
		return store.NewStoreError("task", "move", "update failed", MapError(err))
	}
	return nil
}

// Rename implements store.TaskStore.Rename
func (s *TaskStore) Rename(ctx context.Context, id int64, title string) error {
	if err := new(domain.Task).Rename(title); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, title, id); err != nil {
		return store.NewStoreError("task", "rename", "update failed", MapError(err))
	}
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}
	return nil
}

// DeleteByColumn implements store.TaskStore.DeleteByColumn
func (s *TaskStore) DeleteByColumn(ctx context.Context, columnID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE column_id = ?`, columnID)
	if err != nil {
		return 0, store.NewStoreError("task", "delete_by_column", "delete failed", MapError(err))
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "delete_by_column", "rows affected unavailable", err)
	}
	return removed, nil
}

// WithTxTaskStore implements store.TaskStore.WithTxTaskStore
func (s *TaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}
