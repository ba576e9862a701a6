package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, column_id FROM tasks ORDER BY id`)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.ColumnID); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "row iteration failed", err)
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (title, column_id) VALUES ($1, $2) RETURNING id`,
		task.Title,
		task.ColumnID,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("column_id", task.ColumnID))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("column_id", task.ColumnID))
	return nil
}

// Move implements store.TaskStore.Move
func (s *PostgresTaskStore) Move(ctx context.Context, id int64, columnID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET column_id = $1 WHERE id = $2`, columnID, id)
	if err != nil {
		log.Error("failed to move task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id),
			slog.Int64("column_id", columnID))
		return store.NewStoreError("task", "move", "update failed", MapError(err))
	}

	logAffected(log, result, "task moved",
		slog.Int64("task_id", id),
		slog.Int64("column_id", columnID))
	return nil
}

// Rename implements store.TaskStore.Rename
func (s *PostgresTaskStore) Rename(ctx context.Context, id int64, title string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := new(domain.Task).Rename(title); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET title = $1 WHERE id = $2`, title, id)
	if err != nil {
		log.Error("failed to rename task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "rename", "update failed", MapError(err))
	}

	logAffected(log, result, "task renamed", slog.Int64("task_id", id))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	logAffected(log, result, "task deleted", slog.Int64("task_id", id))
	return nil
}

// DeleteByColumn implements store.TaskStore.DeleteByColumn
func (s *PostgresTaskStore) DeleteByColumn(ctx context.Context, columnID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE column_id = $1`, columnID)
	if err != nil {
		log.Error("failed to delete column tasks",
			slog.String("error", err.Error()),
			slog.Int64("column_id", columnID))
		return 0, store.NewStoreError("task", "delete_by_column", "delete failed", MapError(err))
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "delete_by_column", "rows affected unavailable", err)
	}

	log.Debug("column tasks deleted",
		slog.Int64("column_id", columnID),
		slog.Int64("removed", removed))
	return removed, nil
}

// WithTxTaskStore implements store.TaskStore.WithTxTaskStore
func (s *PostgresTaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}
