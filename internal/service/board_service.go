package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// BoardService provides the column and task operations of the board.
type BoardService interface {
	// ListColumns returns every column ordered by ID.
	ListColumns(ctx context.Context) ([]domain.Column, error)

	// ListTasks returns every task ordered by ID.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateColumn creates a column and returns it with its assigned ID.
	CreateColumn(ctx context.Context, name string) (*domain.Column, error)

	// RenameColumn changes a column's name. Renaming a missing column succeeds.
	RenameColumn(ctx context.Context, id int64, name string) error

	// DeleteColumn removes a column and every task in it atomically.
	// Deleting a missing column succeeds.
	DeleteColumn(ctx context.Context, id int64) error

	// CreateTask creates a task in the given column and returns it with its assigned ID.
	CreateTask(ctx context.Context, title string, columnID int64) (*domain.Task, error)

	// RenameTask changes a task's title. Renaming a missing task succeeds.
	RenameTask(ctx context.Context, id int64, title string) error

	// MoveTask reassigns a task to another column. Moving a missing task succeeds.
	MoveTask(ctx context.Context, id int64, columnID int64) error

	// DeleteTask removes a task. Deleting a missing task succeeds.
	DeleteTask(ctx context.Context, id int64) error
}

// Options tunes BoardService behavior.
type Options struct {
	// ValidateReferences makes CreateTask and MoveTask return ErrColumnNotFound
	// when the target column does not exist.
	ValidateReferences bool
}

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	db      *sql.DB
	columns store.ColumnStore
	tasks   store.TaskStore
	emitter events.EventEmitter
	opts    Options
	logger  *slog.Logger
}

// NewBoardService creates a new BoardService.
// It returns an error if any of the required dependencies are nil.
// A nil emitter discards events.
func NewBoardService(
	db *sql.DB,
	columns store.ColumnStore,
	tasks store.TaskStore,
	emitter events.EventEmitter,
	opts Options,
	logger *slog.Logger,
) (BoardService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if columns == nil {
		return nil, domain.NewValidationError("columns", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &boardServiceImpl{
		db:      db,
		columns: columns,
		tasks:   tasks,
		emitter: emitter,
		opts:    opts,
		logger:  logger.With(slog.String("component", "board_service")),
	}, nil
}

// ListColumns implements BoardService.ListColumns
func (s *boardServiceImpl) ListColumns(ctx context.Context) ([]domain.Column, error) {
	columns, err := s.columns.List(ctx)
	if err != nil {
		return nil, NewBoardServiceError("list_columns", "failed to list columns", err)
	}
	return columns, nil
}

// ListTasks implements BoardService.ListTasks
func (s *boardServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewBoardServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// CreateColumn implements BoardService.CreateColumn
func (s *boardServiceImpl) CreateColumn(ctx context.Context, name string) (*domain.Column, error) {
	column, err := domain.NewColumn(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	if err := s.columns.Create(ctx, column); err != nil {
		return nil, wrapStoreError("create_column", "failed to save column", err)
	}

	s.emit(ctx, events.ColumnCreated, column.ID, 0, map[string]string{"name": column.Name})
	return column, nil
}

// RenameColumn implements BoardService.RenameColumn
func (s *boardServiceImpl) RenameColumn(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if err := s.columns.Rename(ctx, id, name); err != nil {
		return wrapStoreError("rename_column", "failed to rename column", err)
	}

	s.emit(ctx, events.ColumnRenamed, id, 0, map[string]string{"name": name})
	return nil
}

// DeleteColumn implements BoardService.DeleteColumn
// The column's tasks and the column itself are removed in a single transaction.
func (s *boardServiceImpl) DeleteColumn(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		n, err := s.tasks.WithTxTaskStore(tx).DeleteByColumn(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return s.columns.WithTxColumnStore(tx).Delete(ctx, id)
	})
	if err != nil {
		log.Error("failed to delete column",
			slog.Int64("column_id", id),
			slog.String("error", err.Error()))
		return NewBoardServiceError("delete_column", "failed to delete column", err)
	}

	log.Debug("deleted column",
		slog.Int64("column_id", id),
		slog.Int64("tasks_removed", removed))
	s.emit(ctx, events.ColumnDeleted, id, 0, map[string]int64{"tasks_removed": removed})
	return nil
}

// CreateTask implements BoardService.CreateTask
func (s *boardServiceImpl) CreateTask(ctx context.Context, title string, columnID int64) (*domain.Task, error) {
	task, err := domain.NewTask(strings.TrimSpace(title), columnID)
	if err != nil {
		return nil, err
	}
	if err := s.checkColumn(ctx, "create_task", columnID); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, wrapStoreError("create_task", "failed to save task", err)
	}

	s.emit(ctx, events.TaskCreated, task.ColumnID, task.ID, map[string]string{"title": task.Title})
	return task, nil
}

// RenameTask implements BoardService.RenameTask
func (s *boardServiceImpl) RenameTask(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if err := s.tasks.Rename(ctx, id, title); err != nil {
		return wrapStoreError("rename_task", "failed to rename task", err)
	}

	s.emit(ctx, events.TaskRenamed, 0, id, map[string]string{"title": title})
	return nil
}

// MoveTask implements BoardService.MoveTask
func (s *boardServiceImpl) MoveTask(ctx context.Context, id int64, columnID int64) error {
	if err := new(domain.Task).MoveTo(columnID); err != nil {
		return err
	}
	if err := s.checkColumn(ctx, "move_task", columnID); err != nil {
		return err
	}

	if err := s.tasks.Move(ctx, id, columnID); err != nil {
		return wrapStoreError("move_task", "failed to move task", err)
	}

	s.emit(ctx, events.TaskMoved, columnID, id, nil)
	return nil
}

// DeleteTask implements BoardService.DeleteTask
func (s *boardServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return wrapStoreError("delete_task", "failed to delete task", err)
	}

	s.emit(ctx, events.TaskDeleted, 0, id, nil)
	return nil
}

// checkColumn returns ErrColumnNotFound when reference validation is enabled
// and the column does not exist.
func (s *boardServiceImpl) checkColumn(ctx context.Context, operation string, columnID int64) error {
	if !s.opts.ValidateReferences {
		return nil
	}

	exists, err := s.columns.Exists(ctx, columnID)
	if err != nil {
		return NewBoardServiceError(operation, "failed to check column", err)
	}
	if !exists {
		return NewBoardServiceError(operation, fmt.Sprintf("column %d does not exist", columnID), ErrColumnNotFound)
	}
	return nil
}

// emit publishes a board event. Failures are logged and never returned.
func (s *boardServiceImpl) emit(ctx context.Context, eventType string, columnID, taskID int64, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewBoardEvent(eventType, columnID, taskID, payload)
	if err != nil {
		log.Error("failed to build board event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("board event not delivered to every handler",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

// wrapStoreError leaves validation errors untouched so they map to 400.
func wrapStoreError(operation, message string, err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return NewBoardServiceError(operation, message, err)
}
