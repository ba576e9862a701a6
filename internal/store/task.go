package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// List returns every task ordered by ID.
	List(ctx context.Context) ([]domain.Task, error)

	// Create inserts the task and sets its store-assigned ID.
	// The column reference is not checked.
	Create(ctx context.Context, task *domain.Task) error

	// Move reassigns the task to another column. Moving a missing task is not an error.
	Move(ctx context.Context, id int64, columnID int64) error

	// Rename updates the task title. Renaming a missing task is not an error.
	Rename(ctx context.Context, id int64, title string) error

	// Delete removes the task. Deleting a missing task is not an error.
	Delete(ctx context.Context, id int64) error

	// DeleteByColumn removes every task in the column and returns how many were removed.
	DeleteByColumn(ctx context.Context, columnID int64) (int64, error)

	// WithTxTaskStore returns a TaskStore bound to the given transaction.
	WithTxTaskStore(tx *sql.Tx) TaskStore
}
