package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// ColumnStore defines the interface for column persistence.
type ColumnStore interface {
	// List returns every column ordered by ID.
	List(ctx context.Context) ([]domain.Column, error)

	// Create inserts the column and sets its store-assigned ID.
	// Returns validation errors if the column is invalid.
	Create(ctx context.Context, column *domain.Column) error

	// Exists reports whether a column with the given ID is present.
	Exists(ctx context.Context, id int64) (bool, error)

	// Rename updates the column name. Renaming a missing column is not an error.
	Rename(ctx context.Context, id int64, name string) error

	// Delete removes the column. Deleting a missing column is not an error.
	//
	// Delete does not remove the column's tasks: callers pair it with
	// TaskStore.DeleteByColumn inside RunInTransaction.
	Delete(ctx context.Context, id int64) error

	// WithTxColumnStore returns a ColumnStore bound to the given transaction.
	WithTxColumnStore(tx *sql.Tx) ColumnStore
}
