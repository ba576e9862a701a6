package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// ColumnStore implements store.ColumnStore on SQLite.
type ColumnStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewColumnStore creates a SQLite ColumnStore. If logger is nil, a default logger will be used.
func NewColumnStore(db store.DBTX, logger *slog.Logger) *ColumnStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ColumnStore{db: db, logger: logger.With(slog.String("component", "column_store"))}
}

var _ store.ColumnStore = (*ColumnStore)(nil)

// List implements store.ColumnStore.List
func (s *ColumnStore) List(ctx context.Context) ([]domain.Column, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM columns ORDER BY id`)
	if err != nil {
		return nil, store.NewStoreError("column", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	columns := make([]domain.Column, 0)
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(&column.ID, &column.Name); err != nil {
			return nil, store.NewStoreError("column", "list", "scan failed", err)
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("column", "list", "row iteration failed", err)
	}
	return columns, nil
}

// Create implements store.ColumnStore.Create
func (s *ColumnStore) Create(ctx context.Context, column *domain.Column) error {
	if err := column.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO columns (name) VALUES (?) RETURNING id`,
		column.Name,
	).Scan(&column.ID)
	if err != nil {
		return store.NewStoreError("column", "create", "insert failed", MapError(err))
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("column created successfully",
		slog.Int64("column_id", column.ID))
	return nil
}

// Exists implements store.ColumnStore.Exists
func (s *ColumnStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM columns WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("column", "exists", "query failed", MapError(err))
	}
	return exists, nil
}

// Rename implements store.ColumnStore.Rename
func (s *ColumnStore) Rename(ctx context.Context, id int64, name string) error {
	if err := new(domain.Column).Rename(name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE columns SET name = ? WHERE id = ?`, name, id); err != nil {
		return store.NewStoreError("column", "rename", "update failed", MapError(err))
	}
	return nil
}

// Delete implements store.ColumnStore.Delete
func (s *ColumnStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id); err != nil {
		return store.NewStoreError("column", "delete", "delete failed", MapError(err))
	}
	return nil
}

// WithTxColumnStore implements store.ColumnStore.WithTxColumnStore
func (s *ColumnStore) WithTxColumnStore(tx *sql.Tx) store.ColumnStore {
	return &ColumnStore{db: tx, logger: s.logger}
}
