package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// PostgresColumnStore implements the store.ColumnStore interface
// using a PostgreSQL database as the storage backend.
type PostgresColumnStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresColumnStore creates a new PostgreSQL implementation of the ColumnStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresColumnStore(db store.DBTX, logger *slog.Logger) *PostgresColumnStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresColumnStore{
		db:     db,
		logger: logger.With(slog.String("component", "column_store")),
	}
}

// Ensure PostgresColumnStore implements store.ColumnStore interface
var _ store.ColumnStore = (*PostgresColumnStore)(nil)

// List implements store.ColumnStore.List
func (s *PostgresColumnStore) List(ctx context.Context) ([]domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM columns ORDER BY id`)
	if err != nil {
		log.Error("failed to list columns", slog.String("error", err.Error()))
		return nil, store.NewStoreError("column", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	columns := make([]domain.Column, 0)
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(&column.ID, &column.Name); err != nil {
			log.Error("failed to scan column row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("column", "list", "scan failed", err)
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating column rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("column", "list", "row iteration failed", err)
	}

	log.Debug("columns listed", slog.Int("count", len(columns)))
	return columns, nil
}

// Create implements store.ColumnStore.Create
// It validates the column, inserts it and sets the store-assigned ID.
func (s *PostgresColumnStore) Create(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO columns (name) VALUES ($1) RETURNING id`,
		column.Name,
	).Scan(&column.ID)
	if err != nil {
		log.Error("failed to create column", slog.String("error", err.Error()))
		return store.NewStoreError("column", "create", "insert failed", MapError(err))
	}

	log.Info("column created successfully", slog.Int64("column_id", column.ID))
	return nil
}

// Exists implements store.ColumnStore.Exists
func (s *PostgresColumnStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM columns WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check column existence",
			slog.String("error", err.Error()),
			slog.Int64("column_id", id))
		return false, store.NewStoreError("column", "exists", "query failed", MapError(err))
	}
	return exists, nil
}

// Rename implements store.ColumnStore.Rename
func (s *PostgresColumnStore) Rename(ctx context.Context, id int64, name string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := new(domain.Column).Rename(name); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE columns SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		log.Error("failed to rename column",
			slog.String("error", err.Error()),
			slog.Int64("column_id", id))
		return store.NewStoreError("column", "rename", "update failed", MapError(err))
	}

	logAffected(log, result, "column renamed", slog.Int64("column_id", id))
	return nil
}

// Delete implements store.ColumnStore.Delete
func (s *PostgresColumnStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM columns WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete column",
			slog.String("error", err.Error()),
			slog.Int64("column_id", id))
		return store.NewStoreError("column", "delete", "delete failed", MapError(err))
	}

	logAffected(log, result, "column deleted", slog.Int64("column_id", id))
	return nil
}

// WithTxColumnStore implements store.ColumnStore.WithTxColumnStore
func (s *PostgresColumnStore) WithTxColumnStore(tx *sql.Tx) store.ColumnStore {
	return &PostgresColumnStore{
		db:     tx,
		logger: s.logger,
	}
}

// logAffected logs the outcome of an UPDATE or DELETE. Zero affected rows is
// logged at debug level only: writes to missing rows are not errors.
func logAffected(log *slog.Logger, result sql.Result, msg string, attrs ...any) {
	rows, err := result.RowsAffected()
	if err != nil {
		log.Debug(msg, append(attrs, slog.String("rows_affected", "unknown"))...)
		return
	}
	if rows == 0 {
		log.Debug(msg+" (no matching row)", attrs...)
		return
	}
	log.Info(msg, append(attrs, slog.Int64("rows_affected", rows))...)
}
