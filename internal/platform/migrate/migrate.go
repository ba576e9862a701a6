// Package migrate runs the embedded goose migrations of a store backend.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// TableName is the goose version table used by every backend.
const TableName = "schema_migrations"

// Commands lists the supported migration commands.
var Commands = []string{"up", "down", "reset", "status", "version"}

// Source describes where a backend's migrations live.
type Source struct {
	Dialect string
	FS      fs.FS
	Dir     string
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// It does not exit: the error is returned from the goose call instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, src Source, logger *slog.Logger) error {
	return Run(ctx, db, src, "up", logger)
}

// Run executes a goose command against db using the migrations in src.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
		"dialect", src.Dialect,
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	log.Info("Starting migration operation")

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, src.Dir)
	case "down":
		err = goose.DownContext(ctx, db, src.Dir)
	case "reset":
		err = goose.ResetContext(ctx, db, src.Dir)
	case "status":
		err = goose.StatusContext(ctx, db, src.Dir)
	case "version":
		err = goose.VersionContext(ctx, db, src.Dir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, Commands)
	}

	if err != nil {
		log.Error("Migration command failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("Migration command executed successfully",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
