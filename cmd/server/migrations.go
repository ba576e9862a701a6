package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/platform/migrate"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
	"github.com/phrazzld/kanban-api/internal/platform/sqlite"
)

// migrationSource returns the embedded migrations for the configured driver.
func migrationSource(driver string) migrate.Source {
	if driver == driverSQLite {
		return migrate.Source{Dialect: sqlite.Dialect, FS: sqlite.Migrations, Dir: sqlite.MigrationsDir}
	}
	return migrate.Source{Dialect: postgres.Dialect, FS: postgres.Migrations, Dir: postgres.MigrationsDir}
}

// handleMigrations runs a goose command against db.
func handleMigrations(
	ctx context.Context,
	cfg *config.Config,
	db *sql.DB,
	command string,
	logger *slog.Logger,
) error {
	logger.Info("Executing migrations", "command", command, "driver", cfg.Database.Driver)
	return migrate.Run(ctx, db, migrationSource(cfg.Database.Driver), command, logger)
}
