// Package main implements the entry point for the kanban board API server.
//
// Without flags it serves the board API. With -migrate it runs the given
// migration command against the configured database and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/kanban-api/internal/platform/migrate"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		fmt.Sprintf("Run a database migration command and exit (%v)", migrate.Commands))
	configPath := flag.String("config", "", "Path to a config.yaml file (defaults to ./config.yaml if present)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateCmd); err != nil {
		log.Fatalf("kanban server: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves the API until ctx is cancelled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, cfg, db, migrateCmd, logger)
	}

	// A fresh database is usable without a separate migrate step.
	if err := handleMigrations(ctx, cfg, db, "up", logger); err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
