package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
	"github.com/phrazzld/kanban-api/internal/platform/sqlite"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	columnStore store.ColumnStore
	taskStore   store.TaskStore

	eventEmitter *events.InMemoryEventEmitter
	redisClient  *redis.Client

	boardService service.BoardService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established and migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case driverSQLite:
		app.columnStore = sqlite.NewColumnStore(db, logger)
		app.taskStore = sqlite.NewTaskStore(db, logger)
	default:
		app.columnStore = postgres.NewPostgresColumnStore(db, logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditHandler(logger))

	if cfg.Redis.EventsEnabled() {
		client, err := events.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		app.redisClient = client
		app.eventEmitter.RegisterHandler(events.NewRedisPublisher(client, cfg.Redis.Channel, logger))
		logger.Info("Board events published to redis", "channel", cfg.Redis.Channel)
	}

	var err error
	app.boardService, err = service.NewBoardService(
		db,
		app.columnStore,
		app.taskStore,
		app.eventEmitter,
		service.Options{ValidateReferences: cfg.Board.ValidateReferences},
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"validate_references", cfg.Board.ValidateReferences)
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
