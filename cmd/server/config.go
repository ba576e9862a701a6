package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/config"
)

// loadAppConfig loads the configuration from path, or from the environment
// and ./config.yaml when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	if cfg.Redis.EventsEnabled() {
		slog.Debug("Redis configuration", "url_present", true, "channel", cfg.Redis.Channel)
	}

	return cfg, nil
}
