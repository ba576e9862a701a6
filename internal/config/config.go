package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Board    BoardConfig    `mapstructure:"board"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port"                  validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level"             validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	// AllowedOrigins lists CORS origins; "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the store implementation: postgres or sqlite.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a PostgreSQL connection URL or a SQLite DSN (e.g. file:kanban.db).
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// BoardConfig contains settings for board semantics.
type BoardConfig struct {
	// ValidateReferences makes create-task and move-task reject column IDs
	// that do not exist. When false, dangling column references are stored as given.
	ValidateReferences bool `mapstructure:"validate_references"`
}

// RedisConfig configures publishing of board events to Redis.
// Publishing is disabled when URL is empty.
type RedisConfig struct {
	URL     string `mapstructure:"url"     validate:"omitempty,url"`
	Channel string `mapstructure:"channel" validate:"required_with=URL"`
}

// EventsEnabled reports whether board events should be published to Redis.
func (c RedisConfig) EventsEnabled() bool {
	return c.URL != ""
}
