package postgres

import (
	"embed"
)

// Migrations holds the goose SQL migrations for the PostgreSQL schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the SQL files.
const MigrationsDir = "migrations"

// Dialect is the goose dialect name for this store.
const Dialect = "postgres"
