// Package postgres provides PostgreSQL-specific implementations for the
// board storage interfaces defined in the internal/store package. It handles
// query execution, error mapping and data mapping between domain entities and
// database records, and embeds the goose migrations for its schema.
package postgres
