// Package testdb provides database utilities for tests.
//
// NewSQLite returns a migrated in-memory SQLite database and needs no external
// services. GetTestPostgresDB connects to the PostgreSQL database named by
// DATABASE_URL (or KANBAN_TEST_DB_URL), applies migrations, and skips the test
// when neither variable is set. WithTx runs a test body in a transaction that is
// always rolled back, so PostgreSQL tests can run in parallel.
package testdb
