// Package sqlite provides SQLite implementations of the board storage
// interfaces, backed by the pure-Go modernc.org/sqlite driver. It is used for
// local development and for store tests that need a real database without an
// external server.
package sqlite
