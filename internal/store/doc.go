// Package store defines interfaces for board persistence. The interfaces
// abstract the underlying database so the service layer stays independent of
// PostgreSQL or SQLite specifics.
package store
