package domain

import (
	"errors"
	"strings"
)

// Column-specific validation errors
var (
	// ErrColumnNameEmpty is returned when a column name is empty.
	ErrColumnNameEmpty = errors.New("column name cannot be empty")
)

// Column is a named lane on the board that owns zero or more tasks.
type Column struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewColumn creates an unsaved Column. The ID is assigned by the store.
func NewColumn(name string) (*Column, error) {
	column := &Column{Name: name}
	if err := column.Validate(); err != nil {
		return nil, err
	}
	return column, nil
}

// Validate checks if the Column has valid data.
func (c *Column) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "is required", ErrColumnNameEmpty)
	}
	return nil
}

// Rename changes the column name after validating it.
func (c *Column) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "is required", ErrColumnNameEmpty)
	}
	c.Name = name
	return nil
}
