package domain

import (
	"errors"
	"strings"
)

// Task-specific validation errors
var (
	// ErrTaskTitleEmpty is returned when a task title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskColumnIDEmpty is returned when a task is not bound to a column.
	ErrTaskColumnIDEmpty = errors.New("task column ID cannot be empty")
)

// Task is a titled unit of work belonging to exactly one column.
// Position within the column is not tracked.
type Task struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ColumnID int64  `json:"column_id"`
}

// NewTask creates an unsaved Task bound to the given column.
func NewTask(title string, columnID int64) (*Task, error) {
	task := &Task{Title: title, ColumnID: columnID}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrTaskTitleEmpty)
	}
	if t.ColumnID == 0 {
		return NewValidationError("columnId", "is required", ErrTaskColumnIDEmpty)
	}
	return nil
}

// MoveTo reassigns the task to another column.
func (t *Task) MoveTo(columnID int64) error {
	if columnID == 0 {
		return NewValidationError("newColumnId", "is required", ErrTaskColumnIDEmpty)
	}
	t.ColumnID = columnID
	return nil
}

// Rename changes the task title after validating it.
func (t *Task) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "is required", ErrTaskTitleEmpty)
	}
	t.Title = title
	return nil
}
