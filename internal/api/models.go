package api

// Request bodies. Field names follow the JSON the board client sends.

// CreateColumnRequest defines the payload for POST /columns.
type CreateColumnRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title    string `json:"title"    validate:"required"`
	ColumnID int64  `json:"columnId" validate:"required"`
}

// MoveTaskRequest defines the payload for POST /tasks/{id}/move.
type MoveTaskRequest struct {
	NewColumnID int64 `json:"newColumnId" validate:"required"`
}

// RenameColumnRequest defines the payload for POST /columns/{id}/update.
type RenameColumnRequest struct {
	NewName string `json:"newName" validate:"required"`
}

// RenameTaskRequest defines the payload for POST /tasks/{id}/update.
type RenameTaskRequest struct {
	NewTitle string `json:"newTitle" validate:"required"`
}
