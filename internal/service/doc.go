// Package service contains the application-specific use cases of the board.
// It orchestrates the column and task stores (defined in internal/store) and
// emits a board event after every successful mutation.
//
// Key components:
//
// 1. BoardService:
//   - Lists, creates, renames, moves and deletes columns and tasks
//   - Deletes a column and its tasks inside one transaction
//   - Optionally rejects tasks that reference a missing column
//
// 2. Error Handling:
//   - Store failures are wrapped in BoardServiceError
//   - Validation errors from the domain package pass through unchanged
//   - Callers use errors.Is/errors.As; the API layer maps errors to HTTP status codes
//
// The service layer depends on domain entities and store interfaces, never on a
// specific database backend.
package service
