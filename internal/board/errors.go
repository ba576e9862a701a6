package board

import "errors"

var (
	// ErrUnknownColumn is returned when an intent names a column that is not on the board.
	ErrUnknownColumn = errors.New("board: unknown column")

	// ErrUnknownTask is returned when an intent names a task that is not on the board.
	ErrUnknownTask = errors.New("board: unknown task")

	// ErrUnresolvedID is returned when a temporary ID was never assigned a
	// server ID because the intent that created it failed.
	ErrUnresolvedID = errors.New("board: temporary id was never persisted")

	// ErrClosed is returned for intents submitted after Close.
	ErrClosed = errors.New("board: reconciler is closed")

	// ErrOutboxFull is returned when too many intents are waiting to persist.
	ErrOutboxFull = errors.New("board: outbox is full")
)
