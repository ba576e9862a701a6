// Package board holds the client-side view of a kanban board and keeps it in
// step with the board API.
//
// State is an explicit, mutex-guarded container of columns and tasks. It is
// changed only by dispatching Actions, each of which derives a new Board from
// the previous one, so a Board returned by Snapshot is never modified later.
//
// Reconciler turns user intents (add a column, move a task, ...) into two
// phases. The intent is applied to State at once, with affected entities
// marked pending, and then persisted through the API client by a single
// outbox worker so intents reach the server in submission order. Each intent
// reports its outcome on a Result channel. When persisting fails, the
// optimistic change is reverted.
//
// Columns and tasks added optimistically carry a negative temporary ID until
// the server assigns one; later intents that name a temporary ID are resolved
// to the real ID before their API call.
package board
