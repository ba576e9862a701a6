package board

import (
	"sort"
	"sync"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// Status tells whether an entity's latest local change has reached the server.
type Status string

const (
	StatusSynced  Status = "synced"
	StatusPending Status = "pending"
)

// Column is a column as the client sees it.
type Column struct {
	domain.Column
	inflight int
}

// Status reports whether an intent touching the column is still persisting.
func (c Column) Status() Status {
	if c.inflight > 0 {
		return StatusPending
	}
	return StatusSynced
}

// Temporary reports whether the column is a placeholder awaiting its server ID.
func (c Column) Temporary() bool {
	return c.ID < 0
}

// Task is a task as the client sees it.
type Task struct {
	domain.Task
	inflight int
}

// Status reports whether an intent touching the task is still persisting.
func (t Task) Status() Status {
	if t.inflight > 0 {
		return StatusPending
	}
	return StatusSynced
}

// Temporary reports whether the task is a placeholder awaiting its server ID.
func (t Task) Temporary() bool {
	return t.ID < 0
}

// Board is an immutable snapshot of columns and tasks, ordered as the server
// lists them with placeholders last in creation order.
type Board struct {
	Columns []Column
	Tasks   []Task
}

// Lane is a column together with the tasks it holds.
type Lane struct {
	Column Column
	Tasks  []Task
}

// Column looks up a column by ID.
func (b Board) Column(id int64) (Column, bool) {
	for _, c := range b.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Task looks up a task by ID.
func (b Board) Task(id int64) (Task, bool) {
	for _, t := range b.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// TasksIn returns the tasks whose column is columnID.
func (b Board) TasksIn(columnID int64) []Task {
	tasks := make([]Task, 0)
	for _, t := range b.Tasks {
		if t.ColumnID == columnID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Lanes groups tasks under their columns. Tasks whose column is not on the
// board are never listed.
func (b Board) Lanes() []Lane {
	lanes := make([]Lane, 0, len(b.Columns))
	for _, c := range b.Columns {
		lanes = append(lanes, Lane{Column: c, Tasks: b.TasksIn(c.ID)})
	}
	return lanes
}

// Pending counts entities with an intent still persisting.
func (b Board) Pending() int {
	n := 0
	for _, c := range b.Columns {
		if c.inflight > 0 {
			n++
		}
	}
	for _, t := range b.Tasks {
		if t.inflight > 0 {
			n++
		}
	}
	return n
}

func (b Board) clone() Board {
	return Board{
		Columns: append(make([]Column, 0, len(b.Columns)), b.Columns...),
		Tasks:   append(make([]Task, 0, len(b.Tasks)), b.Tasks...),
	}
}

// orderKey sorts server IDs ascending, then placeholders in creation order.
func orderKey(id int64) (int, int64) {
	if id < 0 {
		return 1, -id
	}
	return 0, id
}

func less(a, b int64) bool {
	ga, ka := orderKey(a)
	gb, kb := orderKey(b)
	if ga != gb {
		return ga < gb
	}
	return ka < kb
}

func (b *Board) sort() {
	sort.SliceStable(b.Columns, func(i, j int) bool { return less(b.Columns[i].ID, b.Columns[j].ID) })
	sort.SliceStable(b.Tasks, func(i, j int) bool { return less(b.Tasks[i].ID, b.Tasks[j].ID) })
}

// State is the client state container.
type State struct {
	mu    sync.RWMutex
	board Board
}

// NewState returns an empty State.
func NewState() *State {
	return &State{board: Board{Columns: []Column{}, Tasks: []Task{}}}
}

// Snapshot returns the current board.
func (s *State) Snapshot() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Dispatch applies the actions in order as one atomic change.
func (s *State) Dispatch(actions ...Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board.clone()
	for _, a := range actions {
		a.apply(&b)
	}
	b.sort()
	s.board = b
}
