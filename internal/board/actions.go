package board

import "github.com/phrazzld/kanban-api/internal/domain"

// Action is a single change to the board.
type Action interface {
	apply(b *Board)
}

// Load replaces the whole board with server data.
type Load struct {
	Columns []domain.Column
	Tasks   []domain.Task
}

func (a Load) apply(b *Board) {
	b.Columns = make([]Column, 0, len(a.Columns))
	for _, c := range a.Columns {
		b.Columns = append(b.Columns, Column{Column: c})
	}
	b.Tasks = make([]Task, 0, len(a.Tasks))
	for _, t := range a.Tasks {
		b.Tasks = append(b.Tasks, Task{Task: t})
	}
}

// PutColumn inserts a column, or replaces the name of an existing one.
type PutColumn struct {
	Column domain.Column
}

func (a PutColumn) apply(b *Board) {
	for i := range b.Columns {
		if b.Columns[i].ID == a.Column.ID {
			b.Columns[i].Name = a.Column.Name
			return
		}
	}
	b.Columns = append(b.Columns, Column{Column: a.Column})
}

// SetColumnName sets a column's name. A non-empty IfName makes the change
// conditional on the current name.
type SetColumnName struct {
	ID     int64
	Name   string
	IfName string
}

func (a SetColumnName) apply(b *Board) {
	for i := range b.Columns {
		if b.Columns[i].ID == a.ID {
			if a.IfName == "" || b.Columns[i].Name == a.IfName {
				b.Columns[i].Name = a.Name
			}
			return
		}
	}
}

// RemoveColumn removes a column and every task in it.
type RemoveColumn struct {
	ID int64
}

func (a RemoveColumn) apply(b *Board) {
	columns := b.Columns[:0]
	for _, c := range b.Columns {
		if c.ID != a.ID {
			columns = append(columns, c)
		}
	}
	b.Columns = columns

	tasks := b.Tasks[:0]
	for _, t := range b.Tasks {
		if t.ColumnID != a.ID {
			tasks = append(tasks, t)
		}
	}
	b.Tasks = tasks
}

// ResolveColumn replaces a placeholder column ID with its server ID.
type ResolveColumn struct {
	TempID int64
	ID     int64
}

func (a ResolveColumn) apply(b *Board) {
	for i := range b.Columns {
		if b.Columns[i].ID == a.TempID {
			b.Columns[i].ID = a.ID
		}
	}
	for i := range b.Tasks {
		if b.Tasks[i].ColumnID == a.TempID {
			b.Tasks[i].ColumnID = a.ID
		}
	}
}

// PutTask inserts a task, or replaces the title and column of an existing one.
type PutTask struct {
	Task domain.Task
}

func (a PutTask) apply(b *Board) {
	for i := range b.Tasks {
		if b.Tasks[i].ID == a.Task.ID {
			b.Tasks[i].Title = a.Task.Title
			b.Tasks[i].ColumnID = a.Task.ColumnID
			return
		}
	}
	b.Tasks = append(b.Tasks, Task{Task: a.Task})
}

// SetTaskTitle sets a task's title. A non-empty IfTitle makes the change
// conditional on the current title.
type SetTaskTitle struct {
	ID      int64
	Title   string
	IfTitle string
}

func (a SetTaskTitle) apply(b *Board) {
	for i := range b.Tasks {
		if b.Tasks[i].ID == a.ID {
			if a.IfTitle == "" || b.Tasks[i].Title == a.IfTitle {
				b.Tasks[i].Title = a.Title
			}
			return
		}
	}
}

// SetTaskColumn reassigns a task to another column. A non-zero IfColumnID
// makes the change conditional on the current column.
type SetTaskColumn struct {
	ID         int64
	ColumnID   int64
	IfColumnID int64
}

func (a SetTaskColumn) apply(b *Board) {
	for i := range b.Tasks {
		if b.Tasks[i].ID == a.ID {
			if a.IfColumnID == 0 || b.Tasks[i].ColumnID == a.IfColumnID {
				b.Tasks[i].ColumnID = a.ColumnID
			}
			return
		}
	}
}

// RemoveTask removes a task.
type RemoveTask struct {
	ID int64
}

func (a RemoveTask) apply(b *Board) {
	tasks := b.Tasks[:0]
	for _, t := range b.Tasks {
		if t.ID != a.ID {
			tasks = append(tasks, t)
		}
	}
	b.Tasks = tasks
}

// ResolveTask replaces a placeholder task ID with its server ID.
type ResolveTask struct {
	TempID int64
	ID     int64
}

func (a ResolveTask) apply(b *Board) {
	for i := range b.Tasks {
		if b.Tasks[i].ID == a.TempID {
			b.Tasks[i].ID = a.ID
		}
	}
}

// Kind names an entity type for Track.
type Kind int

const (
	KindColumn Kind = iota
	KindTask
)

// Track adjusts the count of in-flight intents touching an entity.
type Track struct {
	Kind  Kind
	ID    int64
	Delta int
}

func (a Track) apply(b *Board) {
	switch a.Kind {
	case KindColumn:
		for i := range b.Columns {
			if b.Columns[i].ID == a.ID {
				b.Columns[i].inflight = max(0, b.Columns[i].inflight+a.Delta)
			}
		}
	case KindTask:
		for i := range b.Tasks {
			if b.Tasks[i].ID == a.ID {
				b.Tasks[i].inflight = max(0, b.Tasks[i].inflight+a.Delta)
			}
		}
	}
}
