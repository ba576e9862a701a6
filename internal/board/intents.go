package board

import (
	"context"
	"strings"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// Intent is a user action on the board.
type Intent interface {
	name() string
	// prepare validates the intent against the current board and returns the
	// op to run, or nil when the intent is a no-op.
	prepare(r *Reconciler, b Board) (*op, error)
}

type touch struct {
	kind Kind
	id   int64
}

// op is a prepared intent.
type op struct {
	// apply is dispatched at submission.
	apply []Action
	// touches are marked pending until the op finishes.
	touches []touch
	// persist runs on the outbox worker.
	persist func(ctx context.Context) error
	// revert undoes apply after a failed persist.
	revert func()
	// id is the entity reported in the Result, possibly temporary.
	id int64
}

// AddColumn creates a column.
type AddColumn struct {
	Name string
}

func (AddColumn) name() string { return "add_column" }

func (i AddColumn) prepare(r *Reconciler, _ Board) (*op, error) {
	name := strings.TrimSpace(i.Name)
	if _, err := domain.NewColumn(name); err != nil {
		return nil, err
	}

	temp := r.ids.temp()
	return &op{
		apply:   []Action{PutColumn{Column: domain.Column{ID: temp, Name: name}}},
		touches: []touch{{KindColumn, temp}},
		id:      temp,
		persist: func(ctx context.Context) error {
			column, err := r.api.CreateColumn(ctx, name)
			if err != nil {
				return err
			}
			r.resolvePlaceholder(temp, column.ID, ResolveColumn{TempID: temp, ID: column.ID})
			return nil
		},
		revert: func() {
			r.ids.fail(temp)
			r.state.Dispatch(RemoveColumn{ID: temp})
		},
	}, nil
}

// RenameColumn changes a column's name.
type RenameColumn struct {
	ID   int64
	Name string
}

func (RenameColumn) name() string { return "rename_column" }

func (i RenameColumn) prepare(r *Reconciler, b Board) (*op, error) {
	name := strings.TrimSpace(i.Name)
	if err := new(domain.Column).Rename(name); err != nil {
		return nil, err
	}
	columnID := r.ids.current(i.ID)
	column, ok := b.Column(columnID)
	if !ok {
		return nil, ErrUnknownColumn
	}

	prev := column.Name
	return &op{
		apply:   []Action{SetColumnName{ID: columnID, Name: name}},
		touches: []touch{{KindColumn, columnID}},
		id:      columnID,
		persist: func(ctx context.Context) error {
			id, err := r.ids.resolve(columnID)
			if err != nil {
				return err
			}
			return r.api.RenameColumn(ctx, id, name)
		},
		revert: func() {
			r.state.Dispatch(SetColumnName{ID: r.ids.current(columnID), Name: prev, IfName: name})
		},
	}, nil
}

// DeleteColumn removes a column and its tasks.
type DeleteColumn struct {
	ID int64
}

func (DeleteColumn) name() string { return "delete_column" }

func (i DeleteColumn) prepare(r *Reconciler, b Board) (*op, error) {
	columnID := r.ids.current(i.ID)
	column, ok := b.Column(columnID)
	if !ok {
		return nil, ErrUnknownColumn
	}
	tasks := b.TasksIn(columnID)

	return &op{
		apply: []Action{RemoveColumn{ID: columnID}},
		id:    columnID,
		persist: func(ctx context.Context) error {
			id, err := r.ids.resolve(columnID)
			if err != nil {
				return err
			}
			return r.api.DeleteColumn(ctx, id)
		},
		revert: func() {
			if r.ids.dead(columnID) {
				return
			}
			restored := column.Column
			restored.ID = r.ids.current(columnID)
			actions := []Action{PutColumn{Column: restored}}
			for _, t := range tasks {
				if r.ids.dead(t.ID) {
					continue
				}
				task := t.Task
				task.ID = r.ids.current(t.ID)
				task.ColumnID = restored.ID
				actions = append(actions, PutTask{Task: task})
			}
			r.state.Dispatch(actions...)
		},
	}, nil
}

// AddTask creates a task in a column.
type AddTask struct {
	Title    string
	ColumnID int64
}

func (AddTask) name() string { return "add_task" }

func (i AddTask) prepare(r *Reconciler, b Board) (*op, error) {
	title := strings.TrimSpace(i.Title)
	if _, err := domain.NewTask(title, i.ColumnID); err != nil {
		return nil, err
	}
	columnID := r.ids.current(i.ColumnID)
	if _, ok := b.Column(columnID); !ok {
		return nil, ErrUnknownColumn
	}

	temp := r.ids.temp()
	return &op{
		apply:   []Action{PutTask{Task: domain.Task{ID: temp, Title: title, ColumnID: columnID}}},
		touches: []touch{{KindTask, temp}},
		id:      temp,
		persist: func(ctx context.Context) error {
			serverColumnID, err := r.ids.resolve(columnID)
			if err != nil {
				return err
			}
			task, err := r.api.CreateTask(ctx, title, serverColumnID)
			if err != nil {
				return err
			}
			r.resolvePlaceholder(temp, task.ID, ResolveTask{TempID: temp, ID: task.ID})
			return nil
		},
		revert: func() {
			r.ids.fail(temp)
			r.state.Dispatch(RemoveTask{ID: temp})
		},
	}, nil
}

// RenameTask changes a task's title.
type RenameTask struct {
	ID    int64
	Title string
}

func (RenameTask) name() string { return "rename_task" }

func (i RenameTask) prepare(r *Reconciler, b Board) (*op, error) {
	title := strings.TrimSpace(i.Title)
	if err := new(domain.Task).Rename(title); err != nil {
		return nil, err
	}
	taskID := r.ids.current(i.ID)
	task, ok := b.Task(taskID)
	if !ok {
		return nil, ErrUnknownTask
	}

	prev := task.Title
	return &op{
		apply:   []Action{SetTaskTitle{ID: taskID, Title: title}},
		touches: []touch{{KindTask, taskID}},
		id:      taskID,
		persist: func(ctx context.Context) error {
			id, err := r.ids.resolve(taskID)
			if err != nil {
				return err
			}
			return r.api.RenameTask(ctx, id, title)
		},
		revert: func() {
			r.state.Dispatch(SetTaskTitle{ID: r.ids.current(taskID), Title: prev, IfTitle: title})
		},
	}, nil
}

// MoveTask drops a task onto a column. A ColumnID that is zero or names no
// column on the board means the task was dropped outside any column, which is
// a no-op.
type MoveTask struct {
	ID       int64
	ColumnID int64
}

func (MoveTask) name() string { return "move_task" }

func (i MoveTask) prepare(r *Reconciler, b Board) (*op, error) {
	if i.ColumnID == 0 {
		return nil, nil
	}
	taskID := r.ids.current(i.ID)
	task, ok := b.Task(taskID)
	if !ok {
		return nil, ErrUnknownTask
	}
	columnID := r.ids.current(i.ColumnID)
	if _, ok := b.Column(columnID); !ok {
		return nil, nil
	}

	prev := task.ColumnID
	return &op{
		apply:   []Action{SetTaskColumn{ID: taskID, ColumnID: columnID}},
		touches: []touch{{KindTask, taskID}},
		id:      taskID,
		persist: func(ctx context.Context) error {
			id, err := r.ids.resolve(taskID)
			if err != nil {
				return err
			}
			to, err := r.ids.resolve(columnID)
			if err != nil {
				return err
			}
			return r.api.MoveTask(ctx, id, to)
		},
		revert: func() {
			r.state.Dispatch(SetTaskColumn{
				ID:         r.ids.current(taskID),
				ColumnID:   r.ids.current(prev),
				IfColumnID: r.ids.current(columnID),
			})
		},
	}, nil
}

// DeleteTask removes a task.
type DeleteTask struct {
	ID int64
}

func (DeleteTask) name() string { return "delete_task" }

func (i DeleteTask) prepare(r *Reconciler, b Board) (*op, error) {
	taskID := r.ids.current(i.ID)
	task, ok := b.Task(taskID)
	if !ok {
		return nil, ErrUnknownTask
	}

	return &op{
		apply: []Action{RemoveTask{ID: taskID}},
		id:    taskID,
		persist: func(ctx context.Context) error {
			id, err := r.ids.resolve(taskID)
			if err != nil {
				return err
			}
			return r.api.DeleteTask(ctx, id)
		},
		revert: func() {
			if r.ids.dead(taskID) || r.ids.dead(task.ColumnID) {
				return
			}
			restored := task.Task
			restored.ID = r.ids.current(taskID)
			restored.ColumnID = r.ids.current(task.ColumnID)
			if _, ok := r.state.Snapshot().Column(restored.ColumnID); !ok {
				return
			}
			r.state.Dispatch(PutTask{Task: restored})
		},
	}, nil
}
