package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/kanban-api/internal/client"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// DefaultOutboxSize is the number of intents that may wait to persist.
const DefaultOutboxSize = 256

// Result is the outcome of one intent.
type Result struct {
	// Intent is the intent this result belongs to.
	Intent Intent
	// ID is the server ID of the entity the intent created or changed.
	// It is zero for no-op intents.
	ID int64
	// Err is nil when the intent was persisted or was a no-op.
	Err error
}

// Reconciler applies intents to State optimistically and persists them
// through the API client in submission order.
type Reconciler struct {
	api    client.API
	state  *State
	ids    *idMap
	outbox *outbox
	logger *slog.Logger

	// submitMu orders optimistic application with enqueueing, and with every
	// state change made by the worker, so an intent is prepared and applied
	// against one consistent view of placeholder IDs.
	submitMu sync.Mutex
	wg       sync.WaitGroup
	started  bool
}

// Config holds Reconciler options.
type Config struct {
	// OutboxSize bounds the number of queued intents. Zero uses DefaultOutboxSize.
	OutboxSize int
}

// NewReconciler creates a Reconciler over state. Call Start before submitting
// intents and Close when done.
func NewReconciler(api client.API, state *State, cfg Config, logger *slog.Logger) *Reconciler {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("api cannot be nil")
	}
	if state == nil {
		state = NewState()
	}
	if logger == nil {
		logger = slog.Default()
	}
	size := cfg.OutboxSize
	if size <= 0 {
		size = DefaultOutboxSize
	}
	logger = logger.With("component", "board_reconciler")

	return &Reconciler{
		api:    api,
		state:  state,
		ids:    newIDMap(),
		outbox: newOutbox(size, logger),
		logger: logger,
	}
}

// State returns the state container the reconciler mutates.
func (r *Reconciler) State() *State {
	return r.state
}

// Start launches the outbox worker.
func (r *Reconciler) Start() {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()
	if r.started {
		return
	}
	r.started = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.outbox.run(r.process)
	}()
	r.logger.Debug("reconciler started")
}

// Close stops accepting intents and waits for queued intents to finish.
// Intents queued on a reconciler that was never started fail with ErrClosed.
func (r *Reconciler) Close() {
	r.submitMu.Lock()
	started := r.started
	r.outbox.close()
	r.submitMu.Unlock()

	if !started {
		r.outbox.run(func(j *job) { r.finishLocked(j, ErrClosed) })
	}
	r.wg.Wait()
	r.logger.Debug("reconciler stopped")
}

// Load fetches columns and tasks concurrently and replaces the board.
func (r *Reconciler) Load(ctx context.Context) error {
	var (
		columns []domain.Column
		tasks   []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		columns, err = r.api.ListColumns(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = r.api.ListTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Warn("failed to load board", "error", err)
		return err
	}

	r.state.Dispatch(Load{Columns: columns, Tasks: tasks})
	r.logger.Debug("board loaded", "columns", len(columns), "tasks", len(tasks))
	return nil
}

// Reload waits for queued intents to finish and then loads the board again.
func (r *Reconciler) Reload(ctx context.Context) error {
	if err := r.Flush(ctx); err != nil {
		return err
	}
	return r.Load(ctx)
}

// Flush waits until every intent submitted before the call has finished.
func (r *Reconciler) Flush(ctx context.Context) error {
	res := r.enqueue(ctx, nil, &op{})
	select {
	case out := <-res:
		return out.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit applies the intent to State immediately and queues it for
// persisting. The returned channel receives exactly one Result and is then
// closed. ctx is used for the API call.
func (r *Reconciler) Submit(ctx context.Context, intent Intent) <-chan Result {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()

	o, err := intent.prepare(r, r.state.Snapshot())
	if err != nil {
		return done(Result{Intent: intent, Err: err})
	}
	if o == nil {
		return done(Result{Intent: intent})
	}

	r.state.Dispatch(append(o.apply, r.trackActions(o, 1)...)...)
	return r.enqueueLocked(ctx, intent, o)
}

// Do submits the intent and waits for its result.
func (r *Reconciler) Do(ctx context.Context, intent Intent) (Result, error) {
	select {
	case res := <-r.Submit(ctx, intent):
		return res, res.Err
	case <-ctx.Done():
		return Result{Intent: intent, Err: ctx.Err()}, ctx.Err()
	}
}

func (r *Reconciler) enqueue(ctx context.Context, intent Intent, o *op) <-chan Result {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()
	return r.enqueueLocked(ctx, intent, o)
}

func (r *Reconciler) enqueueLocked(ctx context.Context, intent Intent, o *op) <-chan Result {
	name := "flush"
	if intent != nil {
		name = intent.name()
	}
	j := &job{ctx: ctx, name: name, intent: intent, op: o, result: make(chan Result, 1)}
	if err := r.outbox.enqueue(j); err != nil {
		r.finish(j, err)
	}
	return j.result
}

// process persists one job on the outbox worker.
func (r *Reconciler) process(j *job) {
	var err error
	if j.op.persist != nil {
		start := time.Now()
		err = j.op.persist(j.ctx)
		r.logger.Debug("intent persisted",
			"intent", j.name,
			"duration_ms", time.Since(start).Milliseconds(),
			"ok", err == nil)
	}
	r.finishLocked(j, err)
}

// resolvePlaceholder records the server ID for temp and rewrites the board.
func (r *Reconciler) resolvePlaceholder(temp, id int64, resolve Action) {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()
	r.ids.set(temp, id)
	r.state.Dispatch(resolve)
}

func (r *Reconciler) finishLocked(j *job, err error) {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()
	r.finish(j, err)
}

// finish settles pending marks, reverts on failure and publishes the result.
// The caller holds submitMu.
func (r *Reconciler) finish(j *job, err error) {
	if settle := r.trackActions(j.op, -1); len(settle) > 0 {
		r.state.Dispatch(settle...)
	}
	if err != nil {
		if j.op.revert != nil {
			j.op.revert()
		}
		if j.intent != nil {
			r.logger.Warn("intent failed, reverted local change",
				"intent", j.name,
				"network_error", client.IsNetworkError(err),
				"error", err)
		}
	}
	res := Result{Intent: j.intent, Err: err}
	if err == nil {
		if id := r.ids.current(j.op.id); id > 0 {
			res.ID = id
		}
	}
	j.result <- res
	close(j.result)
}

// trackActions marks the entities an op touches as pending (delta 1) or
// settles them (delta -1).
func (r *Reconciler) trackActions(o *op, delta int) []Action {
	actions := make([]Action, 0, len(o.touches))
	for _, t := range o.touches {
		actions = append(actions, Track{Kind: t.kind, ID: r.ids.current(t.id), Delta: delta})
	}
	return actions
}

func done(res Result) <-chan Result {
	ch := make(chan Result, 1)
	ch <- res
	close(ch)
	return ch
}

// idMap records the server IDs assigned to temporary IDs.
type idMap struct {
	mu       sync.Mutex
	next     int64
	resolved map[int64]int64
	failed   map[int64]bool
}

func newIDMap() *idMap {
	return &idMap{resolved: make(map[int64]int64), failed: make(map[int64]bool)}
}

// temp allocates a new temporary ID.
func (m *idMap) temp() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next--
	return m.next
}

func (m *idMap) set(temp, id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved[temp] = id
}

func (m *idMap) fail(temp int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[temp] = true
}

// current maps a temporary ID to its server ID once known.
func (m *idMap) current(id int64) int64 {
	if id > 0 {
		return id
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if real, ok := m.resolved[id]; ok {
		return real
	}
	return id
}

// resolve returns the server ID for id, or ErrUnresolvedID if it has none.
func (m *idMap) resolve(id int64) (int64, error) {
	if real := m.current(id); real > 0 {
		return real, nil
	}
	return 0, ErrUnresolvedID
}

// dead reports whether id belongs to a placeholder whose creation failed.
func (m *idMap) dead(id int64) bool {
	if id > 0 {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed[id]
}
