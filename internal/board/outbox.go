package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// job is one intent waiting to be persisted.
type job struct {
	ctx    context.Context
	name   string
	intent Intent
	op     *op
	result chan Result
}

// outbox is a buffered FIFO of jobs drained by a single worker.
type outbox struct {
	mu     sync.Mutex
	jobs   chan *job
	closed bool
	logger *slog.Logger
}

func newOutbox(size int, logger *slog.Logger) *outbox {
	return &outbox{
		jobs:   make(chan *job, size),
		logger: logger,
	}
}

// enqueue adds a job. It returns ErrClosed after close and ErrOutboxFull
// when the buffer is full.
func (o *outbox) enqueue(j *job) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}

	select {
	case o.jobs <- j:
		o.logger.Debug("intent enqueued",
			"intent", j.name,
			"queue_len", len(o.jobs),
			"queue_cap", cap(o.jobs))
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrOutboxFull, cap(o.jobs))
	}
}

// close stops accepting jobs. Jobs already queued are still delivered.
func (o *outbox) close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.closed {
		o.closed = true
		close(o.jobs)
		o.logger.Debug("outbox closed")
	}
}

// run processes jobs in order until the outbox is closed and drained.
func (o *outbox) run(process func(*job)) {
	for j := range o.jobs {
		process(j)
	}
}
