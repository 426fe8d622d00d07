package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// State represents the lifecycle state of a background task.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Task is the handle for one unit of background work. It is created by
// Submit and owned by the scheduler until it reaches a terminal state.
type Task struct {
	id   string
	mu   sync.Mutex
	st   State
	done chan struct{}
}

// ID returns the task identifier.
func (t *Task) ID() string { return t.id }

// State returns the current lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}

// Done returns a channel closed when the task reaches a terminal state.
// Dispatch never waits on it; it exists for tests and operational tooling.
func (t *Task) Done() <-chan struct{} { return t.done }

// transition moves the task to the given state. Terminal states are sticky:
// a cancelled task never becomes completed and vice versa.
func (t *Task) transition(to State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.st == StateCompleted || t.st == StateCancelled {
		return false
	}
	t.st = to
	return true
}

// Scheduler runs fire-and-forget background tasks with a fixed concurrency
// bound. Each submitted task runs on its own goroutine but must hold one of
// the scheduler's slots while executing; at most capacity tasks are in the
// running state at any moment. A single shared cancellation signal, fired by
// Shutdown, is observed cooperatively by queued and running tasks.
type Scheduler struct {
	sem     chan struct{}
	workDur time.Duration
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	wg      sync.WaitGroup
	running atomic.Int64
	lastID  atomic.Int64
}

// New returns a Scheduler ready to accept submissions.
func New(opts ...Option) *Scheduler {
	options := &options{
		capacity: DefaultCapacity,
		workDur:  DefaultWorkDuration,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		sem:     make(chan struct{}, options.capacity),
		workDur: options.workDur,
		logger:  options.logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NextTaskID returns a process-unique, time-derived task identifier.
// Identifiers are strictly increasing even when requested concurrently.
func (s *Scheduler) NextTaskID() string {
	for {
		last := s.lastID.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if s.lastID.CompareAndSwap(last, next) {
			return fmt.Sprintf("task-%d", next)
		}
	}
}

// Submit schedules one unit of background work and returns its handle
// immediately. The caller is never blocked by slot acquisition or task
// execution; submission after Shutdown yields a task that cancels without
// running. Submission has no failure mode.
func (s *Scheduler) Submit(id string) *Task {
	task := &Task{id: id, st: StatePending, done: make(chan struct{})}
	s.wg.Add(1)
	go s.run(task)
	return task
}

func (s *Scheduler) run(task *Task) {
	defer s.wg.Done()
	defer close(task.done)

	// Fast path: shutdown already signalled, never contend for a slot.
	if s.ctx.Err() != nil {
		task.transition(StateCancelled)
		s.logger.Info("background task not started due to shutdown",
			slog.String("task_id", task.id))
		return
	}

	select {
	case s.sem <- struct{}{}:
	case <-s.ctx.Done():
		task.transition(StateCancelled)
		s.logger.Info("background task not started due to shutdown",
			slog.String("task_id", task.id))
		return
	}
	// Slot release must survive panics in the work body.
	defer func() { <-s.sem }()

	// The select above picks randomly when both a slot and cancellation are
	// ready; re-check so a task never starts after shutdown has fired.
	if s.ctx.Err() != nil {
		task.transition(StateCancelled)
		s.logger.Info("background task not started due to shutdown",
			slog.String("task_id", task.id))
		return
	}

	task.transition(StateRunning)
	s.running.Add(1)
	defer s.running.Add(-1)

	start := time.Now()
	s.logger.Info("background task started", slog.String("task_id", task.id))

	timer := time.NewTimer(s.workDur)
	defer timer.Stop()

	select {
	case <-timer.C:
		task.transition(StateCompleted)
		s.logger.Info("background task completed",
			slog.String("task_id", task.id),
			slog.Duration("duration", time.Since(start)))
	case <-s.ctx.Done():
		task.transition(StateCancelled)
		s.logger.Info("background task cancelled",
			slog.String("task_id", task.id),
			slog.Duration("duration", time.Since(start)))
	}
}

// Running reports how many tasks currently hold a slot.
func (s *Scheduler) Running() int {
	return int(s.running.Load())
}

// Capacity reports the concurrency bound.
func (s *Scheduler) Capacity() int { return cap(s.sem) }

// Shutdown fires the shared cancellation signal. It is safe for repeated
// calls; only the first has an effect. Tasks observe the signal
// cooperatively, so Shutdown returns without waiting for them.
func (s *Scheduler) Shutdown() {
	s.cancel()
}

// Wait blocks until every submitted task has reached a terminal state or
// the context expires, whichever happens first.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
