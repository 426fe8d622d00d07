package scheduler

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultCapacity is the default concurrency bound.
	DefaultCapacity = 10
	// DefaultWorkDuration is the default simulated work duration.
	DefaultWorkDuration = 2 * time.Second
)

type options struct {
	capacity int
	workDur  time.Duration
	logger   *slog.Logger
}

// Option configures the scheduler.
type Option func(*options)

// WithCapacity sets the maximum number of concurrently running tasks.
func WithCapacity(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("WithCapacity: capacity must be > 0, got %d", n))
	}
	return func(o *options) { o.capacity = n }
}

// WithWorkDuration sets how long each task's simulated work takes.
func WithWorkDuration(d time.Duration) Option {
	if d <= 0 {
		panic("WithWorkDuration: duration must be > 0")
	}
	return func(o *options) { o.workDur = d }
}

// WithLogger supplies an external slog.Logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
