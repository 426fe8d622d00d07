package routekit

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/routekit/pkg/httpserver"
	"github.com/dmitrymomot/routekit/pkg/registry"
	"github.com/dmitrymomot/routekit/pkg/scheduler"
)

// defaultTaskDrainTimeout bounds the wait for background tasks to reach a
// terminal state after cancellation has been signalled.
const defaultTaskDrainTimeout = 5 * time.Second

// App wires the route registry, the background task scheduler, and the HTTP
// server into one process. Routes, middleware toggles, and dependency values
// may be registered before Run or concurrently with serving; registering
// after the server has stopped is undefined.
type App struct {
	registry  *registry.Registry
	scheduler *scheduler.Scheduler
	logger    *slog.Logger

	httpOpts     []httpserver.Option
	drainTimeout time.Duration

	handlerOnce sync.Once
	handler     http.Handler

	mu  sync.Mutex
	srv *httpserver.Server
}

// Option configures the App.
type Option func(*App)

// WithLogger supplies an external slog.Logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRegistry replaces the default route registry.
func WithRegistry(r *registry.Registry) Option {
	return func(a *App) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithScheduler replaces the default background task scheduler.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(a *App) {
		if s != nil {
			a.scheduler = s
		}
	}
}

// WithServerOptions appends options for the underlying HTTP server.
func WithServerOptions(opts ...httpserver.Option) Option {
	return func(a *App) {
		a.httpOpts = append(a.httpOpts, opts...)
	}
}

// WithTaskDrainTimeout bounds the shutdown wait for background tasks to
// reach a terminal state.
func WithTaskDrainTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithTaskDrainTimeout: duration must be > 0")
	}
	return func(a *App) { a.drainTimeout = d }
}

// New returns an App ready for registration and Run.
func New(opts ...Option) *App {
	a := &App{drainTimeout: defaultTaskDrainTimeout}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.registry == nil {
		a.registry = registry.New()
	}
	if a.scheduler == nil {
		a.scheduler = scheduler.New(scheduler.WithLogger(a.logger))
	}
	return a
}

// RegisterRoute stores or replaces the route for path. The method and
// description are kept for the generated API documentation; dispatch itself
// serves a single read-only verb. Safe for concurrent use with serving.
func (a *App) RegisterRoute(path, method, message, description string) {
	a.registry.Register(registry.Route{
		Path:        path,
		Method:      method,
		Message:     message,
		Description: description,
	})
	a.logger.Info("route registered",
		slog.String("path", path),
		slog.String("method", method))
}

// RegisterMiddleware records the enabled state for a named middleware
// toggle. Only "logging" affects dispatch; unknown names are stored without
// effect.
func (a *App) RegisterMiddleware(name string, enabled bool) {
	a.registry.SetMiddleware(name, enabled)
	a.logger.Info("middleware registered",
		slog.String("name", name),
		slog.Bool("enabled", enabled))
}

// RegisterDependency stores a named dependency value for later reference.
// Dispatch does not consume dependencies.
func (a *App) RegisterDependency(name, value string) {
	a.registry.SetDependency(name, value)
	a.logger.Info("dependency registered", slog.String("name", name))
}

// Run starts the HTTP server and blocks until shutdown completes: on
// SIGINT, SIGTERM, or ctx cancellation the scheduler's cancellation signal
// fires first, then in-flight requests drain within the server's shutdown
// timeout, then Run waits for background tasks to settle. Only a listener
// bind failure produces an error.
func (a *App) Run(ctx context.Context) error {
	opts := append([]httpserver.Option{httpserver.WithLogger(a.logger)}, a.httpOpts...)
	opts = append(opts,
		httpserver.WithPreStopHook(func(log *slog.Logger) {
			log.Info("cancelling background tasks")
			a.scheduler.Shutdown()
		}),
		httpserver.WithStopHook(func(log *slog.Logger) {
			waitCtx, cancel := context.WithTimeout(context.Background(), a.drainTimeout)
			defer cancel()
			if err := a.scheduler.Wait(waitCtx); err != nil {
				log.Warn("background tasks did not settle before deadline",
					slog.Any("error", err))
			}
		}),
	)

	srv := httpserver.New(opts...)
	a.mu.Lock()
	a.srv = srv
	a.mu.Unlock()

	return srv.Run(ctx, a.Handler())
}

// Shutdown triggers the graceful shutdown sequence without an OS signal.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	srv := a.srv
	a.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// State reports the server lifecycle phase, or Idle before Run.
func (a *App) State() httpserver.State {
	a.mu.Lock()
	srv := a.srv
	a.mu.Unlock()
	if srv == nil {
		return httpserver.StateIdle
	}
	return srv.State()
}
