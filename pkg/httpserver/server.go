package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// State is a lifecycle phase of the server. Transitions are monotonic:
// Idle → Serving → ShuttingDown → Stopped, with no way back.
type State int32

const (
	StateIdle State = iota
	StateServing
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateServing:
		return "serving"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	preStopHooks    []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
}

// Server wraps http.Server with signal handling, an ordered graceful
// shutdown sequence, and lifecycle state reporting.
type Server struct {
	cfg          *config
	srv          *http.Server
	mu           sync.Mutex
	once         sync.Once
	state        atomic.Int32
	shutdownDone chan struct{}
}

// New returns a configured Server in the Idle state.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = newNoopLogger()
	}
	return &Server{cfg: cfg, shutdownDone: make(chan struct{})}
}

// State reports the current lifecycle phase.
func (s *Server) State() State {
	return State(s.state.Load())
}

// advance moves the lifecycle forward, never backward.
func (s *Server) advance(to State) {
	for {
		cur := s.state.Load()
		if cur >= int32(to) || s.state.CompareAndSwap(cur, int32(to)) {
			return
		}
	}
}

// Run binds the listener and blocks until shutdown completes. Shutdown is
// triggered by ctx cancellation, SIGINT, or SIGTERM. A bind failure is the
// only fatal outcome and is returned wrapped in ErrStart; drain errors are
// logged and absorbed.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
	}
	s.srv = srv
	s.mu.Unlock()

	s.advance(StateServing)
	s.cfg.logger.Info("http server listening", slog.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		s.shutdownAndLog()
		runErr = <-errCh
	case sig := <-stop:
		s.cfg.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		s.shutdownAndLog()
		runErr = <-errCh
	case runErr = <-errCh:
		// ListenAndServe returned on its own: either a bind failure or an
		// external Shutdown call closed the listener. In the latter case the
		// drain may still be in progress; Stopped must not be reported
		// before it finishes.
		if s.State() >= StateShuttingDown {
			<-s.shutdownDone
		}
	}

	s.advance(StateStopped)
	s.cfg.logger.Info("http server stopped")

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

func (s *Server) shutdownAndLog() {
	if err := s.Shutdown(context.Background()); err != nil {
		s.cfg.logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

// Shutdown drives the ordered shutdown sequence exactly once: pre-stop
// hooks fire first (this is where background work observes cancellation),
// then in-flight connections drain within the configured timeout, then stop
// hooks run. Safe for repeated calls; drain errors are wrapped in
// ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		defer close(s.shutdownDone)
		s.advance(StateShuttingDown)

		for _, h := range s.cfg.preStopHooks {
			h(s.cfg.logger)
		}

		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			s.advance(StateStopped)
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)

		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
