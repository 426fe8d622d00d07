// Package httpserver wraps net/http with an ordered graceful-shutdown
// sequence, lifecycle state reporting, and configurable timeouts.
//
// A Server moves through four phases: Idle after New, Serving once Run has
// bound the listener, ShuttingDown when a termination signal or context
// cancellation arrives, and Stopped when the drain completes or its deadline
// passes. Transitions never go backward and the process is expected to exit
// after Stopped.
//
// Shutdown ordering matters: pre-stop hooks registered through
// WithPreStopHook fire before the listener drains, which lets callers signal
// cancellation to background work while in-flight requests are still being
// served out. Stop hooks run after the drain.
//
// # Usage
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithShutdownTimeout(5*time.Second),
//		httpserver.WithPreStopHook(func(log *slog.Logger) {
//			tasks.Shutdown()
//		}),
//	)
//
//	if err := srv.Run(ctx, handler); err != nil {
//		// only a bind failure lands here
//	}
//
// Run wraps listen errors with ErrStart; Shutdown wraps drain errors with
// ErrShutdown. Use errors.Is to distinguish them.
package httpserver
