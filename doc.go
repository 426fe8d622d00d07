// Package routekit is a minimal HTTP server whose routing table is populated
// at runtime through a narrow registration API, and which launches one
// best-effort background task for every request it serves.
//
// The App facade wires three concerns together:
//
//   - a thread-safe route registry (pkg/registry) read on every request and
//     mutated only through RegisterRoute, with last-write-wins semantics;
//
//   - a bounded-concurrency background task scheduler (pkg/scheduler) that
//     runs a fixed-duration unit of work per request, never blocking the
//     request path, with cooperative cancellation at shutdown;
//
//   - a graceful HTTP server (pkg/httpserver) that reacts to SIGINT/SIGTERM
//     by cancelling background tasks first and then draining in-flight
//     requests within a bounded grace period.
//
// Dispatch serves a single read-only verb. A matched route answers 200 with
// the envelope {"message": ..., "background_task": {"message": ...,
// "task_id": ...}}; unknown paths answer 404 and disallowed methods 405,
// both with JSON error bodies. Task outcomes are intentionally invisible to
// HTTP clients: the response is written before the task completes.
//
// # Usage
//
//	app := routekit.New(routekit.WithLogger(log))
//	app.RegisterRoute("/api/hello", "GET", "Hello, World!", "Get a hello message")
//
//	// Blocks until SIGINT/SIGTERM or ctx cancellation, then shuts down
//	// gracefully.
//	if err := app.Run(context.Background()); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// A machine-readable description of the registered routes is served at
// /openapi.json.
package routekit
