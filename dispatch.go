package routekit

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/routekit/pkg/clientip"
	"github.com/dmitrymomot/routekit/pkg/logger"
	"github.com/dmitrymomot/routekit/pkg/requestid"
)

// Handler returns the composed HTTP handler. The router itself is static;
// route resolution happens per request against the registry, so routes
// registered while serving take effect immediately.
func (a *App) Handler() http.Handler {
	a.handlerOnce.Do(func() {
		r := chi.NewRouter()
		r.Use(requestid.Middleware)
		r.Use(a.requestLogger)

		r.MethodNotAllowed(a.methodNotAllowed)
		r.Get("/openapi.json", a.serveOpenAPI)
		r.Get("/*", a.dispatch)

		a.handler = r
	})
	return a.handler
}

// dispatch resolves the request path against the registry, fires one
// background task, and serves the response envelope. The task outcome is
// deliberately invisible to the client: the response is written before the
// task finishes.
func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	route, ok := a.registry.Lookup(r.URL.Path)
	if !ok {
		a.logger.InfoContext(r.Context(), "route not found",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.RemoteAddr(clientip.FromRequest(r)))
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"}, a.logger)
		return
	}

	taskID := a.scheduler.NextTaskID()
	task := a.scheduler.Submit(taskID)

	writeJSON(w, http.StatusOK, Envelope{
		Message:        route.Message,
		BackgroundTask: TaskInfo{Message: "Task started in background: " + task.ID(), TaskID: task.ID()},
	}, a.logger)
}

func (a *App) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.logger.InfoContext(r.Context(), "method not allowed",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.RemoteAddr(clientip.FromRequest(r)))
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"}, a.logger)
}

// requestLogger logs one line per handled request. The "logging" middleware
// toggle is consulted per request so a toggle registered mid-flight is
// honored; the toggle defaults to enabled when never registered.
func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if enabled, ok := a.registry.Middleware("logging"); ok && !enabled {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		a.logger.InfoContext(r.Context(), "request handled",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.RemoteAddr(clientip.FromRequest(r)),
			logger.Duration(time.Since(start)))
	})
}
