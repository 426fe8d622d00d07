package registry

import (
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Route describes a single registered endpoint. Message is the static
// payload served for the route; Description feeds the generated API
// documentation.
type Route struct {
	Path        string
	Method      string
	Message     string
	Description string
}

// Registry is a thread-safe store for routes, middleware toggles, and named
// dependency values. It is safe for concurrent registration while the server
// is dispatching requests.
//
// Registration follows a last-write-wins policy: re-registering a path
// silently replaces the previous entry. Entries are never removed.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Route

	mwMu        sync.RWMutex
	middlewares map[string]bool

	depMu sync.RWMutex
	deps  map[string]string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		routes:      make(map[string]Route),
		middlewares: make(map[string]bool),
		deps:        make(map[string]string),
	}
}

// Register stores or replaces the route for its path. An empty method
// defaults to GET. The method is normalized to upper case.
func (r *Registry) Register(route Route) {
	if route.Method == "" {
		route.Method = http.MethodGet
	}
	route.Method = strings.ToUpper(route.Method)

	r.mu.Lock()
	r.routes[route.Path] = route
	r.mu.Unlock()
}

// Lookup returns the route registered for path.
func (r *Registry) Lookup(path string) (Route, bool) {
	r.mu.RLock()
	route, ok := r.routes[path]
	r.mu.RUnlock()
	return route, ok
}

// Len reports the number of registered routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

// Snapshot returns a copy of all registered routes sorted by path. The
// result is detached from the registry and safe to iterate without locking.
func (r *Registry) Snapshot() []Route {
	r.mu.RLock()
	routes := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	r.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })
	return routes
}

// SetMiddleware records the enabled state for a named middleware toggle.
// The registry does not interpret names; the dispatcher decides which
// toggles have an effect.
func (r *Registry) SetMiddleware(name string, enabled bool) {
	r.mwMu.Lock()
	r.middlewares[name] = enabled
	r.mwMu.Unlock()
}

// Middleware reports the recorded state of a named middleware toggle.
func (r *Registry) Middleware(name string) (enabled, ok bool) {
	r.mwMu.RLock()
	enabled, ok = r.middlewares[name]
	r.mwMu.RUnlock()
	return enabled, ok
}

// SetDependency stores a named dependency value for later reference.
func (r *Registry) SetDependency(name, value string) {
	r.depMu.Lock()
	r.deps[name] = value
	r.depMu.Unlock()
}

// Dependency returns a previously stored dependency value.
func (r *Registry) Dependency(name string) (string, bool) {
	r.depMu.RLock()
	value, ok := r.deps[name]
	r.depMu.RUnlock()
	return value, ok
}
