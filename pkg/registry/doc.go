// Package registry provides the thread-safe route table backing the
// dispatcher, together with stores for named middleware toggles and
// dependency values supplied through the registration API.
//
// Routes are keyed by path with a last-write-wins policy: registering a path
// twice replaces the earlier entry without error. Reads take a shared lock so
// concurrent lookups never block each other; registration takes the exclusive
// lock and is expected to be rare relative to dispatch.
//
// # Usage
//
//	reg := registry.New()
//	reg.Register(registry.Route{Path: "/api/hello", Message: "Hello, World!"})
//
//	if route, ok := reg.Lookup("/api/hello"); ok {
//		fmt.Println(route.Message)
//	}
//
// Middleware toggles and dependency values are stored verbatim. The registry
// assigns them no behavior on its own.
package registry
