package routekit

import (
	"net/http"
	"strings"
)

// openAPIDoc is the minimal OpenAPI 3.0 document shape generated from the
// registry. Only the fields the route metadata can fill are present.
type openAPIDoc struct {
	OpenAPI string                          `json:"openapi"`
	Info    openAPIInfo                     `json:"info"`
	Paths   map[string]map[string]openAPIOp `json:"paths"`
}

type openAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type openAPIOp struct {
	Summary   string                     `json:"summary,omitempty"`
	Responses map[string]openAPIResponse `json:"responses"`
}

type openAPIResponse struct {
	Description string `json:"description"`
}

// serveOpenAPI builds the API document from a registry snapshot on every
// request, so routes registered while serving show up without restart.
func (a *App) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc := openAPIDoc{
		OpenAPI: "3.0.0",
		Info:    openAPIInfo{Title: "routekit API", Version: "1.0.0"},
		Paths:   make(map[string]map[string]openAPIOp),
	}

	for _, route := range a.registry.Snapshot() {
		ops, ok := doc.Paths[route.Path]
		if !ok {
			ops = make(map[string]openAPIOp)
			doc.Paths[route.Path] = ops
		}
		ops[strings.ToLower(route.Method)] = openAPIOp{
			Summary: route.Description,
			Responses: map[string]openAPIResponse{
				"200": {Description: "Successful response"},
			},
		}
	}

	writeJSON(w, http.StatusOK, doc, a.logger)
}
