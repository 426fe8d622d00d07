package routekit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/routekit/pkg/logger"
)

// TaskInfo describes the background task launched for a request.
type TaskInfo struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

// Envelope is the response body served for every matched route.
type Envelope struct {
	Message        string   `json:"message"`
	BackgroundTask TaskInfo `json:"background_task"`
}

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON serializes body to w. Encoding failures are logged and absorbed:
// by the time encoding can fail, the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, body any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", logger.Error(err))
	}
}
