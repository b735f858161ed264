package api

import (
	"context"
	"net/http"

	"github.com/okian/sensorboard/internal/domain/dashboard"
	"github.com/okian/sensorboard/pkg/logger"
	"github.com/okian/sensorboard/pkg/metrics"
)

// LogsProvider supplies the activity log.
type LogsProvider interface {
	Logs(ctx context.Context) []dashboard.LogEntry
}

// LogsHandler handles activity log requests.
type LogsHandler struct {
	deps LogsProvider
	log  logger.Logger
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(deps LogsProvider) *LogsHandler {
	return &LogsHandler{deps: deps, log: logger.NewNop()}
}

// HandleLogs handles GET /api/logs requests. A nil log is sent as [] so
// the front end can always iterate.
func (h *LogsHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries := h.deps.Logs(ctx)
	if entries == nil {
		entries = []dashboard.LogEntry{}
	}
	if err := writeJSON(w, http.StatusOK, entries); err != nil {
		reportEncodeError(ctx, h.log, "logs", err)
		return
	}
	metrics.RecordPayloadServed("logs")
}
