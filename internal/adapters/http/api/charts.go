package api

import (
	"context"
	"net/http"

	"github.com/okian/sensorboard/internal/domain/dashboard"
	"github.com/okian/sensorboard/pkg/logger"
	"github.com/okian/sensorboard/pkg/metrics"
)

// ChartsProvider supplies the chart payload.
type ChartsProvider interface {
	Charts(ctx context.Context) dashboard.ChartsPayload
}

// ChartsHandler handles chart data requests.
type ChartsHandler struct {
	deps ChartsProvider
	log  logger.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsProvider) *ChartsHandler {
	return &ChartsHandler{deps: deps, log: logger.NewNop()}
}

// HandleCharts handles GET /api/charts requests.
func (h *ChartsHandler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := writeJSON(w, http.StatusOK, h.deps.Charts(ctx)); err != nil {
		reportEncodeError(ctx, h.log, "charts", err)
		return
	}
	metrics.RecordPayloadServed("charts")
}
