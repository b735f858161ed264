// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/sensorboard/pkg/logger"
	"github.com/okian/sensorboard/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ChartsProvider
	LogsProvider
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler *HealthHandler
	chartsHandler *ChartsHandler
	logsHandler   *LogsHandler

	metricsEnabled bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMetricsEndpoint toggles GET /metrics.
func WithMetricsEndpoint(enabled bool) ServerOption {
	return func(s *Server) { s.metricsEnabled = enabled }
}

// WithLogger sets the logger used by handlers to report encode failures.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l == nil {
			return
		}
		s.chartsHandler.log = l
		s.logsHandler.log = l
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		chartsHandler:  NewChartsHandler(deps),
		logsHandler:    NewLogsHandler(deps),
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux. Method-qualified patterns leave
// 404 and 405 answers to the mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /api/charts", MetricsMiddleware(s.chartsHandler.HandleCharts, "charts"))
	mux.HandleFunc("GET /api/logs", MetricsMiddleware(s.logsHandler.HandleLogs, "logs"))
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	if s.metricsEnabled {
		mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON marshals v before touching the response so an encode failure
// can still be answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return Wrap("api.write_json", ErrEncode, err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	body, _ := json.Marshal(errorResponse{Code: code, Message: msg})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// reportEncodeError logs and counts a failed JSON response.
func reportEncodeError(ctx context.Context, log logger.Logger, payload string, err error) {
	metrics.RecordRenderError("api")
	log.Error(ctx, "failed to encode payload", logger.String("payload", payload), logger.Error(err))
}

