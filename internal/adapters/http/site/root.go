// Package site serves the dashboard page and its embedded assets.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/sensorboard/pkg/logger"
	"github.com/okian/sensorboard/pkg/metrics"
)

// Error constants
var (
	ErrRender = errors.New("dashboard page render failed")
	ErrServe  = errors.New("dashboard page serve failed")
)

// Page is the data the index template is rendered with. It is fixed at
// construction time; the template takes no request input.
type Page struct {
	Title     string
	ChartsURL string
	LogsURL   string
	ScriptURL string
}

// DefaultPage is what the dashboard renders with.
var DefaultPage = Page{
	Title:     "Sensor Dashboard",
	ChartsURL: "/api/charts",
	LogsURL:   "/api/logs",
	ScriptURL: "/static/js/app.js",
}

// RootHandler renders the dashboard index page.
type RootHandler struct {
	tmpl *template.Template
	page Page
	log  logger.Logger
}

// NewRootHandler parses the embedded index template.
func NewRootHandler(log logger.Logger) (*RootHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return newRootHandler(tmpl, DefaultPage, log), nil
}

func newRootHandler(tmpl *template.Template, page Page, log logger.Logger) *RootHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &RootHandler{tmpl: tmpl, page: page, log: log}
}

// HandleRoot handles GET / requests. The page is rendered into a buffer
// first so a template failure never leaves a half-written 200.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", h.page); err != nil {
		metrics.RecordRenderError("site")
		h.log.Error(r.Context(), "failed to render index", logger.Error(fmt.Errorf("%w: %w", ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn(r.Context(), "failed to write index", logger.Error(fmt.Errorf("%w: %w", ErrServe, err)))
		return
	}
	metrics.RecordPageRender()
}

// Register attaches the dashboard page and its assets to mux.
//
//	GET /           -> rendered index page (exact match only)
//	GET /static/... -> embedded scripts
func Register(_ context.Context, mux *http.ServeMux, log logger.Logger) error {
	if mux == nil {
		panic("mux is nil")
	}

	root, err := NewRootHandler(log)
	if err != nil {
		return err
	}

	mux.HandleFunc("GET /{$}", root.HandleRoot)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
	return nil
}
