// Package httpapi exposes dashboard layout operations over HTTP.
//
// All endpoints are JSON except the SVG render. Layout semantics live in
// pkg/dashboard; this package only translates HTTP to runner calls and
// error codes to status codes.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/render"
)

// Server serves the dashboard layout API.
type Server struct {
	runner *dashboard.Runner
	logger *log.Logger
	addr   string
}

// New creates a server for the given runner.
func New(runner *dashboard.Runner, addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, addr: addr}
}

// Routes builds the HTTP routing table.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/dashboards", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{dashboardID}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Delete("/", s.handleDeleteDashboard)
			r.Get("/render", s.handleRender)
			r.Post("/environment", s.handleEnvironment)
			r.Post("/widgets", s.handleCreateWidget)
			r.Post("/widgets/{widgetID}/resize", s.handleResizeWidget)
			r.Delete("/widgets/{widgetID}", s.handleRemoveWidget)
		})
	})

	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runner.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"dashboards": ids})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	rec, err := s.runner.Snapshot(r.Context(), chi.URLParam(r, "dashboardID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteDashboard(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.DeleteDashboard(r.Context(), chi.URLParam(r, "dashboardID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createWidgetRequest is the body for widget creation.
type createWidgetRequest struct {
	Kind        grid.Kind        `json:"kind"`
	SizeClass   grid.SizeClass   `json:"size_class,omitempty"`
	Environment grid.Environment `json:"environment"`
}

// widgetResponse pairs the mutation result with the affected widget.
type widgetResponse struct {
	Widget   grid.Widget   `json:"widget"`
	Columns  int           `json:"columns"`
	Snapshot grid.Snapshot `json:"snapshot"`
}

func (s *Server) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	var req createWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	rec, widget, err := s.runner.CreateWidget(r.Context(), chi.URLParam(r, "dashboardID"), req.Kind, req.SizeClass, req.Environment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, widgetResponse{
		Widget:   widget,
		Columns:  rec.Columns,
		Snapshot: rec.Snapshot,
	})
}

// resizeWidgetRequest is the body for widget resizing.
type resizeWidgetRequest struct {
	SizeClass   grid.SizeClass   `json:"size_class"`
	Environment grid.Environment `json:"environment"`
}

func (s *Server) handleResizeWidget(w http.ResponseWriter, r *http.Request) {
	var req resizeWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	widgetID := chi.URLParam(r, "widgetID")
	rec, err := s.runner.ResizeWidget(r.Context(), chi.URLParam(r, "dashboardID"), widgetID, req.SizeClass, req.Environment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	widget, _ := rec.Snapshot.Find(widgetID)
	writeJSON(w, http.StatusOK, widgetResponse{
		Widget:   widget,
		Columns:  rec.Columns,
		Snapshot: rec.Snapshot,
	})
}

func (s *Server) handleRemoveWidget(w http.ResponseWriter, r *http.Request) {
	rec, err := s.runner.RemoveWidget(r.Context(), chi.URLParam(r, "dashboardID"), chi.URLParam(r, "widgetID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns":  rec.Columns,
		"snapshot": rec.Snapshot,
	})
}

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	var env grid.Environment
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	layout, err := s.runner.EnvironmentChanged(r.Context(), chi.URLParam(r, "dashboardID"), env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dashboard_id": layout.DashboardID,
		"breakpoint":   layout.Breakpoint.String(),
		"columns":      layout.Columns,
		"snapshot":     layout.Snapshot,
		"cache_hit":    layout.CacheHit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dashboardID")
	rec, err := s.runner.Snapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := []render.SVGOption{render.WithTitle(id)}
	if labels, _ := strconv.ParseBool(r.URL.Query().Get("labels")); labels {
		opts = append(opts, render.WithLabels())
	}
	if gridlines, _ := strconv.ParseBool(r.URL.Query().Get("gridlines")); gridlines {
		opts = append(opts, render.WithGridlines())
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.RenderSVG(rec.Snapshot, rec.Columns, opts...))
}
