package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/flowgrid"
	"github.com/aretw0/flowgrid/internal/logging"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/runner"
	"github.com/aretw0/flowgrid/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Server exposes grid sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager
	Logger   *slog.Logger

	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a server over a session manager.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: mgr,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.Logger)
	return s
}

// NewHandler creates the HTTP handler for a session manager.
func NewHandler(mgr *session.Manager, opts ...Option) (http.Handler, error) {
	return NewServer(mgr, opts...).Handler()
}

// Handler builds the router. Requests under the documented paths are
// validated against the embedded API document first.
func (s *Server) Handler() (http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc, s.writeError)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(RawSpec())
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)

		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)

		r.Route("/grids", func(r chi.Router) {
			r.Get("/", s.ListGrids)
			r.Post("/", s.OpenGrid)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetGrid)
				r.Delete("/", s.DeleteGrid)
				r.Post("/events", s.ApplyEvent)
				r.Get("/outputs", s.GetOutputs)
				r.Get("/stream", s.StreamOutputs)
			})
		})
	})
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OpenRequest is the body of POST /grids.
type OpenRequest struct {
	GridID  string          `json:"grid_id,omitempty"`
	Config  domain.Config   `json:"config"`
	Records []domain.Record `json:"records"`
}

// EventResponse is the body returned by POST /grids/{id}/events.
type EventResponse struct {
	Changed bool                   `json:"changed"`
	View    *domain.View           `json:"view"`
	Actions []domain.ActionRequest `json:"actions"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "flowgrid-http",
		"version":     strings.TrimSpace(flowgrid.Version),
		"api_version": apiVersion,
	})
}

// ListGrids handles GET /grids.
func (s *Server) ListGrids(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"grids": ids})
}

// OpenGrid handles POST /grids.
func (s *Server) OpenGrid(w http.ResponseWriter, r *http.Request) {
	var body OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, &ValidationError{Err: err})
		return
	}

	state, err := s.Sessions.Open(r.Context(), body.GridID, body.Config, body.Records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eng := s.Sessions.Engine()
	s.writeJSON(w, http.StatusCreated, eng.Project(r.Context(), state))
}

// GetGrid handles GET /grids/{id}.
func (s *Server) GetGrid(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// DeleteGrid handles DELETE /grids/{id}.
func (s *Server) DeleteGrid(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyEvent handles POST /grids/{id}/events.
func (s *Server) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	gridID := chi.URLParam(r, "id")

	var ev domain.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		s.writeError(w, r, &ValidationError{Err: err})
		return
	}

	// Sanitize Input (Global Policy)
	ev, err := runner.SanitizeEvent(ev)
	if err != nil {
		s.Logger.Warn("ApplyEvent: input rejected", "grid_id", gridID, "err", err)
		s.writeError(w, r, &ValidationError{Err: err})
		return
	}

	update, err := s.Sessions.Apply(r.Context(), gridID, ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	eng := s.Sessions.Engine()
	if update.Changed() {
		old := eng.Outputs(update.Previous)
		if diff := domain.DiffOutputs(&old, eng.Outputs(update.State)); diff != nil {
			diff.GridID = gridID
			diff.Revision = update.State.Revision
			s.Logger.Debug("ApplyEvent: outputs changed", "grid_id", gridID, "outputs", diff.Changed())
			s.Streams.Broadcast(gridID, diff)
		}
	}

	actions := update.Actions
	if actions == nil {
		actions = []domain.ActionRequest{}
	}
	s.writeJSON(w, http.StatusOK, EventResponse{
		Changed: update.Changed(),
		View:    eng.Project(r.Context(), update.State),
		Actions: actions,
	})
}

// GetOutputs handles GET /grids/{id}/outputs.
func (s *Server) GetOutputs(w http.ResponseWriter, r *http.Request) {
	outputs, err := s.Sessions.Outputs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, outputs)
}

// StreamOutputs handles GET /grids/{id}/stream (SSE). The first message
// carries every output; later messages carry only the outputs that changed,
// restricted to the watch list when one is given.
func (s *Server) StreamOutputs(w http.ResponseWriter, r *http.Request) {
	gridID := chi.URLParam(r, "id")

	var watch []string
	if err := runtime.BindQueryParameter("form", false, false, "watch", r.URL.Query(), &watch); err != nil {
		s.writeError(w, r, &ValidationError{Err: err})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, errors.New("streaming not supported"))
		return
	}

	ch, cancel := s.Streams.Subscribe(gridID)
	defer cancel()

	// Subscribing before the snapshot means no change can fall between them.
	state, err := s.Sessions.Load(r.Context(), gridID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	initial := domain.DiffOutputs(nil, s.Sessions.Engine().Outputs(state))
	initial.GridID = gridID
	initial.Revision = state.Revision

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	s.Logger.Info("SSE: client subscribed", "grid_id", gridID, "watch", watch)

	send := func(diff *domain.OutputsDiff) {
		diff = diff.Filter(watch)
		if diff == nil {
			return
		}
		data, err := json.Marshal(diff)
		if err != nil {
			s.Logger.Error("SSE: encode failed", "grid_id", gridID, "err", err)
			return
		}
		fmt.Fprintf(w, "event: outputs\ndata: %s\n\n", data)
		flusher.Flush()
	}
	send(initial)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected", "grid_id", gridID)
			return
		case diff, ok := <-ch:
			if !ok {
				return
			}
			send(diff)
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.Logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var validation *ValidationError
	switch {
	case errors.Is(err, domain.ErrGridNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation),
		errors.Is(err, domain.ErrUnknownEvent),
		errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
