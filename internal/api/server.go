// Package api provides the HTTP handlers for FlowLand Steward.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/bongona/FlowLandSteward/internal/events"
	"github.com/bongona/FlowLandSteward/internal/metering"
	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/bongona/FlowLandSteward/internal/notify"
	"github.com/bongona/FlowLandSteward/internal/store"

	_ "github.com/bongona/FlowLandSteward/docs/swagger"
)

// DefaultHistoryDays is the tribute history window when none is configured.
const DefaultHistoryDays = 5

// notifyTimeout bounds a single background notification delivery.
const notifyTimeout = 15 * time.Second

// Notifier delivers human-facing notifications. *notify.Dispatcher
// implements it.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) bool
}

// Deps are the collaborators handlers use besides the store. Nil fields get
// inert defaults.
type Deps struct {
	Notifier    Notifier
	Publisher   events.Publisher
	Sampler     *metering.Sampler
	HistoryDays int
}

// Server is the HTTP server for FlowLand Steward.
type Server struct {
	store       *store.Store
	notifier    Notifier
	publisher   events.Publisher
	sampler     *metering.Sampler
	historyDays int
	now         func() time.Time
	started     time.Time

	notifications sync.WaitGroup

	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(addr string, st *store.Store, deps Deps) *Server {
	if deps.Notifier == nil {
		deps.Notifier = notify.NewDispatcher(nil, 0)
	}
	if deps.Publisher == nil {
		deps.Publisher = &events.NoopPublisher{}
	}
	if deps.Sampler == nil {
		deps.Sampler = metering.NewSampler(0)
	}
	if deps.HistoryDays < 1 {
		deps.HistoryDays = DefaultHistoryDays
	}

	srv := &Server{
		store:       st,
		notifier:    deps.Notifier,
		publisher:   deps.Publisher,
		sampler:     deps.Sampler,
		historyDays: deps.HistoryDays,
		now:         time.Now,
		started:     time.Now(),
		mux:         http.NewServeMux(),
	}

	srv.registerRoutes()

	srv.server = &http.Server{
		Addr:         addr,
		Handler:      SecurityHeadersMiddleware(RecoveryMiddleware(LoggingMiddleware(srv.mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return srv
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("HTTP server starting", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("HTTP server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.server.Shutdown(shutdownCtx)
		s.WaitNotifications()
		return err
	case err := <-errCh:
		return err
	}
}

// notify hands n to the notifier in the background. Delivery outlives the
// request that triggered it but is cut off after notifyTimeout.
func (s *Server) notify(ctx context.Context, n model.Notification) {
	ctx = context.WithoutCancel(ctx)
	s.notifications.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		s.notifier.Notify(ctx, n)
	})
}

// WaitNotifications blocks until in-flight notifications have finished.
func (s *Server) WaitNotifications() {
	s.notifications.Wait()
}

func (s *Server) registerRoutes() {
	// Overview page
	s.mux.HandleFunc("GET /", s.handleOverview)

	// Dashboard cards
	s.mux.HandleFunc("GET /api/dashboard/status", s.handleDashboardStatus)
	s.mux.HandleFunc("GET /api/dashboard/logs", s.handleDashboardLogs)
	s.mux.HandleFunc("GET /api/dashboard/metrics", s.handleDashboardMetrics)
	s.mux.HandleFunc("GET /api/dashboard/tribute", s.handleDashboardTribute)
	s.mux.HandleFunc("GET /api/dashboard/agents", s.handleDashboardAgents)

	// Tribute
	s.mux.HandleFunc("GET /api/tribute", s.handleTribute)
	s.mux.HandleFunc("POST /api/tribute/mode", s.handleTributeMode)
	s.mux.HandleFunc("POST /api/tribute/record", s.handleTributeRecord)

	// Integrity
	s.mux.HandleFunc("GET /api/integrity/status", s.handleIntegrityStatus)
	s.mux.HandleFunc("GET /api/integrity/logs", s.handleIntegrityLogs)
	s.mux.HandleFunc("POST /api/integrity/check", s.handleIntegrityCheck)

	// Monetization rituals
	s.mux.HandleFunc("GET /api/monetization/rituals", s.handleRituals)
	s.mux.HandleFunc("POST /api/monetization/rituals", s.handleCreateRitual)
	s.mux.HandleFunc("GET /api/monetization/rituals/{id}", s.handleRitual)
	s.mux.HandleFunc("POST /api/monetization/rituals/{id}/complete", s.handleCompleteRitual)

	// Agents
	s.mux.HandleFunc("PATCH /api/agents/{id}/status", s.handleAgentStatus)

	// Health check
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Swagger UI
	s.mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

// renderHTML renders a templ component to a buffer first, then writes the
// buffer to the response. This ensures rendering errors can be returned as a
// proper 500 before any bytes reach the client.
func renderHTML(w http.ResponseWriter, r *http.Request, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		slog.Error("rendering component", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		// Client disconnected after headers sent.
		slog.Debug("writing HTML response", "path", r.URL.Path, "error", err)
	}
}

// writeJSON marshals v to JSON into a buffer first, then writes it to the
// response. This ensures marshalling errors can be returned as a proper 500.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	writeJSONStatus(w, r, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding JSON response", "path", r.URL.Path, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal Server Error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Debug("writing JSON response", "path", r.URL.Path, "error", err)
	}
}
