// Package health exposes the HTTP sidecar: liveness, operational status and
// the Prometheus scrape endpoint.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"lecturebot/core/buildinfo"
	"lecturebot/core/logger"
	"lecturebot/internal/metrics"
)

// State is the operational view the endpoints report on.
type State interface {
	IsHalted() bool
	AdminCount() int
}

// Server is the HTTP sidecar next to the Telegram long-poll loop.
type Server struct {
	state       State
	gatherer    prometheus.Gatherer
	environment string
	srv         *http.Server
}

func NewServer(addr string, state State, gatherer prometheus.Gatherer, environment string) *Server {
	s := &Server{state: state, gatherer: gatherer, environment: environment}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes builds the router. Exposed separately for tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleRoot)
	r.Get("/status", s.handleStatus)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "Bot is running",
		"halted":    s.state.IsHalted(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"platform":  "University Lecture Bot",
		"version":   buildinfo.Version,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	bot := "RUNNING"
	if s.state.IsHalted() {
		bot = "STOPPED"
	}
	writeJSON(w, map[string]interface{}{
		"bot":         bot,
		"admins":      s.state.AdminCount(),
		"environment": s.environment,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
	}
}

// Start runs the listener in the background. Listen errors other than a
// clean shutdown are fatal for the health surface but not for the bot.
func (s *Server) Start(ctx context.Context) {
	go func() {
		logger.Info(ctx, "health", "listen.start",
			slog.String("addr", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "health", "listen.fail",
				slog.String("addr", s.srv.Addr),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Stop shuts the listener down, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "health", "shutdown.fail",
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info(ctx, "health", "listen.stop")
}
