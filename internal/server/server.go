// Package server exposes the scoring toolkit over a small REST API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hrtools/hrscan/internal/attrition"
	"github.com/hrtools/hrscan/internal/history"
	"github.com/hrtools/hrscan/internal/jobs"
	"github.com/hrtools/hrscan/internal/matching"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxUploadSize bounds resume uploads (16 MiB).
const maxUploadSize = 16 << 20

// Server wires the stores and scorers behind HTTP handlers.
type Server struct {
	jobs       *jobs.Store
	history    *history.Store
	dispatcher *matching.Dispatcher
	attrition  *attrition.Predictor
	validate   *validator.Validate
	logger     *zap.Logger
}

func New(jobStore *jobs.Store, historyStore *history.Store, dispatcher *matching.Dispatcher, predictor *attrition.Predictor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		jobs:       jobStore,
		history:    historyStore,
		dispatcher: dispatcher,
		attrition:  predictor,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Routes mounts every endpoint on a fresh router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/parse-resume", s.handleParseResume)
		r.Post("/match-resume", s.handleMatchResume)
		r.Post("/attrition", s.handleAttrition)

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", s.handleListJobs)
			r.Post("/", s.handleAddJob)
			r.Get("/{id}", s.handleGetJob)
			r.Put("/{id}", s.handleUpdateJob)
			r.Delete("/{id}", s.handleDeleteJob)
		})

		r.Get("/history", s.handleHistory)
	})

	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("writing response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
