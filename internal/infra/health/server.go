package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// ApplicationCounter reports how many applications are stored.
type ApplicationCounter interface {
	Count(ctx context.Context) (int, error)
}

// Status is the body of GET /health.
type Status struct {
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
	TotalApplications int       `json:"totalApplications"`
}

// Server exposes liveness and metrics over HTTP next to the bot.
type Server struct {
	srv    *http.Server
	logger *logrus.Entry
}

// NewRouter builds the HTTP routes. metricsHandler may be nil.
func NewRouter(counter ApplicationCounter, metricsHandler http.Handler, now func() time.Time) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		total, err := counter.Count(req.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, Status{
			Status:            "ok",
			Timestamp:         now().UTC(),
			TotalApplications: total,
		})
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	return r
}

func NewServer(port int, handler http.Handler, logger *logrus.Entry) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background. Serve errors other than a clean shutdown
// are logged.
func (s *Server) Start() {
	go func() {
		s.logger.WithField("addr", s.srv.Addr).Info("Health server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("Health server stopped unexpectedly")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
