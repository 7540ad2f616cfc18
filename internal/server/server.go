// Package server exposes the care log over HTTP.
//
// Endpoints (all JSON unless noted):
//   - GET  /healthz
//   - GET  /api/dashboard
//   - GET  /api/activities?start=&end=
//   - GET  /api/export?format=csv|json      (file download)
//   - POST|GET /api/{diapers,feedings,medications,temperatures}
//   - GET  /api/{kind}/stats
//   - GET|PUT|PATCH|DELETE /api/{kind}/{id}
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rcliao/puffin/internal/dashboard"
	"github.com/rcliao/puffin/internal/store"
)

// Server handles API requests against a record store.
type Server struct {
	store store.Store
	dash  *dashboard.Composer
	loc   *time.Location
	log   *zap.Logger
}

// New returns a Server. loc is used to read timestamps given without a zone.
func New(s store.Store, dash *dashboard.Composer, loc *time.Location, logger *zap.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{store: s, dash: dash, loc: loc, log: logger}
}

// Routes returns the HTTP handler for the whole API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/activities", s.handleActivities)
		r.Get("/export", s.handleExport)

		r.Mount("/diapers", s.diaperResource().routes(s))
		r.Mount("/feedings", s.feedingResource().routes(s))
		r.Mount("/medications", s.medicationResource().routes(s))
		r.Mount("/temperatures", s.temperatureResource().routes(s))
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then drains in-flight
// requests for up to 10 seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
