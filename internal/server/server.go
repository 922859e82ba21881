// Package server exposes the capture flow over localhost HTTP: the landing
// page with the bookmarklet links, the capture page itself, a small JSON API
// and the export download.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/logger"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/store"
)

// Server wraps the HTTP server around a bookmark store.
type Server struct {
	http   *http.Server
	logger logger.Logger

	// The store is single-writer in-memory state; the TUI owns it in
	// interactive use, here the handlers do.
	mu    sync.Mutex
	store *store.Store
}

// New builds the capture server on addr.
func New(addr string, st *store.Store, log logger.Logger) *Server {
	s := &Server{logger: log, store: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(accessLog(log))

	r.Get("/", s.handleLanding())
	r.Get("/capture", s.handleCaptureGet())
	r.Post("/capture", s.handleCapturePost())
	r.Get("/api/bookmarks", s.handleListBookmarks())
	r.Post("/api/bookmarks", s.handleAddBookmark())
	r.Get("/export", s.handleExport())

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the HTTP server and blocks until an error or shutdown.
func (s *Server) Start() error {
	s.logger.Infof("capture server listening on http://%s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down gracefully within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("capture server shutting down")
	return s.http.Shutdown(ctx)
}

// statusWriter captures the status code and byte count for access logging.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// accessLog logs one line per request.
func accessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			log.Info("http_request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", ww.status),
				logger.Int("bytes", ww.bytes),
				logger.Duration("duration", time.Since(start)),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
