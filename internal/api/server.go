// Package api exposes the document operations over HTTP.
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rekpartners/loigen"
	"github.com/rekpartners/loigen/internal/config"
	"github.com/rekpartners/loigen/internal/metrics"
)

// Documents is the document backend the server composes. Satisfied by
// *loigen.Service and *loigen.ServicePool.
type Documents interface {
	RenderPDF(ctx context.Context, htmlContent string) ([]byte, error)
	GenerateLetter(ctx context.Context, req loigen.LetterRequest) ([]byte, error)
	BuildArchive(ctx context.Context, entries []loigen.ZipEntry, w io.Writer) (loigen.ArchiveResult, error)
}

// Server is the HTTP surface of the document service.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        *config.Config
	docs       Documents
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a Server. The metrics argument may be nil when metrics
// are disabled.
func New(cfg *config.Config, docs Documents, m *metrics.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		docs:    docs,
		metrics: m,
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}

	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Post("/generate-pdf", s.handleGeneratePDF)
	s.router.Post("/generate-docx", s.handleGenerateDocx)
	s.router.Post("/create-zip", s.handleCreateZip)

	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.router.Method(http.MethodGet, s.cfg.Metrics.Path, s.metrics.Handler())
	}
}

// Handler returns the configured router, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // renders can be slow
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting HTTP server", "addr", s.cfg.Server.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
