// Package api provides the HTTP REST API server for docgen.
//
// It exposes endpoints for document previews and exports, report charts,
// the report history and the running configuration.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aurine/docgen/internal/chart"
	"github.com/aurine/docgen/internal/config"
	"github.com/aurine/docgen/internal/document"
	"github.com/aurine/docgen/internal/export"
	"github.com/aurine/docgen/internal/history"
	"github.com/aurine/docgen/internal/infra"
	"github.com/aurine/docgen/pkg/utils"
	"github.com/aurine/docgen/web"
)

// Version is reported by the health endpoint. It is set by the CLI.
var Version = "dev"

// maxBodyBytes bounds request bodies; forms are small.
const maxBodyBytes = 1 << 20

// HistoryStore is the report history used by the server.
type HistoryStore interface {
	Save(ctx context.Context, form map[string]string) (history.Item, error)
	List(ctx context.Context) ([]history.Item, error)
	Get(ctx context.Context, id string) (history.Item, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// exportResult is a rendered file kept in the export cache.
type exportResult struct {
	data        []byte
	contentType string
	fileName    string
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	exporter *export.Exporter
	history  HistoryStore
	cache    *infra.Cache[exportResult]
	limiter  *infra.RateLimiter
	logger   zerolog.Logger
	serveUI  bool // when true, serve the embedded web form at /
}

// NewServer creates a configured API server with all routes and middleware.
// history may be nil, in which case history endpoints report 503.
func NewServer(cfg *config.Config, exporter *export.Exporter, hist HistoryStore, logger zerolog.Logger) *Server {
	ttl := cfg.Server.ExportCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	rate := cfg.Server.ExportRate
	if rate <= 0 {
		rate = 30
	}

	srv := &Server{
		cfg:      cfg,
		exporter: exporter,
		history:  hist,
		cache:    infra.NewCache[exportResult](ttl),
		limiter:  infra.NewRateLimiter(rate, time.Minute/time.Duration(rate)),
		logger:   logger.With().Str("component", "api").Logger(),
		serveUI:  true,
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetServeUI controls whether the embedded web form is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown on SIGINT or
// SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.cache.RunJanitor(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Use(middleware.RequestSize(maxBodyBytes))

			// Documents
			r.Get("/documents", s.handleDocumentKinds)
			r.Post("/report/charts", s.handleReportCharts)
			r.Post("/{kind}/preview", s.handlePreview)
			r.Post("/{kind}/export", s.handleExport)

			// Standalone charts
			r.Post("/charts/{chart}", s.handleChart)

			// History
			r.Get("/history", s.handleListHistory)
			r.Delete("/history", s.handleClearHistory)
			r.Get("/history/{id}", s.handleGetHistory)
			r.Delete("/history/{id}", s.handleDeleteHistory)

			// Config
			r.Get("/config", s.handleGetConfig)
			r.Get("/config/secrets", s.handleGetConfigSecrets)
		})
	})

	if s.serveUI {
		s.mountUI(r, web.DistFS())
	}
	return r
}

// mountUI serves the embedded browser form.
func (s *Server) mountUI(r chi.Router, distFS fs.FS) {
	fileServer := http.FileServerFS(distFS)
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with the zerolog logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ev := s.logger.Info()
		if status >= http.StatusInternalServerError {
			ev = s.logger.Error()
		}
		ev.Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// requireToken enforces the bearer token when one is configured.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := s.cfg.Server.APIToken
		if want == "" {
			next.ServeHTTP(w, r)
			return
		}
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			writeError(w, http.StatusUnauthorized, "missing or invalid API token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DocumentKindInfo describes one document type.
type DocumentKindInfo struct {
	Kind      document.Kind `json:"kind"`
	PageSize  document.Size `json:"pageSize"`
	PageCount int           `json:"pageCount"`
}

// ChartsResponse carries the four report charts as SVG markup.
type ChartsResponse struct {
	Engagement string `json:"engagement"`
	Conversion string `json:"conversion"`
	Weekly     string `json:"weekly"`
	Daily      string `json:"daily"`
	Data       any    `json:"data"`
}

// ChartRequest is the body for POST /api/v1/charts/{chart}.
type ChartRequest struct {
	Series chart.Series        `json:"series"`
	Points []chart.WeeklyPoint `json:"points"`
	Size   float64             `json:"size"`
	Height float64             `json:"height"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":       "ok",
			"version":      Version,
			"history":      s.history != nil,
			"export_cache": s.cache.Len(),
			"time_warsaw":  utils.FormatDateTimeWarsaw(utils.NowWarsaw()),
		},
	})
}

func (s *Server) handleDocumentKinds(w http.ResponseWriter, r *http.Request) {
	kinds := make([]DocumentKindInfo, 0, len(document.Kinds()))
	for _, k := range document.Kinds() {
		doc, err := document.New(k, nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		kinds = append(kinds, DocumentKindInfo{Kind: k, PageSize: doc.PageSize(), PageCount: doc.PageCount()})
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: kinds})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// writeFailure maps domain errors onto HTTP statuses.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *document.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   verr.Error(),
			Data:    verr.Messages(),
		})
	case errors.Is(err, errBadBody),
		errors.Is(err, document.ErrUnknownKind),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, chart.ErrEmptySeries),
		errors.Is(err, chart.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeFields reads a JSON object of form fields. An empty body is an empty form.
func decodeFields(r *http.Request) (map[string]any, error) {
	fields := map[string]any{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return fields, nil
}
