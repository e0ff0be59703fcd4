package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcard/pkg/service/render"
	"github.com/secmon-lab/riskcard/pkg/usecase"
	"github.com/secmon-lab/riskcard/pkg/utils/errutil"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/secmon-lab/riskcard/pkg/utils/safe"
	"golang.org/x/time/rate"
)

// Dashboard is the use case behind the HTTP routes
type Dashboard interface {
	Render(ctx context.Context, w io.Writer, format render.Format) error
	ETag(ctx context.Context) (string, error)
	Summary() usecase.Summary
}

type Server struct {
	router         *chi.Mux
	dashboard      Dashboard
	limiter        *rate.Limiter
	observer       interfaces.RequestObserver
	metricsHandler http.Handler
}

type Options func(*Server)

// WithRateLimit rejects requests beyond rps per second with 429. A
// non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Options {
	return func(s *Server) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics counts requests with observer and serves handler at /metrics
func WithMetrics(observer interfaces.RequestObserver, handler http.Handler) Options {
	return func(s *Server) {
		s.observer = observer
		s.metricsHandler = handler
	}
}

func New(dashboard Dashboard, opts ...Options) (*Server, error) {
	if dashboard == nil {
		return nil, goerr.New("dashboard is required")
	}

	r := chi.NewRouter()

	s := &Server{
		router:    r,
		dashboard: dashboard,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	if s.observer != nil {
		r.Use(requestCounter(s.observer))
	}

	r.Get("/healthz", healthHandler)
	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(rateLimiter(s.limiter))
		}
		r.Get("/", s.documentHandler)
		r.Get("/api/report", s.reportHandler)
		r.Get("/api/summary", s.summaryHandler)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// etagMatches implements the weak comparison of If-None-Match
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) documentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	etag, err := s.dashboard.ETag(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to compute document ETag"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	s.serveDocument(w, r, render.FormatHTML)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, render.FormatJSON)
}

// serveDocument renders before committing headers so that a failed render
// still produces a clean 500
func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request, format render.Format) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := s.dashboard.Render(ctx, &buf, format); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to render document"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, buf.Bytes())
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.dashboard.Summary())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
