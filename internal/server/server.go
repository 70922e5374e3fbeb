package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/educlopez/smoothui-sub003/internal/githubstars"
	"github.com/educlopez/smoothui-sub003/internal/redirects"
)

// ServerOption configures the router built by NewServer.
type ServerOption func(*serverConfig)

type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
	logger      *slog.Logger
	registry    *prometheus.Registry
	redirects   []redirects.Rule
	staticDir   string
}

// WithMiddlewares adds middleware ahead of the built-in stack.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithLogger sets the request and handler logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(cfg *serverConfig) {
		cfg.logger = l
	}
}

// WithRegistry sets the Prometheus registry metrics are registered with and
// served from. A fresh registry is used by default.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(cfg *serverConfig) {
		cfg.registry = reg
	}
}

// WithRedirects serves each rule as a redirect from its source path.
func WithRedirects(rules []redirects.Rule) ServerOption {
	return func(cfg *serverConfig) {
		cfg.redirects = append(cfg.redirects, rules...)
	}
}

// WithStatic serves files from dir for every path no other route claims.
func WithStatic(dir string) ServerOption {
	return func(cfg *serverConfig) {
		cfg.staticDir = dir
	}
}

// NewServer creates the router serving stars at githubstars.Path.
func NewServer(stars githubstars.StarCounter, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}

	metrics := NewMetrics(cfg.registry)

	r := chi.NewRouter()
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		LoggingMiddleware(cfg.logger),
		middleware.Recoverer,
		metrics.Middleware,
	)

	r.Get("/healthz", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}))

	// The handler answers non-GET methods itself with 405 and its JSON body.
	r.Handle(githubstars.Path, githubstars.NewHandler(stars,
		githubstars.WithLogger(cfg.logger),
		githubstars.WithFetchCounter(metrics.StarFetches),
	))

	for _, rule := range cfg.redirects {
		r.Get(rule.Source, redirectHandler(rule))
	}

	if cfg.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.staticDir)))
	}

	return r
}

func redirectHandler(rule redirects.Rule) http.HandlerFunc {
	status := http.StatusTemporaryRedirect
	if rule.Permanent {
		status = http.StatusPermanentRedirect
	}
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, rule.Destination, status)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// LoggingMiddleware logs each request at debug level with its status,
// duration and request ID.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.DebugContext(r.Context(), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
