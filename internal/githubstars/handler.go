package githubstars

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Path is the route the handler is mounted at.
	Path = "/api/github-stars"

	// CacheControl is sent with successful responses.
	CacheControl = "public, max-age=300, stale-while-revalidate=600"

	// FailureMessage is the error text returned when GitHub cannot be read.
	FailureMessage = "Failed to fetch stars"
)

// Fetch outcomes recorded by the fetch counter.
const (
	OutcomeSuccess     = "success"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

// StarCounter is the upstream the handler reads from.
type StarCounter interface {
	Stars(ctx context.Context) (int, error)
}

// Response is the endpoint's JSON body.
type Response struct {
	Stars int    `json:"stars"`
	Error string `json:"error,omitempty"`
}

// Handler serves GET /api/github-stars.
type Handler struct {
	stars   StarCounter
	logger  *slog.Logger
	fetches *prometheus.CounterVec
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger used for upstream failures.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithFetchCounter records every upstream fetch by outcome. The counter must
// have a single "outcome" label.
func WithFetchCounter(c *prometheus.CounterVec) HandlerOption {
	return func(h *Handler) {
		h.fetches = c
	}
}

// NewHandler creates a Handler reading from stars.
func NewHandler(stars StarCounter, opts ...HandlerOption) *Handler {
	h := &Handler{
		stars:  stars,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "Method not allowed"})
		return
	}

	count, err := h.stars.Stars(r.Context())
	if err != nil {
		h.observe(outcomeOf(err))
		h.logger.ErrorContext(r.Context(), "Error fetching GitHub stars", "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{Stars: 0, Error: FailureMessage})
		return
	}

	h.observe(OutcomeSuccess)
	w.Header().Set("Cache-Control", CacheControl)
	writeJSON(w, http.StatusOK, Response{Stars: count})
}

func (h *Handler) observe(outcome string) {
	if h.fetches != nil {
		h.fetches.WithLabelValues(outcome).Inc()
	}
}

func outcomeOf(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RateLimited() {
		return OutcomeRateLimited
	}
	return OutcomeError
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
