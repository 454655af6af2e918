// Package server exposes the packing engines and the packing store over
// HTTP. All endpoints speak JSON; engine results are cached by request
// hash so repeated layouts are served without recomputation.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/store"
)

// DefaultCacheTTL is how long computed layouts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Server wires the packing engines, the layout cache, and the packing
// store into an HTTP API.
type Server struct {
	store   store.Store
	cache   cache.Cache
	logger  *log.Logger
	metrics *metrics
}

// New creates a server. A nil cache disables layout caching; a nil
// logger discards request logs.
func New(st store.Store, ca cache.Cache, logger *log.Logger) *Server {
	if ca == nil {
		ca = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		store:   st,
		cache:   ca,
		logger:  logger,
		metrics: newMetrics(),
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/relax", s.handleRelax)
		r.Post("/tangency", s.handleTangency)
		r.Post("/progressive", s.handleProgressive)
		r.Post("/select", s.handleSelect)

		r.Route("/packings", func(r chi.Router) {
			r.Post("/", s.handleSavePacking)
			r.Get("/", s.handleListPackings)
			r.Get("/{id}", s.handleGetPacking)
			r.Delete("/{id}", s.handleDeletePacking)
			r.Get("/{id}/svg", s.handlePackingSVG)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorPayload is the JSON shape of all error responses.
type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine error codes to HTTP status codes and emits the
// JSON error payload.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(errors.ErrCodeInternal)

	if c := errors.GetCode(err); c != "" {
		code = string(c)
		switch c {
		case errors.ErrCodeNotFound:
			status = http.StatusNotFound
		case errors.ErrCodeInternal:
			status = http.StatusInternalServerError
		default:
			status = http.StatusBadRequest
		}
	}

	var payload errorPayload
	payload.Error.Code = code
	payload.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, payload)
}

func (s *Server) badRequest(w http.ResponseWriter, format string, args ...any) {
	s.writeError(w, errors.New(errors.ErrCodeInvalidInput, format, args...))
}
