package server

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/pack/progressive"
	"github.com/matzehuels/circlepack/pkg/pack/repel"
	"github.com/matzehuels/circlepack/pkg/pack/selector"
	"github.com/matzehuels/circlepack/pkg/pack/tangency"
)

// =============================================================================
// Engine Endpoints
// =============================================================================

type relaxRequest struct {
	Circles       []circle.Circle `json:"circles"`
	Weights       []float64       `json:"weights,omitempty"`
	Bounds        *circle.Bounds  `json:"bounds,omitempty"`
	Wrap          bool            `json:"wrap,omitempty"`
	MaxIterations int             `json:"max_iterations,omitempty"`
}

type relaxResponse struct {
	Circles    []circle.Circle `json:"circles"`
	Iterations int             `json:"iterations"`
}

func (s *Server) handleRelax(w http.ResponseWriter, r *http.Request) {
	var req relaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body: %v", err)
		return
	}
	set := circle.Set{Circles: req.Circles, Weights: req.Weights}
	if err := set.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	key := cache.LayoutKey("relax", req)
	if s.serveCached(w, r, key) {
		return
	}

	start := time.Now()
	iterations, err := repel.Relax(req.Circles, repel.Options{
		Weights:       req.Weights,
		Bounds:        req.Bounds,
		Wrap:          req.Wrap,
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.layoutDuration.WithLabelValues("relax").Observe(time.Since(start).Seconds())

	s.respondCached(w, r, key, relaxResponse{Circles: req.Circles, Iterations: iterations})
}

type tangencyRequest struct {
	Internal map[int][]int   `json:"internal"`
	External map[int]float64 `json:"external"`
}

type tangencyResponse struct {
	Placements map[int]tangency.Placement `json:"placements"`
}

func (s *Server) handleTangency(w http.ResponseWriter, r *http.Request) {
	var req tangencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body: %v", err)
		return
	}

	key := cache.LayoutKey("tangency", req)
	if s.serveCached(w, r, key) {
		return
	}

	start := time.Now()
	placements, err := tangency.Pack(req.Internal, req.External)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.layoutDuration.WithLabelValues("tangency").Observe(time.Since(start).Seconds())

	s.respondCached(w, r, key, tangencyResponse{Placements: placements})
}

type progressiveRequest struct {
	Radii []float64 `json:"radii"`
}

type progressiveResponse struct {
	Circles []circle.Circle `json:"circles"`
}

func (s *Server) handleProgressive(w http.ResponseWriter, r *http.Request) {
	var req progressiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body: %v", err)
		return
	}

	key := cache.LayoutKey("progressive", req)
	if s.serveCached(w, r, key) {
		return
	}

	start := time.Now()
	circles, err := progressive.Layout(req.Radii)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.layoutDuration.WithLabelValues("progressive").Observe(time.Since(start).Seconds())

	s.respondCached(w, r, key, progressiveResponse{Circles: circles})
}

type selectRequest struct {
	Circles   []circle.Circle `json:"circles"`
	Tolerance float64         `json:"tolerance,omitempty"`
	Ordering  string          `json:"ordering,omitempty"`
	Seed      *uint64         `json:"seed,omitempty"`
}

type selectResponse struct {
	Selected []bool `json:"selected"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body: %v", err)
		return
	}

	ordering := selector.Random
	if req.Ordering != "" {
		var err error
		if ordering, err = selector.ParseOrdering(req.Ordering); err != nil {
			s.writeError(w, err)
			return
		}
	}
	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = 1.0
	}

	// Without a seed each call is freshly random, so only seeded
	// requests are cacheable.
	var rng *rand.Rand
	key := ""
	if req.Seed != nil {
		rng = rand.New(rand.NewPCG(*req.Seed, *req.Seed^0xdeadbeef))
		key = cache.LayoutKey("select", req)
		if s.serveCached(w, r, key) {
			return
		}
	}

	start := time.Now()
	selected, err := selector.Select(req.Circles, tolerance, ordering, rng)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.layoutDuration.WithLabelValues("select").Observe(time.Since(start).Seconds())

	s.respondCached(w, r, key, selectResponse{Selected: selected})
}

// =============================================================================
// Layout Cache Plumbing
// =============================================================================

// serveCached writes the cached response for key if present. An empty key
// disables caching for the request.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if key == "" {
		return false
	}
	data, hit, err := s.cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("cache get failed", "error", err)
		return false
	}
	if !hit {
		s.metrics.cacheMisses.Inc()
		return false
	}
	s.metrics.cacheHits.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	_, _ = w.Write(data)
	return true
}

// respondCached writes the JSON response and stores it under key for
// subsequent identical requests.
func (s *Server) respondCached(w http.ResponseWriter, r *http.Request, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if key != "" {
		if err := s.cache.Set(r.Context(), key, data, DefaultCacheTTL); err != nil {
			s.logger.Warn("cache set failed", "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
