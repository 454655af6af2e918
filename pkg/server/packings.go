package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/render"
	"github.com/matzehuels/circlepack/pkg/store"
)

// =============================================================================
// Packing Store Endpoints
// =============================================================================

type savePackingRequest struct {
	Name    string          `json:"name,omitempty"`
	Engine  string          `json:"engine"`
	Circles []circle.Circle `json:"circles"`
}

func (s *Server) handleSavePacking(w http.ResponseWriter, r *http.Request) {
	var req savePackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body: %v", err)
		return
	}
	if len(req.Circles) == 0 {
		s.badRequest(w, "packing must contain at least one circle")
		return
	}

	p := store.New(req.Name, req.Engine, req.Circles)
	if err := s.store.Save(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPackings(w http.ResponseWriter, r *http.Request) {
	packings, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if packings == nil {
		packings = []store.Packing{}
	}
	writeJSON(w, http.StatusOK, packings)
}

func (s *Server) handleGetPacking(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePacking(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePackingSVG(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := []render.SVGOption{}
	if r.URL.Query().Get("labels") == "true" {
		opts = append(opts, render.WithLabels())
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(render.RenderSVG(p.Circles, opts...))
}
