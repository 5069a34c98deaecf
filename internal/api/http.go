// Package api serves the route finder over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"metro-router/internal/planner"
	"metro-router/internal/transit"
)

type Planner interface {
	Plan(ctx context.Context, from, to string) (transit.Route, error)
	Stations() []planner.Station
	StationCount() int
	EdgeCount() int
}

type Handler struct {
	planner Planner
}

func NewHandler(p Planner) *Handler {
	return &Handler{planner: p}
}

// Routes registers the API on mux and wraps it with the standard
// middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/stations", h.ListStations)
	mux.HandleFunc("GET /v1/route", h.GetRoute)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	return RequestIDMiddleware(CORSMiddleware(GzipMiddleware(mux)))
}

type StationsResponse struct {
	Stations []planner.Station `json:"stations"`
	Count    int               `json:"count"`
}

func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	st := h.planner.Stations()
	respondJSON(w, http.StatusOK, StationsResponse{Stations: st, Count: len(st)})
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")

	route, err := h.planner.Plan(r.Context(), from, to)
	respondJSON(w, statusFor(err), planner.NewResponse(from, to, route, err))
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, transit.ErrUnknownStation):
		return http.StatusNotFound
	case errors.Is(err, planner.ErrMissingStation), errors.Is(err, planner.ErrSameStation):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type ReadyResponse struct {
	Ready      bool      `json:"ready"`
	Stations   int       `json:"stations"`
	Edges      int       `json:"edges"`
	ServerTime time.Time `json:"serverTime"`
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	n := h.planner.StationCount()
	status := http.StatusOK
	if n == 0 {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, ReadyResponse{
		Ready:      n > 0,
		Stations:   n,
		Edges:      h.planner.EdgeCount(),
		ServerTime: time.Now(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
