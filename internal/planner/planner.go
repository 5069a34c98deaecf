// Package planner is the query front end shared by the HTTP API, the NATS
// responder and the CLI. It validates the two station names the way a
// rider-facing form would, asks the graph for the route and records the
// outcome.
package planner

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"metro-router/internal/transit"
)

var (
	ErrMissingStation = errors.New("please select both source and destination stations")
	ErrSameStation    = errors.New("source and destination stations cannot be the same")
)

// Query outcomes, used as the metrics label.
const (
	OutcomeFound          = "found"
	OutcomeNoRoute        = "no_route"
	OutcomeUnknownStation = "unknown_station"
	OutcomeInvalid        = "invalid"
)

type Metrics interface {
	QueryObserve(outcome string, d time.Duration, km float64)
}

// Station is a registered station and its line label.
type Station struct {
	Name string `json:"name"`
	Line string `json:"line"`
}

type Service struct {
	graph      *transit.Graph
	metrics    Metrics
	logQueries bool
}

// NewService wraps a fully built graph. The graph must not be modified
// afterwards.
func NewService(g *transit.Graph, m Metrics, logQueries bool) *Service {
	return &Service{graph: g, metrics: m, logQueries: logQueries}
}

// Plan returns the shortest route between two stations. A route with an
// empty path and a nil error means the stations are not connected.
func (s *Service) Plan(ctx context.Context, from, to string) (transit.Route, error) {
	if err := ctx.Err(); err != nil {
		return transit.Route{}, err
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)

	start := time.Now()
	route, err := s.plan(from, to)
	outcome := OutcomeFound
	switch {
	case errors.Is(err, transit.ErrUnknownStation):
		outcome = OutcomeUnknownStation
	case err != nil:
		outcome = OutcomeInvalid
	case !route.Found():
		outcome = OutcomeNoRoute
	}
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.QueryObserve(outcome, elapsed, route.Distance)
	}
	if s.logQueries {
		log.Printf("route query from=%q to=%q outcome=%s km=%.1f took=%s", from, to, outcome, route.Distance, elapsed)
	}
	return route, err
}

func (s *Service) plan(from, to string) (transit.Route, error) {
	if from == "" || to == "" {
		return transit.Route{}, ErrMissingStation
	}
	if from == to {
		return transit.Route{}, ErrSameStation
	}
	return s.graph.ShortestPath(from, to)
}

// Stations lists every station sorted by name.
func (s *Service) Stations() []Station {
	names := s.graph.Stations()
	out := make([]Station, 0, len(names))
	for _, n := range names {
		line, _ := s.graph.Line(n)
		out = append(out, Station{Name: n, Line: line})
	}
	return out
}

func (s *Service) StationCount() int { return s.graph.StationCount() }

func (s *Service) EdgeCount() int { return s.graph.EdgeCount() }
