// Package transit holds the metro network model and the routing engine.
//
// A Graph is built once with AddStation/AddEdge and then queried with
// ShortestPath. Construction is not synchronised: every registration must
// happen before the first query. After that the graph is only read, so any
// number of goroutines may query it at once.
//
// Adjacency is a dense distance matrix. That is fine for a metro network of
// a few dozen stations; memory and per-query work grow with the square of
// the station count, so this is not the structure for city-wide road nets.
package transit

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Unreachable marks a matrix cell with no direct connection. It is a finite
// constant and cells are compared against it by equality only.
const Unreachable = math.MaxFloat64

const noPredecessor = -1

var (
	ErrUnknownStation    = errors.New("station not found in the metro network")
	ErrInvalidStation    = errors.New("invalid station name")
	ErrInvalidEdge       = errors.New("invalid edge")
	ErrInvalidEdgeWeight = errors.New("edge distance must be a positive finite number")
)

type Graph struct {
	index  map[string]int
	names  []string
	lines  []string
	weight [][]float64
}

func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddStation registers name with the given line label. Registering a name
// that already exists leaves the station, including its label, unchanged.
func (g *Graph) AddStation(name, line string) error {
	if name == "" {
		return ErrInvalidStation
	}
	g.addStation(name, line)
	return nil
}

func (g *Graph) addStation(name, line string) int {
	if idx, ok := g.index[name]; ok {
		return idx
	}
	idx := len(g.names)
	g.index[name] = idx
	g.names = append(g.names, name)
	g.lines = append(g.lines, line)

	for i := range g.weight {
		g.weight[i] = append(g.weight[i], Unreachable)
	}
	row := make([]float64, idx+1)
	for i := range row {
		row[i] = Unreachable
	}
	row[idx] = 0
	g.weight = append(g.weight, row)
	return idx
}

// AddEdge connects a and b in both directions with the given distance in
// kilometres, registering either endpoint under line if it is new. A
// second edge between the same pair replaces the first. Invalid input is
// rejected before anything is registered.
func (g *Graph) AddEdge(a, b string, km float64, line string) error {
	if a == "" || b == "" {
		return ErrInvalidStation
	}
	if a == b {
		return fmt.Errorf("%w: self-loop at %q", ErrInvalidEdge, a)
	}
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 || km >= Unreachable {
		return fmt.Errorf("%w: %q - %q has %v", ErrInvalidEdgeWeight, a, b, km)
	}
	i := g.addStation(a, line)
	j := g.addStation(b, line)
	g.weight[i][j] = km
	g.weight[j][i] = km
	return nil
}

func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

func (g *Graph) Index(name string) (int, bool) {
	idx, ok := g.index[name]
	return idx, ok
}

// Line returns the label the station was first registered with.
func (g *Graph) Line(name string) (string, bool) {
	idx, ok := g.index[name]
	if !ok {
		return "", false
	}
	return g.lines[idx], true
}

// Weight returns the direct distance between a and b. The second result is
// false when either station is unknown or the pair is not connected.
func (g *Graph) Weight(a, b string) (float64, bool) {
	i, ok := g.index[a]
	if !ok {
		return 0, false
	}
	j, ok := g.index[b]
	if !ok {
		return 0, false
	}
	w := g.weight[i][j]
	if w == Unreachable {
		return 0, false
	}
	return w, true
}

func (g *Graph) StationCount() int { return len(g.names) }

// EdgeCount returns the number of connected station pairs.
func (g *Graph) EdgeCount() int {
	n := 0
	for i := range g.weight {
		for j := i + 1; j < len(g.weight); j++ {
			if g.weight[i][j] != Unreachable {
				n++
			}
		}
	}
	return n
}

// Stations returns the station names sorted alphabetically.
func (g *Graph) Stations() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	sort.Strings(out)
	return out
}

// Lines returns the distinct station labels, sorted.
func (g *Graph) Lines() []string {
	seen := make(map[string]struct{}, 4)
	var out []string
	for _, l := range g.lines {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
