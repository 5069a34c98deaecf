package transit

import (
	"fmt"
	"math"

	"metro-router/internal/pqueue"
)

// Route is the result of a point-to-point query. An empty Path means the
// two stations are not connected.
type Route struct {
	Path          []string `json:"path"`
	Lines         []string `json:"lines"`
	Distance      float64  `json:"distance"`
	Fare          int      `json:"fare"`
	EstimatedTime int      `json:"estimatedTime"`
	Interchanges  int      `json:"interchanges"`
}

func (r Route) Found() bool { return len(r.Path) > 0 }

// search is the private working state of one query.
type search struct {
	dist    []float64
	prev    []int
	visited []bool
	queue   *pqueue.Queue
}

func newSearch(n int) *search {
	s := &search{
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		queue:   pqueue.New(),
	}
	for i := 0; i < n; i++ {
		s.dist[i] = Unreachable
		s.prev[i] = noPredecessor
	}
	return s
}

// ShortestPath returns the minimum-distance route from source to
// destination. Unknown names fail with ErrUnknownStation. A disconnected
// pair is not an error: the returned Route has an empty path and zero
// metrics.
func (g *Graph) ShortestPath(source, destination string) (Route, error) {
	src, ok := g.index[source]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownStation, source)
	}
	dst, ok := g.index[destination]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownStation, destination)
	}

	n := len(g.names)
	s := newSearch(n)
	s.dist[src] = 0
	s.queue.Insert(src, 0)

	for !s.queue.IsEmpty() {
		cur, _ := s.queue.ExtractMin()
		u := cur.Node
		if s.visited[u] {
			continue
		}
		s.visited[u] = true
		if u == dst {
			break
		}
		row := g.weight[u]
		for v := 0; v < n; v++ {
			if s.visited[v] || row[v] == Unreachable {
				continue
			}
			nd := s.dist[u] + row[v]
			if nd < s.dist[v] {
				s.dist[v] = nd
				s.prev[v] = u
				s.queue.Insert(v, nd)
			}
		}
	}

	idx := s.path(dst)
	if idx[0] != src {
		return Route{}, nil
	}

	path := make([]string, len(idx))
	lines := make([]string, len(idx))
	for i, v := range idx {
		path[i] = g.names[v]
		lines[i] = g.lines[v]
	}
	total := s.dist[dst]
	return Route{
		Path:          path,
		Lines:         lines,
		Distance:      math.Round(total*10) / 10,
		Fare:          Fare(total),
		EstimatedTime: EstimatedTime(len(path)),
		Interchanges:  InterchangeCount(lines),
	}, nil
}

// path follows predecessor links back from dst and returns the chain in
// travel order. The first element is the source only if dst was reached.
func (s *search) path(dst int) []int {
	var rev []int
	for cur := dst; cur != noPredecessor; cur = s.prev[cur] {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
