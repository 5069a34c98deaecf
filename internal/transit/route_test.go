package transit

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func redLine(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	mustEdge(t, g, "Miyapur", "JNTU College", 2.1, "red")
	mustEdge(t, g, "JNTU College", "KPHB Colony", 1.8, "red")
	return g
}

func TestShortestPathRedLine(t *testing.T) {
	g := redLine(t)
	r, err := g.ShortestPath("Miyapur", "KPHB Colony")
	if err != nil {
		t.Fatal(err)
	}
	wantPath := []string{"Miyapur", "JNTU College", "KPHB Colony"}
	if !reflect.DeepEqual(r.Path, wantPath) {
		t.Fatalf("path = %v, want %v", r.Path, wantPath)
	}
	if r.Distance != 3.9 {
		t.Errorf("distance = %v, want 3.9", r.Distance)
	}
	if r.Fare != 15 {
		t.Errorf("fare = %d, want 15", r.Fare)
	}
	if r.Interchanges != 0 {
		t.Errorf("interchanges = %d, want 0", r.Interchanges)
	}
	if r.EstimatedTime != 7 {
		t.Errorf("time = %d, want 7", r.EstimatedTime)
	}
	if !reflect.DeepEqual(r.Lines, []string{"red", "red", "red"}) {
		t.Errorf("lines = %v", r.Lines)
	}
}

func TestShortestPathAcrossInterchange(t *testing.T) {
	g := NewGraph()
	mustEdge(t, g, "S.R. Nagar", "Ameerpet", 1.8, "red")
	mustEdge(t, g, "Begumpet", "Madhura Nagar", 1.2, "blue")
	mustEdge(t, g, "Ameerpet", "Begumpet", 2.5, "interchange")

	r, err := g.ShortestPath("S.R. Nagar", "Madhura Nagar")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"S.R. Nagar", "Ameerpet", "Begumpet", "Madhura Nagar"}
	if !reflect.DeepEqual(r.Path, want) {
		t.Fatalf("path = %v, want %v", r.Path, want)
	}
	if r.Interchanges < 1 {
		t.Fatalf("interchanges = %d, want >= 1", r.Interchanges)
	}
	if r.Distance != 5.5 {
		t.Errorf("distance = %v, want 5.5", r.Distance)
	}
	if r.Fare != 20 {
		t.Errorf("fare = %d, want 20", r.Fare)
	}
}

func TestShortestPathPrefersShorterDetour(t *testing.T) {
	g := NewGraph()
	mustEdge(t, g, "A", "D", 10, "red")
	mustEdge(t, g, "A", "B", 2, "red")
	mustEdge(t, g, "B", "C", 2, "red")
	mustEdge(t, g, "C", "D", 2, "red")

	r, err := g.ShortestPath("A", "D")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.Path, []string{"A", "B", "C", "D"}) {
		t.Fatalf("path = %v", r.Path)
	}
	if r.Distance != 6 {
		t.Fatalf("distance = %v, want 6", r.Distance)
	}
}

func TestShortestPathSameStation(t *testing.T) {
	g := redLine(t)
	for _, name := range g.Stations() {
		r, err := g.ShortestPath(name, name)
		if err != nil {
			t.Fatal(err)
		}
		if r.Distance != 0 || !reflect.DeepEqual(r.Path, []string{name}) {
			t.Fatalf("%s: got %+v", name, r)
		}
		if r.EstimatedTime != 3 || r.Interchanges != 0 {
			t.Fatalf("%s: time %d interchanges %d", name, r.EstimatedTime, r.Interchanges)
		}
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	g := redLine(t)
	mustEdge(t, g, "Nagole", "Uppal", 2.0, "blue")

	r, err := g.ShortestPath("Miyapur", "Uppal")
	if err != nil {
		t.Fatalf("disconnected pair returned error: %v", err)
	}
	if r.Found() || len(r.Path) != 0 {
		t.Fatalf("path = %v, want empty", r.Path)
	}
	if r.Distance != 0 || r.Fare != 0 || r.EstimatedTime != 0 || r.Interchanges != 0 {
		t.Fatalf("metrics not zero: %+v", r)
	}
}

func TestShortestPathUnknownStation(t *testing.T) {
	g := redLine(t)
	before := g.StationCount()

	_, err := g.ShortestPath("Nonexistent", "Miyapur")
	if !errors.Is(err, ErrUnknownStation) {
		t.Fatalf("err = %v, want ErrUnknownStation", err)
	}
	_, err = g.ShortestPath("Miyapur", "Nonexistent")
	if !errors.Is(err, ErrUnknownStation) {
		t.Fatalf("err = %v, want ErrUnknownStation", err)
	}
	if g.StationCount() != before || g.Has("Nonexistent") {
		t.Fatal("failed query mutated the graph")
	}
}

func TestShortestPathConcurrentQueries(t *testing.T) {
	g := NewGraph()
	mustEdge(t, g, "A", "B", 1, "red")
	mustEdge(t, g, "B", "C", 1, "red")
	mustEdge(t, g, "C", "D", 1, "blue")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := g.ShortestPath("A", "D")
			if err != nil {
				errs <- err
				return
			}
			if r.Distance != 3 || r.Interchanges != 1 {
				errs <- errors.New("unexpected route")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
