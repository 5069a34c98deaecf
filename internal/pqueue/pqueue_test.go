package pqueue

import (
	"math/rand"
	"testing"
)

func checkHeap(t *testing.T, q *Queue) {
	t.Helper()
	for i := 1; i < len(q.h); i++ {
		parent := (i - 1) / 2
		if q.h[parent].Distance > q.h[i].Distance {
			t.Fatalf("heap property broken at %d: parent %.3f > child %.3f", i, q.h[parent].Distance, q.h[i].Distance)
		}
	}
}

func TestExtractMinEmpty(t *testing.T) {
	q := New()
	if !q.IsEmpty() {
		t.Fatal("new queue should be empty")
	}
	if _, ok := q.ExtractMin(); ok {
		t.Fatal("ExtractMin on empty queue returned ok")
	}
}

func TestExtractMinOrder(t *testing.T) {
	q := New()
	for i, d := range []float64{5.5, 1.2, 9.0, 3.3, 0.4, 7.1} {
		q.Insert(i, d)
		checkHeap(t, q)
	}
	want := []int{4, 1, 3, 0, 5, 2}
	for _, node := range want {
		it, ok := q.ExtractMin()
		if !ok {
			t.Fatalf("queue drained early, want node %d", node)
		}
		if it.Node != node {
			t.Fatalf("got node %d, want %d", it.Node, node)
		}
		checkHeap(t, q)
	}
	if !q.IsEmpty() {
		t.Fatalf("queue should be empty, has %d", q.Len())
	}
}

func TestDuplicateNodesKept(t *testing.T) {
	q := New()
	q.Insert(7, 4.0)
	q.Insert(7, 2.0)
	q.Insert(7, 3.0)
	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	first, _ := q.ExtractMin()
	if first.Node != 7 || first.Distance != 2.0 {
		t.Fatalf("got %+v, want node 7 at 2.0", first)
	}
}

func TestEqualDistancesPopInInsertionOrder(t *testing.T) {
	q := New()
	q.Insert(3, 1.0)
	q.Insert(1, 1.0)
	q.Insert(9, 0.5)
	q.Insert(2, 1.0)
	q.Insert(0, 1.0)

	want := []int{9, 3, 1, 2, 0}
	for _, node := range want {
		it, _ := q.ExtractMin()
		if it.Node != node {
			t.Fatalf("got node %d, want %d", it.Node, node)
		}
	}
}

func TestInterleavedNonDecreasing(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	q := New()
	last := -1.0
	popped := 0
	for step := 0; step < 2000; step++ {
		if r.Intn(3) > 0 {
			// never insert below what has already been popped, as Dijkstra does
			q.Insert(step, last+r.Float64()*10)
			checkHeap(t, q)
			continue
		}
		it, ok := q.ExtractMin()
		if !ok {
			continue
		}
		if it.Distance < last {
			t.Fatalf("pop %d returned %.4f after %.4f", popped, it.Distance, last)
		}
		last = it.Distance
		popped++
		checkHeap(t, q)
	}
	for !q.IsEmpty() {
		it, _ := q.ExtractMin()
		if it.Distance < last {
			t.Fatalf("drain returned %.4f after %.4f", it.Distance, last)
		}
		last = it.Distance
	}
}
