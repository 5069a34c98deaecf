// Package pqueue provides the min-oriented candidate queue used by the
// shortest-path search.
//
// The queue never deduplicates: the same node may be inserted many times
// with different distances and the consumer discards stale entries when it
// pops them. Among equal distances items come out in insertion order.
package pqueue

import "container/heap"

// Item is a pending (node, tentative distance) candidate.
type Item struct {
	Node     int
	Distance float64

	seq uint64
}

type items []Item

func (h items) Len() int { return len(h) }

func (h items) Less(i, j int) bool {
	if h[i].Distance == h[j].Distance {
		return h[i].seq < h[j].seq
	}
	return h[i].Distance < h[j].Distance
}

func (h items) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *items) Push(x any) { *h = append(*h, x.(Item)) }

func (h *items) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue is a binary min-heap of candidates keyed by distance.
// It is not safe for concurrent use; callers allocate one per search.
type Queue struct {
	h   items
	seq uint64
}

func New() *Queue {
	return &Queue{}
}

// Insert adds a candidate and sifts it up into place.
func (q *Queue) Insert(node int, distance float64) {
	q.seq++
	heap.Push(&q.h, Item{Node: node, Distance: distance, seq: q.seq})
}

// ExtractMin removes and returns the candidate with the smallest distance.
// The second result is false when the queue is empty.
func (q *Queue) ExtractMin() (Item, bool) {
	if len(q.h) == 0 {
		return Item{}, false
	}
	return heap.Pop(&q.h).(Item), true
}

func (q *Queue) IsEmpty() bool { return len(q.h) == 0 }

func (q *Queue) Len() int { return len(q.h) }
