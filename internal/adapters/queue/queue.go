// Package queue orders content requests by priority.
package queue

import (
	"container/heap"
	"sync"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
)

var _ ports.RequestQueue = (*Priority)(nil)

// Priority is a min-heap of tiles keyed by their Priority field. Lower values
// are served first. A tile is queued at most once.
type Priority struct {
	mu    sync.Mutex
	items tileHeap
	index map[domain.TileID]int
}

// New creates an empty queue.
func New() *Priority {
	return &Priority{index: make(map[domain.TileID]int)}
}

// Enqueue adds tiles. A tile already queued is re-ordered by its current priority.
func (q *Priority) Enqueue(tiles []*domain.Tile) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range tiles {
		if i, ok := q.index[t.ID]; ok {
			q.items[i].priority = t.Priority
			heap.Fix(&queueView{q}, i)
			continue
		}
		heap.Push(&queueView{q}, entry{tile: t, priority: t.Priority})
	}
}

// Drain removes and returns up to n tiles, lowest priority value first. A
// non-positive n returns none.
func (q *Priority) Drain(n int) []*domain.Tile {
	q.mu.Lock()
	defer q.mu.Unlock()

	n = max(0, min(n, len(q.items)))
	out := make([]*domain.Tile, 0, n)
	for range n {
		e, _ := heap.Pop(&queueView{q}).(entry)
		out = append(out, e.tile)
	}
	return out
}

// Len returns the number of queued tiles.
func (q *Priority) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

type entry struct {
	tile     *domain.Tile
	priority float64
}

type tileHeap []entry

// queueView implements heap.Interface over the queue's items while keeping
// the id index in step.
type queueView struct {
	q *Priority
}

func (v *queueView) Len() int { return len(v.q.items) }

func (v *queueView) Less(i, j int) bool {
	a, b := v.q.items[i], v.q.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.tile.ID.String() < b.tile.ID.String()
}

func (v *queueView) Swap(i, j int) {
	items := v.q.items
	items[i], items[j] = items[j], items[i]
	v.q.index[items[i].tile.ID] = i
	v.q.index[items[j].tile.ID] = j
}

func (v *queueView) Push(x any) {
	e, _ := x.(entry)
	v.q.index[e.tile.ID] = len(v.q.items)
	v.q.items = append(v.q.items, e)
}

func (v *queueView) Pop() any {
	items := v.q.items
	last := items[len(items)-1]
	v.q.items = items[:len(items)-1]
	delete(v.q.index, last.tile.ID)
	return last
}
