// Package cache tracks the recency of tiles with loaded content.
package cache

import (
	"container/list"
	"sync"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
)

var _ ports.TileCache = (*LRU)(nil)

// LRU orders tiles with loaded content from most to least recently touched.
// Only tiles added after a successful load are tracked; touching any other
// tile is a no-op.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recent
	items    map[domain.TileID]*list.Element
}

// NewLRU creates a cache that keeps at most capacity tiles after Evict.
func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[domain.TileID]*list.Element),
	}
}

// Add starts tracking a tile whose content just loaded.
func (c *LRU) Add(tile *domain.Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[tile.ID]; ok {
		c.order.MoveToFront(el)
		return
	}
	c.items[tile.ID] = c.order.PushFront(tile)
}

// Touch marks the tile as recently used. Untracked tiles are ignored.
func (c *LRU) Touch(tile *domain.Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[tile.ID]; ok {
		c.order.MoveToFront(el)
	}
}

// Len returns the number of tracked tiles.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Evict drops least recently used tiles until at most capacity remain and
// returns them. Tiles touched in frame are kept even above capacity.
func (c *LRU) Evict(frame uint64) []*domain.Tile {
	c.mu.Lock()
	defer c.mu.Unlock()

	var evicted []*domain.Tile
	for el := c.order.Back(); el != nil && c.order.Len() > c.capacity; {
		prev := el.Prev()
		tile, _ := el.Value.(*domain.Tile)
		if tile.TouchedFrame != frame {
			c.order.Remove(el)
			delete(c.items, tile.ID)
			evicted = append(evicted, tile)
		}
		el = prev
	}
	return evicted
}
