package ports

import "go.trai.ch/tilestream/internal/core/domain"

// RequestQueue orders content requests by priority.
//
//go:generate mockgen -source=request_queue.go -destination=mocks/mock_request_queue.go -package=mocks
type RequestQueue interface {
	// Enqueue adds tiles to the queue. A tile already queued has its priority updated.
	Enqueue(tiles []*domain.Tile)

	// Drain removes and returns up to n tiles, lowest priority value first.
	Drain(n int) []*domain.Tile

	// Len returns the number of queued tiles.
	Len() int
}
