package ports

import "time"

// Metrics records traversal and streaming statistics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// TraversalCompleted records a finished traversal and the size of its result.
	TraversalCompleted(duration time.Duration, selected, requested, empty int)
	// TraversalSkipped records a traversal that reused the previous result.
	TraversalSkipped()
	// FrameCanceled records a traversal abandoned for a newer frame.
	FrameCanceled()
	// HeaderFetchFailed records a child header that could not be fetched.
	HeaderFetchFailed()
	// ContentLoaded records a finished content fetch.
	ContentLoaded(bytes int, err error)
	// CacheEvicted records tiles removed from the recency cache.
	CacheEvicted(n int)
}
