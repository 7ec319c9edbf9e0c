// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/tilestream/internal/core/domain"
)

// HeaderFetcher retrieves tile headers from a dataset.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type HeaderFetcher interface {
	// FetchRoot returns the root header of the dataset at basePath.
	FetchRoot(ctx context.Context, basePath string) (*domain.TileHeader, error)

	// FetchChildHeader returns the header of the child named childID.
	// The returned header's ID must equal childID. Inline children of the
	// header are materialized together with it. There are no retries; a
	// failed child is requested again on a later frame.
	FetchChildHeader(ctx context.Context, basePath string, childID domain.TileID) (*domain.TileHeader, error)
}

// ResourceReader reads raw dataset resources addressed relative to a base path.
type ResourceReader interface {
	// Read returns the bytes of the resource at rel, a slash-separated path below basePath.
	Read(ctx context.Context, basePath, rel string) ([]byte, error)
}
