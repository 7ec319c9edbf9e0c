package domain

import "time"

const (
	// ConfigFileName is the name of the configuration file discovered from the working directory.
	ConfigFileName = "tilestream.yaml"

	// DefaultCacheCapacity is the number of tiles the recency cache keeps before evicting.
	DefaultCacheCapacity = 512

	// DefaultFetchTimeout bounds a single header or content fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultContentConcurrency bounds concurrent content fetches per frame.
	DefaultContentConcurrency = 8

	// DefaultRequestsPerFrame bounds how many requested tiles are loaded per frame.
	DefaultRequestsPerFrame = 32
)

// SourceConfig locates the dataset.
type SourceConfig struct {
	BasePath string
	Format   Format
}

// ViewerConfig describes the projection shared by all frames.
type ViewerConfig struct {
	FieldOfViewY float64 // radians
	ScreenHeight float64 // pixels
	ScreenWidth  float64 // pixels
	Far          float64 // far plane distance, 0 disables it
}

// AspectRatio returns width over height.
func (v ViewerConfig) AspectRatio() float64 {
	return v.ScreenWidth / v.ScreenHeight
}

// Config is the fully resolved configuration of a streaming session.
type Config struct {
	Source             SourceConfig
	Traversal          TraversalOptions
	Viewer             ViewerConfig
	Frames             []Camera
	CacheCapacity      int
	FetchTimeout       time.Duration
	ContentConcurrency int
	RequestsPerFrame   int
}
