package config

// Streamfile represents the structure of the tilestream.yaml configuration file.
type Streamfile struct {
	Version   string       `yaml:"version"`
	Source    SourceDTO    `yaml:"source"`
	Traversal TraversalDTO `yaml:"traversal"`
	Viewer    ViewerDTO    `yaml:"viewer"`
	Cache     CacheDTO     `yaml:"cache"`
	Fetch     FetchDTO     `yaml:"fetch"`
	Frames    []FrameDTO   `yaml:"frames"`
}

// SourceDTO locates the dataset.
type SourceDTO struct {
	BasePath string `yaml:"basePath"`
	Format   string `yaml:"format"`
}

// TraversalDTO holds the refinement options. Unset fields keep their defaults.
type TraversalDTO struct {
	MaximumScreenSpaceError *float64 `yaml:"maximumScreenSpaceError"`
	SkipLevelOfDetail       *bool    `yaml:"skipLevelOfDetail"`
	LoadSiblings            *bool    `yaml:"loadSiblings"`
}

// ViewerDTO describes the projection. The field of view is given in degrees.
type ViewerDTO struct {
	FieldOfView  float64 `yaml:"fieldOfView"`
	ScreenHeight float64 `yaml:"screenHeight"`
	ScreenWidth  float64 `yaml:"screenWidth"`
	Far          float64 `yaml:"far"`
}

// CacheDTO configures the recency cache.
type CacheDTO struct {
	Capacity int `yaml:"capacity"`
}

// FetchDTO configures header and content fetching.
type FetchDTO struct {
	Timeout          string `yaml:"timeout"`
	Concurrency      int    `yaml:"concurrency"`
	RequestsPerFrame int    `yaml:"requestsPerFrame"`
}

// FrameDTO is one camera pose of the replayed path.
type FrameDTO struct {
	Position  [3]float64 `yaml:"position"`
	Direction [3]float64 `yaml:"direction"`
}
