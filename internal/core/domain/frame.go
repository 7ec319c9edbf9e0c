package domain

import (
	"maps"
	"slices"
	"time"
)

// Camera is the viewer pose for one frame.
type Camera struct {
	Position  Vec3 `yaml:"position"`
	Direction Vec3 `yaml:"direction"`
}

// FrameState is the externally supplied, read-only input of one traversal.
type FrameState struct {
	// Number strictly identifies one traversal invocation and increases monotonically.
	Number        uint64
	Time          time.Time
	Camera        Camera
	FieldOfViewY  float64 // radians
	ScreenHeight  float64 // pixels
	CullingVolume []Plane
}

// TraversalOptions tune the refinement decisions of the traversal engine.
type TraversalOptions struct {
	// LoadSiblings force-loads non-visible siblings needed for parent refinement.
	LoadSiblings bool `yaml:"loadSiblings"`
	// SkipLevelOfDetail disables waiting for all children before a REPLACE tile refines.
	SkipLevelOfDetail bool `yaml:"skipLevelOfDetail"`
	// MaximumScreenSpaceError is the refinement threshold in pixels.
	MaximumScreenSpaceError float64 `yaml:"maximumScreenSpaceError"`
}

// DefaultMaximumScreenSpaceError is the refinement threshold used when none is configured.
const DefaultMaximumScreenSpaceError = 2.0

// DefaultTraversalOptions returns {LoadSiblings: false, SkipLevelOfDetail: false, MaximumScreenSpaceError: 2}.
func DefaultTraversalOptions() TraversalOptions {
	return TraversalOptions{
		MaximumScreenSpaceError: DefaultMaximumScreenSpaceError,
	}
}

// TraversalResult is the output of one completed traversal.
type TraversalResult struct {
	Frame          uint64
	SelectedTiles  map[TileID]*Tile
	RequestedTiles map[TileID]*Tile
	EmptyTiles     map[TileID]*Tile
}

// NewTraversalResult creates empty result sets for frame.
func NewTraversalResult(frame uint64) *TraversalResult {
	return &TraversalResult{
		Frame:          frame,
		SelectedTiles:  make(map[TileID]*Tile),
		RequestedTiles: make(map[TileID]*Tile),
		EmptyTiles:     make(map[TileID]*Tile),
	}
}

// SelectedIDs returns the ids of the selected tiles, sorted.
func (r *TraversalResult) SelectedIDs() []string {
	return sortedIDs(r.SelectedTiles)
}

// RequestedIDs returns the ids of the requested tiles, sorted.
func (r *TraversalResult) RequestedIDs() []string {
	return sortedIDs(r.RequestedTiles)
}

// EmptyIDs returns the ids of the visited content-less tiles, sorted.
func (r *TraversalResult) EmptyIDs() []string {
	return sortedIDs(r.EmptyTiles)
}

// Requested returns the requested tiles.
func (r *TraversalResult) Requested() []*Tile {
	return slices.Collect(maps.Values(r.RequestedTiles))
}

func sortedIDs(m map[TileID]*Tile) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id.String())
	}
	slices.Sort(ids)
	return ids
}

// MaxCanceledFrames bounds the history of abandoned traversals.
const MaxCanceledFrames = 20

// FrameHistory keeps the most recent abandoned frame numbers, oldest first.
type FrameHistory struct {
	frames []uint64
}

// Push records an abandoned frame, dropping the oldest entry beyond MaxCanceledFrames.
func (h *FrameHistory) Push(frame uint64) {
	if len(h.frames) == MaxCanceledFrames {
		copy(h.frames, h.frames[1:])
		h.frames = h.frames[:MaxCanceledFrames-1]
	}
	h.frames = append(h.frames, frame)
}

// Frames returns a copy of the recorded frames, oldest first.
func (h *FrameHistory) Frames() []uint64 {
	return slices.Clone(h.frames)
}

// Len returns the number of recorded frames.
func (h *FrameHistory) Len() int {
	return len(h.frames)
}
