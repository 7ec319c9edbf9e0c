package domain

import "time"

// NodeIndex addresses a tile inside its Tileset arena.
type NodeIndex int32

// NoNode marks the absence of a node, e.g. the root's parent.
const NoNode NodeIndex = -1

// TileHeader is the metadata a fetcher returns for one tile. Inline children
// are materialized together with their parent; ChildRefs name children that
// must be fetched separately.
type TileHeader struct {
	ID                   string
	GeometricError       float64
	BoundingVolume       Volume
	RequestVolume        Volume
	Refine               Refinement // empty inherits the parent's refinement
	ContentURI           string
	HasTilesetContent    bool
	ExpireAt             time.Time
	ChildrenWithinParent bool
	LODThreshold         float64 // projected-size threshold in pixels, 0 when unused
	ChildRefs            []string
	Children             []*TileHeader
}

// Tile is one node of the lazily materialized tile tree.
type Tile struct {
	ID    TileID
	Index NodeIndex

	Parent    NodeIndex
	Children  []NodeIndex
	ChildRefs []TileID

	GeometricError       float64
	BoundingVolume       Volume
	RequestVolume        Volume
	Refine               Refinement
	ChildrenWithinParent bool
	LODThreshold         float64

	Content           ContentState
	HasTilesetContent bool
	ContentURI        string
	ExpireAt          time.Time

	// Per-frame fields. They are only meaningful for VisitedFrame.
	VisitedFrame     uint64
	Visible          bool
	InRequestVolume  bool
	ScreenSpaceError float64
	DistanceToCamera float64
	CenterZDepth     float64
	Refines          bool
	RefinesFrame     uint64
	SelectedFrame    uint64
	RequestedFrame   uint64
	TouchedFrame     uint64
	Priority         float64
}

// HasChildren reports whether the tile has materialized or referenced children.
func (t *Tile) HasChildren() bool {
	return len(t.Children) > 0 || len(t.ChildRefs) > 0
}

// HasRenderContent reports whether the tile carries a renderable payload.
// External tileset references are not renderable.
func (t *Tile) HasRenderContent() bool {
	return t.Content != ContentEmpty && !t.HasTilesetContent
}

// HasUnloadedContent reports whether the renderable payload still has to be fetched.
func (t *Tile) HasUnloadedContent() bool {
	return t.HasRenderContent() && t.Content == ContentUnloaded
}

// ContentAvailable reports whether the payload is loaded and usable.
func (t *Tile) ContentAvailable() bool {
	return t.Content == ContentAvailable
}

// ContentExpired reports whether the payload's TTL lapsed.
func (t *Tile) ContentExpired() bool {
	return t.Content == ContentExpired
}

// IsVisibleAndInRequestVolume reports the combined per-frame visibility verdict.
func (t *Tile) IsVisibleAndInRequestVolume() bool {
	return t.Visible && t.InRequestVolume
}

// RefinesIn returns the tile's refinement status if it was computed for frame,
// and false otherwise.
func (t *Tile) RefinesIn(frame uint64) bool {
	return t.RefinesFrame == frame && t.Refines
}
