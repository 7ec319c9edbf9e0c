package domain

import "go.trai.ch/zerr"

// Tileset is the arena that owns every materialized tile of one dataset.
// Parents are stored as indices so the tree has no ownership cycles.
type Tileset struct {
	basePath       string
	format         Format
	geometricError float64

	nodes   []*Tile
	byID    map[TileID]NodeIndex
	pending map[TileID]struct{}
}

// NewTileset creates a tileset whose root is materialized from header.
// The tileset-level geometric error defaults to the root's own error.
func NewTileset(basePath string, format Format, header *TileHeader) (*Tileset, error) {
	if header == nil {
		return nil, ErrMissingRootHeader
	}

	ts := &Tileset{
		basePath:       basePath,
		format:         format,
		geometricError: header.GeometricError,
		byID:           make(map[TileID]NodeIndex),
		pending:        make(map[TileID]struct{}),
	}
	if _, err := ts.Attach(nil, header); err != nil {
		return nil, err
	}
	return ts, nil
}

// BasePath returns the location tile headers are fetched relative to.
func (ts *Tileset) BasePath() string {
	return ts.basePath
}

// Format returns the dataset format.
func (ts *Tileset) Format() Format {
	return ts.format
}

// GeometricError returns the tileset-level error used as the root's parent error.
func (ts *Tileset) GeometricError() float64 {
	return ts.geometricError
}

// Root returns the root tile.
func (ts *Tileset) Root() *Tile {
	return ts.nodes[0]
}

// Len returns the number of materialized tiles.
func (ts *Tileset) Len() int {
	return len(ts.nodes)
}

// Node returns the tile at index i.
func (ts *Tileset) Node(i NodeIndex) *Tile {
	return ts.nodes[i]
}

// Parent returns the tile's parent or nil for the root.
func (ts *Tileset) Parent(t *Tile) *Tile {
	if t.Parent == NoNode {
		return nil
	}
	return ts.nodes[t.Parent]
}

// Lookup returns the materialized tile with the given id.
func (ts *Tileset) Lookup(id TileID) (*Tile, bool) {
	i, ok := ts.byID[id]
	if !ok {
		return nil, false
	}
	return ts.nodes[i], true
}

// Tiles returns every materialized tile in creation order.
func (ts *Tileset) Tiles() []*Tile {
	return ts.nodes
}

// MarkPending records that a header fetch for id is in flight.
func (ts *Tileset) MarkPending(id TileID) {
	ts.pending[id] = struct{}{}
}

// ClearPending forgets an in-flight header fetch.
func (ts *Tileset) ClearPending(id TileID) {
	delete(ts.pending, id)
}

// IsPending reports whether a header fetch for id is in flight.
func (ts *Tileset) IsPending(id TileID) bool {
	_, ok := ts.pending[id]
	return ok
}

// Attach materializes header, and recursively its inline children, as a child of parent.
// A nil parent attaches the root. The whole header tree is checked first, so a
// failed attach leaves the tileset unchanged.
func (ts *Tileset) Attach(parent *Tile, header *TileHeader) (*Tile, error) {
	if parent == nil && len(ts.nodes) > 0 {
		return nil, zerr.With(ErrDuplicateTile, "tile", header.ID)
	}
	if err := ts.validate(header, make(map[TileID]struct{})); err != nil {
		return nil, err
	}
	return ts.attach(parent, header), nil
}

// validate checks that every header in the tree has an id not yet in use and
// a bounding volume.
func (ts *Tileset) validate(header *TileHeader, seen map[TileID]struct{}) error {
	if header == nil || header.ID == "" {
		return ErrMissingTileID
	}
	if header.BoundingVolume == nil {
		return zerr.With(ErrInvalidBoundingVolume, "tile", header.ID)
	}
	id := NewTileID(header.ID)
	if _, exists := ts.byID[id]; exists {
		return zerr.With(ErrDuplicateTile, "tile", header.ID)
	}
	if _, exists := seen[id]; exists {
		return zerr.With(ErrDuplicateTile, "tile", header.ID)
	}
	seen[id] = struct{}{}

	for _, child := range header.Children {
		if err := ts.validate(child, seen); err != nil {
			return err
		}
	}
	return nil
}

func (ts *Tileset) attach(parent *Tile, header *TileHeader) *Tile {
	tile := &Tile{
		ID:                   NewTileID(header.ID),
		Index:                NodeIndex(len(ts.nodes)),
		Parent:               NoNode,
		ChildRefs:            NewTileIDs(header.ChildRefs),
		GeometricError:       header.GeometricError,
		BoundingVolume:       header.BoundingVolume,
		RequestVolume:        header.RequestVolume,
		Refine:               header.Refine,
		ChildrenWithinParent: header.ChildrenWithinParent,
		LODThreshold:         header.LODThreshold,
		HasTilesetContent:    header.HasTilesetContent,
		ContentURI:           header.ContentURI,
		ExpireAt:             header.ExpireAt,
		Content:              ContentEmpty,
	}
	if header.ContentURI != "" {
		tile.Content = ContentUnloaded
	}
	if tile.Refine == "" {
		tile.Refine = RefineReplace
		if parent != nil {
			tile.Refine = parent.Refine
		}
	}
	if parent != nil {
		tile.Parent = parent.Index
		parent.Children = append(parent.Children, tile.Index)
	}

	ts.nodes = append(ts.nodes, tile)
	ts.byID[tile.ID] = tile.Index

	for _, child := range header.Children {
		ts.attach(tile, child)
	}
	return tile
}

// MaterializedAll reports whether every child the tile references has been attached.
func (ts *Tileset) MaterializedAll(t *Tile) bool {
	for _, ref := range t.ChildRefs {
		if _, ok := ts.byID[ref]; !ok {
			return false
		}
	}
	return true
}
