package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tilestream/internal/core/domain"
)

func vol() domain.Volume {
	return domain.NewSphere(domain.Vec3{}, 1)
}

func TestNewTileset(t *testing.T) {
	ts, err := domain.NewTileset("https://example.com/tiles", domain.FormatTiles3D, &domain.TileHeader{
		ID:             "root",
		GeometricError: 500,
		BoundingVolume: vol(),
		ContentURI:     "root.b3dm",
		Children: []*domain.TileHeader{
			{ID: "a", BoundingVolume: vol(), Refine: domain.RefineAdd, Children: []*domain.TileHeader{
				{ID: "a/1", BoundingVolume: vol(), ContentURI: "a1.pnts"},
			}},
			{ID: "b", BoundingVolume: vol(), ChildRefs: []string{"b/ext"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/tiles", ts.BasePath())
	assert.Equal(t, domain.FormatTiles3D, ts.Format())
	assert.InDelta(t, 500.0, ts.GeometricError(), 1e-9)
	assert.Equal(t, 4, ts.Len())

	root := ts.Root()
	assert.Equal(t, domain.NoNode, root.Parent)
	assert.Nil(t, ts.Parent(root))
	assert.Equal(t, domain.RefineReplace, root.Refine, "root defaults to REPLACE")
	assert.Equal(t, domain.ContentUnloaded, root.Content)
	assert.Len(t, root.Children, 2)

	a, ok := ts.Lookup(domain.NewTileID("a"))
	require.True(t, ok)
	assert.Same(t, root, ts.Parent(a))
	assert.Equal(t, domain.ContentEmpty, a.Content)
	assert.False(t, a.HasRenderContent())

	a1, ok := ts.Lookup(domain.NewTileID("a/1"))
	require.True(t, ok)
	assert.Equal(t, domain.RefineAdd, a1.Refine, "refinement is inherited")
	assert.Same(t, a, ts.Node(a1.Parent))

	b, ok := ts.Lookup(domain.NewTileID("b"))
	require.True(t, ok)
	assert.True(t, b.HasChildren())
	assert.False(t, ts.MaterializedAll(b))
	assert.True(t, ts.MaterializedAll(a))
}

func TestNewTileset_Errors(t *testing.T) {
	_, err := domain.NewTileset("", domain.FormatI3S, nil)
	assert.ErrorIs(t, err, domain.ErrMissingRootHeader)

	_, err = domain.NewTileset("", domain.FormatI3S, &domain.TileHeader{BoundingVolume: vol()})
	assert.ErrorIs(t, err, domain.ErrMissingTileID)

	_, err = domain.NewTileset("", domain.FormatI3S, &domain.TileHeader{ID: "0"})
	assert.ErrorContains(t, err, domain.ErrInvalidBoundingVolume.Error())
}

func TestTileset_Attach(t *testing.T) {
	ts, err := domain.NewTileset("", domain.FormatI3S, &domain.TileHeader{
		ID: "0", BoundingVolume: vol(), ChildRefs: []string{"1"},
	})
	require.NoError(t, err)
	root := ts.Root()

	child, err := ts.Attach(root, &domain.TileHeader{ID: "1", BoundingVolume: vol(), ContentURI: "1.bin"})
	require.NoError(t, err)
	assert.Equal(t, domain.NodeIndex(1), child.Index)
	assert.Equal(t, []domain.NodeIndex{1}, root.Children)
	assert.True(t, ts.MaterializedAll(root))

	_, err = ts.Attach(root, &domain.TileHeader{ID: "1", BoundingVolume: vol()})
	assert.ErrorContains(t, err, domain.ErrDuplicateTile.Error())

	_, err = ts.Attach(nil, &domain.TileHeader{ID: "2", BoundingVolume: vol()})
	assert.ErrorContains(t, err, domain.ErrDuplicateTile.Error(), "only one root")
}

func TestTileset_AttachRejectsInvalidTreeUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		header  *domain.TileHeader
		wantErr error
	}{
		{
			name: "nested duplicate of existing tile",
			header: &domain.TileHeader{ID: "1", BoundingVolume: vol(), Children: []*domain.TileHeader{
				{ID: "0", BoundingVolume: vol()},
			}},
			wantErr: domain.ErrDuplicateTile,
		},
		{
			name: "duplicate within the header tree",
			header: &domain.TileHeader{ID: "1", BoundingVolume: vol(), Children: []*domain.TileHeader{
				{ID: "2", BoundingVolume: vol()},
				{ID: "2", BoundingVolume: vol()},
			}},
			wantErr: domain.ErrDuplicateTile,
		},
		{
			name: "nested header without volume",
			header: &domain.TileHeader{ID: "1", BoundingVolume: vol(), Children: []*domain.TileHeader{
				{ID: "2", BoundingVolume: vol(), Children: []*domain.TileHeader{{ID: "3"}}},
			}},
			wantErr: domain.ErrInvalidBoundingVolume,
		},
		{
			name: "nested header without id",
			header: &domain.TileHeader{ID: "1", BoundingVolume: vol(), Children: []*domain.TileHeader{
				{BoundingVolume: vol()},
			}},
			wantErr: domain.ErrMissingTileID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := domain.NewTileset("", domain.FormatI3S, &domain.TileHeader{
				ID: "0", BoundingVolume: vol(), ChildRefs: []string{"1"},
			})
			require.NoError(t, err)
			root := ts.Root()

			_, err = ts.Attach(root, tt.header)

			assert.ErrorContains(t, err, tt.wantErr.Error())
			assert.Equal(t, 1, ts.Len())
			assert.Empty(t, root.Children)
			assert.False(t, ts.MaterializedAll(root))
			_, ok := ts.Lookup(domain.NewTileID("1"))
			assert.False(t, ok)
		})
	}
}

func TestTileset_Pending(t *testing.T) {
	ts, err := domain.NewTileset("", domain.FormatI3S, &domain.TileHeader{ID: "0", BoundingVolume: vol()})
	require.NoError(t, err)
	id := domain.NewTileID("7")

	assert.False(t, ts.IsPending(id))
	ts.MarkPending(id)
	assert.True(t, ts.IsPending(id))
	ts.ClearPending(id)
	assert.False(t, ts.IsPending(id))
}

func TestTile_ContentPredicates(t *testing.T) {
	tests := []struct {
		name      string
		tile      domain.Tile
		render    bool
		unloaded  bool
		available bool
		expired   bool
	}{
		{"empty", domain.Tile{Content: domain.ContentEmpty}, false, false, false, false},
		{"unloaded", domain.Tile{Content: domain.ContentUnloaded}, true, true, false, false},
		{"loading", domain.Tile{Content: domain.ContentLoading}, true, false, false, false},
		{"available", domain.Tile{Content: domain.ContentAvailable}, true, false, true, false},
		{"expired", domain.Tile{Content: domain.ContentExpired}, true, false, false, true},
		{"external tileset", domain.Tile{Content: domain.ContentUnloaded, HasTilesetContent: true}, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.render, tt.tile.HasRenderContent())
			assert.Equal(t, tt.unloaded, tt.tile.HasUnloadedContent())
			assert.Equal(t, tt.available, tt.tile.ContentAvailable())
			assert.Equal(t, tt.expired, tt.tile.ContentExpired())
		})
	}
}

func TestTile_RefinesIn(t *testing.T) {
	tile := domain.Tile{Refines: true, RefinesFrame: 3}

	assert.True(t, tile.RefinesIn(3))
	assert.False(t, tile.RefinesIn(4), "stale refinement is ignored")
}
