package traversal_test

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/engine/traversal"
	"go.uber.org/mock/gomock"
)

// replaceTree is a REPLACE root with error 100 and two children with error 10.
// From frameAt(n, 110) the root projects to 50 pixels.
func replaceTree() *domain.TileHeader {
	return &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		Refine:         domain.RefineReplace,
		ContentURI:     "root.b3dm",
		Children: []*domain.TileHeader{
			{ID: "a", GeometricError: 10, BoundingVolume: sphere(-5, 0, 0, 5), ContentURI: "a.b3dm"},
			{ID: "b", GeometricError: 10, BoundingVolume: sphere(5, 0, 0, 5), ContentURI: "b.b3dm"},
		},
	}
}

func TestNew_RejectsNonPositiveThreshold(t *testing.T) {
	ts := newTileset(t, replaceTree())

	_, err := traversal.New(ts, traversal.Tiles3D{}, nil, nil, domain.TraversalOptions{}, nil, nil, nil)

	assert.ErrorContains(t, err, domain.ErrInvalidScreenSpaceError.Error())
}

func TestTraverse_RefinesWhenAllChildrenAvailable(t *testing.T) {
	ts := newTileset(t, replaceTree())
	setAvailable(t, ts, "root", "a", "b")
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	res := e.Result()
	assert.Equal(t, uint64(1), res.Frame)
	assert.Equal(t, []string{"a", "b"}, res.SelectedIDs())
	assert.Empty(t, res.RequestedIDs())
	assert.True(t, ts.Root().RefinesIn(1))
}

func TestTraverse_KeepsParentUntilChildrenLoad(t *testing.T) {
	ts := newTileset(t, replaceTree())
	setAvailable(t, ts, "root", "a")
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	res := e.Result()
	assert.Equal(t, []string{"root"}, res.SelectedIDs())
	assert.Equal(t, []string{"b"}, res.RequestedIDs())
	assert.Equal(t, uint64(1), mustLookup(t, ts, "b").RequestedFrame)
	assert.False(t, ts.Root().RefinesIn(1))
}

func TestTraverse_SkipLevelOfDetailRefinesImmediately(t *testing.T) {
	ts := newTileset(t, replaceTree())
	setAvailable(t, ts, "root", "a")
	opts := domain.DefaultTraversalOptions()
	opts.SkipLevelOfDetail = true
	e, _ := setupEngineTest(t, ts, opts)

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, e.Result().SelectedIDs())
	assert.Equal(t, []string{"b"}, e.Result().RequestedIDs())
}

func TestTraverse_TouchesEveryVisitedTile(t *testing.T) {
	ts := newTileset(t, replaceTree())
	setAvailable(t, ts, "root", "a", "b")
	e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ok, err := e.Traverse(t.Context(), frameAt(4, 110))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"root": 1, "a": 1, "b": 1}, m.cache.touched)
	for _, tile := range ts.Tiles() {
		assert.Equal(t, uint64(4), tile.TouchedFrame, tile.ID.String())
	}
	for _, tile := range e.Result().SelectedTiles {
		assert.True(t, tile.ContentAvailable())
	}
}

func TestTraverse_AdditiveTilesAlwaysSelected(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		Refine:         domain.RefineAdd,
		ContentURI:     "root.pnts",
		Children: []*domain.TileHeader{
			{ID: "a", GeometricError: 10, BoundingVolume: sphere(-5, 0, 0, 5), ContentURI: "a.pnts"},
			{ID: "b", GeometricError: 10, BoundingVolume: sphere(0, 0, 0, 5), ContentURI: "b.pnts"},
		},
	})
	setAvailable(t, ts, "root", "a")
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "root"}, e.Result().SelectedIDs())
	assert.Equal(t, []string{"b"}, e.Result().RequestedIDs())
	assert.InDelta(t, 105.0, mustLookup(t, ts, "b").Priority, 1e-9, "additive priority is distance")
}

func TestTraverse_AdditiveChildMeetingErrorEarlyIsCulled(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		Refine:         domain.RefineAdd,
		ContentURI:     "root.pnts",
		Children: []*domain.TileHeader{
			{ID: "near", GeometricError: 10, BoundingVolume: sphere(0, 0, 0, 5), ContentURI: "near.pnts"},
			// The root's error projects to under 10 pixels this far away.
			{ID: "far", GeometricError: 10, BoundingVolume: sphere(0, 0, -400, 5), ContentURI: "far.pnts"},
		},
	})
	setAvailable(t, ts, "root")
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"root"}, e.Result().SelectedIDs())
	assert.Equal(t, []string{"near"}, e.Result().RequestedIDs())
	assert.True(t, mustLookup(t, ts, "near").Visible)
	assert.False(t, mustLookup(t, ts, "far").Visible)
}

func TestTraverse_RootNotVisible(t *testing.T) {
	ts := newTileset(t, replaceTree())
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	frame := frameAt(1, 110)
	frame.CullingVolume = []domain.Plane{{Normal: domain.Vec3{X: 1}, Distance: -100}}

	ok, err := e.Traverse(t.Context(), frame)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), e.Result().Frame, "previous result is kept")
}

func TestTraverse_RootWithinThreshold(t *testing.T) {
	ts := newTileset(t, replaceTree())
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	// 5000/d <= 2 once the camera is 2500 away.
	ok, err := e.Traverse(t.Context(), frameAt(1, 5010))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, e.Result().SelectedIDs())
}

func TestTraverse_ThreeLevelsWithUnfetchedGrandchildren(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		ContentURI:     "root.b3dm",
		Children: []*domain.TileHeader{{
			ID:             "mid",
			GeometricError: 10,
			BoundingVolume: sphere(0, 0, 0, 5),
			ContentURI:     "mid.b3dm",
			ChildRefs:      []string{"leaf-a", "leaf-b"},
		}},
	})
	setAvailable(t, ts, "root", "mid")
	e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), "mem://tiles", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, id domain.TileID) (*domain.TileHeader, error) {
			return &domain.TileHeader{
				ID:             id.String(),
				GeometricError: 1,
				BoundingVolume: sphere(0, 0, 0, 2),
				ContentURI:     id.String() + ".b3dm",
			}, nil
		},
	).Times(2)

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	res := e.Result()
	assert.Equal(t, []string{"mid"}, res.SelectedIDs())
	assert.Equal(t, []string{"leaf-a", "leaf-b"}, res.RequestedIDs())
	assert.Equal(t, 4, ts.Len())
}

func TestTraverse_FetchFailureKeepsParent(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		ContentURI:     "root.b3dm",
		ChildRefs:      []string{"child"},
	})
	setAvailable(t, ts, "root")
	e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), gomock.Any(), domain.NewTileID("child")).
		Return(nil, errors.New("connection refused"))

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"root"}, e.Result().SelectedIDs())
	assert.False(t, ts.IsPending(domain.NewTileID("child")))
	assert.Equal(t, 1, ts.Len())
}

func TestTraverse_EmptyChildWaitsForDescendants(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		ContentURI:     "root.b3dm",
		Children: []*domain.TileHeader{{
			ID:             "empty",
			GeometricError: 50,
			BoundingVolume: sphere(0, 0, 0, 8),
			Children: []*domain.TileHeader{
				{ID: "leaf", GeometricError: 1, BoundingVolume: sphere(0, 0, 0, 4), ContentURI: "leaf.b3dm"},
			},
		}},
	})
	setAvailable(t, ts, "root")
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"root"}, e.Result().SelectedIDs())
	assert.Equal(t, []string{"empty"}, e.Result().EmptyIDs())
	assert.Equal(t, []string{"leaf"}, e.Result().RequestedIDs())

	setAvailable(t, ts, "leaf")
	ok, err = e.Traverse(t.Context(), frameAt(2, 110))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"leaf"}, e.Result().SelectedIDs())
}

// externalTree is a REPLACE root with a visible child "a" and an external
// tileset child "ext" on the negative X side.
func externalTree(rootContent string) *domain.TileHeader {
	return &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 60),
		Refine:         domain.RefineReplace,
		ContentURI:     rootContent,
		Children: []*domain.TileHeader{
			{ID: "a", GeometricError: 10, BoundingVolume: sphere(5, 0, 0, 5), ContentURI: "a.b3dm"},
			{
				ID:                "ext",
				GeometricError:    10,
				BoundingVolume:    sphere(-50, 0, 0, 5),
				HasTilesetContent: true,
				ChildRefs:         []string{"ext/tileset.json"},
			},
		},
	}
}

func expectExternalRoot(m engineTestMocks) {
	m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), "mem://tiles", domain.NewTileID("ext/tileset.json")).
		Return(&domain.TileHeader{
			ID:             "ext/tileset.json",
			GeometricError: 5,
			BoundingVolume: sphere(-50, 0, 0, 5),
			ContentURI:     "ext/root.b3dm",
		}, nil).Times(1)
}

// positiveX culls everything left of the YZ plane.
func positiveX(number uint64) *domain.FrameState {
	frame := frameAt(number, 110)
	frame.CullingVolume = []domain.Plane{{Normal: domain.Vec3{X: 1}}}
	return frame
}

func TestTraverse_OffscreenExternalTilesetIsFetched(t *testing.T) {
	ts := newTileset(t, externalTree("root.b3dm"))
	setAvailable(t, ts, "root", "a")
	e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())
	expectExternalRoot(m)

	ok, err := e.Traverse(t.Context(), positiveX(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, ts.MaterializedAll(mustLookup(t, ts, "ext")))
	assert.Equal(t, []string{"root"}, e.Result().SelectedIDs())
	assert.Equal(t, []string{"ext/tileset.json"}, e.Result().RequestedIDs())

	setAvailable(t, ts, "ext/tileset.json")
	for frame := uint64(2); frame <= 5; frame++ {
		ok, err = e.Traverse(t.Context(), positiveX(frame))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, e.Result().SelectedIDs(), "frame %d", frame)
	}
}

func TestTraverse_LoadSiblingsFetchesOffscreenExternalTileset(t *testing.T) {
	ts := newTileset(t, externalTree(""))
	setAvailable(t, ts, "a")
	opts := domain.DefaultTraversalOptions()
	opts.LoadSiblings = true
	e, m := setupEngineTest(t, ts, opts)
	expectExternalRoot(m)

	ok, err := e.Traverse(t.Context(), positiveX(1))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, ts.Len())
	assert.Equal(t, []string{"a"}, e.Result().SelectedIDs())
}

func TestTraverse_LoadSiblingsRequestsInvisibleChildren(t *testing.T) {
	header := &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		Children: []*domain.TileHeader{
			{ID: "a", GeometricError: 10, BoundingVolume: sphere(-5, 0, 0, 5), ContentURI: "a.b3dm"},
			{ID: "b", GeometricError: 10, BoundingVolume: sphere(5, 0, 0, 5), ContentURI: "b.b3dm",
				RequestVolume: sphere(5, 0, 0, 1)},
		},
	}

	tests := []struct {
		name         string
		loadSiblings bool
		want         []string
	}{
		{"without load siblings", false, []string{"a"}},
		{"with load siblings", true, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTileset(t, header)
			opts := domain.DefaultTraversalOptions()
			opts.LoadSiblings = tt.loadSiblings
			e, _ := setupEngineTest(t, ts, opts)

			ok, err := e.Traverse(t.Context(), frameAt(1, 110))

			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, e.Result().RequestedIDs())
		})
	}
}

func TestTraverse_StaleFrameKeepsPreviousResult(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		ContentURI:     "root.b3dm",
		ChildRefs:      []string{"child"},
	})
	setAvailable(t, ts, "root")
	e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	gomock.InOrder(
		m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout")),
		m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, id domain.TileID) (*domain.TileHeader, error) {
				e.AdvanceGeneration(3)
				return &domain.TileHeader{ID: id.String(), GeometricError: 10, BoundingVolume: sphere(0, 0, 0, 5)}, nil
			},
		),
	)

	ok, err := e.Traverse(t.Context(), frameAt(1, 110))
	require.NoError(t, err)
	require.True(t, ok)
	before := e.Result()

	ok, err = e.Traverse(t.Context(), frameAt(2, 110))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Same(t, before, e.Result())
	assert.Equal(t, []uint64{2}, e.CanceledFrames())
	_, attached := ts.Lookup(domain.NewTileID("child"))
	assert.True(t, attached, "header fetched by a stale frame is kept")
}

func TestTraverse_ConcurrentNewerFrame(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ts := newTileset(t, &domain.TileHeader{
			ID:             "root",
			GeometricError: 100,
			BoundingVolume: sphere(0, 0, 0, 10),
			ContentURI:     "root.b3dm",
			ChildRefs:      []string{"child"},
		})
		setAvailable(t, ts, "root")
		e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

		started := make(chan struct{})
		release := make(chan struct{})
		m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, id domain.TileID) (*domain.TileHeader, error) {
				close(started)
				<-release
				return &domain.TileHeader{ID: id.String(), GeometricError: 10, BoundingVolume: sphere(0, 0, 0, 5)}, nil
			},
		).Times(1)

		type outcome struct {
			ok  bool
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			ok, err := e.Traverse(context.Background(), frameAt(1, 110))
			done <- outcome{ok, err}
		}()

		<-started
		ok, err := e.Traverse(t.Context(), frameAt(2, 110))
		require.NoError(t, err)
		require.True(t, ok, "newer frame completes while the older one is suspended")
		assert.Equal(t, []string{"root"}, e.Result().SelectedIDs())

		close(release)
		first := <-done

		require.NoError(t, first.err)
		assert.False(t, first.ok)
		assert.Equal(t, uint64(2), e.Result().Frame)
		assert.Equal(t, []uint64{1}, e.CanceledFrames())
	})
}

func TestTraverse_CanceledHistoryIsBounded(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		ContentURI:     "root.b3dm",
		ChildRefs:      []string{"child"},
	})
	e, m := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	m.fetcher.EXPECT().FetchChildHeader(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ domain.TileID) (*domain.TileHeader, error) {
			e.AdvanceGeneration(0)
			return nil, errors.New("unavailable")
		},
	).Times(domain.MaxCanceledFrames + 1)

	for n := uint64(1); n <= domain.MaxCanceledFrames+1; n++ {
		ok, err := e.Traverse(t.Context(), frameAt(n, 110))
		require.NoError(t, err)
		require.False(t, ok)
	}

	frames := e.CanceledFrames()
	require.Len(t, frames, domain.MaxCanceledFrames)
	assert.Equal(t, uint64(2), frames[0], "oldest entry evicted")
	assert.Equal(t, uint64(domain.MaxCanceledFrames+1), frames[len(frames)-1])
}

func TestTraverse_ContextCanceled(t *testing.T) {
	ts := newTileset(t, replaceTree())
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	ok, err := e.Traverse(ctx, frameAt(1, 110))

	assert.False(t, ok)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSetOptions(t *testing.T) {
	ts := newTileset(t, replaceTree())
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	require.Error(t, e.SetOptions(domain.TraversalOptions{MaximumScreenSpaceError: -1}))
	assert.Equal(t, domain.DefaultTraversalOptions(), e.Options())

	opts := domain.TraversalOptions{LoadSiblings: true, MaximumScreenSpaceError: 16}
	require.NoError(t, e.SetOptions(opts))
	assert.Equal(t, opts, e.Options())
}

func TestMutate(t *testing.T) {
	ts := newTileset(t, replaceTree())
	e, _ := setupEngineTest(t, ts, domain.DefaultTraversalOptions())

	e.Mutate(func(ts *domain.Tileset) {
		ts.Root().Content = domain.ContentLoading
	})

	assert.Equal(t, domain.ContentLoading, ts.Root().Content)
}
