package fetch

import (
	"context"
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/segmentio/encoding/json"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

// TilesetFile is the name of the root document of a 3D Tiles dataset.
const TilesetFile = "tileset.json"

// RootID is the id given to the root tile of a 3D Tiles dataset.
const RootID = "root"

type tilesetDoc struct {
	Asset struct {
		Version string `json:"version"`
	} `json:"asset"`
	GeometricError float64  `json:"geometricError"`
	Root           *tileDoc `json:"root"`
}

type tileDoc struct {
	BoundingVolume      *volumeDoc  `json:"boundingVolume"`
	ViewerRequestVolume *volumeDoc  `json:"viewerRequestVolume"`
	GeometricError      float64     `json:"geometricError"`
	Refine              string      `json:"refine"`
	Content             *contentDoc `json:"content"`
	Expire              *expireDoc  `json:"expire"`
	Children            []*tileDoc  `json:"children"`
}

type volumeDoc struct {
	Box    []float64 `json:"box"`
	Sphere []float64 `json:"sphere"`
	Region []float64 `json:"region"`
}

type contentDoc struct {
	URI string `json:"uri"`
	URL string `json:"url"` // pre-1.0 name of uri
}

type expireDoc struct {
	Date     string  `json:"date"`
	Duration float64 `json:"duration"` // seconds from fetch time
}

// Tiles3DFetcher reads headers from 3D Tiles tileset.json documents. The root
// document is materialized whole; each external tileset becomes one child
// reference whose id is its path below the dataset.
type Tiles3DFetcher struct {
	reader  ports.ResourceReader
	timeout time.Duration
	clock   clockwork.Clock
}

// NewTiles3DFetcher creates a fetcher reading through reader. A zero timeout
// disables it. The clock resolves relative expiry durations.
func NewTiles3DFetcher(reader ports.ResourceReader, timeout time.Duration, clock clockwork.Clock) *Tiles3DFetcher {
	return &Tiles3DFetcher{reader: reader, timeout: timeout, clock: clock}
}

// FetchRoot returns the root tile of basePath/tileset.json with all inline descendants.
func (f *Tiles3DFetcher) FetchRoot(ctx context.Context, basePath string) (*domain.TileHeader, error) {
	return f.fetchTileset(ctx, basePath, TilesetFile, RootID)
}

// FetchChildHeader returns the root tile of the external tileset childID names.
func (f *Tiles3DFetcher) FetchChildHeader(ctx context.Context, basePath string, childID domain.TileID) (*domain.TileHeader, error) {
	return f.fetchTileset(ctx, basePath, childID.String(), childID.String())
}

func (f *Tiles3DFetcher) fetchTileset(ctx context.Context, basePath, rel, id string) (*domain.TileHeader, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	data, err := f.reader.Read(ctx, basePath, rel)
	if err != nil {
		return nil, err
	}

	var doc tilesetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHeaderDecodeFailed.Error()), "path", rel)
	}
	if doc.Root == nil {
		return nil, zerr.With(domain.ErrMissingRootHeader, "path", rel)
	}

	return f.convert(doc.Root, id, path.Dir(rel))
}

func (f *Tiles3DFetcher) convert(doc *tileDoc, id, dir string) (*domain.TileHeader, error) {
	bv, err := volumeFromDoc(doc.BoundingVolume)
	if err != nil {
		return nil, zerr.With(err, "tile", id)
	}

	h := &domain.TileHeader{
		ID:             id,
		GeometricError: doc.GeometricError,
		BoundingVolume: bv,
		Refine:         domain.ParseRefinement(doc.Refine),
	}

	if doc.ViewerRequestVolume != nil {
		rv, err := volumeFromDoc(doc.ViewerRequestVolume)
		if err != nil {
			return nil, zerr.With(err, "tile", id)
		}
		h.RequestVolume = rv
	}

	if doc.Expire != nil {
		h.ExpireAt = f.expiry(doc.Expire)
	}

	if doc.Content != nil {
		uri := doc.Content.URI
		if uri == "" {
			uri = doc.Content.URL
		}
		if uri != "" {
			resolved := path.Join(dir, uri)
			if strings.HasSuffix(strings.ToLower(uri), ".json") {
				h.HasTilesetContent = true
				h.ChildRefs = append(h.ChildRefs, resolved)
			} else {
				h.ContentURI = resolved
			}
		}
	}

	for i, child := range doc.Children {
		ch, err := f.convert(child, id+"/"+strconv.Itoa(i), dir)
		if err != nil {
			return nil, err
		}
		h.Children = append(h.Children, ch)
	}
	return h, nil
}

func (f *Tiles3DFetcher) expiry(doc *expireDoc) time.Time {
	if doc.Date != "" {
		if t, err := time.Parse(time.RFC3339, doc.Date); err == nil {
			return t
		}
	}
	if doc.Duration > 0 {
		return f.clock.Now().Add(time.Duration(doc.Duration * float64(time.Second)))
	}
	return time.Time{}
}

// volumeFromDoc converts a sphere, or an oriented box to its axis-aligned bounds.
// Geographic regions are not supported.
func volumeFromDoc(doc *volumeDoc) (domain.Volume, error) {
	switch {
	case doc == nil:
		return nil, domain.ErrInvalidBoundingVolume
	case len(doc.Sphere) == 4:
		return domain.NewSphere(domain.Vec3{X: doc.Sphere[0], Y: doc.Sphere[1], Z: doc.Sphere[2]}, doc.Sphere[3]), nil
	case len(doc.Box) == 12:
		b := doc.Box
		center := domain.Vec3{X: b[0], Y: b[1], Z: b[2]}
		half := domain.Vec3{
			X: math.Abs(b[3]) + math.Abs(b[6]) + math.Abs(b[9]),
			Y: math.Abs(b[4]) + math.Abs(b[7]) + math.Abs(b[10]),
			Z: math.Abs(b[5]) + math.Abs(b[8]) + math.Abs(b[11]),
		}
		return domain.NewBox(center, half), nil
	case len(doc.Region) == 6:
		return nil, zerr.With(domain.ErrInvalidBoundingVolume, "kind", "region")
	default:
		return nil, domain.ErrInvalidBoundingVolume
	}
}
