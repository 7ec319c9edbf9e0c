package fetch

import (
	"context"
	"math"
	"path"
	"time"

	"github.com/segmentio/encoding/json"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

// I3SRootID is the id of the root node of an I3S layer.
const I3SRootID = "root"

const (
	metricMaxScreenThreshold   = "maxScreenThreshold"
	metricMaxScreenThresholdSQ = "maxScreenThresholdSQ"
)

type nodeDoc struct {
	ID           string       `json:"id"`
	Mbs          []float64    `json:"mbs"`
	Obb          *obbDoc      `json:"obb"`
	LodSelection []lodDoc     `json:"lodSelection"`
	Children     []nodeRefDoc `json:"children"`
	GeometryData []hrefDoc    `json:"geometryData"`
	Expire       *expireDoc   `json:"expire"`
}

type obbDoc struct {
	Center   []float64 `json:"center"`
	HalfSize []float64 `json:"halfSize"`
}

type lodDoc struct {
	MetricType string  `json:"metricType"`
	MaxError   float64 `json:"maxError"`
}

type nodeRefDoc struct {
	ID string `json:"id"`
}

type hrefDoc struct {
	Href string `json:"href"`
}

// I3SFetcher reads node documents at nodes/<id> below the layer. Every child
// is a reference fetched on its own.
type I3SFetcher struct {
	reader  ports.ResourceReader
	timeout time.Duration
}

// NewI3SFetcher creates a fetcher reading through reader. A zero timeout disables it.
func NewI3SFetcher(reader ports.ResourceReader, timeout time.Duration) *I3SFetcher {
	return &I3SFetcher{reader: reader, timeout: timeout}
}

// FetchRoot returns the header of nodes/root.
func (f *I3SFetcher) FetchRoot(ctx context.Context, basePath string) (*domain.TileHeader, error) {
	return f.fetchNode(ctx, basePath, I3SRootID)
}

// FetchChildHeader returns the header of nodes/<childID>.
func (f *I3SFetcher) FetchChildHeader(ctx context.Context, basePath string, childID domain.TileID) (*domain.TileHeader, error) {
	return f.fetchNode(ctx, basePath, childID.String())
}

func (f *I3SFetcher) fetchNode(ctx context.Context, basePath, id string) (*domain.TileHeader, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	rel := path.Join("nodes", id)
	data, err := f.reader.Read(ctx, basePath, rel)
	if err != nil {
		return nil, err
	}

	var doc nodeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHeaderDecodeFailed.Error()), "path", rel)
	}
	if doc.ID == "" {
		doc.ID = id
	}

	bv, err := nodeVolume(&doc)
	if err != nil {
		return nil, zerr.With(err, "tile", doc.ID)
	}

	h := &domain.TileHeader{
		ID:             doc.ID,
		BoundingVolume: bv,
		Refine:         domain.RefineReplace,
		LODThreshold:   lodThreshold(doc.LodSelection),
	}
	if len(doc.GeometryData) > 0 && doc.GeometryData[0].Href != "" {
		h.ContentURI = path.Join(rel, doc.GeometryData[0].Href)
	}
	if doc.Expire != nil && doc.Expire.Date != "" {
		if t, err := time.Parse(time.RFC3339, doc.Expire.Date); err == nil {
			h.ExpireAt = t
		}
	}
	for _, child := range doc.Children {
		h.ChildRefs = append(h.ChildRefs, child.ID)
	}
	return h, nil
}

// nodeVolume prefers the minimum bounding sphere and falls back to the sphere
// enclosing the oriented box.
func nodeVolume(doc *nodeDoc) (domain.Volume, error) {
	if len(doc.Mbs) == 4 {
		return domain.NewSphere(domain.Vec3{X: doc.Mbs[0], Y: doc.Mbs[1], Z: doc.Mbs[2]}, doc.Mbs[3]), nil
	}
	if doc.Obb != nil && len(doc.Obb.Center) == 3 && len(doc.Obb.HalfSize) == 3 {
		c, hs := doc.Obb.Center, doc.Obb.HalfSize
		half := domain.Vec3{X: hs[0], Y: hs[1], Z: hs[2]}
		return domain.NewSphere(domain.Vec3{X: c[0], Y: c[1], Z: c[2]}, half.Length()), nil
	}
	return nil, domain.ErrInvalidBoundingVolume
}

// lodThreshold returns the projected diameter, in pixels, beyond which the node refines.
func lodThreshold(selection []lodDoc) float64 {
	for _, s := range selection {
		switch s.MetricType {
		case metricMaxScreenThreshold:
			return s.MaxError
		case metricMaxScreenThresholdSQ:
			// The squared variant stores the projected area of the bounding circle.
			return 2 * math.Sqrt(s.MaxError/math.Pi)
		}
	}
	return 0
}
