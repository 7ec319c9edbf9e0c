// Package lod evaluates per-frame visibility and screen-space error of tiles.
package lod

import (
	"math"

	"go.trai.ch/tilestream/internal/core/domain"
)

// minDistance clamps the camera distance so a camera inside a volume yields a finite error.
const minDistance = 1e-7

// UpdateVisibility computes the tile's per-frame visibility fields and stamps VisitedFrame.
func UpdateVisibility(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState) {
	cam := frame.Camera.Position
	vol := tile.BoundingVolume

	tile.DistanceToCamera = vol.DistanceTo(cam)
	tile.CenterZDepth = vol.Center().Sub(cam).Dot(frame.Camera.Direction.Normalize())
	tile.Visible = InFrustum(vol, frame.CullingVolume)
	tile.InRequestVolume = tile.RequestVolume == nil || tile.RequestVolume.Contains(cam)
	tile.ScreenSpaceError = ScreenSpaceError(ts, tile, frame, false)
	tile.VisitedFrame = frame.Number
}

// UpdateExpiration marks available content whose TTL lapsed at frame time as expired.
func UpdateExpiration(tile *domain.Tile, frame *domain.FrameState) {
	if tile.Content != domain.ContentAvailable || tile.ExpireAt.IsZero() {
		return
	}
	if !frame.Time.Before(tile.ExpireAt) {
		tile.Content = domain.ContentExpired
	}
}

// InFrustum reports whether the volume is not fully outside any culling plane.
// An empty culling volume accepts everything.
func InFrustum(vol domain.Volume, planes []domain.Plane) bool {
	for _, pl := range planes {
		if vol.OutsidePlane(pl) {
			return false
		}
	}
	return true
}

// ScreenSpaceError projects a geometric error to pixels at the tile's distance.
// With useParentGeometricError the parent's error is used, and the tileset-level
// error for the root. It relies on DistanceToCamera being current for the frame.
func ScreenSpaceError(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, useParentGeometricError bool) float64 {
	geometricError := tile.GeometricError
	if useParentGeometricError {
		if parent := ts.Parent(tile); parent != nil {
			geometricError = parent.GeometricError
		} else {
			geometricError = ts.GeometricError()
		}
	}
	if geometricError == 0 {
		return 0
	}

	distance := math.Max(tile.DistanceToCamera, minDistance)
	return geometricError * frame.ScreenHeight / (distance * sseDenominator(frame))
}

// ProjectedSize returns the on-screen diameter in pixels of the sphere enclosing the
// tile's bounding volume.
func ProjectedSize(tile *domain.Tile, frame *domain.FrameState) float64 {
	vol := tile.BoundingVolume
	distance := math.Max(vol.Center().Sub(frame.Camera.Position).Length(), minDistance)
	return 2 * vol.Radius() * frame.ScreenHeight / (distance * sseDenominator(frame))
}

func sseDenominator(frame *domain.FrameState) float64 {
	return 2 * math.Tan(frame.FieldOfViewY/2)
}
