package lod

import (
	"math"

	"go.trai.ch/tilestream/internal/core/domain"
)

var (
	worldUp  = domain.Vec3{Y: 1}
	altWorld = domain.Vec3{Z: 1}
)

// CullingVolume builds the inward-facing planes of a symmetric perspective
// frustum. A far distance of zero leaves the frustum open.
func CullingVolume(camera domain.Camera, fovY, aspect, near, far float64) []domain.Plane {
	dir := camera.Direction.Normalize()
	pos := camera.Position

	up := worldUp
	if math.Abs(dir.Dot(up)) > 1-1e-9 {
		up = altWorld
	}
	right := dir.Cross(up).Normalize()
	up = right.Cross(dir)

	halfV := fovY / 2
	halfH := math.Atan(aspect * math.Tan(halfV))

	side := func(axis domain.Vec3, half float64) domain.Plane {
		n := axis.Scale(math.Cos(half)).Add(dir.Scale(math.Sin(half))).Normalize()
		return domain.Plane{Normal: n, Distance: -n.Dot(pos)}
	}

	planes := []domain.Plane{
		{Normal: dir, Distance: -(dir.Dot(pos) + near)},
		side(right, halfH),
		side(right.Scale(-1), halfH),
		side(up, halfV),
		side(up.Scale(-1), halfV),
	}
	if far > 0 {
		back := dir.Scale(-1)
		planes = append(planes, domain.Plane{Normal: back, Distance: dir.Dot(pos) + far})
	}
	return planes
}
