package domain

import "math"

// Vec3 is a point or direction in the tileset's cartesian frame.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Plane is a half-space boundary in Hessian normal form: Normal·p + Distance = 0.
// Points with a positive signed distance are on the inside.
type Plane struct {
	Normal   Vec3    `yaml:"normal" json:"normal"`
	Distance float64 `yaml:"distance" json:"distance"`
}

// SignedDistance returns the signed distance of p to the plane.
func (p Plane) SignedDistance(v Vec3) float64 {
	return p.Normal.Dot(v) + p.Distance
}

// Volume is a bounding region a tile occupies or a viewer must be in.
type Volume interface {
	// Center returns the volume's center.
	Center() Vec3
	// Radius returns the radius of a sphere enclosing the volume.
	Radius() float64
	// DistanceTo returns the distance from p to the volume, 0 when p is inside.
	DistanceTo(p Vec3) float64
	// Contains reports whether p lies inside the volume.
	Contains(p Vec3) bool
	// OutsidePlane reports whether the volume lies fully on the outer side of the plane.
	OutsidePlane(pl Plane) bool
}

// Sphere is a bounding sphere.
type Sphere struct {
	C Vec3
	R float64
}

// NewSphere creates a bounding sphere.
func NewSphere(center Vec3, radius float64) Sphere {
	return Sphere{C: center, R: radius}
}

// Center returns the sphere center.
func (s Sphere) Center() Vec3 { return s.C }

// Radius returns the sphere radius.
func (s Sphere) Radius() float64 { return s.R }

// DistanceTo returns the distance from p to the sphere surface, 0 when inside.
func (s Sphere) DistanceTo(p Vec3) float64 {
	return math.Max(0, p.Sub(s.C).Length()-s.R)
}

// Contains reports whether p is inside the sphere.
func (s Sphere) Contains(p Vec3) bool {
	return p.Sub(s.C).Length() <= s.R
}

// OutsidePlane reports whether the sphere lies fully outside the plane.
func (s Sphere) OutsidePlane(pl Plane) bool {
	return pl.SignedDistance(s.C) < -s.R
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// NewBox creates an axis-aligned box from a center and half extents.
func NewBox(center, halfExtents Vec3) Box {
	return Box{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Center returns the box center.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns half the box diagonal.
func (b Box) Radius() float64 {
	return b.Max.Sub(b.Min).Length() / 2
}

// DistanceTo returns the distance from p to the box, 0 when inside.
func (b Box) DistanceTo(p Vec3) float64 {
	dx := math.Max(0, math.Max(b.Min.X-p.X, p.X-b.Max.X))
	dy := math.Max(0, math.Max(b.Min.Y-p.Y, p.Y-b.Max.Y))
	dz := math.Max(0, math.Max(b.Min.Z-p.Z, p.Z-b.Max.Z))
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Contains reports whether p is inside the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// OutsidePlane reports whether the box lies fully outside the plane.
// It tests the corner furthest along the plane normal.
func (b Box) OutsidePlane(pl Plane) bool {
	v := b.Min
	if pl.Normal.X >= 0 {
		v.X = b.Max.X
	}
	if pl.Normal.Y >= 0 {
		v.Y = b.Max.Y
	}
	if pl.Normal.Z >= 0 {
		v.Z = b.Max.Z
	}
	return pl.SignedDistance(v) < 0
}
