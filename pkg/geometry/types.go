// Package geometry provides the 3D types and transforms used throughout the viewer.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a 3D vector in the velodyne coordinate frame (x forward, y left, z up).
type Vec3 = r3.Vec

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// RotateZ rotates a vector by angle radians about the vertical axis.
func RotateZ(v Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
		Z: v.Z,
	}
}

// Box is an oriented bounding box: extents rotated by Yaw about the
// vertical axis through Center.
type Box struct {
	Center Vec3    `json:"center"`
	Yaw    float64 `json:"yaw"`
	Length float64 `json:"length"` // extent along the object's forward axis
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains returns true if the point lies inside the box.
func (b Box) Contains(p Vec3) bool {
	// Express p in the box's local frame: translate to the center, then
	// undo the yaw.
	local := RotateZ(r3.Sub(p, b.Center), -b.Yaw)
	return math.Abs(local.X) <= b.Length/2 &&
		math.Abs(local.Y) <= b.Width/2 &&
		math.Abs(local.Z) <= b.Height/2
}

// Corners returns the eight corners of the box in world coordinates,
// bottom face first, counter-clockwise seen from above.
func (b Box) Corners() [8]Vec3 {
	l, w, h := b.Length/2, b.Width/2, b.Height/2
	local := [8]Vec3{
		{X: -l, Y: -w, Z: -h},
		{X: l, Y: -w, Z: -h},
		{X: l, Y: w, Z: -h},
		{X: -l, Y: w, Z: -h},
		{X: -l, Y: -w, Z: h},
		{X: l, Y: -w, Z: h},
		{X: l, Y: w, Z: h},
		{X: -l, Y: w, Z: h},
	}
	var out [8]Vec3
	for i, c := range local {
		out[i] = r3.Add(RotateZ(c, b.Yaw), b.Center)
	}
	return out
}

// Transform is a rigid transform that translates first and rotates about
// the vertical axis second. The order matters: the rotation pivots around
// the translated origin, not the world origin.
type Transform struct {
	Translation Vec3
	YawRotation float64
}

// Apply transforms a single point.
func (t Transform) Apply(p Vec3) Vec3 {
	return RotateZ(r3.Add(p, t.Translation), t.YawRotation)
}

// IsIdentity reports whether the transform leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t.Translation == (Vec3{}) && t.YawRotation == 0
}
