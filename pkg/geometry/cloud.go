package geometry

import "gonum.org/v1/gonum/spatial/r3"

// CloudPoint is one velodyne return: a position plus the sensor's
// reflectance reading.
type CloudPoint struct {
	Pos       Vec3
	Intensity float64
}

// PointCloud is an ordered sequence of points belonging to one frame or
// one derived subset of a frame.
type PointCloud []CloudPoint

// Translate returns a new cloud with every point shifted by offset.
func (c PointCloud) Translate(offset Vec3) PointCloud {
	out := make(PointCloud, len(c))
	for i, p := range c {
		out[i] = CloudPoint{Pos: r3.Add(p.Pos, offset), Intensity: p.Intensity}
	}
	return out
}

// Apply returns a new cloud with the transform applied to every point.
func (c PointCloud) Apply(t Transform) PointCloud {
	out := make(PointCloud, len(c))
	for i, p := range c {
		out[i] = CloudPoint{Pos: t.Apply(p.Pos), Intensity: p.Intensity}
	}
	return out
}

// CropBox returns the subset of points lying inside the oriented box,
// preserving order.
func (c PointCloud) CropBox(b Box) PointCloud {
	var out PointCloud
	for _, p := range c {
		if b.Contains(p.Pos) {
			out = append(out, p)
		}
	}
	return out
}
