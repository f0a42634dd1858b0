// Package scene defines the retained-mode renderer contract and the
// visibility controller for the viewer's four visual layers.
package scene

import (
	"image/color"

	"kitti-viewer/pkg/geometry"
)

// Style controls how one named scene object is drawn.
type Style struct {
	Color     color.RGBA
	PointSize int // ignored for boxes
}

// Renderer is a retained-mode 3D scene: named objects are added, replaced
// and removed individually, and redraws are requested explicitly.
// Re-adding under an existing identifier replaces the prior object.
type Renderer interface {
	AddOrReplacePointCloud(id string, cloud geometry.PointCloud, style Style)
	AddOrReplaceBox(id string, box geometry.Box, style Style)
	// Remove is a no-op if no object with the identifier exists.
	Remove(id string)
	SetCamera(eye, lookAt, up geometry.Vec3)
	RequestRedraw()
}
