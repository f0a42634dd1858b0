// Package tracklet derives per-frame tracklet data: the active set, the
// cropped per-object clouds and the centered view of one selected object.
package tracklet

import (
	"kitti-viewer/internal/kitti"
	"kitti-viewer/pkg/geometry"
)

// displayOffsetZ lifts cropped tracklet clouds above the main cloud so
// they are visible as a separate band. Cosmetic only; it never enters
// the centering math.
const displayOffsetZ = 6.0

// WorldBox returns the tracklet's oriented bounding box in world
// coordinates at the given frame: box center at the pose translation
// raised by half the object height, yaw from the pose.
func WorldBox(t kitti.Tracklet, frame int) (geometry.Box, error) {
	pose, err := t.PoseAt(frame)
	if err != nil {
		return geometry.Box{}, err
	}
	return geometry.Box{
		Center: geometry.NewVec3(pose.TX, pose.TY, pose.TZ+t.H/2),
		Yaw:    pose.RZ,
		Length: t.L,
		Width:  t.W,
		Height: t.H,
	}, nil
}

// CenteringTransform returns the transform that moves the tracklet's box
// center to the world origin and cancels its heading. Translation runs
// first so the rotation pivots around the object, not the world origin.
func CenteringTransform(t kitti.Tracklet, frame int) (geometry.Transform, error) {
	pose, err := t.PoseAt(frame)
	if err != nil {
		return geometry.Transform{}, err
	}
	return geometry.Transform{
		Translation: geometry.NewVec3(-pose.TX, -pose.TY, -(pose.TZ + t.H/2)),
		YawRotation: -pose.RZ,
	}, nil
}

// DisplayOffset returns the fixed vertical offset applied to cropped
// tracklet clouds for visual separation.
func DisplayOffset() geometry.Vec3 {
	return geometry.NewVec3(0, 0, displayOffsetZ)
}
