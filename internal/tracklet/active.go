package tracklet

import (
	"kitti-viewer/internal/kitti"
	"kitti-viewer/pkg/geometry"
)

// ActiveAt returns the tracklets whose frame range contains the given
// frame, preserving annotation-file order. A full scan on every frame
// change is fine: recordings carry tens to low hundreds of tracklets.
func ActiveAt(all []kitti.Tracklet, frame int) []kitti.Tracklet {
	var active []kitti.Tracklet
	for _, t := range all {
		if t.ContainsFrame(frame) {
			active = append(active, t)
		}
	}
	return active
}

// CropClouds crops the frame cloud to each active tracklet's world box
// and lifts the result by the display offset. The output is index-aligned
// with the active set: position i in both refers to the same tracklet.
func CropClouds(frameCloud geometry.PointCloud, active []kitti.Tracklet, frame int) []geometry.PointCloud {
	clouds := make([]geometry.PointCloud, 0, len(active))
	offset := DisplayOffset()
	for _, t := range active {
		box, err := WorldBox(t, frame)
		if err != nil {
			// Active set construction guarantees range membership;
			// an empty cloud keeps the alignment if that ever breaks.
			clouds = append(clouds, nil)
			continue
		}
		clouds = append(clouds, frameCloud.CropBox(box).Translate(offset))
	}
	return clouds
}

// CenteredCloud crops the frame cloud to the tracklet's box and expresses
// it in object-local coordinates: the box center moves to the origin and
// the recorded heading is removed. No display offset is applied.
func CenteredCloud(frameCloud geometry.PointCloud, t kitti.Tracklet, frame int) (geometry.PointCloud, error) {
	box, err := WorldBox(t, frame)
	if err != nil {
		return nil, err
	}
	centering, err := CenteringTransform(t, frame)
	if err != nil {
		return nil, err
	}
	return frameCloud.CropBox(box).Apply(centering), nil
}
