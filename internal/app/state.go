// Package app owns the viewer session: the navigation state machine over
// the (dataset, frame, tracklet) index triple and the four layer
// visibility flags.
package app

import (
	"kitti-viewer/internal/kitti"
	"kitti-viewer/pkg/geometry"
)

// NoTracklet is the tracklet index when the active set is empty.
const NoTracklet = -1

// State is the session's authoritative navigation and visibility state.
// Only the Navigator mutates it; everything else reads a copy.
type State struct {
	DatasetIndex  int
	FrameIndex    int
	TrackletIndex int // NoTracklet when the active set is empty

	ShowRawCloud          bool
	ShowBoundingBoxes     bool
	ShowCroppedTracklets  bool
	ShowCenteredSelection bool
}

// NewState returns the startup state: first dataset, first frame, all
// layers visible.
func NewState() State {
	return State{
		ShowRawCloud:          true,
		ShowBoundingBoxes:     true,
		ShowCroppedTracklets:  true,
		ShowCenteredSelection: true,
	}
}

// Dataset is the open recording the session reads frames from.
type Dataset interface {
	FrameCount() int
	PointCloud(frame int) (geometry.PointCloud, error)
	ImagePath(frame int) string
	Tracklets() []kitti.Tracklet
}

// Provider enumerates the available recordings and opens them by index.
type Provider interface {
	Count() int
	// DriveNumber returns the external drive number shown to the user
	// for a 0-based dataset index.
	DriveNumber(index int) int
	Open(index int) (Dataset, error)
}

// StatusSink receives label and slider updates from the Navigator, so the
// state machine itself stays free of UI types.
type StatusSink interface {
	DatasetStatus(index, total, drive int)
	FrameStatus(index, total int)
	// TrackletStatus reports the selection; index is NoTracklet and the
	// type empty when no tracklet is active.
	TrackletStatus(index, total, points int, objectType string)
	// ImageLoaded reports the camera image path for the current frame.
	ImageLoaded(path string)
}

// NopStatus discards all status updates.
type NopStatus struct{}

func (NopStatus) DatasetStatus(index, total, drive int) {}
func (NopStatus) FrameStatus(index, total int) {}
func (NopStatus) TrackletStatus(index, total, points int, objectType string) {}
func (NopStatus) ImageLoaded(path string) {}
