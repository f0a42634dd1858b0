package app

import (
	"log"

	"kitti-viewer/internal/kitti"
	"kitti-viewer/internal/scene"
	"kitti-viewer/internal/tracklet"
	"kitti-viewer/pkg/geometry"
)

// Navigator validates and sequences every navigation transition. Each
// request clamps its index before any dependent load, so downstream code
// never sees an out-of-range index, and follows the same shape: hide the
// affected layers, clear derived data, mutate the index, reload, rebuild,
// re-show whatever is flagged visible.
//
// All methods run on the UI event thread; requests are serialized by the
// toolkit's event queue and run to completion.
type Navigator struct {
	provider Provider
	renderer scene.Renderer
	layers   *scene.Layers
	status   StatusSink

	state   State
	dataset Dataset

	// Derived data for the current (dataset, frame). The active set and
	// cropped clouds are index-aligned and always rebuilt together.
	cloud   geometry.PointCloud
	active  []kitti.Tracklet
	cropped []geometry.PointCloud
}

// NewNavigator creates a Navigator. Call Init before any request.
func NewNavigator(provider Provider, renderer scene.Renderer, status StatusSink) *Navigator {
	return &Navigator{
		provider: provider,
		renderer: renderer,
		layers:   scene.NewLayers(renderer),
		status:   status,
		state:    NewState(),
	}
}

// Layers exposes the visibility controller for presentation settings.
func (n *Navigator) Layers() *scene.Layers { return n.layers }

// State returns a copy of the current session state.
func (n *Navigator) State() State { return n.state }

// ActiveTracklets returns the tracklets active at the current frame.
func (n *Navigator) ActiveTracklets() []kitti.Tracklet { return n.active }

// FrameCount returns the current recording's frame count, or 0 before Init.
func (n *Navigator) FrameCount() int {
	if n.dataset == nil {
		return 0
	}
	return n.dataset.FrameCount()
}

// DatasetCount returns the number of available recordings.
func (n *Navigator) DatasetCount() int { return n.provider.Count() }

// Init opens the initial recording and builds the first frame's scene.
// Fatal on failure: there is no previous session to fall back to.
func (n *Navigator) Init(datasetIndex int) error {
	idx := clamp(datasetIndex, 0, n.provider.Count()-1)
	ds, err := n.provider.Open(idx)
	if err != nil {
		return err
	}
	n.state.DatasetIndex = idx
	n.state.FrameIndex = 0
	n.dataset = ds
	n.reloadFrame()
	n.refreshDatasetStatus()
	n.refreshFrameStatus()
	n.refreshTrackletStatus()
	n.renderer.RequestRedraw()
	return nil
}

// RequestDataset switches to another recording. The new recording is
// opened before the current one is torn down; if the open fails the
// request is refused and the current session stays intact.
func (n *Navigator) RequestDataset(index int) {
	if index == n.state.DatasetIndex {
		return
	}
	clamped := clamp(index, 0, n.provider.Count()-1)
	ds, err := n.provider.Open(clamped)
	if err != nil {
		log.Printf("dataset change refused, keeping current recording: %v", err)
		return
	}

	n.hideDownstream()
	n.state.DatasetIndex = clamped
	n.dataset = ds
	if n.state.FrameIndex >= ds.FrameCount() {
		n.state.FrameIndex = ds.FrameCount() - 1
	}
	n.reloadFrame()
	n.refreshDatasetStatus()
	n.refreshFrameStatus()
	n.refreshTrackletStatus()
	n.renderer.RequestRedraw()
}

// RequestFrame moves to another frame of the current recording.
func (n *Navigator) RequestFrame(index int) {
	if index == n.state.FrameIndex {
		return
	}
	n.hideDownstream()
	n.state.FrameIndex = clamp(index, 0, n.dataset.FrameCount()-1)
	n.reloadFrame()
	n.refreshFrameStatus()
	n.refreshTrackletStatus()
	n.renderer.RequestRedraw()
}

// NextFrame and PreviousFrame implement keyboard navigation. They go
// through the same clamp-and-rebuild protocol as a slider change.
func (n *Navigator) NextFrame() { n.RequestFrame(n.state.FrameIndex + 1) }
func (n *Navigator) PreviousFrame() { n.RequestFrame(n.state.FrameIndex - 1) }

// RequestTracklet selects another tracklet of the active set. Selection
// only affects the centered layer, so nothing else is reloaded.
func (n *Navigator) RequestTracklet(index int) {
	if index == n.state.TrackletIndex {
		return
	}
	if n.state.ShowCenteredSelection {
		n.layers.HideCentered()
	}
	n.state.TrackletIndex = clampTracklet(index, len(n.active))
	if n.state.ShowCenteredSelection {
		n.showCentered()
	}
	n.refreshTrackletStatus()
	n.renderer.RequestRedraw()
}

// SetRawCloudVisible toggles the raw cloud layer. Toggles never touch the
// navigation indices and never reload data.
func (n *Navigator) SetRawCloudVisible(visible bool) {
	n.state.ShowRawCloud = visible
	if visible {
		n.layers.ShowRawCloud(n.cloud)
	} else {
		n.layers.HideRawCloud()
	}
	n.renderer.RequestRedraw()
}

// SetBoundingBoxesVisible toggles the bounding-box layer.
func (n *Navigator) SetBoundingBoxesVisible(visible bool) {
	n.state.ShowBoundingBoxes = visible
	if visible {
		n.layers.ShowBoxes(n.active, n.state.FrameIndex)
	} else {
		n.layers.HideBoxes()
	}
	n.renderer.RequestRedraw()
}

// SetCroppedTrackletsVisible toggles the cropped-cloud layer.
func (n *Navigator) SetCroppedTrackletsVisible(visible bool) {
	n.state.ShowCroppedTracklets = visible
	if visible {
		n.layers.ShowCroppedClouds(n.active, n.cropped)
	} else {
		n.layers.HideCroppedClouds()
	}
	n.renderer.RequestRedraw()
}

// SetCenteredSelectionVisible toggles the centered-selection layer.
func (n *Navigator) SetCenteredSelectionVisible(visible bool) {
	n.state.ShowCenteredSelection = visible
	if visible {
		n.showCentered()
	} else {
		n.layers.HideCentered()
	}
	n.renderer.RequestRedraw()
}

// hideDownstream removes every layer from the scene and clears the
// derived sequences, in dependency order. Layers whose flag is off are
// already hidden and left alone; their flags survive the transition.
func (n *Navigator) hideDownstream() {
	if n.state.ShowCenteredSelection {
		n.layers.HideCentered()
	}
	if n.state.ShowCroppedTracklets {
		n.layers.HideCroppedClouds()
	}
	n.cropped = nil
	if n.state.ShowBoundingBoxes {
		n.layers.HideBoxes()
	}
	n.active = nil
	if n.state.ShowRawCloud {
		n.layers.HideRawCloud()
	}
}

// reloadFrame loads the current frame's cloud, rebuilds the active set
// and cropped clouds, clamps the tracklet selection, and re-shows every
// flagged layer.
func (n *Navigator) reloadFrame() {
	cloud, err := n.dataset.PointCloud(n.state.FrameIndex)
	if err != nil {
		log.Printf("frame load failed: %v", err)
		cloud = nil
	}
	n.cloud = cloud
	if n.state.ShowRawCloud {
		n.layers.ShowRawCloud(n.cloud)
	}
	n.status.ImageLoaded(n.dataset.ImagePath(n.state.FrameIndex))

	n.active = tracklet.ActiveAt(n.dataset.Tracklets(), n.state.FrameIndex)
	if n.state.ShowBoundingBoxes {
		n.layers.ShowBoxes(n.active, n.state.FrameIndex)
	}
	n.cropped = tracklet.CropClouds(n.cloud, n.active, n.state.FrameIndex)
	if n.state.ShowCroppedTracklets {
		n.layers.ShowCroppedClouds(n.active, n.cropped)
	}

	n.state.TrackletIndex = clampTracklet(n.state.TrackletIndex, len(n.active))
	if n.state.ShowCenteredSelection {
		n.showCentered()
	}
}

// showCentered rebuilds and shows the centered cloud for the selected
// tracklet. No-op when nothing is selected.
func (n *Navigator) showCentered() {
	if n.state.TrackletIndex == NoTracklet {
		return
	}
	t := n.active[n.state.TrackletIndex]
	cloud, err := tracklet.CenteredCloud(n.cloud, t, n.state.FrameIndex)
	if err != nil {
		log.Printf("centered cloud: %v", err)
		return
	}
	n.layers.ShowCentered(cloud)
}

func (n *Navigator) refreshDatasetStatus() {
	n.status.DatasetStatus(n.state.DatasetIndex, n.provider.Count(),
		n.provider.DriveNumber(n.state.DatasetIndex))
}

func (n *Navigator) refreshFrameStatus() {
	n.status.FrameStatus(n.state.FrameIndex, n.dataset.FrameCount())
}

func (n *Navigator) refreshTrackletStatus() {
	if n.state.TrackletIndex == NoTracklet {
		n.status.TrackletStatus(NoTracklet, 0, 0, "")
		return
	}
	points := 0
	if n.state.TrackletIndex < len(n.cropped) {
		points = len(n.cropped[n.state.TrackletIndex])
	}
	n.status.TrackletStatus(n.state.TrackletIndex, len(n.active), points,
		n.active[n.state.TrackletIndex].ObjectType)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// clampTracklet clamps a requested tracklet index against the active set
// size, collapsing to NoTracklet when the set is empty.
func clampTracklet(v, count int) int {
	if count == 0 {
		return NoTracklet
	}
	return clamp(v, 0, count-1)
}
