package scene

import (
	"fmt"

	"kitti-viewer/internal/kitti"
	"kitti-viewer/internal/tracklet"
	"kitti-viewer/pkg/colorutil"
	"kitti-viewer/pkg/geometry"
)

// Scene identifiers. Per-tracklet identifiers derive from the tracklet's
// stable position in the recording's annotation file, so an identifier
// never refers to two different objects within one recording.
const (
	idRawCloud = "point_cloud"
	idCentered = "centered_tracklet"
)

func boxID(t kitti.Tracklet) string     { return fmt.Sprintf("tracklet_box_%d", t.ID) }
func croppedID(t kitti.Tracklet) string { return fmt.Sprintf("cropped_tracklet_%d", t.ID) }

// Layers shows and hides the four visual layers against a Renderer.
// Every Show and Hide is idempotent: showing an already-shown layer
// replaces its scene objects, hiding a hidden layer does nothing.
// Layers never touches navigation state and never loads data; it only
// moves already-computed geometry in and out of the scene.
type Layers struct {
	r Renderer

	// Identifiers currently in the scene, per layer. Hide removes
	// exactly these, so a rebuild that shrinks the active set can never
	// leave stale objects behind.
	rawShown      bool
	boxIDs        []string
	croppedIDs    []string
	centeredShown bool

	pointSize int
}

// NewLayers creates a visibility controller over the renderer.
func NewLayers(r Renderer) *Layers {
	return &Layers{r: r, pointSize: 1}
}

// SetPointSize sets the pixel size for rendered cloud points.
func (l *Layers) SetPointSize(size int) {
	if size > 0 {
		l.pointSize = size
	}
}

// ShowRawCloud puts the frame's raw cloud into the scene.
func (l *Layers) ShowRawCloud(cloud geometry.PointCloud) {
	l.r.AddOrReplacePointCloud(idRawCloud, cloud, Style{Color: colorutil.White, PointSize: l.pointSize})
	l.rawShown = true
}

// HideRawCloud removes the raw cloud from the scene.
func (l *Layers) HideRawCloud() {
	if !l.rawShown {
		return
	}
	l.r.Remove(idRawCloud)
	l.rawShown = false
}

// ShowBoxes puts one wireframe box per active tracklet into the scene,
// colored by object type.
func (l *Layers) ShowBoxes(active []kitti.Tracklet, frame int) {
	next := make([]string, 0, len(active))
	for _, t := range active {
		box, err := tracklet.WorldBox(t, frame)
		if err != nil {
			continue
		}
		id := boxID(t)
		l.r.AddOrReplaceBox(id, box, Style{Color: colorutil.ForObjectType(t.ObjectType)})
		next = append(next, id)
	}
	l.removeStale(l.boxIDs, next)
	l.boxIDs = next
}

// HideBoxes removes every shown bounding box.
func (l *Layers) HideBoxes() {
	for _, id := range l.boxIDs {
		l.r.Remove(id)
	}
	l.boxIDs = nil
}

// ShowCroppedClouds puts the per-tracklet cropped clouds into the scene.
// The clouds sequence is index-aligned with the active set.
func (l *Layers) ShowCroppedClouds(active []kitti.Tracklet, clouds []geometry.PointCloud) {
	next := make([]string, 0, len(active))
	for i, t := range active {
		if i >= len(clouds) {
			break
		}
		id := croppedID(t)
		l.r.AddOrReplacePointCloud(id, clouds[i], Style{
			Color:     colorutil.ForObjectType(t.ObjectType),
			PointSize: l.pointSize,
		})
		next = append(next, id)
	}
	l.removeStale(l.croppedIDs, next)
	l.croppedIDs = next
}

// HideCroppedClouds removes every shown cropped cloud.
func (l *Layers) HideCroppedClouds() {
	for _, id := range l.croppedIDs {
		l.r.Remove(id)
	}
	l.croppedIDs = nil
}

// ShowCentered puts the selected tracklet's centered cloud into the scene.
func (l *Layers) ShowCentered(cloud geometry.PointCloud) {
	l.r.AddOrReplacePointCloud(idCentered, cloud, Style{Color: colorutil.Green, PointSize: l.pointSize})
	l.centeredShown = true
}

// HideCentered removes the centered cloud from the scene.
func (l *Layers) HideCentered() {
	if !l.centeredShown {
		return
	}
	l.r.Remove(idCentered)
	l.centeredShown = false
}

// removeStale removes identifiers shown before but absent from next.
// Shows are normally preceded by a Hide during navigation; this keeps a
// bare re-Show from leaking objects anyway.
func (l *Layers) removeStale(prev, next []string) {
	keep := make(map[string]bool, len(next))
	for _, id := range next {
		keep[id] = true
	}
	for _, id := range prev {
		if !keep[id] {
			l.r.Remove(id)
		}
	}
}
