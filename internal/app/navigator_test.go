package app

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitti-viewer/internal/kitti"
	"kitti-viewer/internal/scene"
	"kitti-viewer/pkg/geometry"
)

type fakeDataset struct {
	frames    int
	tracklets []kitti.Tracklet
	cloud     geometry.PointCloud
	loads     int
}

func (d *fakeDataset) FrameCount() int { return d.frames }

func (d *fakeDataset) PointCloud(frame int) (geometry.PointCloud, error) {
	if frame < 0 || frame >= d.frames {
		return nil, &kitti.FrameReadError{Frame: frame, Err: fmt.Errorf("out of range")}
	}
	d.loads++
	return d.cloud, nil
}

func (d *fakeDataset) ImagePath(frame int) string {
	return fmt.Sprintf("image_%010d.png", frame)
}

func (d *fakeDataset) Tracklets() []kitti.Tracklet { return d.tracklets }

type fakeProvider struct {
	datasets []*fakeDataset
	failures map[int]bool
	opens    int
}

func (p *fakeProvider) Count() int { return len(p.datasets) }

func (p *fakeProvider) DriveNumber(index int) int { return index + 1 }

func (p *fakeProvider) Open(index int) (Dataset, error) {
	if p.failures[index] {
		return nil, &kitti.DatasetOpenError{Dir: fmt.Sprintf("drive_%d", index), Err: fmt.Errorf("missing")}
	}
	p.opens++
	return p.datasets[index], nil
}

type fakeRenderer struct {
	objects map[string]struct{}
	redraws int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{objects: make(map[string]struct{})}
}

func (r *fakeRenderer) AddOrReplacePointCloud(id string, cloud geometry.PointCloud, style scene.Style) {
	r.objects[id] = struct{}{}
}

func (r *fakeRenderer) AddOrReplaceBox(id string, box geometry.Box, style scene.Style) {
	r.objects[id] = struct{}{}
}

func (r *fakeRenderer) Remove(id string) { delete(r.objects, id) }
func (r *fakeRenderer) SetCamera(eye, lookAt, up geometry.Vec3) {}
func (r *fakeRenderer) RequestRedraw() { r.redraws++ }

func (r *fakeRenderer) ids() []string {
	out := make([]string, 0, len(r.objects))
	for id := range r.objects {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type statusRecorder struct {
	NopStatus
	trackletIndex int
	trackletTotal int
	imagePaths    []string
}

func (s *statusRecorder) TrackletStatus(index, total, points int, objectType string) {
	s.trackletIndex = index
	s.trackletTotal = total
}

func (s *statusRecorder) ImageLoaded(path string) {
	s.imagePaths = append(s.imagePaths, path)
}

// trackletAt builds a tracklet sitting at (x, y) for frames [first, last].
func trackletAt(id, first, last int, x, y float64) kitti.Tracklet {
	poses := make([]kitti.Pose, last-first+1)
	for i := range poses {
		poses[i] = kitti.Pose{TX: x, TY: y}
	}
	return kitti.Tracklet{
		ID: id, ObjectType: "Car", H: 2, W: 2, L: 2,
		FirstFrame: first, Poses: poses,
	}
}

func testCloud() geometry.PointCloud {
	return geometry.PointCloud{
		{Pos: geometry.NewVec3(0, 0, 1), Intensity: 0.5},
		{Pos: geometry.NewVec3(10, 0, 1), Intensity: 0.5},
		{Pos: geometry.NewVec3(-40, 12, 0), Intensity: 0.5},
	}
}

// newTestNavigator builds a navigator over two recordings: the first with
// 20 frames and two tracklets, the second with 5 frames and none.
func newTestNavigator(t *testing.T) (*Navigator, *fakeProvider, *fakeRenderer, *statusRecorder) {
	t.Helper()
	provider := &fakeProvider{
		datasets: []*fakeDataset{
			{
				frames: 20,
				cloud:  testCloud(),
				tracklets: []kitti.Tracklet{
					trackletAt(0, 0, 19, 0, 0),
					trackletAt(1, 0, 19, 10, 0),
				},
			},
			{frames: 5, cloud: testCloud()},
		},
		failures: make(map[int]bool),
	}
	renderer := newFakeRenderer()
	status := &statusRecorder{}
	nav := NewNavigator(provider, renderer, status)
	require.NoError(t, nav.Init(0))
	return nav, provider, renderer, status
}

func TestInitShowsAllLayers(t *testing.T) {
	nav, _, renderer, status := newTestNavigator(t)

	assert.Equal(t, []string{
		"centered_tracklet",
		"cropped_tracklet_0",
		"cropped_tracklet_1",
		"point_cloud",
		"tracklet_box_0",
		"tracklet_box_1",
	}, renderer.ids())

	st := nav.State()
	assert.Equal(t, 0, st.DatasetIndex)
	assert.Equal(t, 0, st.FrameIndex)
	assert.Equal(t, 0, st.TrackletIndex)
	assert.Equal(t, 0, status.trackletIndex)
	assert.Equal(t, 2, status.trackletTotal)
	require.NotEmpty(t, status.imagePaths)
	assert.Equal(t, "image_0000000000.png", status.imagePaths[0])
}

func TestRequestFrameNoOp(t *testing.T) {
	nav, provider, renderer, _ := newTestNavigator(t)
	loadsBefore := provider.datasets[0].loads
	idsBefore := renderer.ids()
	redrawsBefore := renderer.redraws

	nav.RequestFrame(0)

	assert.Equal(t, loadsBefore, provider.datasets[0].loads, "no-op must not reload")
	assert.Equal(t, idsBefore, renderer.ids())
	assert.Equal(t, redrawsBefore, renderer.redraws)
}

func TestRequestDatasetNoOp(t *testing.T) {
	nav, provider, _, _ := newTestNavigator(t)
	opensBefore := provider.opens

	nav.RequestDataset(0)

	assert.Equal(t, opensBefore, provider.opens)
}

func TestRequestFrameClamps(t *testing.T) {
	nav, _, _, _ := newTestNavigator(t)

	nav.RequestFrame(100)
	assert.Equal(t, 19, nav.State().FrameIndex)

	nav.RequestFrame(-7)
	assert.Equal(t, 0, nav.State().FrameIndex)
}

func TestRequestDatasetClamps(t *testing.T) {
	nav, _, _, _ := newTestNavigator(t)

	nav.RequestDataset(99)
	assert.Equal(t, 1, nav.State().DatasetIndex)

	nav.RequestDataset(-3)
	assert.Equal(t, 0, nav.State().DatasetIndex)
}

func TestDatasetChangeClampsFrame(t *testing.T) {
	nav, _, _, _ := newTestNavigator(t)

	nav.RequestFrame(8)
	require.Equal(t, 8, nav.State().FrameIndex)

	// The second recording has only 5 frames.
	nav.RequestDataset(1)
	assert.Equal(t, 4, nav.State().FrameIndex)
}

func TestActiveSetScenario(t *testing.T) {
	// Tracklet active in frames [5, 9] only.
	provider := &fakeProvider{
		datasets: []*fakeDataset{{
			frames:    20,
			cloud:     testCloud(),
			tracklets: []kitti.Tracklet{trackletAt(0, 5, 9, 0, 0)},
		}},
		failures: make(map[int]bool),
	}
	renderer := newFakeRenderer()
	status := &statusRecorder{}
	nav := NewNavigator(provider, renderer, status)
	require.NoError(t, nav.Init(0))

	nav.RequestFrame(4)
	assert.Equal(t, NoTracklet, nav.State().TrackletIndex)
	assert.Equal(t, 0, status.trackletTotal)
	assert.Empty(t, nav.ActiveTracklets())

	nav.RequestFrame(5)
	assert.Equal(t, 0, nav.State().TrackletIndex, "selection returns when the set refills")
	assert.Equal(t, 1, status.trackletTotal)

	nav.RequestFrame(10)
	assert.Equal(t, NoTracklet, nav.State().TrackletIndex)
	assert.Empty(t, nav.ActiveTracklets())
	// Nothing tracklet-derived may remain in the scene.
	assert.Equal(t, []string{"point_cloud"}, renderer.ids())
}

func TestVisibilityPreservedAcrossFrameChanges(t *testing.T) {
	nav, _, renderer, _ := newTestNavigator(t)

	nav.SetCroppedTrackletsVisible(false)
	nav.SetCenteredSelectionVisible(false)

	for _, frame := range []int{3, 7, 12} {
		nav.RequestFrame(frame)
	}

	st := nav.State()
	assert.True(t, st.ShowRawCloud)
	assert.True(t, st.ShowBoundingBoxes)
	assert.False(t, st.ShowCroppedTracklets)
	assert.False(t, st.ShowCenteredSelection)
	assert.Equal(t, []string{
		"point_cloud",
		"tracklet_box_0",
		"tracklet_box_1",
	}, renderer.ids())
}

func TestRequestTrackletClamps(t *testing.T) {
	nav, _, _, status := newTestNavigator(t)

	// Two active tracklets: requesting index 2 clamps to 1.
	nav.RequestTracklet(2)
	assert.Equal(t, 1, nav.State().TrackletIndex)
	assert.Equal(t, 1, status.trackletIndex)

	nav.RequestTracklet(-4)
	assert.Equal(t, 0, nav.State().TrackletIndex)
}

func TestRequestTrackletLeavesOtherLayers(t *testing.T) {
	nav, provider, renderer, _ := newTestNavigator(t)
	loadsBefore := provider.datasets[0].loads
	idsBefore := renderer.ids()

	nav.RequestTracklet(1)

	assert.Equal(t, loadsBefore, provider.datasets[0].loads, "selection change must not reload")
	assert.Equal(t, idsBefore, renderer.ids())
}

func TestOpenFailureKeepsSession(t *testing.T) {
	nav, provider, renderer, _ := newTestNavigator(t)
	provider.failures[1] = true
	idsBefore := renderer.ids()

	nav.RequestDataset(1)

	st := nav.State()
	assert.Equal(t, 0, st.DatasetIndex, "refused change keeps the current recording")
	assert.Equal(t, idsBefore, renderer.ids(), "scene must survive a refused change")
	assert.Equal(t, 20, nav.FrameCount())
}

func TestTogglesDoNotReload(t *testing.T) {
	nav, provider, renderer, _ := newTestNavigator(t)
	loadsBefore := provider.datasets[0].loads

	nav.SetRawCloudVisible(false)
	assert.NotContains(t, renderer.ids(), "point_cloud")

	nav.SetRawCloudVisible(true)
	assert.Contains(t, renderer.ids(), "point_cloud")

	nav.SetBoundingBoxesVisible(false)
	nav.SetBoundingBoxesVisible(true)

	assert.Equal(t, loadsBefore, provider.datasets[0].loads)
	st := nav.State()
	assert.Equal(t, 0, st.DatasetIndex)
	assert.Equal(t, 0, st.FrameIndex)
	assert.Equal(t, 0, st.TrackletIndex)
}

func TestKeyboardNavigationClamps(t *testing.T) {
	nav, _, _, _ := newTestNavigator(t)

	nav.PreviousFrame()
	assert.Equal(t, 0, nav.State().FrameIndex, "stepping before frame 0 clamps")

	nav.NextFrame()
	assert.Equal(t, 1, nav.State().FrameIndex)

	nav.RequestFrame(19)
	nav.NextFrame()
	assert.Equal(t, 19, nav.State().FrameIndex, "stepping past the last frame clamps")
}
