package tracklet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"kitti-viewer/internal/kitti"
	"kitti-viewer/pkg/geometry"
)

func rotatedForward(yaw float64) geometry.Vec3 {
	return geometry.RotateZ(geometry.NewVec3(1, 0, 0), yaw)
}

func geometryAdd(a, b geometry.Vec3) geometry.Vec3 {
	return r3.Add(a, b)
}

func carTracklet() kitti.Tracklet {
	return kitti.Tracklet{
		ID:         0,
		ObjectType: "Car",
		H:          1.5, W: 1.6, L: 3.6,
		FirstFrame: 5,
		Poses: []kitti.Pose{
			{TX: 10, TY: 2, TZ: -0.5, RZ: 0.3},
			{TX: 11, TY: 2, TZ: -0.5, RZ: 0.4},
		},
	}
}

func TestWorldBox(t *testing.T) {
	tr := carTracklet()
	box, err := WorldBox(tr, 5)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, box.Center.X, 1e-9)
	assert.InDelta(t, 2.0, box.Center.Y, 1e-9)
	// Center raised by half the height above the pose translation.
	assert.InDelta(t, -0.5+1.5/2, box.Center.Z, 1e-9)
	assert.InDelta(t, 0.3, box.Yaw, 1e-9)
	assert.Equal(t, 3.6, box.Length)
	assert.Equal(t, 1.6, box.Width)
	assert.Equal(t, 1.5, box.Height)
}

func TestWorldBoxOutOfRange(t *testing.T) {
	tr := carTracklet() // frames 5..6
	for _, frame := range []int{4, 7} {
		_, err := WorldBox(tr, frame)
		assert.Error(t, err, "frame %d", frame)
	}
}

func TestCenteringTransformFixpoint(t *testing.T) {
	// The centering transform must map the tracklet's own box center to
	// the world origin and cancel the heading, for any pose.
	poses := []kitti.Pose{
		{TX: 10, TY: 2, TZ: -0.5, RZ: 0.3},
		{TX: -7, TY: 33, TZ: 2, RZ: -2.9},
		{TX: 0, TY: 0, TZ: 0, RZ: math.Pi},
	}
	for i, pose := range poses {
		tr := kitti.Tracklet{H: 1.5, W: 1.6, L: 3.6, FirstFrame: 0, Poses: []kitti.Pose{pose}}

		box, err := WorldBox(tr, 0)
		require.NoError(t, err)
		centering, err := CenteringTransform(tr, 0)
		require.NoError(t, err)

		origin := centering.Apply(box.Center)
		assert.InDelta(t, 0, origin.X, 1e-9, "pose %d", i)
		assert.InDelta(t, 0, origin.Y, 1e-9, "pose %d", i)
		assert.InDelta(t, 0, origin.Z, 1e-9, "pose %d", i)

		// A point one unit along the object's heading ends up one unit
		// along world x: the heading is canonicalized to zero.
		ahead := centering.Apply(geometryAdd(box.Center, rotatedForward(pose.RZ)))
		assert.InDelta(t, 1, ahead.X, 1e-9, "pose %d", i)
		assert.InDelta(t, 0, ahead.Y, 1e-9, "pose %d", i)
	}
}

func TestDisplayOffset(t *testing.T) {
	off := DisplayOffset()
	assert.Equal(t, 0.0, off.X)
	assert.Equal(t, 0.0, off.Y)
	assert.Equal(t, 6.0, off.Z)
}
