package kitti

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrackletXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>
<!DOCTYPE boost_serialization>
<boost_serialization signature="serialization::archive" version="9">
<tracklets class_id="0" tracking_level="0" version="0">
	<count>2</count>
	<item_version>1</item_version>
	<item class_id="1" tracking_level="0" version="1">
		<objectType>Car</objectType>
		<h>1.50</h>
		<w>1.60</w>
		<l>3.60</l>
		<first_frame>5</first_frame>
		<poses class_id="2" tracking_level="0" version="0">
			<count>3</count>
			<item_version>2</item_version>
			<item class_id="3" tracking_level="0" version="2">
				<tx>10.0</tx><ty>2.0</ty><tz>-0.5</tz>
				<rx>0</rx><ry>0</ry><rz>1.57</rz>
				<state>1</state>
				<occlusion>-1</occlusion>
				<occlusion_kf>-1</occlusion_kf>
				<truncation>-1</truncation>
			</item>
			<item>
				<tx>10.5</tx><ty>2.1</ty><tz>-0.5</tz>
				<rx>0</rx><ry>0</ry><rz>1.58</rz>
				<state>1</state>
			</item>
			<item>
				<tx>11.0</tx><ty>2.2</ty><tz>-0.5</tz>
				<rx>0</rx><ry>0</ry><rz>1.59</rz>
				<state>1</state>
			</item>
		</poses>
		<finished>1</finished>
	</item>
	<item>
		<objectType>Pedestrian</objectType>
		<h>1.80</h>
		<w>0.60</w>
		<l>0.80</l>
		<first_frame>0</first_frame>
		<poses>
			<count>1</count>
			<item_version>2</item_version>
			<item>
				<tx>-3.0</tx><ty>1.0</ty><tz>-0.9</tz>
				<rx>0</rx><ry>0</ry><rz>0.0</rz>
				<state>1</state>
			</item>
		</poses>
		<finished>1</finished>
	</item>
</tracklets>
</boost_serialization>
`

func TestParseTracklets(t *testing.T) {
	tracklets, err := ParseTracklets(strings.NewReader(sampleTrackletXML))
	require.NoError(t, err)
	require.Len(t, tracklets, 2)

	car := tracklets[0]
	assert.Equal(t, 0, car.ID)
	assert.Equal(t, "Car", car.ObjectType)
	assert.Equal(t, 1.5, car.H)
	assert.Equal(t, 1.6, car.W)
	assert.Equal(t, 3.6, car.L)
	assert.Equal(t, 5, car.FirstFrame)
	require.Len(t, car.Poses, 3)
	assert.Equal(t, 7, car.LastFrame())
	assert.Equal(t, 10.0, car.Poses[0].TX)
	assert.Equal(t, 1.57, car.Poses[0].RZ)

	ped := tracklets[1]
	assert.Equal(t, 1, ped.ID)
	assert.Equal(t, "Pedestrian", ped.ObjectType)
	assert.Equal(t, 0, ped.FirstFrame)
	assert.Equal(t, 0, ped.LastFrame())
}

func TestParseTrackletsInvalid(t *testing.T) {
	_, err := ParseTracklets(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestTrackletContainsFrame(t *testing.T) {
	tr := Tracklet{FirstFrame: 5, Poses: make([]Pose, 5)} // frames 5..9
	tests := []struct {
		frame int
		want  bool
	}{
		{4, false},
		{5, true},
		{7, true},
		{9, true},
		{10, false},
	}
	for _, tt := range tests {
		if got := tr.ContainsFrame(tt.frame); got != tt.want {
			t.Errorf("ContainsFrame(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestPoseAt(t *testing.T) {
	tr := Tracklet{
		FirstFrame: 10,
		Poses:      []Pose{{TX: 1}, {TX: 2}, {TX: 3}},
	}

	pose, err := tr.PoseAt(11)
	require.NoError(t, err)
	assert.Equal(t, 2.0, pose.TX)

	_, err = tr.PoseAt(9)
	assert.Error(t, err)
	_, err = tr.PoseAt(13)
	assert.Error(t, err)
}
