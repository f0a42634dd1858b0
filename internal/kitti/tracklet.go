package kitti

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Pose is an annotated object's translation and rotation at one frame.
// Only the yaw (RZ) is meaningful for the raw recordings; RX and RY are
// carried through from the annotation file but are zero in practice.
type Pose struct {
	TX float64 `xml:"tx"`
	TY float64 `xml:"ty"`
	TZ float64 `xml:"tz"`
	RX float64 `xml:"rx"`
	RY float64 `xml:"ry"`
	RZ float64 `xml:"rz"`

	State      int `xml:"state"`
	Truncation int `xml:"truncation"`
}

// Tracklet is one tracked object's annotation across the frame range it
// appears in: a fixed box size plus one pose per frame.
type Tracklet struct {
	// ID is the tracklet's position in the recording's annotation file.
	// It is stable for the lifetime of the recording and keys the scene
	// identifiers derived from this tracklet.
	ID int

	ObjectType string
	H, W, L    float64
	FirstFrame int
	Poses      []Pose
}

// LastFrame returns the last frame index the tracklet appears in.
func (t Tracklet) LastFrame() int {
	return t.FirstFrame + len(t.Poses) - 1
}

// ContainsFrame reports whether the tracklet has a pose for the frame.
func (t Tracklet) ContainsFrame(frame int) bool {
	return t.FirstFrame <= frame && frame <= t.LastFrame()
}

// PoseAt returns the tracklet's pose at the given frame index.
func (t Tracklet) PoseAt(frame int) (Pose, error) {
	if !t.ContainsFrame(frame) {
		return Pose{}, fmt.Errorf("tracklet %d has no pose at frame %d (range %d-%d)",
			t.ID, frame, t.FirstFrame, t.LastFrame())
	}
	return t.Poses[frame-t.FirstFrame], nil
}

// The annotation file is a boost serialization archive. The XML decoder
// only needs the handful of elements below; everything else is skipped.

type trackletXMLItem struct {
	ObjectType string  `xml:"objectType"`
	H          float64 `xml:"h"`
	W          float64 `xml:"w"`
	L          float64 `xml:"l"`
	FirstFrame int     `xml:"first_frame"`
	Poses      struct {
		Count int    `xml:"count"`
		Items []Pose `xml:"item"`
	} `xml:"poses"`
}

type trackletXMLFile struct {
	XMLName   xml.Name `xml:"boost_serialization"`
	Tracklets struct {
		Count int               `xml:"count"`
		Items []trackletXMLItem `xml:"item"`
	} `xml:"tracklets"`
}

// ParseTracklets reads tracklet annotations from a tracklet_labels.xml
// stream, preserving file order.
func ParseTracklets(r io.Reader) ([]Tracklet, error) {
	var file trackletXMLFile
	dec := xml.NewDecoder(r)
	// The archives in the wild carry no encoding declaration worth
	// trusting; read bytes as-is.
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse tracklets: %w", err)
	}

	tracklets := make([]Tracklet, 0, len(file.Tracklets.Items))
	for i, item := range file.Tracklets.Items {
		if len(item.Poses.Items) == 0 {
			continue
		}
		tracklets = append(tracklets, Tracklet{
			ID:         i,
			ObjectType: item.ObjectType,
			H:          item.H,
			W:          item.W,
			L:          item.L,
			FirstFrame: item.FirstFrame,
			Poses:      item.Poses.Items,
		})
	}
	return tracklets, nil
}

// LoadTracklets parses the annotation file at path. A missing file is not
// an error: some recordings ship without annotations, and the viewer then
// simply has no tracklets to show.
func LoadTracklets(path string) ([]Tracklet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return ParseTracklets(f)
}
