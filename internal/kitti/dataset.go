// Package kitti reads KITTI raw recordings: velodyne point-cloud frames,
// camera images and tracklet annotations.
package kitti

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"kitti-viewer/pkg/geometry"
)

const (
	velodyneDir  = "velodyne_points/data"
	imageDir     = "image_02/data"
	trackletFile = "tracklet_labels.xml"
)

// Descriptor identifies one recording (drive) on disk.
type Descriptor struct {
	Date  string // e.g. "2011_09_26"
	Drive int    // external drive number, e.g. 1 for drive_0001
	Dir   string // absolute recording directory
}

// Name returns the canonical recording name, e.g. "2011_09_26_drive_0001_sync".
func (d Descriptor) Name() string {
	return fmt.Sprintf("%s_drive_%04d_sync", d.Date, d.Drive)
}

// Describe builds the descriptor for a drive number under a base directory.
func Describe(baseDir, date string, drive int) Descriptor {
	d := Descriptor{Date: date, Drive: drive}
	d.Dir = filepath.Join(baseDir, d.Name())
	return d
}

// DatasetIndex maps an external drive number to its index in the
// descriptor list, or -1 if the drive is not available.
func DatasetIndex(descriptors []Descriptor, drive int) int {
	for i, d := range descriptors {
		if d.Drive == drive {
			return i
		}
	}
	return -1
}

// Dataset is one opened recording. Frames are loaded on demand; tracklet
// annotations are parsed once on open and immutable afterwards.
type Dataset struct {
	desc      Descriptor
	frames    int
	tracklets []Tracklet
}

// Open opens the recording described by desc. It fails with a
// *DatasetOpenError if the velodyne data directory is missing or empty.
func Open(desc Descriptor) (*Dataset, error) {
	dir := filepath.Join(desc.Dir, velodyneDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DatasetOpenError{Dir: desc.Dir, Err: err}
	}
	frames := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".bin" {
			frames++
		}
	}
	if frames == 0 {
		return nil, &DatasetOpenError{Dir: desc.Dir, Err: fmt.Errorf("no velodyne frames in %s", dir)}
	}

	tracklets, err := LoadTracklets(filepath.Join(desc.Dir, trackletFile))
	if err != nil {
		return nil, &DatasetOpenError{Dir: desc.Dir, Err: err}
	}

	return &Dataset{desc: desc, frames: frames, tracklets: tracklets}, nil
}

// Descriptor returns the recording's descriptor.
func (d *Dataset) Descriptor() Descriptor { return d.desc }

// FrameCount returns the number of velodyne frames in the recording.
func (d *Dataset) FrameCount() int { return d.frames }

// Tracklets returns the recording's tracklet annotations in file order.
func (d *Dataset) Tracklets() []Tracklet { return d.tracklets }

// ImagePath returns the camera image path for a frame index.
func (d *Dataset) ImagePath(frame int) string {
	return filepath.Join(d.desc.Dir, imageDir, fmt.Sprintf("%010d.png", frame))
}

// PointCloud reads the velodyne cloud for a frame index. It fails with a
// *FrameReadError if the index is out of range or the file is unreadable.
func (d *Dataset) PointCloud(frame int) (geometry.PointCloud, error) {
	if frame < 0 || frame >= d.frames {
		return nil, &FrameReadError{Frame: frame, Err: fmt.Errorf("index out of range [0,%d)", d.frames)}
	}
	path := filepath.Join(d.desc.Dir, velodyneDir, fmt.Sprintf("%010d.bin", frame))
	f, err := os.Open(path)
	if err != nil {
		return nil, &FrameReadError{Frame: frame, Err: err}
	}
	defer f.Close()

	cloud, err := readVelodyne(f)
	if err != nil {
		return nil, &FrameReadError{Frame: frame, Err: err}
	}
	return cloud, nil
}

// readVelodyne decodes the raw binary format: little-endian float32
// records of x, y, z, reflectance.
func readVelodyne(r io.Reader) (geometry.PointCloud, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%16 != 0 {
		return nil, fmt.Errorf("velodyne data truncated: %d bytes", len(data))
	}
	cloud := make(geometry.PointCloud, 0, len(data)/16)
	for off := 0; off < len(data); off += 16 {
		x := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))
		i := math.Float32frombits(binary.LittleEndian.Uint32(data[off+12:]))
		cloud = append(cloud, geometry.CloudPoint{
			Pos:       geometry.NewVec3(float64(x), float64(y), float64(z)),
			Intensity: float64(i),
		})
	}
	return cloud, nil
}
