package kitti

import "fmt"

// DatasetOpenError reports that a recording directory is missing or
// unreadable. Fatal at startup; a dataset-change request that hits it is
// refused and the previous recording stays active.
type DatasetOpenError struct {
	Dir string
	Err error
}

func (e *DatasetOpenError) Error() string {
	return fmt.Sprintf("open dataset %s: %v", e.Dir, e.Err)
}

func (e *DatasetOpenError) Unwrap() error { return e.Err }

// FrameReadError reports that a requested frame's point cloud is
// unavailable or corrupt.
type FrameReadError struct {
	Frame int
	Err   error
}

func (e *FrameReadError) Error() string {
	return fmt.Sprintf("read frame %d: %v", e.Frame, e.Err)
}

func (e *FrameReadError) Unwrap() error { return e.Err }
