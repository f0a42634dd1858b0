package kitti

import (
	"os"
)

// Library is the ordered collection of recordings the viewer can open.
type Library struct {
	descriptors []Descriptor
}

// NewLibrary builds a library for the given drive numbers under a base
// directory. Drives whose recording directory is missing are filtered
// out; if none exist on disk the full list is kept so that open errors
// name the expected paths.
func NewLibrary(baseDir, date string, drives []int) *Library {
	all := make([]Descriptor, 0, len(drives))
	present := make([]Descriptor, 0, len(drives))
	for _, drive := range drives {
		d := Describe(baseDir, date, drive)
		all = append(all, d)
		if info, err := os.Stat(d.Dir); err == nil && info.IsDir() {
			present = append(present, d)
		}
	}
	if len(present) > 0 {
		return &Library{descriptors: present}
	}
	return &Library{descriptors: all}
}

// Count returns the number of recordings.
func (l *Library) Count() int { return len(l.descriptors) }

// Descriptors returns the recordings in order.
func (l *Library) Descriptors() []Descriptor { return l.descriptors }

// DriveNumber returns the external drive number for a 0-based index.
func (l *Library) DriveNumber(index int) int {
	if index < 0 || index >= len(l.descriptors) {
		return -1
	}
	return l.descriptors[index].Drive
}

// IndexOf maps an external drive number to its library index, or -1.
func (l *Library) IndexOf(drive int) int {
	return DatasetIndex(l.descriptors, drive)
}

// Open opens the recording at a 0-based index.
func (l *Library) Open(index int) (*Dataset, error) {
	if index < 0 || index >= len(l.descriptors) {
		return nil, &DatasetOpenError{Dir: "", Err: os.ErrNotExist}
	}
	return Open(l.descriptors[index])
}
