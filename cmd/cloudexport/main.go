// Command cloudexport writes one velodyne frame, or one tracklet's
// cropped subset of it, as an ASCII PCD file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"kitti-viewer/internal/kitti"
	"kitti-viewer/internal/tracklet"
	"kitti-viewer/pkg/geometry"
)

func main() {
	dataDir := flag.String("data", "data", "base directory of the KITTI recordings")
	date := flag.String("date", "2011_09_26", "recording date")
	drive := flag.Int("drive", 1, "drive number")
	frame := flag.Int("frame", 0, "frame index")
	trackletID := flag.Int("tracklet", -1, "crop to this tracklet ID (-1 for the whole frame)")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	ds, err := kitti.Open(kitti.Describe(*dataDir, *date, *drive))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cloud, err := ds.PointCloud(*frame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *trackletID >= 0 {
		cloud, err = cropToTracklet(ds, cloud, *trackletID, *frame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := writePCD(w, cloud); err != nil {
		fmt.Fprintf(os.Stderr, "write pcd: %v\n", err)
		os.Exit(1)
	}
}

func cropToTracklet(ds *kitti.Dataset, cloud geometry.PointCloud, id, frame int) (geometry.PointCloud, error) {
	for _, t := range ds.Tracklets() {
		if t.ID != id {
			continue
		}
		box, err := tracklet.WorldBox(t, frame)
		if err != nil {
			return nil, err
		}
		return cloud.CropBox(box), nil
	}
	return nil, fmt.Errorf("no tracklet with ID %d", id)
}

func writePCD(f *os.File, cloud geometry.PointCloud) error {
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "VERSION .7\n"+
		"FIELDS x y z intensity\n"+
		"SIZE 4 4 4 4\n"+
		"TYPE F F F F\n"+
		"COUNT 1 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT 1\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA ascii\n",
		len(cloud), len(cloud))
	for _, p := range cloud {
		if _, err := fmt.Fprintf(w, "%f %f %f %f\n", p.Pos.X, p.Pos.Y, p.Pos.Z, p.Intensity); err != nil {
			return err
		}
	}
	return w.Flush()
}
