// Command trackletdump prints the tracklet annotations of a KITTI
// recording, with the active set size per frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"kitti-viewer/internal/kitti"
	"kitti-viewer/internal/tracklet"
)

func main() {
	dataDir := flag.String("data", "data", "base directory of the KITTI recordings")
	date := flag.String("date", "2011_09_26", "recording date")
	drive := flag.Int("drive", 1, "drive number")
	perFrame := flag.Bool("frames", false, "print per-frame active counts")
	flag.Parse()

	desc := kitti.Describe(*dataDir, *date, *drive)
	ds, err := kitti.Open(desc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	tracklets := ds.Tracklets()
	fmt.Printf("%s: %d frames, %d tracklets\n", desc.Name(), ds.FrameCount(), len(tracklets))
	for _, t := range tracklets {
		fmt.Printf("%4d  %-18s  frames %d-%d  size %.2f x %.2f x %.2f\n",
			t.ID, t.ObjectType, t.FirstFrame, t.LastFrame(), t.L, t.W, t.H)
	}

	if *perFrame {
		fmt.Println()
		for frame := 0; frame < ds.FrameCount(); frame++ {
			active := tracklet.ActiveAt(tracklets, frame)
			fmt.Printf("frame %4d: %d active\n", frame, len(active))
		}
	}
}
