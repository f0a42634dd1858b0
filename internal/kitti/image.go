package kitti

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// LoadImage reads a camera frame from disk for display. OpenCV does the
// decode; if the bindings cannot read the file (or it is in a format
// OpenCV was built without) the stdlib decoders are tried as a fallback.
func LoadImage(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if !mat.Empty() {
		img, err := mat.ToImage()
		if err == nil {
			return img, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
