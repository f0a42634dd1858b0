// Package colorutil provides shared color utilities for the viewer.
package colorutil

import "image/color"

// Common scene colors.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// objectTypeColors maps KITTI annotation object types to display colors,
// matching the raw-data devkit palette.
var objectTypeColors = map[string]color.RGBA{
	"Car":              {R: 0, G: 0, B: 255, A: 255},
	"Van":              {R: 0, G: 255, B: 255, A: 255},
	"Truck":            {R: 255, G: 0, B: 255, A: 255},
	"Pedestrian":       {R: 255, G: 255, B: 0, A: 255},
	"Person (sitting)": {R: 255, G: 128, B: 0, A: 255},
	"Cyclist":          {R: 255, G: 0, B: 0, A: 255},
	"Tram":             {R: 0, G: 255, B: 0, A: 255},
	"Misc":             {R: 128, G: 128, B: 128, A: 255},
}

// ForObjectType returns the display color for an annotated object type.
// The mapping depends only on the type string, so the same type gets the
// same color across frames and recordings. Unknown types render gray.
func ForObjectType(objectType string) color.RGBA {
	if c, ok := objectTypeColors[objectType]; ok {
		return c
	}
	return Gray
}
