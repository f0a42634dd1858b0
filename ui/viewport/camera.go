package viewport

import "kitti-viewer/pkg/geometry"

// CameraView enumerates the fixed camera presets.
type CameraView int

const (
	ViewFront CameraView = iota
	ViewEyeLevel
	ViewBirdsEye
	ViewLeftPerspective
	ViewRightPerspective
	ViewTop
)

// ViewNames lists the preset names in CameraView order.
var ViewNames = []string{
	"Front",
	"Eye Level",
	"Birds Eye",
	"Left Perspective",
	"Right Perspective",
	"Top",
}

func (v CameraView) String() string {
	if v < 0 || int(v) >= len(ViewNames) {
		return "Unknown"
	}
	return ViewNames[v]
}

// ViewByName maps a preset name back to its CameraView. Unknown names
// fall back to the birds-eye view.
func ViewByName(name string) CameraView {
	for i, n := range ViewNames {
		if n == name {
			return CameraView(i)
		}
	}
	return ViewBirdsEye
}

// CameraPose is a literal camera placement: no interpolation happens
// between presets.
type CameraPose struct {
	Eye    geometry.Vec3
	LookAt geometry.Vec3
	Up     geometry.Vec3
}

// Preset returns the camera placement for a view.
func Preset(v CameraView) CameraPose {
	switch v {
	case ViewFront:
		return CameraPose{
			Eye:    geometry.NewVec3(-100, 0, 0),
			LookAt: geometry.NewVec3(-17, 9.5, -9.5),
			Up:     geometry.NewVec3(0, 0, 1),
		}
	case ViewEyeLevel:
		return CameraPose{
			Eye:    geometry.NewVec3(-100, 0, 20),
			LookAt: geometry.NewVec3(-17, 9.5, -9.5),
			Up:     geometry.NewVec3(0, 0, 1),
		}
	case ViewLeftPerspective:
		return CameraPose{
			Eye:    geometry.NewVec3(22, 150, 57),
			LookAt: geometry.NewVec3(1, -57, 8),
			Up:     geometry.NewVec3(0, 0, 1),
		}
	case ViewRightPerspective:
		return CameraPose{
			Eye:    geometry.NewVec3(-22, -150, 57),
			LookAt: geometry.NewVec3(1, -57, 8),
			Up:     geometry.NewVec3(0, 0, 1),
		}
	case ViewTop:
		return CameraPose{
			Eye:    geometry.NewVec3(1, 29, -110),
			LookAt: geometry.NewVec3(21, 6, 147),
			Up:     geometry.NewVec3(0, -1, 0),
		}
	case ViewBirdsEye:
		fallthrough
	default:
		return CameraPose{
			Eye:    geometry.NewVec3(-100, 10, 30),
			LookAt: geometry.NewVec3(-17, 9.5, -9.5),
			Up:     geometry.NewVec3(0, 0, 1),
		}
	}
}
