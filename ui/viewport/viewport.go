// Package viewport renders the retained 3D scene into a Fyne widget.
package viewport

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/gonum/spatial/r3"

	"kitti-viewer/internal/scene"
	"kitti-viewer/pkg/geometry"
)

const (
	nearPlane  = 0.5
	fovDegrees = 60.0
)

// object is one retained scene entry: either a point cloud or a box
// wireframe, never both.
type object struct {
	cloud geometry.PointCloud
	box   *geometry.Box
	style scene.Style
}

// Viewport is a software-rendered 3D view implementing scene.Renderer.
// Objects are retained by identifier until removed; the scene is redrawn
// on request. Dragging orbits the camera around its look-at point, the
// scroll wheel moves it closer or further away.
type Viewport struct {
	widget.BaseWidget

	mu      sync.Mutex
	objects map[string]object
	eye     geometry.Vec3
	lookAt  geometry.Vec3
	up      geometry.Vec3

	raster *fynecanvas.Raster
}

var _ scene.Renderer = (*Viewport)(nil)

// New creates a viewport with the birds-eye camera preset.
func New() *Viewport {
	v := &Viewport{objects: make(map[string]object)}
	pose := Preset(ViewBirdsEye)
	v.eye, v.lookAt, v.up = pose.Eye, pose.LookAt, pose.Up
	v.raster = fynecanvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize gives the viewport room to be useful.
func (v *Viewport) MinSize() fyne.Size {
	return fyne.NewSize(640, 480)
}

// AddOrReplacePointCloud implements scene.Renderer.
func (v *Viewport) AddOrReplacePointCloud(id string, cloud geometry.PointCloud, style scene.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.objects[id] = object{cloud: cloud, style: style}
}

// AddOrReplaceBox implements scene.Renderer.
func (v *Viewport) AddOrReplaceBox(id string, box geometry.Box, style scene.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.objects[id] = object{box: &box, style: style}
}

// Remove implements scene.Renderer. Unknown identifiers are ignored.
func (v *Viewport) Remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.objects, id)
}

// SetCamera implements scene.Renderer.
func (v *Viewport) SetCamera(eye, lookAt, up geometry.Vec3) {
	v.mu.Lock()
	v.eye, v.lookAt, v.up = eye, lookAt, up
	v.mu.Unlock()
}

// RequestRedraw implements scene.Renderer.
func (v *Viewport) RequestRedraw() {
	v.raster.Refresh()
}

// ObjectCount returns the number of retained scene objects.
func (v *Viewport) ObjectCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.objects)
}

// Dragged orbits the camera around the look-at point.
func (v *Viewport) Dragged(ev *fyne.DragEvent) {
	v.mu.Lock()
	offset := r3.Sub(v.eye, v.lookAt)
	yaw := -float64(ev.Dragged.DX) * 0.01
	offset = geometry.RotateZ(offset, yaw)

	// Pitch by moving along the vertical, clamped so the camera never
	// flips over the pole.
	radius := r3.Norm(offset)
	if radius > 0 {
		pitch := float64(ev.Dragged.DY) * 0.01
		elev := math.Asin(offset.Z/radius) + pitch
		elev = math.Max(-1.5, math.Min(1.5, elev))
		horiz := math.Hypot(offset.X, offset.Y)
		if horiz > 1e-9 {
			scale := radius * math.Cos(elev) / horiz
			offset.X *= scale
			offset.Y *= scale
		}
		offset.Z = radius * math.Sin(elev)
	}
	v.eye = r3.Add(v.lookAt, offset)
	v.mu.Unlock()
	v.raster.Refresh()
}

// DragEnd implements fyne.Draggable.
func (v *Viewport) DragEnd() {}

// Scrolled zooms the camera along its viewing direction.
func (v *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	v.mu.Lock()
	offset := r3.Sub(v.eye, v.lookAt)
	factor := 1.1
	if ev.Scrolled.DY > 0 {
		factor = 1 / factor
	}
	if r3.Norm(offset)*factor > nearPlane {
		v.eye = r3.Add(v.lookAt, r3.Scale(factor, offset))
	}
	v.mu.Unlock()
	v.raster.Refresh()
}

// draw renders the retained scene for the raster.
func (v *Viewport) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	cam := newProjection(v.eye, v.lookAt, v.up, w, h)
	v.drawAxes(img, cam)
	for _, obj := range v.objects {
		if obj.box != nil {
			v.drawBox(img, cam, *obj.box, obj.style)
			continue
		}
		v.drawCloud(img, cam, obj.cloud, obj.style)
	}
	return img
}

// projection is a pinhole camera: an orthonormal basis at the eye plus a
// focal length derived from the vertical field of view.
type projection struct {
	eye                 geometry.Vec3
	right, upv, forward geometry.Vec3
	focal               float64
	cx, cy              float64
	w, h                int
}

func newProjection(eye, lookAt, up geometry.Vec3, w, h int) projection {
	forward := r3.Unit(r3.Sub(lookAt, eye))
	right := r3.Unit(r3.Cross(forward, up))
	upv := r3.Cross(right, forward)
	focal := float64(h) / (2 * math.Tan(fovDegrees*math.Pi/360))
	return projection{
		eye: eye, right: right, upv: upv, forward: forward,
		focal: focal, cx: float64(w) / 2, cy: float64(h) / 2, w: w, h: h,
	}
}

// project maps a world point to screen coordinates. ok is false behind
// the near plane.
func (c projection) project(p geometry.Vec3) (sx, sy float64, ok bool) {
	d := r3.Sub(p, c.eye)
	z := r3.Dot(d, c.forward)
	if z < nearPlane {
		return 0, 0, false
	}
	sx = c.cx + c.focal*r3.Dot(d, c.right)/z
	sy = c.cy - c.focal*r3.Dot(d, c.upv)/z
	return sx, sy, true
}

func (v *Viewport) drawCloud(img *image.RGBA, cam projection, cloud geometry.PointCloud, style scene.Style) {
	size := style.PointSize
	if size < 1 {
		size = 1
	}
	for _, p := range cloud {
		sx, sy, ok := cam.project(p.Pos)
		if !ok {
			continue
		}
		c := shade(style.Color, p.Intensity)
		x0, y0 := int(sx), int(sy)
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				setPixel(img, x0+dx, y0+dy, c)
			}
		}
	}
}

// boxEdges indexes the corner pairs of geometry.Box.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (v *Viewport) drawBox(img *image.RGBA, cam projection, box geometry.Box, style scene.Style) {
	corners := box.Corners()
	for _, e := range boxEdges {
		x1, y1, ok1 := cam.project(corners[e[0]])
		x2, y2, ok2 := cam.project(corners[e[1]])
		if !ok1 || !ok2 {
			continue
		}
		drawLine(img, x1, y1, x2, y2, style.Color)
	}
}

// drawAxes paints unit coordinate axes at the origin: x red, y green, z blue.
func (v *Viewport) drawAxes(img *image.RGBA, cam projection) {
	origin := geometry.Vec3{}
	axes := []struct {
		end geometry.Vec3
		col color.RGBA
	}{
		{geometry.NewVec3(1, 0, 0), color.RGBA{R: 255, A: 255}},
		{geometry.NewVec3(0, 1, 0), color.RGBA{G: 255, A: 255}},
		{geometry.NewVec3(0, 0, 1), color.RGBA{B: 255, A: 255}},
	}
	ox, oy, ok := cam.project(origin)
	if !ok {
		return
	}
	for _, a := range axes {
		ex, ey, ok := cam.project(a.end)
		if !ok {
			continue
		}
		drawLine(img, ox, oy, ex, ey, a.col)
	}
}

// shade darkens a color by the point's reflectance so the cloud keeps
// some depth cues. Reflectance is 0..1 in the raw data.
func shade(c color.RGBA, intensity float64) color.RGBA {
	f := 0.4 + 0.6*math.Max(0, math.Min(1, intensity))
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.SetRGBA(x, y, c)
}

// drawLine steps along the longer screen axis; good enough for wireframes.
func drawLine(img *image.RGBA, x1, y1, x2, y2 float64, c color.RGBA) {
	steps := int(math.Max(math.Abs(x2-x1), math.Abs(y2-y1)))
	if steps == 0 {
		setPixel(img, int(x1), int(y1), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		setPixel(img, int(x1+(x2-x1)*t), int(y1+(y2-y1)*t), c)
	}
}
