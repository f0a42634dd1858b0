// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kitti-viewer/internal/app"
	"kitti-viewer/internal/kitti"
	"kitti-viewer/ui/prefs"
	"kitti-viewer/ui/viewport"
)

const prefKeyLastView = "lastCameraView"

// MainWindow is the primary application window. It binds the toolkit
// widgets to the Navigator and receives its status updates.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	nav      *app.Navigator
	viewport *viewport.Viewport
	prefs    *prefs.Prefs

	datasetSlider  *widget.Slider
	frameSlider    *widget.Slider
	trackletSlider *widget.Slider
	datasetLabel   *widget.Label
	frameLabel     *widget.Label
	trackletLabel  *widget.Label

	viewSelect *widget.Select
	imageView  *fynecanvas.Image
}

var _ app.StatusSink = (*MainWindow)(nil)

// New creates the main window around a viewport. Bind must be called
// before the window is shown.
func New(fyneApp fyne.App, vp *viewport.Viewport, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("KITTI Tracklet Viewer")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		viewport: vp,
		prefs:    appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()

	return mw
}

// Bind connects the window to the navigator and applies the initial
// camera preset.
func (mw *MainWindow) Bind(nav *app.Navigator, initialView string) {
	mw.nav = nav
	mw.datasetSlider.Max = float64(nav.DatasetCount() - 1)

	view := viewport.ViewByName(mw.prefs.String(prefKeyLastView, initialView))
	mw.viewSelect.SetSelected(view.String())
}

// setupUI creates the widget tree: the 3D viewport in the center, the
// camera image and navigation controls on the right.
func (mw *MainWindow) setupUI() {
	mw.datasetLabel = widget.NewLabel("Data set:")
	mw.frameLabel = widget.NewLabel("Frame:")
	mw.trackletLabel = widget.NewLabel("Tracklet: 0 of 0")

	mw.datasetSlider = widget.NewSlider(0, 0)
	mw.datasetSlider.OnChanged = func(v float64) {
		if mw.nav != nil {
			mw.nav.RequestDataset(int(v))
		}
	}
	mw.frameSlider = widget.NewSlider(0, 0)
	mw.frameSlider.OnChanged = func(v float64) {
		if mw.nav != nil {
			mw.nav.RequestFrame(int(v))
		}
	}
	mw.trackletSlider = widget.NewSlider(0, 0)
	mw.trackletSlider.OnChanged = func(v float64) {
		if mw.nav != nil {
			mw.nav.RequestTracklet(int(v))
		}
	}

	rawCheck := widget.NewCheck("Show frame point cloud", func(v bool) {
		if mw.nav != nil {
			mw.nav.SetRawCloudVisible(v)
		}
	})
	boxCheck := widget.NewCheck("Show tracklet bounding boxes", func(v bool) {
		if mw.nav != nil {
			mw.nav.SetBoundingBoxesVisible(v)
		}
	})
	croppedCheck := widget.NewCheck("Show tracklet point clouds", func(v bool) {
		if mw.nav != nil {
			mw.nav.SetCroppedTrackletsVisible(v)
		}
	})
	centeredCheck := widget.NewCheck("Show tracklet in center", func(v bool) {
		if mw.nav != nil {
			mw.nav.SetCenteredSelectionVisible(v)
		}
	})
	for _, c := range []*widget.Check{rawCheck, boxCheck, croppedCheck, centeredCheck} {
		c.Checked = true
		c.Refresh()
	}

	mw.viewSelect = widget.NewSelect(viewport.ViewNames, func(name string) {
		pose := viewport.Preset(viewport.ViewByName(name))
		mw.viewport.SetCamera(pose.Eye, pose.LookAt, pose.Up)
		mw.viewport.RequestRedraw()
		mw.prefs.Set(prefKeyLastView, name)
	})

	mw.imageView = &fynecanvas.Image{}
	mw.imageView.FillMode = fynecanvas.ImageFillContain
	mw.imageView.SetMinSize(fyne.NewSize(400, 130))

	controls := container.NewVBox(
		mw.imageView,
		mw.datasetLabel,
		mw.datasetSlider,
		mw.frameLabel,
		mw.frameSlider,
		mw.trackletLabel,
		mw.trackletSlider,
		widget.NewSeparator(),
		rawCheck,
		boxCheck,
		croppedCheck,
		centeredCheck,
		widget.NewSeparator(),
		widget.NewLabel("Camera view"),
		mw.viewSelect,
	)

	mw.SetContent(container.NewBorder(
		nil,      // top
		nil,      // bottom
		nil,      // left
		controls, // right
		mw.viewport,
	))
	mw.Resize(fyne.NewSize(1280, 720))
}

func (mw *MainWindow) setupMenus() {
	exitItem := fyne.NewMenuItem("Exit", func() {
		_ = mw.prefs.Save()
		mw.app.Quit()
	})
	mw.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", exitItem)))
	mw.SetOnClosed(func() {
		_ = mw.prefs.Save()
	})
}

// setupKeys wires the left/right arrows to frame navigation. Both go
// through the navigator's clamp-and-rebuild protocol; there is no fast
// path for keyboard stepping.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if mw.nav == nil {
			return
		}
		switch ev.Name {
		case fyne.KeyLeft:
			mw.nav.PreviousFrame()
		case fyne.KeyRight:
			mw.nav.NextFrame()
		}
	})
}

// DatasetStatus implements app.StatusSink.
func (mw *MainWindow) DatasetStatus(index, total, drive int) {
	mw.datasetLabel.SetText(fmt.Sprintf("Data set: %d of %d [%d]", index+1, total, drive))
	mw.datasetSlider.SetValue(float64(index))
}

// FrameStatus implements app.StatusSink.
func (mw *MainWindow) FrameStatus(index, total int) {
	mw.frameLabel.SetText(fmt.Sprintf("Frame: %d of %d", index+1, total))
	mw.frameSlider.Max = float64(total - 1)
	mw.frameSlider.SetValue(float64(index))
	mw.frameSlider.Refresh()
}

// TrackletStatus implements app.StatusSink.
func (mw *MainWindow) TrackletStatus(index, total, points int, objectType string) {
	if index == app.NoTracklet {
		mw.trackletLabel.SetText("Tracklet: 0 of 0")
		mw.trackletSlider.Max = 0
		mw.trackletSlider.SetValue(0)
		mw.trackletSlider.Refresh()
		return
	}
	mw.trackletLabel.SetText(fmt.Sprintf("Tracklet: %d of %d (%q, %d points)",
		index+1, total, objectType, points))
	mw.trackletSlider.Max = float64(total - 1)
	mw.trackletSlider.SetValue(float64(index))
	mw.trackletSlider.Refresh()
}

// ImageLoaded implements app.StatusSink: it loads and shows the camera
// image belonging to the current frame.
func (mw *MainWindow) ImageLoaded(path string) {
	img, err := kitti.LoadImage(path)
	if err != nil {
		log.Printf("camera image: %v", err)
		mw.imageView.Image = nil
		mw.imageView.Refresh()
		return
	}
	log.Printf("loaded: %s", path)
	mw.imageView.Image = img
	mw.imageView.Refresh()
}
