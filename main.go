// Package main provides the entry point for the KITTI tracklet viewer.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	fyneapp "fyne.io/fyne/v2/app"

	"kitti-viewer/internal/app"
	"kitti-viewer/internal/config"
	"kitti-viewer/internal/kitti"
	"kitti-viewer/internal/version"
	"kitti-viewer/ui/mainwindow"
	"kitti-viewer/ui/prefs"
	"kitti-viewer/ui/viewport"
)

const appTitle = "KITTI Tracklet Viewer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.Full())

	fs := flag.NewFlagSet("kitti-viewer", flag.ContinueOnError)
	driveFlag := fs.Int("dataset", -1, "number of the KITTI data set (drive) to open first")
	configFlag := fs.String("config", defaultConfigPath(), "path to the config file")
	dataFlag := fs.String("data", "", "override the recordings base directory")
	if err := fs.Parse(os.Args[1:]); err != nil {
		// Usage has been printed; covers --help as well.
		os.Exit(1)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dataFlag != "" {
		cfg.Data.Dir = *dataFlag
	}

	library := kitti.NewLibrary(cfg.Data.Dir, cfg.Data.Date, cfg.Data.Drives)
	if library.Count() == 0 {
		log.Fatalf("no recordings configured under %s", cfg.Data.Dir)
	}

	initialIndex := 0
	if *driveFlag >= 0 {
		if idx := library.IndexOf(*driveFlag); idx >= 0 {
			initialIndex = idx
			log.Printf("Using data set %d.", *driveFlag)
		} else {
			log.Printf("Data set %d is not available, using data set %d.",
				*driveFlag, library.DriveNumber(0))
		}
	} else {
		log.Printf("Data set was not specified. Using data set %d.", library.DriveNumber(0))
	}

	fyneApp := fyneapp.NewWithID("kitti-viewer")
	appPrefs := prefs.Load()

	vp := viewport.New()
	win := mainwindow.New(fyneApp, vp, appPrefs)
	win.SetTitle(appTitle)

	nav := app.NewNavigator(libraryProvider{library}, vp, win)
	nav.Layers().SetPointSize(cfg.Display.PointSize)
	win.Bind(nav, cfg.Display.InitialView)

	if err := nav.Init(initialIndex); err != nil {
		log.Fatalf("open initial recording: %v", err)
	}

	win.ShowAndRun()
}

// libraryProvider adapts the concrete kitti.Library to the navigator's
// provider contract.
type libraryProvider struct {
	lib *kitti.Library
}

func (p libraryProvider) Count() int { return p.lib.Count() }
func (p libraryProvider) DriveNumber(index int) int { return p.lib.DriveNumber(index) }
func (p libraryProvider) Open(index int) (app.Dataset, error) {
	ds, err := p.lib.Open(index)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "kitti-viewer", "config.yaml")
}
