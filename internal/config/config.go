// Package config loads viewer configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the viewer's on-disk configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Display DisplayConfig `yaml:"display"`
}

// DataConfig locates the KITTI raw recordings.
type DataConfig struct {
	// Dir is the base directory holding <date>_drive_<nnnn>_sync
	// recording directories.
	Dir  string `yaml:"dir"`
	Date string `yaml:"date"`
	// Drives lists the drive numbers to offer, in order. An empty list
	// falls back to the standard city-category drives.
	Drives []int `yaml:"drives"`
}

// DisplayConfig holds presentation defaults.
type DisplayConfig struct {
	InitialView string `yaml:"initial_view"`
	// PointSize is the on-screen size of a rendered cloud point, in pixels.
	PointSize int `yaml:"point_size"`
}

// defaultDrives are the raw city-category drives of the 2011_09_26
// session that ship with tracklet annotations.
var defaultDrives = []int{1, 2, 5, 9, 11, 13, 14, 17, 18, 48, 51, 56, 57, 59, 60, 84, 91, 93}

// Load reads the config file at path and applies environment overrides
// and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if dir := os.Getenv("KITTI_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
}

func setDefaults(cfg *Config) {
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.Date == "" {
		cfg.Data.Date = "2011_09_26"
	}
	if len(cfg.Data.Drives) == 0 {
		cfg.Data.Drives = append([]int(nil), defaultDrives...)
	}
	if cfg.Display.InitialView == "" {
		cfg.Display.InitialView = "Birds Eye"
	}
	if cfg.Display.PointSize <= 0 {
		cfg.Display.PointSize = 1
	}
}
