package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Mesh   MeshConfig   `toml:"mesh"`
	View   ViewConfig   `toml:"view"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// MeshConfig drives the smoothing demo: a cube whose vertices above
// Threshold on the z axis are cut Passes times.
type MeshConfig struct {
	CubeSize  float64    `toml:"cube_size"`
	Passes    int        `toml:"passes"`
	Amount    float64    `toml:"amount"`
	Threshold float64    `toml:"threshold"`
	Color     [3]float64 `toml:"color"`
}

type ViewConfig struct {
	Wireframe     bool    `toml:"wireframe"`
	RotationSpeed float64 `toml:"rotation_speed"`
	Distance      float64 `toml:"distance"`
	FOV           float64 `toml:"fov"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 640, Height: 480, Title: "hemview"},
		Mesh: MeshConfig{
			CubeSize:  2,
			Passes:    3,
			Amount:    0.35,
			Threshold: 0,
			Color:     [3]float64{0.9, 0.45, 0.2},
		},
		View: ViewConfig{
			RotationSpeed: 0.01,
			Distance:      5,
			FOV:           45,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file is not an
// error and yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Mesh.CubeSize <= 0:
		return fmt.Errorf("cube_size %v must be positive", c.Mesh.CubeSize)
	case c.Mesh.Passes < 0:
		return fmt.Errorf("passes %d must not be negative", c.Mesh.Passes)
	case c.Mesh.Amount < 0 || c.Mesh.Amount > 1:
		return fmt.Errorf("amount %v is outside [0, 1]", c.Mesh.Amount)
	case c.View.Distance <= 0:
		return fmt.Errorf("distance %v must be positive", c.View.Distance)
	case c.View.FOV <= 0 || c.View.FOV >= 180:
		return fmt.Errorf("fov %v must be between 0 and 180 degrees", c.View.FOV)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
