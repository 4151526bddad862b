package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.yml"

// config holds everything about the demo that is not hardcoded geometry.
type config struct {
	Width          int        `yaml:"width"`
	Height         int        `yaml:"height"`
	Title          string     `yaml:"title"`
	Texture        string     `yaml:"texture"`
	FovDegrees     float32    `yaml:"fov_degrees"`
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
	CameraDistance float32    `yaml:"camera_distance"`
	ClearColor     [4]float32 `yaml:"clear_color"`
	Resizable      bool       `yaml:"resizable"`
	SwapInterval   int        `yaml:"swap_interval"`
	ShowFPS        bool       `yaml:"show_fps"`
	LogLevel       string     `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Width:          800,
		Height:         600,
		Title:          "Rotating Cube",
		Texture:        "resources/cube_texture.png",
		FovDegrees:     45,
		Near:           0.1,
		Far:            100,
		CameraDistance: 3,
		ClearColor:     [4]float32{0.08, 0.10, 0.13, 1.0},
		Resizable:      true,
		SwapInterval:   1,
		LogLevel:       "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// when path is the default one.
func loadConfig(path string, required bool) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig loads the config file named by -config, then applies any
// other flags that were set explicitly on the command line.
func parseConfig(args []string) (config, error) {
	fs := flag.NewFlagSet("textured-cube", flag.ContinueOnError)

	configPath := fs.String("config", defaultConfigFile, "path to YAML config file")
	width := fs.Int("width", 0, "window width")
	height := fs.Int("height", 0, "window height")
	title := fs.String("title", "", "window title")
	texture := fs.String("texture", "", "texture image path")
	fps := fs.Bool("fps", false, "show frames per second in the title bar")
	vsync := fs.Int("swap-interval", 1, "buffer swap interval, 0 disables vsync")
	level := fs.String("log-level", "", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*configPath, set["config"])
	if err != nil {
		return cfg, err
	}

	if set["width"] {
		cfg.Width = *width
	}
	if set["height"] {
		cfg.Height = *height
	}
	if set["title"] {
		cfg.Title = *title
	}
	if set["texture"] {
		cfg.Texture = *texture
	}
	if set["fps"] {
		cfg.ShowFPS = *fps
	}
	if set["swap-interval"] {
		cfg.SwapInterval = *vsync
	}
	if set["log-level"] {
		cfg.LogLevel = *level
	}

	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	case c.FovDegrees <= 0 || c.FovDegrees >= 180:
		return fmt.Errorf("fov_degrees must be in (0, 180), got %v", c.FovDegrees)
	case c.Near <= 0 || c.Near >= c.Far:
		return fmt.Errorf("need 0 < near < far, got near=%v far=%v", c.Near, c.Far)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
