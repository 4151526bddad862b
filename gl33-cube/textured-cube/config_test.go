package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Texture != "resources/cube_texture.png" {
		t.Errorf("texture = %q", cfg.Texture)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadConfigMissingOptional(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yml"), false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yml"), true); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "width: 1024\ntitle: Spin\nclear_color: [1, 0, 0, 1]\nshow_fps: true\n")

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1024 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 1024x600", cfg.Width, cfg.Height)
	}
	if cfg.Title != "Spin" || !cfg.ShowFPS {
		t.Errorf("got %+v", cfg)
	}
	if cfg.ClearColor != [4]float32{1, 0, 0, 1} {
		t.Errorf("clear_color = %v", cfg.ClearColor)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "width: [oops\n")
	if _, err := loadConfig(path, true); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "width: 1024\nheight: 768\n")

	cfg, err := parseConfig([]string{"-config", path, "-height", "500", "-texture", "a.png", "-log-level", "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1024 || cfg.Height != 500 {
		t.Errorf("size = %dx%d, want 1024x500", cfg.Width, cfg.Height)
	}
	if cfg.Texture != "a.png" || cfg.LogLevel != "debug" {
		t.Errorf("got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
		want   string
	}{
		{"zero width", func(c *config) { c.Width = 0 }, "window size"},
		{"fov too wide", func(c *config) { c.FovDegrees = 180 }, "fov_degrees"},
		{"near past far", func(c *config) { c.Near = 200 }, "near"},
		{"zero near", func(c *config) { c.Near = 0 }, "near"},
		{"bad level", func(c *config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
