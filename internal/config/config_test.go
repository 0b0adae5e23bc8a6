package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/geometry"
	"github.com/olivier-w/barscope/internal/peaks"
	"github.com/olivier-w/barscope/internal/sampler"
	"github.com/olivier-w/barscope/internal/scale"
	"github.com/olivier-w/barscope/internal/theme"
)

const sample = `
spectrum:
  frequency_scale: bark
  band_mode: "1/12"
  weighting_filter: A
  min_freq: 30
peaks:
  peak_hold_time: 1s
  peak_decay_mode: fade
geometry:
  channel_layout: dual-horizontal
  radial: true
color:
  theme: sunset
  modifiers:
    reverse: true
themes:
  sunset:
    colorStops:
      - color: "#ff5f6d"
      - color: "hsl(40, 100%, 60%)"
        level: 0.5
    peakColor: "#ffffff"
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfigMatchesEngineDefaults(t *testing.T) {
	got, err := DefaultConfig().Engine()
	if err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	if want := analyzer.DefaultConfig(); got != want {
		t.Fatalf("Engine() = %+v, want %+v", got, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", sample)
	c := DefaultConfig()
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if c.Path != path {
		t.Fatalf("Path = %q, want %q", c.Path, path)
	}

	cfg, err := c.Engine()
	if err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	if cfg.Spectrum.Scale != scale.Bark || cfg.Spectrum.Mode != bands.Mode(12) {
		t.Fatalf("spectrum = %+v", cfg.Spectrum)
	}
	if cfg.Spectrum.Weighting != sampler.FilterA {
		t.Fatalf("Weighting = %v, want A", cfg.Spectrum.Weighting)
	}
	if cfg.Spectrum.MinFreq != 30 || cfg.Spectrum.MaxFreq != 22000 {
		t.Fatalf("range = %v-%v, want 30-22000", cfg.Spectrum.MinFreq, cfg.Spectrum.MaxFreq)
	}
	if cfg.Peaks.Hold != time.Second || cfg.Peaks.Mode != peaks.Fade {
		t.Fatalf("peaks = %+v", cfg.Peaks)
	}
	if cfg.Geometry.Layout != geometry.DualHorizontal || !cfg.Geometry.Radial {
		t.Fatalf("geometry = %+v", cfg.Geometry)
	}
	if cfg.Color.Themes[0] != "sunset" || !cfg.Color.Modifiers[0].Reverse {
		t.Fatalf("color = %+v", cfg.Color)
	}
	// Untouched sections keep their defaults.
	if cfg.Levels != analyzer.DefaultConfig().Levels {
		t.Fatalf("levels = %+v", cfg.Levels)
	}
}

func TestEngineReportsBadNames(t *testing.T) {
	c := DefaultConfig()
	c.Spectrum.Scale = "cubic"
	c.Color.Mode = "sparkle"
	if _, err := c.Engine(); err == nil {
		t.Fatal("Engine() succeeded with bad names")
	}
}

func TestRegisterThemes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", sample+`
  broken:
    colorStops:
      - color: "#000000"
`)
	c := DefaultConfig()
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	reg := theme.NewRegistry()
	if err := c.RegisterThemes(reg); err == nil {
		t.Fatal("RegisterThemes() succeeded with a one-stop theme")
	}
	sunset, err := reg.Get("sunset")
	if err != nil {
		t.Fatalf("Get(sunset) error = %v", err)
	}
	if len(sunset.Stops) != 2 || sunset.Peak == nil {
		t.Fatalf("sunset = %+v", sunset)
	}
	if reg.Has("broken") {
		t.Fatal("broken theme registered")
	}
}

func TestTryLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	c := DefaultConfig()
	if err := c.TryLoadDefault(); err != nil {
		t.Fatalf("TryLoadDefault() without file error = %v", err)
	}
	if c.Path != "" {
		t.Fatalf("Path = %q, want empty", c.Path)
	}

	writeFile(t, dir, filepath.Join("barscope", "config.yaml"), "bars:\n  led_bars: true\n")
	if err := c.TryLoadDefault(); err != nil {
		t.Fatalf("TryLoadDefault() error = %v", err)
	}
	if !c.Bars.Leds {
		t.Fatal("led_bars not loaded")
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "spectrum: [")
	if err := DefaultConfig().LoadFromFile(path); err == nil {
		t.Fatal("LoadFromFile() succeeded on invalid YAML")
	}
}
