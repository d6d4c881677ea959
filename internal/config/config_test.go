package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Canvas.DPI != 100 || cfg.Canvas.SizeInches != 24 {
		t.Errorf("canvas: got %v dpi x %v in, want 100 x 24", cfg.Canvas.DPI, cfg.Canvas.SizeInches)
	}
	if cfg.Borders.Path != "TM_WORLD_BORDERS-0.3.shp" {
		t.Errorf("Borders.Path: got %q, want TM_WORLD_BORDERS-0.3.shp", cfg.Borders.Path)
	}
	if cfg.Borders.NameField != "NAME" {
		t.Errorf("Borders.NameField: got %q, want NAME", cfg.Borders.NameField)
	}
	if cfg.Output.Suffix != "hotspot" || cfg.Output.Report {
		t.Errorf("Output: got %+v, want suffix hotspot without report", cfg.Output)
	}
	if cfg.Style.Graticule != 0 {
		t.Errorf("Graticule: got %v, want 0 (off)", cfg.Style.Graticule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: got %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero dpi", func(c *Config) { c.Canvas.DPI = 0 }, ErrInvalidDPI},
		{"negative size", func(c *Config) { c.Canvas.SizeInches = -1 }, ErrInvalidSize},
		{"huge canvas", func(c *Config) { c.Canvas.DPI = 1000 }, ErrCanvasTooLarge},
		{"zero radius", func(c *Config) { c.Style.MarkerRadius = 0 }, ErrInvalidMarkerRadius},
		{"negative border", func(c *Config) { c.Style.BorderWidth = -0.5 }, ErrInvalidBorderWidth},
		{"zero font", func(c *Config) { c.Style.FontSize = 0 }, ErrInvalidFontSize},
		{"negative graticule", func(c *Config) { c.Style.Graticule = -10 }, ErrInvalidGraticule},
		{"empty suffix", func(c *Config) { c.Output.Suffix = "" }, ErrEmptySuffix},
		{"bad marker color", func(c *Config) { c.Style.MarkerColor = "#XYZXYZ" }, ErrInvalidColor},
		{"bad border color", func(c *Config) { c.Style.BorderColor = "" }, ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate: got %v, want %v", err, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cfg.yaml", `
borders:
  path: /data/borders.shp
canvas:
  dpi: 50
style:
  marker_color: "#00FF00"
  graticule: 5
output:
  report: true
`)

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Borders.Path != "/data/borders.shp" {
		t.Errorf("Borders.Path: got %q, want /data/borders.shp", cfg.Borders.Path)
	}
	if cfg.Borders.NameField != "NAME" {
		t.Errorf("Borders.NameField should keep its default, got %q", cfg.Borders.NameField)
	}
	if cfg.Canvas.DPI != 50 || cfg.Canvas.SizeInches != 24 {
		t.Errorf("canvas: got %+v, want dpi 50 with default size", cfg.Canvas)
	}
	if cfg.Style.MarkerColor != "#00FF00" || cfg.Style.Graticule != 5 {
		t.Errorf("style: got %+v", cfg.Style)
	}
	if !cfg.Output.Report || cfg.Output.Suffix != "hotspot" {
		t.Errorf("output: got %+v", cfg.Output)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := LoadFile(Default(), filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file: got %v, want ErrConfigNotFound", err)
	}

	unknown := writeConfig(t, dir, "unknown.yaml", "canvas:\n  dpj: 10\n")
	if err := LoadFile(Default(), unknown); err == nil {
		t.Error("unknown key: expected error, got nil")
	}

	malformed := writeConfig(t, dir, "bad.yaml", "canvas: [1, 2\n")
	if err := LoadFile(Default(), malformed); err == nil {
		t.Error("malformed yaml: expected error, got nil")
	}

	empty := writeConfig(t, dir, "empty.yaml", "")
	if err := LoadFile(Default(), empty); err != nil {
		t.Errorf("empty file: got %v, want nil", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	work := t.TempDir()
	xdgHome := t.TempDir()
	t.Chdir(work)
	t.Setenv("XDG_CONFIG_HOME", xdgHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path, err := FindConfigFile("")
	if err != nil || path != "" {
		t.Errorf("nothing present: got (%q, %v), want empty", path, err)
	}

	xdgPath := writeConfig(t, xdgHome, filepath.Join(AppName, "config.yaml"), "canvas:\n  dpi: 72\n")
	path, _ = FindConfigFile("")
	if path != xdgPath {
		t.Errorf("xdg: got %q, want %q", path, xdgPath)
	}

	writeConfig(t, work, DefaultConfigFile, "canvas:\n  dpi: 300\n")
	path, _ = FindConfigFile("")
	if path != DefaultConfigFile {
		t.Errorf("working directory: got %q, want %q", path, DefaultConfigFile)
	}

	explicit := writeConfig(t, t.TempDir(), "explicit.yaml", "")
	path, _ = FindConfigFile(explicit)
	if path != explicit {
		t.Errorf("explicit: got %q, want %q", path, explicit)
	}

	if _, err := FindConfigFile(filepath.Join(work, "nope.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("explicit missing: got %v, want ErrConfigNotFound", err)
	}

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if used != DefaultConfigFile || cfg.Canvas.DPI != 300 {
		t.Errorf("Load: got %q with dpi %v, want %q with dpi 300", used, cfg.Canvas.DPI, DefaultConfigFile)
	}
}
