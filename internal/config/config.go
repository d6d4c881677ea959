// Package config holds the rendering settings and loads them from YAML.
//
// Settings come from Default, overlaid by the first config file found (see
// FindConfigFile), overlaid by command-line flags. Only keys present in the
// file replace defaults.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ironsheep/hotspot-map/internal/borders"
	"github.com/ironsheep/hotspot-map/internal/imaging"
)

// AppName is used for the XDG config directory.
const AppName = "hotspot-map"

// Defaults.
const (
	DefaultDPI          = 100.0
	DefaultSizeInches   = 24.0
	DefaultMarkerColor  = "#FF0000"
	DefaultMarkerRadius = 3.0
	DefaultBorderColor  = "#000000"
	DefaultBorderWidth  = 1.0
	DefaultFontSize     = 10.0
	DefaultSuffix       = "hotspot"

	// MaxCanvasSide bounds the canvas edge in pixels.
	MaxCanvasSide = 20000
)

// Config is the full set of rendering settings.
type Config struct {
	Borders BordersConfig `yaml:"borders"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Style   StyleConfig   `yaml:"style"`
	Output  OutputConfig  `yaml:"output"`
}

// BordersConfig locates the country boundary shapefile.
type BordersConfig struct {
	Path      string `yaml:"path"`
	NameField string `yaml:"name_field"`
}

// CanvasConfig sizes the output image.
type CanvasConfig struct {
	DPI        float64 `yaml:"dpi"`
	SizeInches float64 `yaml:"size_inches"`
}

// StyleConfig controls overlay appearance. Graticule is the grid spacing in
// degrees; zero disables the grid.
type StyleConfig struct {
	MarkerColor  string  `yaml:"marker_color"`
	MarkerRadius float64 `yaml:"marker_radius"`
	BorderColor  string  `yaml:"border_color"`
	BorderWidth  float64 `yaml:"border_width"`
	FontSize     float64 `yaml:"font_size"`
	Graticule    float64 `yaml:"graticule"`
}

// OutputConfig controls output naming and the optional Markdown report.
type OutputConfig struct {
	Suffix string `yaml:"suffix"`
	Report bool   `yaml:"report"`
}

// Default returns the built-in settings: a 24 inch, 100 dpi canvas with red
// markers and black borders read from the world borders shapefile in the
// working directory.
func Default() *Config {
	return &Config{
		Borders: BordersConfig{
			Path:      borders.DefaultPath,
			NameField: borders.DefaultNameField,
		},
		Canvas: CanvasConfig{
			DPI:        DefaultDPI,
			SizeInches: DefaultSizeInches,
		},
		Style: StyleConfig{
			MarkerColor:  DefaultMarkerColor,
			MarkerRadius: DefaultMarkerRadius,
			BorderColor:  DefaultBorderColor,
			BorderWidth:  DefaultBorderWidth,
			FontSize:     DefaultFontSize,
		},
		Output: OutputConfig{
			Suffix: DefaultSuffix,
		},
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.DPI <= 0:
		return ErrInvalidDPI
	case c.Canvas.SizeInches <= 0:
		return ErrInvalidSize
	case c.Canvas.DPI*c.Canvas.SizeInches > MaxCanvasSide:
		return ErrCanvasTooLarge
	case c.Style.MarkerRadius <= 0:
		return ErrInvalidMarkerRadius
	case c.Style.BorderWidth < 0:
		return ErrInvalidBorderWidth
	case c.Style.FontSize <= 0:
		return ErrInvalidFontSize
	case c.Style.Graticule < 0:
		return ErrInvalidGraticule
	case c.Output.Suffix == "":
		return ErrEmptySuffix
	}

	colors := []struct{ key, value string }{
		{"style.marker_color", c.Style.MarkerColor},
		{"style.border_color", c.Style.BorderColor},
	}
	for _, col := range colors {
		if _, err := imaging.ParseColor(col.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidColor, col.key, err)
		}
	}
	return nil
}

// XDGConfigFile returns $XDG_CONFIG_HOME/hotspot-map/config.yaml.
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}
