package config

import "errors"

// Validation errors returned by Config.Validate. Callers match them with
// errors.Is; the messages are shown to the user as-is.
var (
	// ErrConfigNotFound is returned when an explicitly named config file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidDPI is returned when canvas.dpi is not positive.
	ErrInvalidDPI = errors.New("invalid canvas dpi: must be positive")

	// ErrInvalidSize is returned when canvas.size_inches is not positive.
	ErrInvalidSize = errors.New("invalid canvas size: must be positive")

	// ErrCanvasTooLarge is returned when size_inches*dpi exceeds MaxCanvasSide.
	ErrCanvasTooLarge = errors.New("invalid canvas: size_inches * dpi is too large")

	// ErrInvalidColor is returned when a style colour cannot be parsed.
	ErrInvalidColor = errors.New("invalid style color")

	// ErrInvalidMarkerRadius is returned when style.marker_radius is not positive.
	ErrInvalidMarkerRadius = errors.New("invalid marker radius: must be positive")

	// ErrInvalidBorderWidth is returned when style.border_width is negative.
	ErrInvalidBorderWidth = errors.New("invalid border width: must be non-negative")

	// ErrInvalidFontSize is returned when style.font_size is not positive.
	ErrInvalidFontSize = errors.New("invalid font size: must be positive")

	// ErrInvalidGraticule is returned when style.graticule is negative.
	ErrInvalidGraticule = errors.New("invalid graticule spacing: must be non-negative")

	// ErrEmptySuffix is returned when output.suffix is empty.
	ErrEmptySuffix = errors.New("invalid output suffix: must not be empty")
)
