package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors accepts the matplotlib single-letter codes and their long names.
var namedColors = map[string]string{
	"r": "#FF0000", "red": "#FF0000",
	"g": "#008000", "green": "#008000",
	"b": "#0000FF", "blue": "#0000FF",
	"c": "#00BFBF", "cyan": "#00FFFF",
	"m": "#BF00BF", "magenta": "#FF00FF",
	"y": "#BFBF00", "yellow": "#FFFF00",
	"k": "#000000", "black": "#000000",
	"w": "#FFFFFF", "white": "#FFFFFF",
	"gray": "#808080", "grey": "#808080",
	"orange": "#FFA500",
}

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or a colour name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if s[0] != '#' {
		s = "#" + s
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()

	// color.RGBA is alpha-premultiplied.
	return color.RGBA{
		R: uint8(uint16(r) * uint16(alpha) / 255),
		G: uint8(uint16(g) * uint16(alpha) / 255),
		B: uint8(uint16(b) * uint16(alpha) / 255),
		A: alpha,
	}, nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
