package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Figure margins, as fractions of the canvas, that bound the plotting axes.
const (
	AxesLeft   = 0.125
	AxesRight  = 0.9
	AxesBottom = 0.11
	AxesTop    = 0.88
)

// Canvas is a white RGBA drawing surface with a fixed axes rectangle.
//
// The surface is sizeInches*dpi pixels on each side. Axes is the subplot
// area inside the figure margins; the map frame and the tables are laid out
// relative to it.
type Canvas struct {
	Img  *image.RGBA
	DPI  float64
	Axes image.Rectangle

	text *textRenderer
}

// NewCanvas returns a square canvas of sizeInches at dpi, filled white.
// fontSize is the table and label text size in points.
func NewCanvas(sizeInches, dpi, fontSize float64) (*Canvas, error) {
	if sizeInches <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("invalid canvas size %gin at %g dpi", sizeInches, dpi)
	}
	side := int(math.Round(sizeInches * dpi))
	if side < 16 || side > 20000 {
		return nil, fmt.Errorf("canvas side %dpx out of range", side)
	}

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	fs := float64(side)
	axes := image.Rect(
		int(math.Round(AxesLeft*fs)),
		int(math.Round((1-AxesTop)*fs)),
		int(math.Round(AxesRight*fs)),
		int(math.Round((1-AxesBottom)*fs)),
	)

	text, err := newTextRenderer(fontSize, dpi)
	if err != nil {
		return nil, err
	}

	return &Canvas{Img: img, DPI: dpi, Axes: axes, text: text}, nil
}

// Bounds returns the full canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.Img.Bounds()
}
