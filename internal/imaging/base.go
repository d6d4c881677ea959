package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// BaseMode is how the raster is drawn under the overlays.
type BaseMode int

const (
	// ModeNone leaves the map frame blank.
	ModeNone BaseMode = iota
	// ModeColor draws the raster with its own colours.
	ModeColor
	// ModeGray draws a single band through a black-to-white colormap.
	ModeGray
)

func (m BaseMode) String() string {
	switch m {
	case ModeColor:
		return "color"
	case ModeGray:
		return "gray"
	default:
		return "none"
	}
}

// ModeForBands picks the base mode from a raster's band count.
func ModeForBands(bands int) BaseMode {
	switch {
	case bands > 1:
		return ModeColor
	case bands == 1:
		return ModeGray
	default:
		return ModeNone
	}
}

// DrawBase resamples img into the projection frame and draws it on the
// canvas. The returned mode reports what was drawn.
func DrawBase(c *Canvas, p *Projection, img image.Image, bands int) BaseMode {
	mode := ModeForBands(bands)
	if mode == ModeNone || img == nil || img.Bounds().Empty() {
		return ModeNone
	}

	src := img
	if mode == ModeGray {
		src = StretchGray(img)
	}

	frame := p.Frame()
	resized := imaging.Resize(src, frame.Dx(), frame.Dy(), imaging.Lanczos)
	draw.Draw(c.Img, frame, resized, image.Point{}, draw.Over)

	return mode
}

// floatImage is a band of real-valued samples, such as *geotiff.Float.
type floatImage interface {
	image.Image
	FloatAt(x, y int) float64
}

// StretchGray converts img to 8-bit luminance and stretches its range so the
// darkest sample maps to black and the brightest to white. Real-valued bands
// are stretched over their finite samples and NaN samples come out black. A
// flat image comes out black.
func StretchGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	var sample func(x, y int) float64
	switch g := img.(type) {
	case floatImage:
		sample = g.FloatAt
	case *image.Gray16:
		sample = func(x, y int) float64 { return float64(g.Gray16At(x, y).Y) }
	case *image.Gray:
		sample = func(x, y int) float64 { return float64(g.GrayAt(x, y).Y) }
	default:
		gray := effect.Grayscale(img)
		sample = func(x, y int) float64 { return float64(gray.RGBAAt(x, y).R) }
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := sample(x, y)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if !(hi > lo) {
		return out
	}

	scale := 255 / (hi - lo)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := sample(x, y)
			if math.IsNaN(v) {
				continue
			}
			v = math.Max(0, math.Min(255, math.Floor((v-lo)*scale)))
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: uint8(v)})
		}
	}
	return out
}
