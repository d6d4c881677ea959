package geotiff

import (
	"image"
	"image/color"
	"math"
)

// Float is a single band of real-valued samples, as stored by rasters with
// signed integer, floating point or 32-bit unsigned samples. Samples equal
// to the raster's GDAL nodata value are NaN.
//
// Min and Max hold the finite sample range used by At. Call UpdateRange
// after changing Pix.
type Float struct {
	Pix  []float64
	Rect image.Rectangle
	Min  float64
	Max  float64
}

// NewFloat returns a zero-filled band with the given bounds.
func NewFloat(r image.Rectangle) *Float {
	return &Float{Pix: make([]float64, r.Dx()*r.Dy()), Rect: r}
}

func (f *Float) ColorModel() color.Model { return color.Gray16Model }

func (f *Float) Bounds() image.Rectangle { return f.Rect }

// FloatAt returns the sample at (x, y), or NaN outside the bounds.
func (f *Float) FloatAt(x, y int) float64 {
	if !image.Pt(x, y).In(f.Rect) {
		return math.NaN()
	}
	return f.Pix[(y-f.Rect.Min.Y)*f.Rect.Dx()+(x-f.Rect.Min.X)]
}

// SetFloat stores v at (x, y). The range is not updated.
func (f *Float) SetFloat(x, y int, v float64) {
	if !image.Pt(x, y).In(f.Rect) {
		return
	}
	f.Pix[(y-f.Rect.Min.Y)*f.Rect.Dx()+(x-f.Rect.Min.X)] = v
}

// At maps the sample linearly from [Min, Max] onto the 16-bit gray range.
// NaN samples are black.
func (f *Float) At(x, y int) color.Color {
	v := f.FloatAt(x, y)
	if math.IsNaN(v) || f.Max <= f.Min {
		return color.Gray16{}
	}
	t := math.Max(0, math.Min(1, (v-f.Min)/(f.Max-f.Min)))
	return color.Gray16{Y: uint16(math.Round(t * 0xffff))}
}

// UpdateRange recomputes Min and Max from the finite samples. Both are zero
// when no sample is finite.
func (f *Float) UpdateRange() {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.Pix {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	f.Min, f.Max = lo, hi
}
