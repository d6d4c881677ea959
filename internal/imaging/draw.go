package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/vector"
)

// MarkerStyle configures hotspot dots.
type MarkerStyle struct {
	Color  color.RGBA
	Radius float64 // pixels
}

// LineStyle configures border and graticule lines.
type LineStyle struct {
	Color color.RGBA
	Width float64 // pixels
}

// circleSegments approximates a marker outline.
const circleSegments = 16

// DrawMarkers draws a filled dot for every point. Dots are clipped to the
// map frame and it returns how many centres fell inside it.
func DrawMarkers(c *Canvas, p *Projection, points []orb.Point, style MarkerStyle) int {
	frame := p.Frame()
	if len(points) == 0 || style.Radius <= 0 {
		return 0
	}

	z := vector.NewRasterizer(frame.Dx(), frame.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(frame.Min.X), float64(frame.Min.Y)

	inside := 0
	for _, pt := range points {
		x, y := p.Project(pt.Lon(), pt.Lat())
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		if x >= ox && x <= float64(frame.Max.X) && y >= oy && y <= float64(frame.Max.Y) {
			inside++
		}
		x, y = x-ox, y-oy
		for i := 0; i <= circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			px := float32(x + style.Radius*math.Cos(a))
			py := float32(y + style.Radius*math.Sin(a))
			if i == 0 {
				z.MoveTo(px, py)
			} else {
				z.LineTo(px, py)
			}
		}
		z.ClosePath()
	}

	z.Draw(c.Img, frame, image.NewUniform(style.Color), image.Point{})
	return inside
}

// DrawPolylines strokes each line as a chain of straight segments, clipped
// to the map frame.
func DrawPolylines(c *Canvas, p *Projection, lines []orb.LineString, style LineStyle) {
	frame := p.Frame()
	if len(lines) == 0 || style.Width <= 0 {
		return
	}

	z := vector.NewRasterizer(frame.Dx(), frame.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(frame.Min.X), float64(frame.Min.Y)
	half := style.Width / 2

	for _, ls := range lines {
		for i := 1; i < len(ls); i++ {
			x0, y0 := p.Project(ls[i-1].Lon(), ls[i-1].Lat())
			x1, y1 := p.Project(ls[i].Lon(), ls[i].Lat())
			segment(z, x0-ox, y0-oy, x1-ox, y1-oy, half)
		}
	}

	z.Draw(c.Img, frame, image.NewUniform(style.Color), image.Point{})
}

// segment adds a quad of half-width h around the segment (x0,y0)-(x1,y1).
// Every quad winds the same way so overlapping joints do not cancel.
func segment(z *vector.Rasterizer, x0, y0, x1, y1, h float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return
	}
	nx, ny := -dy/l*h, dx/l*h
	// Extend by h along the segment so consecutive quads overlap at joints.
	ex, ey := dx/l*h, dy/l*h

	z.MoveTo(float32(x0-ex+nx), float32(y0-ey+ny))
	z.LineTo(float32(x1+ex+nx), float32(y1+ey+ny))
	z.LineTo(float32(x1+ex-nx), float32(y1+ey-ny))
	z.LineTo(float32(x0-ex-nx), float32(y0-ey-ny))
	z.ClosePath()
}

// fillRect paints r with col, blending over what is there.
func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// strokeRect draws a one-pixel outline just inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}
