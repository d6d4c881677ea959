package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/paulmach/orb"

	"github.com/ironsheep/hotspot-map/internal/geotiff"
)

// Projection maps longitude/latitude to canvas pixels with the plate carrée
// (equirectangular) projection. One degree has the same pixel length on both
// axes, so the map frame is the largest rectangle of the extent's aspect
// ratio that fits the axes, centred in it.
type Projection struct {
	ext   geotiff.Extent
	frame image.Rectangle
	scale float64 // pixels per degree
	x0    float64
	y0    float64
}

// NewProjection fits ext into axes.
func NewProjection(ext geotiff.Extent, axes image.Rectangle) (*Projection, error) {
	if !ext.Valid() {
		return nil, fmt.Errorf("invalid map extent %+v", ext)
	}
	if axes.Empty() {
		return nil, fmt.Errorf("empty axes rectangle")
	}

	dLon := ext.LonMax - ext.LonMin
	dLat := ext.LatMax - ext.LatMin
	aw, ah := float64(axes.Dx()), float64(axes.Dy())
	scale := math.Min(aw/dLon, ah/dLat)

	fw, fh := dLon*scale, dLat*scale
	x0 := float64(axes.Min.X) + (aw-fw)/2
	y0 := float64(axes.Min.Y) + (ah-fh)/2

	frame := image.Rect(
		int(math.Round(x0)),
		int(math.Round(y0)),
		int(math.Round(x0+fw)),
		int(math.Round(y0+fh)),
	)
	if frame.Empty() {
		return nil, fmt.Errorf("map frame for %+v collapses to nothing", ext)
	}

	return &Projection{ext: ext, frame: frame, scale: scale, x0: x0, y0: y0}, nil
}

// Project returns the canvas position of (lon, lat). Positions outside the
// extent land outside the frame.
func (p *Projection) Project(lon, lat float64) (x, y float64) {
	return p.x0 + (lon-p.ext.LonMin)*p.scale, p.y0 + (p.ext.LatMax-lat)*p.scale
}

// Unproject is the inverse of Project.
func (p *Projection) Unproject(x, y float64) (lon, lat float64) {
	return p.ext.LonMin + (x-p.x0)/p.scale, p.ext.LatMax - (y-p.y0)/p.scale
}

// Frame returns the pixel rectangle covered by the extent.
func (p *Projection) Frame() image.Rectangle {
	return p.frame
}

// Extent returns the projected geographic extent.
func (p *Projection) Extent() geotiff.Extent {
	return p.ext
}

// Bound returns the extent as a planar bound, X holding longitude.
func (p *Projection) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{p.ext.LonMin, p.ext.LatMin},
		Max: orb.Point{p.ext.LonMax, p.ext.LatMax},
	}
}
