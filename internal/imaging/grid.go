package imaging

import (
	"fmt"
	"image/color"
	"math"

	"github.com/paulmach/orb"
)

// DrawGraticule draws meridians and parallels every spacing degrees across
// the map frame and labels them along the left and bottom frame edges.
// It returns the number of lines drawn.
func DrawGraticule(c *Canvas, p *Projection, spacing float64, style LineStyle) int {
	if spacing <= 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return 0
	}
	ext := p.Extent()

	var lines []orb.LineString
	var meridians, parallels []float64
	for lon := math.Ceil(ext.LonMin/spacing) * spacing; lon <= ext.LonMax; lon += spacing {
		lines = append(lines, orb.LineString{{lon, ext.LatMin}, {lon, ext.LatMax}})
		meridians = append(meridians, lon)
	}
	for lat := math.Ceil(ext.LatMin/spacing) * spacing; lat <= ext.LatMax; lat += spacing {
		lines = append(lines, orb.LineString{{ext.LonMin, lat}, {ext.LonMax, lat}})
		parallels = append(parallels, lat)
	}
	DrawPolylines(c, p, lines, style)

	labelFg := color.RGBA{0, 0, 0, 255}
	labelBg := color.RGBA{255, 255, 255, 0}
	frame := p.Frame()
	tr := c.text
	for _, lon := range meridians {
		x, _ := p.Project(lon, ext.LatMin)
		s := formatDegrees(lon, "E", "W")
		tr.drawLabel(c.Img, int(x)-tr.width(s)/2, frame.Max.Y+2, 0, s, labelFg, labelBg)
	}
	for _, lat := range parallels {
		_, y := p.Project(ext.LonMin, lat)
		s := formatDegrees(lat, "N", "S")
		tr.drawLabel(c.Img, frame.Min.X-tr.width(s)-4, int(y)-tr.lineHeight()/2, 0, s, labelFg, labelBg)
	}

	return len(lines)
}

// formatDegrees renders 12.5 as "12.5°E" and -3 as "3°W".
func formatDegrees(v float64, pos, neg string) string {
	hemi := pos
	if v < 0 {
		hemi = neg
		v = -v
	}
	if v == 0 {
		hemi = ""
	}
	return fmt.Sprintf("%s°%s", trimFloat(v), hemi)
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", math.Round(v*1000)/1000)
}
