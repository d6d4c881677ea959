package hotspot

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Point is a single detection in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point is a real coordinate. Fill values such as
// -999 fall outside the valid latitude/longitude range.
func (p Point) Valid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// Set is an ordered sequence of detections.
type Set []Point

// Coords returns the detections as planar points, X holding longitude.
func (s Set) Coords() []orb.Point {
	out := make([]orb.Point, len(s))
	for i, p := range s {
		out[i] = orb.Point{p.Lon, p.Lat}
	}
	return out
}
