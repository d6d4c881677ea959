// Package borderstest writes small polygon shapefiles for tests.
package borderstest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
)

// Country is a named polygon. Each ring is a closed list of lon/lat pairs.
type Country struct {
	Name  string
	Rings [][][2]float64
}

// Box returns a single-ring country covering the given rectangle.
func Box(name string, lonMin, latMin, lonMax, latMax float64) Country {
	return Country{Name: name, Rings: [][][2]float64{rect(lonMin, latMin, lonMax, latMax)}}
}

// BoxWithHole returns a country covering the outer rectangle minus the inner one.
func BoxWithHole(name string, outer, inner [4]float64) Country {
	return Country{Name: name, Rings: [][][2]float64{
		rect(outer[0], outer[1], outer[2], outer[3]),
		rect(inner[0], inner[1], inner[2], inner[3]),
	}}
}

func rect(lonMin, latMin, lonMax, latMax float64) [][2]float64 {
	return [][2]float64{
		{lonMin, latMin}, {lonMin, latMax}, {lonMax, latMax}, {lonMax, latMin}, {lonMin, latMin},
	}
}

// WriteFile writes countries as dir/base.shp with a .dbf table whose name
// column is field. It returns the path of the .shp file.
func WriteFile(tb testing.TB, dir, base, field string, countries ...Country) string {
	tb.Helper()
	stem := filepath.Join(dir, base)

	w, err := shp.Create(stem+".shp", shp.POLYGON)
	if err != nil {
		tb.Fatalf("failed to create shapefile: %v", err)
	}
	if err := w.SetFields([]shp.Field{shp.StringField(field, 40)}); err != nil {
		tb.Fatalf("failed to set fields: %v", err)
	}
	for _, c := range countries {
		parts := make([][]shp.Point, len(c.Rings))
		for i, ring := range c.Rings {
			for _, p := range ring {
				parts[i] = append(parts[i], shp.Point{X: p[0], Y: p[1]})
			}
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		row := w.Write(&poly)
		if err := w.WriteAttribute(int(row), 0, c.Name); err != nil {
			tb.Fatalf("failed to write attribute: %v", err)
		}
	}
	w.Close()

	// The writer names the table "<stem>dbf"; readers expect "<stem>.dbf".
	if err := os.Rename(stem+"dbf", stem+".dbf"); err != nil {
		tb.Fatalf("failed to rename attribute table: %v", err)
	}
	return stem + ".shp"
}
