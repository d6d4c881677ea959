// Package report writes the Markdown companion of a hotspot map: the input
// files, the raster footprint and the same tables drawn on the image.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/geo/s2"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
)

// earthRadiusKm converts steradians to square kilometres.
const earthRadiusKm = 6371.0088

// Report is everything the Markdown document shows.
type Report struct {
	ImagePath   string
	HotspotPath string
	OutputPath  string
	Mode        string
	Extent      geotiff.Extent
	Summary     hotspot.Summary
	Rows        []hotspot.Row // nil when per-point locations were not requested
}

// Footprint returns the centre of the raster extent and its area in km².
func Footprint(ext geotiff.Extent) (center s2.LatLng, areaKm2 float64) {
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(ext.LatMin, ext.LonMin)).
		AddPoint(s2.LatLngFromDegrees(ext.LatMax, ext.LonMax))
	return r.Center(), r.Area() * earthRadiusKm * earthRadiusKm
}

// WriteMarkdown renders r to w.
func WriteMarkdown(w io.Writer, r Report) error {
	p := message.NewPrinter(language.English)
	md := markdown.NewMarkdown(w)

	md.H1("Hotspot Report")
	md.PlainText("")

	center, area := Footprint(r.Extent)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Image", markdown.Code(filepath.Base(r.ImagePath))},
			{"Hotspot file", markdown.Code(filepath.Base(r.HotspotPath))},
			{"Map", markdown.Code(filepath.Base(r.OutputPath))},
			{"Base image", r.Mode},
			{"Longitude", fmt.Sprintf("%.4f to %.4f", r.Extent.LonMin, r.Extent.LonMax)},
			{"Latitude", fmt.Sprintf("%.4f to %.4f", r.Extent.LatMin, r.Extent.LatMax)},
			{"Centre", fmt.Sprintf("%.4f, %.4f", center.Lat.Degrees(), center.Lng.Degrees())},
			{"Footprint", p.Sprintf("%.0f km²", area)},
			{"Hotspots", p.Sprintf("%d", r.Summary.Total)},
		},
	})
	md.PlainText("")

	md.H2("Hotspots by Country")
	md.PlainText("")
	if r.Summary.Total == 0 {
		md.Note("No hotspots were detected in this file.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(r.Summary.Counts))
		chart := piechart.NewPieChart(io.Discard, piechart.WithTitle("Hotspots by Country"), piechart.WithShowData(true))
		for _, c := range r.Summary.Counts {
			rows = append(rows, []string{c.Country, p.Sprintf("%d", c.Count)})
			chart.LabelAndIntValue(c.Country, uint64(c.Count))
		}
		md.Table(markdown.TableSet{
			Header:    []string{"Country", "Number"},
			Rows:      rows,
			Alignment: []markdown.TableAlignment{markdown.AlignLeft, markdown.AlignRight},
		})
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	if r.Rows != nil {
		md.H2("Hotspot Locations")
		md.PlainText("")
		cells := make([][]string, len(r.Rows))
		for i, row := range r.Rows {
			cells[i] = row.Cells()
		}
		md.Table(markdown.TableSet{Header: hotspot.RowHeaders, Rows: cells})
		md.PlainText("")
	}

	return md.Build()
}

// WriteFile writes the report to path.
func WriteFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteMarkdown(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
