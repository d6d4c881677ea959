package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
)

func sampleReport() Report {
	return Report{
		ImagePath:   "/data/storm.tif",
		HotspotPath: "/data/VNP14IMG.nc",
		OutputPath:  "/data/storm-hotspot.png",
		Mode:        "color",
		Extent:      geotiff.Extent{LonMin: 100, LonMax: 110, LatMin: -5, LatMax: 5},
		Summary: hotspot.Summary{
			Counts: []hotspot.CountryCount{{Country: "Indonesia", Count: 1200}, {Country: "None", Count: 3}},
			Total:  1203,
		},
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Hotspot Report",
		"`storm.tif`",
		"`storm-hotspot.png`",
		"| Indonesia | 1,200 |",
		"| None | 3 |",
		"| Hotspots | 1,203 |",
		"```mermaid",
		"0.0000, 105.0000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Hotspot Locations") {
		t.Error("locations section should be omitted without rows")
	}
}

func TestWriteMarkdown_WithRows(t *testing.T) {
	r := sampleReport()
	r.Rows = []hotspot.Row{{Lat: 12.35, Lon: 100, Country: "Thailand"}}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, r); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "| latitude | longitude | country |") {
		t.Errorf("locations header missing:\n%s", out)
	}
	if !strings.Contains(out, "| 12.35 | 100.00 | Thailand |") {
		t.Errorf("location row missing:\n%s", out)
	}
}

func TestWriteMarkdown_NoHotspots(t *testing.T) {
	r := sampleReport()
	r.Summary = hotspot.Summary{}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, r); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	if strings.Contains(buf.String(), "```mermaid") {
		t.Error("empty summary should not produce a chart")
	}
}

func TestFootprint(t *testing.T) {
	center, area := Footprint(geotiff.Extent{LonMin: 0, LonMax: 1, LatMin: 0, LatMax: 1})

	if math.Abs(center.Lat.Degrees()-0.5) > 1e-9 || math.Abs(center.Lng.Degrees()-0.5) > 1e-9 {
		t.Errorf("centre: got %v, want (0.5, 0.5)", center)
	}
	// One degree square at the equator is about 12,364 km².
	if area < 12300 || area > 12400 {
		t.Errorf("area: got %.0f km², want about 12364", area)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storm-hotspot.md")
	if err := WriteFile(path, sampleReport()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("# Hotspot Report")) {
		t.Errorf("unexpected file start: %q", data[:min(len(data), 40)])
	}
}
