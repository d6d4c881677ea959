package hotspot_test

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ironsheep/hotspot-map/internal/hotspot"
	"github.com/ironsheep/hotspot-map/internal/hotspot/hotspottest"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	want := hotspot.Set{
		{Lat: 1.5, Lon: 101.25},
		{Lat: -2.75, Lon: 104},
		{Lat: 1.5, Lon: 101.25},
	}
	path := hotspottest.WriteSet(t, dir, "fires.nc", want)

	got, err := hotspot.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].Lat-want[i].Lat) > 1e-6 || math.Abs(got[i].Lon-want[i].Lon) > 1e-6 {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := hotspot.Load(filepath.Join(t.TempDir(), "missing.nc"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error: got %v, want fs.ErrNotExist", err)
	}
	if errors.Is(err, hotspot.ErrContainer) {
		t.Error("missing file should not be reported as a bad container")
	}
}

func TestLoad_BadContainer(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.hdf")
	if err := os.WriteFile(garbage, []byte("definitely not a container"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"garbage bytes", garbage},
		{"missing longitude", hotspottest.WriteVars(t, dir, "lat-only.nc",
			hotspottest.Var{Name: hotspot.LatitudeField, Values: []float32{1, 2}},
		)},
		{"unequal lengths", hotspottest.WriteVars(t, dir, "ragged.nc",
			hotspottest.Var{Name: hotspot.LatitudeField, Values: []float32{1, 2, 3}},
			hotspottest.Var{Name: hotspot.LongitudeField, Values: []float32{4, 5}},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hotspot.Load(tt.path)
			if !errors.Is(err, hotspot.ErrContainer) {
				t.Errorf("error: got %v, want ErrContainer", err)
			}
		})
	}
}

func TestPoint_Valid(t *testing.T) {
	tests := []struct {
		p    hotspot.Point
		want bool
	}{
		{hotspot.Point{Lat: 0, Lon: 0}, true},
		{hotspot.Point{Lat: -90, Lon: 180}, true},
		{hotspot.Point{Lat: -999, Lon: -999}, false},
		{hotspot.Point{Lat: 10, Lon: 200}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%+v.Valid(): got %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.3456, "12.35"},
		{-12.3456, "-12.35"},
		{0.125, "0.12"},
		{0.375, "0.38"},
		{-0.125, "-0.12"},
		{2.675, "2.67"},
		{1.005, "1.00"},
		{100, "100.00"},
	}
	for _, tt := range tests {
		if got := hotspot.FormatCoord(tt.in); got != tt.want {
			t.Errorf("FormatCoord(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{12.3456, 12.35},
		{0.125, 0.12},
		{0.625, 0.62},
		{-3.14159, -3.14},
		{101.999, 102},
	}
	for _, tt := range tests {
		if got := hotspot.Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRows(t *testing.T) {
	set := hotspot.Set{{Lat: 12.3456, Lon: 100.001}, {Lat: -3.14159, Lon: 101.999}}

	rows, err := hotspot.Rows(set, []string{"Thailand", "None"})
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	want := [][]string{
		{"12.35", "100.00", "Thailand"},
		{"-3.14", "102.00", "None"},
	}
	for i, r := range rows {
		if got := r.Cells(); !reflect.DeepEqual(got, want[i]) {
			t.Errorf("row %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestRows_LengthMismatch(t *testing.T) {
	_, err := hotspot.Rows(hotspot.Set{{Lat: 1, Lon: 1}}, nil)
	if !errors.Is(err, hotspot.ErrLengthMismatch) {
		t.Errorf("error: got %v, want ErrLengthMismatch", err)
	}
}

func TestSummarize(t *testing.T) {
	countries := []string{"Laos", "Thailand", "None", "Thailand", "Laos", "Thailand", "Cambodia"}

	s := hotspot.Summarize(countries)

	want := []hotspot.CountryCount{
		{Country: "Thailand", Count: 3},
		{Country: "Laos", Count: 2},
		{Country: "Cambodia", Count: 1},
		{Country: "None", Count: 1},
	}
	if !reflect.DeepEqual(s.Counts, want) {
		t.Errorf("Counts: got %v, want %v", s.Counts, want)
	}

	sum := 0
	for _, c := range s.Counts {
		sum += c.Count
	}
	if sum != len(countries) || s.Total != len(countries) {
		t.Errorf("totals: got sum %d and Total %d, want %d", sum, s.Total, len(countries))
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := hotspot.Summarize(nil)
	if len(s.Counts) != 0 || s.Total != 0 {
		t.Errorf("got %+v, want empty summary", s)
	}
}
