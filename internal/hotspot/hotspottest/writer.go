// Package hotspottest writes small detection containers for tests.
package hotspottest

import (
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/ironsheep/hotspot-map/internal/hotspot"
)

// Var is one float32 variable to write.
type Var struct {
	Name   string
	Values []float32
}

// WriteVars writes the given variables to dir/name as an HDF5 (netCDF-4)
// file and returns the full path. Each variable gets its own dimension.
func WriteVars(tb testing.TB, dir, name string, vars ...Var) string {
	tb.Helper()
	path := filepath.Join(dir, name)

	w, err := netcdf.OpenWriter(path, netcdf.KindHDF5)
	if err != nil {
		tb.Fatalf("failed to create container: %v", err)
	}
	for _, v := range vars {
		attrs, err := util.NewOrderedMap(nil, nil)
		if err != nil {
			tb.Fatalf("failed to create attributes: %v", err)
		}
		err = w.AddVar(v.Name, api.Variable{
			Values:     v.Values,
			Dimensions: []string{"n_" + v.Name},
			Attributes: attrs,
		})
		if err != nil {
			_ = w.Close()
			tb.Fatalf("failed to add %s: %v", v.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("failed to close container: %v", err)
	}
	return path
}

// WriteSet writes a detection container holding the points of set.
func WriteSet(tb testing.TB, dir, name string, set hotspot.Set) string {
	tb.Helper()
	lats := make([]float32, len(set))
	lons := make([]float32, len(set))
	for i, p := range set {
		lats[i] = float32(p.Lat)
		lons[i] = float32(p.Lon)
	}
	return WriteVars(tb, dir, name,
		Var{Name: hotspot.LatitudeField, Values: lats},
		Var{Name: hotspot.LongitudeField, Values: lons},
	)
}
