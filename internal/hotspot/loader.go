package hotspot

import (
	"fmt"
	"os"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Field names of the detection coordinates.
const (
	LatitudeField  = "FP_latitude"
	LongitudeField = "FP_longitude"
)

// Load reads the hotspot coordinates from the container at path.
//
// A missing file is reported with an error wrapping fs.ErrNotExist. Every
// other failure (unknown format, missing variable, unsupported element type,
// latitude/longitude arrays of different lengths) wraps ErrContainer.
func Load(path string) (Set, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open hotspot file: %w", err)
	}

	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContainer, path, err)
	}
	defer g.Close()

	lats, err := readField(g, LatitudeField)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lons, err := readField(g, LongitudeField)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("%w: %s has %d latitudes and %d longitudes",
			ErrContainer, path, len(lats), len(lons))
	}

	set := make(Set, len(lats))
	for i := range lats {
		set[i] = Point{Lat: lats[i], Lon: lons[i]}
	}
	return set, nil
}

// readField returns a numeric variable as float64 values.
func readField(g api.Group, name string) ([]float64, error) {
	vr, err := g.GetVariable(name)
	if err != nil || vr == nil {
		return nil, fmt.Errorf("%w: missing field %s", ErrContainer, name)
	}

	switch v := vr.Values.(type) {
	case []float64:
		return v, nil
	case []float32:
		return widen(v), nil
	case []int32:
		return widen(v), nil
	case []int16:
		return widen(v), nil
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	default:
		return nil, fmt.Errorf("%w: field %s has unsupported type %T", ErrContainer, name, vr.Values)
	}
}

func widen[T float32 | int32 | int16](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
