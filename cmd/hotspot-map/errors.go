package main

import (
	"errors"
	"io/fs"

	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
)

// ErrUsage is returned for a wrong argument count or an unparseable flag.
var ErrUsage = errors.New("bad usage")

// Messages printed for each failure category.
const (
	msgUsage     = `bad parameter, type "-h" or "--help" for help`
	msgNoFile    = "no such files or wrong file, check again"
	msgContainer = "bad HDF file, check again"
	msgPixels    = "bad GeoTiff file, check again"
)

// message returns the single line printed to stderr for err.
func message(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return msgUsage
	case errors.Is(err, hotspot.ErrContainer):
		return msgContainer
	case errors.Is(err, geotiff.ErrPixelData):
		return msgPixels
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, geotiff.ErrUnreadable),
		errors.Is(err, geotiff.ErrNotGeoreferenced),
		errors.Is(err, geotiff.ErrNotGeographic):
		return msgNoFile
	default:
		return "error: " + err.Error()
	}
}
