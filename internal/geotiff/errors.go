package geotiff

import "errors"

var (
	// ErrUnreadable is returned when the file is not a classic TIFF or its
	// first IFD cannot be parsed.
	ErrUnreadable = errors.New("geotiff: unreadable raster")

	// ErrNotGeoreferenced is returned when the raster carries neither
	// ModelPixelScale/ModelTiepoint nor ModelTransformation tags.
	ErrNotGeoreferenced = errors.New("geotiff: raster is not georeferenced")

	// ErrNotGeographic is returned when the GeoKey directory places the
	// raster in a projected or geocentric model, so its extent is not in
	// degrees.
	ErrNotGeographic = errors.New("geotiff: raster is not in geographic coordinates")

	// ErrPixelData is returned when the pixel array cannot be decoded.
	ErrPixelData = errors.New("geotiff: malformed pixel data")
)
