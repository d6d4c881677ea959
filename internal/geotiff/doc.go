// Package geotiff reads the georeferencing metadata and pixel data of
// GeoTIFF rasters.
//
// Metadata is read straight from the first image file directory (IFD) with
// ReadAt calls, so the extent and band count of a large raster are available
// without touching its strips or tiles. Pixel data is decoded separately with
// golang.org/x/image/tiff, except for single-band signed, floating point and
// 32-bit rasters, whose strips or tiles are read into a Float band here.
//
// # Extent
//
// The geographic footprint is derived from one of two tag sets:
//   - ModelPixelScale (33550) together with ModelTiepoint (33922)
//   - ModelTransformation (34264)
//
// Pixels are treated as areas, so the extent covers the outer edges of the
// corner pixels. A raster with neither tag set is not georeferenced and
// ReadExtent returns ErrNotGeoreferenced.
//
// # Error Handling
//
// Errors are classified with sentinels so callers can map them with errors.Is:
//   - fs.ErrNotExist: the file does not exist
//   - ErrUnreadable: the TIFF header or IFD is corrupt, or the file is BigTIFF
//   - ErrNotGeoreferenced: the IFD carries no georeferencing tags
//   - ErrNotGeographic: the GeoKey directory declares a projected or
//     geocentric model, so the extent is not in degrees
//   - ErrPixelData: the metadata parsed but the pixel data could not be decoded
package geotiff
