package geotiff

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/tiff"
)

// Decode reads the full pixel array of the raster at path.
//
// The concrete image type follows the raster layout: *image.Gray or
// *image.Gray16 for single-band unsigned rasters, *Float for single-band
// signed, floating point or 32-bit rasters, *image.RGBA/*image.NRGBA (or
// their 64-bit variants) for truecolor rasters, *image.Paletted for palette
// rasters. Any decoder failure is wrapped in ErrPixelData.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	if d, err := readIFD(f); err == nil && d.realValued() {
		img, err := decodeFloat(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPixelData, path, err)
		}
		return img, nil
	}

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPixelData, path, err)
	}
	return img, nil
}

// realValued reports whether the raster goes through decodeFloat. Tag
// errors leave the decision to the TIFF decoder, which reports them.
func (d *ifd) realValued() bool {
	bands, err := d.firstUint(tagSamplesPerPixel, 1)
	if err != nil {
		return false
	}
	format, err := d.firstUint(tagSampleFormat, SampleFormatUint)
	if err != nil {
		return false
	}
	bits, err := d.firstUint(tagBitsPerSample, 1)
	if err != nil {
		return false
	}
	return needsSampleDecoder(bands, format, bits)
}
