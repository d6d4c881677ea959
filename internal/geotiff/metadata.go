package geotiff

import (
	"fmt"
	"math"
	"os"
)

// SampleFormat values.
const (
	SampleFormatUint  = 1
	SampleFormatInt   = 2
	SampleFormatFloat = 3
)

// GTModelTypeGeoKey values.
const (
	ModelTypeProjected  = 1
	ModelTypeGeographic = 2
	ModelTypeGeocentric = 3

	geoKeyModelType = 1024
)

// Extent is the geographic bounding box of a raster in decimal degrees.
type Extent struct {
	LonMin float64 `json:"lon_min"` // Western edge
	LonMax float64 `json:"lon_max"` // Eastern edge
	LatMin float64 `json:"lat_min"` // Southern edge
	LatMax float64 `json:"lat_max"` // Northern edge
}

// Valid reports whether the extent has a positive area.
func (e Extent) Valid() bool {
	return e.LonMax > e.LonMin && e.LatMax > e.LatMin
}

// Metadata describes a raster without its pixel data.
type Metadata struct {
	// Width and Height are the raster dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Bands is the SamplesPerPixel value. 1 is a single-band (IR/grayscale)
	// raster, more than 1 is truecolor.
	Bands int `json:"bands"`

	// BitsPerSample holds one entry per band.
	BitsPerSample []int `json:"bits_per_sample"`

	// Photometric is the PhotometricInterpretation tag value.
	Photometric int `json:"photometric"`

	// SampleFormat is 1 for unsigned integers (the default), 2 for signed
	// integers and 3 for IEEE floating point samples.
	SampleFormat int `json:"sample_format"`

	// ModelType is the GTModelTypeGeoKey value, or 0 when the raster has no
	// GeoKey directory. Rasters without one are taken to be geographic.
	ModelType int `json:"model_type,omitempty"`

	// Georeferenced is false when the raster has no model tags, in which
	// case Extent is the zero value.
	Georeferenced bool   `json:"georeferenced"`
	Extent        Extent `json:"extent"`
}

// ReadMetadata opens path and parses its first IFD. No strip or tile data is
// read, so this is cheap even for very large rasters.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	d, err := readIFD(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	width, err := d.firstUint(tagImageWidth, 0)
	if err != nil {
		return nil, err
	}
	height, err := d.firstUint(tagImageLength, 0)
	if err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: missing image dimensions", ErrUnreadable)
	}

	bands, err := d.firstUint(tagSamplesPerPixel, 1)
	if err != nil {
		return nil, err
	}
	photometric, err := d.firstUint(tagPhotometric, 1)
	if err != nil {
		return nil, err
	}
	bps, err := d.uints(tagBitsPerSample)
	if err != nil {
		return nil, err
	}
	format, err := d.firstUint(tagSampleFormat, SampleFormatUint)
	if err != nil {
		return nil, err
	}
	model, err := modelType(d)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		Width:        int(width),
		Height:       int(height),
		Bands:        int(bands),
		Photometric:  int(photometric),
		SampleFormat: int(format),
		ModelType:    model,
	}
	for _, b := range bps {
		md.BitsPerSample = append(md.BitsPerSample, int(b))
	}

	ext, ok, err := extentFromIFD(d, md.Width, md.Height)
	if err != nil {
		return nil, err
	}
	md.Georeferenced = ok
	md.Extent = ext
	return md, nil
}

// GeoExtent returns the extent when it can be used as longitude and
// latitude: the raster must be georeferenced and its model, if declared,
// must be geographic.
func (m *Metadata) GeoExtent() (Extent, error) {
	if !m.Georeferenced {
		return Extent{}, ErrNotGeoreferenced
	}
	switch m.ModelType {
	case 0, ModelTypeGeographic:
		return m.Extent, nil
	default:
		return Extent{}, fmt.Errorf("%w: model type %d", ErrNotGeographic, m.ModelType)
	}
}

// ReadExtent returns the geographic footprint of the raster at path.
func ReadExtent(path string) (Extent, error) {
	md, err := ReadMetadata(path)
	if err != nil {
		return Extent{}, err
	}
	ext, err := md.GeoExtent()
	if err != nil {
		return Extent{}, fmt.Errorf("%s: %w", path, err)
	}
	return ext, nil
}

// BandCount returns the number of spectral bands of the raster at path.
func BandCount(path string) (int, error) {
	md, err := ReadMetadata(path)
	if err != nil {
		return 0, err
	}
	return md.Bands, nil
}

// modelType reads GTModelTypeGeoKey from the GeoKey directory. The
// directory is a SHORT array: a 4-value header whose last value is the key
// count, then 4 values per key (id, location, count, value). Only keys
// stored inline (location 0) are considered.
func modelType(d *ifd) (int, error) {
	keys, err := d.uints(tagGeoKeyDirectory)
	if err != nil {
		return 0, err
	}
	if len(keys) < 4 {
		return 0, nil
	}
	n := int(keys[3])
	for i := 0; i < n && 4*i+7 < len(keys); i++ {
		k := keys[4+4*i : 8+4*i]
		if k[0] == geoKeyModelType && k[1] == 0 {
			return int(k[3]), nil
		}
	}
	return 0, nil
}

// extentFromIFD computes the extent from the model tags. The boolean is
// false when the IFD has no georeferencing.
func extentFromIFD(d *ifd, width, height int) (Extent, bool, error) {
	if d.has(tagModelTransformation) {
		t, err := d.floats(tagModelTransformation)
		if err != nil {
			return Extent{}, false, err
		}
		if len(t) < 16 {
			return Extent{}, false, fmt.Errorf("%w: ModelTransformation has %d values", ErrUnreadable, len(t))
		}
		return transformExtent(t, float64(width), float64(height)), true, nil
	}

	if !d.has(tagModelPixelScale) || !d.has(tagModelTiepoint) {
		return Extent{}, false, nil
	}
	scale, err := d.floats(tagModelPixelScale)
	if err != nil {
		return Extent{}, false, err
	}
	tie, err := d.floats(tagModelTiepoint)
	if err != nil {
		return Extent{}, false, err
	}
	if len(scale) < 2 || len(tie) < 6 {
		return Extent{}, false, fmt.Errorf("%w: short ModelPixelScale or ModelTiepoint", ErrUnreadable)
	}

	// Tiepoint (I, J, K, X, Y, Z) ties raster position (I, J) to model (X, Y).
	lonMin := tie[3] - tie[0]*scale[0]
	latMax := tie[4] + tie[1]*scale[1]
	return Extent{
		LonMin: lonMin,
		LonMax: lonMin + float64(width)*scale[0],
		LatMin: latMax - float64(height)*scale[1],
		LatMax: latMax,
	}, true, nil
}

// transformExtent applies a 4x4 row-major affine matrix to the raster corners.
func transformExtent(t []float64, width, height float64) Extent {
	ext := Extent{
		LonMin: math.Inf(1), LonMax: math.Inf(-1),
		LatMin: math.Inf(1), LatMax: math.Inf(-1),
	}
	for _, c := range [][2]float64{{0, 0}, {width, 0}, {0, height}, {width, height}} {
		x := t[0]*c[0] + t[1]*c[1] + t[3]
		y := t[4]*c[0] + t[5]*c[1] + t[7]
		ext.LonMin = math.Min(ext.LonMin, x)
		ext.LonMax = math.Max(ext.LonMax, x)
		ext.LatMin = math.Min(ext.LatMin, y)
		ext.LatMax = math.Max(ext.LatMax, y)
	}
	return ext
}
