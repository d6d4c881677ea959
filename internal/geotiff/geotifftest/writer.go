// Package geotifftest writes small GeoTIFF files for tests.
package geotifftest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ironsheep/hotspot-map/internal/geotiff"
)

type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

type settings struct {
	tileW, tileH int
	modelType    uint16
	nodata       string
	int16        bool
	deflate      bool
}

// Option changes how Encode lays out the raster.
type Option func(*settings)

// Tiles stores the pixels in tiles of w x h instead of a single strip.
func Tiles(w, h int) Option {
	return func(s *settings) { s.tileW, s.tileH = w, h }
}

// ModelType writes a GeoKey directory declaring GTModelTypeGeoKey = t.
func ModelType(t uint16) Option {
	return func(s *settings) { s.modelType = t }
}

// NoData writes the GDAL_NODATA tag.
func NoData(v string) Option {
	return func(s *settings) { s.nodata = v }
}

// Int16 stores a *geotiff.Float as rounded signed 16-bit samples instead of
// float32.
func Int16() Option {
	return func(s *settings) { s.int16 = true }
}

// Deflate compresses every strip or tile with zlib.
func Deflate() Option {
	return func(s *settings) { s.deflate = true }
}

// Encode writes img as a little-endian TIFF, uncompressed in a single strip
// unless options say otherwise.
//
// *image.Gray sources produce a single-band 8-bit raster, *geotiff.Float
// sources a single-band float32 (or int16) raster, and any other source a
// 3-band RGB raster. When ext is non-nil the ModelPixelScale and
// ModelTiepoint tags are written so the raster covers exactly ext.
func Encode(w io.Writer, img image.Image, ext *geotiff.Extent, opts ...Option) error {
	var set settings
	for _, opt := range opts {
		opt(&set)
	}

	le := binary.LittleEndian
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	bands, bits, format, photometric := 3, 8, 1, uint16(2)
	var pixel func(dst []byte, x, y int)
	switch src := img.(type) {
	case *image.Gray:
		bands, photometric = 1, 1
		pixel = func(dst []byte, x, y int) { dst[0] = src.GrayAt(x, y).Y }
	case *geotiff.Float:
		bands, photometric = 1, 1
		if set.int16 {
			bits, format = 16, 2
			pixel = func(dst []byte, x, y int) {
				v := math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(src.FloatAt(x, y))))
				le.PutUint16(dst, uint16(int16(v)))
			}
		} else {
			bits, format = 32, 3
			pixel = func(dst []byte, x, y int) {
				le.PutUint32(dst, math.Float32bits(float32(src.FloatAt(x, y))))
			}
		}
	default:
		pixel = func(dst []byte, x, y int) {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst[0], dst[1], dst[2] = c.R, c.G, c.B
		}
	}
	pixSize := bands * bits / 8

	cw, ch := width, height
	tiled := set.tileW > 0 && set.tileH > 0
	if tiled {
		cw, ch = set.tileW, set.tileH
	}
	across := (width + cw - 1) / cw
	down := (height + ch - 1) / ch

	const pixOffset = 8
	var pix bytes.Buffer
	var offsets, counts []uint32
	for ty := 0; ty < down; ty++ {
		for tx := 0; tx < across; tx++ {
			chunk := make([]byte, cw*ch*pixSize)
			for y := 0; y < ch; y++ {
				for x := 0; x < cw; x++ {
					px, py := tx*cw+x, ty*ch+y
					if px >= width || py >= height {
						continue
					}
					pixel(chunk[(y*cw+x)*pixSize:], b.Min.X+px, b.Min.Y+py)
				}
			}
			if set.deflate {
				var z bytes.Buffer
				zw := zlib.NewWriter(&z)
				if _, err := zw.Write(chunk); err != nil {
					return err
				}
				if err := zw.Close(); err != nil {
					return err
				}
				chunk = z.Bytes()
			}
			offsets = append(offsets, uint32(pixOffset+pix.Len()))
			counts = append(counts, uint32(len(chunk)))
			pix.Write(chunk)
		}
	}
	if pix.Len()%2 == 1 {
		pix.WriteByte(0)
	}

	short := func(v ...uint16) []byte {
		out := make([]byte, 2*len(v))
		for i, x := range v {
			le.PutUint16(out[2*i:], x)
		}
		return out
	}
	long := func(v ...uint32) []byte {
		out := make([]byte, 4*len(v))
		for i, x := range v {
			le.PutUint32(out[4*i:], x)
		}
		return out
	}
	double := func(v ...float64) []byte {
		out := make([]byte, 8*len(v))
		for i, x := range v {
			le.PutUint64(out[8*i:], math.Float64bits(x))
		}
		return out
	}

	bps := make([]uint16, bands)
	formats := make([]uint16, bands)
	for i := range bps {
		bps[i] = uint16(bits)
		formats[i] = uint16(format)
	}
	compression := uint16(1)
	if set.deflate {
		compression = 8
	}

	n := uint32(len(offsets))
	entries := []entry{
		{256, 4, 1, long(uint32(width))},
		{257, 4, 1, long(uint32(height))},
		{258, 3, uint32(bands), short(bps...)},
		{259, 3, 1, short(compression)},
		{262, 3, 1, short(photometric)},
		{277, 3, 1, short(uint16(bands))},
		{284, 3, 1, short(1)},
	}
	if tiled {
		entries = append(entries,
			entry{322, 4, 1, long(uint32(cw))},
			entry{323, 4, 1, long(uint32(ch))},
			entry{324, 4, n, long(offsets...)},
			entry{325, 4, n, long(counts...)},
		)
	} else {
		entries = append(entries,
			entry{273, 4, n, long(offsets...)},
			entry{278, 4, 1, long(uint32(height))},
			entry{279, 4, n, long(counts...)},
		)
	}
	if format != 1 {
		entries = append(entries, entry{339, 3, uint32(bands), short(formats...)})
	}
	if ext != nil {
		sx := (ext.LonMax - ext.LonMin) / float64(width)
		sy := (ext.LatMax - ext.LatMin) / float64(height)
		entries = append(entries,
			entry{33550, 12, 3, double(sx, sy, 0)},
			entry{33922, 12, 6, double(0, 0, 0, ext.LonMin, ext.LatMax, 0)},
		)
	}
	if set.modelType != 0 {
		// Version 1.1.0 with a single key.
		entries = append(entries, entry{34735, 3, 8, short(1, 1, 0, 1, 1024, 0, 1, set.modelType)})
	}
	if set.nodata != "" {
		entries = append(entries, entry{42113, 2, uint32(len(set.nodata) + 1), append([]byte(set.nodata), 0)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	ifdOffset := uint32(pixOffset + pix.Len())
	extraOffset := ifdOffset + 2 + uint32(len(entries))*12 + 4

	var dir, extra bytes.Buffer
	dir.Write(short(uint16(len(entries))))
	for _, e := range entries {
		dir.Write(short(e.tag, e.typ))
		dir.Write(long(e.count))
		if len(e.data) <= 4 {
			field := make([]byte, 4)
			copy(field, e.data)
			dir.Write(field)
			continue
		}
		dir.Write(long(extraOffset + uint32(extra.Len())))
		extra.Write(e.data)
		if extra.Len()%2 == 1 {
			extra.WriteByte(0)
		}
	}
	dir.Write(long(0))

	var out bytes.Buffer
	out.WriteString("II")
	out.Write(short(42))
	out.Write(long(ifdOffset))
	out.Write(pix.Bytes())
	out.Write(dir.Bytes())
	out.Write(extra.Bytes())

	_, err := w.Write(out.Bytes())
	return err
}

// WriteFile encodes img into dir/name and returns the full path.
func WriteFile(tb testing.TB, dir, name string, img image.Image, ext *geotiff.Extent, opts ...Option) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("failed to create raster: %v", err)
	}
	defer f.Close()
	if err := Encode(f, img, ext, opts...); err != nil {
		tb.Fatalf("failed to encode raster: %v", err)
	}
	return path
}

// Gray returns a single-band image filled with a horizontal ramp from lo to hi.
func Gray(width, height int, lo, hi uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := int(lo)
			if width > 1 {
				v += (int(hi) - int(lo)) * x / (width - 1)
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// Ramp returns a real-valued band with a horizontal ramp from lo to hi.
func Ramp(width, height int, lo, hi float64) *geotiff.Float {
	f := geotiff.NewFloat(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := lo
			if width > 1 {
				v += (hi - lo) * float64(x) / float64(width-1)
			}
			f.SetFloat(x, y, v)
		}
	}
	f.UpdateRange()
	return f
}

// Solid returns an RGB image filled with c.
func Solid(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// CorruptPixels rewrites the StripOffsets tag of a file produced by WriteFile
// so it points past the end of the file. The header and IFD stay valid.
func CorruptPixels(tb testing.TB, path string) {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("failed to read raster: %v", err)
	}

	le := binary.LittleEndian
	ifd := int(le.Uint32(data[4:8]))
	n := int(le.Uint16(data[ifd : ifd+2]))
	patched := false
	for i := 0; i < n; i++ {
		e := ifd + 2 + i*12
		if le.Uint16(data[e:e+2]) == 273 {
			le.PutUint32(data[e+8:e+12], uint32(len(data)+1024))
			patched = true
		}
	}
	if !patched {
		tb.Fatal("StripOffsets tag not found")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("failed to write raster: %v", err)
	}
}
