package geotiff

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/tiff/lzw"
)

// TIFF compression schemes understood by the sample decoder.
const (
	compressionNone         = 1
	compressionLZW          = 5
	compressionDeflate      = 8
	compressionDeflateOld   = 32946
	predictorNone           = 1
	maxChunkBytes           = 1 << 30
	maxSamplesPerRasterSide = 1 << 20
)

// needsSampleDecoder reports whether a raster layout is one that
// golang.org/x/image/tiff rejects but decodeFloat handles: a single band of
// signed, floating point or 32-bit unsigned samples.
func needsSampleDecoder(bands, format, bits uint64) bool {
	if bands != 1 {
		return false
	}
	switch format {
	case SampleFormatInt, SampleFormatFloat:
		return true
	case SampleFormatUint:
		return bits == 32
	default:
		return false
	}
}

// sampleReader returns a function converting one stored sample to float64.
func sampleReader(order binary.ByteOrder, format, bits uint64) (func([]byte) float64, error) {
	switch {
	case format == SampleFormatFloat && bits == 32:
		return func(b []byte) float64 { return float64(math.Float32frombits(order.Uint32(b))) }, nil
	case format == SampleFormatFloat && bits == 64:
		return func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }, nil
	case format == SampleFormatInt && bits == 8:
		return func(b []byte) float64 { return float64(int8(b[0])) }, nil
	case format == SampleFormatInt && bits == 16:
		return func(b []byte) float64 { return float64(int16(order.Uint16(b))) }, nil
	case format == SampleFormatInt && bits == 32:
		return func(b []byte) float64 { return float64(int32(order.Uint32(b))) }, nil
	case format == SampleFormatUint && bits == 32:
		return func(b []byte) float64 { return float64(order.Uint32(b)) }, nil
	default:
		return nil, fmt.Errorf("unsupported sample format %d with %d bits", format, bits)
	}
}

// decodeFloat reads the strips or tiles of a single-band raster into a
// Float. Uncompressed, LZW and Deflate chunks are supported, without a
// predictor.
func decodeFloat(d *ifd) (*Float, error) {
	var vals [6]uint64
	for i, t := range []struct {
		tag uint16
		def uint64
	}{
		{tagImageWidth, 0},
		{tagImageLength, 0},
		{tagBitsPerSample, 1},
		{tagSampleFormat, SampleFormatUint},
		{tagCompression, compressionNone},
		{tagPredictor, predictorNone},
	} {
		v, err := d.firstUint(t.tag, t.def)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	width, height, bits, format, compression, predictor := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	if width == 0 || height == 0 || width > maxSamplesPerRasterSide || height > maxSamplesPerRasterSide {
		return nil, fmt.Errorf("bad raster size %dx%d", width, height)
	}
	if predictor != predictorNone {
		return nil, fmt.Errorf("unsupported predictor %d", predictor)
	}
	conv, err := sampleReader(d.order, format, bits)
	if err != nil {
		return nil, err
	}
	nodata, hasNodata, err := d.noData()
	if err != nil {
		return nil, err
	}

	w, h := int(width), int(height)
	size := int(bits / 8)

	// A chunk is a strip or a tile of cw x ch stored samples.
	cw, ch := w, h
	offTag, countTag := uint16(tagStripOffsets), uint16(tagStripByteCounts)
	tiled := d.has(tagTileWidth)
	if tiled {
		tw, err := d.firstUint(tagTileWidth, 0)
		if err != nil {
			return nil, err
		}
		th, err := d.firstUint(tagTileLength, 0)
		if err != nil {
			return nil, err
		}
		if tw == 0 || th == 0 || tw > maxSamplesPerRasterSide || th > maxSamplesPerRasterSide {
			return nil, fmt.Errorf("bad tile size %dx%d", tw, th)
		}
		cw, ch = int(tw), int(th)
		offTag, countTag = tagTileOffsets, tagTileByteCounts
	} else {
		rps, err := d.firstUint(tagRowsPerStrip, height)
		if err != nil {
			return nil, err
		}
		ch = int(min(max(rps, 1), height))
	}

	across := (w + cw - 1) / cw
	down := (h + ch - 1) / ch
	offsets, err := d.uints(offTag)
	if err != nil {
		return nil, err
	}
	counts, err := d.uints(countTag)
	if err != nil {
		return nil, err
	}
	if len(offsets) < across*down || len(counts) < across*down {
		return nil, fmt.Errorf("%d chunks listed, %d needed", min(len(offsets), len(counts)), across*down)
	}

	out := NewFloat(image.Rect(0, 0, w, h))
	for i := 0; i < across*down; i++ {
		x0, y0 := (i%across)*cw, (i/across)*ch
		rows := ch
		if !tiled {
			rows = min(ch, h-y0)
		}
		raw, err := d.chunk(offsets[i], counts[i], compression, cw*rows*size)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		for y := 0; y < rows && y0+y < h; y++ {
			for x := 0; x < cw && x0+x < w; x++ {
				v := conv(raw[(y*cw+x)*size:])
				if hasNodata && v == nodata {
					v = math.NaN()
				}
				out.Pix[(y0+y)*w+x0+x] = v
			}
		}
	}
	out.UpdateRange()
	return out, nil
}

// chunk reads one strip or tile and returns its first want bytes after
// decompression.
func (d *ifd) chunk(offset, count, compression uint64, want int) ([]byte, error) {
	if count > maxChunkBytes || want > maxChunkBytes {
		return nil, fmt.Errorf("chunk of %d bytes is too large", max(count, uint64(want)))
	}
	buf := make([]byte, count)
	if n, err := d.r.ReadAt(buf, int64(offset)); n < len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	var src io.Reader
	switch compression {
	case compressionNone:
		if len(buf) < want {
			return nil, io.ErrUnexpectedEOF
		}
		return buf[:want], nil
	case compressionLZW:
		rc := lzw.NewReader(bytes.NewReader(buf), lzw.MSB, 8)
		defer rc.Close()
		src = rc
	case compressionDeflate, compressionDeflateOld:
		zr, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		src = zr
	default:
		return nil, fmt.Errorf("unsupported compression %d", compression)
	}

	out := make([]byte, want)
	if _, err := io.ReadFull(src, out); err != nil {
		return nil, err
	}
	return out, nil
}

// noData parses the GDAL_NODATA tag. The boolean is false when the tag is
// absent or holds "nan", which needs no substitution.
func (d *ifd) noData() (float64, bool, error) {
	s, err := d.ascii(tagGDALNoData)
	if err != nil || s == "" {
		return 0, false, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, errors.Join(ErrUnreadable, fmt.Errorf("bad GDAL_NODATA %q: %w", s, err))
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}
