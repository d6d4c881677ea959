package geotiff

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// TIFF tag numbers used by this package.
const (
	tagImageWidth          = 256
	tagImageLength         = 257
	tagBitsPerSample       = 258
	tagCompression         = 259
	tagPhotometric         = 262
	tagStripOffsets        = 273
	tagSamplesPerPixel     = 277
	tagRowsPerStrip        = 278
	tagStripByteCounts     = 279
	tagPredictor           = 317
	tagTileWidth           = 322
	tagTileLength          = 323
	tagTileOffsets         = 324
	tagTileByteCounts      = 325
	tagSampleFormat        = 339
	tagModelPixelScale     = 33550
	tagModelTiepoint       = 33922
	tagModelTransformation = 34264
	tagGeoKeyDirectory     = 34735
	tagGDALNoData          = 42113
)

// TIFF field types.
const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeSByte     = 6
	typeUndefined = 7
	typeSShort    = 8
	typeSLong     = 9
	typeSRational = 10
	typeFloat     = 11
	typeDouble    = 12
)

const (
	ifdEntryLen = 12

	// maxFieldBytes bounds the payload of a single tag so a corrupt count
	// cannot trigger a huge allocation.
	maxFieldBytes = 1 << 24
)

var typeSizes = map[uint16]uint32{
	typeByte:      1,
	typeASCII:     1,
	typeShort:     2,
	typeLong:      4,
	typeRational:  8,
	typeSByte:     1,
	typeUndefined: 1,
	typeSShort:    2,
	typeSLong:     4,
	typeSRational: 8,
	typeFloat:     4,
	typeDouble:    8,
}

// ifdEntry is one raw 12-byte directory entry.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	raw   [4]byte
}

// ifd holds the entries of the first image file directory.
type ifd struct {
	r       io.ReaderAt
	order   binary.ByteOrder
	entries map[uint16]ifdEntry
}

// readIFD parses the TIFF header and the first IFD without reading any
// image data.
func readIFD(r io.ReaderAt) (*ifd, error) {
	var hdr [8]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrUnreadable, err)
	}

	var order binary.ByteOrder
	switch string(hdr[0:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: bad byte order mark", ErrUnreadable)
	}

	switch magic := order.Uint16(hdr[2:4]); magic {
	case 42:
	case 43:
		return nil, fmt.Errorf("%w: BigTIFF is not supported", ErrUnreadable)
	default:
		return nil, fmt.Errorf("%w: bad magic number %d", ErrUnreadable, magic)
	}

	offset := int64(order.Uint32(hdr[4:8]))
	var countBuf [2]byte
	if _, err := r.ReadAt(countBuf[:], offset); err != nil {
		return nil, fmt.Errorf("%w: IFD at %d: %v", ErrUnreadable, offset, err)
	}
	n := int(order.Uint16(countBuf[:]))
	if n == 0 {
		return nil, fmt.Errorf("%w: empty IFD", ErrUnreadable)
	}

	buf := make([]byte, n*ifdEntryLen)
	if _, err := r.ReadAt(buf, offset+2); err != nil {
		return nil, fmt.Errorf("%w: IFD entries: %v", ErrUnreadable, err)
	}

	d := &ifd{r: r, order: order, entries: make(map[uint16]ifdEntry, n)}
	for i := 0; i < n; i++ {
		p := buf[i*ifdEntryLen : (i+1)*ifdEntryLen]
		e := ifdEntry{
			tag:   order.Uint16(p[0:2]),
			typ:   order.Uint16(p[2:4]),
			count: order.Uint32(p[4:8]),
		}
		copy(e.raw[:], p[8:12])
		d.entries[e.tag] = e
	}
	return d, nil
}

func (d *ifd) has(tag uint16) bool {
	_, ok := d.entries[tag]
	return ok
}

// payload returns the raw bytes of an entry, following the offset when the
// value does not fit in the entry itself.
func (d *ifd) payload(e ifdEntry) ([]byte, error) {
	size, ok := typeSizes[e.typ]
	if !ok {
		return nil, fmt.Errorf("%w: tag %d has unknown type %d", ErrUnreadable, e.tag, e.typ)
	}
	total := uint64(size) * uint64(e.count)
	if total > maxFieldBytes {
		return nil, fmt.Errorf("%w: tag %d is too large", ErrUnreadable, e.tag)
	}
	if total <= 4 {
		return e.raw[:total], nil
	}
	buf := make([]byte, total)
	if _, err := d.r.ReadAt(buf, int64(d.order.Uint32(e.raw[:]))); err != nil {
		return nil, fmt.Errorf("%w: tag %d payload: %v", ErrUnreadable, e.tag, err)
	}
	return buf, nil
}

// uints decodes an integer-typed entry.
func (d *ifd) uints(tag uint16) ([]uint64, error) {
	e, ok := d.entries[tag]
	if !ok {
		return nil, nil
	}
	p, err := d.payload(e)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, e.count)
	for i := range out {
		switch e.typ {
		case typeByte, typeUndefined:
			out[i] = uint64(p[i])
		case typeShort:
			out[i] = uint64(d.order.Uint16(p[2*i:]))
		case typeLong:
			out[i] = uint64(d.order.Uint32(p[4*i:]))
		default:
			return nil, fmt.Errorf("%w: tag %d is not an integer field", ErrUnreadable, tag)
		}
	}
	return out, nil
}

// firstUint returns the first value of an integer entry, or def when the
// tag is absent.
func (d *ifd) firstUint(tag uint16, def uint64) (uint64, error) {
	v, err := d.uints(tag)
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return def, nil
	}
	return v[0], nil
}

// floats decodes a DOUBLE or FLOAT entry.
func (d *ifd) floats(tag uint16) ([]float64, error) {
	e, ok := d.entries[tag]
	if !ok {
		return nil, nil
	}
	p, err := d.payload(e)
	if err != nil {
		return nil, err
	}
	out := make([]float64, e.count)
	for i := range out {
		switch e.typ {
		case typeDouble:
			out[i] = math.Float64frombits(d.order.Uint64(p[8*i:]))
		case typeFloat:
			out[i] = float64(math.Float32frombits(d.order.Uint32(p[4*i:])))
		default:
			return nil, fmt.Errorf("%w: tag %d is not a floating point field", ErrUnreadable, tag)
		}
	}
	return out, nil
}

// ascii returns an ASCII entry without its NUL terminator.
func (d *ifd) ascii(tag uint16) (string, error) {
	e, ok := d.entries[tag]
	if !ok {
		return "", nil
	}
	if e.typ != typeASCII {
		return "", fmt.Errorf("%w: tag %d is not an ASCII field", ErrUnreadable, tag)
	}
	p, err := d.payload(e)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(p), "\x00"), nil
}
