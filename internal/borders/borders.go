// Package borders loads a country-boundary shapefile and assigns points to
// the country whose polygon contains them.
//
// The dataset is read once; country bounds are indexed in an R-tree so a
// lookup only runs the ring test against the few countries whose bounding
// box contains the point.
package borders

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dhconnelly/rtreego"
	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"golang.org/x/text/encoding/charmap"

	"github.com/ironsheep/hotspot-map/internal/hotspot"
)

// NoCountry is assigned to points outside every polygon.
const NoCountry = "None"

// Defaults for the bundled world borders dataset.
const (
	DefaultPath      = "TM_WORLD_BORDERS-0.3.shp"
	DefaultNameField = "NAME"
)

var (
	// ErrDataset is returned when the shapefile or its attribute table
	// cannot be read.
	ErrDataset = errors.New("borders: unreadable boundary dataset")

	// ErrNameField is returned when the attribute table has no column with
	// the requested name.
	ErrNameField = errors.New("borders: name field not found")
)

// Country is one record of the dataset.
type Country struct {
	Name  string
	Rings []orb.Ring
	Bound orb.Bound
	index int
}

// Bounds implements rtreego.Spatial.
func (c *Country) Bounds() rtreego.Rect {
	return boundRect(c.Bound)
}

// Dataset is an immutable set of countries. It is safe for concurrent use.
type Dataset struct {
	Path      string
	Countries []*Country
	tree      *rtreego.Rtree
}

// Load reads the polygon shapefile at path together with its .dbf table.
// nameField selects the attribute holding the country name.
func Load(path, nameField string) (*Dataset, error) {
	if nameField == "" {
		nameField = DefaultNameField
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open borders: %w", err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".shp") {
		return nil, fmt.Errorf("%w: %s is not a .shp file", ErrDataset, path)
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataset, err)
	}
	defer r.Close()

	field := -1
	for i, f := range r.Fields() {
		if strings.EqualFold(f.String(), nameField) {
			field = i
			break
		}
	}
	if field < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNameField, nameField, path)
	}

	ds := &Dataset{Path: path, tree: rtreego.NewTree(2, 25, 50)}
	records := r.AttributeCount()
	for r.Next() {
		row, shape := r.Shape()
		if row >= records {
			return nil, fmt.Errorf("%w: shape %d has no attribute row", ErrDataset, row)
		}
		c := &Country{
			Name:  decodeName(r.ReadAttribute(row, field)),
			Rings: rings(shape),
			index: len(ds.Countries),
		}
		if len(c.Rings) == 0 {
			ds.Countries = append(ds.Countries, c)
			continue
		}
		c.Bound = c.Rings[0].Bound()
		for _, ring := range c.Rings[1:] {
			c.Bound = c.Bound.Union(ring.Bound())
		}
		ds.Countries = append(ds.Countries, c)
		ds.tree.Insert(c)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataset, err)
	}

	return ds, nil
}

// Classify returns the name of the first country, in dataset order, whose
// polygon contains the point, or NoCountry. Interior rings are holes: a
// point is inside when it falls in an odd number of the country's rings.
func (d *Dataset) Classify(lat, lon float64) string {
	p := hotspot.Point{Lat: lat, Lon: lon}
	if !p.Valid() || d.tree.Size() == 0 {
		return NoCountry
	}

	pt := orb.Point{lon, lat}
	var best *Country
	for _, s := range d.tree.SearchIntersect(rtreego.Point{lon, lat}.ToRect(1e-9)) {
		c := s.(*Country)
		if best != nil && c.index > best.index {
			continue
		}
		if !c.Bound.Contains(pt) {
			continue
		}
		if c.contains(pt) {
			best = c
		}
	}
	if best == nil {
		return NoCountry
	}
	return best.Name
}

// ClassifyAll returns one country name per point, in set order.
func (d *Dataset) ClassifyAll(set hotspot.Set) []string {
	out := make([]string, len(set))
	for i, p := range set {
		out[i] = d.Classify(p.Lat, p.Lon)
	}
	return out
}

// RingsWithin returns every ring whose bounding box intersects b.
func (d *Dataset) RingsWithin(b orb.Bound) []orb.Ring {
	var out []orb.Ring
	for _, s := range d.tree.SearchIntersect(boundRect(b)) {
		for _, ring := range s.(*Country).Rings {
			if ring.Bound().Intersects(b) {
				out = append(out, ring)
			}
		}
	}
	return out
}

func (c *Country) contains(pt orb.Point) bool {
	inside := false
	for _, ring := range c.Rings {
		if planar.RingContains(ring, pt) {
			inside = !inside
		}
	}
	return inside
}

// rings splits a polygon record into its parts. Other shape types carry no
// area and yield nothing.
func rings(s shp.Shape) []orb.Ring {
	poly, ok := s.(*shp.Polygon)
	if !ok || poly.NumPoints == 0 {
		return nil
	}

	out := make([]orb.Ring, 0, len(poly.Parts))
	for i, start := range poly.Parts {
		end := poly.NumPoints
		if i+1 < len(poly.Parts) {
			end = poly.Parts[i+1]
		}
		if start < 0 || end > int32(len(poly.Points)) || start >= end {
			continue
		}
		ring := make(orb.Ring, 0, end-start)
		for _, p := range poly.Points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		out = append(out, ring)
	}
	return out
}

// decodeName strips dbf padding and converts Latin-1 text to UTF-8.
func decodeName(raw string) string {
	name := strings.Trim(raw, "\x00 ")
	if utf8.ValidString(name) {
		return name
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}

func boundRect(b orb.Bound) rtreego.Rect {
	r, err := rtreego.NewRectFromPoints(
		rtreego.Point{b.Min[0], b.Min[1]},
		rtreego.Point{b.Max[0], b.Max[1]},
	)
	if err != nil {
		// Both points are always two-dimensional.
		panic(err)
	}
	return r
}
