package server

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ironsheep/hotspot-map/internal/borders"
)

// BordersCache keeps loaded boundary datasets for the lifetime of the server.
//
// Datasets are keyed by shapefile path and name field. A world borders file
// takes far longer to parse than a single map takes to classify, so every
// tool call after the first reuses the same *borders.Dataset. Datasets are
// immutable, which makes sharing them across concurrent calls safe.
//
// Each entry remembers the size and modification time of the .shp and .dbf
// files it was read from. When either changes the dataset is read again.
type BordersCache struct {
	mu       sync.RWMutex
	datasets map[cacheKey]cacheEntry
	loads    int
}

type cacheKey struct {
	path      string
	nameField string
}

type cacheEntry struct {
	ds    *borders.Dataset
	stamp fileStamp
}

// fileStamp identifies one version of a shapefile on disk.
type fileStamp struct {
	shpSize, dbfSize int64
	shpMod, dbfMod   time.Time
}

// stampOf returns the stamp of the shapefile at path. ok is false when
// either file cannot be stat'ed.
func stampOf(path string) (fileStamp, bool) {
	shp, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, false
	}
	dbf, err := os.Stat(strings.TrimSuffix(path, ".shp") + ".dbf")
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{
		shpSize: shp.Size(), dbfSize: dbf.Size(),
		shpMod: shp.ModTime(), dbfMod: dbf.ModTime(),
	}, true
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.shpSize == o.shpSize && s.dbfSize == o.dbfSize &&
		s.shpMod.Equal(o.shpMod) && s.dbfMod.Equal(o.dbfMod)
}

// NewBordersCache creates an empty cache.
func NewBordersCache() *BordersCache {
	return &BordersCache{
		datasets: make(map[cacheKey]cacheEntry),
	}
}

// Load returns the cached dataset for (path, nameField), reading the
// shapefile on first use or after it changed on disk. Failed loads are not
// cached, and a failed reload drops the stale entry.
func (c *BordersCache) Load(path, nameField string) (*borders.Dataset, error) {
	if nameField == "" {
		nameField = borders.DefaultNameField
	}
	key := cacheKey{path: path, nameField: nameField}
	stamp, ok := stampOf(path)

	c.mu.RLock()
	if e, hit := c.datasets[key]; hit && ok && e.stamp.equal(stamp) {
		c.mu.RUnlock()
		return e.ds, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock.
	if e, hit := c.datasets[key]; hit && ok && e.stamp.equal(stamp) {
		return e.ds, nil
	}
	delete(c.datasets, key)

	ds, err := borders.Load(path, nameField)
	if err != nil {
		return nil, err
	}
	if ok {
		c.datasets[key] = cacheEntry{ds: ds, stamp: stamp}
	}
	c.loads++
	return ds, nil
}

// Len returns the number of cached datasets.
func (c *BordersCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.datasets)
}
