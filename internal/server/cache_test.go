package server

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ironsheep/hotspot-map/internal/borders/borderstest"
)

func TestBordersCache_Load(t *testing.T) {
	dir := t.TempDir()
	path := borderstest.WriteFile(t, dir, "world", "NAME", borderstest.Box("Alpha", 0, 0, 1, 1))
	cache := NewBordersCache()

	first, err := cache.Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := cache.Load(path, "NAME")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first != second {
		t.Error("second Load should return the cached dataset")
	}
	if cache.loads != 1 || cache.Len() != 1 {
		t.Errorf("got %d loads and %d entries, want 1 and 1", cache.loads, cache.Len())
	}
}

func TestBordersCache_LoadError(t *testing.T) {
	cache := NewBordersCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "nope.shp"), ""); err == nil {
		t.Fatal("expected error, got nil")
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads should not be cached, got %d entries", cache.Len())
	}
}

func TestBordersCache_Concurrent(t *testing.T) {
	path := borderstest.WriteFile(t, t.TempDir(), "world", "NAME", borderstest.Box("Alpha", 0, 0, 1, 1))
	cache := NewBordersCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path, "NAME"); err != nil {
				t.Errorf("Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if cache.loads != 1 {
		t.Errorf("loads: got %d, want 1", cache.loads)
	}
}

func TestBordersCache_Reload(t *testing.T) {
	dir := t.TempDir()
	path := borderstest.WriteFile(t, dir, "world", "NAME", borderstest.Box("Alpha", 0, 0, 1, 1))
	cache := NewBordersCache()

	first, err := cache.Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Same record layout, so only the modification time tells them apart.
	borderstest.WriteFile(t, dir, "world", "NAME", borderstest.Box("Gamma", 0, 0, 1, 1))
	later := time.Now().Add(time.Hour)
	for _, p := range []string{path, strings.TrimSuffix(path, ".shp") + ".dbf"} {
		if err := os.Chtimes(p, later, later); err != nil {
			t.Fatal(err)
		}
	}

	second, err := cache.Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if second == first {
		t.Fatal("changed shapefile should be read again")
	}
	if got := second.Classify(0.5, 0.5); got != "Gamma" {
		t.Errorf("Classify: got %q, want Gamma", got)
	}
	if cache.loads != 2 || cache.Len() != 1 {
		t.Errorf("got %d loads and %d entries, want 2 and 1", cache.loads, cache.Len())
	}

	if _, err := cache.Load(path, ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cache.loads != 2 {
		t.Errorf("unchanged shapefile reloaded: got %d loads, want 2", cache.loads)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(path, ""); err == nil {
		t.Error("removed shapefile: expected error, got nil")
	}
	if cache.Len() != 0 {
		t.Errorf("stale entry kept after failed reload: got %d entries", cache.Len())
	}
}
