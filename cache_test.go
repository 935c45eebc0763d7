package tiled

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCache_ImageLoadsOnce(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "tiles.png", 64, 32)

	c := NewCache()
	a, err := c.Image(path)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	b, err := c.Image(path)
	if err != nil {
		t.Fatalf("Image (second): %v", err)
	}
	if a != b {
		t.Error("second load should return the cached image")
	}
	if w, h := a.Bounds().Dx(), a.Bounds().Dy(); w != 64 || h != 32 {
		t.Errorf("size = %dx%d, want 64x32", w, h)
	}
	if imgs, _ := c.Len(); imgs != 1 {
		t.Errorf("cached images = %d, want 1", imgs)
	}
}

func TestCache_ImageErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewCache()
	if _, err := c.Image(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := writeFile(t, dir, "bad.png", "not a png")
	if _, err := c.Image(bad); err == nil {
		t.Error("expected error for undecodable file")
	}
	if imgs, _ := c.Len(); imgs != 0 {
		t.Errorf("failed loads cached %d images", imgs)
	}
}

func TestCache_RegionReused(t *testing.T) {
	c := NewCache()
	page := ebiten.NewImage(64, 32)
	ts := gridTileset(4, 16, 16)

	a, ok := c.Region("tiles.png", page, ts, 2)
	if !ok {
		t.Fatal("Region: not ok")
	}
	b, _ := c.Region("tiles.png", page, ts, 2)
	if a != b {
		t.Error("same (path, index) should share one region")
	}
	other, _ := c.Region("other.png", page, ts, 2)
	if other == a {
		t.Error("different path should get its own region")
	}
	if _, ok := c.Region("tiles.png", page, ts, 99); ok {
		t.Error("out of bounds index should miss")
	}
	if _, regions := c.Len(); regions != 2 {
		t.Errorf("cached regions = %d, want 2", regions)
	}

	c.Reset()
	if imgs, regions := c.Len(); imgs != 0 || regions != 0 {
		t.Errorf("after Reset: %d images, %d regions", imgs, regions)
	}
}

func TestCache_ConcurrentRegions(t *testing.T) {
	c := NewCache()
	page := ebiten.NewImage(64, 64)
	ts := gridTileset(4, 16, 16)
	c.PutImage("p.png", page)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 16; i++ {
				if _, ok := c.Region("p.png", page, ts, i); !ok {
					t.Errorf("index %d: not ok", i)
				}
			}
		}()
	}
	wg.Wait()

	if imgs, regions := c.Len(); imgs != 1 || regions != 16 {
		t.Errorf("cache = %d images, %d regions, want 1, 16", imgs, regions)
	}
}
