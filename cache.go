package tiled

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

type regionKey struct {
	path  string
	index int
}

// Cache holds decoded tileset images keyed by resolved path and atlas
// regions keyed by (path, tileset-local index), so repeated placements of a
// tile share one region. Content is immutable once loaded; concurrent
// writers of the same key may race and the last one wins.
type Cache struct {
	mu      sync.RWMutex
	images  map[string]*ebiten.Image
	regions map[regionKey]*AtlasRegion
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		images:  make(map[string]*ebiten.Image),
		regions: make(map[regionKey]*AtlasRegion),
	}
}

// Image returns the decoded image at path, loading and caching it on first
// use.
func (c *Cache) Image(path string) (*ebiten.Image, error) {
	c.mu.RLock()
	img, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// PutImage stores an already decoded image under path.
func (c *Cache) PutImage(path string, img *ebiten.Image) {
	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
}

// Region returns the atlas region of tileset-local index idx within the
// image cached under path, slicing it on first use.
func (c *Cache) Region(path string, img *ebiten.Image, ts *Tileset, idx int) (*AtlasRegion, bool) {
	key := regionKey{path: path, index: idx}
	c.mu.RLock()
	r, ok := c.regions[key]
	c.mu.RUnlock()
	if ok {
		return r, true
	}

	r, ok = SliceTile(img, ts, idx)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.regions[key] = r
	c.mu.Unlock()
	return r, true
}

// Len returns the number of cached images and regions.
func (c *Cache) Len() (images, regions int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images), len(c.regions)
}

// Reset drops every cached image and region.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.images = make(map[string]*ebiten.Image)
	c.regions = make(map[regionKey]*AtlasRegion)
	c.mu.Unlock()
}

func decodeImageFile(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tiled: open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tiled: decode image %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}
