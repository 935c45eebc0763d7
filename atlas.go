package tiled

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion is a tile's source rectangle within a tileset image, in
// texels. Y is measured from the bottom edge of the image (y grows upward),
// so row 0 of the tileset has the largest Y.
type TextureRegion struct {
	X, Y          int
	Width, Height int
}

// AtlasRegion is a renderable slice of a tileset image.
type AtlasRegion struct {
	TextureRegion

	// Page is the full tileset image.
	Page *ebiten.Image
	// Image is the tile's sub-image of Page, ready for DrawImage.
	Image *ebiten.Image
}

// TileRect computes the source rectangle of tileset-local index idx in an
// image of imgW×imgH texels. It reports false when the tileset has no
// columns, the index is negative, or the rectangle falls outside the image.
func TileRect(ts *Tileset, idx, imgW, imgH int) (TextureRegion, bool) {
	if ts.Columns <= 0 || idx < 0 || ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return TextureRegion{}, false
	}
	col := idx % ts.Columns
	row := idx / ts.Columns
	r := TextureRegion{
		X:      col * ts.TileWidth,
		Y:      imgH - (row+1)*ts.TileHeight,
		Width:  ts.TileWidth,
		Height: ts.TileHeight,
	}
	if r.X < 0 || r.Y < 0 || r.X+r.Width > imgW || r.Y+r.Height > imgH {
		return TextureRegion{}, false
	}
	return r, true
}

// SliceTile returns the atlas region for tileset-local index idx of ts in
// img, or false if the rectangle does not fit the image.
func SliceTile(img *ebiten.Image, ts *Tileset, idx int) (*AtlasRegion, bool) {
	if img == nil || ts == nil {
		return nil, false
	}
	b := img.Bounds()
	r, ok := TileRect(ts, idx, b.Dx(), b.Dy())
	if !ok {
		return nil, false
	}
	// Convert the bottom-up rectangle back to the image's top-down space.
	top := b.Dy() - r.Y - r.Height
	rect := image.Rect(b.Min.X+r.X, b.Min.Y+top, b.Min.X+r.X+r.Width, b.Min.Y+top+r.Height)
	return &AtlasRegion{
		TextureRegion: r,
		Page:          img,
		Image:         img.SubImage(rect).(*ebiten.Image),
	}, true
}
