package tiled

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// layerOrderStride separates the draw-order keys of adjacent layers, leaving
// room for per-layer offsets.
const layerOrderStride = 10

// Vec2 is a 2D world-space vector. World y grows upward.
type Vec2 struct {
	X, Y float64
}

// PlacedTile is one tile ready for a scene: where it goes, how it is
// oriented, and which region it shows.
type PlacedTile struct {
	Position Vec2 // tile centre, world units
	Order    int  // draw-order key, higher draws later

	Cell Vec2    // absolute cell coordinates in tiles
	GID  TileGID // base id and flip flags

	ScaleX float64 // ±1 after flips and axis swap
	ScaleY float64

	Tileset    *Tileset
	LocalIndex int
	Region     *AtlasRegion

	// Anim is non-nil for animated tiles. Its Region supersedes Region.
	Anim *AnimationClip
}

// CurrentRegion returns the region the tile shows right now.
func (t *PlacedTile) CurrentRegion() *AtlasRegion {
	if t.Anim != nil {
		return t.Anim.Region()
	}
	return t.Region
}

// PlacedLayer groups the placed tiles of one map layer.
type PlacedLayer struct {
	Name    string
	Index   int
	Order   int // draw-order key shared by the layer's tiles
	Visible bool
	Opacity float64
	Offset  Vec2 // world units
	Tiles   []PlacedTile
}

// tilesetImage is a tileset's page for the duration of one Render call.
type tilesetImage struct {
	path string
	img  *ebiten.Image
}

// Render places every non-empty cell of every layer of m. scale is the
// world size of one tile. Cells whose tileset, image or atlas region cannot
// be resolved are skipped with a diagnostic; chunks holding fewer GIDs than
// their extent are skipped whole.
func (l *Loader) Render(m *Map, scale float64) []PlacedLayer {
	pages := make(map[*Tileset]*tilesetImage)
	out := make([]PlacedLayer, 0, len(m.Layers))

	for li, layer := range m.Layers {
		order := li*layerOrderStride + layer.Properties.Int(l.cfg.ZOffsetProperty, 0)
		pl := PlacedLayer{
			Name:    layer.Name,
			Index:   li,
			Order:   order,
			Visible: layer.Visible,
			Opacity: layer.Opacity,
		}
		if m.TileWidth > 0 && m.TileHeight > 0 {
			pl.Offset = Vec2{
				X: layer.OffsetX / float64(m.TileWidth) * scale,
				Y: -layer.OffsetY / float64(m.TileHeight) * scale,
			}
		}

		for ci := range layer.Chunks {
			chunk := &layer.Chunks[ci]
			if !chunk.Valid() {
				l.Logger.Warn().
					Str("layer", layer.Name).
					Int("chunk_x", chunk.X).
					Int("chunk_y", chunk.Y).
					Int("width", chunk.Width).
					Int("height", chunk.Height).
					Int("gids", len(chunk.GIDs)).
					Msg("tiled: short chunk skipped")
				continue
			}
			pl.Tiles = l.placeChunk(pl.Tiles, m, layer, chunk, order, scale, pages)
		}
		out = append(out, pl)
	}
	return out
}

func (l *Loader) placeChunk(dst []PlacedTile, m *Map, layer *Layer, chunk *Chunk, order int, scale float64, pages map[*Tileset]*tilesetImage) []PlacedTile {
	for row := 0; row < chunk.Height; row++ {
		for col := 0; col < chunk.Width; col++ {
			gid := DecodeGID(chunk.GIDs[row*chunk.Width+col])
			if gid.Empty() {
				continue
			}

			ref := m.ResolveTileset(gid.ID)
			if ref == nil || ref.Tileset == nil {
				l.Logger.Warn().Str("layer", layer.Name).Uint32("gid", gid.ID).
					Msg("tiled: no tileset owns gid")
				continue
			}
			idx, ok := ref.LocalIndex(gid.ID)
			if !ok {
				continue
			}
			ts := ref.Tileset

			page := l.tilesetPage(ts, pages)
			if page == nil {
				continue
			}
			region, ok := l.cache.Region(page.path, page.img, ts, idx)
			if !ok {
				l.Logger.Warn().Str("layer", layer.Name).Str("tileset", ts.Name).
					Int("index", idx).Msg("tiled: tile outside tileset image")
				continue
			}

			cx := float64(chunk.X + col)
			cy := float64(chunk.Y + row)
			pos := Vec2{
				X: (cx + 0.5) * scale,
				Y: -(cy + 0.5) * scale,
			}
			if l.cfg.pixelSnap() && ts.TileWidth > 0 {
				px := scale / float64(ts.TileWidth)
				pos.X = snap(pos.X, px)
				pos.Y = snap(pos.Y, px)
			}

			sx, sy := gid.orientation()
			dst = append(dst, PlacedTile{
				Position:   pos,
				Order:      order,
				Cell:       Vec2{X: cx, Y: cy},
				GID:        gid,
				ScaleX:     sx,
				ScaleY:     sy,
				Tileset:    ts,
				LocalIndex: idx,
				Region:     region,
				Anim:       l.buildClip(ts, idx, page),
			})
		}
	}
	return dst
}

// tilesetPage resolves and decodes ts's image once per Render call. A nil
// result is remembered so a missing image is reported once.
func (l *Loader) tilesetPage(ts *Tileset, pages map[*Tileset]*tilesetImage) *tilesetImage {
	if p, ok := pages[ts]; ok {
		return p
	}
	var page *tilesetImage
	path, ok := l.resolver.Resolve(ts.Image, ts.Dir)
	if !ok {
		l.Logger.Warn().Str("tileset", ts.Name).Str("image", ts.Image).
			Strs("tried", l.resolver.Candidates(ts.Image, ts.Dir)).
			Msg("tiled: tileset image not found, its tiles are skipped")
	} else if img, err := l.cache.Image(path); err != nil {
		l.Logger.Warn().Err(err).Str("tileset", ts.Name).Str("path", path).
			Msg("tiled: tileset image unreadable, its tiles are skipped")
	} else {
		page = &tilesetImage{path: path, img: img}
	}
	pages[ts] = page
	return page
}

// buildClip resolves the animation for idx, dropping frames whose region
// cannot be sliced. It returns nil for static tiles and for clips left
// without frames.
func (l *Loader) buildClip(ts *Tileset, idx int, page *tilesetImage) *AnimationClip {
	anim, ok := ts.Animations[idx]
	if !ok {
		return nil
	}
	frames := make([]ClipFrame, 0, len(anim))
	for _, f := range anim {
		r, ok := l.cache.Region(page.path, page.img, ts, f.TileID)
		if !ok {
			l.Logger.Warn().Str("tileset", ts.Name).Int("index", idx).Int("frame_tile", f.TileID).
				Msg("tiled: animation frame dropped")
			continue
		}
		frames = append(frames, ClipFrame{
			TileID:   f.TileID,
			Region:   r,
			Duration: float64(f.Duration) / 1000,
		})
	}
	return NewAnimationClip(frames)
}

func snap(v, step float64) float64 {
	return math.Round(v/step) * step
}
