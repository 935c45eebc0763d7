package tiled

import (
	"slices"
	"strconv"
	"strings"
)

// Map is a decoded map document. It is built once per load and is not
// modified afterwards; the caller owns it.
type Map struct {
	Source      string // path or identifier the document was read from
	Orientation string // "orthogonal", "isometric", ...
	RenderOrder string // "right-down", ...
	Width       int    // grid width in tiles
	Height      int    // grid height in tiles
	TileWidth   int    // pixels
	TileHeight  int    // pixels
	Infinite    bool

	Properties   Properties
	Tilesets     []TilesetRef // ascending by FirstGID
	Layers       []*Layer
	ObjectGroups []*ObjectGroup
}

// TilesetRef binds a tileset to the first global ID it owns.
type TilesetRef struct {
	FirstGID uint32
	Source   string // external reference as written in the map; empty when embedded
	Tileset  *Tileset
}

// Tileset describes a collection of same-sized tiles backed by one image.
type Tileset struct {
	Name       string
	TileWidth  int
	TileHeight int
	TileCount  int
	Columns    int
	Margin     int
	Spacing    int

	// Image is the image reference as written in the document. It is
	// resolved relative to Dir when the tileset is rendered.
	Image       string
	ImageWidth  int
	ImageHeight int

	// Dir is the directory of the document that declared the tileset.
	Dir string

	Properties     Properties
	TileProperties map[int]Properties
	TileTypes      map[string][]int    // type label -> tileset-local indices
	Animations     map[int][]AnimFrame // tileset-local index -> frames
}

// AnimFrame is one authored frame in a tile animation.
type AnimFrame struct {
	TileID   int // tileset-local index shown for this frame
	Duration int // milliseconds
}

// TilesOfType returns a copy of the tileset-local indices tagged with the
// given type.
func (ts *Tileset) TilesOfType(typ string) []int {
	return slices.Clone(ts.TileTypes[typ])
}

// TypeOf returns the type label of a tileset-local index, or "" if untyped.
func (ts *Tileset) TypeOf(idx int) string {
	for typ, ids := range ts.TileTypes {
		for _, id := range ids {
			if id == idx {
				return typ
			}
		}
	}
	return ""
}

// Layer is a tile layer. Non-infinite maps store exactly one chunk per layer
// spanning the full grid at the origin.
type Layer struct {
	ID         int
	Name       string
	Width      int
	Height     int
	Visible    bool
	Opacity    float64
	OffsetX    float64 // pixels
	OffsetY    float64 // pixels
	Properties Properties
	Chunks     []Chunk
}

// Chunk is a rectangular block of a layer's grid.
type Chunk struct {
	X, Y          int      // origin in tiles, may be negative
	Width, Height int      // tiles
	GIDs          []uint32 // raw GIDs, row-major
}

// Valid reports whether the chunk holds enough GIDs for its extent. The
// check divides rather than multiplies so huge extents cannot wrap.
func (c *Chunk) Valid() bool {
	if c.Width < 0 || c.Height < 0 {
		return false
	}
	return c.Width == 0 || c.Height <= len(c.GIDs)/c.Width
}

// ObjectGroup is a named layer of free-placed objects.
type ObjectGroup struct {
	ID         int
	Name       string
	Visible    bool
	Opacity    float64
	Properties Properties
	Objects    []Object
}

// Object is a free-placed object. Gameplay code interprets it; this package
// only carries it through.
type Object struct {
	ID         int
	Name       string
	Type       string
	Tile       TileGID // zero unless the object references a tile
	X, Y       float64
	Width      float64
	Height     float64
	Rotation   float64
	Visible    bool
	Properties Properties
}

// Properties is a string-keyed property bag. Values keep their document
// string form; the typed getters parse on demand.
type Properties map[string]string

// String returns the value for key, or def if the key is absent.
func (p Properties) String(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Int returns the value for key parsed as an integer. Float values are
// truncated toward zero. Missing or unparseable values return def.
func (p Properties) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return def
}

// Float returns the value for key parsed as a float, or def.
func (p Properties) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Bool returns the value for key parsed as a bool, or def.
func (p Properties) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
