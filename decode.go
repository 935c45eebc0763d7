package tiled

import (
	"cmp"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrNotMap is returned when a document's root element is not <map>.
	ErrNotMap = errors.New("root element is not <map>")
	// ErrNotTileset is returned when a tileset document's root is not <tileset>.
	ErrNotTileset = errors.New("root element is not <tileset>")
	// ErrTilesetUnresolved is returned when an external tileset reference
	// names no existing file in any search location.
	ErrTilesetUnresolved = errors.New("external tileset not found")
)

// encodingCSV is the only layer data encoding the decoder understands.
const encodingCSV = "csv"

// --- XML structure types ---

type xmlMap struct {
	XMLName      xml.Name
	Orientation  string           `xml:"orientation,attr"`
	RenderOrder  string           `xml:"renderorder,attr"`
	Width        int              `xml:"width,attr"`
	Height       int              `xml:"height,attr"`
	TileWidth    int              `xml:"tilewidth,attr"`
	TileHeight   int              `xml:"tileheight,attr"`
	Infinite     int              `xml:"infinite,attr"`
	Properties   []xmlProperty    `xml:"properties>property"`
	Tilesets     []xmlTileset     `xml:"tileset"`
	Layers       []xmlLayer       `xml:"layer"`
	ObjectGroups []xmlObjectGroup `xml:"objectgroup"`
}

type xmlTileset struct {
	XMLName    xml.Name
	FirstGID   uint32        `xml:"firstgid,attr"`
	Source     string        `xml:"source,attr"`
	Name       string        `xml:"name,attr"`
	TileWidth  int           `xml:"tilewidth,attr"`
	TileHeight int           `xml:"tileheight,attr"`
	TileCount  int           `xml:"tilecount,attr"`
	Columns    int           `xml:"columns,attr"`
	Margin     int           `xml:"margin,attr"`
	Spacing    int           `xml:"spacing,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Image      xmlImage      `xml:"image"`
	Tiles      []xmlTile     `xml:"tile"`
}

type xmlImage struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

type xmlTile struct {
	ID         int           `xml:"id,attr"`
	Type       string        `xml:"type,attr"`
	Class      string        `xml:"class,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Frames     []xmlFrame    `xml:"animation>frame"`
}

type xmlFrame struct {
	TileID   int `xml:"tileid,attr"`
	Duration int `xml:"duration,attr"`
}

type xmlLayer struct {
	ID         int           `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Width      int           `xml:"width,attr"`
	Height     int           `xml:"height,attr"`
	Visible    string        `xml:"visible,attr"`
	Opacity    string        `xml:"opacity,attr"`
	OffsetX    float64       `xml:"offsetx,attr"`
	OffsetY    float64       `xml:"offsety,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Data       xmlData       `xml:"data"`
}

type xmlData struct {
	Encoding    string     `xml:"encoding,attr"`
	Compression string     `xml:"compression,attr"`
	Text        string     `xml:",chardata"`
	Chunks      []xmlChunk `xml:"chunk"`
}

type xmlChunk struct {
	X      int    `xml:"x,attr"`
	Y      int    `xml:"y,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	Text   string `xml:",chardata"`
}

type xmlObjectGroup struct {
	ID         int           `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Visible    string        `xml:"visible,attr"`
	Opacity    string        `xml:"opacity,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Objects    []xmlObject   `xml:"object"`
}

type xmlObject struct {
	ID         int           `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Class      string        `xml:"class,attr"`
	GID        uint32        `xml:"gid,attr"`
	X          float64       `xml:"x,attr"`
	Y          float64       `xml:"y,attr"`
	Width      float64       `xml:"width,attr"`
	Height     float64       `xml:"height,attr"`
	Rotation   float64       `xml:"rotation,attr"`
	Visible    string        `xml:"visible,attr"`
	Properties []xmlProperty `xml:"properties>property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
	Text  string `xml:",chardata"`
}

// --- Loading ---

// LoadMap reads and decodes the map document at path. External tilesets are
// resolved through the loader's path chain. On error the returned map is nil.
func (l *Loader) LoadMap(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tiled: open map: %w", err)
	}
	defer f.Close()
	return l.DecodeMap(f, path)
}

// DecodeMap decodes a map document from r. source names the document and
// anchors relative tileset references at filepath.Dir(source).
func (l *Loader) DecodeMap(r io.Reader, source string) (*Map, error) {
	var raw xmlMap
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tiled: parse map %q: %w", source, err)
	}
	if raw.XMLName.Local != "map" {
		return nil, fmt.Errorf("tiled: %q: %w (got <%s>)", source, ErrNotMap, raw.XMLName.Local)
	}

	baseDir := filepath.Dir(source)
	m := &Map{
		Source:      source,
		Orientation: raw.Orientation,
		RenderOrder: raw.RenderOrder,
		Width:       raw.Width,
		Height:      raw.Height,
		TileWidth:   raw.TileWidth,
		TileHeight:  raw.TileHeight,
		Infinite:    raw.Infinite != 0,
		Properties:  convertProperties(raw.Properties),
	}

	for i := range raw.Tilesets {
		xt := &raw.Tilesets[i]
		ref := TilesetRef{FirstGID: xt.FirstGID, Source: xt.Source}
		if xt.Source != "" {
			ts, err := l.loadExternalTileset(xt.Source, baseDir)
			if err != nil {
				return nil, err
			}
			ref.Tileset = ts
		} else {
			ref.Tileset = convertTileset(xt, baseDir)
		}
		m.Tilesets = append(m.Tilesets, ref)
	}
	// Resolution scans in ascending FirstGID order regardless of document order.
	slices.SortStableFunc(m.Tilesets, func(a, b TilesetRef) int {
		return cmp.Compare(a.FirstGID, b.FirstGID)
	})

	for i := range raw.Layers {
		m.Layers = append(m.Layers, l.convertLayer(&raw.Layers[i], m))
	}
	for i := range raw.ObjectGroups {
		m.ObjectGroups = append(m.ObjectGroups, convertObjectGroup(&raw.ObjectGroups[i]))
	}
	return m, nil
}

// LoadTileset reads and decodes an external tileset document.
func (l *Loader) LoadTileset(path string) (*Tileset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tiled: open tileset: %w", err)
	}
	defer f.Close()
	return l.DecodeTileset(f, path)
}

// DecodeTileset decodes a tileset document from r. Its image reference is
// resolved against filepath.Dir(source) at render time.
func (l *Loader) DecodeTileset(r io.Reader, source string) (*Tileset, error) {
	var raw xmlTileset
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tiled: parse tileset %q: %w", source, err)
	}
	if raw.XMLName.Local != "tileset" {
		return nil, fmt.Errorf("tiled: %q: %w (got <%s>)", source, ErrNotTileset, raw.XMLName.Local)
	}
	return convertTileset(&raw, filepath.Dir(source)), nil
}

func (l *Loader) loadExternalTileset(ref, baseDir string) (*Tileset, error) {
	path, ok := l.resolver.Resolve(ref, baseDir)
	if !ok {
		l.Logger.Warn().
			Str("ref", ref).
			Strs("tried", l.resolver.Candidates(ref, baseDir)).
			Msg("tiled: external tileset not found")
		return nil, fmt.Errorf("tiled: tileset %q: %w", ref, ErrTilesetUnresolved)
	}
	return l.LoadTileset(path)
}

// --- Conversion ---

func convertTileset(xt *xmlTileset, dir string) *Tileset {
	ts := &Tileset{
		Name:           xt.Name,
		TileWidth:      xt.TileWidth,
		TileHeight:     xt.TileHeight,
		TileCount:      xt.TileCount,
		Columns:        xt.Columns,
		Margin:         xt.Margin,
		Spacing:        xt.Spacing,
		Image:          xt.Image.Source,
		ImageWidth:     xt.Image.Width,
		ImageHeight:    xt.Image.Height,
		Dir:            dir,
		Properties:     convertProperties(xt.Properties),
		TileProperties: make(map[int]Properties),
		TileTypes:      make(map[string][]int),
		Animations:     make(map[int][]AnimFrame),
	}
	// Older documents omit columns; derive it from the image.
	if ts.Columns == 0 && ts.TileWidth > 0 && ts.ImageWidth > 0 {
		ts.Columns = ts.ImageWidth / ts.TileWidth
	}

	for i := range xt.Tiles {
		t := &xt.Tiles[i]
		typ := t.Type
		if typ == "" {
			typ = t.Class
		}
		if typ != "" {
			ts.TileTypes[typ] = append(ts.TileTypes[typ], t.ID)
		}
		if len(t.Properties) > 0 {
			ts.TileProperties[t.ID] = convertProperties(t.Properties)
		}
		if len(t.Frames) > 0 {
			frames := make([]AnimFrame, len(t.Frames))
			for j, f := range t.Frames {
				frames[j] = AnimFrame{TileID: f.TileID, Duration: f.Duration}
			}
			ts.Animations[t.ID] = frames
		}
	}
	return ts
}

func (l *Loader) convertLayer(xl *xmlLayer, m *Map) *Layer {
	layer := &Layer{
		ID:         xl.ID,
		Name:       xl.Name,
		Width:      xl.Width,
		Height:     xl.Height,
		Visible:    parseVisible(xl.Visible),
		Opacity:    parseOpacity(xl.Opacity),
		OffsetX:    xl.OffsetX,
		OffsetY:    xl.OffsetY,
		Properties: convertProperties(xl.Properties),
	}

	data := &xl.Data
	if data.Encoding != encodingCSV || data.Compression != "" {
		if data.Encoding != "" || data.Compression != "" || strings.TrimSpace(data.Text) != "" || len(data.Chunks) > 0 {
			l.Logger.Warn().
				Str("layer", xl.Name).
				Str("encoding", data.Encoding).
				Str("compression", data.Compression).
				Msg("tiled: unsupported layer encoding, layer left empty")
		}
		return layer
	}

	if len(data.Chunks) > 0 {
		for _, xc := range data.Chunks {
			layer.Chunks = append(layer.Chunks, Chunk{
				X:      xc.X,
				Y:      xc.Y,
				Width:  xc.Width,
				Height: xc.Height,
				GIDs:   parseCSV(xc.Text),
			})
		}
		return layer
	}

	w, h := xl.Width, xl.Height
	if w == 0 {
		w = m.Width
	}
	if h == 0 {
		h = m.Height
	}
	layer.Chunks = []Chunk{{Width: w, Height: h, GIDs: parseCSV(data.Text)}}
	return layer
}

func convertObjectGroup(xg *xmlObjectGroup) *ObjectGroup {
	g := &ObjectGroup{
		ID:         xg.ID,
		Name:       xg.Name,
		Visible:    parseVisible(xg.Visible),
		Opacity:    parseOpacity(xg.Opacity),
		Properties: convertProperties(xg.Properties),
		Objects:    make([]Object, 0, len(xg.Objects)),
	}
	for _, xo := range xg.Objects {
		typ := xo.Type
		if typ == "" {
			typ = xo.Class
		}
		g.Objects = append(g.Objects, Object{
			ID:         xo.ID,
			Name:       xo.Name,
			Type:       typ,
			Tile:       DecodeGID(xo.GID),
			X:          xo.X,
			Y:          xo.Y,
			Width:      xo.Width,
			Height:     xo.Height,
			Rotation:   xo.Rotation,
			Visible:    parseVisible(xo.Visible),
			Properties: convertProperties(xo.Properties),
		})
	}
	return g
}

func convertProperties(xp []xmlProperty) Properties {
	props := make(Properties, len(xp))
	for _, p := range xp {
		v := p.Value
		if v == "" && p.Text != "" {
			v = p.Text // multi-line values are stored as element text
		}
		props[p.Name] = v
	}
	return props
}

// parseCSV splits comma/whitespace separated GIDs. Tokens that are not
// unsigned 32-bit integers decode as 0.
func parseCSV(s string) []uint32 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	gids := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			continue
		}
		gids[i] = uint32(v)
	}
	return gids
}

func parseVisible(s string) bool {
	return strings.TrimSpace(s) != "0"
}

func parseOpacity(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return f
}
