package tiled

// GID flag bits (Tiled TMX convention).
const (
	gidFlipH    uint32 = 1 << 31 // horizontal flip
	gidFlipV    uint32 = 1 << 30 // vertical flip
	gidFlipD    uint32 = 1 << 29 // diagonal flip
	gidFlagMask uint32 = gidFlipH | gidFlipV | gidFlipD
)

// TileGID is a global tile identifier with its flip bits unpacked. Raw GIDs
// are decoded once at the edge of the renderer; nothing past that point
// handles the packed form.
type TileGID struct {
	ID       uint32 // global tile ID with the flag bits cleared; 0 means empty
	FlipH    bool   // bit 31
	FlipV    bool   // bit 30
	SwapAxes bool   // bit 29, diagonal flip
}

// DecodeGID splits a raw 32-bit GID into its base ID and flip flags.
func DecodeGID(raw uint32) TileGID {
	return TileGID{
		ID:       raw &^ gidFlagMask,
		FlipH:    raw&gidFlipH != 0,
		FlipV:    raw&gidFlipV != 0,
		SwapAxes: raw&gidFlipD != 0,
	}
}

// Encode packs the GID back into the raw document form.
func (g TileGID) Encode() uint32 {
	raw := g.ID &^ gidFlagMask
	if g.FlipH {
		raw |= gidFlipH
	}
	if g.FlipV {
		raw |= gidFlipV
	}
	if g.SwapAxes {
		raw |= gidFlipD
	}
	return raw
}

// Empty reports whether the GID refers to no tile.
func (g TileGID) Empty() bool {
	return g.ID == 0
}

// orientation returns the x/y scale for the flip flags. The diagonal bit is
// applied as an axis swap after the H/V negation, which matches the
// renderer's established output rather than a 90° rotation.
func (g TileGID) orientation() (sx, sy float64) {
	sx, sy = 1, 1
	if g.FlipH {
		sx = -sx
	}
	if g.FlipV {
		sy = -sy
	}
	if g.SwapAxes {
		sx, sy = sy, sx
	}
	return sx, sy
}
