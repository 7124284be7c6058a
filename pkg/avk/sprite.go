package avk

// Transform packs the per-draw palette selection and mirroring:
//
//	bit 7..6  reserved (scale, blend)
//	bit 5     flip X
//	bit 4     flip Y
//	bit 3..0  palette id
type Transform uint8

const (
	FlipY       Transform = 0b0001_0000
	FlipX       Transform = 0b0010_0000
	PaletteMask Transform = 0b0000_1111
)

// WithPalette builds a transform selecting palette id and the given flips.
func WithPalette(id uint8, flips Transform) Transform {
	return Transform(id)&PaletteMask | flips&(FlipX|FlipY)
}

func (t Transform) Palette() uint8 { return uint8(t & PaletteMask) }
func (t Transform) FlipX() bool    { return t&FlipX != 0 }
func (t Transform) FlipY() bool    { return t&FlipY != 0 }

// SetFlipX returns t with flip X set or cleared.
func (t Transform) SetFlipX(on bool) Transform {
	if on {
		return t | FlipX
	}
	return t &^ FlipX
}

// SetFlipY returns t with flip Y set or cleared.
func (t Transform) SetFlipY(on bool) Transform {
	if on {
		return t | FlipY
	}
	return t &^ FlipY
}

// SetPalette returns t with the palette id replaced.
func (t Transform) SetPalette(id uint8) Transform {
	return t&^PaletteMask | Transform(id)&PaletteMask
}

// Sprite is one entry of the foreground list. Later entries draw over
// earlier ones. Positions may lie outside the canvas.
type Sprite struct {
	Image     uint8
	Transform Transform
	X, Y      int16
}

// Tile is one cell of the background grid.
type Tile struct {
	Image     uint8
	Transform Transform
}

// SpriteIndex addresses a foreground slot.
type SpriteIndex uint8

// Valid reports whether i names an existing slot.
func (i SpriteIndex) Valid() bool { return int(i) < MaxSprites }

// TileIndex addresses a background cell.
type TileIndex uint16

// Valid reports whether i names an existing cell.
func (i TileIndex) Valid() bool { return int(i) < BackgroundSize }

// TileAt returns the index of background cell (col, row).
func TileAt(col, row int) TileIndex { return TileIndex(row*BackgroundWidth + col) }

// Scene is the shared per-frame region: the foreground sprite list, the
// background grid and its pan offset in pixels.
type Scene struct {
	Foreground [MaxSprites]Sprite
	Background [BackgroundSize]Tile
	PanX, PanY int16
}
