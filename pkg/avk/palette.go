package avk

// PaletteSize is the number of colours in one palette.
const PaletteSize = 16

// Color is a packed RGBA4444 value: red in the top nibble, alpha in the
// bottom one. 0 is transparent black.
type Color uint16

// Palette is a fixed table of colours selected per draw by id.
type Palette [PaletteSize]Color

// RGBA4 packs four 4-bit channels. Values are masked to 4 bits.
func RGBA4(r, g, b, a uint8) Color {
	return Color(uint16(r&0x0F)<<12 | uint16(g&0x0F)<<8 | uint16(b&0x0F)<<4 | uint16(a&0x0F))
}

// Channels unpacks the colour into 4-bit channels.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c>>12) & 0x0F, uint8(c>>8) & 0x0F, uint8(c>>4) & 0x0F, uint8(c) & 0x0F
}

// RGBA8 expands each channel to 8 bits (15 maps to 255).
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b, a = c.Channels()
	return r * 17, g * 17, b * 17, a * 17
}

// Normalized maps each channel to [0, 1] by dividing by 15, so 15 is exactly 1.
func (c Color) Normalized() (r, g, b, a float32) {
	r4, g4, b4, a4 := c.Channels()
	return float32(r4) / 15, float32(g4) / 15, float32(b4) / 15, float32(a4) / 15
}

// Transparent reports whether the colour contributes nothing when drawn.
func (c Color) Transparent() bool { return c&0x0F == 0 }

// Quantize reduces an 8-bit RGBA colour to the nearest 4-bit level,
// round(c/255*15), on every channel including alpha.
func Quantize(r, g, b, a uint8) Color {
	return RGBA4(level(r), level(g), level(b), level(a))
}

// level never hits an exact half: v*15/255 is v/17.
func level(v uint8) uint8 { return uint8((uint16(v)*15 + 127) / 255) }
