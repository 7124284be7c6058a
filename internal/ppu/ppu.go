// Package ppu composites the shared scene into an RGBA framebuffer.
package ppu

import (
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/res"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/scene"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

// Width and Height are the logical resolution of the framebuffer.
const (
	Width  = avk.ResolutionWidth
	Height = avk.ResolutionHeight
)

// Compositor owns the offscreen framebuffer (RGBA, 4 bytes per pixel).
type Compositor struct {
	fb    []byte
	clear [4]byte
}

// New returns a compositor clearing to bg each frame. The clear colour is
// always drawn opaque.
func New(bg avk.Color) *Compositor {
	r, g, b, _ := bg.RGBA8()
	return &Compositor{
		fb:    make([]byte, Width*Height*4),
		clear: [4]byte{r, g, b, 0xFF},
	}
}

// Framebuffer returns the last composed frame. The slice is reused.
func (c *Compositor) Framebuffer() []byte { return c.fb }

// Compose draws one frame: clear, background grid, then sprites in slot
// order. Entries referencing image 0 are skipped. Out-of-range ids are
// reported, the rest of the frame is still drawn.
func (c *Compositor) Compose(t *res.Tables, r scene.Reader) error {
	for i := 0; i < len(c.fb); i += 4 {
		copy(c.fb[i:i+4], c.clear[:])
	}

	var errs []error
	panX, panY := r.Pan()
	for row := 0; row < avk.BackgroundHeight; row++ {
		for col := 0; col < avk.BackgroundWidth; col++ {
			tile := r.Tile(avk.TileAt(col, row))
			if tile.Image == 0 {
				continue
			}
			x := (col-1)*avk.ImageSize - int(panX)
			y := (row-1)*avk.ImageSize - int(panY)
			if err := c.draw(t, tile.Image, tile.Transform, x, y); err != nil {
				errs = append(errs, fmt.Errorf("tile %d,%d: %w", col, row, err))
			}
		}
	}

	for i := avk.SpriteIndex(0); i.Valid(); i++ {
		s := r.Sprite(i)
		if s.Image == 0 {
			continue
		}
		if err := c.draw(t, s.Image, s.Transform, int(s.X), int(s.Y)); err != nil {
			errs = append(errs, fmt.Errorf("sprite %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Compositor) draw(t *res.Tables, imageID uint8, tr avk.Transform, x, y int) error {
	// fully off canvas
	if x <= -avk.ImageSize || y <= -avk.ImageSize || x >= Width || y >= Height {
		return nil
	}
	img, err := t.Image(int(imageID))
	if err != nil {
		return err
	}
	pal, err := t.Palette(int(tr.Palette()))
	if err != nil {
		return err
	}
	flipX, flipY := tr.FlipX(), tr.FlipY()
	for py := 0; py < avk.ImageSize; py++ {
		dy := y + py
		if dy < 0 || dy >= Height {
			continue
		}
		sy := py
		if flipY {
			sy = avk.ImageSize - 1 - py
		}
		for px := 0; px < avk.ImageSize; px++ {
			dx := x + px
			if dx < 0 || dx >= Width {
				continue
			}
			sx := px
			if flipX {
				sx = avk.ImageSize - 1 - px
			}
			blend(c.fb[(dy*Width+dx)*4:], pal[img.At(sx, sy)])
		}
	}
	return nil
}

// blend composites col over the destination pixel using its alpha as
// coverage: 0 leaves the pixel, 15 replaces it.
func blend(dst []byte, col avk.Color) {
	r, g, b, a := col.RGBA8()
	a4 := uint16(a / 17)
	switch a4 {
	case 0:
		return
	case 15:
		dst[0], dst[1], dst[2] = r, g, b
	default:
		mix := func(s, d byte) byte {
			return byte((uint16(s)*a4 + uint16(d)*(15-a4) + 7) / 15)
		}
		dst[0], dst[1], dst[2] = mix(r, dst[0]), mix(g, dst[1]), mix(b, dst[2])
	}
	dst[3] = 0xFF
}
