// Package convert slices an RGBA image into 16x16 console images, each with
// a palette of at most 16 quantized colours.
package convert

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

var (
	ErrSize          = errors.New("convert: image size is not a positive multiple of 16")
	ErrTooManyColors = errors.New("convert: more than 16 colours")
)

type Options struct {
	// Reduce median-cuts a tile that exceeds the palette to 16 colours
	// instead of failing.
	Reduce bool
	// Shared builds one palette for the whole image, so every tile can be
	// drawn with the same palette id.
	Shared bool
}

// Tile is one converted 16x16 slice.
type Tile struct {
	Index   int // row-major position
	X, Y    int // pixel origin in the source image
	Image   avk.Image
	Palette avk.Palette
	Colors  int // used palette entries
}

// Convert slices m row-major into tiles. Every failing tile is reported; on
// error no tile is returned.
func Convert(m image.Image, opt Options) ([]Tile, error) {
	b := m.Bounds()
	if b.Dx() < avk.ImageSize || b.Dy() < avk.ImageSize || b.Dx()%avk.ImageSize != 0 || b.Dy()%avk.ImageSize != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, b.Dx(), b.Dy())
	}
	if opt.Shared {
		return convertShared(m, opt)
	}

	cols := b.Dx() / avk.ImageSize
	n := cols * (b.Dy() / avk.ImageSize)
	tiles := make([]Tile, 0, n)
	var errs []error
	for i := 0; i < n; i++ {
		x, y := i%cols*avk.ImageSize, i/cols*avk.ImageSize
		px := quantizeRect(m, image.Rect(x, y, x+avk.ImageSize, y+avk.ImageSize).Add(b.Min))
		t := Tile{Index: i, X: x, Y: y}
		var p palette
		if !p.assign(px, t.Image[:]) {
			if !opt.Reduce {
				errs = append(errs, fmt.Errorf("tile %d at %d,%d: %w", i, x, y, ErrTooManyColors))
				continue
			}
			p = palette{}
			p.assign(reduce(px), t.Image[:])
		}
		t.Palette, t.Colors = p.colors, p.n
		tiles = append(tiles, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tiles, nil
}

func convertShared(m image.Image, opt Options) ([]Tile, error) {
	b := m.Bounds()
	px := quantizeRect(m, b)
	var p palette
	idx := make([]byte, len(px))
	if !p.assign(px, idx) {
		if !opt.Reduce {
			return nil, fmt.Errorf("image: %w", ErrTooManyColors)
		}
		p = palette{}
		p.assign(reduce(px), idx)
	}

	cols, w := b.Dx()/avk.ImageSize, b.Dx()
	n := cols * (b.Dy() / avk.ImageSize)
	tiles := make([]Tile, n)
	for i := range tiles {
		t := &tiles[i]
		t.Index, t.X, t.Y = i, i%cols*avk.ImageSize, i/cols*avk.ImageSize
		t.Palette, t.Colors = p.colors, p.n
		for y := 0; y < avk.ImageSize; y++ {
			for x := 0; x < avk.ImageSize; x++ {
				t.Image.Set(x, y, idx[(t.Y+y)*w+t.X+x])
			}
		}
	}
	return tiles, nil
}

// quantizeRect returns the quantized colours of r, row-major.
func quantizeRect(m image.Image, r image.Rectangle) []avk.Color {
	out := make([]avk.Color, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			out = append(out, avk.Quantize(c.R, c.G, c.B, c.A))
		}
	}
	return out
}

// palette collects colours in first-occurrence order.
type palette struct {
	colors avk.Palette
	n      int
}

// assign writes the palette index of every colour into idx. It reports false
// once a 17th distinct colour shows up.
func (p *palette) assign(px []avk.Color, idx []byte) bool {
	for i, c := range px {
		ci := -1
		for j := 0; j < p.n; j++ {
			if p.colors[j] == c {
				ci = j
				break
			}
		}
		if ci < 0 {
			if p.n == avk.PaletteSize {
				return false
			}
			ci = p.n
			p.colors[ci] = c
			p.n++
		}
		idx[i] = byte(ci)
	}
	return true
}

// reduce maps px onto at most 16 colours. Pixels at alpha level 0 become
// transparent black and take one entry; the visible ones, translucent
// included, are median-cut into the rest. Every visible pixel takes the
// quantized colour of its palette entry, so the result never has more
// distinct colours than entries.
func reduce(px []avk.Color) []avk.Color {
	var opaque []color.Color
	for _, c := range px {
		if !c.Transparent() {
			r, g, b, a := c.RGBA8()
			opaque = append(opaque, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	capacity := avk.PaletteSize
	if len(opaque) < len(px) {
		capacity--
	}

	src := image.NewNRGBA(image.Rect(0, 0, len(opaque), 1))
	for x, c := range opaque {
		src.Set(x, 0, c)
	}
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, capacity), src)

	out := make([]avk.Color, len(px))
	k := 0
	for i, c := range px {
		if c.Transparent() {
			continue
		}
		nc := color.NRGBAModel.Convert(pal.Convert(opaque[k])).(color.NRGBA)
		out[i] = avk.Quantize(nc.R, nc.G, nc.B, nc.A)
		k++
	}
	return out
}
