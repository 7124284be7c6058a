package ppu

import (
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Image wraps a framebuffer as an image without copying.
func Image(fb []byte) *image.RGBA {
	return &image.RGBA{
		Pix:    fb,
		Stride: 4 * Width,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}

// Scale returns a copy of fb enlarged by factor with nearest-neighbour
// sampling, keeping each indexed pixel a crisp square.
func Scale(fb []byte, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	src := Image(fb)
	dst := image.NewRGBA(image.Rect(0, 0, Width*factor, Height*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes fb scaled by factor and closes w. A failed Close is
// reported when the encode succeeded, so a short write is never silent.
func WritePNG(w io.WriteCloser, fb []byte, factor int) error {
	err := png.Encode(w, Scale(fb, factor))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// Fit returns the uniform scale and offset that place the logical canvas
// centred inside an outW x outH surface. Integer scales are preferred when
// the surface is at least one canvas large, so pixels stay the same size.
func Fit(outW, outH int) (scale, offX, offY float64) {
	sx := float64(outW) / Width
	sy := float64(outH) / Height
	scale = sx
	if sy < scale {
		scale = sy
	}
	if scale >= 1 {
		scale = float64(int(scale))
	}
	offX = (float64(outW) - Width*scale) / 2
	offY = (float64(outH) - Height*scale) / 2
	return scale, offX, offY
}
