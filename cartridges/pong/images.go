package pong

import "github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"

// Image ids. 0 stays empty.
const (
	imgPaddleEnd uint8 = iota + 1
	imgPaddleMid
	imgLogoLow
	imgLogoHigh
	imgNet
)

// Palette ids.
const (
	palPaddle uint8 = 1
	palLogo   uint8 = 2
)

// Palettes returns the cartridge's colour tables.
func Palettes() *[avk.MaxPalettes]avk.Palette {
	var p [avk.MaxPalettes]avk.Palette
	p[palPaddle] = avk.Palette{0, 0x000F, 0xFFFF, 0xFCFF, 0x6CFF}
	p[palLogo] = avk.Palette{0, 0xFFFF, 0x222F, 0xE62F, 0x444F}
	return &p
}

// Images returns the cartridge's bitmaps. They are drawn procedurally so the
// cartridge has no resource files.
func Images() *[avk.MaxImages]avk.Image {
	var im [avk.MaxImages]avk.Image
	im[imgPaddleEnd] = paddle(true)
	im[imgPaddleMid] = paddle(false)
	im[imgLogoLow] = quarterDisc(0)
	im[imgLogoHigh] = quarterDisc(avk.ImageSize)
	im[imgNet] = net()
	return &im
}

// paddle draws one 16px segment of a paddle: outline 1, body 2, highlight 3.
// The end segment is rounded at the top.
func paddle(end bool) avk.Image {
	var img avk.Image
	for y := 0; y < avk.ImageSize; y++ {
		inset := 0
		if end && y < 3 {
			inset = 3 - y
		}
		left, right := 4+inset, 11-inset
		for x := left; x <= right; x++ {
			ci := byte(2)
			switch {
			case x == left || x == right || (end && y == 0):
				ci = 1
			case x == left+1:
				ci = 3
			}
			img.Set(x, y, ci)
		}
	}
	return img
}

// quarterDisc draws a quarter of a ring centred on the tile's right edge at
// height cy: cy = 0 gives the lower-left quarter, cy = 16 the upper-left.
func quarterDisc(cy int) avk.Image {
	var img avk.Image
	const r2 = 15 * 15
	for y := 0; y < avk.ImageSize; y++ {
		for x := 0; x < avk.ImageSize; x++ {
			dx, dy := x-avk.ImageSize, y-cy
			if dx < 0 {
				dx = -dx - 1
			}
			if dy < 0 {
				dy = -dy - 1
			}
			d2 := dx*dx + dy*dy
			switch {
			case d2 >= r2:
			case d2 >= 12*12:
				img.Set(x, y, 1)
			case d2 >= 6*6:
				img.Set(x, y, 2)
			default:
				img.Set(x, y, 3)
			}
		}
	}
	return img
}

// net is one dash of the centre line.
func net() avk.Image {
	var img avk.Image
	for y := 4; y < 12; y++ {
		img.Set(0, y, 4)
		img.Set(1, y, 4)
	}
	return img
}
