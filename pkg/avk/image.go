package avk

import "errors"

// PixelCount is the number of pixels in one image.
const PixelCount = ImageSize * ImageSize

// ResourceSize is the size of an encoded image: two 4-bit indices per byte.
const ResourceSize = PixelCount / 2

var ErrResourceSize = errors.New("avk: image resource must be 128 bytes")

// Image is a 16x16 bitmap of palette indices (0..15), row-major.
type Image [PixelCount]byte

// ImageFromResource decodes a resource blob. The high nibble of each byte is
// the left pixel of the pair.
func ImageFromResource(res *[ResourceSize]byte) Image {
	var img Image
	for i, b := range res {
		img[i*2] = b >> 4
		img[i*2+1] = b & 0x0F
	}
	return img
}

// DecodeImage is ImageFromResource for a slice of unknown length.
func DecodeImage(data []byte) (Image, error) {
	if len(data) != ResourceSize {
		return Image{}, ErrResourceSize
	}
	return ImageFromResource((*[ResourceSize]byte)(data)), nil
}

// Resource encodes the image back into its blob form. Indices are masked to
// 4 bits.
func (img *Image) Resource() [ResourceSize]byte {
	var res [ResourceSize]byte
	for i := range res {
		res[i] = (img[i*2]&0x0F)<<4 | img[i*2+1]&0x0F
	}
	return res
}

// At returns the palette index at (x, y).
func (img *Image) At(x, y int) byte { return img[y*ImageSize+x] }

// Set stores a palette index at (x, y), masked to 4 bits.
func (img *Image) Set(x, y int, ci byte) { img[y*ImageSize+x] = ci & 0x0F }

// Fill returns an image with every pixel set to ci.
func Fill(ci byte) Image {
	var img Image
	for i := range img {
		img[i] = ci & 0x0F
	}
	return img
}
