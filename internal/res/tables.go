// Package res holds the immutable image and palette tables of a session.
package res

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

var (
	ErrImageRange   = errors.New("res: image id out of range")
	ErrPaletteRange = errors.New("res: palette id out of range")
)

// Tables is the session's copy of the cartridge resources. It is never
// modified after Load.
type Tables struct {
	images   [avk.MaxImages]avk.Image
	palettes [avk.MaxPalettes]avk.Palette
}

// Load copies the caller's tables. A nil argument leaves that table empty.
func Load(palettes *[avk.MaxPalettes]avk.Palette, images *[avk.MaxImages]avk.Image) *Tables {
	t := &Tables{}
	if palettes != nil {
		t.palettes = *palettes
	}
	if images != nil {
		t.images = *images
	}
	// indices above 15 cannot be represented by the resource format
	for i := range t.images {
		for p := range t.images[i] {
			t.images[i][p] &= 0x0F
		}
	}
	return t
}

// Image returns image id.
func (t *Tables) Image(id int) (*avk.Image, error) {
	if id < 0 || id >= avk.MaxImages {
		return nil, fmt.Errorf("%w: %d", ErrImageRange, id)
	}
	return &t.images[id], nil
}

// Palette returns palette id.
func (t *Tables) Palette(id int) (*avk.Palette, error) {
	if id < 0 || id >= avk.MaxPalettes {
		return nil, fmt.Errorf("%w: %d", ErrPaletteRange, id)
	}
	return &t.palettes[id], nil
}

// Empty reports whether image id has no set pixel.
func (t *Tables) Empty(id int) bool {
	img, err := t.Image(id)
	if err != nil {
		return true
	}
	return *img == avk.Image{}
}

// ReadImage decodes one resource blob from r. Trailing bytes are an error.
func ReadImage(r io.Reader) (avk.Image, error) {
	var buf [avk.ResourceSize + 1]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == io.ErrUnexpectedEOF || err == io.EOF:
		if n != avk.ResourceSize {
			return avk.Image{}, fmt.Errorf("%w: got %d", avk.ErrResourceSize, n)
		}
	case err != nil:
		return avk.Image{}, err
	default:
		return avk.Image{}, fmt.Errorf("%w: trailing data", avk.ErrResourceSize)
	}
	return avk.ImageFromResource((*[avk.ResourceSize]byte)(buf[:avk.ResourceSize])), nil
}

// ReadImageFile decodes the resource file at path.
func ReadImageFile(path string) (avk.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return avk.Image{}, err
	}
	defer f.Close()
	img, err := ReadImage(f)
	if err != nil {
		return avk.Image{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadImageFiles fills a table array from resource files keyed by image id.
func LoadImageFiles(files map[int]string) (*[avk.MaxImages]avk.Image, error) {
	var images [avk.MaxImages]avk.Image
	for id, path := range files {
		if id < 0 || id >= avk.MaxImages {
			return nil, fmt.Errorf("%w: %d", ErrImageRange, id)
		}
		img, err := ReadImageFile(path)
		if err != nil {
			return nil, err
		}
		images[id] = img
	}
	return &images, nil
}
