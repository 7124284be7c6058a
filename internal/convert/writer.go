package convert

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// decoders for Load
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Load decodes an image file in any registered format.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("convert: decode %s: %w", path, err)
	}
	return m, nil
}

// Stem is the output name prefix for source path: its base name without the
// extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileName is the resource file name of tile i.
func FileName(stem string, i int) string { return fmt.Sprintf("%s%d.res", stem, i) }

// WriteTiles writes one resource blob per tile into dir and returns the paths
// written.
func WriteTiles(dir, stem string, tiles []Tile) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(tiles))
	for _, t := range tiles {
		blob := t.Image.Resource()
		path := filepath.Join(dir, FileName(stem, t.Index))
		if err := os.WriteFile(path, blob[:], 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FormatPalette renders the used entries as hex literals, ready to paste into
// a cartridge.
func FormatPalette(t Tile) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < t.Colors; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "0x%04X", uint16(t.Palette[i]))
	}
	b.WriteByte(']')
	return b.String()
}
