package avk

import "testing"

func TestImageResourceRoundTrip(t *testing.T) {
	var res [ResourceSize]byte
	for i := range res {
		res[i] = byte(i*37 + 11)
	}
	img := ImageFromResource(&res)
	for i, ci := range img {
		if ci > 15 {
			t.Fatalf("pixel %d = %d, exceeds 15", i, ci)
		}
	}
	if got := img.Resource(); got != res {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", got, res)
	}
}

func TestImageAllIndicesRoundTrip(t *testing.T) {
	var img Image
	for i := range img {
		img[i] = byte(i % 16)
	}
	res := img.Resource()
	if back := ImageFromResource(&res); back != img {
		t.Fatalf("decode(encode(img)) differs")
	}
	if res[0] != 0x01 || res[7] != 0xEF {
		t.Fatalf("nibble order: got %#02x %#02x want 0x01 0xef", res[0], res[7])
	}
}

func TestDecodeImageSize(t *testing.T) {
	if _, err := DecodeImage(make([]byte, 127)); err != ErrResourceSize {
		t.Fatalf("got %v want ErrResourceSize", err)
	}
	img, err := DecodeImage(append([]byte{0xF1}, make([]byte, 127)...))
	if err != nil {
		t.Fatal(err)
	}
	if img.At(0, 0) != 15 || img.At(1, 0) != 1 {
		t.Fatalf("got %d,%d want 15,1", img.At(0, 0), img.At(1, 0))
	}
}

func TestTransformLayout(t *testing.T) {
	tr := WithPalette(9, FlipX)
	if tr != 0b0010_1001 {
		t.Fatalf("got %08b", tr)
	}
	if tr.Palette() != 9 || !tr.FlipX() || tr.FlipY() {
		t.Fatalf("decode: pal=%d fx=%v fy=%v", tr.Palette(), tr.FlipX(), tr.FlipY())
	}
	tr = tr.SetFlipY(true).SetFlipX(false).SetPalette(3)
	if tr != 0b0001_0011 {
		t.Fatalf("got %08b", tr)
	}
	// reserved bits survive palette edits
	if tr := Transform(0xC0).SetPalette(15); tr != 0xCF {
		t.Fatalf("got %#02x", tr)
	}
}

func TestColorChannels(t *testing.T) {
	c := Color(0xF00F)
	r, g, b, a := c.RGBA8()
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Fatalf("got %d,%d,%d,%d", r, g, b, a)
	}
	nr, _, _, na := c.Normalized()
	if nr != 1 || na != 1 {
		t.Fatalf("normalized white channel got %v,%v want 1,1", nr, na)
	}
	if RGBA4(1, 2, 3, 4) != 0x1234 {
		t.Fatalf("pack got %#04x", RGBA4(1, 2, 3, 4))
	}
	if !Color(0x1230).Transparent() || Color(0x0001).Transparent() {
		t.Fatal("transparency is decided by alpha only")
	}
}

func TestQuantize(t *testing.T) {
	cases := []struct {
		r, g, b, a uint8
		want       Color
	}{
		{255, 0, 0, 255, 0xF00F},
		{255, 255, 255, 128, 0xFFF8},
		{255, 255, 255, 119, 0xFFF7},
		{200, 10, 10, 16, 0xC111},
		{0, 0, 0, 0, 0},
		{8, 9, 34, 255, 0x012F},
	}
	for _, c := range cases {
		if got := Quantize(c.r, c.g, c.b, c.a); got != c.want {
			t.Fatalf("Quantize(%d,%d,%d,%d) got %#04x want %#04x", c.r, c.g, c.b, c.a, got, c.want)
		}
	}
}

func TestIndexValidity(t *testing.T) {
	if !SpriteIndex(95).Valid() || SpriteIndex(96).Valid() {
		t.Fatal("sprite index bounds")
	}
	if !TileAt(17, 13).Valid() || TileIndex(BackgroundSize).Valid() {
		t.Fatal("tile index bounds")
	}
	if Player(4).Valid() || !Delta.Valid() {
		t.Fatal("player bounds")
	}
	if InputCount.Valid() || !Menu.Valid() {
		t.Fatal("input bounds")
	}
}

func TestOpenRequiresBoundSlots(t *testing.T) {
	if _, err := Open(Slots{}, nil, nil); err == nil {
		t.Fatal("expected ErrUnbound")
	}
}
