package emu

import (
	"errors"
	"hash/crc32"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/cart"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

// testCart exposes a symbol map the way a builtin cartridge does.
type testCart struct{ syms map[string]any }

func (c *testCart) Header() cart.Header { return cart.Header{Title: "test", Kind: cart.KindBuiltin} }

func (c *testCart) Slot(name string) (any, error) {
	if sym, ok := c.syms[name]; ok {
		return sym, nil
	}
	return nil, cart.ErrMissingSymbol
}

func (c *testCart) Entry(name string) (func() error, error) {
	f, ok := c.syms[name].(func(avk.Slots) error)
	if !ok {
		return nil, cart.ErrMissingSymbol
	}
	return func() error { return f(*c.slots()) }, nil
}

func (c *testCart) Close() error { return nil }

func (c *testCart) slots() *avk.Slots {
	return c.syms["slots"].(*avk.Slots)
}

// newCart builds a cartridge whose MAIN is body.
func newCart(body func(avk.Slots) error) *testCart {
	s := new(avk.Slots)
	return &testCart{syms: map[string]any{
		"slots":         s,
		avk.SymInit:     &s.Init,
		avk.SymDrop:     &s.Drop,
		avk.SymUpdate:   &s.Update,
		avk.SymGetTime:  &s.GetTime,
		avk.SymGetInput: &s.GetInput,
		avk.SymMain:     body,
	}}
}

func TestInitTwicePanics(t *testing.T) {
	m := New(Config{}, &Headless{Frames: 1})
	var images [avk.MaxImages]avk.Image
	var palettes [avk.MaxPalettes]avk.Palette
	m.Init(&images, &palettes)
	if m.State() != Running {
		t.Fatalf("state got %s want running", m.State())
	}
	defer func() {
		r := recover()
		err, _ := r.(error)
		if !errors.Is(err, ErrAlreadyInitialized) {
			t.Fatalf("recovered %v want ErrAlreadyInitialized", r)
		}
	}()
	m.Init(&images, &palettes)
}

func TestBindMissingSymbolWritesNothing(t *testing.T) {
	c := newCart(func(avk.Slots) error { return nil })
	delete(c.syms, avk.SymGetInput)
	m := New(Config{}, &Headless{Frames: 1})
	if err := m.Run(c); !errors.Is(err, cart.ErrMissingSymbol) {
		t.Fatalf("got %v want ErrMissingSymbol", err)
	}
	if c.slots().Init != nil || c.slots().Drop != nil {
		t.Fatal("slots were written before every symbol resolved")
	}
}

func TestBindABIMismatch(t *testing.T) {
	c := newCart(func(avk.Slots) error { return nil })
	var wrong avk.UpdateFunc
	c.syms[avk.SymGetTime] = &wrong
	m := New(Config{}, &Headless{Frames: 1})
	if _, err := m.Bind(c); !errors.Is(err, cart.ErrABIMismatch) {
		t.Fatalf("got %v want ErrABIMismatch", err)
	}
	if c.slots().Init != nil {
		t.Fatal("INIT written despite the mismatch")
	}
}

func TestRedSquareHeadless(t *testing.T) {
	c := newCart(func(s avk.Slots) error {
		var images [avk.MaxImages]avk.Image
		var palettes [avk.MaxPalettes]avk.Palette
		images[1] = avk.Fill(1)
		palettes[0][1] = 0xF00F
		con, err := avk.Open(s, &images, &palettes)
		if err != nil {
			return err
		}
		defer con.Close()
		con.Foreground()[0] = avk.Sprite{Image: 1, X: 8, Y: 8}
		for con.Update() {
		}
		return nil
	})
	h := &Headless{Frames: 1}
	m := New(Config{}, h)
	if err := m.Run(c); err != nil {
		t.Fatalf("run: %v", err)
	}

	fb := h.Framebuffer()
	want := make([]byte, len(fb))
	for y := 0; y < avk.ResolutionHeight; y++ {
		for x := 0; x < avk.ResolutionWidth; x++ {
			i := (y*avk.ResolutionWidth + x) * 4
			want[i+3] = 0xFF
			if x >= 8 && x < 24 && y >= 8 && y < 24 {
				want[i] = 0xFF
			}
		}
	}
	if h.CRC32() != crc32.ChecksumIEEE(want) {
		t.Fatalf("fb crc %08x want %08x", h.CRC32(), crc32.ChecksumIEEE(want))
	}
	if m.State() != Stopped || m.Frames() != 1 {
		t.Fatalf("state %s frames %d", m.State(), m.Frames())
	}
}

func TestHostQuitWinsOverCartridge(t *testing.T) {
	var updates int
	var session *avk.Session
	var slots avk.Slots
	c := newCart(func(s avk.Slots) error {
		con, err := avk.Open(s, nil, nil)
		if err != nil {
			return err
		}
		session, slots = con.Session(), s
		// never asks to stop on its own
		for con.Update() {
			updates++
		}
		return nil
	})
	h := &Headless{Frames: 3}
	m := New(Config{}, h)
	if err := m.Run(c); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.Presented() != 3 || updates != 2 {
		t.Fatalf("presented %d, true updates %d", h.Presented(), updates)
	}
	if m.State() != Stopped {
		t.Fatalf("state got %s want stopped", m.State())
	}
	if slots.Update(session) {
		t.Fatal("UPDATE after stop must return false")
	}
	if m.Frames() != 3 {
		t.Fatalf("stopped machine composed another frame: %d", m.Frames())
	}
}

func TestTimeAndInputChecks(t *testing.T) {
	h := &Headless{
		Frames: 10,
		Input: func(int) input.State {
			var s input.State
			s.Set(avk.Charlie, avk.TriggerRight)
			return s
		},
	}
	m := New(Config{}, h)
	var images [avk.MaxImages]avk.Image
	var palettes [avk.MaxPalettes]avk.Palette
	s := m.Init(&images, &palettes)

	if got := m.GetTime(s); got != 0 {
		t.Fatalf("time at init got %d", got)
	}
	if !m.Update(s) {
		t.Fatal("first update stopped")
	}
	if got, want := m.GetTime(s), uint64((time.Second / 60).Milliseconds()); got != want {
		t.Fatalf("time after one frame got %d want %d", got, want)
	}
	if !m.GetInput(s, avk.Charlie, avk.TriggerRight) {
		t.Fatal("polled input not visible")
	}
	if m.GetInput(s, avk.Player(7), avk.DirUp) || m.GetInput(s, avk.Alpha, avk.Input(40)) {
		t.Fatal("invalid player or input must read false")
	}

	foreign := avk.NewSession(nil)
	if m.GetTime(foreign) != 0 || m.GetInput(foreign, avk.Charlie, avk.TriggerRight) || m.Update(foreign) {
		t.Fatal("foreign session must get zero values")
	}
	m.Drop(foreign)
	if m.State() != Running {
		t.Fatal("foreign DROP stopped the session")
	}
	m.Drop(s)
	if m.State() != Stopped || m.Update(s) {
		t.Fatal("DROP did not stop the session")
	}
}

func TestHeadlessSavePNG(t *testing.T) {
	h := &Headless{Frames: 1}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := h.SavePNG(path, 2); err == nil {
		t.Fatal("save before any frame must fail")
	}
	h.Present(make([]byte, avk.ResolutionWidth*avk.ResolutionHeight*4))
	if err := h.SavePNG(path, 2); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Bounds().Dx() != avk.ResolutionWidth*2 {
		t.Fatalf("png width %d", m.Bounds().Dx())
	}
}
