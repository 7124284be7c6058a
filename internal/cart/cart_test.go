package cart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

type sceneBox struct{ sc avk.Scene }

func (b *sceneBox) WriteScene() *avk.Scene { return &b.sc }

// fakeHost binds minimal host calls into c and counts frames.
type fakeHost struct {
	box     sceneBox
	frames  int
	limit   int
	dropped bool
	images  [avk.MaxImages]avk.Image
	pals    [avk.MaxPalettes]avk.Palette
}

func (h *fakeHost) bind(t *testing.T, c Cartridge) {
	t.Helper()
	set := func(name string) any {
		slot, err := c.Slot(name)
		if err != nil {
			t.Fatalf("slot %s: %v", name, err)
		}
		return slot
	}
	*set(avk.SymInit).(*avk.InitFunc) = func(im *[avk.MaxImages]avk.Image, p *[avk.MaxPalettes]avk.Palette) *avk.Session {
		h.images, h.pals = *im, *p
		return avk.NewSession(&h.box)
	}
	*set(avk.SymDrop).(*avk.DropFunc) = func(*avk.Session) { h.dropped = true }
	*set(avk.SymUpdate).(*avk.UpdateFunc) = func(*avk.Session) bool {
		h.frames++
		return h.frames < h.limit
	}
	*set(avk.SymGetTime).(*avk.TimeFunc) = func(*avk.Session) uint64 { return uint64(h.frames) * 16 }
	*set(avk.SymGetInput).(*avk.InputFunc) = func(_ *avk.Session, p avk.Player, in avk.Input) bool {
		return p == avk.Bravo && in == avk.Menu
	}
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenUnknownKind(t *testing.T) {
	if _, err := Open("game.gb"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("got %v want ErrUnknownKind", err)
	}
	if _, err := Open("builtin:nope"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("got %v want ErrUnknownKind", err)
	}
}

var (
	initSlot avk.InitFunc
	ran      bool
)

func init() {
	Register("test-resolve", "Resolve", func() Symbols {
		return Symbols{
			avk.SymInit: &initSlot,
			avk.SymMain: func() { ran = true },
			"BROKEN":    42,
		}
	})
	Register("test-dup", "", func() Symbols { return nil })
}

func TestBuiltinResolve(t *testing.T) {
	ran = false
	c, err := Open("builtin:test-resolve")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if h := c.Header(); h.Title != "Resolve" || h.Kind != KindBuiltin {
		t.Fatalf("header got %+v", h)
	}
	slot, err := c.Slot(avk.SymInit)
	if err != nil || slot.(*avk.InitFunc) != &initSlot {
		t.Fatalf("INIT slot got %v %v", slot, err)
	}
	if _, err := c.Slot(avk.SymDrop); !errors.Is(err, ErrMissingSymbol) {
		t.Fatalf("DROP got %v want ErrMissingSymbol", err)
	}
	if _, err := c.Entry("BROKEN"); !errors.Is(err, ErrABIMismatch) {
		t.Fatalf("entry BROKEN got %v want ErrABIMismatch", err)
	}
	main, err := c.Entry(avk.SymMain)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if err := main(); err != nil || !ran {
		t.Fatalf("main ran=%v err=%v", ran, err)
	}

	found := false
	for _, name := range Builtins() {
		found = found || name == "test-resolve"
	}
	if !found {
		t.Fatal("Builtins does not list the registration")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("second Register did not panic")
		}
	}()
	Register("test-dup", "", func() Symbols { return nil })
}

func TestLuaCartridgeRuns(t *testing.T) {
	path := writeScript(t, `-- title: Red square
local frames = 0
local menu = false
function main()
  local px = {}
  for i = 1, 256 do px[i] = 1 end
  avk.init{
    images = { [1] = px },
    palettes = { [0] = { 0, 0xF00F } },
  }
  avk.sprite(0, 1, avk.transform(0, true, false), 8, 8)
  avk.tile(1, 1, 1, 0)
  avk.pan(3, -2)
  while avk.update() do
    frames = frames + 1
    menu = avk.input(avk.player.bravo, avk.button.menu)
  end
  if avk.time() ~= 48 then error("time " .. avk.time()) end
  if not menu then error("menu not held") end
  avk.drop()
end
`)
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if c.Header().Title != "Red square" {
		t.Fatalf("title got %q", c.Header().Title)
	}
	h := &fakeHost{limit: 3}
	h.bind(t, c)
	main, err := c.Entry(avk.SymMain)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if err := main(); err != nil {
		t.Fatalf("main: %v", err)
	}

	if h.frames != 3 || !h.dropped {
		t.Fatalf("frames=%d dropped=%v", h.frames, h.dropped)
	}
	if h.images[1] != avk.Fill(1) || h.pals[0][1] != 0xF00F {
		t.Fatalf("resources not passed to INIT")
	}
	want := avk.Sprite{Image: 1, Transform: avk.FlipX, X: 8, Y: 8}
	if got := h.box.sc.Foreground[0]; got != want {
		t.Fatalf("sprite got %+v want %+v", got, want)
	}
	if got := h.box.sc.Background[avk.TileAt(1, 1)]; got.Image != 1 {
		t.Fatalf("tile got %+v", got)
	}
	if h.box.sc.PanX != 3 || h.box.sc.PanY != -2 {
		t.Fatalf("pan got %d,%d", h.box.sc.PanX, h.box.sc.PanY)
	}
}

func TestLuaArgumentErrorsSurface(t *testing.T) {
	path := writeScript(t, `function main()
  avk.init{}
  avk.sprite(200, 1, 0, 0, 0)
end
`)
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h := &fakeHost{limit: 1}
	h.bind(t, c)
	main, err := c.Entry(avk.SymMain)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if err := main(); err == nil {
		t.Fatal("out-of-range sprite index must fail")
	}
	if !h.dropped {
		t.Fatal("session not released after the error")
	}
}

func TestLuaInitRejectsBadResources(t *testing.T) {
	for name, res := range map[string]string{
		"index 16":       "images = { [1] = { 1, 16 } }",
		"index -1":       "images = { [1] = { -1 } }",
		"index fraction": "images = { [1] = { 1.5 } }",
		"colour 0x10000": "palettes = { [0] = { 0, 0x10000 } }",
		"negative":       "palettes = { [0] = { -1 } }",
		"string colour":  `palettes = { [0] = { "red" } }`,
	} {
		c, err := Open(writeScript(t, "function main() avk.init{ "+res+" } end\n"))
		if err != nil {
			t.Fatalf("%s: open: %v", name, err)
		}
		h := &fakeHost{limit: 1}
		h.bind(t, c)
		main, err := c.Entry(avk.SymMain)
		if err != nil {
			t.Fatalf("%s: entry: %v", name, err)
		}
		err = main()
		if err == nil || !strings.Contains(err.Error(), "must be an integer") {
			t.Fatalf("%s: got %v", name, err)
		}
	}
}

func TestLuaInitShortTables(t *testing.T) {
	c, err := Open(writeScript(t, `function main()
  avk.init{ images = { [2] = { 3, 15 } }, palettes = { [1] = { 0xFFFF } } }
  avk.drop()
end
`))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h := &fakeHost{limit: 1}
	h.bind(t, c)
	main, _ := c.Entry(avk.SymMain)
	if err := main(); err != nil {
		t.Fatalf("main: %v", err)
	}
	if h.images[2].At(0, 0) != 3 || h.images[2].At(1, 0) != 15 || h.images[2].At(2, 0) != 0 {
		t.Fatalf("image 2 got %v", h.images[2][:3])
	}
	if h.pals[1][0] != 0xFFFF || h.pals[1][1] != 0 {
		t.Fatalf("palette 1 got %v", h.pals[1][:2])
	}
}

func TestLuaMissingMain(t *testing.T) {
	c, err := Open(writeScript(t, "local x = 1\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := c.Entry(avk.SymMain); !errors.Is(err, ErrMissingSymbol) {
		t.Fatalf("got %v want ErrMissingSymbol", err)
	}
	if _, err := c.Slot("SOMETHING"); !errors.Is(err, ErrMissingSymbol) {
		t.Fatalf("got %v want ErrMissingSymbol", err)
	}
}

func TestLuaUpdateBeforeInit(t *testing.T) {
	c, err := Open(writeScript(t, "function main() avk.update() end\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	(&fakeHost{limit: 1}).bind(t, c)
	main, _ := c.Entry(avk.SymMain)
	if err := main(); err == nil {
		t.Fatal("update before init must fail")
	}
}
