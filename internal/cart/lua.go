package cart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Shopify/go-lua"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/res"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

// luaCart runs a script against the host slots. The script sees a global
// table "avk" and must define a global function "main".
type luaCart struct {
	l     *lua.State
	hdr   Header
	dir   string
	slots avk.Slots
	con   *avk.Console
}

func openLua(path string) (*luaCart, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cart: read script: %w", err)
	}
	c := &luaCart{
		l:   lua.NewState(),
		hdr: *ParseHeader(path, src),
		dir: filepath.Dir(path),
	}
	lua.OpenLibraries(c.l)
	c.register()
	if err := lua.LoadBuffer(c.l, string(src), "@"+path, ""); err != nil {
		return nil, fmt.Errorf("cart: load script: %w", err)
	}
	// top-level chunk only defines functions; the slots are not bound yet
	if err := c.l.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("cart: run script: %w", err)
	}
	return c, nil
}

func (c *luaCart) Header() Header { return c.hdr }

func (c *luaCart) Slot(name string) (any, error) {
	switch name {
	case avk.SymInit:
		return &c.slots.Init, nil
	case avk.SymDrop:
		return &c.slots.Drop, nil
	case avk.SymUpdate:
		return &c.slots.Update, nil
	case avk.SymGetTime:
		return &c.slots.GetTime, nil
	case avk.SymGetInput:
		return &c.slots.GetInput, nil
	}
	return nil, missing(KindLua, name)
}

func (c *luaCart) Entry(name string) (func() error, error) {
	if name != avk.SymMain {
		return nil, missing(KindLua, name)
	}
	c.l.Global("main")
	ok := c.l.IsFunction(-1)
	c.l.Pop(1)
	if !ok {
		return nil, missing(KindLua, "main")
	}
	return func() error {
		c.l.Global("main")
		err := c.l.ProtectedCall(0, 0, 0)
		// release the session if the script returned without avk.drop()
		if c.con != nil {
			c.con.Close()
			c.con = nil
		}
		if err != nil {
			return fmt.Errorf("cart: %s: %w", c.hdr.Title, err)
		}
		return nil
	}, nil
}

func (c *luaCart) Close() error { return nil }

func (c *luaCart) register() {
	l := c.l
	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "init", Function: c.luaInit},
		{Name: "drop", Function: c.luaDrop},
		{Name: "update", Function: c.luaUpdate},
		{Name: "time", Function: c.luaTime},
		{Name: "input", Function: c.luaInput},
		{Name: "sprite", Function: c.luaSprite},
		{Name: "tile", Function: c.luaTile},
		{Name: "pan", Function: c.luaPan},
		{Name: "clear", Function: c.luaClear},
		{Name: "transform", Function: luaTransform},
	}, 0)

	for _, kv := range []struct {
		name  string
		value int
	}{
		{"width", avk.ResolutionWidth},
		{"height", avk.ResolutionHeight},
		{"image_size", avk.ImageSize},
		{"max_sprites", avk.MaxSprites},
		{"background_width", avk.BackgroundWidth},
		{"background_height", avk.BackgroundHeight},
	} {
		l.PushInteger(kv.value)
		l.SetField(-2, kv.name)
	}

	l.NewTable()
	for p := avk.Player(0); p.Valid(); p++ {
		l.PushInteger(int(p))
		l.SetField(-2, p.String())
	}
	l.SetField(-2, "player")

	l.NewTable()
	for in := avk.Input(0); in.Valid(); in++ {
		l.PushInteger(int(in))
		l.SetField(-2, in.String())
	}
	l.SetField(-2, "button")

	l.NewTable()
	l.PushInteger(int(avk.FlipX))
	l.SetField(-2, "x")
	l.PushInteger(int(avk.FlipY))
	l.SetField(-2, "y")
	l.SetField(-2, "flip")

	l.SetGlobal("avk")
}

func (c *luaCart) console(l *lua.State) *avk.Console {
	if c.con == nil {
		lua.Errorf(l, "avk.init has not been called")
	}
	return c.con
}

func checkRange(l *lua.State, arg, lo, hi int, what string) int {
	v := lua.CheckInteger(l, arg)
	lua.ArgumentCheck(l, v >= lo && v < hi, arg, fmt.Sprintf("%s out of range [%d,%d)", what, lo, hi))
	return v
}

// avk.init{images = {[id] = "file.res" | {256 indices}}, palettes = {[id] = {c0, ..., c15}}}
func (c *luaCart) luaInit(l *lua.State) int {
	lua.CheckType(l, 1, lua.TypeTable)
	images := new([avk.MaxImages]avk.Image)
	palettes := new([avk.MaxPalettes]avk.Palette)

	l.Field(1, "images")
	if l.IsTable(-1) {
		c.readImages(l, l.AbsIndex(-1), images)
	}
	l.Pop(1)
	l.Field(1, "palettes")
	if l.IsTable(-1) {
		readPalettes(l, l.AbsIndex(-1), palettes)
	}
	l.Pop(1)

	con, err := avk.Open(c.slots, images, palettes)
	if err != nil {
		lua.Errorf(l, "avk.init: %s", err.Error())
	}
	c.con = con
	return 0
}

func tableID(l *lua.State, max int, what string) int {
	id, ok := l.ToInteger(-2)
	if !ok || l.TypeOf(-2) != lua.TypeNumber || id < 0 || id >= max {
		lua.Errorf(l, "avk.init: bad %s id", what)
	}
	return id
}

func (c *luaCart) readImages(l *lua.State, t int, images *[avk.MaxImages]avk.Image) {
	l.PushNil()
	for l.Next(t) {
		id := tableID(l, avk.MaxImages, "image")
		switch l.TypeOf(-1) {
		case lua.TypeString:
			name, _ := l.ToString(-1)
			if !filepath.IsAbs(name) {
				name = filepath.Join(c.dir, name)
			}
			img, err := res.ReadImageFile(name)
			if err != nil {
				lua.Errorf(l, "avk.init: image %d: %s", id, err.Error())
			}
			images[id] = img
		case lua.TypeTable:
			img := &images[id]
			tableInts(l, l.AbsIndex(-1), avk.PixelCount, avk.PaletteSize, "image", id, func(i, v int) {
				img[i] = byte(v)
			})
		default:
			lua.Errorf(l, "avk.init: image %d must be a file name or index table", id)
		}
		l.Pop(1)
	}
}

func readPalettes(l *lua.State, t int, palettes *[avk.MaxPalettes]avk.Palette) {
	l.PushNil()
	for l.Next(t) {
		id := tableID(l, avk.MaxPalettes, "palette")
		if !l.IsTable(-1) {
			lua.Errorf(l, "avk.init: palette %d must be a table", id)
		}
		pal := &palettes[id]
		tableInts(l, l.AbsIndex(-1), avk.PaletteSize, 0x10000, "palette", id, func(i, v int) {
			pal[i] = avk.Color(v)
		})
		l.Pop(1)
	}
}

// tableInts reads t[1..n]. Missing entries are 0; anything else must be an
// integer in [0,max).
func tableInts(l *lua.State, t, n, max int, what string, id int, set func(i, v int)) {
	for i := 0; i < n; i++ {
		l.RawGetInt(t, i+1)
		v := 0
		if !l.IsNil(-1) {
			f, ok := l.ToNumber(-1)
			if !ok || l.TypeOf(-1) != lua.TypeNumber || f != math.Trunc(f) || f < 0 || f >= float64(max) {
				lua.Errorf(l, "avk.init: %s %d entry %d must be an integer in [0,%d)", what, id, i+1, max)
			}
			v = int(f)
		}
		l.Pop(1)
		set(i, v)
	}
}

func (c *luaCart) luaDrop(l *lua.State) int {
	if c.con != nil {
		c.con.Close()
		c.con = nil
	}
	return 0
}

func (c *luaCart) luaUpdate(l *lua.State) int {
	l.PushBoolean(c.console(l).Update())
	return 1
}

func (c *luaCart) luaTime(l *lua.State) int {
	l.PushInteger(int(c.console(l).Time()))
	return 1
}

func (c *luaCart) luaInput(l *lua.State) int {
	p := checkRange(l, 1, 0, avk.MaxPlayers, "player")
	in := checkRange(l, 2, 0, int(avk.InputCount), "button")
	l.PushBoolean(c.console(l).Input(avk.Player(p), avk.Input(in)))
	return 1
}

// avk.sprite(i, image, transform, x, y)
func (c *luaCart) luaSprite(l *lua.State) int {
	i := checkRange(l, 1, 0, avk.MaxSprites, "sprite")
	img := checkRange(l, 2, 0, avk.MaxImages, "image")
	tr := checkRange(l, 3, 0, 256, "transform")
	x := checkRange(l, 4, math.MinInt16, math.MaxInt16+1, "x")
	y := checkRange(l, 5, math.MinInt16, math.MaxInt16+1, "y")
	c.console(l).Foreground()[i] = avk.Sprite{
		Image:     uint8(img),
		Transform: avk.Transform(tr),
		X:         int16(x),
		Y:         int16(y),
	}
	return 0
}

// avk.tile(col, row, image, transform)
func (c *luaCart) luaTile(l *lua.State) int {
	col := checkRange(l, 1, 0, avk.BackgroundWidth, "column")
	row := checkRange(l, 2, 0, avk.BackgroundHeight, "row")
	img := checkRange(l, 3, 0, avk.MaxImages, "image")
	tr := checkRange(l, 4, 0, 256, "transform")
	c.console(l).Background()[avk.TileAt(col, row)] = avk.Tile{Image: uint8(img), Transform: avk.Transform(tr)}
	return 0
}

func (c *luaCart) luaPan(l *lua.State) int {
	x := checkRange(l, 1, math.MinInt16, math.MaxInt16+1, "x")
	y := checkRange(l, 2, math.MinInt16, math.MaxInt16+1, "y")
	c.console(l).SetPan(int16(x), int16(y))
	return 0
}

// avk.clear() empties every sprite slot and background cell.
func (c *luaCart) luaClear(l *lua.State) int {
	con := c.console(l)
	*con.Foreground() = [avk.MaxSprites]avk.Sprite{}
	*con.Background() = [avk.BackgroundSize]avk.Tile{}
	return 0
}

// avk.transform(palette, flipx, flipy) builds a transform byte; scripts have
// no bitwise operators.
func luaTransform(l *lua.State) int {
	p := checkRange(l, 1, 0, avk.MaxPalettes, "palette")
	var flips avk.Transform
	if l.ToBoolean(2) {
		flips |= avk.FlipX
	}
	if l.ToBoolean(3) {
		flips |= avk.FlipY
	}
	l.PushInteger(int(avk.WithPalette(uint8(p), flips)))
	return 1
}
