// Package pong is the demo cartridge: two paddles driven by players Alpha
// and Bravo and a logo circling the middle of the screen.
//
// It builds three ways: linked into the runner (Symbols), as a Go plugin
// (see ./plugin) and, in a reduced form, as pong.lua.
package pong

import (
	"math"

	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

const Title = "Pong"

// Foreground slots.
const (
	sprLeft  = 0 // three segments
	sprRight = 3 // three segments
	sprLogo  = 6 // four quarters
)

const (
	paddleX     = 8
	paddleLen   = 3 * avk.ImageSize
	paddleSpeed = 256.0 // px/s
	logoRadius  = 32.0
	logoPeriod  = 4000.0 // ms per revolution
	netColumn   = avk.BackgroundWidth / 2
)

type game struct {
	con         *avk.Console
	left, right float64
}

// Symbols returns a fresh set of host-call slots and the entry point, keyed
// by their exported names.
func Symbols() map[string]any {
	s := new(avk.Slots)
	return map[string]any{
		avk.SymInit:     &s.Init,
		avk.SymDrop:     &s.Drop,
		avk.SymUpdate:   &s.Update,
		avk.SymGetTime:  &s.GetTime,
		avk.SymGetInput: &s.GetInput,
		avk.SymMain:     func() error { return Run(*s) },
	}
}

// Run is the cartridge main loop. It returns when the host stops the session
// or Alpha presses Menu.
func Run(slots avk.Slots) error {
	con, err := avk.Open(slots, Images(), Palettes())
	if err != nil {
		return err
	}
	defer con.Close()

	g := &game{con: con}
	g.setup()
	last := con.Time()
	for con.Update() {
		now := con.Time()
		g.step(float64(now-last)/1000, now)
		last = now
		if con.Input(avk.Alpha, avk.Menu) {
			break
		}
	}
	return nil
}

func (g *game) setup() {
	fg := g.con.Foreground()
	end := avk.WithPalette(palPaddle, 0)
	fg[sprLeft+0] = avk.Sprite{Image: imgPaddleEnd, Transform: end}
	fg[sprLeft+1] = avk.Sprite{Image: imgPaddleMid, Transform: end}
	fg[sprLeft+2] = avk.Sprite{Image: imgPaddleEnd, Transform: end | avk.FlipY}
	mirrored := end | avk.FlipX
	fg[sprRight+0] = avk.Sprite{Image: imgPaddleEnd, Transform: mirrored}
	fg[sprRight+1] = avk.Sprite{Image: imgPaddleMid, Transform: mirrored}
	fg[sprRight+2] = avk.Sprite{Image: imgPaddleEnd, Transform: mirrored | avk.FlipY}
	for i := 0; i < 3; i++ {
		fg[sprLeft+i].X = paddleX
		fg[sprRight+i].X = avk.ResolutionWidth - avk.ImageSize - paddleX
	}

	logo := avk.WithPalette(palLogo, 0)
	fg[sprLogo+0] = avk.Sprite{Image: imgLogoLow, Transform: logo}
	fg[sprLogo+1] = avk.Sprite{Image: imgLogoHigh, Transform: logo}
	fg[sprLogo+2] = avk.Sprite{Image: imgLogoLow, Transform: logo | avk.FlipX}
	fg[sprLogo+3] = avk.Sprite{Image: imgLogoHigh, Transform: logo | avk.FlipX}

	bg := g.con.Background()
	for row := 1; row <= avk.CanvasHeight; row++ {
		bg[avk.TileAt(netColumn, row)] = avk.Tile{Image: imgNet, Transform: logo}
	}

	g.left = (avk.ResolutionHeight - paddleLen) / 2
	g.right = g.left
	g.place(0)
}

func (g *game) step(dt float64, now uint64) {
	g.left = g.move(g.left, avk.Alpha, dt)
	g.right = g.move(g.right, avk.Bravo, dt)
	g.place(now)
}

func (g *game) move(y float64, p avk.Player, dt float64) float64 {
	if g.con.Input(p, avk.DirUp) {
		y -= paddleSpeed * dt
	}
	if g.con.Input(p, avk.DirDown) {
		y += paddleSpeed * dt
	}
	return math.Max(0, math.Min(y, avk.ResolutionHeight-paddleLen))
}

func (g *game) place(now uint64) {
	fg := g.con.Foreground()
	ly, ry := int16(math.Round(g.left)), int16(math.Round(g.right))
	for i := 0; i < 3; i++ {
		fg[sprLeft+i].Y = ly + int16(i*avk.ImageSize)
		fg[sprRight+i].Y = ry + int16(i*avk.ImageSize)
	}

	turn := float64(now) / logoPeriod * 2 * math.Pi
	cx := int16(math.Cos(turn)*logoRadius) + avk.ResolutionWidth/2
	cy := int16(math.Sin(turn)*logoRadius) + avk.ResolutionHeight/2
	fg[sprLogo+0].X, fg[sprLogo+0].Y = cx-avk.ImageSize, cy
	fg[sprLogo+1].X, fg[sprLogo+1].Y = cx-avk.ImageSize, cy-avk.ImageSize
	fg[sprLogo+2].X, fg[sprLogo+2].Y = cx, cy
	fg[sprLogo+3].X, fg[sprLogo+3].Y = cx, cy-avk.ImageSize
}
