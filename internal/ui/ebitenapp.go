// Package ui is the windowed platform: an ebiten game that displays the
// frames a cartridge hands over and feeds keyboard and gamepad input back.
package ui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/ppu"
)

var ErrClosed = errors.New("ui: window closed")

type ack struct {
	in   input.State
	quit bool
}

// App implements both ebiten.Game and emu.Platform. Ebiten owns the main
// goroutine; the cartridge runs on another and blocks in Present until the
// next tick has copied its frame, so the two never touch the scene at the
// same time.
type App struct {
	cfg   Config
	tex   *ebiten.Image
	fb    []byte
	start time.Time
	keys  input.Map[ebiten.Key]
	pads  []ebiten.GamepadID

	frames chan []byte
	acks   chan ack
	done   chan struct{} // closed when the cartridge returns
	closed chan struct{} // closed when ebiten returns
	quit   bool
	runErr error
}

func NewApp(cfg Config) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(ppu.Width*cfg.Scale, ppu.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(cfg.Fullscreen)
	return &App{
		cfg:    cfg,
		fb:     make([]byte, ppu.Width*ppu.Height*4),
		start:  time.Now(),
		keys:   DefaultKeys(),
		frames: make(chan []byte),
		acks:   make(chan ack),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
}

// Run starts main (the cartridge entry point) on its own goroutine and the
// ebiten loop on the calling one. It returns once both have ended.
func (a *App) Run(main func() error) error {
	go func() {
		defer close(a.done)
		a.runErr = main()
	}()
	err := ebiten.RunGame(a)
	close(a.closed)
	<-a.done
	if err != nil {
		return err
	}
	return a.runErr
}

// Present implements emu.Platform.
func (a *App) Present(fb []byte) error {
	select {
	case a.frames <- fb:
		return nil
	case <-a.closed:
		return ErrClosed
	}
}

// Poll implements emu.Platform.
func (a *App) Poll() (input.State, bool, error) {
	select {
	case k := <-a.acks:
		return k.in, k.quit, nil
	case <-a.closed:
		return input.State{}, true, nil
	}
}

// Elapsed implements emu.Platform.
func (a *App) Elapsed() time.Duration { return time.Since(a.start) }

func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.quit = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := a.saveScreenshot(); err != nil {
			log.Printf("screenshot: %v", err)
		}
	}

	select {
	case fb := <-a.frames:
		copy(a.fb, fb)
		// the cartridge goroutine is already waiting in Poll
		a.acks <- ack{in: a.poll(), quit: a.quit}
	case <-a.done:
		return ebiten.Termination
	default:
		// cartridge still busy with its frame
	}
	return nil
}

func (a *App) poll() input.State {
	kb := a.keys.Apply(func(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) })
	a.pads = ebiten.AppendGamepadIDs(a.pads[:0])
	sort.Slice(a.pads, func(i, j int) bool { return a.pads[i] < a.pads[j] })
	return input.Reduce(kb, pollGamepads(a.pads, a.cfg.Deadzone))
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(ppu.Width, ppu.Height)
	}
	a.tex.WritePixels(a.fb)

	b := screen.Bounds()
	scale, ox, oy := ppu.Fit(b.Dx(), b.Dy())
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(ox, oy)
	screen.DrawImage(a.tex, op)
}

// Layout keeps the surface at window size; Draw letterboxes the canvas.
func (a *App) Layout(outW, outH int) (int, int) { return outW, outH }

func (a *App) saveScreenshot() error {
	ts := time.Now().Format("20060102_150405")
	name := filepath.Join(a.cfg.ScreenshotDir, fmt.Sprintf("screenshot_%s.png", ts))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	return ppu.WritePNG(f, a.fb, a.cfg.Scale)
}
