package pong

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/cart"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/emu"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

func init() {
	cart.Register("pong-test", Title, func() cart.Symbols { return Symbols() })
}

func run(t *testing.T, h *emu.Headless) *emu.Machine {
	t.Helper()
	c, err := cart.Open("builtin:pong-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m := emu.New(emu.Config{}, h)
	if err := m.Run(c); err != nil {
		t.Fatalf("run: %v", err)
	}
	return m
}

func TestPaddleClampsAtBottom(t *testing.T) {
	h := &emu.Headless{
		Frames: 60,
		Input: func(int) input.State {
			var s input.State
			s.Set(avk.Alpha, avk.DirDown)
			return s
		},
	}
	m := run(t, h)
	if h.Presented() != 60 {
		t.Fatalf("presented %d frames want 60", h.Presented())
	}
	if m.State() != emu.Stopped {
		t.Fatalf("state got %s want stopped", m.State())
	}

	fb := h.Framebuffer()
	// body of the flipped bottom segment, one row above the rounded end
	at := func(x, y int) [4]byte {
		i := (y*avk.ResolutionWidth + x) * 4
		return [4]byte{fb[i], fb[i+1], fb[i+2], fb[i+3]}
	}
	if got := at(paddleX+8, avk.ResolutionHeight-2); got == [4]byte{0, 0, 0, 0xFF} {
		t.Fatalf("left paddle not at the bottom edge")
	}
	if got := at(paddleX+6, 40); got != [4]byte{0, 0, 0, 0xFF} {
		t.Fatalf("left paddle still near the top: %v", got)
	}
	// right paddle untouched, centred
	rx := avk.ResolutionWidth - avk.ImageSize - paddleX + 6
	if got := at(rx, avk.ResolutionHeight/2); got == [4]byte{0, 0, 0, 0xFF} {
		t.Fatalf("right paddle moved away from the centre")
	}
}

func TestMenuEndsGame(t *testing.T) {
	h := &emu.Headless{
		Frames: 100,
		Input: func(frame int) input.State {
			var s input.State
			if frame >= 5 {
				s.Set(avk.Alpha, avk.Menu)
			}
			return s
		},
	}
	m := run(t, h)
	if h.Presented() != 5 {
		t.Fatalf("presented %d frames want 5", h.Presented())
	}
	if m.State() != emu.Stopped {
		t.Fatalf("state got %s want stopped", m.State())
	}
}

func TestImagesUseReservedSlotZero(t *testing.T) {
	im := Images()
	if im[0] != (avk.Image{}) {
		t.Fatal("image 0 must stay empty")
	}
	for _, id := range []uint8{imgPaddleEnd, imgPaddleMid, imgLogoLow, imgLogoHigh, imgNet} {
		if im[id] == (avk.Image{}) {
			t.Fatalf("image %d is empty", id)
		}
	}
}
