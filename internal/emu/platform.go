package emu

import (
	"fmt"
	"hash/crc32"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/ppu"
)

// Platform is the display and input side of the host. Present and Poll are
// called once per frame from the cartridge's UPDATE, never concurrently.
type Platform interface {
	// Present shows a composed frame. fb is only valid during the call.
	Present(fb []byte) error
	// Poll returns the input snapshot for the next frame and whether the
	// host wants the session to end.
	Poll() (input.State, bool, error)
	// Elapsed is the time since the platform started.
	Elapsed() time.Duration
}

// Headless runs a fixed number of frames without a window. Time advances by
// one 60 Hz tick per presented frame so runs are reproducible.
type Headless struct {
	Frames int
	// Input, if set, scripts the snapshot returned for each frame.
	Input func(frame int) input.State

	frame int
	last  []byte
}

const headlessTick = time.Second / 60

func (h *Headless) Present(fb []byte) error {
	if h.last == nil {
		h.last = make([]byte, len(fb))
	}
	copy(h.last, fb)
	h.frame++
	return nil
}

func (h *Headless) Poll() (input.State, bool, error) {
	var in input.State
	if h.Input != nil {
		in = h.Input(h.frame)
	}
	return in, h.frame >= h.Frames, nil
}

func (h *Headless) Elapsed() time.Duration { return time.Duration(h.frame) * headlessTick }

// Presented returns the number of frames shown so far.
func (h *Headless) Presented() int { return h.frame }

// Framebuffer returns a copy of the last presented frame, nil before the
// first one.
func (h *Headless) Framebuffer() []byte { return h.last }

// CRC32 is the IEEE checksum of the last presented frame.
func (h *Headless) CRC32() uint32 { return crc32.ChecksumIEEE(h.last) }

// SavePNG writes the last frame enlarged by scale.
func (h *Headless) SavePNG(path string, scale int) error {
	if h.last == nil {
		return fmt.Errorf("emu: no frame presented")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return ppu.WritePNG(f, h.last, scale)
}
