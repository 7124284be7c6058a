// Package emu is the session driver: it implements the host calls a
// cartridge is bound to and turns each UPDATE into one composed frame.
package emu

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/ppu"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/res"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/scene"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

var (
	ErrAlreadyInitialized = errors.New("emu: INIT called twice")
	ErrForeignSession     = errors.New("emu: session handle not issued by this host")
	ErrInvalidPlayer      = errors.New("emu: invalid player")
	ErrInvalidInput       = errors.New("emu: invalid input")
)

// State is the lifecycle of a Machine. Stopped is terminal.
type State int32

const (
	Uninitialized State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Machine struct {
	cfg      Config
	log      *log.Logger
	platform Platform

	initOnce atomic.Bool
	state    atomic.Int32
	session  *avk.Session
	start    time.Duration
	frames   uint64

	scene  scene.State
	tables *res.Tables
	comp   *ppu.Compositor
	input  input.State
}

func New(cfg Config, p Platform) *Machine {
	cfg.Defaults()
	return &Machine{
		cfg:      cfg,
		log:      cfg.Logger,
		platform: p,
		comp:     ppu.New(cfg.Background),
	}
}

// State returns the lifecycle state.
func (m *Machine) State() State { return State(m.state.Load()) }

// Frames returns the number of frames composed so far.
func (m *Machine) Frames() uint64 { return m.frames }

// Framebuffer returns the last composed frame (RGBA 256x192*4).
func (m *Machine) Framebuffer() []byte { return m.comp.Framebuffer() }

// Stop ends the session; the next UPDATE returns false.
func (m *Machine) Stop() { m.state.Store(int32(Stopped)) }

// Init implements INIT. It may succeed once per Machine; a second call
// panics with ErrAlreadyInitialized.
func (m *Machine) Init(images *[avk.MaxImages]avk.Image, palettes *[avk.MaxPalettes]avk.Palette) *avk.Session {
	if !m.initOnce.CompareAndSwap(false, true) {
		panic(ErrAlreadyInitialized)
	}
	m.tables = res.Load(palettes, images)
	m.session = avk.NewSession(&m.scene)
	m.start = m.platform.Elapsed()
	m.state.CompareAndSwap(int32(Uninitialized), int32(Running))
	m.log.Printf("session started")
	return m.session
}

func (m *Machine) check(s *avk.Session, call string) error {
	if s == nil || s != m.session {
		return fmt.Errorf("%s: %w", call, ErrForeignSession)
	}
	return nil
}

// Drop implements DROP and stops the session.
func (m *Machine) Drop(s *avk.Session) {
	if err := m.check(s, avk.SymDrop); err != nil {
		m.log.Print(err)
		return
	}
	m.Stop()
	m.log.Printf("session dropped after %d frames", m.frames)
}

// Update implements UPDATE: compose the scene, present it, then poll the
// platform for the next frame's input. A host quit wins over the cartridge.
func (m *Machine) Update(s *avk.Session) bool {
	if err := m.check(s, avk.SymUpdate); err != nil {
		m.log.Print(err)
		return false
	}
	if m.State() != Running {
		return false
	}

	r := m.scene.BeginRead()
	err := m.comp.Compose(m.tables, r)
	m.scene.EndRead()
	if err != nil {
		m.log.Printf("frame %d: %v", m.frames, err)
	}
	m.frames++

	if err := m.platform.Present(m.comp.Framebuffer()); err != nil {
		m.log.Printf("present: %v", err)
	}
	in, quit, err := m.platform.Poll()
	if err != nil {
		m.log.Printf("poll: %v", err)
	} else {
		m.input = in
	}
	if quit {
		m.Stop()
		m.log.Printf("host quit after %d frames", m.frames)
	}
	return m.State() == Running
}

// GetTime implements GET_TIME: milliseconds since INIT.
func (m *Machine) GetTime(s *avk.Session) uint64 {
	if err := m.check(s, avk.SymGetTime); err != nil {
		m.log.Print(err)
		return 0
	}
	d := m.platform.Elapsed() - m.start
	if d < 0 {
		return 0
	}
	return uint64(d.Milliseconds())
}

// GetInput implements GET_INPUT against the snapshot taken by the last
// UPDATE.
func (m *Machine) GetInput(s *avk.Session, p avk.Player, in avk.Input) bool {
	if err := m.check(s, avk.SymGetInput); err != nil {
		m.log.Print(err)
		return false
	}
	if !p.Valid() {
		m.log.Printf("%s: %v %d", avk.SymGetInput, ErrInvalidPlayer, p)
		return false
	}
	if !in.Valid() {
		m.log.Printf("%s: %v %d", avk.SymGetInput, ErrInvalidInput, in)
		return false
	}
	return m.input.Get(p, in)
}
