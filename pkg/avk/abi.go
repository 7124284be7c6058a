package avk

import (
	"errors"
	"fmt"
)

// Host call signatures. A cartridge declares one variable of each type under
// the matching Sym* name; the runtime fills them before MAIN runs.
type (
	InitFunc   func(images *[MaxImages]Image, palettes *[MaxPalettes]Palette) *Session
	DropFunc   func(s *Session)
	UpdateFunc func(s *Session) bool
	TimeFunc   func(s *Session) uint64
	InputFunc  func(s *Session, p Player, in Input) bool
)

var ErrUnbound = errors.New("avk: host slot not bound")

// Slots is the cartridge's copy of the bound host calls.
type Slots struct {
	Init     InitFunc
	Drop     DropFunc
	Update   UpdateFunc
	GetTime  TimeFunc
	GetInput InputFunc
}

// Check reports the first slot the host left empty.
func (s *Slots) Check() error {
	switch {
	case s.Init == nil:
		return fmt.Errorf("%w: %s", ErrUnbound, SymInit)
	case s.Drop == nil:
		return fmt.Errorf("%w: %s", ErrUnbound, SymDrop)
	case s.Update == nil:
		return fmt.Errorf("%w: %s", ErrUnbound, SymUpdate)
	case s.GetTime == nil:
		return fmt.Errorf("%w: %s", ErrUnbound, SymGetTime)
	case s.GetInput == nil:
		return fmt.Errorf("%w: %s", ErrUnbound, SymGetInput)
	}
	return nil
}

// Console is the cartridge-side view of a running session.
type Console struct {
	slots Slots
	s     *Session
}

// Open calls INIT with the cartridge's resource tables and returns the
// session wrapper. The arrays are copied by the host; unused entries should be
// left zero.
func Open(slots Slots, images *[MaxImages]Image, palettes *[MaxPalettes]Palette) (*Console, error) {
	if err := slots.Check(); err != nil {
		return nil, err
	}
	return &Console{slots: slots, s: slots.Init(images, palettes)}, nil
}

// Update hands the frame to the host. It returns false once the session
// should end.
func (c *Console) Update() bool { return c.slots.Update(c.s) }

// Time returns milliseconds since INIT.
func (c *Console) Time() uint64 { return c.slots.GetTime(c.s) }

// Input reports whether a logical button is held.
func (c *Console) Input(p Player, in Input) bool { return c.slots.GetInput(c.s, p, in) }

func (c *Console) Foreground() *[MaxSprites]Sprite    { return c.s.Foreground() }
func (c *Console) Background() *[BackgroundSize]Tile { return c.s.Background() }
func (c *Console) SetPan(x, y int16)                  { c.s.SetPan(x, y) }
func (c *Console) Session() *Session                  { return c.s }

// Close releases the session (DROP). The console must not be used after.
func (c *Console) Close() {
	if c.s == nil {
		return
	}
	c.slots.Drop(c.s)
	c.s = nil
}
