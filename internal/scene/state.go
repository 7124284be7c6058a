// Package scene owns the per-frame region shared between the cartridge and
// the compositor.
//
// The region alternates between two phases. In the write phase the cartridge
// mutates it through its session handle. In the read phase the compositor
// walks it through a Reader. The phases never overlap: WriteScene panics while
// a Reader is open.
package scene

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

var (
	ErrReadPhase = errors.New("scene: written during the read phase")
	ErrNotRead   = errors.New("scene: no read phase open")
	ErrReadOpen  = errors.New("scene: read phase already open")
)

// State holds one scene. The zero value is ready in the write phase.
type State struct {
	sc      avk.Scene
	reading bool
	frame   uint64
}

// WriteScene implements avk.SceneWriter.
func (s *State) WriteScene() *avk.Scene {
	if s.reading {
		panic(ErrReadPhase)
	}
	return &s.sc
}

// BeginRead closes the write phase and returns a read-only view. EndRead must
// be called before the cartridge touches the scene again.
func (s *State) BeginRead() Reader {
	if s.reading {
		panic(ErrReadOpen)
	}
	s.reading = true
	return Reader{s: s, frame: s.frame}
}

// EndRead reopens the write phase.
func (s *State) EndRead() {
	if !s.reading {
		panic(ErrNotRead)
	}
	s.reading = false
	s.frame++
}

// Reading reports whether a read phase is open.
func (s *State) Reading() bool { return s.reading }

// Reset zeroes every slot. Only valid in the write phase.
func (s *State) Reset() { *s.WriteScene() = avk.Scene{} }

// Reader is the compositor's view of one frame.
type Reader struct {
	s     *State
	frame uint64
}

func (r Reader) live() *avk.Scene {
	if !r.s.reading || r.s.frame != r.frame {
		panic(ErrNotRead)
	}
	return &r.s.sc
}

// Sprite returns foreground slot i.
func (r Reader) Sprite(i avk.SpriteIndex) avk.Sprite { return r.live().Foreground[i] }

// Tile returns background cell i.
func (r Reader) Tile(i avk.TileIndex) avk.Tile { return r.live().Background[i] }

// Pan returns the background scroll offset.
func (r Reader) Pan() (x, y int16) {
	sc := r.live()
	return sc.PanX, sc.PanY
}
