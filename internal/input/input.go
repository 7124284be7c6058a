// Package input reduces physical sources (keys, gamepad buttons and axes) to
// the console's logical buttons.
package input

import "github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"

// State is one snapshot of every logical button of every player.
type State [avk.MaxPlayers][avk.InputCount]bool

// Get reports a button; invalid player or input is false.
func (s *State) Get(p avk.Player, in avk.Input) bool {
	if !p.Valid() || !in.Valid() {
		return false
	}
	return s[p][in]
}

// Set marks a button held. Invalid arguments are ignored.
func (s *State) Set(p avk.Player, in avk.Input) {
	if p.Valid() && in.Valid() {
		s[p][in] = true
	}
}

// Reduce OR-combines several sources into one snapshot.
func Reduce(sources ...State) State {
	var out State
	for _, src := range sources {
		for p := range src {
			for in := range src[p] {
				out[p][in] = out[p][in] || src[p][in]
			}
		}
	}
	return out
}

// Binding routes one physical source to a player's button.
type Binding struct {
	Player avk.Player
	Input  avk.Input
}

// Map turns held physical sources of type K into a snapshot.
type Map[K comparable] map[K]Binding

// Apply marks every binding whose source is held.
func (m Map[K]) Apply(held func(K) bool) State {
	var s State
	for k, b := range m {
		if held(k) {
			s.Set(b.Player, b.Input)
		}
	}
	return s
}

// DefaultDeadzone is the stick deflection below which no direction is held.
const DefaultDeadzone = 0.5

// Axes converts a stick position (-1..1, y pointing down) into directional
// buttons for player p.
func Axes(p avk.Player, x, y, deadzone float64) State {
	var s State
	if x <= -deadzone {
		s.Set(p, avk.DirLeft)
	}
	if x >= deadzone {
		s.Set(p, avk.DirRight)
	}
	if y <= -deadzone {
		s.Set(p, avk.DirUp)
	}
	if y >= deadzone {
		s.Set(p, avk.DirDown)
	}
	return s
}
