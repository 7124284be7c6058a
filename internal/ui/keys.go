package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

// DefaultKeys shares the keyboard between Alpha (left hand) and Bravo
// (right hand).
func DefaultKeys() input.Map[ebiten.Key] {
	return input.Map[ebiten.Key]{
		ebiten.KeyW: {Player: avk.Alpha, Input: avk.DirUp},
		ebiten.KeyD: {Player: avk.Alpha, Input: avk.DirRight},
		ebiten.KeyS: {Player: avk.Alpha, Input: avk.DirDown},
		ebiten.KeyA: {Player: avk.Alpha, Input: avk.DirLeft},
		ebiten.KeyX: {Player: avk.Alpha, Input: avk.FaceUp},
		ebiten.KeyC: {Player: avk.Alpha, Input: avk.FaceRight},
		ebiten.KeyV: {Player: avk.Alpha, Input: avk.FaceDown},
		ebiten.KeyZ: {Player: avk.Alpha, Input: avk.FaceLeft},
		ebiten.KeyQ: {Player: avk.Alpha, Input: avk.TriggerLeft},
		ebiten.KeyE: {Player: avk.Alpha, Input: avk.TriggerRight},

		ebiten.KeyEscape: {Player: avk.Alpha, Input: avk.Menu},

		ebiten.KeyI:      {Player: avk.Bravo, Input: avk.DirUp},
		ebiten.KeyL:      {Player: avk.Bravo, Input: avk.DirRight},
		ebiten.KeyK:      {Player: avk.Bravo, Input: avk.DirDown},
		ebiten.KeyJ:      {Player: avk.Bravo, Input: avk.DirLeft},
		ebiten.KeyComma:  {Player: avk.Bravo, Input: avk.FaceUp},
		ebiten.KeyM:      {Player: avk.Bravo, Input: avk.FaceRight},
		ebiten.KeyPeriod: {Player: avk.Bravo, Input: avk.FaceDown},
		ebiten.KeyN:      {Player: avk.Bravo, Input: avk.FaceLeft},
		ebiten.KeyU:      {Player: avk.Bravo, Input: avk.TriggerLeft},
		ebiten.KeyO:      {Player: avk.Bravo, Input: avk.TriggerRight},
	}
}

// padButtons maps the standard gamepad layout. The player is the pad's
// position in connection order.
var padButtons = map[ebiten.StandardGamepadButton]avk.Input{
	ebiten.StandardGamepadButtonLeftTop:    avk.DirUp,
	ebiten.StandardGamepadButtonLeftRight:  avk.DirRight,
	ebiten.StandardGamepadButtonLeftBottom: avk.DirDown,
	ebiten.StandardGamepadButtonLeftLeft:   avk.DirLeft,

	ebiten.StandardGamepadButtonRightTop:    avk.FaceUp,
	ebiten.StandardGamepadButtonRightRight:  avk.FaceRight,
	ebiten.StandardGamepadButtonRightBottom: avk.FaceDown,
	ebiten.StandardGamepadButtonRightLeft:   avk.FaceLeft,

	ebiten.StandardGamepadButtonFrontTopLeft:     avk.TriggerLeft,
	ebiten.StandardGamepadButtonFrontBottomLeft:  avk.TriggerLeft,
	ebiten.StandardGamepadButtonFrontTopRight:    avk.TriggerRight,
	ebiten.StandardGamepadButtonFrontBottomRight: avk.TriggerRight,

	ebiten.StandardGamepadButtonCenterLeft:  avk.Menu,
	ebiten.StandardGamepadButtonCenterRight: avk.Menu,
}

// pollGamepads reads up to MaxPlayers standard-layout pads.
func pollGamepads(ids []ebiten.GamepadID, deadzone float64) input.State {
	var states []input.State
	for i, id := range ids {
		if i >= avk.MaxPlayers {
			break
		}
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		p := avk.Player(i)
		var s input.State
		for b, in := range padButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				s.Set(p, in)
			}
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		states = append(states, s, input.Axes(p, x, y, deadzone))
	}
	return input.Reduce(states...)
}
