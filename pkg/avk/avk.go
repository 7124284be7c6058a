// Package avk is the contract shared by the console runtime and its cartridges.
//
// A cartridge is compiled against this package only. It declares one mutable
// slot per host call (INIT, DROP, UPDATE, GET_TIME, GET_INPUT) plus a MAIN
// entry point; the runtime resolves those names, writes its own functions into
// the slots and then calls MAIN. Everything the two sides exchange afterwards
// goes through the types defined here.
package avk

// Square pixel size of images, sprites and tiles.
const ImageSize = 16

// Canvas size in tiles.
const (
	CanvasWidth  = 16
	CanvasHeight = 12
	CanvasSize   = CanvasWidth * CanvasHeight
)

// Background grid size in tiles: the canvas plus a one tile scroll margin on
// every side.
const (
	BackgroundWidth  = CanvasWidth + 2
	BackgroundHeight = CanvasHeight + 2
	BackgroundSize   = BackgroundWidth * BackgroundHeight
)

// Logical resolution in pixels.
const (
	ResolutionWidth  = ImageSize * CanvasWidth
	ResolutionHeight = ImageSize * CanvasHeight
	ResolutionSize   = ResolutionWidth * ResolutionHeight
)

// Table capacities.
const (
	MaxImages   = 256
	MaxPalettes = 16
	MaxSprites  = 96
	MaxPlayers  = 4
)

// Symbolic names of the binding slots and the cartridge entry point.
const (
	SymInit     = "INIT"
	SymDrop     = "DROP"
	SymUpdate   = "UPDATE"
	SymGetTime  = "GET_TIME"
	SymGetInput = "GET_INPUT"
	SymMain     = "MAIN"
)

// SlotNames lists the host-call slots in binding order.
var SlotNames = [...]string{SymInit, SymDrop, SymUpdate, SymGetTime, SymGetInput}
