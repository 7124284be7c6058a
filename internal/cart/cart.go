// Package cart loads cartridges and exposes their binding slots by name.
package cart

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrMissingSymbol = errors.New("cart: missing symbol")
	ErrABIMismatch   = errors.New("cart: symbol has the wrong type")
	ErrUnknownKind   = errors.New("cart: unknown cartridge kind")
)

// Cartridge is a loaded game module. The host resolves the typed host-call
// slots with Slot and the entry point with Entry.
type Cartridge interface {
	Header() Header
	// Slot returns a pointer to the named host-call variable (for example
	// *avk.InitFunc for "INIT").
	Slot(name string) (any, error)
	// Entry returns the named entry point. The returned func blocks until the
	// cartridge's main loop ends.
	Entry(name string) (func() error, error)
	Close() error
}

// Open picks a loader from the path:
//
//	builtin:<name>  cartridges compiled into the runner (see Register)
//	*.so            Go plugins built with -buildmode=plugin
//	*.lua           Lua scripts
func Open(path string) (Cartridge, error) {
	if name, ok := strings.CutPrefix(path, builtinPrefix); ok {
		return openBuiltin(name)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".so":
		return openPlugin(path)
	case ".lua":
		return openLua(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, path)
}

func missing(kind Kind, name string) error {
	return fmt.Errorf("%w: %s (%s)", ErrMissingSymbol, name, kind)
}
