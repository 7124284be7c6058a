package cart

import (
	"fmt"
	"sort"
	"sync"
)

const builtinPrefix = "builtin:"

// Symbols maps exported names to what a plugin would export: pointers for the
// host-call variables, a func() for the entry point.
type Symbols map[string]any

// Factory returns a fresh symbol set. It is called once per Open so every
// session gets its own slot variables.
type Factory func() Symbols

type registration struct {
	title   string
	factory Factory
}

var (
	builtinsMu sync.Mutex
	builtins   = map[string]registration{}
)

// Register makes a cartridge compiled into the binary available as
// "builtin:<name>". It panics on a duplicate name or nil factory.
func Register(name, title string, f Factory) {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	if f == nil {
		panic("cart: Register factory is nil")
	}
	if _, dup := builtins[name]; dup {
		panic("cart: Register called twice for " + name)
	}
	builtins[name] = registration{title: title, factory: f}
}

// Builtins returns the sorted names of the registered cartridges.
func Builtins() []string {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type builtinCart struct {
	hdr  Header
	syms Symbols
}

func openBuiltin(name string) (*builtinCart, error) {
	builtinsMu.Lock()
	reg, ok := builtins[name]
	builtinsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: builtin %q not registered", ErrUnknownKind, name)
	}
	title := reg.title
	if title == "" {
		title = name
	}
	return &builtinCart{
		hdr:  Header{Title: title, Kind: KindBuiltin, Path: builtinPrefix + name},
		syms: reg.factory(),
	}, nil
}

func (c *builtinCart) Header() Header { return c.hdr }

func (c *builtinCart) Slot(name string) (any, error) {
	sym, ok := c.syms[name]
	if !ok {
		return nil, missing(KindBuiltin, name)
	}
	return sym, nil
}

func (c *builtinCart) Entry(name string) (func() error, error) {
	sym, ok := c.syms[name]
	if !ok {
		return nil, missing(KindBuiltin, name)
	}
	return entry(name, sym)
}

func (c *builtinCart) Close() error { return nil }

// entry adapts an exported entry point. Both func() and func() error are
// accepted.
func entry(name string, sym any) (func() error, error) {
	switch f := sym.(type) {
	case func():
		return func() error { f(); return nil }, nil
	case func() error:
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s is %T", ErrABIMismatch, name, sym)
}
