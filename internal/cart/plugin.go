package cart

import (
	"fmt"
	"plugin"
)

// TitleSymbol is an optional string variable a plugin may export to name
// itself.
const TitleSymbol = "TITLE"

type pluginCart struct {
	p   *plugin.Plugin
	hdr Header
}

func openPlugin(path string) (*pluginCart, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cart: open plugin: %w", err)
	}
	hdr := Header{Title: stem(path), Kind: KindPlugin, Path: path}
	if sym, err := p.Lookup(TitleSymbol); err == nil {
		if title, ok := sym.(*string); ok && *title != "" {
			hdr.Title = *title
		}
	}
	return &pluginCart{p: p, hdr: hdr}, nil
}

func (c *pluginCart) Header() Header { return c.hdr }

// Slot returns the exported variable. Lookup already yields a pointer for
// package-level variables.
func (c *pluginCart) Slot(name string) (any, error) {
	sym, err := c.p.Lookup(name)
	if err != nil {
		return nil, missing(KindPlugin, name)
	}
	return sym, nil
}

func (c *pluginCart) Entry(name string) (func() error, error) {
	sym, err := c.p.Lookup(name)
	if err != nil {
		return nil, missing(KindPlugin, name)
	}
	return entry(name, sym)
}

// Close is a no-op: Go plugins cannot be unloaded.
func (c *pluginCart) Close() error { return nil }
