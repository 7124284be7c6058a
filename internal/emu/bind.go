package emu

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/cart"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

type boundSlots struct {
	init     *avk.InitFunc
	drop     *avk.DropFunc
	update   *avk.UpdateFunc
	getTime  *avk.TimeFunc
	getInput *avk.InputFunc
}

func mismatch(name string, sym any) error {
	return fmt.Errorf("%w: %s is %T", cart.ErrABIMismatch, name, sym)
}

// Bind resolves every host-call slot and the entry point of c, then writes
// the machine's implementations into the slots. Nothing is written unless
// every symbol resolves with the expected type.
func (m *Machine) Bind(c cart.Cartridge) (main func() error, err error) {
	var b boundSlots
	for _, name := range avk.SlotNames {
		sym, err := c.Slot(name)
		if err != nil {
			return nil, err
		}
		ok := false
		switch p := sym.(type) {
		case *avk.InitFunc:
			ok, b.init = name == avk.SymInit && p != nil, p
		case *avk.DropFunc:
			ok, b.drop = name == avk.SymDrop && p != nil, p
		case *avk.UpdateFunc:
			ok, b.update = name == avk.SymUpdate && p != nil, p
		case *avk.TimeFunc:
			ok, b.getTime = name == avk.SymGetTime && p != nil, p
		case *avk.InputFunc:
			ok, b.getInput = name == avk.SymGetInput && p != nil, p
		}
		if !ok {
			return nil, mismatch(name, sym)
		}
	}
	main, err = c.Entry(avk.SymMain)
	if err != nil {
		return nil, err
	}

	*b.init = m.Init
	*b.drop = m.Drop
	*b.update = m.Update
	*b.getTime = m.GetTime
	*b.getInput = m.GetInput
	return main, nil
}

// Start binds c and returns its MAIN wrapped to stop the machine when the
// cartridge returns. Binding errors are reported before anything runs.
func (m *Machine) Start(c cart.Cartridge) (func() error, error) {
	main, err := m.Bind(c)
	if err != nil {
		return nil, err
	}
	h := c.Header()
	m.log.Printf("cartridge %q (%s) bound", h.Title, h.Kind)
	return func() error {
		err := main()
		// a cartridge returning without DROP still ends the session
		m.Stop()
		if err != nil {
			return fmt.Errorf("emu: %s: %w", avk.SymMain, err)
		}
		return nil
	}, nil
}

// Run binds c and blocks in its MAIN until the cartridge returns.
func (m *Machine) Run(c cart.Cartridge) error {
	run, err := m.Start(c)
	if err != nil {
		return err
	}
	return run()
}
