package emu

import (
	"io"
	"log"

	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

// Config contains settings that affect the session driver.
type Config struct {
	Background avk.Color   // clear colour behind the background grid
	Logger     *log.Logger // per-frame diagnostics; nil discards them
}

// DefaultBackground is opaque black.
const DefaultBackground avk.Color = 0x000F

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Background == 0 {
		c.Background = DefaultBackground
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
}
