package ui

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/input"
)

// Config contains window/input related settings. Every field can be set from
// the environment.
type Config struct {
	Title string `env:"AVK_TITLE"`
	// Scale is the initial integer upscaling factor.
	Scale int `env:"AVK_SCALE"`
	// Fullscreen starts in fullscreen; F11 toggles at run time.
	Fullscreen bool `env:"AVK_FULLSCREEN"`
	// Deadzone is the stick deflection needed for a direction.
	Deadzone      float64 `env:"AVK_DEADZONE"`
	ScreenshotDir string  `env:"AVK_SCREENSHOT_DIR" envDefault:"."`
}

// LoadConfig reads AVK_* variables. Unset fields stay zero so callers can
// layer flags on top; NewApp applies Defaults.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("ui: config: %w", err)
	}
	return c, nil
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "avk"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.Deadzone <= 0 || c.Deadzone >= 1 {
		c.Deadzone = input.DefaultDeadzone
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "."
	}
}
