package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/FabianRolfMatthiasNoll/avkconsole/cartridges/pong"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/cart"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/emu"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/statsview"
	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/ui"
)

func init() {
	cart.Register("pong", pong.Title, func() cart.Symbols { return pong.Symbols() })
}

func main() {
	app := cli.NewApp()

	app.Name = "avkrun"
	app.Usage = "run an AVK cartridge (builtin:NAME, *.so plugin or *.lua script)"
	app.Version = "0.1.0"
	app.ArgsUsage = "CARTRIDGE"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:  "scale",
			Value: 3,
			Usage: "window scale",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "window title (default: cartridge title)",
		},
		&cli.BoolFlag{
			Name:  "fullscreen",
			Usage: "start in fullscreen",
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a window",
		},
		&cli.IntFlag{
			Name:  "frames",
			Value: 300,
			Usage: "frames to run in headless mode",
		},
		&cli.StringFlag{
			Name:  "outpng",
			Usage: "write last framebuffer to PNG at path",
		},
		&cli.StringFlag{
			Name:  "expect",
			Usage: "assert framebuffer CRC32 (hex)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log per-frame diagnostics",
		},
		&cli.BoolFlag{
			Name:  "statsview",
			Usage: "serve runtime statistics (statsview builds only)",
		},
		&cli.StringFlag{
			Name:    "statsview-addr",
			Value:   statsview.DefaultAddr,
			EnvVars: []string{"AVK_STATSVIEW_ADDR"},
			Usage:   "listen address of the statistics server",
		},
		&cli.BoolFlag{
			Name:  "list",
			Usage: "list builtin cartridges and exit",
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("list") {
		for _, name := range cart.Builtins() {
			fmt.Println("builtin:" + name)
		}
		return nil
	}
	if c.NArg() < 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.Bool("statsview") {
		addr := c.String("statsview-addr")
		stop, err := statsview.Launch(addr, logger)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer stop()
		log.Printf("stats server available at %s", statsview.URL(addr))
	}

	cartridge, err := cart.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cartridge.Close()
	h := cartridge.Header()
	log.Printf("cartridge: %q kind=%s path=%s", h.Title, h.Kind, h.Path)

	if c.Bool("headless") {
		if err := runHeadless(cartridge, logger, c.Int("frames"), c.Int("scale"), c.String("outpng"), c.String("expect")); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	cfg, err := ui.LoadConfig()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if c.IsSet("scale") || cfg.Scale == 0 {
		cfg.Scale = c.Int("scale")
	}
	if c.IsSet("title") {
		cfg.Title = c.String("title")
	}
	if cfg.Title == "" {
		cfg.Title = h.Title
	}
	if c.IsSet("fullscreen") {
		cfg.Fullscreen = c.Bool("fullscreen")
	}

	a := ui.NewApp(cfg)
	m := emu.New(emu.Config{Logger: logger}, a)
	entry, err := m.Start(cartridge)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := a.Run(entry); err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Printf("session ended after %d frames", m.Frames())
	return nil
}

func runHeadless(c cart.Cartridge, logger *log.Logger, frames, scale int, pngPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}
	h := &emu.Headless{Frames: frames}
	m := emu.New(emu.Config{Logger: logger}, h)

	start := time.Now()
	if err := m.Run(c); err != nil {
		return err
	}
	dur := time.Since(start)

	crc := h.CRC32()
	fps := float64(h.Presented()) / dur.Seconds()
	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		h.Presented(), dur.Truncate(time.Millisecond), fps, crc)

	if pngPath != "" {
		if err := h.SavePNG(pngPath, scale); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}
