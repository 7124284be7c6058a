package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/FabianRolfMatthiasNoll/avkconsole/internal/convert"
)

func main() {
	app := cli.NewApp()

	app.Name = "avkconvert"
	app.Usage = "slice an image into 16x16 AVK image resources"
	app.Version = "0.1.0"
	app.ArgsUsage = "IMAGE"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			EnvVars: []string{"AVK_CONVERT_OUT"},
			Value:   ".",
			Usage:   "output directory",
		},
		&cli.BoolFlag{
			Name:  "reduce",
			Usage: "median-cut tiles with more than 16 colours instead of failing",
		},
		&cli.BoolFlag{
			Name:  "shared",
			Usage: "use one palette for the whole image",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		path := c.Args().First()
		m, err := convert.Load(path)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		b := m.Bounds()
		logger.Printf("%s: %dx%d", path, b.Dx(), b.Dy())

		tiles, err := convert.Convert(m, convert.Options{
			Reduce: c.Bool("reduce"),
			Shared: c.Bool("shared"),
		})
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		paths, err := convert.WriteTiles(c.String("out"), convert.Stem(path), tiles)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		for i, t := range tiles {
			logger.Printf("tile %d at %d,%d: %d colours", t.Index, t.X, t.Y, t.Colors)
			fmt.Printf("%s %s\n", paths[i], convert.FormatPalette(t))
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
