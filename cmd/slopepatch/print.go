package main

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"badc0de.net/pkg/go-genie/imageprint"
	"badc0de.net/pkg/go-genie/patternmask"
)

func printCommand() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "Print the sloped variants of a tile on the terminal",
		ArgsUsage: "BASE_IMAGE",
		Flags: []cli.Flag{
			slopeFlag(),
			patternsFlag(),
			&cli.StringFlag{
				Name:  "mode",
				Value: imageprint.Mode24bit.String(),
				Usage: "24bit, 256color, nocolor, iterm or rasterm",
			},
			&cli.BoolFlag{
				Name:  "blanks",
				Value: true,
				Usage: "whether to just use colored blanks instead of some bad ascii art",
			},
			&cli.BoolFlag{
				Name:  "downsize",
				Usage: "whether to shrink tiles to fit the terminal",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			if err := printTiles(c, c.Args().First()); err != nil {
				return cli.NewExitError(err, 1)
			}
			return nil
		},
	}
}

func printTiles(c *cli.Context, basePath string) error {
	mode, err := imageprint.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}
	slopes, err := selectedSlopes(c)
	if err != nil {
		return err
	}
	patterns, err := patternmask.ParseList(c.String("patterns"))
	if err != nil {
		return err
	}

	a, err := loadAssets(c)
	if err != nil {
		return err
	}
	base, err := loadBase(a, basePath)
	if err != nil {
		return err
	}

	out := c.App.Writer
	for _, sl := range slopes {
		f := a.Patch(base, sl, patterns)
		if f == nil {
			return errors.Errorf("could not patch %s for slope %v", basePath, sl)
		}
		var img image.Image = f.Image(a.Palette)

		if c.Bool("downsize") {
			if termSize, err := GetTermSize(); err == nil {
				if termSize.WSXPixel != 0 && termSize.WSYPixel != 0 && (mode == imageprint.ModeRasTerm || mode == imageprint.ModeITerm) {
					// Prefer the native size when the terminal draws real pixels.
					img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.NearestNeighbor)
				} else {
					img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
				}
			}
		}

		fmt.Fprintf(out, "%v:\n", sl)
		if err := imageprint.Print(out, img, mode, c.Bool("blanks"), sl.String()+".png"); err != nil {
			return err
		}
	}
	return nil
}
