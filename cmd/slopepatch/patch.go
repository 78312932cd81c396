package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/bmp"

	"badc0de.net/pkg/go-genie/patternmask"
)

var encoders = map[string]func(io.Writer, image.Image) error{
	"png": png.Encode,
	"bmp": bmp.Encode,
}

func patchCommand() *cli.Command {
	return &cli.Command{
		Name:      "patch",
		Usage:     "Write the sloped variants of a tile",
		ArgsUsage: "BASE_IMAGE",
		Flags: []cli.Flag{
			slopeFlag(),
			patternsFlag(),
			&cli.StringFlag{
				Name:  "out_dir",
				Value: ".",
				Usage: "directory to write the tiles to",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "png",
				Usage: "output format: png or bmp",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			if err := patch(c, c.Args().First()); err != nil {
				return cli.NewExitError(err, 1)
			}
			return nil
		},
	}
}

func patch(c *cli.Context, basePath string) error {
	format := strings.ToLower(c.String("format"))
	encode, ok := encoders[format]
	if !ok {
		return errors.Errorf("unsupported format %q", format)
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

	stem := strings.TrimSuffix(filepath.Base(basePath), filepath.Ext(basePath))
	for _, sl := range slopes {
		f := a.Patch(base, sl, patterns)
		if f == nil {
			return errors.Errorf("could not patch %s for slope %v", basePath, sl)
		}

		out := filepath.Join(c.String("out_dir"), fmt.Sprintf("%s_%s.%s", stem, sl, format))
		w, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		err = encode(w, f.Image(a.Palette))
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrapf(err, "writing %s", out)
		}
		glog.Infof("wrote %s (%dx%d, hotspot %d,%d)", out, f.Width, f.Height, f.HotspotX, f.HotspotY)
	}
	return nil
}
