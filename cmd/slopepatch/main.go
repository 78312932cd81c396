// Command slopepatch generates sloped variants of a flat terrain tile.
package main

import (
	"context"
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/assets/full"
	"badc0de.net/pkg/go-genie/palette"
	"badc0de.net/pkg/go-genie/paths"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/slp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// pathFlag is a data file flag defaulting to the file found by paths.Find.
func pathFlag(name, env, fileName string) cli.Flag {
	return &cli.StringFlag{
		Name:    name,
		EnvVars: []string{env},
		Value:   paths.Find(fileName),
		Usage:   "path to " + fileName,
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "slopepatch"
	app.Usage = "Generate sloped terrain tiles from a flat one"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		pathFlag(string(full.FlagICMPath), "GENIE_ICM_PATH", full.ICMFile),
		pathFlag(string(full.FlagPatternMasksPath), "GENIE_PATTERNMASKS_PATH", full.PatternMasksFile),
		pathFlag(string(full.FlagFiltermapPath), "GENIE_FILTERMAP_PATH", full.FiltermapFile),
		pathFlag(string(full.FlagSlpTemplatePath), "GENIE_SLPTEMPLATE_PATH", full.SlpTemplateFile),
		pathFlag(string(full.FlagLightmapPath), "GENIE_LIGHTMAP_PATH", full.LightmapFile),
		pathFlag(string(full.FlagPalettePath), "GENIE_PALETTE_PATH", full.PaletteFile),
		&cli.IntFlag{
			Name:  "lightmap_row_width",
			Value: assets.DefaultLightmapRowWidth,
			Usage: "light indices per lightmap row",
		},
		&cli.IntFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "glog verbosity",
		},
	}
	app.Before = setupLogging

	app.Commands = []*cli.Command{
		patchCommand(),
		infoCommand(),
		printCommand(),
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		glog.Exit(err)
	}
}

// setupLogging configures glog, which reads its settings from the standard
// flag package.
func setupLogging(c *cli.Context) error {
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(c.Int("verbose")))
	return flag.CommandLine.Parse(nil)
}

func loadAssets(c *cli.Context) (*assets.Assets, error) {
	a, err := full.FromPaths(context.Background(), full.Paths{
		ICM:              c.String(string(full.FlagICMPath)),
		PatternMasks:     c.String(string(full.FlagPatternMasksPath)),
		Filtermaps:       c.String(string(full.FlagFiltermapPath)),
		Templates:        c.String(string(full.FlagSlpTemplatePath)),
		Lightmap:         c.String(string(full.FlagLightmapPath)),
		Palette:          c.String(string(full.FlagPalettePath)),
		LightmapRowWidth: c.Int("lightmap_row_width"),
	})
	return a, errors.Wrap(err, "loading assets")
}

// loadBase reads the flat tile to patch. Without a game palette, one is
// derived from the tile itself.
func loadBase(a *assets.Assets, path string) (*slp.Frame, error) {
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	if glog.V(1) {
		glog.Infof("base tile %s: %s, %v", path, format, img.Bounds().Size())
	}

	if len(a.Palette) == 0 {
		glog.Warningf("no palette loaded; deriving one from %s", path)
		a.Palette = palette.Derive(img, palette.MaxColors)
	}
	return slp.FromImage(img, a.Palette), nil
}

// slopeFlag selects slopes; no value means all of them. Slice flags keep
// their values across runs, so every app needs its own.
func slopeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "slope",
		Usage: "slope to generate, by name or number; repeat for more (default: all)",
	}
}

func patternsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "patterns",
		Usage: "comma separated active patterns, by name or number",
	}
}

func selectedSlopes(c *cli.Context) ([]slope.Slope, error) {
	names := c.StringSlice("slope")
	if len(names) == 0 {
		return slope.All(), nil
	}
	var out []slope.Slope
	for _, n := range names {
		s, err := slope.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
