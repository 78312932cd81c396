package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/slope"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Print statistics about the loaded data files",
		Action: func(c *cli.Context) error {
			a, err := loadAssets(c)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			printInfo(os.Stdout, a)
			return nil
		},
	}
}

func printInfo(out io.Writer, a *assets.Assets) {
	st := a.Stats()
	fmt.Fprintf(out, "inverse color maps: %d\n", st.Cubes)
	fmt.Fprintf(out, "pattern masks:      %v\n", st.PatternMasks)
	fmt.Fprintf(out, "lightmap rows:      %d\n", st.LightmapRows)
	fmt.Fprintf(out, "palette colors:     %d\n", st.Colors)
	fmt.Fprintf(out, "slope templates:    %v\n", st.Templates)
	if !st.Filtermaps && !a.Templates.IsLoaded() {
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "slope\tsize\thotspot\tfilter rows\t")
	for _, sl := range slope.All() {
		size, hotspot := "-", "-"
		if t, ok := a.Templates.Template(sl); ok {
			size = fmt.Sprintf("%dx%d", t.Width, t.Height)
			hotspot = fmt.Sprintf("%d,%d", t.HotspotX, t.HotspotY)
		}
		fmt.Fprintf(tw, "%v\t%s\t%s\t%d\t\n", sl, size, hotspot, st.FiltermapHeights[sl])
	}
	tw.Flush()
}
