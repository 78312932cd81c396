// Package assets loads the complete set of resources needed to produce
// sloped terrain tiles, and patches frames with them.
//
// Patching needs every table: the filtermaps and slope templates describe
// the geometry, while the pattern masks, lightmap and inverse color maps
// decide the shading. Any table may be left out when loading (for instance
// to only inspect the templates), in which case patching degrades the way
// the individual packages document.
package assets

import (
	"context"
	"image/color"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-genie/filtermap"
	"badc0de.net/pkg/go-genie/icm"
	"badc0de.net/pkg/go-genie/lightmap"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/palette"
	"badc0de.net/pkg/go-genie/patternmask"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/slp"
	"badc0de.net/pkg/go-genie/slptemplate"
	"badc0de.net/pkg/go-genie/stream"
)

// DefaultLightmapRowWidth covers every light index a filtermap command can
// carry.
const DefaultLightmapRowWidth = filtermap.MaxLightIndex + 1

// Sources holds the encoded resources. A nil source is skipped.
type Sources struct {
	ICM          io.ReadSeeker
	PatternMasks io.ReadSeeker
	Filtermaps   io.ReadSeeker
	Templates    io.ReadSeeker
	Lightmap     io.ReadSeeker
	Palette      io.Reader

	// LightmapRowWidth is the number of light indices per lightmap row.
	// Zero means DefaultLightmapRowWidth.
	LightmapRowWidth int

	// Log is passed to every table. Nil selects the default glog loggers.
	Log logging.Logger
}

// Assets is the aggregate of all loaded tables.
//
// Once Load returns, Assets may be used by concurrent callers; nothing in it
// is modified by patching.
type Assets struct {
	ICM          *icm.Table
	PatternMasks *patternmask.Table
	Filtermaps   *filtermap.Table
	Templates    *slptemplate.Set
	Lightmap     *lightmap.Table
	Palette      color.Palette

	resolver *patternmask.Resolver
}

// Load decodes every non-nil source. Tables are decoded in parallel; the
// first failure cancels the others and is returned, naming the table.
func Load(ctx context.Context, src Sources) (*Assets, error) {
	rowWidth := src.LightmapRowWidth
	if rowWidth == 0 {
		rowWidth = DefaultLightmapRowWidth
	}

	a := &Assets{
		ICM:          icm.New(src.Log),
		PatternMasks: patternmask.New(src.Log),
		Filtermaps:   filtermap.New(src.Log),
	}
	a.Templates = slptemplate.New(src.Log, a.Filtermaps, a)

	g, ctx := errgroup.WithContext(ctx)
	load := func(name string, rs io.ReadSeeker, fn func(*stream.Reader) error) {
		if rs == nil {
			return
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "loading %s", name)
			}
			r, err := stream.NewReader(rs)
			if err != nil {
				return errors.Wrapf(err, "opening %s", name)
			}
			return errors.Wrapf(fn(r), "loading %s", name)
		})
	}

	load("inverse color maps", src.ICM, a.ICM.Load)
	load("pattern masks", src.PatternMasks, a.PatternMasks.Load)
	load("filtermaps", src.Filtermaps, a.Filtermaps.Load)
	load("slope templates", src.Templates, a.Templates.Load)
	load("lightmap", src.Lightmap, func(r *stream.Reader) error {
		lm, err := lightmap.Decode(r, rowWidth)
		a.Lightmap = lm
		return err
	})
	if src.Palette != nil {
		g.Go(func() error {
			pal, err := palette.Decode(src.Palette, src.Log)
			a.Palette = pal
			return errors.Wrap(err, "loading palette")
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.buildResolver(src.Log)
	return a, nil
}

// New builds Assets from tables which were loaded elsewhere. Any of them may
// be nil.
func New(log logging.Logger, icms *icm.Table, masks *patternmask.Table, fm *filtermap.Table, lm *lightmap.Table, pal color.Palette) *Assets {
	a := &Assets{
		ICM:          icms,
		PatternMasks: masks,
		Filtermaps:   fm,
		Lightmap:     lm,
		Palette:      pal,
	}
	if a.ICM == nil {
		a.ICM = icm.New(log)
	}
	if a.PatternMasks == nil {
		a.PatternMasks = patternmask.New(log)
	}
	if a.Filtermaps == nil {
		a.Filtermaps = filtermap.New(log)
	}
	a.Templates = slptemplate.New(log, a.Filtermaps, a)
	a.buildResolver(log)
	return a
}

func (a *Assets) buildResolver(log logging.Logger) {
	// A nil *lightmap.Table must not end up in a non-nil interface.
	var lm patternmask.Lightmap
	if a.Lightmap != nil {
		lm = a.Lightmap
	}
	a.resolver = patternmask.NewResolver(log, a.PatternMasks, lm, a.ICM)
}

// Select implements slp.ICMSelector using the pattern masks, lightmap and
// inverse color maps.
func (a *Assets) Select(lightIndex int, patterns []patternmask.Pattern) *icm.Map {
	if a.resolver == nil {
		return nil
	}
	return a.resolver.Select(lightIndex, patterns)
}

// Patch returns base patched for slope sl under the passed patterns, or nil
// if that is not possible (the reason is logged).
func (a *Assets) Patch(base *slp.Frame, sl slope.Slope, patterns []patternmask.Pattern) *slp.Frame {
	return a.Templates.GetPatchedFrame(base, sl, patterns, a.Palette)
}

// PatchAll patches base for every slope, indexed by slope.
func (a *Assets) PatchAll(base *slp.Frame, patterns []patternmask.Pattern) [slope.Count]*slp.Frame {
	var out [slope.Count]*slp.Frame
	for _, sl := range slope.All() {
		out[sl] = a.Patch(base, sl, patterns)
	}
	return out
}

// Stats summarizes what was loaded.
type Stats struct {
	Cubes            int
	PatternMasks     bool
	Filtermaps       bool
	Templates        slptemplate.State
	LightmapRows     int
	Colors           int
	FiltermapHeights [slope.Count]int
}

// Stats returns a summary of the loaded tables.
func (a *Assets) Stats() Stats {
	s := Stats{
		Cubes:        a.ICM.Len(),
		PatternMasks: a.PatternMasks.IsLoaded(),
		Filtermaps:   a.Filtermaps.IsLoaded(),
		Templates:    a.Templates.State(),
		Colors:       len(a.Palette),
	}
	if a.Lightmap != nil {
		s.LightmapRows = a.Lightmap.Len()
	}
	for _, sl := range slope.All() {
		if fm, ok := a.Filtermaps.Map(sl); ok {
			s.FiltermapHeights[sl] = fm.Height()
		}
	}
	return s
}
