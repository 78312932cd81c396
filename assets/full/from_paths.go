// Package full populates assets.Assets from data files on disk, located
// either through command line flags or through the paths package.
package full

import (
	"context"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/paths"
)

// Paths names the data files to load. Any path left empty is omitted.
type Paths struct {
	ICM          string
	PatternMasks string
	Filtermaps   string
	Templates    string
	Lightmap     string
	Palette      string

	// LightmapRowWidth is passed through to assets.Sources.
	LightmapRowWidth int
}

// FromPaths populates an assets.Assets using datafiles found at the passed
// paths. Paths are opened as-is, without searching.
func FromPaths(ctx context.Context, p Paths) (*assets.Assets, error) {
	var files []io.Closer
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	open := func(what, path string) (paths.File, error) {
		if path == "" {
			return nil, nil
		}
		glog.Infof("full.FromPaths(): opening %s: %q", what, path)
		f, err := paths.NoFindOpen(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s file", what)
		}
		files = append(files, f)
		return f, nil
	}

	src := assets.Sources{LightmapRowWidth: p.LightmapRowWidth}
	var err error
	set := func(dst *io.ReadSeeker, what, path string) {
		if err != nil {
			return
		}
		var f paths.File
		if f, err = open(what, path); f != nil {
			*dst = f
		}
	}
	set(&src.ICM, "inverse color map", p.ICM)
	set(&src.PatternMasks, "pattern masks", p.PatternMasks)
	set(&src.Filtermaps, "filtermap", p.Filtermaps)
	set(&src.Templates, "slope template", p.Templates)
	set(&src.Lightmap, "lightmap", p.Lightmap)
	if err != nil {
		return nil, err
	}
	if p.Palette != "" {
		f, err := open("palette", p.Palette)
		if err != nil {
			return nil, err
		}
		src.Palette = f
	}

	return assets.Load(ctx, src)
}
