package full

import (
	"context"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/paths"
)

// FromDefaultPaths finds all data files using default filepaths as found by
// the paths package, and loads them. Files which are not found are skipped.
//
// Appropriate for tests or web frontends. Inappropriate for tools where the
// path should be specifiable by the user on the command line.
func FromDefaultPaths(ctx context.Context) (*assets.Assets, error) {
	return FromPaths(ctx, Paths{
		ICM:          paths.Find(ICMFile),
		PatternMasks: paths.Find(PatternMasksFile),
		Filtermaps:   paths.Find(FiltermapFile),
		Templates:    paths.Find(SlpTemplateFile),
		Lightmap:     paths.Find(LightmapFile),
		Palette:      paths.Find(PaletteFile),
	})
}
