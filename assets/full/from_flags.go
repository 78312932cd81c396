package full

import (
	"context"
	"flag"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/paths"
)

var flagPaths Paths

type PathFlag string

const (
	FlagICMPath          = PathFlag("icm_path")
	FlagPatternMasksPath = PathFlag("patternmasks_path")
	FlagFiltermapPath    = PathFlag("filtermap_path")
	FlagSlpTemplatePath  = PathFlag("slptemplate_path")
	FlagLightmapPath     = PathFlag("lightmap_path")
	FlagPalettePath      = PathFlag("palette_path")
)

// Default data file names, as searched for by paths.Find.
const (
	ICMFile          = "icm.dat"
	PatternMasksFile = "patternmasks.dat"
	FiltermapFile    = "filtermap.dat"
	SlpTemplateFile  = "slptemplate.dat"
	LightmapFile     = "lightmap.dat"
	PaletteFile      = "palette.pal"
)

// SetupFilePathFlags registers flags to manually define paths to the data
// files making up assets.Assets: --icm_path, --patternmasks_path,
// --filtermap_path, --slptemplate_path, --lightmap_path and --palette_path,
// plus --lightmap_row_width.
//
// These paths will then be referred to in the FromFilePathFlags function.
func SetupFilePathFlags() {
	SetupFilePathFlagSet(flag.CommandLine)
}

// SetupFilePathFlagSet is SetupFilePathFlags for a flag set other than the
// command line.
func SetupFilePathFlagSet(fs *flag.FlagSet) {
	paths.SetupFilePathFlagSet(fs, ICMFile, string(FlagICMPath), &flagPaths.ICM)
	paths.SetupFilePathFlagSet(fs, PatternMasksFile, string(FlagPatternMasksPath), &flagPaths.PatternMasks)
	paths.SetupFilePathFlagSet(fs, FiltermapFile, string(FlagFiltermapPath), &flagPaths.Filtermaps)
	paths.SetupFilePathFlagSet(fs, SlpTemplateFile, string(FlagSlpTemplatePath), &flagPaths.Templates)
	paths.SetupFilePathFlagSet(fs, LightmapFile, string(FlagLightmapPath), &flagPaths.Lightmap)
	paths.SetupFilePathFlagSet(fs, PaletteFile, string(FlagPalettePath), &flagPaths.Palette)
	fs.IntVar(&flagPaths.LightmapRowWidth, "lightmap_row_width", assets.DefaultLightmapRowWidth, "Light indices per lightmap row")
}

// FromFilePathFlags loads assets.Assets from the files specified by the
// flags registered in SetupFilePathFlags. The flags need to be registered and
// parsed by the time this function is invoked.
func FromFilePathFlags(ctx context.Context) (*assets.Assets, error) {
	return FromPaths(ctx, flagPaths)
}

// PathFlagValue returns the value for the passed flag path (such as the path
// to the filtermap file).
func PathFlagValue(key PathFlag) string {
	switch key {
	case FlagICMPath:
		return flagPaths.ICM
	case FlagPatternMasksPath:
		return flagPaths.PatternMasks
	case FlagFiltermapPath:
		return flagPaths.Filtermaps
	case FlagSlpTemplatePath:
		return flagPaths.Templates
	case FlagLightmapPath:
		return flagPaths.Lightmap
	case FlagPalettePath:
		return flagPaths.Palette
	default:
		return ""
	}
}
