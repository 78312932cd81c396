package slp

import (
	"image/color"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/filtermap"
	"badc0de.net/pkg/go-genie/icm"
	"badc0de.net/pkg/go-genie/patternmask"
	"badc0de.net/pkg/go-genie/slope"
)

// ICMSelector picks the inverse color map to use for a light index under a
// set of active patterns. It returns nil when no map is available.
//
// *patternmask.Resolver implements ICMSelector.
type ICMSelector interface {
	Select(lightIndex int, patterns []patternmask.Pattern) *icm.Map
}

// Filter rewrites the frame's pixels with the filtermap of slope s.
//
// The frame's current Width, Height and LeftEdges describe the output. Each
// command of scanline y produces the pixel at column LeftEdges[y]+x, where x
// is the command's position on the line. The output color is the
// alpha-weighted sum (in 1/256ths) of the palette colors of the command's
// source pixels, taken from the pixel data as it was before filtering, and
// is converted back to an index through the inverse color map selected for
// the command's light index.
//
// Source pixels outside of the frame's data, transparent ones and those
// whose index is not in pal do not contribute. Commands with no source
// pixels leave their output pixel transparent, as are all pixels not covered
// by a command.
func (f *Frame) Filter(fm *filtermap.Table, s slope.Slope, patterns []patternmask.Pattern, pal color.Palette, sel ICMSelector) error {
	m, ok := fm.Map(s)
	if !ok {
		return errors.Wrapf(fault.ErrPrecondition, "no filtermap loaded for slope %v", s)
	}
	if sel == nil {
		return errors.Wrap(fault.ErrPrecondition, "no inverse color map selector")
	}

	src, srcOpaque := f.Pixels, f.Opaque
	w, h := int(f.Width), int(f.Height)
	dst := make([]uint8, w*h)
	dstOpaque := make([]bool, w*h)

	// Light indices are 4 bits wide; select each map once per call.
	var maps [filtermap.MaxLightIndex + 1]*icm.Map
	var selected [filtermap.MaxLightIndex + 1]bool

	for y := 0; y < h && y < m.Height(); y++ {
		left := 0
		if y < len(f.LeftEdges) {
			left = int(f.LeftEdges[y])
		}
		for x, cmd := range m.Lines[y].Commands {
			dx := left + x
			if dx >= w {
				break
			}
			if len(cmd.SourcePixels) == 0 {
				continue
			}

			var r, g, b uint32
			for _, sp := range cmd.SourcePixels {
				si := int(sp.SourceIndex)
				if si >= len(src) || (si < len(srcOpaque) && !srcOpaque[si]) {
					continue
				}
				idx := int(src[si])
				if idx >= len(pal) {
					continue
				}
				cr, cg, cb, _ := pal[idx].RGBA()
				r += (cr >> 8) * uint32(sp.Alpha)
				g += (cg >> 8) * uint32(sp.Alpha)
				b += (cb >> 8) * uint32(sp.Alpha)
			}

			li := cmd.LightIndex & filtermap.MaxLightIndex
			if !selected[li] {
				maps[li] = sel.Select(int(li), patterns)
				selected[li] = true
			}
			if maps[li] == nil {
				continue
			}

			i := y*w + dx
			dst[i] = maps[li].PaletteIndex(clamp(r>>8), clamp(g>>8), clamp(b>>8))
			dstOpaque[i] = true
		}
	}

	f.Pixels = dst
	f.Opaque = dstOpaque
	return nil
}

func clamp(v uint32) uint8 {
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}
