// Package filtermap decodes the filtermap resource: for every slope, a list
// of scanlines, each a left-to-right list of commands describing how one
// output pixel is blended from pixels of the flat source tile.
//
// Layout, per slope and in slope order:
//
//	uint32  declared size (framing only)
//	uint32  height
//	height × {
//	    uint16  width
//	    width × {
//	        uint8   light index << 4 | source pixel count
//	        count × 3 bytes: uint8 | uint16 << 8 = sourceIndex << 9 | alpha
//	    }
//	}
package filtermap

import (
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/stream"
)

const (
	// MaxSourcePixels is the largest number of source pixels a command can
	// carry.
	MaxSourcePixels = 0xF
	// MaxLightIndex is the largest light index a command can carry.
	MaxLightIndex = 0xF
	// MaxAlpha is the largest source pixel weight.
	MaxAlpha = 0x1FF
	// MaxSourceIndex is the largest source pixel offset.
	MaxSourceIndex = 0x7FFF

	// sourcePixelBytes is the encoded size of one source pixel.
	sourcePixelBytes = 3
)

// SourcePixel is one weighted input of a Command.
type SourcePixel struct {
	// Alpha is the weight of the pixel, in 1/256ths.
	Alpha uint16
	// SourceIndex is the offset of the pixel in the source tile.
	SourceIndex uint16
}

// Command computes one output pixel.
type Command struct {
	LightIndex   uint8
	SourcePixels []SourcePixel
}

// Line is one scanline of commands, in left-to-right order.
type Line struct {
	Commands []Command
}

// Width returns the number of commands on the line.
func (l *Line) Width() int {
	return len(l.Commands)
}

// Filtermap is the list of scanlines for one slope, top to bottom.
type Filtermap struct {
	// DeclaredSize is the size the resource claims for this filtermap.
	DeclaredSize uint32
	Lines        []Line
}

// Height returns the number of scanlines.
func (f *Filtermap) Height() int {
	return len(f.Lines)
}

// Table holds the filtermaps of all slopes.
type Table struct {
	log    logging.Logger
	maps   [slope.Count]Filtermap
	loaded bool
}

// New returns an unloaded table. A nil log selects the default glog logger.
func New(log logging.Logger) *Table {
	return &Table{log: logging.OrDefault(log, "genie.FiltermapFile")}
}

// Load decodes one filtermap per slope. On error the table stays unloaded.
func (t *Table) Load(src *stream.Reader) error {
	if t.loaded {
		return errors.Wrap(fault.ErrPrecondition, "filtermaps already loaded")
	}

	var maps [slope.Count]Filtermap
	for _, s := range slope.All() {
		if err := t.decodeOne(src, &maps[s]); err != nil {
			err = errors.Wrapf(err, "decoding filtermap for slope %v", s)
			t.log.Errorf("%v", err)
			return err
		}
		if t.log.V(2) {
			t.log.Infof("slope %v: %d lines", s, maps[s].Height())
		}
	}

	t.maps = maps
	t.loaded = true
	if t.log.V(1) {
		t.log.Infof("loaded %d filtermaps", slope.Count)
	}
	return nil
}

func (t *Table) decodeOne(src *stream.Reader, fm *Filtermap) error {
	fm.DeclaredSize = src.Uint32()
	start := src.Tell()
	height := src.Uint32()
	if err := src.Err(); err != nil {
		return errors.Wrap(err, "reading filtermap header")
	}
	// Every line takes at least its 2-byte width.
	if int64(height)*2 > src.Remaining() {
		return errors.Wrapf(fault.ErrFormat, "height %d does not fit in the %d remaining bytes", height, src.Remaining())
	}

	fm.Lines = make([]Line, height)
	for y := range fm.Lines {
		line := &fm.Lines[y]
		width := src.Uint16()
		if err := src.Err(); err != nil {
			return errors.Wrapf(err, "reading width of line %d", y)
		}
		if int64(width) > src.Remaining() {
			return errors.Wrapf(fault.ErrFormat, "line %d width %d does not fit in the %d remaining bytes", y, width, src.Remaining())
		}

		line.Commands = make([]Command, width)
		for x := range line.Commands {
			if err := decodeCommand(src, &line.Commands[x]); err != nil {
				return errors.Wrapf(err, "line %d, command %d", y, x)
			}
		}
		if t.log.V(3) {
			t.log.Infof("line %d: %d commands", y, width)
		}
	}

	if consumed := src.Tell() - start; consumed != int64(fm.DeclaredSize) && t.log.V(2) {
		t.log.Infof("filtermap declares %d bytes, %d consumed", fm.DeclaredSize, consumed)
	}
	return nil
}

func decodeCommand(src *stream.Reader, cmd *Command) error {
	lightIndex, count := UnpackCommandHeader(src.Uint8())
	if err := src.Err(); err != nil {
		return err
	}
	cmd.LightIndex = lightIndex
	if count == 0 {
		return nil
	}

	var buf [MaxSourcePixels * sourcePixelBytes]byte
	raw := buf[:int(count)*sourcePixelBytes]
	src.Data(raw)
	if err := src.Err(); err != nil {
		return errors.Wrap(err, "reading source pixels")
	}

	cmd.SourcePixels = make([]SourcePixel, count)
	for n := range cmd.SourcePixels {
		b := raw[n*sourcePixelBytes:]
		packed := uint32(b[0]) | (uint32(b[1])|uint32(b[2])<<8)<<8
		cmd.SourcePixels[n] = UnpackSourcePixel(packed)
	}
	return nil
}

// IsLoaded reports whether Load completed successfully.
func (t *Table) IsLoaded() bool {
	return t.loaded
}

// Map returns the filtermap for s.
func (t *Table) Map(s slope.Slope) (*Filtermap, bool) {
	if t == nil || !t.loaded || !s.Valid() {
		return nil, false
	}
	return &t.maps[s], true
}
