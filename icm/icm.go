// Package icm decodes inverse color map resources.
//
// An inverse color map is a 32x32x32 cube translating an RGB color, quantized
// to 5 bits per channel, to the index of the closest palette entry. The
// resource is a plain concatenation of such cubes, without any header or
// count; the end of the stream is the only terminator.
package icm

import (
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/stream"
)

const (
	// Side is the number of quantized steps per channel.
	Side = 32
	// Size is the number of bytes in one encoded cube.
	Size = Side * Side * Side

	// NeutralIndex is the cube used when no light adjustment applies, or
	// when a computed cube index is out of range.
	NeutralIndex = 4
)

// Map is a single inverse color map.
type Map struct {
	cube [Side][Side][Side]uint8
}

// PaletteIndex returns the palette index for the passed color. Only the top
// 5 bits of each channel are significant.
func (m *Map) PaletteIndex(r, g, b uint8) uint8 {
	return m.cube[r>>3][g>>3][b>>3]
}

// NewMap builds a cube from its Size-byte encoding, which is ordered by red,
// then green, then blue.
func NewMap(data []byte) (*Map, error) {
	if len(data) != Size {
		return nil, errors.Wrapf(fault.ErrFormat, "inverse color map of %d bytes; want %d", len(data), Size)
	}
	m := &Map{}
	i := 0
	for r := range m.cube {
		for g := range m.cube[r] {
			i += copy(m.cube[r][g][:], data[i:i+Side])
		}
	}
	return m, nil
}

// Table is the ordered collection of cubes loaded from one resource.
type Table struct {
	log    logging.Logger
	maps   []*Map
	loaded bool
}

// New returns an unloaded table. A nil log selects the default glog logger.
func New(log logging.Logger) *Table {
	return &Table{log: logging.OrDefault(log, "genie.IcmFile")}
}

// Load reads cubes until the end of src. A stream whose remaining length is
// not a multiple of Size is rejected as a format error, and the table stays
// unloaded.
func (t *Table) Load(src *stream.Reader) error {
	if t.loaded {
		return errors.Wrap(fault.ErrPrecondition, "inverse color maps already loaded")
	}
	if rem := src.Remaining(); rem%Size != 0 {
		err := errors.Wrapf(fault.ErrFormat, "%d bytes of inverse color maps is not a multiple of %d", rem, Size)
		t.log.Errorf("%v", err)
		return err
	}

	var maps []*Map
	buf := make([]byte, Size)
	for !src.EOF() {
		src.Data(buf)
		if err := src.Err(); err != nil {
			err = errors.Wrapf(err, "reading inverse color map %d", len(maps))
			t.log.Errorf("%v", err)
			return err
		}
		m, err := NewMap(buf)
		if err != nil {
			return err
		}
		maps = append(maps, m)
	}

	t.maps = maps
	t.loaded = true
	if t.log.V(1) {
		t.log.Infof("loaded %d inverse color maps", len(maps))
	}
	return nil
}

// IsLoaded reports whether Load completed successfully.
func (t *Table) IsLoaded() bool {
	return t.loaded
}

// Len returns the number of loaded cubes.
func (t *Table) Len() int {
	return len(t.maps)
}

// Map returns the cube at position i in load order.
func (t *Table) Map(i int) (*Map, bool) {
	if i < 0 || i >= len(t.maps) {
		return nil, false
	}
	return t.maps[i], true
}
