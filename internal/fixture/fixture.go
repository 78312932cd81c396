// Package fixture encodes synthetic genie resources for tests.
//
// The encoders produce exactly the layouts the decoders consume. They are not
// a general-purpose writer; nothing outside of tests should depend on them.
package fixture

import (
	"bytes"

	"badc0de.net/pkg/go-genie/filtermap"
	"badc0de.net/pkg/go-genie/icm"
	"badc0de.net/pkg/go-genie/patternmask"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/stream"
)

// Cubes encodes n inverse color maps; every cell of cube i holds value(i).
func Cubes(n int, value func(i int) uint8) []byte {
	buf := make([]byte, 0, n*icm.Size)
	for i := 0; i < n; i++ {
		buf = append(buf, bytes.Repeat([]byte{value(i)}, icm.Size)...)
	}
	return buf
}

// Masks encodes all pattern masks. Masks missing from the map are zero.
func Masks(masks map[patternmask.Pattern]*patternmask.Mask) []byte {
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	for p := patternmask.Pattern(0); p < patternmask.Count; p++ {
		m := masks[p]
		if m == nil {
			m = &patternmask.Mask{}
		}
		w.Int32(patternmask.MaskSize)
		w.Data(m[:])
	}
	return buf.Bytes()
}

// Filtermaps encodes one filtermap per slope. Slopes beyond len(maps) get an
// empty filtermap.
func Filtermaps(maps [][]filtermap.Line) []byte {
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	for s := 0; s < slope.Count; s++ {
		var lines []filtermap.Line
		if s < len(maps) {
			lines = maps[s]
		}

		body := &bytes.Buffer{}
		bw := stream.NewWriter(body)
		bw.Uint32(uint32(len(lines)))
		for _, line := range lines {
			bw.Uint16(uint16(len(line.Commands)))
			for _, cmd := range line.Commands {
				bw.Uint8(filtermap.PackCommandHeader(cmd.LightIndex, uint8(len(cmd.SourcePixels))))
				for _, sp := range cmd.SourcePixels {
					lo, hi := filtermap.SplitSourcePixel(filtermap.PackSourcePixel(sp))
					bw.Uint8(lo)
					bw.Uint16(hi)
				}
			}
		}

		w.Uint32(uint32(body.Len()))
		w.Data(body.Bytes())
	}
	return buf.Bytes()
}

// Template describes one slope template for Templates.
type Template struct {
	Width, Height      uint32
	HotspotX, HotspotY int32
	DataSize           int32
	LeftEdges          []uint16
	RightEdges         []uint16
	CmdOffsets         []uint32

	// Padding is appended to the header block, and counted in its declared
	// size, without being described by any field.
	Padding int
}

const templateHeaderSize = 7 * 4

// Templates encodes the passed templates (padded to slope.Count with empty
// ones). Headers come first; each template's outline and command tables
// follow all headers. It returns the encoded resource together with, for
// every slope, the header block start and the relative offsets written for
// the outline and command tables.
func Templates(templates []Template) (data []byte, blockStarts []int64, outlineRel, cmdRel []uint32) {
	all := make([]Template, slope.Count)
	copy(all, templates)

	blockStarts = make([]int64, slope.Count)
	outlineRel = make([]uint32, slope.Count)
	cmdRel = make([]uint32, slope.Count)

	// Lay out the headers, then the row tables.
	pos := int64(0)
	for i, t := range all {
		pos += 4
		blockStarts[i] = pos
		pos += int64(templateHeaderSize + t.Padding)
	}
	for i, t := range all {
		outlineRel[i] = uint32(pos - blockStarts[i])
		pos += int64(t.Height) * 4
		cmdRel[i] = uint32(pos - blockStarts[i])
		pos += int64(t.Height) * 4
	}

	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	for i, t := range all {
		w.Uint32(uint32(templateHeaderSize + t.Padding))
		w.Uint32(t.Width)
		w.Uint32(t.Height)
		w.Int32(t.HotspotX)
		w.Int32(t.HotspotY)
		w.Int32(t.DataSize)
		w.Uint32(outlineRel[i])
		w.Uint32(cmdRel[i])
		w.Data(bytes.Repeat([]byte{0xEE}, t.Padding))
	}
	for _, t := range all {
		for row := 0; row < int(t.Height); row++ {
			w.Uint16(at16(t.LeftEdges, row))
			w.Uint16(at16(t.RightEdges, row))
		}
		for row := 0; row < int(t.Height); row++ {
			w.Uint32(at32(t.CmdOffsets, row))
		}
	}
	return buf.Bytes(), blockStarts, outlineRel, cmdRel
}

func at16(v []uint16, i int) uint16 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func at32(v []uint32, i int) uint32 {
	if i < len(v) {
		return v[i]
	}
	return 0
}
