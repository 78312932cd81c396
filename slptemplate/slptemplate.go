// Package slptemplate decodes slope templates, and combines them with the
// filtermaps, pattern masks and inverse color maps to turn a flat terrain
// frame into its variant for a given slope.
//
// A template is basically a patch for a frame: it overwrites the frame's
// size, hotspot and row edges, and names the filtermap that redraws its
// pixels.
//
// The resource holds slope.Count header blocks, each preceded by its byte
// size, followed out-of-band by per-row tables. Offsets to the row tables
// are stored relative to the start of their header block.
package slptemplate

import (
	"image/color"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/filtermap"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/patternmask"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/slp"
	"badc0de.net/pkg/go-genie/stream"
)

// State of a Set.
type State int

const (
	// Unloaded: nothing has been decoded.
	Unloaded State = iota
	// Loaded: headers and row tables are available.
	Loaded
	// PartiallyUnloaded: Unload discarded the row tables, headers remain.
	PartiallyUnloaded
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loaded:
		return "Loaded"
	case PartiallyUnloaded:
		return "PartiallyUnloaded"
	default:
		return "State(?)"
	}
}

// Template is the decoded patch for one slope.
type Template struct {
	Width, Height      uint32
	HotspotX, HotspotY int32
	DataSize           int32

	// BlockStart is the stream position of the header block, just past its
	// declared size.
	BlockStart int64
	BlockSize  uint32

	// OutlineTableOffset and CmdTableOffset are absolute stream positions.
	OutlineTableOffset int64
	CmdTableOffset     int64

	LeftEdges  []uint16
	RightEdges []uint16

	// CmdOffsets is decoded but not applied to patched frames.
	CmdOffsets []uint32
}

// Set holds the templates for all slopes.
//
// Once loaded, a Set may be shared by concurrent GetPatchedFrame callers as
// long as nobody calls Load or Unload at the same time.
type Set struct {
	log        logging.Logger
	filtermaps *filtermap.Table
	selector   slp.ICMSelector

	templates [slope.Count]Template
	state     State
}

// New returns an unloaded Set which will patch frames using the passed
// filtermaps and inverse color map selector. A nil log selects the default
// glog logger.
func New(log logging.Logger, filtermaps *filtermap.Table, selector slp.ICMSelector) *Set {
	return &Set{
		log:        logging.OrDefault(log, "genie.SlpTemplate"),
		filtermaps: filtermaps,
		selector:   selector,
	}
}

// Load decodes all templates from src. Loading an already loaded Set does
// nothing. On error the Set keeps its previous state and data.
func (s *Set) Load(src *stream.Reader) error {
	if s.state == Loaded {
		s.log.Warningf("templates already loaded")
		return nil
	}

	var templates [slope.Count]Template
	if err := s.loadHeaders(src, &templates); err != nil {
		s.log.Errorf("%v", err)
		return err
	}
	if err := s.loadRows(src, &templates); err != nil {
		s.log.Errorf("%v", err)
		return err
	}

	s.templates = templates
	s.state = Loaded
	if s.log.V(1) {
		s.log.Infof("loaded %d slope templates", slope.Count)
	}
	return nil
}

func (s *Set) loadHeaders(src *stream.Reader, templates *[slope.Count]Template) error {
	for _, sl := range slope.All() {
		t := &templates[sl]

		t.BlockSize = src.Uint32()
		t.BlockStart = src.Tell()

		t.Width = src.Uint32()
		t.Height = src.Uint32()
		t.HotspotX = src.Int32()
		t.HotspotY = src.Int32()
		t.DataSize = src.Int32()
		t.OutlineTableOffset = int64(src.Uint32()) + t.BlockStart
		t.CmdTableOffset = int64(src.Uint32()) + t.BlockStart

		// The block may be larger than the fields above.
		src.Seek(t.BlockStart + int64(t.BlockSize))
		if err := src.Err(); err != nil {
			return errors.Wrapf(err, "reading template header for slope %v", sl)
		}

		if s.log.V(2) {
			s.log.Infof("slope %v: %dx%d hotspot %d,%d, outline at %d, commands at %d",
				sl, t.Width, t.Height, t.HotspotX, t.HotspotY, t.OutlineTableOffset, t.CmdTableOffset)
		}
	}
	return nil
}

func (s *Set) loadRows(src *stream.Reader, templates *[slope.Count]Template) error {
	for _, sl := range slope.All() {
		t := &templates[sl]

		// Each row takes 4 bytes in both tables.
		if int64(t.Height)*4 > src.Size() {
			return errors.Wrapf(fault.ErrFormat, "slope %v height %d does not fit in a %d byte stream", sl, t.Height, src.Size())
		}

		src.Seek(t.OutlineTableOffset)
		t.LeftEdges = make([]uint16, t.Height)
		t.RightEdges = make([]uint16, t.Height)
		for row := range t.LeftEdges {
			t.LeftEdges[row] = src.Uint16()
			t.RightEdges[row] = src.Uint16()
		}
		if err := src.Err(); err != nil {
			return errors.Wrapf(err, "reading outline table for slope %v", sl)
		}

		src.Seek(t.CmdTableOffset)
		t.CmdOffsets = make([]uint32, t.Height)
		for row := range t.CmdOffsets {
			t.CmdOffsets[row] = src.Uint32()
		}
		if err := src.Err(); err != nil {
			return errors.Wrapf(err, "reading command table for slope %v", sl)
		}
	}
	return nil
}

// Unload discards the row tables of every template. Header geometry is kept.
func (s *Set) Unload() {
	if s.state != Loaded {
		s.log.Warningf("trying to unload templates which are not loaded (%v)", s.state)
	}

	for i := range s.templates {
		t := &s.templates[i]
		t.LeftEdges = nil
		t.RightEdges = nil
		t.CmdOffsets = nil
	}
	if s.state == Loaded {
		s.state = PartiallyUnloaded
	}
}

// IsLoaded reports whether both passes of Load completed since the last Load
// or Unload.
func (s *Set) IsLoaded() bool {
	return s.state == Loaded
}

// State returns the current state.
func (s *Set) State() State {
	return s.state
}

// Template returns a copy of the template for sl. Headers are available in
// both the Loaded and PartiallyUnloaded states.
func (s *Set) Template(sl slope.Slope) (Template, bool) {
	if s.state == Unloaded || !sl.Valid() {
		return Template{}, false
	}
	t := s.templates[sl]
	t.LeftEdges = append([]uint16(nil), t.LeftEdges...)
	t.RightEdges = append([]uint16(nil), t.RightEdges...)
	t.CmdOffsets = append([]uint32(nil), t.CmdOffsets...)
	return t, true
}

// GetPatchedFrame returns a copy of source patched for slope sl: resized,
// re-anchored and re-trimmed according to the slope's template, with its
// pixels redrawn by the slope's filtermap under the passed active patterns.
//
// source is never modified, and the returned frame shares nothing with it.
// If a precondition is not met (no source, filtermaps or templates not
// loaded, invalid slope), the failure is logged and nil is returned.
func (s *Set) GetPatchedFrame(source *slp.Frame, sl slope.Slope, patterns []patternmask.Pattern, pal color.Palette) *slp.Frame {
	if source == nil {
		s.log.Errorf("passed nil frame")
		return nil
	}
	if s.filtermaps == nil || !s.filtermaps.IsLoaded() {
		s.log.Errorf("no filter map file loaded")
		return nil
	}
	if s.state != Loaded {
		s.log.Errorf("templates not loaded (%v)", s.state)
		return nil
	}
	if !sl.Valid() {
		s.log.Errorf("invalid slope %v", sl)
		return nil
	}

	t := &s.templates[sl]
	frame := source.Clone()
	frame.SetSize(t.Width, t.Height)
	frame.HotspotX = t.HotspotX
	frame.HotspotY = t.HotspotY
	frame.LeftEdges = append([]uint16(nil), t.LeftEdges...)
	frame.RightEdges = append([]uint16(nil), t.RightEdges...)

	if err := frame.Filter(s.filtermaps, sl, patterns, pal, s.selector); err != nil {
		s.log.Errorf("could not filter frame for slope %v: %v", sl, err)
		return nil
	}
	return frame
}
