// Package patternmask decodes the pattern mask resource, and folds chains of
// masks into the inverse color map used to shade a pixel.
//
// The resource holds Count masks. Each mask is a MaskSize-entry table, keyed
// by light index, where every entry packs a one-step light adjustment rule:
//
//	bit 0     ignore flag; the mask leaves its input untouched
//	bit 1     brighten (set) or darken (clear)
//	bits 2-7  candidate intensity
package patternmask

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/stream"
)

const (
	// Count is the number of masks in the resource.
	Count = 40
	// MaskSize is the number of entries in each mask.
	MaskSize = 4096
)

// Pattern identifies one of the Count masks.
type Pattern uint8

// Only some of the patterns have a known meaning; the rest are named by
// position.
const (
	FlatPattern Pattern = iota
	BlackPattern
	DiagDownPattern
	DiagUpPattern
	HalfDownPattern
	HalfUpPattern
	HalfLeftPattern
	HalfRightPattern
	DownPattern
	UpPattern
	LeftPattern
	RightPattern
	Pattern12
	Pattern13
	Pattern14
	Pattern15
	Pattern16
	Pattern17
	Pattern18
	Pattern19
	Pattern20
	Pattern21
	Pattern22
	Pattern23
	Pattern24
	Pattern25
	Pattern26
	Pattern27
	Pattern28
	Pattern29
	Pattern30
	Pattern31
	Pattern32
	Pattern33
	Pattern34
	Pattern35
	Pattern36
	Pattern37
	Pattern38
	Pattern39
)

var patternNames = [...]string{
	"FlatPattern",
	"BlackPattern",
	"DiagDownPattern",
	"DiagUpPattern",
	"HalfDownPattern",
	"HalfUpPattern",
	"HalfLeftPattern",
	"HalfRightPattern",
	"DownPattern",
	"UpPattern",
	"LeftPattern",
	"RightPattern",
}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return "Pattern" + strconv.Itoa(int(p))
}

// Valid reports whether p identifies one of the Count masks.
func (p Pattern) Valid() bool {
	return p < Count
}

// Parse resolves a pattern from its name (with or without the "Pattern"
// suffix, case-insensitively) or its decimal position.
func Parse(name string) (Pattern, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, err := strconv.Atoi(key); err == nil {
		if n < 0 || n >= Count {
			return 0, errors.Wrapf(fault.ErrRange, "pattern %d out of range [0,%d)", n, Count)
		}
		return Pattern(n), nil
	}
	for p := Pattern(0); p < Count; p++ {
		n := strings.ToLower(p.String())
		if key == n || key+"pattern" == n {
			return p, nil
		}
	}
	return 0, errors.Wrapf(fault.ErrRange, "unknown pattern %q", name)
}

// ParseList parses a comma separated list of patterns. An empty string is an
// empty list.
func ParseList(list string) ([]Pattern, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var out []Pattern
	for _, name := range strings.Split(list, ",") {
		p, err := Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Mask is a single decoded pattern mask.
type Mask [MaskSize]uint8

// Ignore reports whether the entry at i leaves its input unchanged.
func (m *Mask) Ignore(i int) bool {
	return m[i]&0x1 != 0
}

// Brighten reports whether the entry at i is a brightening rule.
func (m *Mask) Brighten(i int) bool {
	return m[i]&0x2 != 0
}

// Darken reports whether the entry at i is a darkening rule.
func (m *Mask) Darken(i int) bool {
	return m[i]&0x2 == 0
}

// Candidate returns the 6-bit intensity stored at i.
func (m *Mask) Candidate(i int) uint8 {
	return m[i] >> 2
}

// Apply performs the one-step clamp of the entry at i on input.
//
// The brightening test is done on bit 1 of the candidate intensity (bit 3 of
// the raw entry), not on the Brighten flag. The two disagree for some
// entries.
func (m *Mask) Apply(input uint8, i int) uint8 {
	if m.Ignore(i) {
		return input
	}

	candidate := m.Candidate(i)
	window := (input >> 2) & 0x1f
	if candidate&2 != 0 && candidate > window {
		return candidate
	} else if candidate < window {
		return candidate
	}
	return input
}

// Table holds all Count masks of a resource.
type Table struct {
	log    logging.Logger
	masks  [Count]Mask
	loaded bool
}

// New returns an unloaded table. A nil log selects the default glog logger.
func New(log logging.Logger) *Table {
	return &Table{log: logging.OrDefault(log, "genie.PatternMasksFile")}
}

// Load reads Count length-prefixed masks. Every declared length must be
// MaskSize; anything else is a format error and leaves the table unloaded.
func (t *Table) Load(src *stream.Reader) error {
	if t.loaded {
		return errors.Wrap(fault.ErrPrecondition, "pattern masks already loaded")
	}

	var masks [Count]Mask
	for i := range masks {
		size := src.Int32()
		if err := src.Err(); err != nil {
			err = errors.Wrapf(err, "reading size of pattern mask %d", i)
			t.log.Errorf("%v", err)
			return err
		}
		if size != MaskSize {
			err := errors.Wrapf(fault.ErrFormat, "pattern mask %d declares %d bytes; want %d", i, size, MaskSize)
			t.log.Errorf("%v", err)
			return err
		}
		src.Data(masks[i][:])
		if err := src.Err(); err != nil {
			err = errors.Wrapf(err, "reading pattern mask %d", i)
			t.log.Errorf("%v", err)
			return err
		}
	}

	t.masks = masks
	t.loaded = true
	if t.log.V(1) {
		t.log.Infof("loaded %d pattern masks", Count)
	}
	return nil
}

// IsLoaded reports whether Load completed successfully.
func (t *Table) IsLoaded() bool {
	return t.loaded
}

// Mask returns the mask for p.
func (t *Table) Mask(p Pattern) (*Mask, bool) {
	if !t.loaded || !p.Valid() {
		return nil, false
	}
	return &t.masks[p], true
}

// Fold chains the passed patterns at lightIndex, returning the lightmap
// index. The first pattern seeds the value with its candidate intensity;
// every following pattern applies its rule to the running value.
//
// Each step looks its mask up at the original lightIndex, never at a
// position derived from the running value.
func (t *Table) Fold(lightIndex int, patterns []Pattern) (uint8, error) {
	if !t.loaded {
		return 0, errors.Wrap(fault.ErrPrecondition, "pattern masks not loaded")
	}
	if len(patterns) == 0 {
		return 0, errors.Wrap(fault.ErrPrecondition, "no patterns to fold")
	}
	if lightIndex < 0 || lightIndex >= MaskSize {
		return 0, errors.Wrapf(fault.ErrRange, "light index %d outside of [0,%d)", lightIndex, MaskSize)
	}
	for _, p := range patterns {
		if !p.Valid() {
			return 0, errors.Wrapf(fault.ErrRange, "pattern %d outside of [0,%d)", p, Count)
		}
	}

	running := t.masks[patterns[0]].Candidate(lightIndex)
	for _, p := range patterns[1:] {
		running = t.masks[p].Apply(running, lightIndex)
	}
	return running, nil
}
