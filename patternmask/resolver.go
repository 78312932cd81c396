package patternmask

import (
	"sync"

	"badc0de.net/pkg/go-genie/icm"
	"badc0de.net/pkg/go-genie/logging"
)

// Lightmap maps a folded pattern value and a light index to a cube index.
type Lightmap interface {
	Lookup(lightmapIndex, lightIndex int) (int, bool)
}

// Resolver selects the inverse color map for a light index under a set of
// active patterns, combining the pattern masks, a lightmap and the loaded
// cubes.
//
// A Resolver only reads the tables it was built from, so it may be shared by
// concurrent callers once they are loaded.
type Resolver struct {
	log      logging.Logger
	masks    *Table
	lightmap Lightmap
	icms     *icm.Table

	// warned holds the rangeReports already logged.
	warned sync.Map
}

// NewResolver returns a Resolver over the passed tables. A nil log selects
// the default glog logger.
func NewResolver(log logging.Logger, masks *Table, lightmap Lightmap, icms *icm.Table) *Resolver {
	log = logging.OrDefault(log, "genie.PatternMasksFile")
	if masks == nil {
		masks = New(log)
	}
	if icms == nil {
		icms = icm.New(log)
	}
	return &Resolver{
		log:      log,
		masks:    masks,
		lightmap: lightmap,
		icms:     icms,
	}
}

// ICMIndex returns the index of the cube to use for lightIndex.
//
// With no active patterns the neutral cube is used. Otherwise the patterns
// are folded (see Table.Fold) and the result is looked up in the lightmap
// together with lightIndex. Any index that cannot be resolved, including a
// cube index beyond the loaded cubes, is logged and replaced by the neutral
// cube.
func (r *Resolver) ICMIndex(lightIndex int, patterns []Pattern) int {
	if len(patterns) == 0 {
		return icm.NeutralIndex
	}

	running, err := r.masks.Fold(lightIndex, patterns)
	if err != nil {
		r.log.Errorf("could not fold patterns %v at light index %d: %v", patterns, lightIndex, err)
		return icm.NeutralIndex
	}

	if r.lightmap == nil {
		r.log.Errorf("no lightmap to resolve lightmap index %d", running)
		return icm.NeutralIndex
	}
	cube, ok := r.lightmap.Lookup(int(running), lightIndex)
	if !ok {
		r.reportRange("lightmap index out of range", int(running), lightIndex)
		return icm.NeutralIndex
	}

	if cube >= r.icms.Len() {
		r.reportRange("icm index out of range", cube, r.icms.Len())
		return icm.NeutralIndex
	}
	return cube
}

// Select returns the cube chosen by ICMIndex, or nil if even the neutral cube
// is not loaded.
func (r *Resolver) Select(lightIndex int, patterns []Pattern) *icm.Map {
	m, ok := r.icms.Map(r.ICMIndex(lightIndex, patterns))
	if !ok {
		return nil
	}
	return m
}

type rangeReport struct {
	what         string
	index, limit int
}

// reportRange logs an unresolvable index once per distinct report.
func (r *Resolver) reportRange(what string, index, limit int) {
	if _, seen := r.warned.LoadOrStore(rangeReport{what, index, limit}, true); seen {
		return
	}
	r.log.Errorf("%s: %d (limit %d)", what, index, limit)
}
