// Package slope enumerates the terrain slope orientations for which sloped
// variants of a flat terrain tile are generated.
package slope

import (
	"strconv"
	"strings"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
)

// Slope is one of the Count terrain-tile edge-join orientations. The values
// are positions in the per-slope tables of the filtermap and slope template
// resources.
type Slope uint8

const (
	Flat Slope = iota
	SouthUp
	NorthUp
	WestUp
	EastUp
	SouthWestUp
	NorthWestUp
	SouthEastUp
	NorthEastUp
	SouthUp2
	NorthUp2
	WestUp2
	EastUp2
	NorthDown
	SouthDown
	WestDown
	EastDown

	// Count is the number of slopes; every per-slope table has this many
	// entries.
	Count = 17
)

var names = [Count]string{
	"Flat",
	"SouthUp",
	"NorthUp",
	"WestUp",
	"EastUp",
	"SouthWestUp",
	"NorthWestUp",
	"SouthEastUp",
	"NorthEastUp",
	"SouthUp2",
	"NorthUp2",
	"WestUp2",
	"EastUp2",
	"NorthDown",
	"SouthDown",
	"WestDown",
	"EastDown",
}

// aliases are legacy names which map onto a canonical slope. Three corners
// up is the same tile as one side down.
var aliases = map[string]Slope{
	"southwesteastup":  NorthDown,
	"northwesteastup":  SouthDown,
	"northsoutheastup": WestDown,
	"northsouthwestup": WestDown,
}

func (s Slope) String() string {
	if !s.Valid() {
		return "Slope(" + strconv.Itoa(int(s)) + ")"
	}
	return names[s]
}

// Valid reports whether s is one of the Count canonical slopes.
func (s Slope) Valid() bool {
	return s < Count
}

// All returns every slope, in table order.
func All() []Slope {
	out := make([]Slope, 0, Count)
	for i := range iter.N(Count) {
		out = append(out, Slope(i))
	}
	return out
}

// Parse resolves a slope from a canonical name, a legacy alias, or a decimal
// table position. Names are matched case-insensitively, ignoring '_' and '-'.
func Parse(name string) (Slope, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(strings.TrimSpace(name)))
	if key == "" {
		return 0, errors.Wrap(fault.ErrRange, "empty slope name")
	}
	for i, n := range names {
		if strings.ToLower(n) == key {
			return Slope(i), nil
		}
	}
	if s, ok := aliases[key]; ok {
		return s, nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 0 && n < Count {
			return Slope(n), nil
		}
		return 0, errors.Wrapf(fault.ErrRange, "slope %d out of range [0,%d)", n, Count)
	}
	return 0, errors.Wrapf(fault.ErrRange, "unknown slope %q", name)
}
