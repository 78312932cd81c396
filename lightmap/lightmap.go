// Package lightmap holds the table translating a folded pattern-mask result
// and a light index into an inverse color map index.
package lightmap

import (
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/stream"
)

// Table maps [lightmapIndex][lightIndex] to a cube index.
type Table struct {
	rows [][]uint8
}

// New builds a table from rows already in memory. The rows are not copied.
func New(rows [][]uint8) *Table {
	return &Table{rows: rows}
}

// Decode reads rows of rowWidth bytes until the end of src. A partial
// trailing row is a format error.
func Decode(src *stream.Reader, rowWidth int) (*Table, error) {
	if rowWidth <= 0 {
		return nil, errors.Wrapf(fault.ErrPrecondition, "lightmap row width %d", rowWidth)
	}
	if rem := src.Remaining(); rem%int64(rowWidth) != 0 {
		return nil, errors.Wrapf(fault.ErrFormat, "%d bytes of lightmaps is not a multiple of row width %d", rem, rowWidth)
	}
	t := &Table{}
	for !src.EOF() {
		row := make([]uint8, rowWidth)
		src.Data(row)
		if err := src.Err(); err != nil {
			return nil, errors.Wrapf(err, "reading lightmap row %d", len(t.rows))
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Lookup returns the cube index stored at [lightmapIndex][lightIndex]. The
// boolean is false if either index is outside of the table.
func (t *Table) Lookup(lightmapIndex, lightIndex int) (int, bool) {
	if lightmapIndex < 0 || lightmapIndex >= len(t.rows) {
		return 0, false
	}
	row := t.rows[lightmapIndex]
	if lightIndex < 0 || lightIndex >= len(row) {
		return 0, false
	}
	return int(row[lightIndex]), true
}
