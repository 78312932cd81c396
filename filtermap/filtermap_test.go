package filtermap_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/filtermap"
	"badc0de.net/pkg/go-genie/internal/fixture"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/stream"
)

func reader(t *testing.T, data []byte) *stream.Reader {
	t.Helper()
	r, err := stream.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	return r
}

func TestLoad(t *testing.T) {
	sp := func(alpha, index uint16) filtermap.SourcePixel {
		return filtermap.SourcePixel{Alpha: alpha, SourceIndex: index}
	}
	maps := make([][]filtermap.Line, slope.Count)
	maps[slope.Flat] = []filtermap.Line{
		{Commands: []filtermap.Command{
			{LightIndex: 9, SourcePixels: []filtermap.SourcePixel{sp(256, 0)}},
			{LightIndex: 2, SourcePixels: []filtermap.SourcePixel{sp(128, 1), sp(128, 2)}},
		}},
		{Commands: []filtermap.Command{
			{LightIndex: 15},
		}},
	}
	maps[slope.EastDown] = []filtermap.Line{
		{Commands: []filtermap.Command{
			{LightIndex: 1, SourcePixels: []filtermap.SourcePixel{sp(300, 4), sp(511, 32767), sp(1, 1)}},
		}},
	}

	tbl := filtermap.New(&logging.Recorder{})
	require.NoError(t, tbl.Load(reader(t, fixture.Filtermaps(maps))))
	assert.True(t, tbl.IsLoaded())

	for _, s := range slope.All() {
		fm, ok := tbl.Map(s)
		require.True(t, ok, "slope %v", s)
		assert.Equal(t, len(maps[s]), fm.Height(), "slope %v height", s)
		for y, line := range maps[s] {
			require.Equal(t, line.Width(), fm.Lines[y].Width(), "slope %v line %d", s, y)
			for x, cmd := range line.Commands {
				got := fm.Lines[y].Commands[x]
				assert.Equal(t, cmd.LightIndex, got.LightIndex)
				assert.Equal(t, len(cmd.SourcePixels), len(got.SourcePixels))
				for n := range cmd.SourcePixels {
					assert.Equal(t, cmd.SourcePixels[n], got.SourcePixels[n], "slope %v line %d command %d pixel %d", s, y, x, n)
				}
			}
		}
	}

	fm, _ := tbl.Map(slope.Flat)
	assert.Equal(t, uint32(4+2+(1+3)+(1+6)+2+1), fm.DeclaredSize)
}

func TestLoadTruncated(t *testing.T) {
	maps := [][]filtermap.Line{{
		{Commands: []filtermap.Command{{LightIndex: 1, SourcePixels: []filtermap.SourcePixel{{Alpha: 1, SourceIndex: 1}}}}},
	}}
	data := fixture.Filtermaps(maps)

	rec := &logging.Recorder{}
	tbl := filtermap.New(rec)
	err := tbl.Load(reader(t, data[:len(data)-4]))
	assert.Error(t, err)
	assert.True(t, errorIsAny(err, fault.ErrIO, fault.ErrFormat), "got %v", err)
	assert.False(t, tbl.IsLoaded())
	assert.Equal(t, 1, rec.Count(logging.Error))

	_, ok := tbl.Map(slope.Flat)
	assert.False(t, ok)
}

func TestLoadImplausibleHeight(t *testing.T) {
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	w.Uint32(8)
	w.Uint32(1 << 30)
	require.NoError(t, w.Err())

	tbl := filtermap.New(&logging.Recorder{})
	assert.ErrorIs(t, tbl.Load(reader(t, buf.Bytes())), fault.ErrFormat)
}

func TestMapInvalidSlope(t *testing.T) {
	tbl := filtermap.New(&logging.Recorder{})
	require.NoError(t, tbl.Load(reader(t, fixture.Filtermaps(nil))))
	_, ok := tbl.Map(slope.Slope(slope.Count))
	assert.False(t, ok)
}

func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
