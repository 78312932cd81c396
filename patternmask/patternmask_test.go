package patternmask

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/icm"
	"badc0de.net/pkg/go-genie/lightmap"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/stream"
)

// entry packs a raw mask entry.
func entry(candidate uint8, brighten, ignore bool) uint8 {
	v := candidate << 2
	if brighten {
		v |= 0x2
	}
	if ignore {
		v |= 0x1
	}
	return v
}

// encodeMasks writes Count masks; masks missing from the passed map are all
// zero. size overrides the declared length of every mask when non-zero.
func encodeMasks(t *testing.T, masks map[Pattern]*Mask, size int32) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	for p := Pattern(0); p < Count; p++ {
		m := masks[p]
		if m == nil {
			m = &Mask{}
		}
		if size != 0 {
			w.Int32(size)
		} else {
			w.Int32(MaskSize)
		}
		w.Data(m[:])
	}
	require.NoError(t, w.Err())
	return buf.Bytes()
}

func loadMasks(t *testing.T, masks map[Pattern]*Mask) *Table {
	t.Helper()
	src, err := stream.NewReader(bytes.NewReader(encodeMasks(t, masks, 0)))
	require.NoError(t, err)
	tbl := New(&logging.Recorder{})
	require.NoError(t, tbl.Load(src))
	return tbl
}

func TestLoad(t *testing.T) {
	m := &Mask{}
	m[17] = entry(9, true, false)
	tbl := loadMasks(t, map[Pattern]*Mask{Pattern39: m})

	assert.True(t, tbl.IsLoaded())
	got, ok := tbl.Mask(Pattern39)
	require.True(t, ok)
	assert.Equal(t, uint8(9), got.Candidate(17))
	assert.True(t, got.Brighten(17))

	_, ok = tbl.Mask(Pattern(Count))
	assert.False(t, ok)
}

func TestLoadRejectsBadSize(t *testing.T) {
	src, err := stream.NewReader(bytes.NewReader(encodeMasks(t, nil, 4095)))
	require.NoError(t, err)
	rec := &logging.Recorder{}
	tbl := New(rec)
	assert.ErrorIs(t, tbl.Load(src), fault.ErrFormat)
	assert.False(t, tbl.IsLoaded())
	assert.Equal(t, 1, rec.Count(logging.Error))
}

func TestLoadRejectsTruncated(t *testing.T) {
	data := encodeMasks(t, nil, 0)
	src, err := stream.NewReader(bytes.NewReader(data[:len(data)-1]))
	require.NoError(t, err)
	tbl := New(&logging.Recorder{})
	assert.ErrorIs(t, tbl.Load(src), fault.ErrIO)
	assert.False(t, tbl.IsLoaded())
}

func TestFlags(t *testing.T) {
	m := &Mask{}
	m[0] = entry(0, false, true)
	m[1] = entry(0, true, false)
	m[2] = entry(0, false, false)

	assert.True(t, m.Ignore(0))
	assert.False(t, m.Ignore(1))
	assert.True(t, m.Brighten(1))
	assert.False(t, m.Darken(1))
	assert.True(t, m.Darken(2))
	assert.False(t, m.Brighten(2))
}

func TestApply(t *testing.T) {
	m := &Mask{}
	m[0] = entry(30, true, true)  // ignored
	m[1] = entry(6, false, false) // candidate has bit 1 set
	m[2] = entry(4, false, false) // candidate lacks bit 1
	m[3] = entry(5, true, false)  // brighten flag, but candidate lacks bit 1

	for _, tc := range []struct {
		name  string
		index int
		input uint8
		want  uint8
	}{
		{"ignored entry returns input", 0, 200, 200},
		{"raises to candidate above window", 1, 2 << 2, 6},
		{"lowers to candidate below window", 2, 9 << 2, 4},
		{"equal window returns input", 2, 4<<2 | 3, 4<<2 | 3},
		{"no raise without candidate bit", 2, 1 << 2, 1 << 2},
		{"brighten flag alone does not raise", 3, 1 << 2, 1 << 2},
		{"brighten flag still lowers", 3, 20 << 2, 5},
		{"window ignores top bit", 1, 0x80 | 6<<2, 0x80 | 6<<2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Apply(tc.input, tc.index))
		})
	}
}

func TestApplyIdempotentAtEqualWindow(t *testing.T) {
	m := &Mask{}
	for c := uint8(0); c < 32; c++ {
		m[int(c)] = entry(c, c%2 == 0, false)
		input := c<<2 | 1
		once := m.Apply(input, int(c))
		assert.Equal(t, input, once, "candidate %d", c)
		assert.Equal(t, once, m.Apply(once, int(c)), "candidate %d", c)
	}
}

func TestFold(t *testing.T) {
	const lightIndex = 100

	first := &Mask{}
	first[lightIndex] = entry(40, false, false)

	// The second mask holds a different rule at the position the running
	// value would point at; only the one at lightIndex must be used.
	second := &Mask{}
	second[lightIndex] = entry(7, false, false)
	second[40] = entry(60, false, false)

	tbl := loadMasks(t, map[Pattern]*Mask{DiagUpPattern: first, Pattern25: second})

	got, err := tbl.Fold(lightIndex, []Pattern{DiagUpPattern})
	require.NoError(t, err)
	assert.Equal(t, uint8(40), got)

	// window of 40 is (40>>2)&0x1f = 10; candidate 7 < 10.
	got, err = tbl.Fold(lightIndex, []Pattern{DiagUpPattern, Pattern25})
	require.NoError(t, err)
	assert.Equal(t, uint8(7), got)
}

func TestFoldErrors(t *testing.T) {
	tbl := New(&logging.Recorder{})
	_, err := tbl.Fold(0, []Pattern{FlatPattern})
	assert.ErrorIs(t, err, fault.ErrPrecondition)

	tbl = loadMasks(t, nil)
	_, err = tbl.Fold(MaskSize, []Pattern{FlatPattern})
	assert.ErrorIs(t, err, fault.ErrRange)
	_, err = tbl.Fold(0, []Pattern{Pattern(Count)})
	assert.ErrorIs(t, err, fault.ErrRange)
}

func loadCubes(t *testing.T, n int) *icm.Table {
	t.Helper()
	data := make([]byte, 0, n*icm.Size)
	for i := 0; i < n; i++ {
		data = append(data, bytes.Repeat([]byte{byte(i)}, icm.Size)...)
	}
	src, err := stream.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	tbl := icm.New(&logging.Recorder{})
	require.NoError(t, tbl.Load(src))
	return tbl
}

func TestResolverNoPatterns(t *testing.T) {
	rec := &logging.Recorder{}
	r := NewResolver(rec, loadMasks(t, nil), lightmap.New(nil), loadCubes(t, 6))
	for _, li := range []int{0, 1, 15, 4095} {
		assert.Equal(t, icm.NeutralIndex, r.ICMIndex(li, nil))
	}
	m := r.Select(3, nil)
	require.NotNil(t, m)
	assert.Equal(t, uint8(icm.NeutralIndex), m.PaletteIndex(1, 2, 3))
	assert.Equal(t, 0, rec.Count(logging.Error))
}

func TestResolverLooksUpLightmap(t *testing.T) {
	const lightIndex = 3
	m := &Mask{}
	m[lightIndex] = entry(2, false, false)
	masks := loadMasks(t, map[Pattern]*Mask{HalfUpPattern: m})

	rows := make([][]uint8, 64)
	for i := range rows {
		rows[i] = make([]uint8, 16)
	}
	rows[2][lightIndex] = 5

	r := NewResolver(&logging.Recorder{}, masks, lightmap.New(rows), loadCubes(t, 6))
	assert.Equal(t, 5, r.ICMIndex(lightIndex, []Pattern{HalfUpPattern}))
	sel := r.Select(lightIndex, []Pattern{HalfUpPattern})
	require.NotNil(t, sel)
	assert.Equal(t, uint8(5), sel.PaletteIndex(0, 0, 0))
}

func TestResolverCubeOutOfRange(t *testing.T) {
	const lightIndex = 3
	m := &Mask{}
	m[lightIndex] = entry(2, false, false)
	masks := loadMasks(t, map[Pattern]*Mask{HalfUpPattern: m})

	rows := make([][]uint8, 64)
	for i := range rows {
		rows[i] = make([]uint8, 16)
	}
	rows[2][lightIndex] = 200

	rec := &logging.Recorder{}
	r := NewResolver(rec, masks, lightmap.New(rows), loadCubes(t, 6))
	assert.Equal(t, icm.NeutralIndex, r.ICMIndex(lightIndex, []Pattern{HalfUpPattern}))
	assert.Equal(t, icm.NeutralIndex, r.ICMIndex(lightIndex, []Pattern{HalfUpPattern}))
	assert.Equal(t, 1, rec.Count(logging.Error), "repeated reports are logged once")
}

func TestResolverMissingNeutralCube(t *testing.T) {
	r := NewResolver(&logging.Recorder{}, loadMasks(t, nil), lightmap.New(nil), loadCubes(t, 2))
	assert.Nil(t, r.Select(0, nil))
}

func TestResolverUnresolvableLightmap(t *testing.T) {
	rec := &logging.Recorder{}
	r := NewResolver(rec, loadMasks(t, nil), lightmap.New(nil), loadCubes(t, 6))
	assert.Equal(t, icm.NeutralIndex, r.ICMIndex(0, []Pattern{FlatPattern}))
	assert.Equal(t, 1, rec.Count(logging.Error))
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Pattern{
		"0":            FlatPattern,
		"flat":         FlatPattern,
		"HalfUp":       HalfUpPattern,
		" downpattern": DownPattern,
		"Pattern23":    Pattern23,
		"39":           Pattern39,
	} {
		got, err := Parse(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, got, in)
		}
	}
	for _, in := range []string{"", "40", "-1", "sideways"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, fault.ErrRange, in)
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("8, up,11")
	require.NoError(t, err)
	assert.Equal(t, []Pattern{DownPattern, UpPattern, RightPattern}, got)

	got, err = ParseList("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseList("8,,9")
	assert.Error(t, err)
}
