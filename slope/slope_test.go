package slope

import (
	"testing"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/ttesting"
)

func TestAll(t *testing.T) {
	all := All()
	ttesting.AssertEqualInt(t, "count", len(all), Count)
	for i, s := range all {
		if int(s) != i {
			t.Errorf("All()[%d] = %v; want position %d", i, s, i)
		}
	}
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Slope
	}{
		{"Flat", Flat},
		{"eastdown", EastDown},
		{"north_up_2", NorthUp2},
		{"SouthWestEastUp", NorthDown},
		{"northwesteastup", SouthDown},
		{"NorthSouthEastUp", WestDown},
		{"north-south-west-up", WestDown},
		{"7", SouthEastUp},
	} {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "17", "99", "uphill"} {
		_, err := Parse(in)
		ttesting.AssertErrorIs(t, "reject "+in, err, fault.ErrRange)
	}
}

func TestString(t *testing.T) {
	if got := SouthEastUp.String(); got != "SouthEastUp" {
		t.Errorf("got %q; want SouthEastUp", got)
	}
	if got := Slope(40).String(); got != "Slope(40)" {
		t.Errorf("got %q; want Slope(40)", got)
	}
}
