package slope_test

import (
	"fmt"

	"badc0de.net/pkg/go-genie/slope"
)

// ExampleParse resolves a legacy three-corners-up name to the slope it is
// stored as.
func ExampleParse() {
	s, err := slope.Parse("north_south_east_up")
	if err != nil {
		fmt.Printf("failed to parse slope: %s", err)
		return
	}
	fmt.Printf("%v = %d\n", s, s)
	// Output: WestDown = 15
}
