package filtermap_test

import (
	"fmt"

	"badc0de.net/pkg/go-genie/filtermap"
)

func ExampleUnpackCommandHeader() {
	light, count := filtermap.UnpackCommandHeader(0x95)
	fmt.Printf("light index %d, %d source pixels\n", light, count)
	// Output: light index 9, 5 source pixels
}

// ExampleUnpackSourcePixel decodes a source pixel from its stored byte and
// 16-bit unit.
func ExampleUnpackSourcePixel() {
	lo, hi := uint8(0x2C), uint16(0x0909)
	p := filtermap.UnpackSourcePixel(uint32(lo) | uint32(hi)<<8)
	fmt.Printf("alpha %d, source %d\n", p.Alpha, p.SourceIndex)
	// Output: alpha 300, source 1156
}
