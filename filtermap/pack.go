package filtermap

// UnpackCommandHeader splits a command header byte into its light index
// (high nibble) and source pixel count (low nibble).
func UnpackCommandHeader(b uint8) (lightIndex, sourcePixelCount uint8) {
	return b >> 4, b & 0xF
}

// PackCommandHeader is the inverse of UnpackCommandHeader. Values are
// truncated to 4 bits.
func PackCommandHeader(lightIndex, sourcePixelCount uint8) uint8 {
	return (lightIndex&MaxLightIndex)<<4 | sourcePixelCount&MaxSourcePixels
}

// UnpackSourcePixel splits a 24-bit source pixel field. Bits above 24 are
// ignored.
func UnpackSourcePixel(v uint32) SourcePixel {
	v &= 0xFFFFFF
	return SourcePixel{
		Alpha:       uint16(v & MaxAlpha),
		SourceIndex: uint16(v >> 9),
	}
}

// PackSourcePixel is the inverse of UnpackSourcePixel. Values are truncated
// to their field widths.
func PackSourcePixel(p SourcePixel) uint32 {
	return uint32(p.SourceIndex&MaxSourceIndex)<<9 | uint32(p.Alpha&MaxAlpha)
}

// SplitSourcePixel returns the leading byte and trailing 16-bit unit of a
// packed source pixel, in the order they are stored.
func SplitSourcePixel(v uint32) (lo uint8, hi uint16) {
	return uint8(v), uint16(v >> 8)
}
