// Package slp models a decoded sprite frame: a rectangle of palette indices,
// with a hotspot and per-row edge trims delimiting the visible part of every
// row.
//
// Decoding the frame resource itself is not done here; frames are built in
// memory or from images (see FromImage). What this package provides is the
// frame filter used to produce sloped terrain tiles.
package slp

import (
	"image"
	"image/color"
)

// Frame is a single sprite frame.
//
// Pixels and Opaque are row-major. After SetSize they may still hold data
// laid out for the previous size; Filter rebuilds them for the current one.
type Frame struct {
	Width, Height      uint32
	HotspotX, HotspotY int32

	// LeftEdges and RightEdges hold, per row, the number of transparent
	// pixels at the start and the end of the row.
	LeftEdges  []uint16
	RightEdges []uint16

	Pixels []uint8
	Opaque []bool
}

// NewFrame returns a w×h frame with every pixel opaque and set to index 0.
func NewFrame(w, h int) *Frame {
	f := &Frame{
		Width:      uint32(w),
		Height:     uint32(h),
		LeftEdges:  make([]uint16, h),
		RightEdges: make([]uint16, h),
		Pixels:     make([]uint8, w*h),
		Opaque:     make([]bool, w*h),
	}
	for i := range f.Opaque {
		f.Opaque[i] = true
	}
	return f
}

// Clone returns a deep copy of f. Nothing in the copy aliases f.
func (f *Frame) Clone() *Frame {
	c := *f
	c.LeftEdges = append([]uint16(nil), f.LeftEdges...)
	c.RightEdges = append([]uint16(nil), f.RightEdges...)
	c.Pixels = append([]uint8(nil), f.Pixels...)
	c.Opaque = append([]bool(nil), f.Opaque...)
	return &c
}

// SetSize changes the declared size of the frame. Pixel data is left
// untouched.
func (f *Frame) SetSize(w, h uint32) {
	f.Width = w
	f.Height = h
}

// visible reports whether pixel (x, y) lies inside the row's edges and is
// opaque.
func (f *Frame) visible(x, y int) bool {
	i := y*int(f.Width) + x
	if i >= len(f.Pixels) || i >= len(f.Opaque) || !f.Opaque[i] {
		return false
	}
	if y < len(f.LeftEdges) && x < int(f.LeftEdges[y]) {
		return false
	}
	if y < len(f.RightEdges) && x >= int(f.Width)-int(f.RightEdges[y]) {
		return false
	}
	return true
}

// Image renders f with the passed palette. Pixels outside of the row edges,
// transparent pixels and indices beyond the palette are fully transparent.
func (f *Frame) Image(pal color.Palette) *image.NRGBA {
	w, h := int(f.Width), int(f.Height)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !f.visible(x, y) {
				continue
			}
			idx := int(f.Pixels[y*w+x])
			if idx >= len(pal) {
				continue
			}
			img.Set(x, y, pal[idx])
		}
	}
	return img
}

// FromImage indexes img with pal, producing a frame of the same size.
// Transparent pixels stay transparent, and each row's edges are set to its
// leading and trailing transparent runs.
func FromImage(img image.Image, pal color.Palette) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		left, right := -1, -1
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			i := y*w + x
			if _, _, _, a := c.RGBA(); a == 0 {
				f.Opaque[i] = false
				continue
			}
			f.Pixels[i] = uint8(pal.Index(c))
			if left < 0 {
				left = x
			}
			right = x
		}
		if left < 0 {
			f.LeftEdges[y] = uint16(w)
			f.RightEdges[y] = 0
			continue
		}
		f.LeftEdges[y] = uint16(left)
		f.RightEdges[y] = uint16(w - 1 - right)
	}
	return f
}
