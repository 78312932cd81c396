// Package palette reads and writes JASC-PAL text palettes, the format the
// engine ships its color palettes in:
//
//	JASC-PAL
//	0100
//	256
//	0 0 0
//	...
package palette

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/logging"
)

const (
	header  = "JASC-PAL"
	version = "0100"

	// MaxColors is the largest palette the format can index.
	MaxColors = 256
)

// Decode reads a JASC-PAL palette. A nil log selects the default glog
// logger.
func Decode(r io.Reader, log logging.Logger) (color.Palette, error) {
	log = logging.OrDefault(log, "genie.PalFile")
	br := bufio.NewReader(r)

	var hdr, ver string
	var count int
	if _, err := fmt.Fscan(br, &hdr); err != nil {
		return nil, errors.Wrapf(fault.ErrFormat, "reading palette header: %v", err)
	}
	if hdr != header {
		return nil, errors.Wrapf(fault.ErrFormat, "not a color palette: header %q", hdr)
	}
	if _, err := fmt.Fscan(br, &ver); err != nil {
		return nil, errors.Wrapf(fault.ErrFormat, "reading palette version: %v", err)
	}
	if ver != version {
		log.Warningf("different version in palette: got %q, want %q", ver, version)
	}
	if _, err := fmt.Fscan(br, &count); err != nil {
		return nil, errors.Wrapf(fault.ErrFormat, "reading palette color count: %v", err)
	}
	if count < 0 || count > MaxColors {
		return nil, errors.Wrapf(fault.ErrFormat, "palette declares %d colors; want at most %d", count, MaxColors)
	}

	p := make(color.Palette, count)
	for i := range p {
		var r, g, b uint8
		if _, err := fmt.Fscan(br, &r, &g, &b); err != nil {
			return nil, errors.Wrapf(fault.ErrFormat, "reading palette color %d: %v", i, err)
		}
		p[i] = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return p, nil
}

// Encode writes p as a JASC-PAL palette, with Windows line endings.
// Palettes over MaxColors are written, but reported.
func Encode(w io.Writer, p color.Palette, log logging.Logger) error {
	log = logging.OrDefault(log, "genie.PalFile")
	if len(p) > MaxColors {
		log.Errorf("too many colors (%d > %d)", len(p), MaxColors)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\r\n%s\r\n%d\r\n", header, version, len(p))
	for _, c := range p {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		fmt.Fprintf(bw, "%d %d %d\r\n", rgba.R, rgba.G, rgba.B)
	}
	return bw.Flush()
}

// Derive builds a palette of up to n colors representative of img. It is
// used when an image has to be indexed and no game palette is available.
func Derive(img image.Image, n int) color.Palette {
	if n <= 0 || n > MaxColors {
		n = MaxColors
	}
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), img)
}
