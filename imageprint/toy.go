// Package imageprint prints images on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"strings"

	"github.com/andybons/gogif"
	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how Print draws an image.
type Mode int

const (
	ModeNone Mode = iota
	Mode24bit
	Mode256Color
	ModeNoColor
	ModeITerm
	ModeRasTerm
)

var modeNames = [...]string{"none", "24bit", "256color", "nocolor", "iterm", "rasterm"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode from its name.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, s) {
			return Mode(i), nil
		}
	}
	return ModeNone, errors.Errorf("unknown print mode %q (want one of %s)", s, strings.Join(modeNames[:], ", "))
}

// Print draws i on w in the passed mode. name is used by the modes which
// transfer a file.
func Print(w io.Writer, i image.Image, m Mode, blanks bool, name string) error {
	switch m {
	case ModeNone:
		return nil
	case Mode24bit:
		Print24bit(w, i, blanks)
	case Mode256Color:
		Print256Color(w, i, blanks)
	case ModeNoColor:
		PrintNoColor(w, i, blanks)
	case ModeITerm:
		return PrintITerm(w, i, name)
	case ModeRasTerm:
		return PrintRasTerm(w, i)
	default:
		return errors.Errorf("unknown print mode %v", m)
	}
	return nil
}

// glyph picks a two-character cell for a color by its brightness.
func glyph(cR, cG, cB uint32) string {
	a := ((cR + cG + cB) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func shade(w io.Writer, col ic.Color, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if noColor {
			fmt.Fprint(w, "  ")
		} else {
			fmt.Fprint(w, "\x1b[0m  ")
		}
		return
	}

	cell := "  "
	if !blanks {
		cell = glyph(cR, cG, cB)
	}
	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch {
	case noColor:
		fmt.Fprint(w, cell)
	case escapesTrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, cell)
	default:
		// TODO(ivucica): Map color to closest entry in xterm 256color palette.
		fmt.Fprint(w, color.RGB(r, g, b, true).Sprintf("%s", cell))
	}
}

func printRows(w io.Writer, i image.Image, escapesTrueColor, blanks, noColor bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), escapesTrueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, false, blanks, false)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, true, blanks, false)
}

// PrintNoColor draws an image without using color escape sequences. Only makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, false, blanks, true)
}

// PrintITerm draws an image using iTerm2's escape sequences. Nothing is
// drawn if the terminal does not look like iTerm2.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) error {
	if !isTermItermWez() {
		return nil
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	bEnc.Close()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
	return err
}

// Paletted returns i reduced to at most n colors. Images which are already
// paletted are returned as-is.
func Paletted(i image.Image, n int) *image.Paletted {
	if p, ok := i.(*image.Paletted); ok {
		return p
	}
	palettedImage := image.NewPaletted(i.Bounds(), nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: n}
	quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})
	return palettedImage
}
