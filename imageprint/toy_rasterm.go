//go:build !windows
// +build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/pkg/errors"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image using the RasTerm library, picking Kitty,
// iTerm2 or Sixel output depending on the terminal. Nothing is drawn on
// terminals supporting none of them.
func PrintRasTerm(w io.Writer, i image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		capable, cerr := rasterm.IsSixelCapable()
		if !capable || cerr != nil {
			return nil
		}
		err = rasterm.Settings{}.SixelWriteImage(w, Paletted(i, 64))
	}
	if err != nil {
		return errors.Wrap(err, "rasterm")
	}
	fmt.Fprint(w, "\n")
	return nil
}
