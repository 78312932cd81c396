package palette

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/logging"
	"badc0de.net/pkg/go-genie/ttesting"
)

func TestDecode(t *testing.T) {
	in := "JASC-PAL\r\n0100\r\n3\r\n0 0 0\r\n255 128 1\r\n10 20 30\r\n"
	p, err := Decode(strings.NewReader(in), &logging.Recorder{})
	if err != nil {
		t.Fatalf("failed to decode palette: %v", err)
	}
	ttesting.AssertEqualInt(t, "count", len(p), 3)
	if got, want := p[1], (color.RGBA{255, 128, 1, 255}); got != want {
		t.Errorf("color 1: got %v; want %v", got, want)
	}
}

func TestDecodeVersionMismatchWarns(t *testing.T) {
	rec := &logging.Recorder{}
	p, err := Decode(strings.NewReader("JASC-PAL\n0200\n1\n1 2 3\n"), rec)
	if err != nil {
		t.Fatalf("failed to decode palette: %v", err)
	}
	ttesting.AssertEqualInt(t, "count", len(p), 1)
	ttesting.AssertEqualInt(t, "warnings", rec.Count(logging.Warning), 1)
}

func TestDecodeErrors(t *testing.T) {
	for name, in := range map[string]string{
		"bad header":    "RIFF\n0100\n1\n1 2 3\n",
		"short":         "JASC-PAL\n0100\n2\n1 2 3\n",
		"too many":      "JASC-PAL\n0100\n257\n",
		"channel > 255": "JASC-PAL\n0100\n1\n1 2 300\n",
		"missing count": "JASC-PAL\n0100\n",
	} {
		_, err := Decode(strings.NewReader(in), &logging.Recorder{})
		ttesting.AssertErrorIs(t, name, err, fault.ErrFormat)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	p := color.Palette{color.RGBA{1, 2, 3, 255}, color.RGBA{250, 0, 9, 255}}
	buf := &bytes.Buffer{}
	if err := Encode(buf, p, &logging.Recorder{}); err != nil {
		t.Fatalf("failed to encode palette: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "JASC-PAL\r\n0100\r\n2\r\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}
	got, err := Decode(buf, &logging.Recorder{})
	if err != nil {
		t.Fatalf("failed to decode palette: %v", err)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Errorf("color %d: got %v; want %v", i, got[i], p[i])
		}
	}
}

func TestDerive(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	p := Derive(img, 16)
	if len(p) == 0 || len(p) > 16 {
		t.Fatalf("got %d colors; want 1..16", len(p))
	}
	r, _, _, _ := p.Convert(color.RGBA{250, 5, 5, 255}).RGBA()
	if r>>8 < 200 {
		t.Errorf("red is not represented in %v", p)
	}
}
