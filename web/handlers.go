// Package web serves sloped variants of a base terrain tile over HTTP.
package web

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"html/template"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/image/draw"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/datafiles"
	"badc0de.net/pkg/go-genie/patternmask"
	"badc0de.net/pkg/go-genie/slope"
	"badc0de.net/pkg/go-genie/slp"
)

// MaxScale is the largest accepted ?scale= value.
const MaxScale = 16

// bump if the way images are generated changes
const generation = 1

type Handler struct {
	assets *assets.Assets
	base   *slp.Frame

	// signature identifies the base frame in ETags.
	signature uint32
}

// NewHandler constructs a web handler patching base with the passed assets.
// Neither is modified by the handler, so requests are served concurrently.
func NewHandler(a *assets.Assets, base *slp.Frame) *Handler {
	sig := crc32.NewIEEE()
	sig.Write(base.Pixels)
	fmt.Fprintf(sig, "%dx%d:%d", base.Width, base.Height, len(a.Palette))
	return &Handler{
		assets:    a,
		base:      base,
		signature: sig.Sum32(),
	}
}

// RegisterRoutes registers all routes on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/slope/{slope}.png", h.slopePNGHandler)
	r.HandleFunc("/slope/{slope}.gif", h.slopeGIFHandler)
	r.HandleFunc("/slopes.gif", h.slopesGIFHandler)
}

// request holds the parsed parameters of an image request.
type request struct {
	slope    slope.Slope
	patterns []patternmask.Pattern
	scale    int
}

func (q request) etag(kind string, signature uint32, mime string) string {
	var ps []string
	for _, p := range q.patterns {
		ps = append(ps, strconv.Itoa(int(p)))
	}
	return fmt.Sprintf(`W/"%s:%d:%08x:%d:%s:%d:%s"`, kind, generation, signature, q.slope, strings.Join(ps, "."), q.scale, mime)
}

// parseQuery parses ?patterns=8,up&scale=2.
func parseQuery(r *http.Request) (request, error) {
	q := request{scale: 1}
	var err error
	if q.patterns, err = patternmask.ParseList(r.URL.Query().Get("patterns")); err != nil {
		return q, err
	}
	if sc := r.URL.Query().Get("scale"); sc != "" {
		n, err := strconv.Atoi(sc)
		if err != nil || n < 1 || n > MaxScale {
			return q, errors.Errorf("scale %q not in [1,%d]", sc, MaxScale)
		}
		q.scale = n
	}
	return q, nil
}

func (h *Handler) parseSlopeRequest(w http.ResponseWriter, r *http.Request) (request, bool) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return q, false
	}
	q.slope, err = slope.Parse(mux.Vars(r)["slope"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return q, false
	}
	return q, true
}

// notModified answers conditional requests. It reports whether the response
// was written.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

func writeHeaders(w http.ResponseWriter, mime, etag string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
}

// patch produces the patched frame for q, traced under tr.
func (h *Handler) patch(tr trace.Trace, q request) (*slp.Frame, error) {
	f := h.assets.Patch(h.base, q.slope, q.patterns)
	if f == nil {
		tr.LazyPrintf("patching failed for slope %v", q.slope)
		tr.SetError()
		return nil, errors.Errorf("could not patch frame for slope %v", q.slope)
	}
	tr.LazyPrintf("patched slope %v: %dx%d", q.slope, f.Width, f.Height)
	return f, nil
}

// scale enlarges img by an integer factor, keeping pixels sharp.
func scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func (h *Handler) slopePNGHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.SlopePNG", r.URL.Path)
	defer tr.Finish()

	q, ok := h.parseSlopeRequest(w, r)
	if !ok {
		tr.SetError()
		return
	}

	mime := "image/png"
	etag := q.etag("slope", h.signature, mime)
	if notModified(w, r, etag) {
		return
	}

	f, err := h.patch(tr, q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeHeaders(w, mime, etag)
	if err := png.Encode(w, scale(f.Image(h.assets.Palette), q.scale)); err != nil {
		glog.Errorf("encoding png for slope %v: %v", q.slope, err)
	}
}

// Paletted renders f using the game palette directly, with an extra
// transparent entry at index 0.
func Paletted(f *slp.Frame, pal color.Palette) *image.Paletted {
	// gif supports at most 256 colors, one of which is taken by transparency.
	if len(pal) > 255 {
		pal = pal[:255]
	}
	gp := append(color.Palette{color.Transparent}, pal...)
	src := f.Image(pal)
	dst := image.NewPaletted(src.Bounds(), gp)
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			dst.SetColorIndex(x, y, uint8(1+int(f.Pixels[(y-b.Min.Y)*int(f.Width)+(x-b.Min.X)])))
		}
	}
	return dst
}

func scalePaletted(p *image.Paletted, factor int) *image.Paletted {
	if factor <= 1 {
		return p
	}
	b := p.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), p.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), p, b, draw.Src, nil)
	return dst
}

func (h *Handler) slopeGIFHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.SlopeGIF", r.URL.Path)
	defer tr.Finish()

	q, ok := h.parseSlopeRequest(w, r)
	if !ok {
		tr.SetError()
		return
	}

	mime := "image/gif"
	etag := q.etag("slope", h.signature, mime)
	if notModified(w, r, etag) {
		return
	}

	f, err := h.patch(tr, q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeHeaders(w, mime, etag)
	if err := gif.Encode(w, scalePaletted(Paletted(f, h.assets.Palette), q.scale), nil); err != nil {
		glog.Errorf("encoding gif for slope %v: %v", q.slope, err)
	}
}

// slopesGIFHandler cycles through all slopes in an animated gif. Every frame
// is placed by its hotspot, so slopes line up the way they would on a map.
func (h *Handler) slopesGIFHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.SlopesGIF", r.URL.Path)
	defer tr.Finish()

	q, err := parseQuery(r)
	if err != nil {
		tr.SetError()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mime := "image/gif"
	etag := q.etag("slopes", h.signature, mime)
	if notModified(w, r, etag) {
		return
	}

	frames := h.assets.PatchAll(h.base, q.patterns)

	// Bounds of all frames, relative to their hotspots.
	var bounds image.Rectangle
	for _, sl := range slope.All() {
		f := frames[sl]
		if f == nil {
			tr.LazyPrintf("patching failed for slope %v", sl)
			tr.SetError()
			http.Error(w, fmt.Sprintf("could not patch frame for slope %v", sl), http.StatusInternalServerError)
			return
		}
		fb := image.Rect(0, 0, int(f.Width), int(f.Height)).Sub(image.Pt(int(f.HotspotX), int(f.HotspotY)))
		bounds = bounds.Union(fb)
	}

	g := gif.GIF{BackgroundIndex: 0}
	for _, sl := range slope.All() {
		f := frames[sl]
		p := Paletted(f, h.assets.Palette)
		canvas := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), p.Palette)
		at := image.Pt(-int(f.HotspotX), -int(f.HotspotY)).Sub(bounds.Min)
		draw.Draw(canvas, p.Bounds().Add(at), p, image.Point{}, draw.Over)

		g.Image = append(g.Image, scalePaletted(canvas, q.scale))
		g.Delay = append(g.Delay, 50)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	tr.LazyPrintf("%d frames of %v", len(g.Image), bounds.Size())

	writeHeaders(w, mime, etag)
	if err := gif.EncodeAll(w, &g); err != nil {
		glog.Errorf("encoding slopes gif: %v", err)
	}
}

var indexTemplate = template.Must(template.ParseFS(datafiles.HTMLTemplates, "index.html"))

type indexEntry struct {
	Name string
	Src  template.URL
}

// indexHandler lists every slope with an inline preview.
func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.Index", r.URL.Path)
	defer tr.Finish()

	frames := h.assets.PatchAll(h.base, nil)
	var entries []indexEntry
	for _, sl := range slope.All() {
		e := indexEntry{Name: sl.String()}
		if f := frames[sl]; f != nil {
			buf := &bytes.Buffer{}
			if err := png.Encode(buf, f.Image(h.assets.Palette)); err == nil {
				if txt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText(); err == nil {
					e.Src = template.URL(txt)
				}
			}
		}
		if e.Src == "" {
			tr.LazyPrintf("no preview for slope %v", sl)
		}
		entries = append(entries, e)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, entries); err != nil {
		glog.Errorf("rendering index: %v", err)
	}
}
