// Command slopeweb serves the sloped variants of a terrain tile over HTTP.
package main

import (
	"context"
	"flag"
	"image"
	_ "image/gif"
	_ "image/png"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"

	"badc0de.net/pkg/go-genie/assets"
	"badc0de.net/pkg/go-genie/assets/full"
	"badc0de.net/pkg/go-genie/palette"
	"badc0de.net/pkg/go-genie/paths"
	"badc0de.net/pkg/go-genie/slp"
	"badc0de.net/pkg/go-genie/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for slopeweb")
	accessLog     = flag.Bool("access_log", true, "whether to log requests to stdout in combined log format")

	baseTilePath string
)

func loadBase(a *assets.Assets, path string) (*slp.Frame, error) {
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding base tile %s", path)
	}
	if len(a.Palette) == 0 {
		glog.Warningf("no palette loaded; deriving one from %s", path)
		a.Palette = palette.Derive(img, palette.MaxColors)
	}
	return slp.FromImage(img, a.Palette), nil
}

// newRouter serves the slope routes, and passes /debug/ (including
// x/net/trace's /debug/requests) to the default mux.
func newRouter(h *web.Handler) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)
	return r
}

func main() {
	full.SetupFilePathFlags()
	paths.SetupFilePathFlag("base.png", "base_tile_path", &baseTilePath)
	flagutil.Parse()

	a, err := full.FromFilePathFlags(context.Background())
	if err != nil {
		glog.Exitf("loading assets: %v", err)
	}
	if baseTilePath == "" {
		glog.Exit("--base_tile_path is required")
	}
	base, err := loadBase(a, baseTilePath)
	if err != nil {
		glog.Exitf("loading base tile: %v", err)
	}

	var h http.Handler = newRouter(web.NewHandler(a, base))
	if *accessLog {
		h = handlers.CombinedLoggingHandler(os.Stdout, h)
	}

	glog.Infof("listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
