// Package paths locates genie data files (inverse color maps, pattern masks,
// filtermaps, slope templates, lightmaps and palettes) on the local
// filesystem.
package paths

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// File is an opened data file. Decoders need to seek, so plain readers do
// not do.
type File interface {
	io.ReadCloser
	io.Seeker
}

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at.
//
// For example, for "filtermap.dat" it may return
// "mybinary.runfiles/go_genie/datafiles/filtermap.dat".
//
// If the file is not found anywhere, an empty string is returned.
func Find(fileName string) string {
	for _, path := range possiblePaths(fileName) {
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			if glog.V(2) {
				glog.Infof("paths.Find(%q)=%s", fileName, path)
			}
			return path
		}
	}
	if glog.V(1) {
		glog.Infof("paths.Find(%q): not found in %v", fileName, Dirs())
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (File, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in any of %v", fileName, Dirs())
	}
	return NoFindOpen(path)
}

// NoFindOpen opens the file at exactly the passed path, without searching
// the data directories.
func NoFindOpen(fileName string) (File, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", fileName)
	}
	return f, nil
}
