package paths

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
)

// DataDirEnv names the environment variable checked before any other
// location.
const DataDirEnv = "GENIE_DATA_DIR"

const (
	importPath    = "badc0de.net/pkg/go-genie"
	workspaceName = "go_genie"
)

// Dirs returns the directories searched by Find, in order.
//
// Directories listed in $GENIE_DATA_DIR (separated with the OS list
// separator) come first, then ./datafiles and the current directory, the
// Bazel runfiles tree of the running binary, and finally the package source
// directory under each GOPATH entry.
func Dirs() []string {
	var dirs []string
	if env := os.Getenv(DataDirEnv); env != "" {
		for _, d := range filepath.SplitList(env) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	dirs = append(dirs, "datafiles", ".")

	if exe, err := os.Executable(); err == nil {
		runfiles := exe + ".runfiles"
		dirs = append(dirs,
			filepath.Join(runfiles, workspaceName, "datafiles"),
			filepath.Join(runfiles, workspaceName))
	}
	if rf := os.Getenv("RUNFILES_DIR"); rf != "" {
		dirs = append(dirs, filepath.Join(rf, workspaceName, "datafiles"))
	}

	for _, gp := range filepath.SplitList(build.Default.GOPATH) {
		if gp == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(gp, "src", filepath.FromSlash(importPath), "datafiles"))
	}
	return dirs
}

func possiblePaths(fileName string) []string {
	if filepath.IsAbs(fileName) || strings.HasPrefix(fileName, "."+string(filepath.Separator)) {
		return []string{fileName}
	}
	dirs := Dirs()
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, filepath.Join(d, fileName))
	}
	return out
}
