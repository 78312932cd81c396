package paths

import (
	"flag"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func writeDataFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestFindInDataDirEnv(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeDataFile(t, second, "lightmap.dat", "second")
	t.Setenv(DataDirEnv, first+string(os.PathListSeparator)+second)

	want := filepath.Join(second, "lightmap.dat")
	if got := Find("lightmap.dat"); got != want {
		t.Errorf("Find(lightmap.dat)=%q, want %q", got, want)
	}

	// The earlier directory wins once it has the file too.
	writeDataFile(t, first, "lightmap.dat", "first")
	want = filepath.Join(first, "lightmap.dat")
	if got := Find("lightmap.dat"); got != want {
		t.Errorf("Find(lightmap.dat)=%q, want %q", got, want)
	}
}

func TestFindSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "icm.dat"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DataDirEnv, dir)
	if got := Find("icm.dat"); got != "" {
		t.Errorf("Find(icm.dat)=%q, want empty", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "filtermap.dat", "abc")
	t.Setenv(DataDirEnv, dir)

	f, err := Open("filtermap.dat")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if pos, err := f.Seek(1, io.SeekStart); err != nil || pos != 1 {
		t.Errorf("Seek(1)=%d, %v", pos, err)
	}
	buf, err := ioutil.ReadAll(f)
	if err != nil || string(buf) != "bc" {
		t.Errorf("ReadAll=%q, %v; want bc", buf, err)
	}

	if _, err := Open("no-such-file.dat"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) err=%v, want os.ErrNotExist", err)
	}
}

func TestNoFindOpenDoesNotSearch(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "palette.pal", "JASC-PAL")
	t.Setenv(DataDirEnv, dir)

	if _, err := NoFindOpen("palette.pal"); err == nil {
		t.Error("NoFindOpen(palette.pal) found the file through the data dir")
	}
	f, err := NoFindOpen(filepath.Join(dir, "palette.pal"))
	if err != nil {
		t.Fatalf("NoFindOpen(full path): %v", err)
	}
	f.Close()
}

func TestSetupFilePathFlagSet(t *testing.T) {
	dir := t.TempDir()
	path := writeDataFile(t, dir, "patternmasks.dat", "")
	t.Setenv(DataDirEnv, dir)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var found, missing string
	SetupFilePathFlagSet(fs, "patternmasks.dat", "patternmasks_path", &found)
	SetupFilePathFlagSet(fs, "missing.dat", "missing_path", &missing)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if found != path {
		t.Errorf("--patternmasks_path defaulted to %q, want %q", found, path)
	}
	if missing != "" {
		t.Errorf("--missing_path defaulted to %q, want empty", missing)
	}

	if err := fs.Parse([]string{"--missing_path=/elsewhere"}); err != nil {
		t.Fatal(err)
	}
	if missing != "/elsewhere" {
		t.Errorf("--missing_path=%q after parse", missing)
	}
}
