// Package datafiles holds files compiled into the binaries. Game data files
// are not among them; see package paths for finding those.
package datafiles

import (
	"embed"
)

//go:embed index.html
var IndexHTML string

//go:embed *.html
var HTMLTemplates embed.FS
