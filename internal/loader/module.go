package loader

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
)

// Module anchors a generation run to the Go module containing the scanned
// directory.
type Module struct {
	Root string // directory holding go.mod
	Path string // module path
}

// FindModule walks up from dir until it finds go.mod and parses the module
// path out of it.
func FindModule(dir string) (Module, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Module{}, errors.Wrap(err, "resolving directory")
	}
	from := abs
	for {
		name := filepath.Join(from, "go.mod")
		if _, err = os.Stat(name); err == nil {
			data, rerr := os.ReadFile(name)
			if rerr != nil {
				return Module{}, errors.Wrap(rerr, "reading go.mod")
			}
			path := modfile.ModulePath(data)
			if path == "" {
				return Module{}, errors.Newf("no module path in %s", name)
			}
			return Module{Root: from, Path: path}, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return Module{}, errors.Newf("no go.mod found above %s", abs)
		}
		from = parent
	}
}
