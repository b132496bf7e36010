package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thirstylang/thirsty/thirsty"
)

const scriptExtension = ".thirsty"

// dirLoader resolves import names against a list of search directories. The
// name maps to <dir>/<name>.thirsty; path separators and parent references
// are rejected so scripts cannot import outside the search roots.
type dirLoader struct {
	dirs []string
}

func newDirLoader(dirs []string) *dirLoader {
	return &dirLoader{dirs: dirs}
}

func (d *dirLoader) Load(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty module name")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("module name %q must be a bare name", name)
	}
	for _, dir := range d.dirs {
		path := filepath.Join(dir, name+scriptExtension)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read module %q: %w", name, err)
		}
	}
	return "", fmt.Errorf("module %q not found in %d search paths", name, len(d.dirs))
}

var _ thirsty.Loader = (*dirLoader)(nil)
