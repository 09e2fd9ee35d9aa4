package gallery

import (
	"fmt"

	"github.com/spf13/afero"
)

// newFs roots a filesystem at path, creating the directory when missing.
func newFs(base afero.Fs, path string) (afero.Fs, error) {
	if exists, err := afero.DirExists(base, path); err != nil {
		return nil, err
	} else if !exists {
		if err := base.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", path, err)
		}
	}
	return afero.NewBasePathFs(base, path), nil
}

// realPath maps a name inside a base-path fs back to its path on the host
// filesystem. For non-os backends (tests) the name itself is returned.
func realPath(fs afero.Fs, name string) string {
	if bp, ok := fs.(*afero.BasePathFs); ok {
		if p, err := bp.RealPath(name); err == nil {
			return p
		}
	}
	return name
}
