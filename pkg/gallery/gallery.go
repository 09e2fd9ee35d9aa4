// Package gallery manages the on-disk image store: the media directory that
// collects every image entering a pipeline, the effects directory that holds
// filter output, and the processed-image cache used by the rotation daemon.
package gallery

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrNotImage is returned when a payload does not decode as a known image
// format.
var ErrNotImage = errors.New("not a valid image")

// New opens a gallery rooted at mediaDir with filter output under
// effectsDir.
func New(base afero.Fs, mediaDir, effectsDir string, logger *zap.Logger) (*Gallery, error) {
	media, err := newFs(base, mediaDir)
	if err != nil {
		return nil, fmt.Errorf("open media dir: %w", err)
	}

	effects, err := newFs(base, effectsDir)
	if err != nil {
		return nil, fmt.Errorf("open effects dir: %w", err)
	}

	return &Gallery{media: media, effects: effects, log: logger}, nil
}

type Gallery struct {
	media   afero.Fs
	effects afero.Fs
	log     *zap.Logger
}

// MediaFs exposes the media directory filesystem.
func (g *Gallery) MediaFs() afero.Fs {
	return g.media
}

// EffectsFs exposes the effects directory filesystem.
func (g *Gallery) EffectsFs() afero.Fs {
	return g.effects
}

// Validate checks that the named file on fs decodes as an image header.
func Validate(fs afero.Fs, name string) error {
	f, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return errors.Wrapf(ErrNotImage, "%s", name)
	}
	return nil
}

// Import copies an image from the host filesystem into the media dir and
// returns its new path. Importing a file that already lives in the media dir
// is not an error.
func (g *Gallery) Import(path string) (string, error) {
	src := afero.NewOsFs()

	if err := Validate(src, path); err != nil {
		return "", err
	}

	name := filepath.Base(path)
	dst := realPath(g.media, name)

	if dst == path {
		g.log.With(zap.String("file", name)).Debug("already in media dir")
		return dst, nil
	}

	bs, err := afero.ReadFile(src, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if err := afero.WriteFile(g.media, name, bs, 0644); err != nil {
		return "", fmt.Errorf("import %s: %w", name, err)
	}

	g.log.With(zap.String("file", name)).Debug("imported")
	return dst, nil
}

// ImportBytes stores an in-memory image under name in the media dir. An
// existing file with the same name is reused, not overwritten.
func (g *Gallery) ImportBytes(name string, bs []byte) (string, error) {
	if exists, err := afero.Exists(g.media, name); err != nil {
		return "", err
	} else if exists {
		g.log.With(zap.String("file", name)).Debug("reusing existing file")
		return realPath(g.media, name), nil
	}

	if err := afero.WriteFile(g.media, name, bs, 0644); err != nil {
		return "", fmt.Errorf("import %s: %w", name, err)
	}

	if err := Validate(g.media, name); err != nil {
		_ = g.media.Remove(name)
		return "", err
	}

	return realPath(g.media, name), nil
}

// Exists reports whether name is already stored in the media dir.
func (g *Gallery) Exists(name string) (bool, error) {
	return afero.Exists(g.media, name)
}

// List returns the names of all files in the media dir.
func (g *Gallery) List() ([]string, error) {
	infos, err := afero.ReadDir(g.media, ".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names, nil
}

// Random picks a random image from the media dir and returns its path.
func (g *Gallery) Random() (string, error) {
	names, err := g.List()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.New("media dir is empty")
	}

	return realPath(g.media, lo.Sample(names)), nil
}

// EffectPath maps an output name to its host path in the effects dir.
func (g *Gallery) EffectPath(name string) string {
	return realPath(g.effects, name)
}
