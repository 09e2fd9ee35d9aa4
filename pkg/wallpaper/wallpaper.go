// Package wallpaper reads and sets the desktop background.
//
// The default backend shells out to gsettings against the
// org.gnome.desktop.background schema. Other environments can supply a
// custom setter command template through the config file.
package wallpaper

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"wallsy/pkg/gallery"
)

const (
	schema     = "org.gnome.desktop.background"
	keyURI     = "picture-uri"
	keyURIDark = "picture-uri-dark"
)

// Runner executes an external command and returns its combined output.
// Swappable in tests.
type Runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

func New(logger *zap.Logger, opts ...Option) *Setter {
	s := &Setter{
		run: execRunner,
		fs:  afero.NewOsFs(),
		log: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Option func(s *Setter)

// WithRunner replaces the command runner.
func WithRunner(run Runner) Option {
	return func(s *Setter) {
		s.run = run
	}
}

// WithFs replaces the filesystem used for validation.
func WithFs(fs afero.Fs) Option {
	return func(s *Setter) {
		s.fs = fs
	}
}

// WithCommand sets a custom setter command template. The token {path} is
// replaced with the absolute image path.
func WithCommand(tmpl string) Option {
	return func(s *Setter) {
		s.custom = tmpl
	}
}

type Setter struct {
	run    Runner
	fs     afero.Fs
	log    *zap.Logger
	custom string
}

// Set makes path the desktop background. The file must exist and decode as
// an image; gsettings does no validation of its own and silently renders a
// black desktop otherwise.
func (s *Setter) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if exists, err := afero.Exists(s.fs, abs); err != nil {
		return err
	} else if !exists {
		return errors.Errorf("wallpaper %s does not exist", abs)
	}

	if err := gallery.Validate(s.fs, abs); err != nil {
		return errors.Wrapf(err, "wallpaper %s", abs)
	}

	if s.custom != "" {
		return s.setCustom(abs)
	}

	uri := "file://" + abs
	for _, key := range []string{keyURI, keyURIDark} {
		if out, err := s.run("gsettings", "set", schema, key, uri); err != nil {
			return errors.Wrapf(err, "gsettings set %s: %s", key, strings.TrimSpace(string(out)))
		}
	}

	s.log.With(zap.String("wallpaper", abs)).Info("desktop background updated")
	return nil
}

// Current returns the path of the currently set desktop background.
func (s *Setter) Current() (string, error) {
	out, err := s.run("gsettings", "get", schema, keyURI)
	if err != nil {
		return "", errors.Wrap(err, "gsettings get")
	}

	cur := strings.TrimSpace(string(out))
	cur = strings.Trim(cur, "'\"")
	cur = strings.TrimPrefix(cur, "file://")

	if cur == "" {
		return "", errors.New("no desktop background is set")
	}

	return cur, nil
}

func (s *Setter) setCustom(abs string) error {
	parts := strings.Fields(s.custom)
	if len(parts) == 0 {
		return errors.New("empty setter command")
	}

	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "{path}", abs)
	}

	if out, err := s.run(parts[0], parts[1:]...); err != nil {
		return errors.Wrapf(err, "%s: %s", parts[0], strings.TrimSpace(string(out)))
	}

	s.log.With(
		zap.String("wallpaper", abs),
		zap.String("via", parts[0]),
	).Info("desktop background updated")
	return nil
}

// Launch opens path with the desktop's default application.
func (s *Setter) Launch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if out, err := s.run("xdg-open", abs); err != nil {
		return errors.Wrapf(err, "xdg-open: %s", strings.TrimSpace(string(out)))
	}
	return nil
}
