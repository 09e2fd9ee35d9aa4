package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"wallsy/pkg/effects"
)

// effectStage runs one effect over every file in the stream, writing the
// result into the effects dir. Input files are never modified.
type effectStage struct {
	env *Env
	eff effects.Effect
}

func (s *effectStage) Name() string { return s.eff.Name() }

func (s *effectStage) Apply(_ context.Context, files []string) ([]string, error) {
	if err := requireFiles(files); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(files))
	for _, path := range files {
		processed, err := s.processOne(path)
		if err != nil {
			return nil, err
		}
		out = append(out, processed)
	}

	return out, nil
}

func (s *effectStage) processOne(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	img, err = s.eff.Apply(img)
	if err != nil {
		return "", err
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(base, ext), s.eff.Name(), ext)

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		format = imaging.PNG
		name += ".png"
	}

	f, err := s.env.Gallery.EffectsFs().Create(name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := imaging.Encode(f, img, format); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	s.env.Log.With(
		zap.String("effect", s.eff.Name()),
		zap.String("file", name),
	).Info("effect applied")

	return s.env.Gallery.EffectPath(name), nil
}

type blurCmd struct {
	env    *Env
	radius float64
}

func (c *blurCmd) Name() string { return "blur" }

func (c *blurCmd) Synopsis() string {
	return "apply a Gaussian blur"
}

func (c *blurCmd) Flags(fs *pflag.FlagSet) {
	fs.Float64VarP(&c.radius, "radius", "r", 5, "pixel radius of the blur")
}

func (c *blurCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	eff, err := effects.Blur(c.radius)
	if err != nil {
		return nil, err
	}
	return &effectStage{env: c.env, eff: eff}, nil
}

type noirCmd struct {
	env *Env
}

func (c *noirCmd) Name() string { return "noir" }

func (c *noirCmd) Synopsis() string {
	return "convert to grayscale with a contrast lift"
}

func (c *noirCmd) Flags(_ *pflag.FlagSet) {}

func (c *noirCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	return &effectStage{env: c.env, eff: effects.Noir()}, nil
}

type posterizeCmd struct {
	env    *Env
	colors int
}

func (c *posterizeCmd) Name() string { return "posterize" }

func (c *posterizeCmd) Synopsis() string {
	return "reduce the color space for a poster look"
}

func (c *posterizeCmd) Flags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.colors, "colors", "c", 32, "number of levels per channel (2-256)")
}

func (c *posterizeCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	eff, err := effects.Posterize(c.colors)
	if err != nil {
		return nil, err
	}
	return &effectStage{env: c.env, eff: eff}, nil
}

type colorizeCmd struct {
	env   *Env
	dark  string
	light string
}

func (c *colorizeCmd) Name() string { return "colorize" }

func (c *colorizeCmd) Synopsis() string {
	return "map luminance onto a dark-to-light duotone gradient"
}

func (c *colorizeCmd) Flags(fs *pflag.FlagSet) {
	fs.StringVar(&c.dark, "dark", "midnightblue", "replacement for dark areas (name or #hex)")
	fs.StringVar(&c.light, "light", "white", "replacement for light areas (name or #hex)")
}

func (c *colorizeCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	eff, err := effects.Colorize(c.dark, c.light)
	if err != nil {
		return nil, err
	}
	return &effectStage{env: c.env, eff: eff}, nil
}
