package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// save copies the stream out of the pipeline into a destination directory.
type saveCmd struct {
	env  *Env
	dest string
	name string
}

func (c *saveCmd) Name() string { return "save" }

func (c *saveCmd) Synopsis() string {
	return "copy the resulting image to a directory"
}

func (c *saveCmd) Flags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.dest, "dest", "d", "", "destination directory (default: media dir)")
	fs.StringVarP(&c.name, "name", "n", "", "file name for the copy (extension kept from source)")
}

func (c *saveCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	return c, nil
}

func (c *saveCmd) Apply(_ context.Context, files []string) ([]string, error) {
	if err := requireFiles(files); err != nil {
		return nil, err
	}

	dest := c.dest
	if dest == "" {
		dest = c.env.Config.MediaDir
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dest, err)
	}

	for i, src := range files {
		name := filepath.Base(src)
		if c.name != "" {
			name = c.name
			if filepath.Ext(name) == "" {
				name += filepath.Ext(src)
			}
			if len(files) > 1 {
				ext := filepath.Ext(name)
				name = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), i+1, ext)
			}
		}

		dst := filepath.Join(dest, name)
		if dst == src {
			c.env.Log.With(zap.String("file", name)).Debug("already at destination")
			continue
		}

		if err := copyFile(fs, src, dst); err != nil {
			return nil, err
		}

		c.env.Log.With(zap.String("file", name), zap.String("dest", dest)).Info("saved")
	}

	return files, nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	bs, err := afero.ReadFile(fs, src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := afero.WriteFile(fs, dst, bs, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// show opens the stream with the desktop's default viewer.
type showCmd struct {
	env *Env
}

func (c *showCmd) Name() string { return "show" }

func (c *showCmd) Synopsis() string {
	return "open the resulting image in the default viewer"
}

func (c *showCmd) Flags(_ *pflag.FlagSet) {}

func (c *showCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	return c, nil
}

func (c *showCmd) Apply(_ context.Context, files []string) ([]string, error) {
	if err := requireFiles(files); err != nil {
		return nil, err
	}

	for _, f := range files {
		if err := c.env.Setter.Launch(f); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// desktop sets the desktop background, or with an empty stream sources the
// current background into the pipeline.
type desktopCmd struct {
	env *Env
}

func (c *desktopCmd) Name() string { return "desktop" }

func (c *desktopCmd) Synopsis() string {
	return "set the image as desktop background (or source the current one)"
}

func (c *desktopCmd) Flags(_ *pflag.FlagSet) {}

func (c *desktopCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	return c, nil
}

func (c *desktopCmd) Apply(_ context.Context, files []string) ([]string, error) {
	if len(files) == 0 {
		cur, err := c.env.Setter.Current()
		if err != nil {
			return nil, err
		}

		path, err := c.env.Gallery.Import(cur)
		if err != nil {
			return nil, err
		}

		c.env.Log.With(zap.String("file", path)).Info("sourced current desktop background")
		return []string{path}, nil
	}

	fs := afero.NewOsFs()
	out := make([]string, 0, len(files))

	for _, src := range files {
		dst := filepath.Join(c.env.Config.WallpaperDir, filepath.Base(src))
		if dst != src {
			if err := copyFile(fs, src, dst); err != nil {
				return nil, err
			}
		}

		if err := c.env.Setter.Set(dst); err != nil {
			return nil, err
		}
		out = append(out, dst)
	}

	return out, nil
}

// every reruns the whole pipeline on an interval.
type everyCmd struct {
	interval time.Duration
}

func (c *everyCmd) Name() string { return "every" }

func (c *everyCmd) Synopsis() string {
	return "rerun the pipeline on an interval, e.g. every 30m"
}

func (c *everyCmd) Positionals() int { return 1 }

func (c *everyCmd) Flags(_ *pflag.FlagSet) {}

func (c *everyCmd) Build(pos []string, _ *pflag.FlagSet) (Stage, error) {
	d, err := time.ParseDuration(pos[0])
	if err != nil {
		return nil, fmt.Errorf("invalid interval %q: %w", pos[0], err)
	}
	if d <= 0 {
		return nil, errors.New("interval must be positive")
	}

	c.interval = d
	return c, nil
}

func (c *everyCmd) Interval() time.Duration { return c.interval }

func (c *everyCmd) Apply(_ context.Context, files []string) ([]string, error) {
	return files, nil
}
