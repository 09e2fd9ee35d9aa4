package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	whapi "github.com/moolex/wallhaven-go/api"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"wallsy/pkg/gallery"
	"wallsy/pkg/unsplash"
)

// add imports local files or direct image URLs into the pipeline.
type addCmd struct {
	env   *Env
	files []string
	urls  []string
}

func (c *addCmd) Name() string { return "add" }

func (c *addCmd) Synopsis() string {
	return "import an image from a file path or a direct image URL"
}

func (c *addCmd) Flags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&c.files, "file", "f", nil, "image file to import, repeatable")
	fs.StringArrayVarP(&c.urls, "url", "u", nil, "direct image URL to download, repeatable")
}

func (c *addCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	return c, nil
}

func (c *addCmd) Apply(_ context.Context, files []string) ([]string, error) {
	if len(c.files) == 0 && len(c.urls) == 0 {
		if len(files) > 0 {
			// pipeline input is already imported
			return files, nil
		}
		return nil, errors.New("no file or url specified")
	}

	out := files

	for _, f := range c.files {
		path, err := c.env.Gallery.Import(f)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}

	for _, u := range c.urls {
		if err := checkImageURL(u); err != nil {
			return nil, err
		}

		path, err := c.env.DL.Fetch(u, c.env.Gallery)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}

	return out, nil
}

// a URL without a path component cannot point at an image resource
func checkImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Path == "" || u.Path == "/" {
		return fmt.Errorf("%q does not link directly to an image resource", raw)
	}
	return nil
}

// random fetches random photos, online or from the local media dir.
type randomCmd struct {
	env      *Env
	local    bool
	keywords []string
	size     string
	count    int
	source   string
	replace  bool
}

func (c *randomCmd) Name() string { return "random" }

func (c *randomCmd) Synopsis() string {
	return "fetch a random image (default: online from Unsplash)"
}

func (c *randomCmd) Flags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.local, "local", false, "pick from the local media dir instead of online")
	fs.StringArrayVarP(&c.keywords, "keyword", "q", nil, "keyword to refine results, repeatable")
	fs.StringVarP(&c.size, "size", "s", "", "requested dimensions, e.g. 1920x1080")
	fs.IntVarP(&c.count, "count", "n", 1, "number of images to fetch")
	fs.StringVar(&c.source, "source", "unsplash", "online source (unsplash|wallhaven)")
	fs.BoolVar(&c.replace, "replace", false, "drop images sourced by earlier stages")
}

func (c *randomCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	if c.count < 1 {
		return nil, errors.New("count must be at least 1")
	}
	if c.source != "unsplash" && c.source != "wallhaven" {
		return nil, fmt.Errorf("unknown source %q", c.source)
	}
	if _, _, err := parseSize(c.size); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *randomCmd) Apply(_ context.Context, files []string) ([]string, error) {
	out := files
	if c.replace && len(files) > 0 {
		c.env.Log.With(zap.Int("dropped", len(files))).Info("replacing pipeline input")
		out = nil
	}

	for i := 0; i < c.count; i++ {
		path, err := c.pick()
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}

	return out, nil
}

func (c *randomCmd) pick() (string, error) {
	if c.local {
		return c.env.Gallery.Random()
	}

	if c.source == "wallhaven" {
		return c.pickWallhaven()
	}

	w, h, _ := parseSize(c.size)
	u := unsplash.FeaturedURL(unsplash.Options{Keywords: c.keywords, Width: w, Height: h})

	return c.env.DL.Fetch(u, c.env.Gallery)
}

func (c *randomCmd) pickWallhaven() (string, error) {
	wh := whapi.New(c.env.Config.WallhavenKey)
	wh.SetLogger(c.env.Log)

	q := whapi.NewQuery(strings.Join(c.keywords, " "))
	q.Random()
	if c.size != "" {
		q.SetRatio(c.size)
	}

	ret, err := wh.Query(q)
	if err != nil {
		return "", fmt.Errorf("wallhaven query failed: %w", err)
	}

	wp, err := ret.Pick(whapi.PickRand)
	if err != nil {
		return "", fmt.Errorf("no wallhaven result: %w", err)
	}

	return c.env.DL.Fetch(wp.Path, c.env.Gallery)
}

func parseSize(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}

	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}

	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}

	return w, h, nil
}

// watch streams images as they are created in a directory.
type watchCmd struct {
	env   *Env
	dir   string
	count int
}

func (c *watchCmd) Name() string { return "watch" }

func (c *watchCmd) Synopsis() string {
	return "wait for new images created in a directory"
}

func (c *watchCmd) Flags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.dir, "dir", "d", ".", "directory to watch")
	fs.IntVarP(&c.count, "count", "n", 1, "number of new images to wait for")
}

func (c *watchCmd) Build(_ []string, _ *pflag.FlagSet) (Stage, error) {
	if c.count < 1 {
		return nil, errors.New("count must be at least 1")
	}
	return c, nil
}

func (c *watchCmd) Apply(ctx context.Context, files []string) ([]string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(c.dir); err != nil {
		return nil, fmt.Errorf("watch %s: %w", c.dir, err)
	}

	c.env.Log.With(zap.String("dir", c.dir), zap.Int("count", c.count)).Info("watching for new images")

	out := files
	seen := 0

	for seen < c.count {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case err := <-watcher.Errors:
			return nil, err
		case ev := <-watcher.Events:
			if !ev.Op.Has(fsnotify.Create) {
				continue
			}

			path, err := c.env.Gallery.Import(ev.Name)
			if err != nil {
				// partial writes and non-images are expected here
				if errors.Is(err, gallery.ErrNotImage) {
					continue
				}
				return nil, err
			}

			out = append(out, path)
			seen++
		}
	}

	return out, nil
}
