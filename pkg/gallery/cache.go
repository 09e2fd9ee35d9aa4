package gallery

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/afero"
)

// NewCache opens a processed-image cache under dir. An empty dir disables
// caching entirely.
func NewCache(base afero.Fs, dir string) (*Cache, error) {
	c := &Cache{}

	if dir == "" {
		return c, nil
	}

	fs, err := newFs(base, dir)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	c.fs = fs

	return c, nil
}

// Cache keeps PNG-encoded results of a source image pushed through an effect
// chain at a target size, so the rotation daemon never processes the same
// wallpaper twice.
type Cache struct {
	fs afero.Fs
}

// Key identifies one processed rendition.
type Key struct {
	ID    string
	Chain string
	W, H  int
}

func (k Key) dirname() string {
	chain := k.Chain
	if chain == "" {
		chain = "plain"
	}
	return fmt.Sprintf("%s-%dx%d", chain, k.W, k.H)
}

func (k Key) filename() string {
	return fmt.Sprintf("%s/%s.png", k.dirname(), k.ID)
}

func (c *Cache) Load(k Key) (bool, image.Image, error) {
	if c.fs == nil {
		return false, nil, nil
	}

	bs, err := afero.ReadFile(c.fs, k.filename())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, err
	}

	img, err := png.Decode(bytes.NewReader(bs))
	if err != nil {
		return false, nil, err
	}

	return true, img, nil
}

func (c *Cache) Save(k Key, img image.Image) error {
	if c.fs == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	if exists, err := afero.DirExists(c.fs, k.dirname()); err != nil {
		return err
	} else if !exists {
		if err2 := c.fs.MkdirAll(k.dirname(), 0755); err2 != nil {
			return err2
		}
	}

	return afero.WriteFile(c.fs, k.filename(), buf.Bytes(), 0644)
}
