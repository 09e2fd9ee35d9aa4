package rotate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/moolex/wallhaven-go/api"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"wallsy/pkg/effects"
	"wallsy/pkg/gallery"
	"wallsy/pkg/wallpaper"
)

// currentFile is the rotating wallpaper file inside the wallpaper dir.
const currentFile = "wallsy-rotation.png"

func NewRotator(
	params *Params,
	dl *gallery.Downloader,
	g *gallery.Gallery,
	cache *gallery.Cache,
	chain *effects.Chain,
	setter *wallpaper.Setter,
	hist *History,
	wallDir string,
	logger *zap.Logger,
	opts ...Option,
) *Rotator {
	r := &Rotator{
		params:  params,
		dl:      dl,
		gallery: g,
		cache:   cache,
		chain:   chain,
		setter:  setter,
		hist:    hist,
		fs:      afero.NewOsFs(),
		wallDir: wallDir,
		log:     logger,
		maxPage: -1,
		maxSize: -1,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

type Rotator struct {
	sync.Mutex

	params  *Params
	dl      *gallery.Downloader
	gallery *gallery.Gallery
	cache   *gallery.Cache
	chain   *effects.Chain
	setter  *wallpaper.Setter
	hist    *History
	fs      afero.Fs
	wallDir string
	log     *zap.Logger

	maxPage  int
	maxSize  int
	autoSave *autoSave
}

// Next rotates to a new wallpaper: pick, process, set.
func (r *Rotator) Next() error {
	r.Lock()
	defer r.Unlock()

	wp, filled, thumb, origin, err := r.pick()
	if err != nil {
		return err
	}

	if err := r.apply(filled); err != nil {
		return fmt.Errorf("set wallpaper failed: %w", err)
	}

	r.hist.Add(wp, filled, thumb, origin)

	r.log.With(
		zap.String("id", wp.Id),
		zap.String("url", wp.Url),
		zap.Bool("thumb", thumb),
	).Info("rotated")

	return nil
}

// Redraw restores a history entry as the current wallpaper.
func (r *Rotator) Redraw(e *Entry) error {
	r.Lock()
	defer r.Unlock()
	return r.apply(e.Filled)
}

func (r *Rotator) pick() (*api.Wallpaper, image.Image, bool, *gallery.VFile, error) {
	wp, err := r.params.GetResult().Pick(api.PickLoop)
	if err != nil {
		if errors.Is(err, api.ErrNoMoreItems) {
			r.params.UpdateQuery(func(q *api.QueryCond) { q.Page = 1 })
		}
		return nil, nil, false, nil, fmt.Errorf("pick wallpaper failed: %w", err)
	}

	if r.maxPage > 0 && r.params.GetQuery().Page >= r.maxPage {
		r.params.UpdateQuery(func(q *api.QueryCond) { q.Page = 0 })
	}

	w, h := r.params.Size()
	key := gallery.Key{ID: wp.Id, Chain: r.chain.Describe(), W: w, H: h}

	if hit, img, err := r.cache.Load(key); err != nil {
		return nil, nil, false, nil, fmt.Errorf("load cache failed: %w", err)
	} else if hit {
		r.keepPopular(wp, nil)
		return wp, img, false, nil, nil
	}

	thumb := r.maxSize > 0 && wp.FileSize > r.maxSize

	origin, err := r.dl.Get(lo.Ternary(thumb, wp.Thumbs.Original, wp.Path))
	if err != nil {
		return nil, nil, false, nil, fmt.Errorf("download failed: %w", err)
	}

	filled, err := r.process(origin, w, h)
	if err != nil {
		return nil, nil, false, nil, err
	}

	if !thumb {
		if err := r.cache.Save(key, filled); err != nil {
			r.log.With(zap.Error(err)).Info("save cache failed")
		}
		r.keepPopular(wp, origin)
	}

	return wp, filled, thumb, origin, nil
}

func (r *Rotator) process(origin *gallery.VFile, w, h int) (image.Image, error) {
	bs, err := origin.Bytes()
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img, err = r.chain.Apply(img); err != nil {
		return nil, fmt.Errorf("effect chain failed: %w", err)
	}

	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
}

func (r *Rotator) apply(img image.Image) error {
	path := filepath.Join(r.wallDir, currentFile)

	f, err := r.fs.Create(path)
	if err != nil {
		return err
	}

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return r.setter.Set(path)
}

// SaveOrigin keeps a history entry's original payload in the gallery.
func (r *Rotator) SaveOrigin(e *Entry) (string, error) {
	if e.Origin == nil {
		return "", errors.New("no original payload kept")
	}
	if e.Thumb {
		return "", errors.New("only the thumbnail was downloaded")
	}

	bs, err := e.Origin.Bytes()
	if err != nil {
		return "", err
	}

	return r.gallery.ImportBytes(e.Origin.Name(), bs)
}

func (r *Rotator) keepPopular(wp *api.Wallpaper, origin *gallery.VFile) {
	if r.autoSave == nil || !r.autoSave.Check(wp) {
		return
	}

	if origin == nil {
		// cache hit, the full payload was never fetched this round
		var err error
		if origin, err = r.dl.Get(wp.Path); err != nil {
			r.log.With(zap.Error(err)).Info("auto save download failed")
			return
		}
	}

	bs, err := origin.Bytes()
	if err != nil {
		r.log.With(zap.Error(err)).Info("auto save read failed")
		return
	}

	if _, err := r.gallery.ImportBytes(origin.Name(), bs); err != nil {
		r.log.With(zap.Error(err)).Info("auto save failed")
		return
	}

	r.log.With(zap.String("url", wp.Url)).Debug("wallpaper saved")
}
