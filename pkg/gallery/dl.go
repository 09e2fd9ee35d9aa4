package gallery

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ErrDownload wraps any failure to retrieve an image over HTTP.
var ErrDownload = errors.New("image download failed")

func NewDownloader(logger *zap.Logger, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type DownloaderOption func(d *Downloader)

// WithProgress renders a byte progress bar while downloading.
func WithProgress() DownloaderOption {
	return func(d *Downloader) {
		d.progress = true
	}
}

type Downloader struct {
	cli      *resty.Client
	log      *zap.Logger
	progress bool
}

// Get fetches rawURL, which must resolve (possibly through redirects) to an
// image resource, and returns the payload in memory. The payload name is
// derived from the final URL path, falling back to a generated id.
func (d *Downloader) Get(rawURL string) (*VFile, error) {
	resp, err := d.cli.R().Get(rawURL)
	if err != nil {
		return nil, errors.Wrapf(ErrDownload, "%s: %s", rawURL, err)
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if !resp.IsSuccess() {
		return nil, errors.Wrapf(ErrDownload, "%s: status %d", rawURL, resp.StatusCode())
	}

	var src io.Reader = resp.RawBody()
	if d.progress && resp.RawResponse.ContentLength > 0 {
		bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", rawURL))
		src = io.TeeReader(src, bar)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, errors.Wrapf(ErrDownload, "%s: %s", rawURL, err)
	}

	format, err := sniffImage(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(ErrNotImage, "%s", rawURL)
	}

	// redirects may have landed us somewhere more descriptive
	final := resp.RawResponse.Request.URL

	d.log.With(
		zap.String("url", rawURL),
		zap.String("final", final.String()),
		zap.Int("bytes", buf.Len()),
	).Debug("downloaded")

	return NewVBytes(fileName(final, format), buf.Bytes()), nil
}

// Fetch downloads rawURL and stores the result in the gallery media dir,
// reusing an already-downloaded file of the same name.
func (d *Downloader) Fetch(rawURL string, g *Gallery) (string, error) {
	vf, err := d.Get(rawURL)
	if err != nil {
		return "", err
	}

	bs, err := vf.Bytes()
	if err != nil {
		return "", err
	}

	return g.ImportBytes(vf.Name(), bs)
}

func sniffImage(bs []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(bs))
	return format, err
}

func fileName(u *url.URL, format string) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = xid.New().String()
	}
	if path.Ext(name) == "" {
		name = fmt.Sprintf("%s.%s", name, format)
	}
	return name
}
