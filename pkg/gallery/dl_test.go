package gallery

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()

	img := pngBytes(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/img.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img)
	})
	mux.HandleFunc("/noext", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img)
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/photo-123.png", http.StatusFound)
	})
	mux.HandleFunc("/photo-123.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img)
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloaderGet(t *testing.T) {
	srv := imageServer(t)
	dl := NewDownloader(zap.NewNop())

	vf, err := dl.Get(srv.URL + "/img.png")
	require.NoError(t, err)
	assert.Equal(t, "img.png", vf.Name())

	bs, err := vf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, pngBytes(t), bs)
}

func TestDownloaderFollowsRedirects(t *testing.T) {
	srv := imageServer(t)
	dl := NewDownloader(zap.NewNop())

	// the name comes from the final URL, not the entry point
	vf, err := dl.Get(srv.URL + "/redirect")
	require.NoError(t, err)
	assert.Equal(t, "photo-123.png", vf.Name())
}

func TestDownloaderNamesExtensionlessPayloads(t *testing.T) {
	srv := imageServer(t)
	dl := NewDownloader(zap.NewNop())

	vf, err := dl.Get(srv.URL + "/noext")
	require.NoError(t, err)
	assert.Equal(t, "noext.png", vf.Name())
}

func TestDownloaderRejectsNonImage(t *testing.T) {
	srv := imageServer(t)
	dl := NewDownloader(zap.NewNop())

	_, err := dl.Get(srv.URL + "/text")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDownloaderReportsHTTPErrors(t *testing.T) {
	srv := imageServer(t)
	dl := NewDownloader(zap.NewNop())

	_, err := dl.Get(srv.URL + "/missing.png")
	assert.ErrorIs(t, err, ErrDownload)
}

func TestDownloaderFetchStoresInGallery(t *testing.T) {
	srv := imageServer(t)
	dl := NewDownloader(zap.NewNop())

	g, err := New(afero.NewMemMapFs(), "media", "effects", zap.NewNop())
	require.NoError(t, err)

	path, err := dl.Fetch(srv.URL+"/img.png", g)
	require.NoError(t, err)
	assert.Equal(t, "img.png", filepath.Base(path))

	exists, err := g.Exists("img.png")
	require.NoError(t, err)
	assert.True(t, exists)
}
