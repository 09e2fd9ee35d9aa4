package gallery

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func memGallery(t *testing.T) *Gallery {
	t.Helper()

	g, err := New(afero.NewMemMapFs(), "media", "effects", zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestImportBytes(t *testing.T) {
	g := memGallery(t)

	path, err := g.ImportBytes("a.png", pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "a.png", filepath.Base(path))

	exists, err := g.Exists("a.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestImportBytesRejectsNonImage(t *testing.T) {
	g := memGallery(t)

	_, err := g.ImportBytes("junk.png", []byte("not an image"))
	require.ErrorIs(t, err, ErrNotImage)

	// the invalid payload must not linger
	exists, err := g.Exists("junk.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImportBytesReusesExisting(t *testing.T) {
	g := memGallery(t)

	first := pngBytes(t)
	_, err := g.ImportBytes("a.png", first)
	require.NoError(t, err)

	// a second import with different content keeps the original
	_, err = g.ImportBytes("a.png", []byte("different"))
	require.NoError(t, err)

	got, err := afero.ReadFile(g.MediaFs(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestListAndRandom(t *testing.T) {
	g := memGallery(t)

	_, err := g.Random()
	assert.Error(t, err)

	_, err = g.ImportBytes("a.png", pngBytes(t))
	require.NoError(t, err)
	_, err = g.ImportBytes("b.png", pngBytes(t))
	require.NoError(t, err)

	names, err := g.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.png", "b.png"}, names)

	pick, err := g.Random()
	require.NoError(t, err)
	assert.Contains(t, []string{"a.png", "b.png"}, filepath.Base(pick))
}

func TestImportFromHostFs(t *testing.T) {
	tmp := t.TempDir()

	src := filepath.Join(tmp, "photo.png")
	require.NoError(t, os.WriteFile(src, pngBytes(t), 0644))

	g, err := New(afero.NewOsFs(), filepath.Join(tmp, "media"), filepath.Join(tmp, "effects"), zap.NewNop())
	require.NoError(t, err)

	path, err := g.Import(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "media", "photo.png"), path)
	assert.FileExists(t, path)

	// importing the stored copy again is a no-op, not an error
	again, err := g.Import(path)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestImportRejectsNonImage(t *testing.T) {
	tmp := t.TempDir()

	src := filepath.Join(tmp, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("plain text"), 0644))

	g, err := New(afero.NewOsFs(), filepath.Join(tmp, "media"), filepath.Join(tmp, "effects"), zap.NewNop())
	require.NoError(t, err)

	_, err = g.Import(src)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestVFileBytes(t *testing.T) {
	vf := NewVBytes("mem.png", []byte("payload"))
	assert.False(t, vf.IsFile())
	assert.Equal(t, "mem.png", vf.Name())

	bs, err := vf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), bs)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "on-disk.png", []byte("disk"), 0644))

	vf = NewVFile(fs, "on-disk.png")
	assert.True(t, vf.IsFile())

	bs, err = vf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("disk"), bs)

	require.NoError(t, vf.Free())
	exists, err := afero.Exists(fs, "on-disk.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Free is idempotent
	require.NoError(t, vf.Free())
}
