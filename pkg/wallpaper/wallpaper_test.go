package wallpaper

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallsy/pkg/gallery"
)

type call struct {
	name string
	args []string
}

func recordingRunner(calls *[]call, out string, fail bool) Runner {
	return func(name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args})
		if fail {
			return []byte(out), errors.New("exit status 1")
		}
		return []byte(out), nil
	}
}

func imageFs(t *testing.T, path string) afero.Fs {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
	return fs
}

func TestSetInvokesGsettings(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(),
		WithRunner(recordingRunner(&calls, "", false)),
		WithFs(imageFs(t, "/wall/bg.png")),
	)

	require.NoError(t, s.Set("/wall/bg.png"))

	require.Len(t, calls, 2)
	assert.Equal(t, "gsettings", calls[0].name)
	assert.Equal(t,
		[]string{"set", "org.gnome.desktop.background", "picture-uri", "file:///wall/bg.png"},
		calls[0].args,
	)
	assert.Equal(t,
		[]string{"set", "org.gnome.desktop.background", "picture-uri-dark", "file:///wall/bg.png"},
		calls[1].args,
	)
}

func TestSetMissingFile(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(),
		WithRunner(recordingRunner(&calls, "", false)),
		WithFs(afero.NewMemMapFs()),
	)

	assert.Error(t, s.Set("/wall/nope.png"))
	assert.Empty(t, calls)
}

func TestSetRejectsNonImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/wall/fake.png", []byte("text"), 0644))

	var calls []call
	s := New(zap.NewNop(),
		WithRunner(recordingRunner(&calls, "", false)),
		WithFs(fs),
	)

	err := s.Set("/wall/fake.png")
	assert.ErrorIs(t, err, gallery.ErrNotImage)
	assert.Empty(t, calls)
}

func TestSetSurfacesGsettingsFailure(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(),
		WithRunner(recordingRunner(&calls, "No such schema", true)),
		WithFs(imageFs(t, "/wall/bg.png")),
	)

	err := s.Set("/wall/bg.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such schema")
}

func TestSetCustomCommand(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(),
		WithRunner(recordingRunner(&calls, "", false)),
		WithFs(imageFs(t, "/wall/bg.png")),
		WithCommand("feh --bg-fill {path}"),
	)

	require.NoError(t, s.Set("/wall/bg.png"))

	require.Len(t, calls, 1)
	assert.Equal(t, "feh", calls[0].name)
	assert.Equal(t, []string{"--bg-fill", "/wall/bg.png"}, calls[0].args)
}

func TestCurrent(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(),
		WithRunner(recordingRunner(&calls, "'file:///home/u/bg.png'\n", false)),
	)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "/home/u/bg.png", cur)

	require.Len(t, calls, 1)
	assert.Equal(t,
		[]string{"get", "org.gnome.desktop.background", "picture-uri"},
		calls[0].args,
	)
}

func TestCurrentEmpty(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(), WithRunner(recordingRunner(&calls, "''\n", false)))

	_, err := s.Current()
	assert.Error(t, err)
}

func TestLaunch(t *testing.T) {
	var calls []call
	s := New(zap.NewNop(), WithRunner(recordingRunner(&calls, "", false)))

	require.NoError(t, s.Launch("/wall/bg.png"))

	require.Len(t, calls, 1)
	assert.Equal(t, "xdg-open", calls[0].name)
	assert.Equal(t, []string{"/wall/bg.png"}, calls[0].args)
}
