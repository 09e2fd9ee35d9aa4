package gallery

import (
	"image"
	"image/color"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundtrip(t *testing.T) {
	c, err := NewCache(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	key := Key{ID: "abc123", Chain: "blur5+noir", W: 320, H: 480}

	hit, _, err := c.Load(key)
	require.NoError(t, err)
	assert.False(t, hit)

	img := image.NewNRGBA(image.Rect(0, 0, 320, 480))
	img.SetNRGBA(10, 10, color.NRGBA{G: 200, A: 255})
	require.NoError(t, c.Save(key, img))

	hit, got, err := c.Load(key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, img.Bounds(), got.Bounds())

	// a different chain is a different rendition
	hit, _, err = c.Load(Key{ID: "abc123", Chain: "noir", W: 320, H: 480})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	key := Key{ID: "abc123", W: 320, H: 480}

	require.NoError(t, c.Save(key, image.NewNRGBA(image.Rect(0, 0, 1, 1))))

	hit, _, err := c.Load(key)
	require.NoError(t, err)
	assert.False(t, hit)
}
