package unsplash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomURL(t *testing.T) {
	assert.Equal(t, "https://source.unsplash.com/random", RandomURL(Options{}))

	assert.Equal(t,
		"https://source.unsplash.com/random/1920x1080",
		RandomURL(Options{Width: 1920, Height: 1080}),
	)

	assert.Equal(t,
		"https://source.unsplash.com/random?pizza,lemon",
		RandomURL(Options{Keywords: []string{"pizza", "lemon"}}),
	)
}

func TestFeaturedURL(t *testing.T) {
	assert.Equal(t,
		"https://source.unsplash.com/featured/1920x1080?water,lightning",
		FeaturedURL(Options{Keywords: []string{"water", "lightning"}, Width: 1920, Height: 1080}),
	)
}

func TestKeywordsAreEscaped(t *testing.T) {
	assert.Equal(t,
		"https://source.unsplash.com/featured?new+york",
		FeaturedURL(Options{Keywords: []string{"new york"}}),
	)
}

func TestSizeRequiresBothDimensions(t *testing.T) {
	assert.Equal(t,
		"https://source.unsplash.com/featured",
		FeaturedURL(Options{Width: 1920}),
	)
}

func TestEntityURLs(t *testing.T) {
	assert.Equal(t,
		"https://source.unsplash.com/user/timmy/100x100",
		UserURL("timmy", Options{Width: 100, Height: 100}),
	)

	assert.Equal(t,
		"https://source.unsplash.com/collection/12345",
		CollectionURL("12345", Options{}),
	)

	assert.Equal(t,
		"https://source.unsplash.com/WLUHO9A_xik/1920x1080",
		PhotoURL("WLUHO9A_xik", Options{Width: 1920, Height: 1080}),
	)
}
