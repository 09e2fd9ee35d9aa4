// Package unsplash builds request URLs for the Unsplash Source endpoint.
//
// The endpoint only supports GET and answers with a redirect to an actual
// image resource, so all this package does is construct well-formed URLs;
// fetching and validation belong to the downloader.
package unsplash

import (
	"fmt"
	"net/url"
	"strings"
)

const BaseURL = "https://source.unsplash.com"

// Options narrow the photo selection.
type Options struct {
	Keywords []string
	Width    int
	Height   int
}

func (o Options) size() string {
	if o.Width > 0 && o.Height > 0 {
		return fmt.Sprintf("%dx%d", o.Width, o.Height)
	}
	return ""
}

// the endpoint takes a bare comma-separated keyword list, not key=value
// pairs
func (o Options) query() string {
	if len(o.Keywords) == 0 {
		return ""
	}

	escaped := make([]string, 0, len(o.Keywords))
	for _, k := range o.Keywords {
		escaped = append(escaped, url.QueryEscape(k))
	}
	return "?" + strings.Join(escaped, ",")
}

func build(components []string, query string) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "/") + query
}

// RandomURL addresses a random photo.
func RandomURL(o Options) string {
	return build([]string{BaseURL, "random", o.size()}, o.query())
}

// FeaturedURL addresses a random photo from the curated featured set.
func FeaturedURL(o Options) string {
	return build([]string{BaseURL, "featured", o.size()}, o.query())
}

// UserURL addresses a random photo from one user's profile.
func UserURL(user string, o Options) string {
	return build([]string{BaseURL, "user", url.QueryEscape(user), o.size()}, "")
}

// CollectionURL addresses a random photo from a collection.
func CollectionURL(id string, o Options) string {
	return build([]string{BaseURL, "collection", url.QueryEscape(id), o.size()}, "")
}

// PhotoURL addresses one specific photo.
func PhotoURL(id string, o Options) string {
	return build([]string{BaseURL, url.QueryEscape(id), o.size()}, "")
}
