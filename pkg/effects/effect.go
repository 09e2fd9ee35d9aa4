// Package effects implements the image filters wallsy can chain together.
package effects

import (
	"image"
	"strings"
)

type Effect interface {
	Name() string
	Apply(img image.Image) (image.Image, error)
}

func NewChain(effs ...Effect) *Chain {
	return &Chain{effs: effs}
}

// Chain applies an ordered list of effects.
type Chain struct {
	effs []Effect
}

func (c *Chain) Append(effs ...Effect) {
	c.effs = append(c.effs, effs...)
}

func (c *Chain) Empty() bool {
	return len(c.effs) == 0
}

// Describe produces a stable identifier of the chain, usable in cache keys
// and file names.
func (c *Chain) Describe() string {
	names := make([]string, 0, len(c.effs))
	for _, e := range c.effs {
		names = append(names, e.Name())
	}
	return strings.Join(names, "+")
}

func (c *Chain) Apply(img image.Image) (image.Image, error) {
	var err error
	for _, e := range c.effs {
		if img, err = e.Apply(img); err != nil {
			return nil, err
		}
	}
	return img, nil
}
