package effects

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Posterize reduces each color channel to n levels. The effect reads best
// with small values, roughly 2-35.
func Posterize(colors int) (Effect, error) {
	if colors < 2 || colors > 256 {
		return nil, errors.New("posterize colors must be in range 2-256")
	}
	return &posterize{levels: colors}, nil
}

type posterize struct {
	levels int
}

func (e *posterize) Name() string {
	return fmt.Sprintf("posterize%d", e.levels)
}

func (e *posterize) Apply(img image.Image) (image.Image, error) {
	steps := float64(e.levels - 1)

	quant := func(v uint8) uint8 {
		return uint8(float64(int(float64(v)/255*steps+0.5)) / steps * 255)
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: quant(c.R), G: quant(c.G), B: quant(c.B), A: c.A}
	}), nil
}
