package effects

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Colorize maps the image luminance onto a dark-to-light color gradient,
// producing a duotone look. Both colors accept names or #hex notation.
func Colorize(dark, light string) (Effect, error) {
	dc, err := ParseColor(dark)
	if err != nil {
		return nil, fmt.Errorf("dark color: %w", err)
	}
	lc, err := ParseColor(light)
	if err != nil {
		return nil, fmt.Errorf("light color: %w", err)
	}
	return &colorize{dark: dc, light: lc}, nil
}

type colorize struct {
	dark  color.NRGBA
	light color.NRGBA
}

func (e *colorize) Name() string {
	return "colorize"
}

func (e *colorize) Apply(img image.Image) (image.Image, error) {
	lerp := func(a, b uint8, t float64) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		// Rec. 601 luma
		t := (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255

		return color.NRGBA{
			R: lerp(e.dark.R, e.light.R, t),
			G: lerp(e.dark.G, e.light.G, t),
			B: lerp(e.dark.B, e.light.B, t),
			A: c.A,
		}
	}), nil
}
