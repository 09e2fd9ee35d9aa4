package effects

import (
	"image"

	"github.com/disintegration/imaging"
)

// Noir converts the image to grayscale with a mild contrast lift.
func Noir() Effect {
	return &noir{contrast: 10}
}

type noir struct {
	contrast float64
}

func (e *noir) Name() string {
	return "noir"
}

func (e *noir) Apply(img image.Image) (image.Image, error) {
	return imaging.AdjustContrast(imaging.Grayscale(img), e.contrast), nil
}
