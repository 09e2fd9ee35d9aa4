package effects

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Blur applies a Gaussian blur with the given pixel radius.
func Blur(radius float64) (Effect, error) {
	if radius <= 0 {
		return nil, errors.New("blur radius must be positive")
	}
	return &blur{radius: radius}, nil
}

type blur struct {
	radius float64
}

func (e *blur) Name() string {
	return fmt.Sprintf("blur%g", e.radius)
}

func (e *blur) Apply(img image.Image) (image.Image, error) {
	return imaging.Blur(img, e.radius), nil
}
