package effects

import (
	"fmt"
	"image/color"
	"strings"
)

// names covers the CSS basic colors plus the colorize defaults.
var names = map[string]color.NRGBA{
	"black":        {0x00, 0x00, 0x00, 0xff},
	"silver":       {0xc0, 0xc0, 0xc0, 0xff},
	"gray":         {0x80, 0x80, 0x80, 0xff},
	"white":        {0xff, 0xff, 0xff, 0xff},
	"maroon":       {0x80, 0x00, 0x00, 0xff},
	"red":          {0xff, 0x00, 0x00, 0xff},
	"purple":       {0x80, 0x00, 0x80, 0xff},
	"fuchsia":      {0xff, 0x00, 0xff, 0xff},
	"green":        {0x00, 0x80, 0x00, 0xff},
	"lime":         {0x00, 0xff, 0x00, 0xff},
	"olive":        {0x80, 0x80, 0x00, 0xff},
	"yellow":       {0xff, 0xff, 0x00, 0xff},
	"navy":         {0x00, 0x00, 0x80, 0xff},
	"blue":         {0x00, 0x00, 0xff, 0xff},
	"teal":         {0x00, 0x80, 0x80, 0xff},
	"aqua":         {0x00, 0xff, 0xff, 0xff},
	"orange":       {0xff, 0xa5, 0x00, 0xff},
	"midnightblue": {0x19, 0x19, 0x70, 0xff},
}

// ParseColor resolves a color name or a #rgb / #rrggbb hex value.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := names[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		var r, g, b uint8
		var err error

		switch len(s) {
		case 4:
			_, err = fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b)
			r, g, b = r*17, g*17, b*17
		case 7:
			_, err = fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		default:
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}

		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}
