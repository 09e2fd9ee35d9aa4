package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds an effect from its textual form, e.g. "blur=8", "noir",
// "posterize=24" or "colorize=navy,white". Used by flags and config values.
func Parse(s string) (Effect, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), "=")

	switch name {
	case "blur":
		radius := 5.0
		if arg != "" {
			var err error
			if radius, err = strconv.ParseFloat(arg, 64); err != nil {
				return nil, fmt.Errorf("blur: invalid radius %q", arg)
			}
		}
		return Blur(radius)

	case "noir":
		return Noir(), nil

	case "posterize":
		colors := 32
		if arg != "" {
			var err error
			if colors, err = strconv.Atoi(arg); err != nil {
				return nil, fmt.Errorf("posterize: invalid colors %q", arg)
			}
		}
		return Posterize(colors)

	case "colorize":
		dark, light := "midnightblue", "white"
		if arg != "" {
			var ok bool
			if dark, light, ok = strings.Cut(arg, ","); !ok {
				return nil, fmt.Errorf("colorize: expected dark,light got %q", arg)
			}
		}
		return Colorize(dark, light)
	}

	return nil, fmt.Errorf("unknown effect %q", name)
}

// ParseChain builds a chain from a list of effect specs.
func ParseChain(specs []string) (*Chain, error) {
	chain := NewChain()
	for _, s := range specs {
		eff, err := Parse(s)
		if err != nil {
			return nil, err
		}
		chain.Append(eff)
	}
	return chain, nil
}
