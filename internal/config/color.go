package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.NRGBA{
	"transparent": {},
	"black":       {A: 0xFF},
	"white":       {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
}

// ParseColor accepts "#RGB", "#RRGGBB", "#RRGGBBAA" (the '#' is optional)
// and the names black, white and transparent.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(raw)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(raw, "#")
	alpha := uint8(0xFF)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: bad alpha: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 0xFF {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}
