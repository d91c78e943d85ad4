package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// NRGBA resolves Color as a hex code (#RGB, #RRGGBB, #RRGGBBAA) or an SVG
// color keyword such as "red" or "steelblue". Matching is case-insensitive.
// Construction never calls this: any string is an acceptable Color.
func (p Program) NRGBA() (color.NRGBA, error) {
	return ParseColor(p.Color)
}

// ParseColor resolves a color string, see Program.NRGBA
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, invalid(FieldColor, fmt.Sprintf("unknown color %q", s))
}

func parseHex(s string) (color.NRGBA, error) {
	h := s[1:]
	switch len(h) {
	case 3:
		// #f80 == #ff8800
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		fallthrough
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, invalid(FieldColor, fmt.Sprintf("bad hex length in %q", s))
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, invalid(FieldColor, fmt.Sprintf("bad hex digits in %q", s))
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
