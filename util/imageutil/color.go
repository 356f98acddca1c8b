package imageutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

func NRGBAColor(c color.Color) color.NRGBA {
	if u, ok := c.(color.NRGBA); ok {
		return u
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

//----------

// Accepts "#rgb", "#rrggbb", "#rrggbbaa" or an svg color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color name: %q", s)
		}
		return NRGBAColor(c), nil
	}

	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad hex color: %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color: %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func SprintColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

//----------

// implements flag.Value interface
type ColorFlag struct {
	C color.NRGBA
}

func (cf *ColorFlag) String() string {
	if cf == nil {
		return ""
	}
	return SprintColor(cf.C)
}

func (cf *ColorFlag) Set(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	cf.C = c
	return nil
}
