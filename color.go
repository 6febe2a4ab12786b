package gocarousel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Predefined colors.
var (
	ColorBlack       = color.NRGBA{A: 255}
	ColorWhite       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorTransparent = color.NRGBA{}
)

// ParseColor parses a CSS-like color value. Accepted forms are "#rgb",
// "#rrggbb", "#rrggbbaa", "rgb(r, g, b)", "rgba(r, g, b, a)", "transparent"
// and the SVG color keywords ("white", "red", ...).
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	switch {
	case v == "":
		return color.NRGBA{}, fmt.Errorf("empty color")
	case v == "transparent":
		return ColorTransparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v)
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
}

// ColorOr parses s and returns fallback when s is empty or invalid.
func ColorOr(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// WithAlpha returns c with its alpha channel multiplied by a (0-1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(clamp01(float64(c.A)/255*a)*255 + 0.5)
	return c
}

// HexColor formats c as "#rrggbb", or "#rrggbbaa" when not opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func parseHexColor(v string) (color.NRGBA, error) {
	if len(v) == 9 {
		base, err := colorful.Hex(v[:7])
		if err != nil {
			return color.NRGBA{}, err
		}
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q", v)
		}
		r, g, b := base.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseRGBFunc(v string) (color.NRGBA, error) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return color.NRGBA{}, fmt.Errorf("malformed color function %q", v)
	}
	name := v[:open]
	parts := strings.Split(v[open+1:len(v)-1], ",")
	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return color.NRGBA{}, fmt.Errorf("unsupported color function %q", name)
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("%s expects %d components, got %d", name, want, len(parts))
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid component %q", parts[i])
		}
		ch[i] = uint8(clamp(n, 0, 255) + 0.5)
	}
	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha %q", parts[3])
		}
		alpha = clamp01(a)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(alpha*255 + 0.5)}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
