package gocarousel

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	gradientRe = regexp.MustCompile(`(?i)^linear-gradient\(\s*(-?\d+(?:\.\d+)?)deg\s*,\s*(.+)\)$`)
	stopPosRe  = regexp.MustCompile(`^(.*?)\s+(-?\d+(?:\.\d+)?)%$`)
)

// GradientSpec is a parsed CSS linear-gradient. Stops without an explicit
// position carry a negative Offset until resolved.
type GradientSpec struct {
	Angle float64
	Stops []ColorStop
}

// IsGradient reports whether bg uses the linear-gradient syntax.
func IsGradient(bg string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(bg)), "linear-gradient")
}

// ParseGradient parses "linear-gradient(<angle>deg, <color> [<pct>%], ...)".
// Stops without a position are spread evenly by index (i/(n-1)).
func ParseGradient(bg string) (GradientSpec, error) {
	m := gradientRe.FindStringSubmatch(strings.TrimSpace(bg))
	if m == nil {
		return GradientSpec{}, fmt.Errorf("malformed gradient %q", bg)
	}
	angle, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return GradientSpec{}, fmt.Errorf("malformed gradient angle %q", m[1])
	}
	parts := splitTopLevel(m[2])
	if len(parts) < 2 {
		return GradientSpec{}, fmt.Errorf("gradient needs at least two stops: %q", bg)
	}
	spec := GradientSpec{Angle: angle}
	for i, part := range parts {
		colorPart, offset := part, float64(i)/float64(len(parts)-1)
		if sm := stopPosRe.FindStringSubmatch(part); sm != nil {
			pct, _ := strconv.ParseFloat(sm[2], 64)
			colorPart, offset = sm[1], clamp01(pct/100)
		}
		c, err := ParseColor(colorPart)
		if err != nil {
			return GradientSpec{}, fmt.Errorf("gradient stop %d: %w", i+1, err)
		}
		spec.Stops = append(spec.Stops, ColorStop{Offset: offset, Color: c})
	}
	return spec, nil
}

// Linear resolves the gradient across a w x h surface. Angle 0 runs bottom
// to top; the axis is rotated by -90 degrees like CSS.
func (g GradientSpec) Linear(w, h float64) *LinearGradient {
	rad := (g.Angle - 90) * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return &LinearGradient{
		X0:    w/2 - cos*w/2,
		Y0:    h/2 - sin*h/2,
		X1:    w/2 + cos*w/2,
		Y1:    h/2 + sin*h/2,
		Stops: append([]ColorStop(nil), g.Stops...),
	}
}

// BackgroundPaint converts a background value into a Paint for a w x h
// surface. Malformed values fall back to solid black and return the parse
// error so callers can report it.
func BackgroundPaint(bg string, w, h float64) (Paint, error) {
	if IsGradient(bg) {
		g, err := ParseGradient(bg)
		if err != nil {
			return SolidPaint(ColorBlack), err
		}
		return Paint{Gradient: g.Linear(w, h)}, nil
	}
	c, err := ParseColor(bg)
	if err != nil {
		return SolidPaint(ColorBlack), fmt.Errorf("background: %w", err)
	}
	return SolidPaint(c), nil
}

// splitTopLevel splits on commas outside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}
