package gocarousel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Percent is a value in percentage-of-canvas units. It decodes from a JSON
// or YAML number or from a string such as "60" or "60%". Non-numeric
// strings are rejected.
type Percent float64

// maxPercent bounds decoded percentages to keep geometry finite.
const maxPercent = 10000

// Of returns p percent of total.
func (p Percent) Of(total float64) float64 {
	return float64(p) / 100 * total
}

// Fraction returns p as a fraction (60% -> 0.6).
func (p Percent) Fraction() float64 { return float64(p) / 100 }

// ParsePercent parses "60", "60%" or " 60.5 % ".
func ParsePercent(s string) (Percent, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	if v == "" {
		return 0, fmt.Errorf("empty percentage %q", s)
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return clampPercent(n), nil
}

func clampPercent(v float64) Percent {
	if v > maxPercent {
		return maxPercent
	}
	if v < -maxPercent {
		return -maxPercent
	}
	return Percent(v)
}

// UnmarshalJSON accepts numbers and percentage strings.
func (p *Percent) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = clampPercent(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("percentage must be a number or string: %s", data)
	}
	v, err := ParsePercent(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// UnmarshalYAML accepts numbers and percentage strings.
func (p *Percent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: percentage must be a scalar", node.Line)
	}
	v, err := ParsePercent(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = v
	return nil
}

// FrameGeometry places an image or logo in percentage-of-canvas units.
// CornerRadius is a percentage of min(frame width, frame height).
type FrameGeometry struct {
	X            Percent `json:"x" yaml:"x"`
	Y            Percent `json:"y" yaml:"y"`
	Width        Percent `json:"width" yaml:"width"`
	Height       Percent `json:"height" yaml:"height"`
	CornerRadius Percent `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
}

// DefaultImageFrame is the frame used when nothing else places the image:
// full width, top 60%.
var DefaultImageFrame = FrameGeometry{X: 0, Y: 0, Width: 100, Height: 60}

// Rect converts the frame to canvas pixels for a w x h surface.
func (f FrameGeometry) Rect(w, h float64) Rect {
	return Rect{X: f.X.Of(w), Y: f.Y.Of(h), W: f.Width.Of(w), H: f.Height.Of(h)}
}

// Radius returns the corner radius in pixels for the frame's pixel rect.
func (f FrameGeometry) Radius(r Rect) float64 {
	if f.CornerRadius <= 0 {
		return 0
	}
	return f.CornerRadius.Of(math.Min(r.W, r.H))
}

func (f FrameGeometry) validate() []string {
	var errs []string
	if f.Width <= 0 || f.Height <= 0 {
		errs = append(errs, "frame width and height must be positive")
	}
	if f.CornerRadius < 0 || f.CornerRadius > 50 {
		errs = append(errs, "frame borderRadius must be within 0-50")
	}
	return errs
}
