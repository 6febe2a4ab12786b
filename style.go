package gocarousel

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Alignment is a horizontal text alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func (a Alignment) valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// FontWeight is a CSS numeric font weight. It decodes from numbers or the
// keywords normal, medium, bold and black.
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightMedium FontWeight = 500
	WeightBold   FontWeight = 700
	WeightBlack  FontWeight = 900
)

// ParseFontWeight parses a keyword or a number between 100 and 1000.
func ParseFontWeight(s string) (FontWeight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "regular":
		return WeightNormal, nil
	case "medium":
		return WeightMedium, nil
	case "bold":
		return WeightBold, nil
	case "black", "heavy":
		return WeightBlack, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 100 || n > 1000 {
		return 0, fmt.Errorf("invalid font weight %q", s)
	}
	return FontWeight(n), nil
}

// UnmarshalJSON accepts numbers and weight keywords.
func (w *FontWeight) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*w = FontWeight(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("font weight must be a number or string: %s", data)
	}
	v, err := ParseFontWeight(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// UnmarshalYAML accepts numbers and weight keywords.
func (w *FontWeight) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseFontWeight(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*w = v
	return nil
}

// OverlayKind selects the style-mode overlay shape.
type OverlayKind string

const (
	OverlaySolid    OverlayKind = "solid"
	OverlayBottom   OverlayKind = "bottom"
	OverlayTop      OverlayKind = "top"
	OverlayRadial   OverlayKind = "radial"
	OverlayDiagonal OverlayKind = "diagonal"
)

// TextEffects holds the per-text shadow, glow, stroke and chip settings
// shared by StyleSpec and TextBlock. Sizes are in preview pixels and are
// multiplied by the render scale.
type TextEffects struct {
	ShadowEnabled bool    `json:"shadowEnabled" yaml:"shadowEnabled"`
	ShadowColor   string  `json:"shadowColor" yaml:"shadowColor"`
	ShadowBlur    float64 `json:"shadowBlur" yaml:"shadowBlur"`
	ShadowOffsetX float64 `json:"shadowOffsetX" yaml:"shadowOffsetX"`
	ShadowOffsetY float64 `json:"shadowOffsetY" yaml:"shadowOffsetY"`

	BorderEnabled bool    `json:"borderEnabled" yaml:"borderEnabled"`
	BorderColor   string  `json:"borderColor" yaml:"borderColor"`
	BorderWidth   float64 `json:"borderWidth" yaml:"borderWidth"`

	GlowEnabled   bool    `json:"glowEnabled" yaml:"glowEnabled"`
	GlowColor     string  `json:"glowColor" yaml:"glowColor"`
	GlowIntensity float64 `json:"glowIntensity" yaml:"glowIntensity"`

	LetterSpacing float64 `json:"letterSpacing" yaml:"letterSpacing"`
	LineHeight    float64 `json:"lineHeight" yaml:"lineHeight"`
}

// StyleSpec is the flat set of rendering parameters of the single-text
// composer. Sizes are in preview pixels (540 px wide preview).
type StyleSpec struct {
	ShowText   bool       `json:"showText" yaml:"showText"`
	TextAlign  Alignment  `json:"textAlign" yaml:"textAlign"`
	PositionY  float64    `json:"positionY" yaml:"positionY"`
	FontSize   float64    `json:"fontSize" yaml:"fontSize"`
	FontFamily string     `json:"fontFamily" yaml:"fontFamily"`
	FontWeight FontWeight `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`

	TextColor       string      `json:"textColor" yaml:"textColor"`
	BackgroundColor string      `json:"backgroundColor" yaml:"backgroundColor"`
	OverlayOpacity  float64     `json:"overlayOpacity" yaml:"overlayOpacity"`
	OverlayKind     OverlayKind `json:"overlayKind,omitempty" yaml:"overlayKind,omitempty"`

	TextEffects `yaml:",inline"`

	Padding     float64 `json:"padding" yaml:"padding"`
	MarginLeft  float64 `json:"marginLeft" yaml:"marginLeft"`
	MarginRight float64 `json:"marginRight" yaml:"marginRight"`
}

// DefaultStyle returns the composer's default style.
func DefaultStyle() StyleSpec {
	return StyleSpec{
		ShowText:        true,
		TextAlign:       AlignCenter,
		PositionY:       20,
		FontSize:        32,
		FontFamily:      "Inter",
		FontWeight:      WeightBold,
		TextColor:       "#FFFFFF",
		BackgroundColor: "#000000",
		OverlayOpacity:  50,
		OverlayKind:     OverlaySolid,
		TextEffects: TextEffects{
			ShadowEnabled: true,
			ShadowColor:   "#000000",
			ShadowBlur:    4,
			ShadowOffsetX: 2,
			ShadowOffsetY: 2,
			BorderColor:   "#FFFFFF",
			BorderWidth:   2,
			GlowColor:     "#A855F7",
			GlowIntensity: 10,
			LineHeight:    1.3,
		},
		Padding:     24,
		MarginLeft:  24,
		MarginRight: 24,
	}
}

// EnableShadow turns the drop shadow on or off. Turning it on disables the
// glow, mirroring the composer controls.
func (s *StyleSpec) EnableShadow(on bool) *StyleSpec {
	s.ShadowEnabled = on
	if on {
		s.GlowEnabled = false
	}
	return s
}

// EnableGlow turns the glow on or off. Turning it on disables the shadow.
func (s *StyleSpec) EnableGlow(on bool) *StyleSpec {
	s.GlowEnabled = on
	if on {
		s.ShadowEnabled = false
	}
	return s
}

// SetMargins sets the left and right text margins.
func (s *StyleSpec) SetMargins(left, right float64) *StyleSpec {
	s.MarginLeft, s.MarginRight = left, right
	return s
}

// TextBlock is an independently styled, positioned text run of the
// multi-block composer. X and Y are percentages of the canvas; sizes are in
// preview pixels (360 px wide preview).
type TextBlock struct {
	ID         string     `json:"id" yaml:"id"`
	Text       string     `json:"text" yaml:"text"`
	X          Percent    `json:"x" yaml:"x"`
	Y          Percent    `json:"y" yaml:"y"`
	FontSize   float64    `json:"fontSize" yaml:"fontSize"`
	Color      string     `json:"color" yaml:"color"`
	FontFamily string     `json:"fontFamily" yaml:"fontFamily"`
	FontWeight FontWeight `json:"fontWeight" yaml:"fontWeight"`
	TextAlign  Alignment  `json:"textAlign" yaml:"textAlign"`

	TextEffects `yaml:",inline"`

	BgEnabled bool    `json:"bgEnabled" yaml:"bgEnabled"`
	BgColor   string  `json:"bgColor" yaml:"bgColor"`
	BgPadding float64 `json:"bgPadding" yaml:"bgPadding"`
}

// DefaultTextBlock returns a new block with the composer defaults.
func DefaultTextBlock() TextBlock {
	return TextBlock{
		Text:       "Seu texto aqui",
		X:          50,
		Y:          75,
		FontSize:   28,
		Color:      "#FFFFFF",
		FontFamily: "Inter",
		FontWeight: WeightBold,
		TextAlign:  AlignCenter,
		TextEffects: TextEffects{
			ShadowEnabled: true,
			ShadowColor:   "#000000",
			ShadowBlur:    4,
			ShadowOffsetX: 2,
			ShadowOffsetY: 2,
			BorderColor:   "#FFFFFF",
			BorderWidth:   2,
			GlowColor:     "#A855F7",
			GlowIntensity: 10,
			LineHeight:    1.3,
		},
		BgColor:   "#000000",
		BgPadding: 8,
	}
}

// shadowFor resolves the shadow state for fx at the given scale. When both
// shadow and glow are enabled the glow wins; the two are never stacked.
func (fx TextEffects) shadowFor(scale float64) Shadow {
	switch {
	case fx.GlowEnabled:
		return Shadow{
			Color: ColorOr(fx.GlowColor, ColorWhite),
			Blur:  fx.GlowIntensity * scale,
		}
	case fx.ShadowEnabled:
		return Shadow{
			Color:   ColorOr(fx.ShadowColor, ColorBlack),
			Blur:    fx.ShadowBlur * scale,
			OffsetX: fx.ShadowOffsetX * scale,
			OffsetY: fx.ShadowOffsetY * scale,
		}
	}
	return Shadow{}
}

func (fx TextEffects) lineHeight() float64 {
	if fx.LineHeight <= 0 {
		return 1.3
	}
	return fx.LineHeight
}

// strokeFor returns the outline color and scaled width, or a zero width when
// the outline is off.
func (fx TextEffects) strokeFor(scale float64) (color.NRGBA, float64) {
	if !fx.BorderEnabled || fx.BorderWidth <= 0 {
		return color.NRGBA{}, 0
	}
	return ColorOr(fx.BorderColor, ColorWhite), fx.BorderWidth * scale
}
