package gocarousel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest is wrapped by every validation error.
var ErrInvalidRequest = errors.New("validation failed")

// maxCanvasSide bounds each side of a requested canvas.
const maxCanvasSide = 8192

// Validate checks the request for structural issues and returns an error
// describing all problems found, or nil if the request is valid. Template
// and palette IDs are resolved at render time against the rasterizer's
// registries.
func (r *DrawRequest) Validate() error {
	var errs []string

	if r.Width < 0 || r.Height < 0 {
		errs = append(errs, "width and height must not be negative")
	}
	if r.Width > maxCanvasSide || r.Height > maxCanvasSide {
		errs = append(errs, fmt.Sprintf("width and height must not exceed %d", maxCanvasSide))
	}
	switch r.EffectiveMode() {
	case ModeTemplate, ModeStyle, ModeBlocks:
	default:
		errs = append(errs, "unknown mode "+string(r.Mode))
	}

	errs = appendColorErrs(errs, "customColors.text", r.Colors.Text)
	errs = appendColorErrs(errs, "customColors.accent", r.Colors.Accent)
	errs = appendBackgroundErrs(errs, "customColors.background", r.Colors.Background)
	errs = appendBackgroundErrs(errs, "background", r.Background)

	if r.ImageFrame != nil {
		for _, e := range r.ImageFrame.validate() {
			errs = append(errs, "imageFrame: "+e)
		}
	}
	switch r.LogoPosition {
	case "", LogoTopLeft, LogoTopRight, LogoTopCenter, LogoBottomLeft, LogoBottomRight, LogoBottomCenter, LogoNone:
	default:
		errs = append(errs, "unknown logo position "+string(r.LogoPosition))
	}
	switch r.LogoSize {
	case "", SizeSmall, SizeMedium, SizeLarge:
	default:
		errs = append(errs, "unknown logo size "+string(r.LogoSize))
	}

	if r.Style != nil {
		for _, e := range validateStyle(r.Style) {
			errs = append(errs, "style: "+e)
		}
	}
	for i := range r.Blocks {
		prefix := fmt.Sprintf("block %d", i+1)
		for _, e := range validateBlock(&r.Blocks[i]) {
			errs = append(errs, prefix+": "+e)
		}
	}

	return validationError(errs)
}

// validationError joins problems into one error, or returns nil for none.
func validationError(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n  %s", ErrInvalidRequest, strings.Join(errs, "\n  "))
}

func validateStyle(s *StyleSpec) []string {
	var errs []string
	if s.TextAlign != "" && !s.TextAlign.valid() {
		errs = append(errs, "unknown text alignment "+string(s.TextAlign))
	}
	if s.PositionY < 0 || s.PositionY > 100 {
		errs = append(errs, "positionY must be within 0-100")
	}
	if s.FontSize < 0 {
		errs = append(errs, "fontSize is negative")
	}
	if s.OverlayOpacity < 0 || s.OverlayOpacity > 100 {
		errs = append(errs, "overlayOpacity must be within 0-100")
	}
	switch s.OverlayKind {
	case "", OverlaySolid, OverlayBottom, OverlayTop, OverlayRadial, OverlayDiagonal:
	default:
		errs = append(errs, "unknown overlay kind "+string(s.OverlayKind))
	}
	if s.MarginLeft < 0 || s.MarginRight < 0 {
		errs = append(errs, "margins must not be negative")
	}
	errs = appendColorErrs(errs, "textColor", s.TextColor)
	errs = appendBackgroundErrs(errs, "backgroundColor", s.BackgroundColor)
	return append(errs, validateEffects(&s.TextEffects)...)
}

func validateBlock(b *TextBlock) []string {
	var errs []string
	if b.TextAlign != "" && !b.TextAlign.valid() {
		errs = append(errs, "unknown text alignment "+string(b.TextAlign))
	}
	if b.X < 0 || b.X > 100 || b.Y < 0 || b.Y > 100 {
		errs = append(errs, "x and y must be within 0-100")
	}
	if b.FontSize < 0 {
		errs = append(errs, "fontSize is negative")
	}
	if b.BgPadding < 0 {
		errs = append(errs, "bgPadding is negative")
	}
	errs = appendColorErrs(errs, "color", b.Color)
	if b.BgEnabled {
		errs = appendColorErrs(errs, "bgColor", b.BgColor)
	}
	return append(errs, validateEffects(&b.TextEffects)...)
}

func validateEffects(fx *TextEffects) []string {
	var errs []string
	if fx.ShadowEnabled {
		errs = appendColorErrs(errs, "shadowColor", fx.ShadowColor)
	}
	if fx.GlowEnabled {
		errs = appendColorErrs(errs, "glowColor", fx.GlowColor)
	}
	if fx.BorderEnabled {
		errs = appendColorErrs(errs, "borderColor", fx.BorderColor)
	}
	if fx.ShadowBlur < 0 || fx.GlowIntensity < 0 || fx.BorderWidth < 0 {
		errs = append(errs, "effect sizes must not be negative")
	}
	if fx.LineHeight < 0 {
		errs = append(errs, "lineHeight is negative")
	}
	return errs
}

func appendColorErrs(errs []string, field, value string) []string {
	if value == "" {
		return errs
	}
	if _, err := ParseColor(value); err != nil {
		errs = append(errs, field+": "+err.Error())
	}
	return errs
}

// appendBackgroundErrs checks solid colors only. Gradient strings are
// parsed at render time, where a malformed one falls back to black with a
// warning.
func appendBackgroundErrs(errs []string, field, value string) []string {
	if value == "" || IsGradient(value) {
		return errs
	}
	return appendColorErrs(errs, field, value)
}
