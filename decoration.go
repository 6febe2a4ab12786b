package gocarousel

import (
	"image/color"
	"math"
)

var overlayBlack = color.NRGBA{A: 255}

// drawTemplateOverlay darkens the surface under template text: a bottom or
// top gradient band for the overlay-bottom/overlay-top positions, otherwise
// a uniform 50% black.
func drawTemplateOverlay(c Canvas, pos TextPosition, w, h float64) {
	full := Rect{W: w, H: h}
	switch pos {
	case TextOverlayBottom:
		c.FillRect(full, Paint{Gradient: &LinearGradient{
			X0: 0, Y0: h * 0.4, X1: 0, Y1: h,
			Stops: []ColorStop{{0, WithAlpha(overlayBlack, 0)}, {1, WithAlpha(overlayBlack, 0.85)}},
		}})
	case TextOverlayTop:
		c.FillRect(full, Paint{Gradient: &LinearGradient{
			X0: 0, Y0: 0, X1: 0, Y1: h * 0.6,
			Stops: []ColorStop{{0, WithAlpha(overlayBlack, 0.85)}, {1, WithAlpha(overlayBlack, 0)}},
		}})
	default:
		c.FillRect(full, SolidPaint(WithAlpha(overlayBlack, 0.5)))
	}
}

// drawStyleOverlay composites the style-mode overlay at opacity (0-1).
func drawStyleOverlay(c Canvas, kind OverlayKind, opacity, w, h float64) {
	if opacity <= 0 {
		return
	}
	full := Rect{W: w, H: h}
	clear, dark := WithAlpha(overlayBlack, 0), WithAlpha(overlayBlack, opacity)
	switch kind {
	case OverlayBottom:
		c.FillRect(full, Paint{Gradient: &LinearGradient{
			X0: 0, Y0: h * 0.4, X1: 0, Y1: h,
			Stops: []ColorStop{{0, clear}, {1, dark}},
		}})
	case OverlayTop:
		c.FillRect(full, Paint{Gradient: &LinearGradient{
			X0: 0, Y0: 0, X1: 0, Y1: h * 0.6,
			Stops: []ColorStop{{0, dark}, {1, clear}},
		}})
	case OverlayRadial:
		c.FillRect(full, Paint{Radial: &RadialGradient{
			CX: w / 2, CY: h / 2, R0: 0, R1: math.Hypot(w, h) / 2,
			Stops: []ColorStop{{0, clear}, {1, dark}},
		}})
	case OverlayDiagonal:
		c.FillRect(full, Paint{Gradient: &LinearGradient{
			X0: 0, Y0: 0, X1: w, Y1: h,
			Stops: []ColorStop{{0, dark}, {0.6, WithAlpha(overlayBlack, opacity/3)}, {1, clear}},
		}})
	default:
		c.FillRect(full, SolidPaint(dark))
	}
}

// quoteFont is the face of the quotation-mark decoration.
var quoteFont = Font{Family: "serif", Size: 200, Weight: int(WeightBold)}

// drawDecoration draws a template's structural decoration in the accent
// color. Each kind carries its own fixed opacity.
func drawDecoration(c Canvas, d Decoration, accent color.NRGBA, w, h float64) {
	switch d.Type {
	case DecorationLine:
		switch d.Position {
		case "left":
			c.StrokePath(LinePath(40, h*0.55, 40, h*0.85), accent, 6)
		case "top":
			c.FillRect(Rect{X: 40, Y: 40, W: w * 0.3, H: 8}, SolidPaint(accent))
		case "bottom":
			c.FillRect(Rect{X: w * 0.35, Y: h - 48, W: w * 0.3, H: 8}, SolidPaint(accent))
		}
	case DecorationBorder:
		c.StrokePath(RectPath(Rect{W: w, H: h}.Inset(30)), accent, 4)
	case DecorationShape:
		switch d.Position {
		case "quotes":
			// Glyph baselines sit at y=180 and y=h-50; shift to the middle.
			mid := quoteFont.Size * 0.35
			col := WithAlpha(accent, 0.15)
			c.FillText(`"`, 30, 180-mid, quoteFont, col)
			c.FillText(`"`, w-150, h-50-mid, quoteFont, col)
		case "circle":
			c.FillPath(CirclePath(w*0.8, h*0.2, 150), SolidPaint(WithAlpha(accent, 0.1)))
		case "diagonal":
			c.FillPath(PolygonPath(
				Point{w * 0.5, 0}, Point{w * 0.55, h}, Point{w * 0.52, h}, Point{w * 0.47, 0},
			), SolidPaint(WithAlpha(accent, 0.3)))
		}
	case DecorationDots:
		dot := SolidPaint(WithAlpha(accent, 0.1))
		for x := 0.0; x < w; x += 40 {
			for y := 0.0; y < h; y += 40 {
				c.FillPath(CirclePath(x, y, 2), dot)
			}
		}
	case DecorationGrid:
		col := WithAlpha(accent, 0.05)
		for x := 0.0; x < w; x += 50 {
			c.StrokePath(LinePath(x, 0, x, h), col, 1)
		}
		for y := 0.0; y < h; y += 50 {
			c.StrokePath(LinePath(0, y, w, y), col, 1)
		}
	}
}
