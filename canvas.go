package gocarousel

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ErrCanvasUnavailable is returned when a render cannot acquire a usable
// drawing surface (nil canvas or non-positive size).
var ErrCanvasUnavailable = errors.New("canvas unavailable")

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the right edge of r.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge of r.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Bounds returns the smallest integer rectangle covering r.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// ColorStop is one stop of a linear gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64     `json:"offset"`
	Color  color.NRGBA `json:"color"`
}

// LinearGradient is a gradient between two points in canvas pixels.
type LinearGradient struct {
	X0    float64     `json:"x0"`
	Y0    float64     `json:"y0"`
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	Stops []ColorStop `json:"stops"`
}

// RadialGradient is a gradient between two circles sharing a center.
type RadialGradient struct {
	CX    float64     `json:"cx"`
	CY    float64     `json:"cy"`
	R0    float64     `json:"r0"`
	R1    float64     `json:"r1"`
	Stops []ColorStop `json:"stops"`
}

// Paint is a solid color, a linear gradient or a radial gradient.
type Paint struct {
	Color    color.NRGBA     `json:"color"`
	Gradient *LinearGradient `json:"gradient,omitempty"`
	Radial   *RadialGradient `json:"radial,omitempty"`
}

// SolidPaint returns a Paint filling with c.
func SolidPaint(c color.NRGBA) Paint { return Paint{Color: c} }

// Font selects a face for text operations.
type Font struct {
	Family        string  `json:"family"`
	Size          float64 `json:"size"`
	Weight        int     `json:"weight"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
}

// Shadow is the drop-shadow state applied to text fills. Glow is a shadow
// with zero offset. The zero value disables shadows.
type Shadow struct {
	Color   color.NRGBA `json:"color"`
	Blur    float64     `json:"blur"`
	OffsetX float64     `json:"offsetX"`
	OffsetY float64     `json:"offsetY"`
}

// IsZero reports whether s draws nothing.
func (s Shadow) IsZero() bool { return s.Color.A == 0 }

// Canvas is the drawing surface the rasterizer issues operations against.
// Text coordinates use a middle baseline: y is the vertical center of the
// line box and x its left edge. The shadow state only affects FillText.
type Canvas interface {
	Size() (w, h int)
	FillRect(r Rect, p Paint)
	FillPath(path *Path, p Paint)
	StrokePath(path *Path, c color.NRGBA, width float64)
	// DrawImage draws the src sub-rectangle of img scaled into dst,
	// optionally restricted to clip.
	DrawImage(img image.Image, src image.Rectangle, dst Rect, clip *Path)
	MeasureText(s string, f Font) float64
	FillText(s string, x, y float64, f Font, c color.NRGBA)
	StrokeText(s string, x, y float64, f Font, c color.NRGBA, width float64)
	SetShadow(s Shadow)
}

// passMarker is implemented by canvases that want to know which render
// pass the following operations belong to.
type passMarker interface {
	BeginPass(name string)
}

// Render pass names reported to canvases implementing BeginPass.
const (
	PassBackground = "background"
	PassImage      = "image"
	PassOverlay    = "overlay"
	PassDecoration = "decoration"
	PassText       = "text"
	PassLogo       = "logo"
)

func beginPass(c Canvas, name string) {
	if m, ok := c.(passMarker); ok {
		m.BeginPass(name)
	}
}
