package gocarousel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccent = color.NRGBA{R: 255, G: 80, B: 0, A: 255}

func assertRect(t *testing.T, want, got Rect) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y")
	assert.InDelta(t, want.W, got.W, 1e-6, "w")
	assert.InDelta(t, want.H, got.H, 1e-6, "h")
}

// opColor returns the color an op draws with.
func opColor(op Op) color.NRGBA {
	if op.Paint != nil {
		return op.Paint.Color
	}
	return op.Color
}

func TestDrawDecoration(t *testing.T) {
	const w, h = 1080.0, 1350.0
	tests := []struct {
		name  string
		deco  Decoration
		kind  OpKind
		count int
		first Rect
		alpha float64
		width float64
	}{
		{"line left", Decoration{Type: DecorationLine, Position: "left"}, OpStrokePath, 1, Rect{X: 40, Y: 742.5, H: 405}, 1, 6},
		{"line top", Decoration{Type: DecorationLine, Position: "top"}, OpFillRect, 1, Rect{X: 40, Y: 40, W: 324, H: 8}, 1, 0},
		{"line bottom", Decoration{Type: DecorationLine, Position: "bottom"}, OpFillRect, 1, Rect{X: 378, Y: 1302, W: 324, H: 8}, 1, 0},
		{"border", Decoration{Type: DecorationBorder}, OpStrokePath, 1, Rect{X: 30, Y: 30, W: 1020, H: 1290}, 1, 4},
		{"circle", Decoration{Type: DecorationShape, Position: "circle"}, OpFillPath, 1, Rect{X: 714, Y: 120, W: 300, H: 300}, 0.1, 0},
		{"diagonal wedge", Decoration{Type: DecorationShape, Position: "diagonal"}, OpFillPath, 1, Rect{X: 507.6, W: 86.4, H: 1350}, 0.3, 0},
		{"quotes", Decoration{Type: DecorationShape, Position: "quotes"}, OpFillText, 2, Rect{X: 30, Y: 10, W: 120, H: 200}, 0.15, 0},
		{"dots", Decoration{Type: DecorationDots}, OpFillPath, 27 * 34, Rect{X: -2, Y: -2, W: 4, H: 4}, 0.1, 0},
		{"grid", Decoration{Type: DecorationGrid}, OpStrokePath, 22 + 27, Rect{H: 1350}, 0.05, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(int(w), int(h))
			drawDecoration(rec, tt.deco, testAccent, w, h)

			require.Len(t, rec.Ops, tt.count)
			for _, op := range rec.Ops {
				assert.Equal(t, tt.kind, op.Kind)
				assert.Equal(t, WithAlpha(testAccent, tt.alpha), opColor(op))
				assert.Equal(t, tt.width, op.Width)
			}
			assertRect(t, tt.first, rec.Ops[0].Rect)
		})
	}
}

func TestDrawDecoration_Spacing(t *testing.T) {
	const w, h = 1080.0, 1350.0

	rec := NewRecorder(int(w), int(h))
	drawDecoration(rec, Decoration{Type: DecorationDots}, testAccent, w, h)
	// Columns of 34 dots every 40 px.
	assertRect(t, Rect{X: -2, Y: 38, W: 4, H: 4}, rec.Ops[1].Rect)
	assertRect(t, Rect{X: 38, Y: -2, W: 4, H: 4}, rec.Ops[34].Rect)
	assertRect(t, Rect{X: 1038, Y: 1318, W: 4, H: 4}, rec.Ops[len(rec.Ops)-1].Rect)

	rec = NewRecorder(int(w), int(h))
	drawDecoration(rec, Decoration{Type: DecorationGrid}, testAccent, w, h)
	// 22 vertical lines every 50 px, then 27 horizontal ones.
	assertRect(t, Rect{X: 50, H: 1350}, rec.Ops[1].Rect)
	assertRect(t, Rect{X: 1050, H: 1350}, rec.Ops[21].Rect)
	assertRect(t, Rect{W: 1080}, rec.Ops[22].Rect)
	assertRect(t, Rect{Y: 1300, W: 1080}, rec.Ops[48].Rect)
}

func TestDrawDecoration_NothingToDraw(t *testing.T) {
	for _, d := range []Decoration{
		{Type: DecorationNone},
		{Type: DecorationLine, Position: "right"},
		{Type: DecorationShape, Position: "star"},
		{Type: DecorationGradientOverlay},
	} {
		rec := NewRecorder(100, 100)
		drawDecoration(rec, d, testAccent, 100, 100)
		assert.Empty(t, rec.Ops, "%+v", d)
	}
}

func TestDrawStyleOverlay_Paints(t *testing.T) {
	const w, h = 300.0, 400.0
	dark := WithAlpha(overlayBlack, 0.6)
	clear := WithAlpha(overlayBlack, 0)

	tests := []struct {
		kind  OverlayKind
		check func(t *testing.T, p *Paint)
	}{
		{OverlaySolid, func(t *testing.T, p *Paint) {
			assert.Equal(t, dark, p.Color)
			assert.Nil(t, p.Gradient)
		}},
		{OverlayBottom, func(t *testing.T, p *Paint) {
			require.NotNil(t, p.Gradient)
			assert.InDelta(t, 160, p.Gradient.Y0, 1e-9)
			assert.Equal(t, h, p.Gradient.Y1)
			assert.Equal(t, []ColorStop{{0, clear}, {1, dark}}, p.Gradient.Stops)
		}},
		{OverlayTop, func(t *testing.T, p *Paint) {
			require.NotNil(t, p.Gradient)
			assert.InDelta(t, 240, p.Gradient.Y1, 1e-9)
			assert.Equal(t, []ColorStop{{0, dark}, {1, clear}}, p.Gradient.Stops)
		}},
		{OverlayRadial, func(t *testing.T, p *Paint) {
			require.NotNil(t, p.Radial)
			assert.Equal(t, w/2, p.Radial.CX)
			assert.Equal(t, h/2, p.Radial.CY)
			assert.Zero(t, p.Radial.R0)
			assert.InDelta(t, 250, p.Radial.R1, 1e-9)
			assert.Equal(t, []ColorStop{{0, clear}, {1, dark}}, p.Radial.Stops)
		}},
		{OverlayDiagonal, func(t *testing.T, p *Paint) {
			require.NotNil(t, p.Gradient)
			assert.Equal(t, LinearGradient{
				X0: 0, Y0: 0, X1: w, Y1: h,
				Stops: []ColorStop{{0, dark}, {0.6, WithAlpha(overlayBlack, 0.2)}, {1, clear}},
			}, *p.Gradient)
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			rec := NewRecorder(int(w), int(h))
			drawStyleOverlay(rec, tt.kind, 0.6, w, h)
			require.Len(t, rec.Ops, 1)
			assert.Equal(t, OpFillRect, rec.Ops[0].Kind)
			assert.Equal(t, Rect{W: w, H: h}, rec.Ops[0].Rect)
			tt.check(t, rec.Ops[0].Paint)
		})
	}

	rec := NewRecorder(int(w), int(h))
	drawStyleOverlay(rec, OverlayRadial, 0, w, h)
	assert.Empty(t, rec.Ops)
}

func TestRasterCanvas_StyleOverlays(t *testing.T) {
	overlay := func(kind OverlayKind) *RasterCanvas {
		c, err := NewRasterCanvas(100, 100, nil)
		require.NoError(t, err)
		c.FillRect(Rect{W: 100, H: 100}, SolidPaint(ColorWhite))
		drawStyleOverlay(c, kind, 0.5, 100, 100)
		require.NoError(t, c.Err())
		return c
	}
	gray := func(c *RasterCanvas, x, y int) float64 { return float64(c.Image().RGBAAt(x, y).R) }

	// Radial: clear at the center, half black at the corners.
	c := overlay(OverlayRadial)
	assert.InDelta(t, 255, gray(c, 50, 50), 3)
	assert.InDelta(t, 128, gray(c, 0, 0), 4)
	assert.InDelta(t, 128, gray(c, 99, 99), 4)
	assert.Less(t, gray(c, 10, 10), gray(c, 30, 30))

	// Diagonal: darkest at the top-left, clear at the bottom-right.
	c = overlay(OverlayDiagonal)
	assert.InDelta(t, 128, gray(c, 0, 0), 4)
	assert.InDelta(t, 255, gray(c, 99, 99), 3)
	assert.Less(t, gray(c, 0, 0), gray(c, 50, 50))
	assert.Less(t, gray(c, 50, 50), gray(c, 90, 90))
	// The gradient runs along the diagonal, so the other corners match.
	assert.InDelta(t, gray(c, 99, 0), gray(c, 0, 99), 2)
}
