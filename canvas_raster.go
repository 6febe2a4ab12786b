package gocarousel

import (
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/anthonynsimon/bild/blur"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
)

// RasterCanvas draws into an RGBA pixel buffer. Vector paths, gradients and
// glyphs go through a gg context; images are scaled and masked with
// x/image/draw; shadows are blurred with bild.
type RasterCanvas struct {
	w, h   int
	pm     *gg.Pixmap
	dc     *gg.Context
	img    *image.RGBA // premultiplied, shares pm's pixel buffer
	fonts  *FontCache
	shadow Shadow
	scaler xdraw.Interpolator
	outl   *text.OutlineExtractor
	err    error
}

// NewRasterCanvas allocates a transparent w x h surface. It returns
// ErrCanvasUnavailable for non-positive sizes. A nil font cache uses the
// embedded fonts only.
func NewRasterCanvas(w, h int, fonts *FontCache) (*RasterCanvas, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrCanvasUnavailable
	}
	if fonts == nil {
		fonts = NewEmbeddedFontCache()
	}
	pm := gg.NewPixmap(w, h)
	return &RasterCanvas{
		w:      w,
		h:      h,
		pm:     pm,
		dc:     gg.NewContext(w, h, gg.WithPixmap(pm)),
		img:    &image.RGBA{Pix: pm.Data(), Stride: w * 4, Rect: image.Rect(0, 0, w, h)},
		fonts:  fonts,
		scaler: xdraw.CatmullRom,
		outl:   text.NewOutlineExtractor(),
	}, nil
}

// Size implements Canvas.
func (c *RasterCanvas) Size() (int, int) { return c.w, c.h }

// Image returns the surface. The returned image aliases the canvas buffer.
func (c *RasterCanvas) Image() *image.RGBA { return c.img }

// Err returns the first backend error encountered while drawing.
func (c *RasterCanvas) Err() error { return c.err }

func (c *RasterCanvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = err
		logger().Warn("raster backend error", "err", err)
	}
}

func toGG(c color.NRGBA) gg.RGBA {
	return gg.RGBA{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}

func (c *RasterCanvas) setPaint(p Paint) {
	switch {
	case p.Gradient != nil:
		g := gg.NewLinearGradientBrush(p.Gradient.X0, p.Gradient.Y0, p.Gradient.X1, p.Gradient.Y1)
		for _, s := range p.Gradient.Stops {
			g.AddColorStop(s.Offset, toGG(s.Color))
		}
		c.dc.SetFillBrush(g)
	case p.Radial != nil:
		g := gg.NewRadialGradientBrush(p.Radial.CX, p.Radial.CY, p.Radial.R0, p.Radial.R1)
		for _, s := range p.Radial.Stops {
			g.AddColorStop(s.Offset, toGG(s.Color))
		}
		c.dc.SetFillBrush(g)
	default:
		c.dc.SetFillBrush(gg.Solid(toGG(p.Color)))
	}
}

func (c *RasterCanvas) tracePath(p *Path) {
	c.dc.ClearPath()
	for _, s := range p.Segments {
		switch s.Op {
		case PathMoveTo:
			c.dc.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case PathLineTo:
			c.dc.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case PathQuadTo:
			c.dc.QuadraticTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y)
		case PathCubicTo:
			c.dc.CubicTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case PathClose:
			c.dc.ClosePath()
		}
	}
}

// FillRect implements Canvas.
func (c *RasterCanvas) FillRect(r Rect, p Paint) {
	c.setPaint(p)
	c.dc.ClearPath()
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.keep(c.dc.Fill())
}

// FillPath implements Canvas.
func (c *RasterCanvas) FillPath(path *Path, p Paint) {
	c.setPaint(p)
	c.tracePath(path)
	c.keep(c.dc.Fill())
}

// StrokePath implements Canvas.
func (c *RasterCanvas) StrokePath(path *Path, col color.NRGBA, width float64) {
	c.dc.SetFillBrush(gg.Solid(toGG(col)))
	c.dc.SetLineWidth(width)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.tracePath(path)
	c.keep(c.dc.Stroke())
}

// DrawImage implements Canvas. The clip path, if any, is rasterized into an
// alpha mask that restricts the scaled copy.
func (c *RasterCanvas) DrawImage(img image.Image, src image.Rectangle, dst Rect, clip *Path) {
	dr := image.Rect(
		int(math.Round(dst.X)), int(math.Round(dst.Y)),
		int(math.Round(dst.Right())), int(math.Round(dst.Bottom())),
	)
	if dr.Empty() || src.Empty() {
		return
	}
	src = src.Add(img.Bounds().Min)
	var opts *xdraw.Options
	if clip != nil {
		opts = &xdraw.Options{DstMask: c.mask(clip), DstMaskP: image.Point{}}
	}
	c.scaler.Scale(c.img, dr, img, src, xdraw.Over, opts)
}

// mask renders path as an opaque white shape on a transparent layer.
func (c *RasterCanvas) mask(path *Path) image.Image {
	pm := gg.NewPixmap(c.w, c.h)
	dc := gg.NewContext(c.w, c.h, gg.WithPixmap(pm))
	saved := c.dc
	c.dc = dc
	c.setPaint(SolidPaint(ColorWhite))
	c.tracePath(path)
	c.keep(c.dc.Fill())
	c.dc = saved
	return &image.RGBA{Pix: pm.Data(), Stride: c.w * 4, Rect: image.Rect(0, 0, c.w, c.h)}
}

func (c *RasterCanvas) face(f Font) text.Face {
	return c.fonts.Face(f.Family, f.Weight, f.Size)
}

// MeasureText implements Canvas.
func (c *RasterCanvas) MeasureText(s string, f Font) float64 {
	face := c.face(f)
	if face == nil {
		return 0
	}
	return face.Advance(s) + float64(utf8.RuneCountInString(s))*f.LetterSpacing
}

// baseline converts a middle-baseline y to the alphabetic baseline.
func baseline(face text.Face, y float64) float64 {
	m := face.Metrics()
	return y + (m.Ascent-m.Descent)/2
}

// FillText implements Canvas. When a shadow is set the glyphs are first
// drawn into a scratch layer in the shadow color, blurred and composited at
// the shadow offset.
func (c *RasterCanvas) FillText(s string, x, y float64, f Font, col color.NRGBA) {
	face := c.face(f)
	if face == nil || s == "" {
		return
	}
	if !c.shadow.IsZero() {
		c.drawTextShadow(s, x, y, f, face)
	}
	c.dc.SetFont(face)
	c.dc.SetFillBrush(gg.Solid(toGG(col)))
	c.drawGlyphs(c.dc, s, x, baseline(face, y), f, face)
}

func (c *RasterCanvas) drawGlyphs(dc *gg.Context, s string, x, by float64, f Font, face text.Face) {
	if f.LetterSpacing == 0 {
		dc.DrawString(s, x, by)
		return
	}
	for _, r := range s {
		ch := string(r)
		dc.DrawString(ch, x, by)
		x += face.Advance(ch) + f.LetterSpacing
	}
}

func (c *RasterCanvas) drawTextShadow(s string, x, y float64, f Font, face text.Face) {
	sh := c.shadow
	pad := math.Ceil(sh.Blur) + 2
	m := face.Metrics()
	box := Rect{
		X: x + sh.OffsetX - pad,
		Y: y - (m.Ascent+m.Descent)/2 + sh.OffsetY - pad,
		W: c.MeasureText(s, f) + 2*pad,
		H: m.Ascent + m.Descent + 2*pad,
	}
	b := box.Bounds().Intersect(c.img.Rect)
	if b.Empty() {
		return
	}
	pm := gg.NewPixmap(b.Dx(), b.Dy())
	dc := gg.NewContext(b.Dx(), b.Dy(), gg.WithPixmap(pm))
	dc.SetFont(face)
	dc.SetFillBrush(gg.Solid(toGG(sh.Color)))
	c.drawGlyphs(dc, s, x+sh.OffsetX-float64(b.Min.X), baseline(face, y)+sh.OffsetY-float64(b.Min.Y), f, face)

	layer := &image.RGBA{Pix: pm.Data(), Stride: b.Dx() * 4, Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	var shadow image.Image = layer
	// Canvas shadowBlur is roughly twice the Gaussian sigma.
	if sh.Blur > 0 {
		shadow = blur.Gaussian(layer, sh.Blur/2)
	}
	xdraw.Draw(c.img, b, shadow, image.Point{}, xdraw.Over)
}

// StrokeText implements Canvas by stroking the glyph outlines.
func (c *RasterCanvas) StrokeText(s string, x, y float64, f Font, col color.NRGBA, width float64) {
	face := c.face(f)
	if face == nil || s == "" || width <= 0 {
		return
	}
	by := baseline(face, y)
	parsed := face.Source().Parsed()
	path := NewPath()
	i := 0
	for g := range face.Glyphs(s) {
		o, err := c.outl.ExtractOutline(parsed, g.GID, f.Size)
		if err != nil || o == nil {
			i++
			continue
		}
		ox := x + g.X + float64(i)*f.LetterSpacing
		for _, seg := range o.Segments {
			p := func(k int) (float64, float64) {
				return ox + float64(seg.Points[k].X), by + float64(seg.Points[k].Y)
			}
			switch seg.Op {
			case text.OutlineOpMoveTo:
				if len(path.Segments) > 0 {
					path.Close()
				}
				path.MoveTo(p(0))
			case text.OutlineOpLineTo:
				path.LineTo(p(0))
			case text.OutlineOpQuadTo:
				cx, cy := p(0)
				ex, ey := p(1)
				path.QuadTo(cx, cy, ex, ey)
			case text.OutlineOpCubicTo:
				c1x, c1y := p(0)
				c2x, c2y := p(1)
				ex, ey := p(2)
				path.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
			}
		}
		i++
	}
	if len(path.Segments) == 0 {
		return
	}
	path.Close()
	c.StrokePath(path, col, width)
}

// SetShadow implements Canvas.
func (c *RasterCanvas) SetShadow(s Shadow) { c.shadow = s }
