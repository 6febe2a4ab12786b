package gocarousel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ImageSource loads a decoded image for a reference (URL, data URI or path).
type ImageSource interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Rasterizer turns DrawRequests into drawing operations on a Canvas. It holds
// no per-render state and is safe for concurrent use over distinct canvases.
type Rasterizer struct {
	Templates *TemplateRegistry
	Palettes  *PaletteRegistry
	Images    ImageSource
}

// ErrNoImageSource is reported for image and logo references when the
// rasterizer has no ImageSource.
var ErrNoImageSource = errors.New("no image source")

// NewRasterizer returns a rasterizer over the built-in registries. A nil
// source skips every image and logo load and reports them as AssetErrors.
func NewRasterizer(images ImageSource) *Rasterizer {
	return &Rasterizer{Templates: Templates(), Palettes: Palettes(), Images: images}
}

// AssetError records an image or logo that could not be drawn.
type AssetError struct {
	Asset string // "image" or "logo"
	Ref   string
	Err   error
}

func (e *AssetError) Error() string { return e.Asset + " " + e.Ref + ": " + e.Err.Error() }

func (e *AssetError) Unwrap() error { return e.Err }

// MarshalText encodes the error message for JSON reports.
func (e *AssetError) MarshalText() ([]byte, error) { return []byte(e.Error()), nil }

// RenderReport describes the non-fatal problems of one render.
type RenderReport struct {
	Mode        Mode          `json:"mode"`
	TemplateID  string        `json:"templateId,omitempty"`
	Lines       int           `json:"lines"`
	Warnings    []string      `json:"warnings,omitempty"`
	AssetErrors []*AssetError `json:"assetErrors,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
	// Bytes is the encoded image size, set once the slide is exported.
	Bytes int `json:"bytes,omitempty"`
}

func (rep *RenderReport) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	rep.Warnings = append(rep.Warnings, msg)
	logger().Warn(msg)
}

// colors are the resolved slide colors after override precedence.
type colors struct {
	background string
	text       color.NRGBA
	accent     color.NRGBA
}

// resolveColors applies custom > palette > template precedence.
func resolveColors(custom CustomColors, pal *PaletteDescriptor, st TemplateStyle) colors {
	pick := func(c, p, t string) string {
		if c != "" {
			return c
		}
		if p != "" {
			return p
		}
		return t
	}
	var pc PaletteColors
	if pal != nil {
		pc = pal.Colors
	}
	return colors{
		background: pick(custom.Background, pc.Background, st.BackgroundColor),
		text:       ColorOr(pick(custom.Text, pc.Text, st.TextColor), ColorWhite),
		accent:     ColorOr(pick(custom.Accent, pc.Accent, st.AccentColor), ColorWhite),
	}
}

// assets holds the results of the concurrent image and logo loads.
type assets struct {
	image, logo image.Image
}

func (r *Rasterizer) fetch(ctx context.Context, req *DrawRequest, wantImage bool, rep *RenderReport) (assets, error) {
	var a assets
	var imgErr, logoErr error
	wantImage = wantImage && req.ImageURL != ""
	if r.Images == nil {
		if wantImage {
			rep.AssetErrors = append(rep.AssetErrors, &AssetError{Asset: "image", Ref: req.ImageURL, Err: ErrNoImageSource})
		}
		if req.LogoURL != "" {
			rep.AssetErrors = append(rep.AssetErrors, &AssetError{Asset: "logo", Ref: req.LogoURL, Err: ErrNoImageSource})
		}
		return a, nil
	}
	// Loads report their failures through imgErr and logoErr and always
	// return nil: a failed image must not cancel the logo load, or the
	// reverse.
	g, gctx := errgroup.WithContext(ctx)
	if wantImage {
		g.Go(func() error {
			a.image, imgErr = r.Images.Load(gctx, req.ImageURL)
			return nil
		})
	}
	if req.LogoURL != "" {
		g.Go(func() error {
			a.logo, logoErr = r.Images.Load(gctx, req.LogoURL)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return a, err
	}
	if imgErr != nil {
		rep.AssetErrors = append(rep.AssetErrors, &AssetError{Asset: "image", Ref: req.ImageURL, Err: imgErr})
		logger().Warn("image skipped", "ref", req.ImageURL, "err", imgErr)
	}
	if logoErr != nil {
		rep.AssetErrors = append(rep.AssetErrors, &AssetError{Asset: "logo", Ref: req.LogoURL, Err: logoErr})
		logger().Warn("logo skipped", "ref", req.LogoURL, "err", logoErr)
	}
	return a, nil
}

// Render draws req onto c in a fixed order: background, image, overlay and
// decorations, text, logo. Asset failures skip their pass and are listed in
// the report; a nil or empty canvas yields ErrCanvasUnavailable. The context
// bounds the asset loads.
func (r *Rasterizer) Render(ctx context.Context, c Canvas, req *DrawRequest) (*RenderReport, error) {
	if c == nil {
		return nil, ErrCanvasUnavailable
	}
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrCanvasUnavailable
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	rep := &RenderReport{Mode: req.EffectiveMode()}

	var pal *PaletteDescriptor
	if req.PaletteID != "" {
		p, err := r.Palettes.Lookup(req.PaletteID)
		if err != nil {
			return nil, err
		}
		pal = &p
	}
	tmpl := r.Templates.Default()
	if req.TemplateID != "" {
		t, err := r.Templates.Lookup(req.TemplateID)
		if err != nil {
			return nil, err
		}
		tmpl = t
	}

	s := &slide{
		c:    c,
		w:    float64(w),
		h:    float64(h),
		req:  req,
		tmpl: tmpl,
		rep:  rep,
	}
	s.colors = resolveColors(req.Colors, pal, tmpl.DefaultStyle)

	wantImage := rep.Mode != ModeTemplate || tmpl.Image.Position != ImageNone
	a, err := r.fetch(ctx, req, wantImage, rep)
	if err != nil {
		return rep, err
	}

	switch rep.Mode {
	case ModeTemplate:
		rep.TemplateID = tmpl.ID
		s.renderTemplate(a)
	case ModeStyle:
		s.renderStyle(a)
	case ModeBlocks:
		s.renderBlocks(a)
	}
	rep.Elapsed = time.Since(start)
	logger().Debug("slide rendered", "mode", rep.Mode, "template", rep.TemplateID,
		"lines", rep.Lines, "warnings", len(rep.Warnings), "elapsed", rep.Elapsed)
	return rep, nil
}

// slide is the state of one render call.
type slide struct {
	c      Canvas
	w, h   float64
	req    *DrawRequest
	tmpl   TemplateDescriptor
	colors colors
	rep    *RenderReport
}

func (s *slide) showText() bool {
	return !s.req.WithoutText
}

func (s *slide) background(bg string) {
	beginPass(s.c, PassBackground)
	p, err := BackgroundPaint(bg, s.w, s.h)
	if err != nil {
		s.rep.warn("background %q: %v; using black", bg, err)
	}
	s.c.FillRect(Rect{W: s.w, H: s.h}, p)
}

// image draws img cover-cropped into dst, clipped to clip when set.
func (s *slide) image(img image.Image, dst Rect, clip *Path) {
	if img == nil || dst.Empty() {
		return
	}
	beginPass(s.c, PassImage)
	b := img.Bounds()
	s.c.DrawImage(img, CoverCrop(b.Dx(), b.Dy(), dst), dst, clip)
}

// frameImage draws img into a percentage frame with its rounded clip.
func (s *slide) frameImage(img image.Image, f FrameGeometry, rounded bool) {
	dst := f.Rect(s.w, s.h)
	clip := RectPath(dst)
	if rounded {
		if rad := f.Radius(dst); rad > 0 {
			clip = RoundedRectPath(dst, rad)
		}
	}
	s.image(img, dst, clip)
}

func (s *slide) renderTemplate(a assets) {
	t := s.tmpl
	s.background(s.colors.background)

	if t.Image.Position != ImageNone {
		if s.req.ImageFrame != nil {
			s.frameImage(a.image, *s.req.ImageFrame, true)
		} else {
			dst := t.Image.ImageRect(s.w, s.h)
			var clip *Path
			if t.Image.CornerRadius > 0 {
				clip = RoundedRectPath(dst, t.Image.CornerRadius.Of(math.Min(dst.W, dst.H)))
			}
			s.image(a.image, dst, clip)
		}
	}

	if t.HasOverlay() {
		beginPass(s.c, PassOverlay)
		drawTemplateOverlay(s.c, t.Text.Position, s.w, s.h)
	}
	if t.Decoration.Type != "" && t.Decoration.Type != DecorationNone && t.Decoration.Type != DecorationGradientOverlay {
		beginPass(s.c, PassDecoration)
		drawDecoration(s.c, t.Decoration, s.colors.accent, s.w, s.h)
	}

	if s.showText() && (s.req.Style == nil || s.req.Style.ShowText) && strings.TrimSpace(s.req.Text) != "" {
		beginPass(s.c, PassText)
		s.text(s.templateJob())
	}

	s.logo(a.logo, t.Logo)
}

func (s *slide) renderStyle(a assets) {
	st := DefaultStyle()
	if s.req.Style != nil {
		st = *s.req.Style
	}
	scale := s.w / 540

	bg := st.BackgroundColor
	if s.req.Background != "" {
		bg = s.req.Background
	}
	if bg == "" {
		bg = "#000000"
	}
	s.background(bg)

	if a.image != nil {
		f := DefaultImageFrame
		if s.req.ImageFrame != nil {
			f = *s.req.ImageFrame
		}
		s.frameImage(a.image, f, true)
	}

	if st.OverlayOpacity > 0 {
		beginPass(s.c, PassOverlay)
		drawStyleOverlay(s.c, st.OverlayKind, st.OverlayOpacity/100, s.w, s.h)
	}

	if s.showText() && st.ShowText && strings.TrimSpace(s.req.Text) != "" {
		beginPass(s.c, PassText)
		s.text(styleJob(&st, s.req.Text, s.colors.accent, s.w, s.h, scale))
	}

	s.logo(a.logo, LogoSlot{Position: LogoBottomRight, Size: SizeSmall})
}

func (s *slide) renderBlocks(a assets) {
	scale := s.w / 360
	bg := s.req.Background
	if bg == "" {
		bg = blocksBackground
	}
	s.background(bg)

	if a.image != nil {
		f := DefaultImageFrame
		if s.req.ImageFrame != nil {
			f = *s.req.ImageFrame
		}
		s.frameImage(a.image, f, false)
	}

	if s.showText() {
		started := false
		for i := range s.req.Blocks {
			b := &s.req.Blocks[i]
			if strings.TrimSpace(b.Text) == "" {
				continue
			}
			if !started {
				beginPass(s.c, PassText)
				started = true
			}
			s.text(blockJob(b, s.colors.accent, s.w, s.h, scale))
		}
	}

	s.logo(a.logo, LogoSlot{Position: LogoBottomRight, Size: SizeSmall})
}

// logoFraction maps a logo size class to a fraction of the canvas width.
var logoFraction = map[SizeClass]float64{
	SizeSmall:  0.08,
	SizeMedium: 0.12,
	SizeLarge:  0.16,
}

// logoBox returns the square footprint of a logo slot.
func logoBox(slot LogoSlot, w, h float64) Rect {
	frac, ok := logoFraction[slot.Size]
	if !ok {
		frac = logoFraction[SizeSmall]
	}
	size, pad := w*frac, w*0.03
	box := Rect{X: pad, Y: pad, W: size, H: size}
	switch slot.Position {
	case LogoTopRight:
		box.X = w - size - pad
	case LogoTopCenter:
		box.X = (w - size) / 2
	case LogoBottomLeft:
		box.Y = h - size - pad
	case LogoBottomRight:
		box.X, box.Y = w-size-pad, h-size-pad
	case LogoBottomCenter:
		box.X, box.Y = (w-size)/2, h-size-pad
	}
	return box
}

// logoRect fits a srcW x srcH logo in box. The fitted rect hugs the box edge
// nearest the canvas edge the slot names.
func logoRect(slot LogoSlot, srcW, srcH int, box Rect) Rect {
	r := FitContain(srcW, srcH, box)
	switch slot.Position {
	case LogoTopRight:
		r.X = box.Right() - r.W
	case LogoTopCenter:
		r.X = box.X + (box.W-r.W)/2
	case LogoBottomLeft:
		r.Y = box.Bottom() - r.H
	case LogoBottomRight:
		r.X, r.Y = box.Right()-r.W, box.Bottom()-r.H
	case LogoBottomCenter:
		r.X, r.Y = box.X+(box.W-r.W)/2, box.Bottom()-r.H
	}
	return r
}

func (s *slide) logo(img image.Image, slot LogoSlot) {
	if img == nil {
		return
	}
	if s.req.LogoPosition != "" {
		slot.Position = s.req.LogoPosition
	}
	if s.req.LogoSize != "" {
		slot.Size = s.req.LogoSize
	}
	if slot.Position == LogoNone {
		return
	}
	b := img.Bounds()
	dst := logoRect(slot, b.Dx(), b.Dy(), logoBox(slot, s.w, s.h))
	if dst.Empty() {
		return
	}
	beginPass(s.c, PassLogo)
	s.c.DrawImage(img, b.Sub(b.Min), dst, nil)
}

// text draws one job: chips, then the shadow or glow state, stroke, fill,
// and finally a shadow reset.
func (s *slide) text(j textJob) {
	lines := WrapText(j.text, j.maxWidth, func(t string) float64 { return s.c.MeasureText(t, j.font) })
	if len(lines) == 0 {
		return
	}
	s.rep.Lines += len(lines)
	lh := j.font.Size * j.lineHeight
	origins := LineOrigins(lines, j.align, j.anchorX, j.anchorY, lh)

	if j.chip.A > 0 {
		for i, l := range lines {
			if l.Width == 0 {
				continue
			}
			o := origins[i]
			s.c.FillRect(Rect{
				X: o.X - j.chipPad,
				Y: o.Y - j.font.Size/2 - j.chipPad/2,
				W: l.Width + 2*j.chipPad,
				H: j.font.Size + j.chipPad,
			}, SolidPaint(j.chip))
		}
	}

	if !j.shadow.IsZero() {
		s.c.SetShadow(j.shadow)
	}
	if j.strokeWidth > 0 {
		for i, l := range lines {
			s.runs(l, origins[i], func(t string, x, y float64, _ color.NRGBA) {
				s.c.StrokeText(t, x, y, j.font, j.stroke, j.strokeWidth)
			}, j)
		}
	}
	for i, l := range lines {
		s.runs(l, origins[i], func(t string, x, y float64, col color.NRGBA) {
			s.c.FillText(t, x, y, j.font, col)
		}, j)
	}
	if !j.shadow.IsZero() {
		s.c.SetShadow(Shadow{})
	}
}

// runs walks the runs of l left to right, advancing by each run's measured
// width. Highlighted runs use the accent color.
func (s *slide) runs(l Line, o Point, draw func(t string, x, y float64, col color.NRGBA), j textJob) {
	x := o.X
	for _, r := range l.Runs {
		col := j.color
		if r.Highlight {
			col = j.accent
		}
		draw(r.Text, x, o.Y, col)
		x += s.c.MeasureText(r.Text, j.font)
	}
}
