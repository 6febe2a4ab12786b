package gocarousel

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImages serves solid images by reference.
type fakeImages map[string]image.Image

func (f fakeImages) Load(ctx context.Context, ref string) (image.Image, error) {
	if img, ok := f[ref]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("no image %q", ref)
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func testRasterizer() *Rasterizer {
	return NewRasterizer(fakeImages{
		"photo.jpg": solidImage(200, 100),
		"logo.png":  solidImage(100, 50),
	})
}

func render(t *testing.T, req DrawRequest) (*Recorder, *RenderReport) {
	t.Helper()
	rec := NewRecorder(req.Size())
	rep, err := testRasterizer().Render(context.Background(), rec, &req)
	require.NoError(t, err)
	return rec, rep
}

func opsOfKind(ops []Op, kind OpKind) []Op {
	var out []Op
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func TestRender_SplitTopImage(t *testing.T) {
	rec, rep := render(t, DrawRequest{
		TemplateID: "split-top-image",
		Text:       "Hello **world**",
		ImageURL:   "photo.jpg",
		LogoURL:    "logo.png",
	})

	assert.Equal(t, ModeTemplate, rep.Mode)
	assert.Equal(t, "split-top-image", rep.TemplateID)
	assert.Empty(t, rep.AssetErrors)
	assert.Equal(t, 1, rep.Lines)
	assert.Equal(t, []string{PassBackground, PassImage, PassText, PassLogo}, rec.Passes())

	bg := rec.OpsIn(PassBackground)
	require.Len(t, bg, 1)
	assert.Equal(t, Rect{W: 1080, H: 1350}, bg[0].Rect)
	assert.Equal(t, color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 255}, bg[0].Paint.Color)

	img := rec.OpsIn(PassImage)
	require.Len(t, img, 1)
	assert.Equal(t, Rect{W: 1080, H: 675}, img[0].Rect)
	assert.Equal(t, image.Rect(20, 0, 180, 100), img[0].Src)

	fills := opsOfKind(rec.OpsIn(PassText), OpFillText)
	require.Len(t, fills, 2)
	assert.Equal(t, "Hello ", fills[0].Text)
	assert.Equal(t, ColorWhite, fills[0].Color)
	assert.Equal(t, "world", fills[1].Text)
	assert.Equal(t, color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 255}, fills[1].Color)
	assert.Equal(t, 59.0, fills[0].Font.Size)
	// Centered on the canvas at 60% height.
	width := 11 * 59 * 0.6
	assert.InDelta(t, 540-width/2, fills[0].X, 1e-6)
	assert.InDelta(t, 810, fills[0].Y, 1e-6)
	assert.InDelta(t, fills[0].X+6*59*0.6, fills[1].X, 1e-6)

	logo := rec.OpsIn(PassLogo)
	require.Len(t, logo, 1)
	assert.InDelta(t, 86.4, logo[0].Rect.W, 1e-6)
	assert.InDelta(t, 43.2, logo[0].Rect.H, 1e-6)
	assert.InDelta(t, 1080-32.4, logo[0].Rect.Right(), 1e-6)
	assert.InDelta(t, 1350-32.4, logo[0].Rect.Bottom(), 1e-6)
}

func TestRender_DefaultTemplate(t *testing.T) {
	_, rep := render(t, DrawRequest{Text: "x"})
	assert.Equal(t, Templates().Default().ID, rep.TemplateID)
}

func TestRender_UnknownIDs(t *testing.T) {
	r := testRasterizer()
	rec := NewRecorder(100, 100)
	_, err := r.Render(context.Background(), rec, &DrawRequest{TemplateID: "missing"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = r.Render(context.Background(), rec, &DrawRequest{PaletteID: "missing"})
	assert.ErrorIs(t, err, ErrPaletteNotFound)
	assert.Empty(t, rec.Ops)
}

func TestRender_CanvasUnavailable(t *testing.T) {
	r := testRasterizer()
	_, err := r.Render(context.Background(), nil, &DrawRequest{})
	assert.ErrorIs(t, err, ErrCanvasUnavailable)
	_, err = r.Render(context.Background(), NewRecorder(0, 100), &DrawRequest{})
	assert.ErrorIs(t, err, ErrCanvasUnavailable)
}

func TestRender_InvalidRequest(t *testing.T) {
	_, err := testRasterizer().Render(context.Background(), NewRecorder(10, 10), &DrawRequest{Mode: "collage"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRender_AssetFailureSkipsPass(t *testing.T) {
	rec, rep := render(t, DrawRequest{
		TemplateID: "split-top-image",
		Text:       "Hello",
		ImageURL:   "gone.jpg",
		LogoURL:    "logo.png",
	})
	require.Len(t, rep.AssetErrors, 1)
	assert.Equal(t, "image", rep.AssetErrors[0].Asset)
	assert.Equal(t, "gone.jpg", rep.AssetErrors[0].Ref)
	assert.Equal(t, []string{PassBackground, PassText, PassLogo}, rec.Passes())
}

func TestRender_NoImageSourceReported(t *testing.T) {
	req := DrawRequest{
		TemplateID: "split-top-image",
		Text:       "Hello",
		ImageURL:   "photo.jpg",
		LogoURL:    "logo.png",
	}
	rec := NewRecorder(req.Size())
	rep, err := NewRasterizer(nil).Render(context.Background(), rec, &req)
	require.NoError(t, err)
	require.Len(t, rep.AssetErrors, 2)
	assert.Equal(t, "image", rep.AssetErrors[0].Asset)
	assert.Equal(t, "logo", rep.AssetErrors[1].Asset)
	for _, ae := range rep.AssetErrors {
		assert.ErrorIs(t, ae, ErrNoImageSource)
	}
	assert.Equal(t, []string{PassBackground, PassText}, rec.Passes())

	// Templates without an image slot never ask for the image.
	req.TemplateID = "minimal-quote"
	rep, err = NewRasterizer(nil).Render(context.Background(), NewRecorder(req.Size()), &req)
	require.NoError(t, err)
	require.Len(t, rep.AssetErrors, 1)
	assert.Equal(t, "logo", rep.AssetErrors[0].Asset)
}

func TestLogoRect_HugsSlotEdges(t *testing.T) {
	tests := []struct {
		pos  LogoPosition
		want Rect
	}{
		// A 2:1 logo fills the box width at half its height.
		{LogoTopLeft, Rect{X: 32.4, Y: 32.4, W: 86.4, H: 43.2}},
		{LogoTopRight, Rect{X: 961.2, Y: 32.4, W: 86.4, H: 43.2}},
		{LogoBottomLeft, Rect{X: 32.4, Y: 1274.4, W: 86.4, H: 43.2}},
		{LogoBottomRight, Rect{X: 961.2, Y: 1274.4, W: 86.4, H: 43.2}},
		{LogoBottomCenter, Rect{X: 496.8, Y: 1274.4, W: 86.4, H: 43.2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			slot := LogoSlot{Position: tt.pos, Size: SizeSmall}
			assertRect(t, tt.want, logoRect(slot, 100, 50, logoBox(slot, 1080, 1350)))
		})
	}

	// A tall logo in a bottom-right slot sits against the right margin.
	slot := LogoSlot{Position: LogoBottomRight, Size: SizeSmall}
	got := logoRect(slot, 50, 100, logoBox(slot, 1080, 1350))
	assertRect(t, Rect{X: 1004.4, Y: 1231.2, W: 43.2, H: 86.4}, got)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := NewRecorder(100, 100)
	_, err := testRasterizer().Render(ctx, rec, &DrawRequest{ImageURL: "photo.jpg"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Ops)
}

func TestRender_ColorPrecedence(t *testing.T) {
	rec, _ := render(t, DrawRequest{
		TemplateID: "split-top-image",
		PaletteID:  "light-blue",
		Colors:     CustomColors{Text: "#ff0000"},
		Text:       "a **b**",
	})
	assert.Equal(t, ColorWhite, rec.OpsIn(PassBackground)[0].Paint.Color)
	fills := opsOfKind(rec.OpsIn(PassText), OpFillText)
	require.Len(t, fills, 2)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, fills[0].Color)
	assert.Equal(t, color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255}, fills[1].Color)
}

func TestRender_WithoutText(t *testing.T) {
	req := DrawRequest{TemplateID: "split-top-image", Text: "Hello", WithoutText: true}
	rec, rep := render(t, req)
	assert.NotContains(t, rec.Passes(), PassText)
	assert.Zero(t, rep.Lines)
	assert.Equal(t, "slide_1_sem_texto.png", req.Filename())

	req.WithoutText = false
	req.SlideIndex = 2
	assert.Equal(t, "slide_3_com_texto.png", req.Filename())
}

func TestRender_TemplateOverlay(t *testing.T) {
	rec, _ := render(t, DrawRequest{TemplateID: "fullbleed-overlay-bottom", Text: "Hi", ImageURL: "photo.jpg"})
	assert.Equal(t, []string{PassBackground, PassImage, PassOverlay, PassText}, rec.Passes())
	ov := rec.OpsIn(PassOverlay)
	require.Len(t, ov, 1)
	require.NotNil(t, ov[0].Paint.Gradient)
	assert.InDelta(t, 1350*0.4, ov[0].Paint.Gradient.Y0, 1e-9)
	assert.Equal(t, uint8(0), ov[0].Paint.Gradient.Stops[0].Color.A)

	// The full-bleed image covers the canvas.
	assert.Equal(t, Rect{W: 1080, H: 1350}, rec.OpsIn(PassImage)[0].Rect)
}

func TestRender_QuoteDecoration(t *testing.T) {
	rec, _ := render(t, DrawRequest{TemplateID: "minimal-quote", Text: "Less is more"})
	deco := rec.OpsIn(PassDecoration)
	require.Len(t, deco, 2)
	assert.Equal(t, OpFillText, deco[0].Kind)
	assert.Equal(t, uint8(38), deco[0].Color.A)
}

func TestRender_TemplateTextBesideImage(t *testing.T) {
	rec, _ := render(t, DrawRequest{TemplateID: "split-left-image", Text: "Right side"})
	fills := opsOfKind(rec.OpsIn(PassText), OpFillText)
	require.NotEmpty(t, fills)
	// Left-aligned at the image edge plus 5% padding.
	assert.InDelta(t, 540+54, fills[0].X, 1e-6)
}

func TestTemplateTextArea(t *testing.T) {
	left, right := templateTextArea(mustTemplate(t, "split-left-image"), 1080, 1350)
	assert.InDelta(t, 594, left, 1e-9)
	assert.InDelta(t, 1026, right, 1e-9)

	left, right = templateTextArea(mustTemplate(t, "split-top-image"), 1080, 1350)
	assert.InDelta(t, 54, left, 1e-9)
	assert.InDelta(t, 1026, right, 1e-9)
}

func mustTemplate(t *testing.T, id string) TemplateDescriptor {
	t.Helper()
	tmpl, err := Templates().Lookup(id)
	require.NoError(t, err)
	return tmpl
}

func TestRender_TemplateStyleEffects(t *testing.T) {
	st := DefaultStyle()
	st.ShadowEnabled = false
	st.BorderEnabled = true
	rec, _ := render(t, DrawRequest{Mode: ModeTemplate, TemplateID: "split-top-image", Style: &st, Text: "Outlined"})
	ops := rec.OpsIn(PassText)
	require.Len(t, ops, 2)
	assert.Equal(t, OpStrokeText, ops[0].Kind)
	assert.Equal(t, 4.0, ops[0].Width)
	assert.Equal(t, OpFillText, ops[1].Kind)
}

func TestRender_StyleMode(t *testing.T) {
	st := DefaultStyle()
	rec, rep := render(t, DrawRequest{Style: &st, Text: "Style text", ImageURL: "photo.jpg"})
	assert.Equal(t, ModeStyle, rep.Mode)
	assert.Equal(t, []string{PassBackground, PassImage, PassOverlay, PassText}, rec.Passes())

	// Image goes into the default frame: full width, top 60%.
	frame := rec.OpsIn(PassImage)[0]
	assert.InDelta(t, 1080, frame.Rect.W, 1e-9)
	assert.InDelta(t, 810, frame.Rect.H, 1e-9)
	assert.NotNil(t, frame.Clip)

	ops := rec.OpsIn(PassText)
	require.Len(t, ops, 3)
	assert.Equal(t, OpSetShadow, ops[0].Kind)
	assert.Equal(t, Shadow{Color: ColorBlack, Blur: 8, OffsetX: 4, OffsetY: 4}, *ops[0].Shadow)
	assert.Equal(t, OpFillText, ops[1].Kind)
	assert.Equal(t, 64.0, ops[1].Font.Size)
	assert.InDelta(t, 270, ops[1].Y, 1e-9)
	assert.Equal(t, OpSetShadow, ops[2].Kind)
	assert.True(t, ops[2].Shadow.IsZero())
}

func TestRender_GlowWinsOverShadow(t *testing.T) {
	st := DefaultStyle()
	st.ShadowEnabled = true
	st.GlowEnabled = true
	rec, _ := render(t, DrawRequest{Style: &st, Text: "Glow"})
	shadows := opsOfKind(rec.OpsIn(PassText), OpSetShadow)
	require.Len(t, shadows, 2)
	glow := *shadows[0].Shadow
	assert.Equal(t, color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 255}, glow.Color)
	assert.Equal(t, 20.0, glow.Blur)
	assert.Zero(t, glow.OffsetX)
	assert.Zero(t, glow.OffsetY)
}

func TestRender_MalformedGradientFallsBack(t *testing.T) {
	st := DefaultStyle()
	rec, rep := render(t, DrawRequest{Style: &st, Background: "linear-gradient(sideways, red)", Text: "x"})
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "using black")
	bg := rec.OpsIn(PassBackground)
	require.Len(t, bg, 1)
	assert.Equal(t, ColorBlack, bg[0].Paint.Color)
	assert.Nil(t, bg[0].Paint.Gradient)
}

func TestRender_GradientBackground(t *testing.T) {
	rec, rep := render(t, DrawRequest{TemplateID: "split-top-image", PaletteID: "gradient-purple"})
	assert.Empty(t, rep.Warnings)
	require.NotNil(t, rec.OpsIn(PassBackground)[0].Paint.Gradient)
}

func TestRender_Blocks(t *testing.T) {
	empty := DefaultTextBlock()
	empty.Text = "   "
	b := DefaultTextBlock()
	b.Text = "Block"
	b.BgEnabled = true

	rec, rep := render(t, DrawRequest{Blocks: []TextBlock{empty, b}})
	assert.Equal(t, ModeBlocks, rep.Mode)
	assert.Equal(t, 1, rep.Lines)
	assert.Equal(t, color.NRGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}, rec.OpsIn(PassBackground)[0].Paint.Color)

	ops := rec.OpsIn(PassText)
	require.Len(t, ops, 4)
	assert.Equal(t, OpFillRect, ops[0].Kind, "chip first")
	assert.Equal(t, OpSetShadow, ops[1].Kind)
	assert.Equal(t, OpFillText, ops[2].Kind)
	assert.Equal(t, OpSetShadow, ops[3].Kind)

	fill := ops[2]
	assert.Equal(t, 84.0, fill.Font.Size)
	assert.InDelta(t, 540-5*84*0.6/2, fill.X, 1e-6)
	assert.InDelta(t, 1012.5, fill.Y, 1e-6)
	assert.InDelta(t, fill.X-24, ops[0].Rect.X, 1e-6)
}

func TestRender_BlocksAllEmpty(t *testing.T) {
	b := DefaultTextBlock()
	b.Text = ""
	rec, _ := render(t, DrawRequest{Blocks: []TextBlock{b}})
	assert.Equal(t, []string{PassBackground}, rec.Passes())
}

func TestRender_LogoOverride(t *testing.T) {
	rec, _ := render(t, DrawRequest{TemplateID: "split-top-image", LogoURL: "logo.png", LogoPosition: LogoNone})
	assert.NotContains(t, rec.Passes(), PassLogo)

	rec, _ = render(t, DrawRequest{TemplateID: "split-top-image", LogoURL: "logo.png", LogoPosition: LogoTopLeft, LogoSize: SizeLarge})
	logo := rec.OpsIn(PassLogo)
	require.Len(t, logo, 1)
	assert.InDelta(t, 32.4, logo[0].Rect.X, 1e-6)
	assert.InDelta(t, 32.4, logo[0].Rect.Y, 1e-6)
	assert.InDelta(t, 1080*0.16, logo[0].Rect.W, 1e-6)
}

func TestRecorder_MarshalJSON(t *testing.T) {
	rec, _ := render(t, DrawRequest{TemplateID: "split-top-image", Text: "Plan"})
	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"fillText"`)
	assert.Contains(t, string(data), `"width":1080`)
}
