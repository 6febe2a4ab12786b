package gocarousel

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	assert.InDelta(t, want.R, got.R, 2, "R at %d,%d", x, y)
	assert.InDelta(t, want.G, got.G, 2, "G at %d,%d", x, y)
	assert.InDelta(t, want.B, got.B, 2, "B at %d,%d", x, y)
	assert.InDelta(t, want.A, got.A, 2, "A at %d,%d", x, y)
}

func TestNewRasterCanvas_RejectsEmpty(t *testing.T) {
	_, err := NewRasterCanvas(0, 10, nil)
	assert.ErrorIs(t, err, ErrCanvasUnavailable)
	_, err = NewRasterCanvas(10, -1, nil)
	assert.ErrorIs(t, err, ErrCanvasUnavailable)
}

func TestRasterCanvas_FillRect(t *testing.T) {
	c, err := NewRasterCanvas(40, 40, nil)
	require.NoError(t, err)
	c.FillRect(Rect{W: 40, H: 40}, SolidPaint(color.NRGBA{R: 255, A: 255}))
	c.FillRect(Rect{X: 20, W: 20, H: 40}, SolidPaint(color.NRGBA{B: 255, A: 255}))
	require.NoError(t, c.Err())

	assertPixel(t, c.Image(), 5, 20, color.RGBA{R: 255, A: 255})
	assertPixel(t, c.Image(), 35, 20, color.RGBA{B: 255, A: 255})
}

func TestRasterCanvas_DrawImage(t *testing.T) {
	c, err := NewRasterCanvas(20, 20, nil)
	require.NoError(t, err)
	c.FillRect(Rect{W: 20, H: 20}, SolidPaint(ColorBlack))

	src := solidImage(4, 4)
	c.DrawImage(src, src.Bounds(), Rect{W: 10, H: 10}, nil)

	assertPixel(t, c.Image(), 5, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	assertPixel(t, c.Image(), 15, 15, color.RGBA{A: 255})
}

func TestRasterCanvas_DrawImageClipped(t *testing.T) {
	c, err := NewRasterCanvas(40, 40, nil)
	require.NoError(t, err)
	c.FillRect(Rect{W: 40, H: 40}, SolidPaint(ColorBlack))

	src := solidImage(8, 8)
	dst := Rect{W: 40, H: 40}
	c.DrawImage(src, src.Bounds(), dst, CirclePath(20, 20, 10))

	assertPixel(t, c.Image(), 20, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	assertPixel(t, c.Image(), 2, 2, color.RGBA{A: 255})
}

func TestRasterCanvas_MeasureText(t *testing.T) {
	c, err := NewRasterCanvas(10, 10, nil)
	require.NoError(t, err)
	f := Font{Family: "sans-serif", Size: 20, Weight: int(WeightBold)}

	short := c.MeasureText("ab", f)
	long := c.MeasureText("abcd", f)
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)

	f.LetterSpacing = 5
	assert.Greater(t, c.MeasureText("abcd", f), long)
	assert.Zero(t, c.MeasureText("", f))
}

func TestSlideToImage_Background(t *testing.T) {
	r := NewRasterizer(nil)
	opts := DefaultRenderOptions()
	opts.FontCache = NewEmbeddedFontCache()

	img, rep, err := r.SlideToImage(context.Background(), &DrawRequest{
		Width: 108, Height: 135, TemplateID: "split-top-image", Text: "Olá **mundo**",
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 108, 135), img.Bounds())
	assert.Positive(t, rep.Lines)
	assertPixel(t, img, 1, 1, color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 255})
}

func TestSlideToImage_Invalid(t *testing.T) {
	_, _, err := NewRasterizer(nil).SlideToImage(context.Background(), &DrawRequest{Width: 9000}, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestExport(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	data, err := Export(img, nil)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)

	opts := DefaultRenderOptions()
	opts.Format = ImageFormatJPEG
	data, err = Export(img, opts)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
}

func TestParseImageFormat(t *testing.T) {
	for in, want := range map[string]ImageFormat{"": ImageFormatPNG, "png": ImageFormatPNG, "jpg": ImageFormatJPEG, "jpeg": ImageFormatJPEG} {
		got, err := ParseImageFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseImageFormat("gif")
	assert.Error(t, err)
	assert.Equal(t, "image/jpeg", ImageFormatJPEG.ContentType())
}

func TestSaveSlidesAsImages(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultRenderOptions()
	opts.FontCache = NewEmbeddedFontCache()
	opts.Format = ImageFormatJPEG

	reqs := []DrawRequest{
		{Width: 54, Height: 68, Text: "one"},
		{Width: 54, Height: 68, Text: "two", WithoutText: true, SlideIndex: 1},
	}
	paths, reports, err := NewRasterizer(nil).SaveSlidesAsImages(context.Background(), dir, reqs, opts)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, []string{
		dir + "/slide_1_com_texto.jpg",
		dir + "/slide_2_sem_texto.jpg",
	}, paths)
	for i, p := range paths {
		fi, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, int(fi.Size()), reports[i].Bytes)
		assert.NotEmpty(t, reports[i].Size())
	}
	assert.Empty(t, (&RenderReport{}).Size())
}
