package gocarousel

import (
	"image/color"
	"math"
)

// textJob is a fully resolved text draw: font, colors, anchor and effects in
// canvas pixels.
type textJob struct {
	text       string
	font       Font
	color      color.NRGBA
	accent     color.NRGBA
	align      Alignment
	anchorX    float64
	anchorY    float64
	maxWidth   float64
	lineHeight float64

	shadow      Shadow
	stroke      color.NRGBA
	strokeWidth float64

	chip    color.NRGBA
	chipPad float64
}

// templateFamily is the family list template text asks for.
const templateFamily = "Inter, system-ui, sans-serif"

// templateFontScale maps a size class to a fraction of the canvas width.
var templateFontScale = map[SizeClass]float64{
	SizeSmall:  0.035,
	SizeMedium: 0.045,
	SizeLarge:  0.055,
	SizeXLarge: 0.07,
}

// templateAnchorY maps a text position to a fraction of the canvas height.
var templateAnchorY = map[TextPosition]float64{
	TextTop:           0.15,
	TextBottom:        0.6,
	TextLeft:          0.35,
	TextRight:         0.35,
	TextCenter:        0.4,
	TextOverlayCenter: 0.4,
	TextOverlayBottom: 0.65,
	TextOverlayTop:    0.15,
}

// templateTextArea returns the horizontal extent available to template
// text. Left and right positions use the side of the canvas the image does
// not cover; everything else spans the canvas inside a 5% padding.
func templateTextArea(t TemplateDescriptor, w, h float64) (left, right float64) {
	pad := w * 0.05
	left, right = pad, w-pad
	img := t.Image.ImageRect(w, h)
	switch t.Text.Position {
	case TextRight:
		edge := w / 2
		if t.Image.Position == ImageLeft {
			edge = img.Right()
		}
		left = edge + pad
	case TextLeft:
		edge := w / 2
		if t.Image.Position == ImageRight {
			edge = img.X
		}
		right = edge - pad
	}
	return left, right
}

func anchorFor(align Alignment, left, right float64) float64 {
	switch align {
	case AlignLeft:
		return left
	case AlignRight:
		return right
	}
	return (left + right) / 2
}

func (s *slide) templateJob() textJob {
	t := s.tmpl
	frac, ok := templateFontScale[t.DefaultStyle.FontSize]
	if !ok {
		frac = templateFontScale[SizeMedium]
	}
	weight := t.DefaultStyle.FontWeight
	if weight == 0 {
		weight = WeightBold
	}
	size := math.Floor(s.w * frac)
	left, right := templateTextArea(t, s.w, s.h)
	maxWidth := math.Min(t.Text.MaxWidth.Of(s.w), right-left)

	ay, ok := templateAnchorY[t.Text.Position]
	if !ok {
		ay = 0.5
	}
	align := t.Text.Alignment
	if !align.valid() {
		align = AlignCenter
	}

	j := textJob{
		text:       s.req.Text,
		font:       Font{Family: templateFamily, Size: size, Weight: int(weight)},
		color:      s.colors.text,
		accent:     s.colors.accent,
		align:      align,
		anchorX:    anchorFor(align, left, right),
		anchorY:    s.h * ay,
		maxWidth:   maxWidth,
		lineHeight: 1.3,
	}
	// An explicit style only contributes effects in template mode.
	if st := s.req.Style; st != nil {
		scale := s.w / 540
		j.shadow = st.shadowFor(scale)
		j.stroke, j.strokeWidth = st.strokeFor(scale)
		j.font.LetterSpacing = st.LetterSpacing * scale
		if st.LineHeight > 0 {
			j.lineHeight = st.LineHeight
		}
	}
	return j
}

// styleJob lays out the single-text composer. Sizes are preview pixels
// scaled by w/540; the text area runs between the scaled margins.
func styleJob(st *StyleSpec, text string, accent color.NRGBA, w, h, scale float64) textJob {
	weight := st.FontWeight
	if weight == 0 {
		weight = WeightBold
	}
	left := st.MarginLeft * scale
	right := w - st.MarginRight*scale
	align := st.TextAlign
	if !align.valid() {
		align = AlignCenter
	}
	stroke, strokeWidth := st.strokeFor(scale)
	return textJob{
		text: text,
		font: Font{
			Family:        st.FontFamily,
			Size:          st.FontSize * scale,
			Weight:        int(weight),
			LetterSpacing: st.LetterSpacing * scale,
		},
		color:       ColorOr(st.TextColor, ColorWhite),
		accent:      accent,
		align:       align,
		anchorX:     anchorFor(align, left, right),
		anchorY:     st.PositionY / 100 * h,
		maxWidth:    right - left,
		lineHeight:  st.lineHeight(),
		shadow:      st.shadowFor(scale),
		stroke:      stroke,
		strokeWidth: strokeWidth,
	}
}

// blockJob lays out one text block. Sizes are preview pixels scaled by
// w/360; the block is anchored at its literal X/Y percentages.
func blockJob(b *TextBlock, accent color.NRGBA, w, h, scale float64) textJob {
	weight := b.FontWeight
	if weight == 0 {
		weight = WeightBold
	}
	align := b.TextAlign
	if !align.valid() {
		align = AlignCenter
	}
	stroke, strokeWidth := b.strokeFor(scale)
	j := textJob{
		text: b.Text,
		font: Font{
			Family:        b.FontFamily,
			Size:          b.FontSize * scale,
			Weight:        int(weight),
			LetterSpacing: b.LetterSpacing * scale,
		},
		color:       ColorOr(b.Color, ColorWhite),
		accent:      accent,
		align:       align,
		anchorX:     b.X.Of(w),
		anchorY:     b.Y.Of(h),
		maxWidth:    w * 0.9,
		lineHeight:  b.lineHeight(),
		shadow:      b.shadowFor(scale),
		stroke:      stroke,
		strokeWidth: strokeWidth,
	}
	if b.BgEnabled {
		j.chip = ColorOr(b.BgColor, ColorBlack)
		j.chipPad = b.BgPadding * scale
	}
	return j
}
