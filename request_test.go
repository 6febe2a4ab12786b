package gocarousel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawRequest_EffectiveMode(t *testing.T) {
	st := DefaultStyle()
	assert.Equal(t, ModeTemplate, (&DrawRequest{}).EffectiveMode())
	assert.Equal(t, ModeStyle, (&DrawRequest{Style: &st}).EffectiveMode())
	assert.Equal(t, ModeBlocks, (&DrawRequest{Style: &st, Blocks: []TextBlock{DefaultTextBlock()}}).EffectiveMode())
	assert.Equal(t, ModeTemplate, (&DrawRequest{Mode: ModeTemplate, Style: &st}).EffectiveMode())
}

func TestDrawRequest_Size(t *testing.T) {
	w, h := (&DrawRequest{}).Size()
	assert.Equal(t, []int{1080, 1350}, []int{w, h})
	w, h = (&DrawRequest{Width: 1080, Height: 1080}).Size()
	assert.Equal(t, []int{1080, 1080}, []int{w, h})
}

func TestDecodeRequests_SingleJSON(t *testing.T) {
	reqs, err := DecodeRequests(strings.NewReader(`{
		"templateId": "card-neon",
		"paletteId": "neon-blue",
		"customColors": {"accent": "#00ff00"},
		"text": "Oi **mundo**",
		"imageFrame": {"x": 0, "y": "10%", "width": 100, "height": 50, "borderRadius": 8},
		"withoutText": true
	}`))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	r := reqs[0]
	assert.Equal(t, "card-neon", r.TemplateID)
	assert.Equal(t, "#00ff00", r.Colors.Accent)
	require.NotNil(t, r.ImageFrame)
	assert.Equal(t, Percent(10), r.ImageFrame.Y)
	assert.Equal(t, Percent(8), r.ImageFrame.CornerRadius)
	assert.True(t, r.WithoutText)
	assert.Equal(t, "slide_1_sem_texto.png", r.Filename())
}

func TestDecodeRequests_JSONArray(t *testing.T) {
	reqs, err := DecodeRequests(strings.NewReader(`[{"text":"a"},{"text":"b"},{"text":"c","slideIndex":7}]`))
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, []int{0, 1, 7}, []int{reqs[0].SlideIndex, reqs[1].SlideIndex, reqs[2].SlideIndex})
}

const yamlBatch = `
slides:
  - templateId: split-top-image
    text: First
    imageUrl: https://example.com/a.jpg
  - mode: style
    text: Second
    style:
      showText: true
      textAlign: left
      positionY: 40
      fontSize: 28
      fontWeight: black
      textColor: "#ffffff"
      glowEnabled: true
      glowColor: "#a855f7"
      glowIntensity: 12
  - blocks:
      - text: Third
        x: "50%"
        y: 80
        fontSize: 24
        fontWeight: 600
        color: white
`

func TestDecodeRequests_YAMLBatch(t *testing.T) {
	reqs, err := DecodeRequests(strings.NewReader(yamlBatch))
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, ModeTemplate, reqs[0].EffectiveMode())
	assert.Equal(t, "https://example.com/a.jpg", reqs[0].ImageURL)

	require.NotNil(t, reqs[1].Style)
	assert.Equal(t, WeightBlack, reqs[1].Style.FontWeight)
	assert.True(t, reqs[1].Style.GlowEnabled)
	assert.Equal(t, 12.0, reqs[1].Style.GlowIntensity)
	assert.Equal(t, AlignLeft, reqs[1].Style.TextAlign)

	require.Len(t, reqs[2].Blocks, 1)
	assert.Equal(t, ModeBlocks, reqs[2].EffectiveMode())
	assert.Equal(t, Percent(50), reqs[2].Blocks[0].X)
	assert.Equal(t, FontWeight(600), reqs[2].Blocks[0].FontWeight)
	assert.Equal(t, 2, reqs[2].SlideIndex)

	for i := range reqs {
		assert.NoError(t, reqs[i].Validate())
	}
}

func TestDecodeRequests_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", `{"text": `, "unknownField: 1\n", `[{"width": "wide"}]`} {
		_, err := DecodeRequests(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestValidate(t *testing.T) {
	st := DefaultStyle()
	st.PositionY = 120
	st.OverlayKind = "vignette"
	block := DefaultTextBlock()
	block.X = 150
	block.Color = "nope"

	req := DrawRequest{
		Width:        9000,
		Colors:       CustomColors{Text: "#12"},
		Background:   "rgb(1,2)",
		ImageFrame:   &FrameGeometry{Width: 0, Height: 50},
		LogoPosition: "middle",
		LogoSize:     "xlarge",
		Style:        &st,
		Blocks:       []TextBlock{DefaultTextBlock(), block},
	}
	err := req.Validate()
	require.ErrorIs(t, err, ErrInvalidRequest)
	msg := err.Error()
	for _, want := range []string{
		"must not exceed 8192",
		"customColors.text",
		"background:",
		"imageFrame:",
		"unknown logo position middle",
		"unknown logo size xlarge",
		"style: positionY",
		"style: unknown overlay kind vignette",
		"block 2: x and y",
		"block 2: color",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "block 1")
}

func TestValidate_GradientsDeferred(t *testing.T) {
	req := DrawRequest{Background: "linear-gradient(nonsense)"}
	assert.NoError(t, req.Validate())
	assert.NoError(t, (&DrawRequest{}).Validate())
}
