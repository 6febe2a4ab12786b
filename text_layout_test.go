package gocarousel

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenPerRune measures every rune as 10 px.
func tenPerRune(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}

func TestParseHighlights(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Run
	}{
		{"plain", "hello", []Run{{Text: "hello"}}},
		{"middle", "Hello **world** now", []Run{{Text: "Hello "}, {Text: "world", Highlight: true}, {Text: " now"}}},
		{"leading", "**Big** news", []Run{{Text: "Big", Highlight: true}, {Text: " news"}}},
		{"unpaired", "a **b", []Run{{Text: "a b"}}},
		{"empty pair", "a****b", []Run{{Text: "ab"}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHighlights(tt.in))
		})
	}
}

func TestStripHighlights(t *testing.T) {
	assert.Equal(t, "Hello world", StripHighlights("Hello **world**"))
}

func TestWrapText_Greedy(t *testing.T) {
	lines := WrapText("aaa bbb ccc", 70, tenPerRune)
	assert.Equal(t, []string{"aaa bbb", "ccc"}, lineTexts(lines))
	assert.Equal(t, 70.0, lines[0].Width)
	assert.Equal(t, 30.0, lines[1].Width)
}

func TestWrapText_LongWordNeverSplit(t *testing.T) {
	lines := WrapText("abcdefghij xy", 50, tenPerRune)
	assert.Equal(t, []string{"abcdefghij", "xy"}, lineTexts(lines))
	assert.Equal(t, 100.0, lines[0].Width)
}

func TestWrapText_GeneratedWords(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 200; round++ {
		words := make([]string, 1+rng.IntN(30))
		for i := range words {
			words[i] = strings.Repeat(string(rune('a'+rng.IntN(26))), 1+rng.IntN(15))
		}
		maxWidth := float64(30 + rng.IntN(150))
		text := strings.Join(words, " ")

		lines := WrapText(text, maxWidth, tenPerRune)
		require.NotEmpty(t, lines, text)
		texts := lineTexts(lines)
		assert.Equal(t, text, strings.Join(texts, " "), "words kept in order")
		for i, l := range lines {
			assert.Equal(t, tenPerRune(texts[i]), l.Width, texts[i])
			single := !strings.Contains(texts[i], " ")
			assert.True(t, l.Width <= maxWidth || single,
				"line %q is %v wide, max %v", texts[i], l.Width, maxWidth)
			if i+1 < len(lines) {
				next := strings.SplitN(texts[i+1], " ", 2)[0]
				assert.Greater(t, l.Width+tenPerRune(" "+next), maxWidth,
					"%q would have fit after %q", next, texts[i])
			}
		}
	}
}

func TestWrapText_MeasuresWithoutMarkers(t *testing.T) {
	// "aa bb" is 50 px once the markers are stripped.
	lines := WrapText("**aa** bb", 50, tenPerRune)
	require.Len(t, lines, 1)
	assert.Equal(t, "aa bb", lines[0].Text())
	assert.True(t, lines[0].Runs[0].Highlight)
	assert.Equal(t, "aa", lines[0].Runs[0].Text)
}

func TestWrapText_HighlightAcrossLines(t *testing.T) {
	lines := WrapText("**one two** three", 35, tenPerRune)
	require.Equal(t, []string{"one", "two", "three"}, lineTexts(lines))
	assert.True(t, lines[0].Runs[0].Highlight)
	assert.True(t, lines[1].Runs[0].Highlight)
	assert.False(t, lines[2].Runs[0].Highlight)
}

func TestWrapText_Newlines(t *testing.T) {
	lines := WrapText("a\n\nb", 100, tenPerRune)
	assert.Equal(t, []string{"a", "", "b"}, lineTexts(lines))
}

func TestWrapText_Empty(t *testing.T) {
	assert.Empty(t, WrapText("", 100, tenPerRune))
	assert.Empty(t, WrapText("   ", 100, tenPerRune))
}

func TestWrapText_NormalizesToNFC(t *testing.T) {
	// "e" + combining acute becomes a single rune.
	lines := WrapText("cafe\u0301", 100, tenPerRune)
	require.Len(t, lines, 1)
	assert.Equal(t, "caf\u00e9", lines[0].Text())
	assert.Equal(t, 40.0, lines[0].Width)
}

func TestLineOrigins(t *testing.T) {
	lines := []Line{{Width: 100}, {Width: 50}}

	pts := LineOrigins(lines, AlignCenter, 200, 100, 20)
	assert.Equal(t, []Point{{X: 150, Y: 90}, {X: 175, Y: 110}}, pts)

	pts = LineOrigins(lines, AlignLeft, 200, 100, 20)
	assert.Equal(t, 200.0, pts[1].X)

	pts = LineOrigins(lines, AlignRight, 200, 100, 20)
	assert.Equal(t, []float64{100, 150}, []float64{pts[0].X, pts[1].X})
}
