package gocarousel

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const highlightMarker = "**"

// Run is a piece of text drawn in one color. Highlight runs use the accent
// color.
type Run struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight,omitempty"`
}

// ParseHighlights splits s into runs. Text between a pair of "**" markers
// becomes a highlight run; markers are removed. An unpaired trailing marker
// is dropped. Empty runs are never returned.
func ParseHighlights(s string) []Run {
	var runs []Run
	highlight := false
	for {
		i := strings.Index(s, highlightMarker)
		if i < 0 {
			break
		}
		// A marker pair only opens when a closing marker follows.
		if !highlight && !strings.Contains(s[i+len(highlightMarker):], highlightMarker) {
			s = s[:i] + s[i+len(highlightMarker):]
			continue
		}
		runs = appendRun(runs, Run{Text: s[:i], Highlight: highlight})
		s = s[i+len(highlightMarker):]
		highlight = !highlight
	}
	return appendRun(runs, Run{Text: s, Highlight: highlight})
}

// StripHighlights returns s with all highlight markers removed.
func StripHighlights(s string) string {
	return strings.ReplaceAll(s, highlightMarker, "")
}

func appendRun(runs []Run, r Run) []Run {
	if r.Text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Highlight == r.Highlight {
		runs[n-1].Text += r.Text
		return runs
	}
	return append(runs, r)
}

// Line is one wrapped line of runs.
type Line struct {
	Runs  []Run   `json:"runs"`
	Width float64 `json:"width"`
}

// Text returns the line's plain text.
func (l Line) Text() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// MeasureFunc returns the advance width of plain text.
type MeasureFunc func(string) float64

// word is a space-free sequence of runs. A highlight may cover several
// words and a word may mix highlighted and plain runs.
type word []Run

// WrapText greedily breaks text into lines no wider than maxWidth. Runs of
// spaces collapse to one; lines are measured with markers stripped; a word that
// alone exceeds maxWidth gets its own line and is never split. "\n" forces a
// break. Text is NFC-normalized first.
func WrapText(text string, maxWidth float64, measure MeasureFunc) []Line {
	text = norm.NFC.String(text)
	var lines []Line
	paras := strings.Split(text, "\n")
	for _, para := range paras {
		pl := wrapParagraph(splitWords(ParseHighlights(para)), maxWidth, measure)
		if len(pl) == 0 && len(paras) > 1 {
			pl = []Line{{}}
		}
		lines = append(lines, pl...)
	}
	return lines
}

func splitWords(runs []Run) []word {
	words := []word{nil}
	for _, r := range runs {
		parts := strings.Split(r.Text, " ")
		for i, p := range parts {
			if i > 0 {
				words = append(words, nil)
			}
			if p != "" {
				cur := &words[len(words)-1]
				*cur = appendRun(*cur, Run{Text: p, Highlight: r.Highlight})
			}
		}
	}
	return words
}

func wrapParagraph(words []word, maxWidth float64, measure MeasureFunc) []Line {
	var lines []Line
	var cur []Run
	started := false
	commit := func() {
		l := Line{Runs: cur}
		l.Width = measure(l.Text())
		lines = append(lines, l)
	}
	for _, w := range words {
		if len(w) == 0 {
			continue
		}
		if !started {
			cur = append(cur, w...)
			started = true
			continue
		}
		candidate := appendRun(append([]Run(nil), cur...), Run{Text: " "})
		for _, r := range w {
			candidate = appendRun(candidate, r)
		}
		if len(cur) > 0 && measure(Line{Runs: candidate}.Text()) > maxWidth {
			commit()
			cur = append([]Run(nil), w...)
			continue
		}
		cur = candidate
	}
	if len(cur) > 0 {
		commit()
	}
	return lines
}

// LineOrigins returns the left x and middle-baseline y of each line for a
// block centered vertically on anchorY. Alignment picks how anchorX is used:
// left edge, center or right edge of each line.
func LineOrigins(lines []Line, align Alignment, anchorX, anchorY, lineHeight float64) []Point {
	pts := make([]Point, len(lines))
	startY := anchorY - float64(len(lines))*lineHeight/2 + lineHeight/2
	for i, l := range lines {
		x := anchorX
		switch align {
		case AlignCenter:
			x = anchorX - l.Width/2
		case AlignRight:
			x = anchorX - l.Width
		}
		pts[i] = Point{X: x, Y: startY + float64(i)*lineHeight}
	}
	return pts
}
