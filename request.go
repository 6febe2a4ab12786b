package gocarousel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects which composer drives the text and image layout.
type Mode string

const (
	// ModeTemplate lays the slide out from a TemplateDescriptor.
	ModeTemplate Mode = "template"
	// ModeStyle lays out a single text run from a StyleSpec.
	ModeStyle Mode = "style"
	// ModeBlocks draws independently positioned TextBlocks.
	ModeBlocks Mode = "blocks"
)

// Default canvas size of an exported slide.
const (
	DefaultWidth  = 1080
	DefaultHeight = 1350
)

// blocksBackground is the multi-block composer's default fill.
const blocksBackground = "#1a1a2e"

// CustomColors overrides palette and template colors. Empty fields fall
// through to the palette, then to the template default.
type CustomColors struct {
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	Accent     string `json:"accent,omitempty" yaml:"accent,omitempty"`
}

// DrawRequest is everything a render needs. It is a plain value: the
// rasterizer never reads state from anywhere else.
type DrawRequest struct {
	Width  int  `json:"width,omitempty" yaml:"width,omitempty"`
	Height int  `json:"height,omitempty" yaml:"height,omitempty"`
	Mode   Mode `json:"mode,omitempty" yaml:"mode,omitempty"`

	TemplateID string       `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	PaletteID  string       `json:"paletteId,omitempty" yaml:"paletteId,omitempty"`
	Colors     CustomColors `json:"customColors,omitzero" yaml:"customColors,omitempty"`

	// Background overrides the style or blocks background. Solid colors and
	// linear-gradient() strings are accepted.
	Background string `json:"background,omitempty" yaml:"background,omitempty"`

	Text   string      `json:"text,omitempty" yaml:"text,omitempty"`
	Style  *StyleSpec  `json:"style,omitempty" yaml:"style,omitempty"`
	Blocks []TextBlock `json:"blocks,omitempty" yaml:"blocks,omitempty"`

	ImageURL   string         `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	ImageFrame *FrameGeometry `json:"imageFrame,omitempty" yaml:"imageFrame,omitempty"`

	LogoURL      string       `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
	LogoPosition LogoPosition `json:"logoPosition,omitempty" yaml:"logoPosition,omitempty"`
	LogoSize     SizeClass    `json:"logoSize,omitempty" yaml:"logoSize,omitempty"`

	WithoutText bool `json:"withoutText,omitempty" yaml:"withoutText,omitempty"`
	SlideIndex  int  `json:"slideIndex,omitempty" yaml:"slideIndex,omitempty"`
}

// Size returns the requested canvas size with defaults applied.
func (r *DrawRequest) Size() (int, int) {
	w, h := r.Width, r.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

// EffectiveMode resolves an empty Mode from the populated fields: blocks
// win over a style, which wins over the template layout.
func (r *DrawRequest) EffectiveMode() Mode {
	switch {
	case r.Mode != "":
		return r.Mode
	case len(r.Blocks) > 0:
		return ModeBlocks
	case r.Style != nil:
		return ModeStyle
	}
	return ModeTemplate
}

// Filename returns the export file name for this slide.
func (r *DrawRequest) Filename() string {
	return SlideFilename(r.SlideIndex, !r.WithoutText)
}

// SlideFilename names an exported slide: slide_<index+1>_com_texto.png with
// text, slide_<index+1>_sem_texto.png without.
func SlideFilename(index int, withText bool) string {
	if withText {
		return fmt.Sprintf("slide_%d_com_texto.png", index+1)
	}
	return fmt.Sprintf("slide_%d_sem_texto.png", index+1)
}

// requestFile is the on-disk form of one or more requests. A file either
// holds a single request at the top level or a list under "slides".
type requestFile struct {
	DrawRequest `yaml:",inline"`
	Slides      []DrawRequest `json:"slides,omitempty" yaml:"slides,omitempty"`
}

// DecodeRequests reads one request or a "slides" batch from JSON or YAML.
// The format is detected from the first non-space byte. Slides without an
// explicit slideIndex are numbered by their position in the batch.
func DecodeRequests(rd io.Reader) ([]DrawRequest, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty request")
	}

	var f requestFile
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if trimmed[0] == '[' {
			var list []DrawRequest
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("decode request JSON: %w", err)
			}
			f.Slides = list
		} else if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("decode request JSON: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(strings.NewReader(string(trimmed)))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode request YAML: %w", err)
		}
	}

	if len(f.Slides) == 0 {
		return []DrawRequest{f.DrawRequest}, nil
	}
	for i := range f.Slides {
		if f.Slides[i].SlideIndex == 0 {
			f.Slides[i].SlideIndex = i
		}
	}
	return f.Slides, nil
}
