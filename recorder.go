package gocarousel

import (
	"encoding/json"
	"image"
	"image/color"
	"unicode/utf8"
)

// OpKind names a recorded canvas operation.
type OpKind string

const (
	OpFillRect   OpKind = "fillRect"
	OpFillPath   OpKind = "fillPath"
	OpStrokePath OpKind = "strokePath"
	OpDrawImage  OpKind = "drawImage"
	OpFillText   OpKind = "fillText"
	OpStrokeText OpKind = "strokeText"
	OpSetShadow  OpKind = "setShadow"
)

// Op is one recorded drawing operation. Only the fields relevant to Kind
// are set.
type Op struct {
	Kind   OpKind          `json:"kind"`
	Pass   string          `json:"pass"`
	Rect   Rect            `json:"rect,omitzero"`
	Paint  *Paint          `json:"paint,omitempty"`
	Color  color.NRGBA     `json:"color,omitzero"`
	Path   *Path           `json:"path,omitempty"`
	Width  float64         `json:"width,omitempty"`
	Src    image.Rectangle `json:"src,omitzero"`
	Clip   *Path           `json:"clip,omitempty"`
	Text   string          `json:"text,omitempty"`
	X      float64         `json:"x,omitempty"`
	Y      float64         `json:"y,omitempty"`
	Font   *Font           `json:"font,omitempty"`
	Shadow *Shadow         `json:"shadow,omitempty"`
}

// Recorder is a Canvas that records operations instead of drawing. Text is
// measured as if monospaced: each rune is 0.6 em wide plus letter spacing.
type Recorder struct {
	W, H int
	Ops  []Op
	pass string
}

// NewRecorder returns a recorder for a w x h surface.
func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

// Size implements Canvas.
func (r *Recorder) Size() (int, int) { return r.W, r.H }

// BeginPass tags subsequent operations with name.
func (r *Recorder) BeginPass(name string) { r.pass = name }

func (r *Recorder) record(op Op) {
	op.Pass = r.pass
	r.Ops = append(r.Ops, op)
}

// FillRect implements Canvas.
func (r *Recorder) FillRect(rect Rect, p Paint) {
	r.record(Op{Kind: OpFillRect, Rect: rect, Paint: &p})
}

// FillPath implements Canvas.
func (r *Recorder) FillPath(path *Path, p Paint) {
	r.record(Op{Kind: OpFillPath, Path: path, Paint: &p, Rect: path.Bounds()})
}

// StrokePath implements Canvas.
func (r *Recorder) StrokePath(path *Path, c color.NRGBA, width float64) {
	r.record(Op{Kind: OpStrokePath, Path: path, Color: c, Width: width, Rect: path.Bounds()})
}

// DrawImage implements Canvas.
func (r *Recorder) DrawImage(img image.Image, src image.Rectangle, dst Rect, clip *Path) {
	r.record(Op{Kind: OpDrawImage, Src: src, Rect: dst, Clip: clip})
}

// MeasureText implements Canvas.
func (r *Recorder) MeasureText(s string, f Font) float64 {
	n := float64(utf8.RuneCountInString(s))
	return n*f.Size*0.6 + n*f.LetterSpacing
}

// FillText implements Canvas.
func (r *Recorder) FillText(s string, x, y float64, f Font, c color.NRGBA) {
	r.record(Op{Kind: OpFillText, Text: s, X: x, Y: y, Font: &f, Color: c,
		Rect: Rect{X: x, Y: y - f.Size/2, W: r.MeasureText(s, f), H: f.Size}})
}

// StrokeText implements Canvas.
func (r *Recorder) StrokeText(s string, x, y float64, f Font, c color.NRGBA, width float64) {
	r.record(Op{Kind: OpStrokeText, Text: s, X: x, Y: y, Font: &f, Color: c, Width: width,
		Rect: Rect{X: x, Y: y - f.Size/2, W: r.MeasureText(s, f), H: f.Size}})
}

// SetShadow implements Canvas.
func (r *Recorder) SetShadow(s Shadow) {
	r.record(Op{Kind: OpSetShadow, Shadow: &s})
}

// Passes returns the distinct pass names in the order they first drew.
func (r *Recorder) Passes() []string {
	var out []string
	for _, op := range r.Ops {
		if len(out) == 0 || out[len(out)-1] != op.Pass {
			out = append(out, op.Pass)
		}
	}
	return out
}

// OpsIn returns the operations recorded during pass.
func (r *Recorder) OpsIn(pass string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Pass == pass {
			out = append(out, op)
		}
	}
	return out
}

// MarshalJSON encodes the draw plan.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Width  int  `json:"width"`
		Height int  `json:"height"`
		Ops    []Op `json:"ops"`
	}{r.W, r.H, r.Ops})
}
