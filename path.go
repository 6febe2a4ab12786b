package gocarousel

import "math"

// PathOp identifies a path segment kind.
type PathOp int

const (
	PathMoveTo PathOp = iota
	PathLineTo
	PathQuadTo
	PathCubicTo
	PathClose
)

// PathSegment is one path command; Pts holds up to three points
// (control points first, end point last).
type PathSegment struct {
	Op  PathOp   `json:"op"`
	Pts [3]Point `json:"pts"`
}

// Path is a backend-neutral vector path. Backends replay it segment by
// segment.
type Path struct {
	Segments []PathSegment `json:"segments"`
}

// Point is a 2D point in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{} }

func (p *Path) add(op PathOp, pts ...Point) *Path {
	s := PathSegment{Op: op}
	copy(s.Pts[:], pts)
	p.Segments = append(p.Segments, s)
	return p
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path { return p.add(PathMoveTo, Point{x, y}) }

// LineTo appends a straight segment.
func (p *Path) LineTo(x, y float64) *Path { return p.add(PathLineTo, Point{x, y}) }

// QuadTo appends a quadratic Bezier segment.
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	return p.add(PathQuadTo, Point{cx, cy}, Point{x, y})
}

// CubicTo appends a cubic Bezier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	return p.add(PathCubicTo, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
}

// Close closes the current subpath.
func (p *Path) Close() *Path { return p.add(PathClose) }

// Bounds returns the bounding box of all on- and off-curve points.
func (p *Path) Bounds() Rect {
	if p == nil || len(p.Segments) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range p.Segments {
		for i := 0; i < s.Op.NumPoints(); i++ {
			pt := s.Pts[i]
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// NumPoints returns how many entries of PathSegment.Pts op uses.
func (op PathOp) NumPoints() int {
	switch op {
	case PathMoveTo, PathLineTo:
		return 1
	case PathQuadTo:
		return 2
	case PathCubicTo:
		return 3
	}
	return 0
}

// RectPath returns a closed rectangle path.
func RectPath(r Rect) *Path {
	return NewPath().
		MoveTo(r.X, r.Y).
		LineTo(r.Right(), r.Y).
		LineTo(r.Right(), r.Bottom()).
		LineTo(r.X, r.Bottom()).
		Close()
}

// RoundedRectPath returns a rectangle with circular corners of radius rad,
// clamped to half the shorter side. A non-positive radius yields RectPath.
func RoundedRectPath(r Rect, rad float64) *Path {
	rad = math.Min(rad, math.Min(r.W, r.H)/2)
	if rad <= 0 {
		return RectPath(r)
	}
	const k = 0.5522847498
	c := rad * k
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	return NewPath().
		MoveTo(x0+rad, y0).
		LineTo(x1-rad, y0).
		CubicTo(x1-rad+c, y0, x1, y0+rad-c, x1, y0+rad).
		LineTo(x1, y1-rad).
		CubicTo(x1, y1-rad+c, x1-rad+c, y1, x1-rad, y1).
		LineTo(x0+rad, y1).
		CubicTo(x0+rad-c, y1, x0, y1-rad+c, x0, y1-rad).
		LineTo(x0, y0+rad).
		CubicTo(x0, y0+rad-c, x0+rad-c, y0, x0+rad, y0).
		Close()
}

// CirclePath returns a circle approximated by four cubic arcs.
func CirclePath(cx, cy, r float64) *Path {
	const k = 0.5522847498
	c := r * k
	return NewPath().
		MoveTo(cx+r, cy).
		CubicTo(cx+r, cy+c, cx+c, cy+r, cx, cy+r).
		CubicTo(cx-c, cy+r, cx-r, cy+c, cx-r, cy).
		CubicTo(cx-r, cy-c, cx-c, cy-r, cx, cy-r).
		CubicTo(cx+c, cy-r, cx+r, cy-c, cx+r, cy).
		Close()
}

// PolygonPath returns a closed polygon through pts.
func PolygonPath(pts ...Point) *Path {
	p := NewPath()
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	return p.Close()
}

// LinePath returns an open two-point path.
func LinePath(x0, y0, x1, y1 float64) *Path {
	return NewPath().MoveTo(x0, y0).LineTo(x1, y1)
}
