package gocarousel

import (
	"image"
	"math"
)

// CoverCrop returns the centered sub-rectangle of a srcW x srcH image that
// has the same aspect ratio as dst. Drawing that region scaled into dst
// fills it completely; only the longer axis of the source is cropped.
func CoverCrop(srcW, srcH int, dst Rect) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dst.Empty() {
		return image.Rect(0, 0, max(srcW, 0), max(srcH, 0))
	}
	srcRatio := float64(srcW) / float64(srcH)
	dstRatio := dst.W / dst.H
	if srcRatio > dstRatio {
		sw := int(math.Round(float64(srcH) * dstRatio))
		sw = min(max(sw, 1), srcW)
		sx := (srcW - sw) / 2
		return image.Rect(sx, 0, sx+sw, srcH)
	}
	sh := int(math.Round(float64(srcW) / dstRatio))
	sh = min(max(sh, 1), srcH)
	sy := (srcH - sh) / 2
	return image.Rect(0, sy, srcW, sy+sh)
}

// FitContain returns the largest rectangle with the source aspect ratio that
// fits inside box, anchored at the box's top-left corner. The source is
// never cropped: the long axis fills the box and the short axis shrinks.
func FitContain(srcW, srcH int, box Rect) Rect {
	if srcW <= 0 || srcH <= 0 || box.Empty() {
		return Rect{X: box.X, Y: box.Y}
	}
	ratio := float64(srcW) / float64(srcH)
	w, h := box.W, box.W/ratio
	if h > box.H {
		h = box.H
		w = box.H * ratio
	}
	return Rect{X: box.X, Y: box.Y, W: w, H: h}
}
