package gocarousel

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

func (f ImageFormat) String() string {
	if f == ImageFormatJPEG {
		return "jpeg"
	}
	return "png"
}

// ContentType returns the MIME type of the format.
func (f ImageFormat) ContentType() string { return "image/" + f.String() }

// ParseImageFormat maps "png", "jpeg" or "jpg" to an ImageFormat.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch s {
	case "", "png":
		return ImageFormatPNG, nil
	case "jpg", "jpeg":
		return ImageFormatJPEG, nil
	}
	return ImageFormatPNG, fmt.Errorf("unsupported image format %q", s)
}

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	// System font directories are always searched automatically.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across multiple renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

func (o *RenderOptions) fonts() *FontCache {
	if o.FontCache == nil {
		o.FontCache = NewFontCache(o.FontDirs...)
	}
	return o.FontCache
}

// SlideToImage renders req onto a new raster canvas of the requested size.
func (r *Rasterizer) SlideToImage(ctx context.Context, req *DrawRequest, opts *RenderOptions) (*image.RGBA, *RenderReport, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	w, h := req.Size()
	c, err := NewRasterCanvas(w, h, opts.fonts())
	if err != nil {
		return nil, nil, err
	}
	rep, err := r.Render(ctx, c, req)
	if err != nil {
		return nil, rep, err
	}
	if err := c.Err(); err != nil {
		rep.warn("raster backend: %v", err)
	}
	return c.Image(), rep, nil
}

// Export encodes img as PNG or JPEG.
func Export(img image.Image, opts *RenderOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	var buf bytes.Buffer
	if err := encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("encode slide: %w", err)
	}
	logger().Debug("slide encoded", "format", opts.Format, "size", humanize.Bytes(uint64(buf.Len())))
	return buf.Bytes(), nil
}

func encode(w *bytes.Buffer, img image.Image, opts *RenderOptions) error {
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// SaveSlidesAsImages renders every request and writes it to dir under its
// SlideFilename. A JPEG format swaps the extension. It returns the written
// paths and the per-slide reports.
func (r *Rasterizer) SaveSlidesAsImages(ctx context.Context, dir string, reqs []DrawRequest, opts *RenderOptions) ([]string, []*RenderReport, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	paths := make([]string, 0, len(reqs))
	reports := make([]*RenderReport, 0, len(reqs))
	for i := range reqs {
		img, rep, err := r.SlideToImage(ctx, &reqs[i], opts)
		if err != nil {
			return paths, reports, fmt.Errorf("slide %d: %w", reqs[i].SlideIndex+1, err)
		}
		name := reqs[i].Filename()
		if opts.Format == ImageFormatJPEG {
			name = name[:len(name)-len(filepath.Ext(name))] + ".jpg"
		}
		path := filepath.Join(dir, name)
		n, err := saveImage(img, path, opts)
		if err != nil {
			return paths, reports, fmt.Errorf("slide %d: %w", reqs[i].SlideIndex+1, err)
		}
		rep.Bytes = n
		paths = append(paths, path)
		reports = append(reports, rep)
	}
	return paths, reports, nil
}

// Size formats the encoded size of the slide, or "" before encoding.
func (rep *RenderReport) Size() string {
	if rep == nil || rep.Bytes == 0 {
		return ""
	}
	return humanize.Bytes(uint64(rep.Bytes))
}

func saveImage(img image.Image, path string, opts *RenderOptions) (int, error) {
	data, err := Export(img, opts)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write file: %w", err)
	}
	logger().Info("slide saved", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return len(data), nil
}
