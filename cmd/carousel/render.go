package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	gocarousel "github.com/VantageDataChat/GoCarousel"
)

var (
	outDir       string
	formatName   string
	jpegQuality  int
	planOnly     bool
	withoutText  bool
	useDefault   bool
	renderFonts  []string
	renderWidth  int
	renderHeight int
)

var renderCmd = &cobra.Command{
	Use:   "render [request-file ...]",
	Short: "Render slides described by JSON or YAML request files",
	Long: `Render one or more request files. A file holds a single request, a JSON
array of requests, or an object with a "slides" list. Use "-" to read stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	renderCmd.Flags().StringVar(&formatName, "format", "png", "Output format: png or jpeg")
	renderCmd.Flags().IntVar(&jpegQuality, "quality", 90, "JPEG quality (1-100)")
	renderCmd.Flags().BoolVar(&planOnly, "plan", false, "Write the draw plan as JSON instead of images")
	renderCmd.Flags().BoolVar(&withoutText, "without-text", false, "Render the slides without their text")
	renderCmd.Flags().BoolVar(&useDefault, "default-style", true, "Apply the saved default style to style-mode slides without one")
	renderCmd.Flags().StringSliceVar(&renderFonts, "font-dir", nil, "Additional font directories")
	renderCmd.Flags().IntVar(&renderWidth, "width", gocarousel.DefaultWidth, "Canvas width for requests that leave it unset")
	renderCmd.Flags().IntVar(&renderHeight, "height", gocarousel.DefaultHeight, "Canvas height for requests that leave it unset")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("font-dir") {
		cfg.FontDirs = renderFonts
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = renderWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = renderHeight
	}

	format, err := gocarousel.ParseImageFormat(strings.ToLower(formatName))
	if err != nil {
		return err
	}

	var reqs []gocarousel.DrawRequest
	for _, name := range args {
		batch, err := readRequests(cmd, name)
		if err != nil {
			return err
		}
		// Indexes continue across files so filenames never collide.
		offset := len(reqs)
		for i := range batch {
			batch[i].SlideIndex += offset
		}
		reqs = append(reqs, batch...)
	}

	var def *gocarousel.StyleSpec
	if useDefault {
		def, err = savedDefaultStyle(cmd.Context(), cfg)
		if err != nil {
			return err
		}
	}
	for i := range reqs {
		r := &reqs[i]
		if r.Width == 0 {
			r.Width = cfg.Width
		}
		if r.Height == 0 {
			r.Height = cfg.Height
		}
		if cmd.Flags().Changed("without-text") {
			r.WithoutText = withoutText
		}
		if def != nil && r.Style == nil && r.EffectiveMode() == gocarousel.ModeStyle {
			st := *def
			r.Style = &st
		}
	}

	raster := gocarousel.NewRasterizer(gocarousel.NewAssetLoader(cfg.ProxyBase))
	ctx := cmd.Context()
	if planOnly {
		return writePlans(ctx, cmd, raster, reqs)
	}

	opts := &gocarousel.RenderOptions{
		Format:      format,
		JPEGQuality: jpegQuality,
		FontCache:   gocarousel.NewFontCache(cfg.FontDirs...),
	}
	paths, reports, err := raster.SaveSlidesAsImages(ctx, outDir, reqs, opts)
	for i, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p, reports[i].Size())
		for _, w := range reports[i].Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  warning: %s\n", w)
		}
		for _, ae := range reports[i].AssetErrors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %s\n", ae)
		}
	}
	return err
}

func readRequests(cmd *cobra.Command, name string) ([]gocarousel.DrawRequest, error) {
	var rd io.Reader
	if name == "-" {
		rd = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rd = f
	}
	reqs, err := gocarousel.DecodeRequests(rd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return reqs, nil
}

// savedDefaultStyle returns the stored default style, or nil when none was
// saved.
func savedDefaultStyle(ctx context.Context, cfg gocarousel.Config) (*gocarousel.StyleSpec, error) {
	store, err := cfg.OpenStyleStore()
	if err != nil {
		return nil, err
	}
	if c, ok := store.(interface{ Close() error }); ok {
		defer c.Close()
	}
	st, err := store.Load(ctx, gocarousel.DefaultStyleKey)
	if errors.Is(err, gocarousel.ErrNoDefaultStyle) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// writePlans records each request and writes its operation list as JSON
// next to where the image would go.
func writePlans(ctx context.Context, cmd *cobra.Command, raster *gocarousel.Rasterizer, reqs []gocarousel.DrawRequest) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i := range reqs {
		rec := gocarousel.NewRecorder(reqs[i].Size())
		if _, err := raster.Render(ctx, rec, &reqs[i]); err != nil {
			return fmt.Errorf("slide %d: %w", reqs[i].SlideIndex+1, err)
		}
		data, err := rec.MarshalJSON()
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(reqs[i].Filename(), ".png") + ".json"
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
