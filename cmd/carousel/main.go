package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gocarousel "github.com/VantageDataChat/GoCarousel"
)

var (
	dataDir    string
	verbose    bool
	listenAddr string
	proxyBase  string
	fontDirs   []string
	category   string
)

var rootCmd = &cobra.Command{
	Use:   "carousel",
	Short: "carousel – social-media slide renderer",
	Long:  "Carousel renders carousel slides (background, image, decorations, styled text and logo) to PNG or JPEG.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		gocarousel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in templates",
	RunE:  runTemplates,
}

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the built-in color palettes",
	RunE:  runPalettes,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rendering, the image proxy and live preview over HTTP",
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default carousel.toml file in the data directory (or current directory if not specified).",
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = gocarousel.Version
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory holding carousel.toml and saved styles")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	templatesCmd.Flags().StringVar(&category, "category", "", "Only list templates of this category")

	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&proxyBase, "proxy-base", "", "Fetch remote images through this proxy endpoint")
	serveCmd.Flags().StringSliceVar(&fontDirs, "font-dir", nil, "Additional font directories")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(renderCmd, templatesCmd, palettesCmd, styleCmd, serveCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration of the data directory.
func loadConfig() (gocarousel.Config, error) {
	dir, err := filepath.Abs(dataDir)
	if err != nil {
		return gocarousel.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg, err := gocarousel.LoadConfig(dir)
	if err != nil {
		return gocarousel.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runTemplates(cmd *cobra.Command, args []string) error {
	reg := gocarousel.Templates()
	list := reg.All()
	if category != "" {
		list = reg.ByCategory(gocarousel.Category(category))
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tIMAGE\tTEXT")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Image.Position, t.Text.Position)
	}
	return tw.Flush()
}

func runPalettes(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBACKGROUND\tTEXT\tACCENT")
	for _, p := range gocarousel.Palettes().All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Colors.Background, p.Colors.Text, p.Colors.Accent)
	}
	return tw.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Override config with CLI flags only if they were explicitly provided
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = listenAddr
	}
	if cmd.Flags().Changed("proxy-base") {
		cfg.ProxyBase = proxyBase
	}
	if cmd.Flags().Changed("font-dir") {
		cfg.FontDirs = fontDirs
	}

	styles, err := cfg.OpenStyleStore()
	if err != nil {
		return err
	}
	if c, ok := styles.(interface{ Close() error }); ok {
		defer c.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return gocarousel.NewServer(cfg, styles).ListenAndServe(ctx)
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	path := filepath.Join(dir, gocarousel.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	cfg := gocarousel.DefaultConfig()
	cfg.DataDir = dir
	if err := gocarousel.SaveConfig(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated config file: %s\n", path)
	return nil
}

// printJSON writes v indented to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
